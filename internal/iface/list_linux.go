//go:build linux

package iface

import (
	"net"

	"github.com/vishvananda/netlink"
)

// List enumerates every link on the host for the -l/--list flag, using
// netlink so operator state (admin up/down) is read directly from the
// kernel rather than inferred.
func List() ([]Info, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(links))
	for _, link := range links {
		attrs := link.Attrs()

		ipv4 := ""
		addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
		if err == nil && len(addrs) > 0 {
			ipv4 = addrs[0].IPNet.String()
		}

		mac := ""
		if attrs.HardwareAddr != nil {
			mac = attrs.HardwareAddr.String()
		}

		infos = append(infos, Info{
			Name:     attrs.Name,
			Up:       attrs.Flags&net.FlagUp != 0,
			Loopback: attrs.Flags&net.FlagLoopback != 0,
			MAC:      mac,
			IPv4:     ipv4,
		})
	}
	return infos, nil
}
