//go:build !linux

package iface

import "net"

// List falls back to stdlib net.Interfaces() on non-Linux hosts, where
// netlink isn't available. Matches the build-tag split the pack's own
// internal/netcfg uses (netcfg_linux.go vs netcfg_stub.go).
func List() ([]Info, error) {
	candidates, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(candidates))
	for _, candidate := range candidates {
		ipv4 := ""
		if addrs, err := candidate.Addrs(); err == nil {
			for _, addr := range addrs {
				if ipNet, ok := addr.(*net.IPNet); ok {
					if ip4 := ipNet.IP.To4(); ip4 != nil {
						ipv4 = ipNet.String()
						break
					}
				}
			}
		}

		infos = append(infos, Info{
			Name:     candidate.Name,
			Up:       candidate.Flags&net.FlagUp != 0,
			Loopback: candidate.Flags&net.FlagLoopback != 0,
			MAC:      candidate.HardwareAddr.String(),
			IPv4:     ipv4,
		})
	}
	return infos, nil
}
