// Package iface is the external collaborator spec.md §1 calls "interface
// enumeration/selection and root-privilege check": it is out of the
// core's scope, specified here only at its contract with the orchestrator
// (select one up, non-loopback interface with an IPv4 address).
//
// Selection logic is grounded in the teacher's discovery.Scan, which
// walks net.Interface.Addrs() looking for the first IPv4 /IPNet pair.
// Listing uses vishvananda/netlink where available (Linux), the same
// library dm-vev-qdt's internal/netcfg wraps, falling back to stdlib
// net.Interfaces() elsewhere via the same build-tag split netcfg uses
// for ConfigureInterface/AddRoutes.
package iface

import (
	"errors"
	"fmt"
	"net"
)

// ErrNoIPv4 is returned when a candidate interface has no usable IPv4
// address.
var ErrNoIPv4 = errors.New("no IPv4 address found on interface")

// Info describes one link for the -l/--list flag.
type Info struct {
	Name     string
	Up       bool
	Loopback bool
	MAC      string
	IPv4     string
}

// RequireRoot enforces spec.md's "missing root" configuration error.
func RequireRoot(euid int) error {
	if euid != 0 {
		return errors.New("this tool must be run as root (raw sockets require elevated privileges)")
	}
	return nil
}

// Select resolves name to a usable interface: it must exist, be up, not
// be loopback, and carry an IPv4 address. When name is empty, the first
// interface satisfying those conditions is chosen.
func Select(name string) (*net.Interface, net.IP, *net.IPNet, error) {
	candidates, err := net.Interfaces()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list interfaces: %w", err)
	}

	for i := range candidates {
		candidate := &candidates[i]
		if name != "" && candidate.Name != name {
			continue
		}
		if candidate.Flags&net.FlagUp == 0 {
			continue
		}
		if candidate.Flags&net.FlagLoopback != 0 {
			continue
		}

		ip, network, err := firstIPv4(candidate)
		if err != nil {
			if name != "" {
				return nil, nil, nil, err
			}
			continue
		}

		return candidate, ip, network, nil
	}

	if name != "" {
		return nil, nil, nil, fmt.Errorf("could not find interface %q (must be up, non-loopback, with an IPv4 address)", name)
	}
	return nil, nil, nil, errors.New("could not find a default network interface")
}

func firstIPv4(candidate *net.Interface) (net.IP, *net.IPNet, error) {
	addrs, err := candidate.Addrs()
	if err != nil {
		return nil, nil, fmt.Errorf("addresses for %s: %w", candidate.Name, err)
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4, ipNet, nil
		}
	}
	return nil, nil, ErrNoIPv4
}
