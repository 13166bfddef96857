// Package enrich implements the reverse-DNS half of Component F. OUI
// vendor lookup lives in internal/vendordb to keep the CSV-reading
// concern isolated and independently testable.
//
// Grounded in original_source/src/network.rs::find_hostname: a reverse
// lookup whose result is discarded (treated as "no hostname") whenever it
// parses back as an IP literal, since some resolvers echo the address
// itself when no PTR record exists.
package enrich

import "net"

// LookupHostname performs a reverse-DNS lookup of ip. It returns nil if
// the lookup fails, or if the resolver's answer is itself an IP literal
// (no real hostname was found).
func LookupHostname(ip net.IP) *string {
	names, err := net.LookupAddr(ip.String())
	if err != nil || len(names) == 0 {
		return nil
	}

	hostname := names[0]
	if net.ParseIP(trimTrailingDot(hostname)) != nil {
		return nil
	}

	return &hostname
}

func trimTrailingDot(s string) string {
	if len(s) > 0 && s[len(s)-1] == '.' {
		return s[:len(s)-1]
	}
	return s
}
