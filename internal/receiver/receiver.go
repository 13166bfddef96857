// Package receiver implements Component D: a dedicated goroutine that
// reads raw frames off a pcap handle, filters to ARP replies, and
// accumulates a sender-IPv4 -> TargetDetails map until the shared stop
// flag is observed set.
//
// Grounded in original_source/src/network.rs::receive_arp_responses and
// the teacher's spoofer.GetMAC read loop (both read with a short timeout
// so the loop can observe an external stop signal promptly).
package receiver

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/kongbytes/arp-scan-go/internal/enrich"
	"github.com/kongbytes/arp-scan-go/internal/model"
	"github.com/kongbytes/arp-scan-go/internal/vendordb"
)

// ReadTimeout bounds how long a single PacketDataSource.ReadPacketData
// call may block, so the loop can reliably observe StopFlag within this
// latency even when no packets arrive. 500ms, per spec.md §4.D.
const ReadTimeout = 500 * time.Millisecond

const (
	ethernetHeaderLen = 14
	dot1qTagLen       = 4
	arpPayloadLen     = 28
)

var (
	etherTypeARP   = [2]byte{0x08, 0x06}
	etherTypeDot1Q = [2]byte{0x81, 0x00}
)

// Source is the minimal datalink-reading surface the receiver needs;
// *pcap.Handle satisfies it.
type Source interface {
	ReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error)
}

// Run executes the receive loop until stopFlag is observed set or a
// non-timeout read error occurs, then runs the enrichment pass (reverse
// DNS + OUI vendor lookup) and returns the summary, the discovered
// targets, and the fatal error if the loop was cut short by one. A
// non-nil error is fatal I/O per spec.md §7: the caller should report it
// and exit 1, even though the summary and targets accumulated so far are
// still returned.
func Run(src Source, options *model.ScanOptions, stopFlag *atomic.Bool, vendors *vendordb.DB) (model.ResponseSummary, []model.TargetDetails, error) {
	discovered := make(map[string]*model.TargetDetails)
	start := time.Now()

	var packetCount, arpCount uint64
	var fatalErr error

	for {
		if stopFlag.Load() {
			break
		}

		data, _, err := src.ReadPacketData()
		if err != nil {
			if isTimeout(err) {
				continue
			}
			fatalErr = fmt.Errorf("read packet data: %w", err)
			break
		}
		packetCount++

		ipv4, mac, ok := parseARPReply(data)
		if !ok {
			continue
		}
		arpCount++

		discovered[ipv4.String()] = &model.TargetDetails{
			IPv4: ipv4,
			MAC:  mac,
		}
	}

	targets := make([]model.TargetDetails, 0, len(discovered))
	for _, target := range discovered {
		if options.ResolveHostname {
			target.Hostname = enrich.LookupHostname(target.IPv4)
		}
		if vendors != nil && vendors.IsLoaded() {
			target.Vendor = vendors.Lookup(target.MAC)
		}
		targets = append(targets, *target)
	}

	summary := model.ResponseSummary{
		PacketCount: packetCount,
		ARPCount:    arpCount,
		Duration:    time.Since(start),
	}
	return summary, targets, fatalErr
}

func isTimeout(err error) bool {
	if errors.Is(err, pcap.NextErrorTimeoutExpired) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseARPReply extracts the sender IPv4/MAC from a raw frame if, and only
// if, it is a well-formed ARP reply. It accepts both an untagged outer
// ethertype (0x0806) and an 802.1Q-tagged one (0x8100 with an inner
// ethertype of 0x0806); see SPEC_FULL.md §9 decision 1, a strict
// superset of spec.md §4.D's literal filter.
func parseARPReply(data []byte) (net.IP, net.HardwareAddr, bool) {
	if len(data) < ethernetHeaderLen+2 {
		return nil, nil, false
	}

	offset := ethernetHeaderLen
	outerType := [2]byte{data[12], data[13]}

	switch {
	case outerType == etherTypeARP:
		// offset already at the ARP payload.
	case outerType == etherTypeDot1Q:
		if len(data) < ethernetHeaderLen+dot1qTagLen+2 {
			return nil, nil, false
		}
		innerType := [2]byte{data[16], data[17]}
		if innerType != etherTypeARP {
			return nil, nil, false
		}
		offset += dot1qTagLen
	default:
		return nil, nil, false
	}

	if len(data) < offset+arpPayloadLen {
		return nil, nil, false
	}

	arpLayer := gopacket.NewPacket(data[offset:], layers.LayerTypeARP, gopacket.NoCopy).Layer(layers.LayerTypeARP)
	if arpLayer == nil {
		return nil, nil, false
	}
	arp, ok := arpLayer.(*layers.ARP)
	if !ok {
		return nil, nil, false
	}
	if arp.Operation != layers.ARPReply {
		return nil, nil, false
	}

	ip := make(net.IP, 4)
	copy(ip, arp.SourceProtAddress)
	mac := make(net.HardwareAddr, len(arp.SourceHwAddress))
	copy(mac, arp.SourceHwAddress)

	return ip, mac, true
}
