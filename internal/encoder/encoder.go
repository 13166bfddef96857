// Package encoder builds Ethernet/802.1Q/ARP request frames into
// ready-to-send byte buffers.
//
// Grounded in the teacher's discovery.sendARPRequest and
// spoofer.Engine.sendARP, both of which already build an Ethernet+ARP
// frame through gopacket layers and gopacket.SerializeLayers. VLAN
// tagging is new here (the teacher never tags), modeled after the
// MutableVlanPacket insertion in the Rust original's send_arp_request.
package encoder

import (
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/kongbytes/arp-scan-go/internal/model"
)

const vlanQoSDefault = 1

var broadcastMAC = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// BuildRequest encodes a single ARP request frame for targetIPv4, applying
// every override present in options. The returned buffer is exactly 42
// bytes (no VLAN) or 46 bytes (with VLAN), matching spec.md's frame-size
// invariant.
func BuildRequest(interfaceMAC net.HardwareAddr, sourceIPv4, targetIPv4 net.IP, options *model.ScanOptions) ([]byte, error) {
	sourceMAC := interfaceMAC
	if options.SourceMAC != nil {
		sourceMAC = options.SourceMAC
	}

	destMAC := broadcastMAC
	if options.DestinationMAC != nil {
		destMAC = options.DestinationMAC
	}

	arp := buildARPLayer(sourceMAC, sourceIPv4, targetIPv4, destMAC, options)
	// gopacket pads every serialized Ethernet frame to the 60-byte wire
	// minimum; the returned slice stops at the end of the ARP payload.
	arpLen := 8 + len(arp.SourceHwAddress) + len(arp.SourceProtAddress) + len(arp.DstHwAddress) + len(arp.DstProtAddress)

	eth := &layers.Ethernet{
		SrcMAC: sourceMAC,
		DstMAC: destMAC,
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}

	if options.HasVLAN() {
		eth.EthernetType = layers.EthernetTypeDot1Q
		dot1q := &layers.Dot1Q{
			Priority:       vlanQoSDefault,
			DropEligible:   false,
			VLANIdentifier: *options.VLANID,
			Type:           layers.EthernetTypeARP,
		}
		if err := gopacket.SerializeLayers(buf, opts, eth, dot1q, arp); err != nil {
			return nil, err
		}
		return buf.Bytes()[:14+4+arpLen], nil
	}

	eth.EthernetType = layers.EthernetTypeARP
	if err := gopacket.SerializeLayers(buf, opts, eth, arp); err != nil {
		return nil, err
	}
	return buf.Bytes()[:14+arpLen], nil
}

func buildARPLayer(sourceMAC net.HardwareAddr, sourceIPv4, targetIPv4 net.IP, destMAC net.HardwareAddr, options *model.ScanOptions) *layers.ARP {
	arp := &layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   []byte(sourceMAC),
		SourceProtAddress: []byte(sourceIPv4.To4()),
		DstHwAddress:      []byte(destMAC),
		DstProtAddress:    []byte(targetIPv4.To4()),
	}

	if options.HwType != nil {
		arp.AddrType = layers.LinkType(*options.HwType)
	}
	if options.ProtoType != nil {
		arp.Protocol = layers.EthernetType(*options.ProtoType)
	}
	if options.HwAddrLen != nil {
		arp.HwAddressSize = *options.HwAddrLen
	}
	if options.ProtoAddrLen != nil {
		arp.ProtAddressSize = *options.ProtoAddrLen
	}
	if options.ArpOperation != nil {
		arp.Operation = *options.ArpOperation
	}

	return arp
}
