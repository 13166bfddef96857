// Package model holds the value types shared across the scan engine.
// Nothing here mutates after construction: a ScanOptions is built once in
// main and handed by pointer to every goroutine that needs it.
package model

import (
	"net"
	"time"
)

// Profile selects a bundle of timing/retry/randomization defaults when the
// user does not set the corresponding flags explicitly.
type Profile string

const (
	ProfileDefault Profile = "default"
	ProfileFast    Profile = "fast"
	ProfileStealth Profile = "stealth"
	ProfileChaos   Profile = "chaos"
)

// ScanTiming is a closed sum type: the user provides either an interval or
// a bandwidth cap, never both. The unexported method keeps the set closed
// to this package, the idiomatic Go stand-in for a Rust enum.
type ScanTiming interface {
	isScanTiming()
}

// IntervalTiming paces emissions at a fixed inter-request delay.
type IntervalTiming struct {
	Milliseconds uint64
}

func (IntervalTiming) isScanTiming() {}

// BandwidthTiming paces emissions to stay under a bit-rate cap.
type BandwidthTiming struct {
	BitsPerSecond uint64
}

func (BandwidthTiming) isScanTiming() {}

// ScanOptions is the immutable configuration shared by every component of
// the scan engine. Build it once (main's buildOptions, or by hand in tests)
// and never mutate it afterward.
type ScanOptions struct {
	InterfaceName string
	NetworkRange  []net.IPNet

	TimeoutMs  uint64
	Timing     ScanTiming
	RetryCount int

	SourceIPv4       net.IP
	SourceMAC        net.HardwareAddr
	DestinationMAC   net.HardwareAddr
	VLANID           *uint16
	ResolveHostname  bool
	RandomizeTargets bool

	HwType        *uint16
	HwAddrLen     *uint8
	ProtoType     *uint16
	ProtoAddrLen  *uint8
	ArpOperation  *uint16

	OUIFilePath string
	Profile     Profile
}

// HasVLAN reports whether frames should carry an 802.1Q tag.
func (o *ScanOptions) HasVLAN() bool {
	return o.VLANID != nil
}

// PacketSize returns the fixed frame size this configuration produces:
// 42 bytes without a VLAN tag, 46 with one.
func (o *ScanOptions) PacketSize() int {
	if o.HasVLAN() {
		return 46
	}
	return 42
}

// TargetDetails is created on the first ARP reply seen from a sender IPv4
// and overwritten (MAC only) on any later reply from the same address.
// Hostname and Vendor are populated only during the enrichment pass.
type TargetDetails struct {
	IPv4     net.IP
	MAC      net.HardwareAddr
	Hostname *string
	Vendor   *string
}

// ResponseSummary holds the monotonic counters the receiver accumulates
// over one scan run.
type ResponseSummary struct {
	PacketCount uint64
	ARPCount    uint64
	Duration    time.Duration
}

// ScanEstimation is computed once, before the scan starts, to give the
// operator a feasibility estimate.
type ScanEstimation struct {
	EffectiveInterval time.Duration
	EstimatedDuration time.Duration
	TotalBytes        uint64
	BitsPerSecond     uint64
}

// Format selects the output formatter.
type Format string

const (
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
)
