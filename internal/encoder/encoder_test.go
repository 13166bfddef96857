package encoder

import (
	"net"
	"testing"

	"github.com/kongbytes/arp-scan-go/internal/model"
)

func testMAC(b byte) net.HardwareAddr {
	return net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, b}
}

func TestBuildRequestNoVLAN(t *testing.T) {
	options := &model.ScanOptions{}

	frame, err := BuildRequest(testMAC(1), net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), options)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}

	if len(frame) != 42 {
		t.Fatalf("expected 42-byte frame, got %d", len(frame))
	}
	if frame[12] != 0x08 || frame[13] != 0x06 {
		t.Fatalf("expected ethertype 08 06, got %02x %02x", frame[12], frame[13])
	}

	tha := net.HardwareAddr(frame[32:38])
	if tha.String() != "ff:ff:ff:ff:ff:ff" {
		t.Fatalf("expected default tha to be the broadcast address, got %s", tha)
	}
}

func TestBuildRequestDestMACOverride(t *testing.T) {
	override := testMAC(9)
	options := &model.ScanOptions{DestinationMAC: override}

	frame, err := BuildRequest(testMAC(1), net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), options)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}

	dst := net.HardwareAddr(frame[0:6])
	if dst.String() != override.String() {
		t.Fatalf("expected ethernet dst %s, got %s", override, dst)
	}
	tha := net.HardwareAddr(frame[32:38])
	if tha.String() != override.String() {
		t.Fatalf("expected arp tha %s, got %s", override, tha)
	}
}

func TestBuildRequestVLAN(t *testing.T) {
	vlan := uint16(45)
	options := &model.ScanOptions{VLANID: &vlan}

	frame, err := BuildRequest(testMAC(1), net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), options)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}

	if len(frame) != 46 {
		t.Fatalf("expected 46-byte frame, got %d", len(frame))
	}
	if frame[12] != 0x81 || frame[13] != 0x00 {
		t.Fatalf("expected ethertype 81 00, got %02x %02x", frame[12], frame[13])
	}

	tci := uint16(frame[14])<<8 | uint16(frame[15])
	pcp := uint8(tci >> 13)
	dei := uint8((tci >> 12) & 0x1)
	vid := tci & 0x0fff

	if pcp != 1 {
		t.Errorf("expected PCP=1, got %d", pcp)
	}
	if dei != 0 {
		t.Errorf("expected DEI=0, got %d", dei)
	}
	if vid != vlan {
		t.Errorf("expected VID=%d, got %d", vlan, vid)
	}

	if frame[16] != 0x08 || frame[17] != 0x06 {
		t.Fatalf("expected inner ethertype 08 06, got %02x %02x", frame[16], frame[17])
	}
}

func TestBuildRequestVLANZero(t *testing.T) {
	vlan := uint16(0)
	options := &model.ScanOptions{VLANID: &vlan}

	frame, err := BuildRequest(testMAC(1), net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), options)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if len(frame) != 46 {
		t.Fatalf("expected 46-byte frame, got %d", len(frame))
	}
}
