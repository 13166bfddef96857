package output

import (
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/kongbytes/arp-scan-go/internal/model"
)

func sampleResult() Result {
	hostname := "router.lan"
	vendor := "Cisco Systems"
	mac, _ := net.ParseMAC("aa:bb:cc:dd:ee:ff")
	return Result{
		Summary: model.ResponseSummary{
			PacketCount: 256,
			ARPCount:    12,
			Duration:    1500 * time.Millisecond,
		},
		Estimation: model.ScanEstimation{
			EstimatedDuration: 2 * time.Second,
		},
		Targets: []model.TargetDetails{
			{IPv4: net.ParseIP("192.168.1.1"), MAC: mac, Hostname: &hostname, Vendor: &vendor},
			{IPv4: net.ParseIP("192.168.1.2"), MAC: mac},
		},
	}
}

func TestWriteJSONContainsTargets(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(model.FormatJSON, sampleResult(), &buf); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if !strings.Contains(buf.String(), "192.168.1.1") {
		t.Fatalf("expected target ip in json output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "router.lan") {
		t.Fatalf("expected hostname in json output, got %q", buf.String())
	}
}

func TestWriteYAMLContainsTargets(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(model.FormatYAML, sampleResult(), &buf); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "192.168.1.2") {
		t.Fatalf("expected target ip in yaml output, got %q", buf.String())
	}
}

func TestWriteCSVHasHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(model.FormatCSV, sampleResult(), &buf); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "ipv4,mac,hostname,vendor" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
}

func TestWritePlainRendersTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(model.FormatPlain, sampleResult(), &buf); err != nil {
		t.Fatalf("write plain: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "192.168.1.1") || !strings.Contains(out, "192.168.1.2") {
		t.Fatalf("expected both targets in plain output, got %q", out)
	}
}
