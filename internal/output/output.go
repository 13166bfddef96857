// Package output is the "formatted output" external collaborator from
// spec.md §1/§6: plain/json/yaml/csv renderers for a finished scan's
// results. None of this participates in the scan engine itself.
//
// The plain formatter's table layout is grounded in the Rust original's
// main.rs printout ("| IPv4 | MAC |" fixed-width rows); its coloring is
// grounded in the teacher's tui/view.go style vocabulary (titleStyle,
// infoStyle), applied once to a static table instead of redrawn on every
// tea.Msg.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/kongbytes/arp-scan-go/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// Result bundles everything a formatter needs to render one completed
// scan.
type Result struct {
	Summary    model.ResponseSummary
	Estimation model.ScanEstimation
	Targets    []model.TargetDetails
}

// Write renders result in the given format to w.
func Write(format model.Format, result Result, w io.Writer) error {
	switch format {
	case model.FormatJSON:
		return writeJSON(result, w)
	case model.FormatYAML:
		return writeYAML(result, w)
	case model.FormatCSV:
		return writeCSV(result, w)
	default:
		return writePlain(result, w)
	}
}

type jsonTarget struct {
	IPv4     string  `json:"ipv4"`
	MAC      string  `json:"mac"`
	Hostname *string `json:"hostname,omitempty"`
	Vendor   *string `json:"vendor,omitempty"`
}

type jsonDocument struct {
	PacketCount       uint64       `json:"packet_count"`
	ARPCount          uint64       `json:"arp_count"`
	DurationMs        int64        `json:"duration_ms"`
	EstimatedDuration int64        `json:"estimated_duration_ms"`
	Targets           []jsonTarget `json:"targets"`
}

func toDocument(result Result) jsonDocument {
	targets := make([]jsonTarget, 0, len(result.Targets))
	for _, t := range result.Targets {
		mac := ""
		if t.MAC != nil {
			mac = t.MAC.String()
		}
		targets = append(targets, jsonTarget{
			IPv4:     t.IPv4.String(),
			MAC:      mac,
			Hostname: t.Hostname,
			Vendor:   t.Vendor,
		})
	}
	return jsonDocument{
		PacketCount:       result.Summary.PacketCount,
		ARPCount:          result.Summary.ARPCount,
		DurationMs:        result.Summary.Duration.Milliseconds(),
		EstimatedDuration: result.Estimation.EstimatedDuration.Milliseconds(),
		Targets:           targets,
	}
}

func writeJSON(result Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toDocument(result))
}

func writeYAML(result Result, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(toDocument(result))
}

func writeCSV(result Result, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"ipv4", "mac", "hostname", "vendor"}); err != nil {
		return err
	}
	for _, t := range result.Targets {
		mac := ""
		if t.MAC != nil {
			mac = t.MAC.String()
		}
		row := []string{t.IPv4.String(), mac, orEmpty(t.Hostname), orEmpty(t.Vendor)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writePlain(result Result, w io.Writer) error {
	header := headerStyle.Render(fmt.Sprintf("ARP scan - %d hosts found", len(result.Targets)))
	fmt.Fprintln(w, header)

	summary := fmt.Sprintf(
		"packets: %s  arp replies: %s  duration: %s  estimated: %s",
		humanize.Comma(int64(result.Summary.PacketCount)),
		humanize.Comma(int64(result.Summary.ARPCount)),
		result.Summary.Duration.Round(time.Millisecond),
		result.Estimation.EstimatedDuration.Round(time.Millisecond),
	)
	fmt.Fprintln(w, summaryStyle.Render(summary))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-16s %-19s %-24s %s\n", "IPv4", "MAC", "Hostname", "Vendor")
	fmt.Fprintln(w, strings.Repeat("-", 16+1+19+1+24+1+20))
	for _, t := range result.Targets {
		mac := ""
		if t.MAC != nil {
			mac = t.MAC.String()
		}
		fmt.Fprintf(w, "%-16s %-19s %-24s %s\n", t.IPv4.String(), mac, orEmpty(t.Hostname), orEmpty(t.Vendor))
	}
	return nil
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
