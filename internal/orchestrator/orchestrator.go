// Package orchestrator drives one scan end to end: open the capture
// handle, launch the receiver, run the sender through its retry passes,
// drain for stragglers, and join. It is the state machine spec.md §4.G
// names Init -> InterfaceSelected -> ChannelOpen -> Scanning -> Draining
// -> Finalized.
//
// The handle-open/BPF-filter/defer-close sequence is grounded directly in
// the teacher's discovery.Scan. The signal-driven early stop is new: the
// teacher never installs one, so it is modeled after dm-vev-qdt's
// cmd/qdt-server/main.go, which wires signal.NotifyContext into a
// context passed down to every goroutine.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/gopacket/pcap"

	"github.com/kongbytes/arp-scan-go/internal/model"
	"github.com/kongbytes/arp-scan-go/internal/receiver"
	"github.com/kongbytes/arp-scan-go/internal/sender"
	"github.com/kongbytes/arp-scan-go/internal/timing"
	"github.com/kongbytes/arp-scan-go/internal/vendordb"
)

// drainChunk bounds each sleep slice of the post-send drain so that an
// external stop signal is observed within this latency, per spec.md §4.G.
const drainChunk = 500 * time.Millisecond

// snapshotLen is large enough to capture a VLAN-tagged ARP frame in full
// with generous headroom; matches the teacher's discovery.Scan value.
const snapshotLen = 65536

// Outcome bundles everything a scan produced for the output formatters.
type Outcome struct {
	Summary    model.ResponseSummary
	Estimation model.ScanEstimation
	Targets    []model.TargetDetails
}

// Run executes one full scan: it opens a capture handle on interfaceName,
// starts the receiver on its own goroutine, runs the sender's retry
// passes, drains for stragglers until options.TimeoutMs elapses or the
// process receives SIGINT/SIGTERM, then joins the receiver and returns
// its accumulated results. If sending fails, it skips the drain, stops and
// joins the receiver at once, and returns the send error.
func Run(interfaceName string, interfaceMAC net.HardwareAddr, sourceIPv4 net.IP, cidrs []net.IPNet, options *model.ScanOptions, vendors *vendordb.DB, logger *slog.Logger) (Outcome, error) {
	handle, err := pcap.OpenLive(interfaceName, snapshotLen, true, receiver.ReadTimeout)
	if err != nil {
		return Outcome{}, fmt.Errorf("open capture handle on %s: %w", interfaceName, err)
	}
	defer handle.Close()

	if err := handle.SetBPFFilter("arp"); err != nil {
		return Outcome{}, fmt.Errorf("set arp capture filter: %w", err)
	}

	hostCount := countHosts(cidrs)
	estimation := timing.Estimate(hostCount, options, logger)
	limiter := timing.NewLimiter(estimation, int(hostCount))

	logger.Info("scan starting",
		"interface", interfaceName,
		"hosts", hostCount,
		"estimated_duration", estimation.EstimatedDuration,
		"retry_count", options.RetryCount,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var stopFlag atomic.Bool
	var wg sync.WaitGroup
	var summary model.ResponseSummary
	var targets []model.TargetDetails
	var receiveErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		summary, targets, receiveErr = receiver.Run(handle, options, &stopFlag, vendors)
	}()

	sendErr := sender.Run(ctx, handle, interfaceMAC, sourceIPv4, cidrs, options, limiter, &stopFlag)
	if sendErr != nil {
		stopFlag.Store(true)
		wg.Wait()
		logger.Error("send pass failed with a fatal I/O error", "error", sendErr)
		return Outcome{Summary: summary, Estimation: estimation, Targets: targets}, fmt.Errorf("send ARP request: %w", sendErr)
	}

	drain(ctx, options.TimeoutMs, &stopFlag)

	stopFlag.Store(true)
	wg.Wait()

	if receiveErr != nil {
		logger.Error("receive loop ended with a fatal I/O error", "error", receiveErr)
		return Outcome{Summary: summary, Estimation: estimation, Targets: targets}, receiveErr
	}

	logger.Info("scan finished",
		"packets_seen", summary.PacketCount,
		"arp_replies", summary.ARPCount,
		"hosts_found", len(targets),
		"duration", summary.Duration,
	)

	return Outcome{Summary: summary, Estimation: estimation, Targets: targets}, nil
}

// drain sleeps in bounded chunks until timeoutMs has elapsed, ctx is
// cancelled (SIGINT/SIGTERM), or stopFlag is set, giving late ARP replies
// a chance to arrive before the receiver is told to stop.
func drain(ctx context.Context, timeoutMs uint64, stopFlag *atomic.Bool) {
	remaining := time.Duration(timeoutMs) * time.Millisecond
	for remaining > 0 {
		if stopFlag.Load() {
			return
		}

		chunk := drainChunk
		if remaining < chunk {
			chunk = remaining
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(chunk):
		}

		remaining -= chunk
	}
}

func countHosts(cidrs []net.IPNet) uint64 {
	var total uint64
	for _, cidr := range cidrs {
		ones, bits := cidr.Mask.Size()
		total += uint64(1) << uint(bits-ones)
	}
	return total
}
