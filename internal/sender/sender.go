// Package sender implements Component E: the retry-driven emission loop
// driven by the scan orchestrator on its own goroutine.
//
// Grounded in the teacher's discovery.Scan, which ticks through a subnet
// at a fixed rate and writes one ARP request per tick; generalized here to
// retries x a fresh rangeiter.Iterator per pass (re-shuffled when
// randomized) and to honor a shared stop flag at both loop levels, per
// spec.md §4.E.
package sender

import (
	"context"
	"net"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/kongbytes/arp-scan-go/internal/encoder"
	"github.com/kongbytes/arp-scan-go/internal/model"
	"github.com/kongbytes/arp-scan-go/internal/rangeiter"
)

// Sink is the minimal datalink-writing surface the sender needs;
// *pcap.Handle satisfies it.
type Sink interface {
	WritePacketData(data []byte) error
}

// Run iterates retryCount passes over the CIDR union, encoding and
// emitting one ARP request per target address, paced by limiter, until
// every pass completes or stopFlag is observed set.
func Run(ctx context.Context, sink Sink, interfaceMAC net.HardwareAddr, sourceIPv4 net.IP, cidrs []net.IPNet, options *model.ScanOptions, limiter *rate.Limiter, stopFlag *atomic.Bool) error {
	for pass := 0; pass < options.RetryCount; pass++ {
		if stopFlag.Load() {
			break
		}

		it := rangeiter.New(cidrs, options.RandomizeTargets)
		for {
			if stopFlag.Load() {
				break
			}

			targetIP, ok := it.Next()
			if !ok {
				break
			}

			if err := limiter.Wait(ctx); err != nil {
				// Context cancellation during the wait is equivalent to an
				// external stop signal: let the caller's drain phase take
				// over rather than treating it as a fatal error.
				return nil
			}

			frame, err := encoder.BuildRequest(interfaceMAC, sourceIPv4, targetIP, options)
			if err != nil {
				return err
			}

			if err := sink.WritePacketData(frame); err != nil {
				return err
			}
		}
	}
	return nil
}
