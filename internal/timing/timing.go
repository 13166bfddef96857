// Package timing turns the user's rate/bandwidth intent and a host count
// into a concrete emission interval, a feasibility estimate, and the
// rate.Limiter used by internal/sender to actually pace emissions.
//
// The derivations are a direct port of
// original_source/src/network.rs::compute_scan_estimation. Pacing itself
// is grounded in the pack's own use of golang.org/x/time/rate: dm-vev-qdt's
// cmd/qdt-server/handshake_limiter.go wraps a single rate.Limiter the same
// way: constructed once from a derived rate, checked per iteration.
package timing

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/kongbytes/arp-scan-go/internal/model"
)

const (
	avgARPRequestMs     = 3
	avgResolveMs        = 500
	minRetryCountForEst = 1
)

// ProfileDefaults describes the flag bundle a Profile applies when the
// user hasn't overridden the corresponding setting.
type ProfileDefaults struct {
	IntervalMs      uint64
	TimeoutMs       uint64
	RetryCount      int
	Randomize       bool
	ResolveHostname bool
}

// Defaults returns the flag bundle for a given profile. Unknown profiles
// fall back to ProfileDefault, matching a CLI that only ever constructs
// this from a validated flag value.
func Defaults(profile model.Profile) ProfileDefaults {
	switch profile {
	case model.ProfileFast:
		return ProfileDefaults{IntervalMs: 0, TimeoutMs: 800, RetryCount: 1, Randomize: false, ResolveHostname: true}
	case model.ProfileStealth:
		return ProfileDefaults{IntervalMs: 20, TimeoutMs: 2000, RetryCount: 1, Randomize: true, ResolveHostname: false}
	case model.ProfileChaos:
		return ProfileDefaults{IntervalMs: 10, TimeoutMs: 2000, RetryCount: 2, Randomize: true, ResolveHostname: true}
	default:
		return ProfileDefaults{IntervalMs: 10, TimeoutMs: 2000, RetryCount: 1, Randomize: false, ResolveHostname: true}
	}
}

// Estimate computes the emission schedule and scan-duration feasibility
// estimate for hostCount targets under options.
func Estimate(hostCount uint64, options *model.ScanOptions, logger *slog.Logger) model.ScanEstimation {
	retryCount := uint64(options.RetryCount)
	if retryCount == 0 {
		retryCount = minRetryCountForEst
	}

	packetSize := uint64(options.PacketSize())
	requestSize := hostCount * packetSize

	var effectiveIntervalMs uint64
	var bitsPerSecond uint64
	var requestPhaseMs uint64

	switch t := options.Timing.(type) {
	case model.BandwidthTiming:
		bitsPerSecond = t.BitsPerSecond
		if bitsPerSecond == 0 {
			bitsPerSecond = 1
		}
		requestPhaseMs = requestSize * 8 * 1000 / bitsPerSecond

		denom := retryCount * hostCount
		var rawIntervalMs int64
		if denom == 0 {
			rawIntervalMs = 0
		} else {
			rawIntervalMs = int64(requestPhaseMs/denom) - avgARPRequestMs
		}
		if rawIntervalMs < 0 {
			if logger != nil {
				logger.Warn("bandwidth-derived interval underflowed, clamping to zero",
					"bandwidth_bps", bitsPerSecond, "host_count", hostCount, "retry_count", retryCount)
			}
			rawIntervalMs = 0
		}
		effectiveIntervalMs = uint64(rawIntervalMs)

	case model.IntervalTiming:
		effectiveIntervalMs = t.Milliseconds
		requestPhaseMs = hostCount * (avgARPRequestMs + effectiveIntervalMs) * retryCount
		if requestPhaseMs == 0 {
			bitsPerSecond = 0
		} else {
			bitsPerSecond = requestSize * 8 * 1000 / requestPhaseMs
		}

	default:
		// No timing configured: behave as Interval(0).
		effectiveIntervalMs = 0
		requestPhaseMs = hostCount * avgARPRequestMs * retryCount
		if requestPhaseMs > 0 {
			bitsPerSecond = requestSize * 8 * 1000 / requestPhaseMs
		}
	}

	estimatedDurationMs := requestPhaseMs + options.TimeoutMs + avgResolveMs

	return model.ScanEstimation{
		EffectiveInterval: time.Duration(effectiveIntervalMs) * time.Millisecond,
		EstimatedDuration: time.Duration(estimatedDurationMs) * time.Millisecond,
		TotalBytes:        requestSize,
		BitsPerSecond:     bitsPerSecond,
	}
}

// NewLimiter builds the rate.Limiter the sender uses to pace one request
// every estimation.EffectiveInterval. A zero interval yields an
// effectively unlimited limiter (burst covers the whole host count so
// the sender never blocks waiting on the token bucket).
func NewLimiter(estimation model.ScanEstimation, hostCount int) *rate.Limiter {
	if estimation.EffectiveInterval <= 0 {
		return rate.NewLimiter(rate.Inf, hostCount+1)
	}
	limit := rate.Every(estimation.EffectiveInterval)
	return rate.NewLimiter(limit, 1)
}
