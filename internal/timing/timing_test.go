package timing

import (
	"testing"

	"github.com/kongbytes/arp-scan-go/internal/model"
)

func TestProfileDefaults(t *testing.T) {
	cases := map[model.Profile]ProfileDefaults{
		model.ProfileDefault: {IntervalMs: 10, TimeoutMs: 2000, RetryCount: 1, Randomize: false, ResolveHostname: true},
		model.ProfileFast:    {IntervalMs: 0, TimeoutMs: 800, RetryCount: 1, Randomize: false, ResolveHostname: true},
		model.ProfileStealth: {IntervalMs: 20, TimeoutMs: 2000, RetryCount: 1, Randomize: true, ResolveHostname: false},
		model.ProfileChaos:   {IntervalMs: 10, TimeoutMs: 2000, RetryCount: 2, Randomize: true, ResolveHostname: true},
	}

	for profile, want := range cases {
		got := Defaults(profile)
		if got != want {
			t.Errorf("Defaults(%s) = %+v, want %+v", profile, got, want)
		}
	}
}

func TestEstimateBandwidthMode(t *testing.T) {
	options := &model.ScanOptions{
		RetryCount: 1,
		TimeoutMs:  0,
		Timing:     model.BandwidthTiming{BitsPerSecond: 336_000},
	}

	est := Estimate(256, options, nil)

	// 256 hosts * 42 bytes = 10752 bytes = 86016 bits.
	// request_phase_ms = 86016 * 1000 / 336000 ~= 256ms.
	if est.EstimatedDuration < 250e6 || est.EstimatedDuration > 1100e6 {
		t.Errorf("unexpected estimated duration: %v", est.EstimatedDuration)
	}
}

func TestEstimateBandwidthModeClampsNegativeInterval(t *testing.T) {
	options := &model.ScanOptions{
		RetryCount: 1,
		TimeoutMs:  0,
		Timing:     model.BandwidthTiming{BitsPerSecond: 100_000_000},
	}

	est := Estimate(256, options, nil)

	if est.EffectiveInterval < 0 {
		t.Fatalf("interval must never be negative, got %v", est.EffectiveInterval)
	}
}

func TestEstimateIntervalMode(t *testing.T) {
	options := &model.ScanOptions{
		RetryCount: 1,
		TimeoutMs:  500,
		Timing:     model.IntervalTiming{Milliseconds: 10},
	}

	est := Estimate(1, options, nil)
	if est.EffectiveInterval.Milliseconds() != 10 {
		t.Fatalf("expected effective interval 10ms, got %v", est.EffectiveInterval)
	}
}
