package orchestrator

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"
)

func TestCountHostsSumsAcrossCIDRs(t *testing.T) {
	_, net24, _ := net.ParseCIDR("192.168.1.0/24")
	_, net30, _ := net.ParseCIDR("10.0.0.0/30")

	got := countHosts([]net.IPNet{*net24, *net30})
	if got != 256+4 {
		t.Fatalf("expected 260 hosts, got %d", got)
	}
}

func TestDrainStopsWhenFlagSet(t *testing.T) {
	var stopFlag atomic.Bool
	stopFlag.Store(true)

	start := time.Now()
	drain(context.Background(), 5000, &stopFlag)
	if elapsed := time.Since(start); elapsed > drainChunk {
		t.Fatalf("expected drain to return within one chunk once stopFlag is set, took %v", elapsed)
	}
}

func TestDrainRunsFullTimeoutWhenNeverStopped(t *testing.T) {
	var stopFlag atomic.Bool

	start := time.Now()
	drain(context.Background(), 50, &stopFlag)
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("expected drain to wait out the full timeout, only took %v", elapsed)
	}
}

func TestDrainStopsOnContextCancel(t *testing.T) {
	var stopFlag atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	drain(ctx, 5000, &stopFlag)
	if elapsed := time.Since(start); elapsed > drainChunk {
		t.Fatalf("expected drain to return promptly on context cancellation, took %v", elapsed)
	}
}
