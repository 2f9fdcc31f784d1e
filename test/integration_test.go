package test

import (
	"context"
	"testing"
	"time"

	"github.com/thetangentline/aquarius/internal/driver"
	"github.com/thetangentline/aquarius/pkg/testserver"
	"github.com/thetangentline/aquarius/pkg/timeoutfuse"
)

func withFuse(t *testing.T) {
	t.Helper()
	fuse := timeoutfuse.Spawn(30 * time.Second)
	t.Cleanup(fuse.Stop)
}

func TestIntegration_SingleRequest(t *testing.T) {
	withFuse(t)

	srv, err := testserver.Start(0)
	if err != nil {
		t.Fatalf("starting test server: %v", err)
	}
	defer srv.Finish()

	total := uint32(1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sum, err := driver.Run(ctx, driver.Config{Host: "::1", Port: uint16(srv.Port), Total: &total})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Total() != 1 {
		t.Fatalf("expected exactly one report, got %d", sum.Total())
	}
	if got := srv.RequestsReceived(); got != 1 {
		t.Fatalf("expected server to see exactly one request, got %d", got)
	}
}

func TestIntegration_ManyRequestsPaced(t *testing.T) {
	withFuse(t)

	srv, err := testserver.Start(0)
	if err != nil {
		t.Fatalf("starting test server: %v", err)
	}
	defer srv.Finish()

	total := uint32(20)
	rps := uint32(100)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sum, err := driver.Run(ctx, driver.Config{Host: "::1", Port: uint16(srv.Port), Total: &total, RPS: &rps})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Total() != int(total) {
		t.Fatalf("expected %d reports, got %d", total, sum.Total())
	}
	if got := srv.RequestsReceived(); got != total {
		t.Fatalf("expected server to see %d requests, got %d", total, got)
	}
	if rate := sum.SuccessRate(); rate != 100 {
		t.Fatalf("expected 100%% success, got %v", rate)
	}
}

func TestIntegration_FailsAgainstUnreachableServer(t *testing.T) {
	withFuse(t)

	total := uint32(3)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := driver.Run(ctx, driver.Config{Host: "::1", Port: 1, Total: &total})
	if err == nil {
		t.Fatal("expected an error against an unreachable server")
	}
}

func TestIntegration_SummaryStatisticsAreSane(t *testing.T) {
	withFuse(t)

	srv, err := testserver.Start(0)
	if err != nil {
		t.Fatalf("starting test server: %v", err)
	}
	defer srv.Finish()

	total := uint32(10)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sum, err := driver.Run(ctx, driver.Config{Host: "::1", Port: uint16(srv.Port), Total: &total})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	min, max, err := sum.TimeRange()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if max.Before(min) {
		t.Fatalf("max %v before min %v", max, min)
	}

	median, err := sum.MedianDuration()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if median < 0 {
		t.Fatalf("expected non-negative median, got %v", median)
	}

	progress, err := sum.ProgressObservations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(progress); i++ {
		if progress[i].Percent < progress[i-1].Percent {
			t.Fatalf("progress observations not monotonic at index %d", i)
		}
	}
}

func TestIntegration_CancelledContextYieldsEmptySummary(t *testing.T) {
	withFuse(t)

	srv, err := testserver.Start(0)
	if err != nil {
		t.Fatalf("starting test server: %v", err)
	}
	defer srv.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := driver.Run(ctx, driver.Config{Host: "::1", Port: uint16(srv.Port)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Total() != 0 {
		t.Fatalf("expected no requests against an already-cancelled context, got %d", sum.Total())
	}
}
