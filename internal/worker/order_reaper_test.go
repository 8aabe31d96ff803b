package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	testhelpers "github.com/virebo/lanthandel/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestReaperSweeps(t *testing.T) {
	facade := &testhelpers.ReaperFacadeStub{}
	reaper := NewUnpaidOrderReaper(facade, 10*time.Millisecond, 24*time.Hour, 50, 1, testLogger())

	before := time.Now()
	reaper.Start(context.Background())
	waitFor(t, time.Second, func() bool { return facade.CallCount() >= 1 })
	reaper.Stop()

	call := facade.Calls[0]
	if call.Limit != 50 {
		t.Fatalf("limit = %d, want 50", call.Limit)
	}
	wantCutoff := before.Add(-24 * time.Hour)
	if call.Cutoff.Before(wantCutoff.Add(-time.Minute)) || call.Cutoff.After(time.Now().Add(-24*time.Hour).Add(time.Minute)) {
		t.Fatalf("cutoff = %v, want about %v", call.Cutoff, wantCutoff)
	}
}

func TestReaperDrainsFullBatches(t *testing.T) {
	// Two full batches then a short one; the sweep must loop until drained.
	results := []int{5, 5, 2}
	facade := &testhelpers.ReaperFacadeStub{}
	facade.ReapFn = func(context.Context, time.Time, int) (int, error) {
		if len(results) == 0 {
			return 0, nil
		}
		n := results[0]
		results = results[1:]
		return n, nil
	}
	reaper := NewUnpaidOrderReaper(facade, 10*time.Millisecond, time.Hour, 5, 1, testLogger())

	reaper.Start(context.Background())
	waitFor(t, time.Second, func() bool { return facade.CallCount() >= 3 })
	reaper.Stop()
}

func TestReaperSurvivesErrors(t *testing.T) {
	facade := &testhelpers.ReaperFacadeStub{
		ReapFn: func(context.Context, time.Time, int) (int, error) {
			return 0, errors.New("database unavailable")
		},
	}
	reaper := NewUnpaidOrderReaper(facade, 10*time.Millisecond, time.Hour, 5, 1, testLogger())

	reaper.Start(context.Background())
	waitFor(t, time.Second, func() bool { return facade.CallCount() >= 2 })
	reaper.Stop()
}

func TestReaperStop(t *testing.T) {
	facade := &testhelpers.ReaperFacadeStub{}
	reaper := NewUnpaidOrderReaper(facade, 10*time.Millisecond, time.Hour, 5, 3, testLogger())

	reaper.Start(context.Background())
	waitFor(t, time.Second, func() bool { return facade.CallCount() >= 1 })
	reaper.Stop()

	settled := facade.CallCount()
	time.Sleep(50 * time.Millisecond)
	if facade.CallCount() != settled {
		t.Fatal("sweeps continued after Stop")
	}

	// Stop again is a no-op.
	reaper.Stop()
}

func TestReaperDefaults(t *testing.T) {
	reaper := NewUnpaidOrderReaper(&testhelpers.ReaperFacadeStub{}, 0, time.Hour, 0, 0, testLogger())
	if reaper.batchSize != 1 || reaper.workers != 1 || reaper.pollInterval != time.Minute {
		t.Fatalf("defaults = batch %d workers %d interval %v", reaper.batchSize, reaper.workers, reaper.pollInterval)
	}
}
