package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubMaintainer struct {
	reconciles int
	prunes     int
	retention  time.Duration
	err        error
}

func (s *stubMaintainer) Reconcile() (int, error) {
	s.reconciles++
	return 0, s.err
}

func (s *stubMaintainer) PruneActivity(retention time.Duration) (int, error) {
	s.prunes++
	s.retention = retention
	return 0, s.err
}

func TestSchedulerRunsImmediately(t *testing.T) {
	stub := &stubMaintainer{}
	s, err := NewScheduler(stub, "@hourly", 48*time.Hour)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Run()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)

	if stub.reconciles != 1 || stub.prunes != 1 {
		t.Fatalf("expected one pass of each job, got %d reconciles and %d prunes", stub.reconciles, stub.prunes)
	}
	if stub.retention != 48*time.Hour {
		t.Fatalf("expected retention to be passed through, got %v", stub.retention)
	}
}

func TestSchedulerSurvivesJobErrors(t *testing.T) {
	stub := &stubMaintainer{err: errors.New("disk full")}
	s, err := NewScheduler(stub, "*/5 * * * *", time.Hour)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Run()
	s.Stop(context.Background())
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	if _, err := NewScheduler(&stubMaintainer{}, "whenever", time.Hour); err == nil {
		t.Fatalf("expected error for invalid cron spec")
	}
}
