package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/mooc/internal/services"
	"github.com/desertthunder/mooc/internal/shared"
)

type sequenceChecker struct {
	responses []error
	calls     int
}

func (s *sequenceChecker) Health(ctx context.Context) (*services.HealthStatus, error) {
	i := s.calls
	s.calls++
	if i < len(s.responses) && s.responses[i] != nil {
		return nil, s.responses[i]
	}
	return &services.HealthStatus{Status: "healthy", Version: "1.0.0"}, nil
}

type statusChecker struct{ status string }

func (s statusChecker) Health(ctx context.Context) (*services.HealthStatus, error) {
	return &services.HealthStatus{Status: s.status}, nil
}

func TestWaitHealthy(t *testing.T) {
	t.Run("Healthy On First Attempt", func(t *testing.T) {
		checker := &sequenceChecker{}

		status, err := WaitHealthy(context.Background(), checker, time.Millisecond, 3, nil)
		if err != nil {
			t.Fatalf("WaitHealthy failed: %v", err)
		}
		if !status.Healthy() || checker.calls != 1 {
			t.Errorf("status %+v after %d calls", status, checker.calls)
		}
	})

	t.Run("Retries Until Healthy", func(t *testing.T) {
		down := errors.New("connection refused")
		checker := &sequenceChecker{responses: []error{down, down}}
		progress := make(chan ProgressUpdate, 10)

		if _, err := WaitHealthy(context.Background(), checker, time.Millisecond, 5, progress); err != nil {
			t.Fatalf("WaitHealthy failed: %v", err)
		}
		if checker.calls != 3 {
			t.Errorf("expected 3 calls, got %d", checker.calls)
		}

		updates := drain(progress)
		if len(updates) != 2 {
			t.Fatalf("expected 2 progress updates, got %d", len(updates))
		}
		if updates[0].Phase != PollHealth || updates[1].Step != 2 {
			t.Errorf("unexpected updates %+v", updates)
		}
	})

	t.Run("Gives Up After Attempts", func(t *testing.T) {
		down := errors.New("connection refused")
		checker := &sequenceChecker{responses: []error{down, down, down}}

		_, err := WaitHealthy(context.Background(), checker, time.Millisecond, 2, nil)
		if !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
		if checker.calls != 2 {
			t.Errorf("expected 2 calls, got %d", checker.calls)
		}
	})

	t.Run("Unhealthy Status", func(t *testing.T) {
		_, err := WaitHealthy(context.Background(), statusChecker{status: "degraded"}, time.Millisecond, 2, nil)
		if !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})

	t.Run("Context Ends Polling", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := WaitHealthy(ctx, statusChecker{status: "starting"}, 10*time.Millisecond, 0, nil)
		if !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})
}
