package tasks

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/mooc/internal/services"
	"github.com/desertthunder/mooc/internal/shared"
)

// HealthChecker is the subset of [services.CourseService] used for polling.
type HealthChecker interface {
	Health(ctx context.Context) (*services.HealthStatus, error)
}

// WaitHealthy polls checker until it reports healthy, attempts run out, or ctx ends.
//
// Attempts are spaced by interval. attempts <= 0 polls until ctx is done.
func WaitHealthy(ctx context.Context, checker HealthChecker, interval time.Duration, attempts int, progress chan<- ProgressUpdate) (*services.HealthStatus, error) {
	if interval <= 0 {
		interval = time.Second
	}

	limiter := rate.NewLimiter(rate.Every(interval), 1)

	var lastErr error
	for attempt := 1; attempts <= 0 || attempt <= attempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v (last error: %v)", shared.ErrTimeout, err, lastErr)
		}

		status, err := checker.Health(ctx)
		if err == nil && status.Healthy() {
			return status, nil
		}
		if err == nil && status == nil {
			err = fmt.Errorf("%w: empty health response", shared.ErrInvalidResponse)
		} else if err == nil {
			err = fmt.Errorf("%w: status %q", shared.ErrServiceUnavailable, status.Status)
		}
		lastErr = err
		sendProgress(progress, pollHealthUpdate(attempt, attempts, err))
	}

	return nil, fmt.Errorf("%w: backend not healthy after %d attempts: %v", shared.ErrTimeout, attempts, lastErr)
}
