package server

import (
	"context"
	"time"

	"github.com/adhub/adhub/backend/internal/logging"
)

// ExpirySweeper deletes expired travel schedules.
type ExpirySweeper interface {
	SweepExpired(ctx context.Context, profileID *string) (int64, error)
}

// RunSweeper sweeps once immediately and then every interval until ctx is
// cancelled. Failures are logged and the loop keeps going.
func RunSweeper(ctx context.Context, sweeper ExpirySweeper, interval time.Duration, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Default()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := sweeper.SweepExpired(ctx, nil); err != nil && ctx.Err() == nil {
			logger.WarnContext(ctx, "periodic travel sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
