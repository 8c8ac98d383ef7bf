// app/bootstrap.go
package app

import (
	"context"
	"log"
	"time"

	"libtool/db"
)

// Bootstrap runs the overdue sweep once at process start and, when
// SWEEP_INTERVAL_SECONDS is set, keeps it running on a ticker until ctx is
// cancelled. The sweep is idempotent, so overlapping triggers are harmless.
func Bootstrap(ctx context.Context, cfg Config, repo *db.Repo) {
	sweepOnce(ctx, repo, "startup")

	if cfg.SweepInterval <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(cfg.SweepInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				sweepOnce(ctx, repo, "periodic")
			}
		}
	}()
}

func sweepOnce(ctx context.Context, repo *db.Repo, trigger string) {
	n, err := repo.SweepOverdue(ctx, db.Today())
	if err != nil {
		log.Printf("%s overdue sweep failed: %v", trigger, err)
		return
	}
	if n > 0 {
		log.Printf("%s overdue sweep: %d issues flagged", trigger, n)
	}
}
