package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/reporting"
)

// OverdueWatcher periodically scans lending state and logs a warning
// while overdue loans exist, so operators notice without polling the
// admin API.
type OverdueWatcher struct {
	Reporting *reporting.Service
	Log       *slog.Logger
	Interval  time.Duration
}

// Start runs the scan loop until ctx is cancelled. The first scan runs
// immediately.
func (w *OverdueWatcher) Start(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		w.scan()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.scan()
			}
		}
	}()
}

func (w *OverdueWatcher) scan() {
	stats, err := w.Reporting.BuildStats()
	if err != nil {
		w.Log.Error("overdue scan failed", "error", err)
		return
	}
	if stats.OverdueCount > 0 {
		w.Log.Warn("overdue loans outstanding", "overdue", stats.OverdueCount, "borrowed", stats.BorrowedBooks)
	}
}
