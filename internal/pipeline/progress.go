package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"lingoreel/internal/logging"
)

// begin logs the start of a stage and returns a func logging its completion.
func (r *Runner) begin(ctx context.Context, stage string, items int) func() {
	logger := logging.WithContext(ctx, r.logger)
	start := r.now()
	logger.Info("stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.Int("items", items),
	)
	return func() {
		logger.Info("stage completed",
			logging.String(logging.FieldEventType, "stage_complete"),
			logging.Duration("stage_duration", r.now().Sub(start)),
		)
	}
}

// progressTracker counts finished items of one stage from several
// goroutines.
type progressTracker struct {
	mu      sync.Mutex
	stage   string
	total   int
	done    int
	notify  ProgressFunc
	sampler *logging.ProgressSampler
	logger  *slog.Logger
}

func (r *Runner) tracker(ctx context.Context, stage string, total int) *progressTracker {
	return &progressTracker{
		stage:   stage,
		total:   total,
		notify:  r.progress,
		sampler: logging.NewProgressSampler(25),
		logger:  logging.WithContext(ctx, r.logger),
	}
}

func (t *progressTracker) step() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done++
	if t.notify != nil {
		t.notify(t.stage, t.done, t.total)
	}
	percent := 100.0
	if t.total > 0 {
		percent = float64(t.done) / float64(t.total) * 100
	}
	if t.sampler.ShouldLog(percent, t.stage) {
		t.logger.Debug("stage progress",
			logging.Int("done", t.done),
			logging.Int("total", t.total),
			logging.Float64("progress_percent", percent),
		)
	}
}

