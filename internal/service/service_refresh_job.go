package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-table-mirror/internal/logger"
)

const defaultRefreshInterval = 5 * time.Minute

type refreshJob struct {
	refresher Refresher
	interval  time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewRefreshJob creates a refreshJob that calls refresher.RefreshAll on a
// ticker. The job is idle until Start is called. interval is used by Run.
func NewRefreshJob(refresher Refresher, interval time.Duration, logger *logger.Logger) RefreshJob {
	return &refreshJob{refresher: refresher, interval: interval, logger: logger}
}

// Run implements RefreshJob and workers.Worker by starting the job with the configured
// interval.
func (j *refreshJob) Run(ctx context.Context) {
	j.Start(ctx, j.interval)
}

// Start implements RefreshJob. It stops any previously running job, then
// launches a background goroutine that calls RefreshAll every interval. If
// interval is zero or negative it defaults to 5 minutes. The goroutine exits
// when ctx is cancelled or Stop is called.
func (j *refreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.refresher.RefreshAll(jobCtx); err != nil {
					j.logger.Err(err).Msg("periodic refresh failed")
				}
			}
		}
	}()
}

// Stop implements RefreshJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running (no-op in that case).
func (j *refreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
