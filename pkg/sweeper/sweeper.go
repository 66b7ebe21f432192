package sweeper

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/wardenlock/warden/pkg/metrics"
	"github.com/wardenlock/warden/pkg/store"
	"github.com/wardenlock/warden/pkg/types"
)

// Sweeper reclaims expired records on a fixed interval so resources become
// acquirable again even when their holder vanished. Each pass is idempotent;
// the store guarantees a record renewed in the meantime is never removed.
type Sweeper struct {
	store    store.Store
	interval time.Duration
	logger   hclog.Logger
}

func New(s store.Store, interval time.Duration, logger hclog.Logger) *Sweeper {
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{Name: "sweeper", Output: os.Stderr})
	}
	return &Sweeper{
		store:    s,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks, sweeping every interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	reclaimed, err := s.store.Sweep(ctx)
	if err != nil {
		//a follower or a flaky backend; the next tick tries again
		if errors.Is(err, types.ErrUnavailable) {
			s.logger.Debug("sweep skipped", "cause", err)
		} else {
			s.logger.Error("sweep failed", "error", err)
		}
		return
	}

	if reclaimed > 0 {
		metrics.SweepReclaimedTotal.Add(float64(reclaimed))
		s.logger.Info("reclaimed expired records", "count", reclaimed)
	}

	if stats, err := s.store.Stats(ctx); err == nil {
		metrics.RecordsActive.Set(float64(stats.Records))
	}
}
