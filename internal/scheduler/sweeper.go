package scheduler

import (
	"context"
	"time"

	"github.com/atlasvoyages/catalog/internal/catalog"
	"github.com/atlasvoyages/catalog/internal/logger"
)

// DefaultSweepInterval is how often expired detail entries are dropped.
const DefaultSweepInterval = 10 * time.Minute

// CacheSweeper periodically drops expired entries from the per-key tour
// detail cache, which otherwise grows with every distinct slug or id
// ever requested.
type CacheSweeper struct {
	catalog  *catalog.Service
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewCacheSweeper creates a cache sweeper.
func NewCacheSweeper(svc *catalog.Service, log logger.Logger, interval time.Duration) *CacheSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &CacheSweeper{
		catalog:  svc,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep.
func (cs *CacheSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(cs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cs.Sweep()
			case <-cs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the sweeper.
func (cs *CacheSweeper) Stop() {
	close(cs.stopCh)
}

// Sweep drops expired detail entries and reports how many were removed.
func (cs *CacheSweeper) Sweep() int {
	removed := cs.catalog.SweepExpiredDetails()
	if removed > 0 {
		cs.logger.Info("swept expired tour detail entries",
			logger.Int("removed", removed))
	}
	return removed
}
