package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/atlasvoyages/catalog/internal/catalog"
	"github.com/atlasvoyages/catalog/internal/logger"
)

// CacheWarmer keeps the category and featured-tour caches primed so the
// first page view after a TTL expiry does not pay the store round trip.
// It refreshes on an interval and on the manual trigger fed by the
// refresh endpoint.
type CacheWarmer struct {
	catalog       *catalog.Service
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}

	mu       sync.Mutex
	lastWarm time.Time
}

// NewCacheWarmer creates a cache warmer.
func NewCacheWarmer(
	svc *catalog.Service,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CacheWarmer {
	return &CacheWarmer{
		catalog:       svc,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start warms immediately, then keeps re-warming on the interval or
// when the manual trigger fires.
func (cw *CacheWarmer) Start(ctx context.Context) {
	cw.Warm(ctx)

	ticker := time.NewTicker(cw.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cw.Warm(ctx)
			case <-cw.manualTrigger:
				cw.logger.Info("manual cache warm triggered")
				cw.Warm(ctx)
			case <-cw.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the warmer.
func (cw *CacheWarmer) Stop() {
	close(cw.stopCh)
}

// Warm refetches the list caches. Best effort: a store fault leaves the
// previous cached lists in place and the next tick retries.
func (cw *CacheWarmer) Warm(ctx context.Context) {
	if err := cw.catalog.Refresh(ctx); err != nil {
		cw.logger.Error("cache warm failed", logger.Error(err))
		return
	}

	cw.mu.Lock()
	cw.lastWarm = time.Now()
	cw.mu.Unlock()

	stats := cw.catalog.CacheStats()
	cw.logger.Info("catalog caches warmed",
		logger.Bool("categories_cached", stats.CategoriesCached),
		logger.Bool("featured_cached", stats.FeaturedCached))
}

// LastWarm returns the timestamp of the last successful warm, zero when
// none has completed yet. The readiness endpoint gates on it.
func (cw *CacheWarmer) LastWarm() time.Time {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	return cw.lastWarm
}
