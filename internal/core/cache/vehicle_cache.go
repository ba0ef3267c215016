package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pbarbosa/vehicle-sales/internal/core/domain"
	"github.com/pbarbosa/vehicle-sales/internal/metrics"
	"github.com/pbarbosa/vehicle-sales/internal/port"
)

const DefaultTTL = 5 * time.Minute

// VehicleCache fronts the upstream inventory list with a time-boxed copy.
// Listings favor availability: an expired cache is refreshed, and if the
// refresh fails the stale copy keeps being served. Point lookups favor
// correctness: GetByID always goes upstream, because deciding a sale on a
// stale availability status is the one failure this system exists to prevent.
//
// The whole cache is replaced in one swap under the lock; readers never see a
// partial refresh. Two goroutines that both find the cache expired may both
// refresh; the redundant upstream call is harmless.
type VehicleCache struct {
	inventory port.VehicleInventory
	ttl       time.Duration
	log       *zap.Logger
	metrics   *metrics.Metrics

	mu          sync.RWMutex
	vehicles    []domain.Vehicle
	lastRefresh time.Time
}

func NewVehicleCache(inventory port.VehicleInventory, ttl time.Duration, log *zap.Logger, m *metrics.Metrics) *VehicleCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &VehicleCache{
		inventory: inventory,
		ttl:       ttl,
		log:       log,
		metrics:   m,
	}
}

// GetAllAvailable returns the cached vehicle list, refreshing it first when
// the cache is empty or older than the TTL.
func (c *VehicleCache) GetAllAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	c.mu.RLock()
	fresh := len(c.vehicles) > 0 && time.Since(c.lastRefresh) < c.ttl
	if fresh {
		out := make([]domain.Vehicle, len(c.vehicles))
		copy(out, c.vehicles)
		c.mu.RUnlock()
		c.metrics.CacheHits.Inc()
		return out, nil
	}
	c.mu.RUnlock()

	c.metrics.CacheMisses.Inc()
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out, nil
}

// GetByID bypasses the cache entirely and asks upstream for the vehicle as it
// is right now. Returns port.ErrVehicleNotFound when upstream has no record.
func (c *VehicleCache) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return c.inventory.FetchByID(ctx, id)
}

// Refresh fetches the full available list and atomically replaces the cache.
// A failed fetch keeps a non-empty cache as-is (stale-on-failure) and only
// propagates when there is nothing to serve.
func (c *VehicleCache) Refresh(ctx context.Context) error {
	vehicles, err := c.inventory.FetchAvailable(ctx)
	if err != nil {
		c.metrics.CacheRefreshFailures.Inc()

		c.mu.RLock()
		hasStale := len(c.vehicles) > 0
		c.mu.RUnlock()

		if hasStale {
			c.log.Warn("vehicle refresh failed, serving stale cache", zap.Error(err))
			return nil
		}
		return err
	}

	c.mu.Lock()
	c.vehicles = vehicles
	c.lastRefresh = time.Now()
	c.mu.Unlock()

	c.log.Info("vehicle cache refreshed", zap.Int("count", len(vehicles)))
	return nil
}

// Clear empties the cache and forces the next listing to refresh.
func (c *VehicleCache) Clear() {
	c.mu.Lock()
	c.vehicles = nil
	c.lastRefresh = time.Time{}
	c.mu.Unlock()
}
