package repos

import (
	"context"
	"time"

	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/ports"
	"github.com/architeacher/device-registry/internal/usecases/queries"
)

// GetDeviceCacheAdapter adapts DevicesCache for GetDeviceQuery.
type GetDeviceCacheAdapter struct {
	cache ports.DevicesCache
}

// NewGetDeviceCacheAdapter creates a new cache adapter for GetDeviceQuery.
func NewGetDeviceCacheAdapter(cache ports.DevicesCache) *GetDeviceCacheAdapter {
	return &GetDeviceCacheAdapter{cache: cache}
}

// Get retrieves a device from the cache.
func (a *GetDeviceCacheAdapter) Get(ctx context.Context, query queries.GetDeviceQuery) (*model.Device, bool, error) {
	result, err := a.cache.GetDevice(ctx, query.ID)
	if err != nil {
		return nil, false, err
	}

	return result.Data, result.Hit, nil
}

// Set stores a device in the cache.
func (a *GetDeviceCacheAdapter) Set(ctx context.Context, _ queries.GetDeviceQuery, result *model.Device, ttl time.Duration) error {
	return a.cache.SetDevice(ctx, result, ttl)
}
