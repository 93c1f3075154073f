package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/infrastructure"
	"github.com/architeacher/device-registry/internal/ports"
	"github.com/architeacher/device-registry/pkg/circuitbreaker"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	deviceCacheVersion = "v1"
	deviceKeyPrefix    = "device:" + deviceCacheVersion + ":"
)

type (
	// cachedDevice represents a device in JSON format for caching.
	cachedDevice struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Brand     string    `json:"brand"`
		State     string    `json:"state"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	// DevicesCacheRepository implements the DevicesCache port using
	// Redis/KeyDB. All cache access goes through a circuit breaker so a
	// failing cache degrades reads to the database instead of failing them.
	DevicesCacheRepository struct {
		client  *infrastructure.CacheClient
		breaker *circuitbreaker.CircuitBreaker[[]byte]
		logger  logger.Logger
	}
)

// NewDevicesCacheRepository creates a new devices cache repository.
func NewDevicesCacheRepository(
	client *infrastructure.CacheClient,
	breaker *circuitbreaker.CircuitBreaker[[]byte],
	log logger.Logger,
) *DevicesCacheRepository {
	return &DevicesCacheRepository{
		client:  client,
		breaker: breaker,
		logger:  log,
	}
}

// GetDevice retrieves a device from the cache by ID.
func (r *DevicesCacheRepository) GetDevice(ctx context.Context, id model.DeviceID) (*ports.CacheResult[*model.Device], error) {
	key := r.deviceKey(id)

	data, err := circuitbreaker.Execute(r.breaker, func() ([]byte, error) {
		return r.client.Get(ctx, key)
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &ports.CacheResult[*model.Device]{
				Hit: false,
				Key: key,
			}, nil
		}

		return nil, fmt.Errorf("getting cached device: %w", err)
	}

	var cached cachedDevice
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("unmarshalling cached device: %w", err)
	}

	device, err := r.toDomainDevice(cached)
	if err != nil {
		return nil, fmt.Errorf("converting cached device: %w", err)
	}

	return &ports.CacheResult[*model.Device]{
		Data: device,
		Hit:  true,
		Key:  key,
	}, nil
}

// SetDevice stores a device in the cache with the given TTL.
func (r *DevicesCacheRepository) SetDevice(ctx context.Context, device *model.Device, ttl time.Duration) error {
	key := r.deviceKey(device.ID)

	data, err := json.Marshal(r.toCachedDevice(device))
	if err != nil {
		return fmt.Errorf("marshalling device: %w", err)
	}

	_, err = circuitbreaker.Execute(r.breaker, func() ([]byte, error) {
		return nil, r.client.Set(ctx, key, data, ttl)
	})
	if err != nil {
		return fmt.Errorf("setting cached device: %w", err)
	}

	return nil
}

// InvalidateDevice removes a device from the cache.
func (r *DevicesCacheRepository) InvalidateDevice(ctx context.Context, id model.DeviceID) error {
	key := r.deviceKey(id)

	_, err := circuitbreaker.Execute(r.breaker, func() ([]byte, error) {
		return nil, r.client.Delete(ctx, key)
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("invalidating cached device: %w", err)
	}

	return nil
}

func (r *DevicesCacheRepository) deviceKey(id model.DeviceID) string {
	return deviceKeyPrefix + id.String()
}

func (r *DevicesCacheRepository) toCachedDevice(device *model.Device) cachedDevice {
	return cachedDevice{
		ID:        device.ID.String(),
		Name:      device.Name,
		Brand:     device.Brand,
		State:     device.State.String(),
		CreatedAt: device.CreatedAt,
		UpdatedAt: device.UpdatedAt,
	}
}

func (r *DevicesCacheRepository) toDomainDevice(cached cachedDevice) (*model.Device, error) {
	id, err := model.ParseDeviceID(cached.ID)
	if err != nil {
		return nil, err
	}

	state, err := model.ParseState(cached.State)
	if err != nil {
		return nil, err
	}

	return &model.Device{
		ID:        id,
		Name:      cached.Name,
		Brand:     cached.Brand,
		State:     state,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}, nil
}
