package services

import (
	"context"

	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/ports"
	"github.com/architeacher/device-registry/pkg/logger"
)

// DevicesService sequences fetch, policy check, mutation and persistence
// for every device operation. The mutation rules themselves live on the
// entity; the service only orchestrates.
type DevicesService struct {
	repo   ports.DeviceRepository
	cache  ports.DevicesCache
	logger logger.Logger
}

func NewDevicesService(repo ports.DeviceRepository, cache ports.DevicesCache, log logger.Logger) *DevicesService {
	return &DevicesService{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (s *DevicesService) CreateDevice(ctx context.Context, name, brand string, state model.State) (*model.Device, error) {
	device := model.NewDevice(name, brand, state)

	if err := s.repo.Create(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *DevicesService) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	return s.repo.FetchByID(ctx, id)
}

func (s *DevicesService) ListDevices(ctx context.Context, filter model.DeviceFilter) ([]*model.Device, error) {
	return s.repo.List(ctx, filter)
}

func (s *DevicesService) UpdateDevice(ctx context.Context, id model.DeviceID, name, brand string, state model.State) (*model.Device, error) {
	device, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := device.Update(name, brand, state); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, device); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, id)

	return device, nil
}

func (s *DevicesService) PatchDevice(ctx context.Context, id model.DeviceID, patch model.DevicePatch) (*model.Device, error) {
	device, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := device.ApplyPatch(patch); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, device); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, id)

	return device, nil
}

func (s *DevicesService) DeleteDevice(ctx context.Context, id model.DeviceID) error {
	device, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		return err
	}

	if !device.CanDelete() {
		return model.ErrCannotDeleteInUseDevice
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx, id)

	return nil
}

// invalidateCache is best effort: a stale entry expires with its TTL, so a
// failed invalidation must not fail the mutation that already persisted.
func (s *DevicesService) invalidateCache(ctx context.Context, id model.DeviceID) {
	if s.cache == nil {
		return
	}

	if err := s.cache.InvalidateDevice(ctx, id); err != nil {
		log := s.logger.WithContext(ctx)
		log.Warn().
			Err(err).
			Str("device_id", id.String()).
			Msg("failed to invalidate cached device")
	}
}
