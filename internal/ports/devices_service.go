package ports

import (
	"context"

	"github.com/architeacher/device-registry/internal/domain/model"
)

// DevicesService defines the interface for device business operations.
type DevicesService interface {
	// CreateDevice creates a new device with the given parameters.
	CreateDevice(ctx context.Context, name, brand string, state model.State) (*model.Device, error)

	// GetDevice retrieves a device by its ID.
	GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error)

	// ListDevices retrieves devices matching the optional filters.
	ListDevices(ctx context.Context, filter model.DeviceFilter) ([]*model.Device, error)

	// UpdateDevice fully replaces the mutable fields of a device.
	UpdateDevice(ctx context.Context, id model.DeviceID, name, brand string, state model.State) (*model.Device, error)

	// PatchDevice applies a partial update to a device.
	PatchDevice(ctx context.Context, id model.DeviceID, patch model.DevicePatch) (*model.Device, error)

	// DeleteDevice deletes a device by its ID.
	DeleteDevice(ctx context.Context, id model.DeviceID) error
}
