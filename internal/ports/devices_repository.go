package ports

import (
	"context"

	"github.com/architeacher/device-registry/internal/domain/model"
)

type (
	Saver interface {
		// Create stores a new device in the database.
		Create(ctx context.Context, device *model.Device) error
	}

	Fetcher interface {
		// FetchByID retrieves a device by its ID.
		FetchByID(ctx context.Context, id model.DeviceID) (*model.Device, error)
	}

	Finder interface {
		// List retrieves devices matching the optional brand/state filters.
		List(ctx context.Context, filter model.DeviceFilter) ([]*model.Device, error)
	}

	Updater interface {
		// Update updates an existing device in the database.
		Update(ctx context.Context, device *model.Device) error
	}

	Deleter interface {
		// Delete removes a device from the database by its ID.
		Delete(ctx context.Context, id model.DeviceID) error
	}

	// DeviceRepository defines the interface for device persistence operations.
	DeviceRepository interface {
		Saver
		Fetcher
		Finder
		Updater
		Deleter
	}
)
