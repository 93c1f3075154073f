package model

import (
	"time"

	"github.com/google/uuid"
)

type DeviceID struct {
	uuid.UUID
}

func NewDeviceID() DeviceID {
	return DeviceID{UUID: uuid.Must(uuid.NewV7())}
}

func ParseDeviceID(s string) (DeviceID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return DeviceID{}, err
	}

	return DeviceID{UUID: id}, nil
}

func (d DeviceID) String() string {
	return d.UUID.String()
}

func (d DeviceID) IsZero() bool {
	return d.UUID == uuid.Nil
}

type Device struct {
	ID        DeviceID
	Name      string
	Brand     string
	State     State
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDevice stamps the identifier and creation time before the first
// repository write; neither is ever supplied by a caller.
func NewDevice(name, brand string, state State) *Device {
	now := time.Now().UTC()

	return &Device{
		ID:        NewDeviceID(),
		Name:      name,
		Brand:     brand,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanUpdateNameAndBrand reports whether the identity fields (name, brand)
// are mutable. They are frozen while the device is in use.
func (d *Device) CanUpdateNameAndBrand() bool {
	return d.State != StateInUse
}

// CanDelete reports whether the device may be removed. In-use devices
// cannot be deleted.
func (d *Device) CanDelete() bool {
	return d.State != StateInUse
}

// Update replaces all mutable fields. While the device is in use a change
// to name or brand is rejected; the state field itself may always change.
func (d *Device) Update(name, brand string, state State) error {
	if !d.CanUpdateNameAndBrand() && (name != d.Name || brand != d.Brand) {
		return ErrCannotUpdateInUseDevice
	}

	d.Name = name
	d.Brand = brand
	d.State = state
	d.UpdatedAt = time.Now().UTC()

	return nil
}

// DevicePatch carries a partial update. A nil field means "no change
// requested" and never participates in the in-use identity check.
type DevicePatch struct {
	Name  *string
	Brand *string
	State *State
}

// IsEmpty reports whether the patch carries no fields at all.
func (p DevicePatch) IsEmpty() bool {
	return p.Name == nil && p.Brand == nil && p.State == nil
}

// ApplyPatch applies only the supplied fields, subject to the same in-use
// identity freeze as Update.
func (d *Device) ApplyPatch(patch DevicePatch) error {
	if !d.CanUpdateNameAndBrand() {
		if patch.Name != nil && *patch.Name != d.Name {
			return ErrCannotUpdateInUseDevice
		}

		if patch.Brand != nil && *patch.Brand != d.Brand {
			return ErrCannotUpdateInUseDevice
		}
	}

	if patch.Name != nil {
		d.Name = *patch.Name
	}

	if patch.Brand != nil {
		d.Brand = *patch.Brand
	}

	if patch.State != nil {
		d.State = *patch.State
	}

	d.UpdatedAt = time.Now().UTC()

	return nil
}

// DeviceFilter narrows a listing. Nil fields match everything; the brand
// comparison is case-insensitive, the state comparison exact.
type DeviceFilter struct {
	Brand *string
	State *State
}

func (f DeviceFilter) IsEmpty() bool {
	return f.Brand == nil && f.State == nil
}
