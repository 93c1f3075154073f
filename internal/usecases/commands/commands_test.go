package commands_test

import (
	"context"
	"testing"

	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/infrastructure"
	"github.com/architeacher/device-registry/internal/usecases/commands"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/architeacher/device-registry/pkg/metrics/noop"
	"github.com/stretchr/testify/require"
)

type mockDevicesService struct {
	createDeviceFn func(ctx context.Context, name, brand string, state model.State) (*model.Device, error)
	getDeviceFn    func(ctx context.Context, id model.DeviceID) (*model.Device, error)
	listDevicesFn  func(ctx context.Context, filter model.DeviceFilter) ([]*model.Device, error)
	updateDeviceFn func(ctx context.Context, id model.DeviceID, name, brand string, state model.State) (*model.Device, error)
	patchDeviceFn  func(ctx context.Context, id model.DeviceID, patch model.DevicePatch) (*model.Device, error)
	deleteDeviceFn func(ctx context.Context, id model.DeviceID) error
}

func (m *mockDevicesService) CreateDevice(ctx context.Context, name, brand string, state model.State) (*model.Device, error) {
	if m.createDeviceFn != nil {
		return m.createDeviceFn(ctx, name, brand, state)
	}

	return model.NewDevice(name, brand, state), nil
}

func (m *mockDevicesService) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	if m.getDeviceFn != nil {
		return m.getDeviceFn(ctx, id)
	}

	return nil, model.ErrDeviceNotFound
}

func (m *mockDevicesService) ListDevices(ctx context.Context, filter model.DeviceFilter) ([]*model.Device, error) {
	if m.listDevicesFn != nil {
		return m.listDevicesFn(ctx, filter)
	}

	return []*model.Device{}, nil
}

func (m *mockDevicesService) UpdateDevice(ctx context.Context, id model.DeviceID, name, brand string, state model.State) (*model.Device, error) {
	if m.updateDeviceFn != nil {
		return m.updateDeviceFn(ctx, id, name, brand, state)
	}

	return nil, model.ErrDeviceNotFound
}

func (m *mockDevicesService) PatchDevice(ctx context.Context, id model.DeviceID, patch model.DevicePatch) (*model.Device, error) {
	if m.patchDeviceFn != nil {
		return m.patchDeviceFn(ctx, id, patch)
	}

	return nil, model.ErrDeviceNotFound
}

func (m *mockDevicesService) DeleteDevice(ctx context.Context, id model.DeviceID) error {
	if m.deleteDeviceFn != nil {
		return m.deleteDeviceFn(ctx, id)
	}

	return model.ErrDeviceNotFound
}

func TestCreateDeviceCommandHandler(t *testing.T) {
	t.Parallel()

	log := logger.New("debug", "console")
	tp := infrastructure.NewNoopTracerProvider()
	mc := noop.NewMetricsClient()

	cases := []struct {
		name        string
		cmd         commands.CreateDeviceCommand
		setupSvc    func(*mockDevicesService)
		expectedErr error
	}{
		{
			name: "successfully create device",
			cmd: commands.CreateDeviceCommand{
				Name:  "Test Device",
				Brand: "Test Brand",
				State: model.StateAvailable,
			},
		},
		{
			name: "create device with duplicate error",
			cmd: commands.CreateDeviceCommand{
				Name:  "Duplicate Device",
				Brand: "Test Brand",
				State: model.StateAvailable,
			},
			setupSvc: func(m *mockDevicesService) {
				m.createDeviceFn = func(_ context.Context, _, _ string, _ model.State) (*model.Device, error) {
					return nil, model.ErrDuplicateDevice
				}
			},
			expectedErr: model.ErrDuplicateDevice,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockDevicesService{}
			if tc.setupSvc != nil {
				tc.setupSvc(svc)
			}

			handler := commands.NewCreateDeviceCommandHandler(svc, log, mc, tp)
			device, err := handler.Handle(t.Context(), tc.cmd)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				require.Nil(t, device)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, device)
			require.Equal(t, tc.cmd.Name, device.Name)
			require.Equal(t, tc.cmd.Brand, device.Brand)
			require.Equal(t, tc.cmd.State, device.State)
		})
	}
}

func TestUpdateDeviceCommandHandler(t *testing.T) {
	t.Parallel()

	log := logger.New("debug", "console")
	tp := infrastructure.NewNoopTracerProvider()
	mc := noop.NewMetricsClient()

	deviceID := model.NewDeviceID()

	cases := []struct {
		name        string
		cmd         commands.UpdateDeviceCommand
		setupSvc    func(*mockDevicesService)
		expectedErr error
	}{
		{
			name: "successfully update device",
			cmd: commands.UpdateDeviceCommand{
				ID:    deviceID,
				Name:  "Updated Device",
				Brand: "Updated Brand",
				State: model.StateInactive,
			},
			setupSvc: func(m *mockDevicesService) {
				m.updateDeviceFn = func(_ context.Context, id model.DeviceID, name, brand string, state model.State) (*model.Device, error) {
					device := model.NewDevice(name, brand, state)
					device.ID = id

					return device, nil
				}
			},
		},
		{
			name: "update in-use device identity fails",
			cmd: commands.UpdateDeviceCommand{
				ID:    deviceID,
				Name:  "Renamed",
				Brand: "Brand",
				State: model.StateInUse,
			},
			setupSvc: func(m *mockDevicesService) {
				m.updateDeviceFn = func(_ context.Context, _ model.DeviceID, _, _ string, _ model.State) (*model.Device, error) {
					return nil, model.ErrCannotUpdateInUseDevice
				}
			},
			expectedErr: model.ErrCannotUpdateInUseDevice,
		},
		{
			name: "update unknown device",
			cmd: commands.UpdateDeviceCommand{
				ID:    deviceID,
				Name:  "Name",
				Brand: "Brand",
				State: model.StateAvailable,
			},
			expectedErr: model.ErrDeviceNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockDevicesService{}
			if tc.setupSvc != nil {
				tc.setupSvc(svc)
			}

			handler := commands.NewUpdateDeviceCommandHandler(svc, log, mc, tp)
			device, err := handler.Handle(t.Context(), tc.cmd)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				require.Nil(t, device)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.cmd.ID, device.ID)
			require.Equal(t, tc.cmd.Name, device.Name)
		})
	}
}

func TestPatchDeviceCommandHandler(t *testing.T) {
	t.Parallel()

	log := logger.New("debug", "console")
	tp := infrastructure.NewNoopTracerProvider()
	mc := noop.NewMetricsClient()

	deviceID := model.NewDeviceID()
	newName := "Patched Device"

	cases := []struct {
		name        string
		cmd         commands.PatchDeviceCommand
		setupSvc    func(*mockDevicesService)
		expectedErr error
	}{
		{
			name: "successfully patch device name",
			cmd: commands.PatchDeviceCommand{
				ID:    deviceID,
				Patch: model.DevicePatch{Name: &newName},
			},
			setupSvc: func(m *mockDevicesService) {
				m.patchDeviceFn = func(_ context.Context, id model.DeviceID, patch model.DevicePatch) (*model.Device, error) {
					device := model.NewDevice("Original", "Brand", model.StateAvailable)
					device.ID = id
					require.NoError(t, device.ApplyPatch(patch))

					return device, nil
				}
			},
		},
		{
			name: "patch in-use device identity fails",
			cmd: commands.PatchDeviceCommand{
				ID:    deviceID,
				Patch: model.DevicePatch{Name: &newName},
			},
			setupSvc: func(m *mockDevicesService) {
				m.patchDeviceFn = func(_ context.Context, _ model.DeviceID, _ model.DevicePatch) (*model.Device, error) {
					return nil, model.ErrCannotUpdateInUseDevice
				}
			},
			expectedErr: model.ErrCannotUpdateInUseDevice,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockDevicesService{}
			if tc.setupSvc != nil {
				tc.setupSvc(svc)
			}

			handler := commands.NewPatchDeviceCommandHandler(svc, log, mc, tp)
			device, err := handler.Handle(t.Context(), tc.cmd)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				require.Nil(t, device)

				return
			}

			require.NoError(t, err)
			require.Equal(t, newName, device.Name)
		})
	}
}

func TestDeleteDeviceCommandHandler(t *testing.T) {
	t.Parallel()

	log := logger.New("debug", "console")
	tp := infrastructure.NewNoopTracerProvider()
	mc := noop.NewMetricsClient()

	cases := []struct {
		name        string
		setupSvc    func(*mockDevicesService)
		expectedErr error
	}{
		{
			name: "successfully delete device",
			setupSvc: func(m *mockDevicesService) {
				m.deleteDeviceFn = func(_ context.Context, _ model.DeviceID) error {
					return nil
				}
			},
		},
		{
			name: "delete in-use device fails",
			setupSvc: func(m *mockDevicesService) {
				m.deleteDeviceFn = func(_ context.Context, _ model.DeviceID) error {
					return model.ErrCannotDeleteInUseDevice
				}
			},
			expectedErr: model.ErrCannotDeleteInUseDevice,
		},
		{
			name:        "delete unknown device",
			expectedErr: model.ErrDeviceNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockDevicesService{}
			if tc.setupSvc != nil {
				tc.setupSvc(svc)
			}

			handler := commands.NewDeleteDeviceCommandHandler(svc, log, mc, tp)
			_, err := handler.Handle(t.Context(), commands.DeleteDeviceCommand{ID: model.NewDeviceID()})

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)

				return
			}

			require.NoError(t, err)
		})
	}
}
