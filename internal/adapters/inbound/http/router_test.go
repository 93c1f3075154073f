package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	inboundhttp "github.com/architeacher/device-registry/internal/adapters/inbound/http"
	"github.com/architeacher/device-registry/internal/config"
	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/infrastructure"
	"github.com/architeacher/device-registry/internal/usecases"
	"github.com/architeacher/device-registry/pkg/decorator"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/architeacher/device-registry/pkg/metrics/noop"
	"github.com/stretchr/testify/require"
)

type stubDevicesService struct {
	devices map[model.DeviceID]*model.Device
}

func newStubDevicesService() *stubDevicesService {
	return &stubDevicesService{devices: make(map[model.DeviceID]*model.Device)}
}

func (s *stubDevicesService) CreateDevice(_ context.Context, name, brand string, state model.State) (*model.Device, error) {
	device := model.NewDevice(name, brand, state)
	s.devices[device.ID] = device

	return device, nil
}

func (s *stubDevicesService) GetDevice(_ context.Context, id model.DeviceID) (*model.Device, error) {
	device, ok := s.devices[id]
	if !ok {
		return nil, model.ErrDeviceNotFound
	}

	return device, nil
}

func (s *stubDevicesService) ListDevices(_ context.Context, _ model.DeviceFilter) ([]*model.Device, error) {
	devices := make([]*model.Device, 0, len(s.devices))
	for _, device := range s.devices {
		devices = append(devices, device)
	}

	return devices, nil
}

func (s *stubDevicesService) UpdateDevice(_ context.Context, id model.DeviceID, name, brand string, state model.State) (*model.Device, error) {
	device, ok := s.devices[id]
	if !ok {
		return nil, model.ErrDeviceNotFound
	}

	if err := device.Update(name, brand, state); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *stubDevicesService) PatchDevice(_ context.Context, id model.DeviceID, patch model.DevicePatch) (*model.Device, error) {
	device, ok := s.devices[id]
	if !ok {
		return nil, model.ErrDeviceNotFound
	}

	if err := device.ApplyPatch(patch); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *stubDevicesService) DeleteDevice(_ context.Context, id model.DeviceID) error {
	device, ok := s.devices[id]
	if !ok {
		return model.ErrDeviceNotFound
	}

	if !device.CanDelete() {
		return model.ErrCannotDeleteInUseDevice
	}

	delete(s.devices, id)

	return nil
}

type stubHealthChecker struct{}

func (stubHealthChecker) Ping(_ context.Context) error { return nil }

func newTestRouter(t *testing.T, svc *stubDevicesService) http.Handler {
	t.Helper()

	log := logger.NewTestLogger()
	app := usecases.NewApplication(
		svc,
		stubHealthChecker{},
		nil,
		decorator.CacheConfig{},
		log,
		noop.NewMetricsClient(),
		infrastructure.NewNoopTracerProvider(),
	)

	cfg := &config.ServiceConfig{}
	cfg.HTTPServer.WriteTimeout = 30 * time.Second

	return inboundhttp.NewRouter(inboundhttp.RouterConfig{
		App:    app,
		Logger: log,
		Config: cfg,
	})
}

func TestRouter_DeviceLifecycle(t *testing.T) {
	t.Parallel()

	svc := newStubDevicesService()
	router := newTestRouter(t, svc)
	server := httptest.NewServer(router)
	defer server.Close()

	// Create
	res, err := http.Post(server.URL+"/v1/devices", "application/json",
		jsonBody(t, map[string]any{"name": "Pixel 9", "brand": "Google", "state": "available"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created map[string]any
	decodeBody(t, res, &created)
	id := created["id"].(string)
	require.NotEmpty(t, id)
	require.Equal(t, "/v1/devices/"+id, res.Header.Get("Location"))

	// Get
	res, err = http.Get(server.URL + "/v1/devices/" + id)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var fetched map[string]any
	decodeBody(t, res, &fetched)
	require.Equal(t, "Pixel 9", fetched["name"])

	// List
	res, err = http.Get(server.URL + "/v1/devices")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var listed []map[string]any
	decodeBody(t, res, &listed)
	require.Len(t, listed, 1)

	// Delete
	req, err := http.NewRequest(http.MethodDelete, server.URL+"/v1/devices/"+id, nil)
	require.NoError(t, err)
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	res.Body.Close()

	res, err = http.Get(server.URL + "/v1/devices/" + id)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()
}

func TestRouter_HealthEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newStubDevicesService())
	server := httptest.NewServer(router)
	defer server.Close()

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		res, err := http.Get(server.URL + path)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode, path)
		res.Body.Close()
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newStubDevicesService())
	server := httptest.NewServer(router)
	defer server.Close()

	res, err := http.Get(server.URL + "/v1/unknown")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()
}

func TestRouter_RequestIDPropagated(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newStubDevicesService())
	server := httptest.NewServer(router)
	defer server.Close()

	res, err := http.Get(server.URL + "/v1/devices")
	require.NoError(t, err)
	defer res.Body.Close()

	require.NotEmpty(t, res.Header.Get("X-Request-Id"))
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

func decodeBody(t *testing.T, res *http.Response, v any) {
	t.Helper()
	defer res.Body.Close()

	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
}
