package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/usecases"
	"github.com/architeacher/device-registry/internal/usecases/commands"
	"github.com/architeacher/device-registry/internal/usecases/queries"
	"github.com/go-chi/chi/v5"
)

type DeviceHandler struct {
	app *usecases.Application
}

func NewDeviceHandler(app *usecases.Application) *DeviceHandler {
	return &DeviceHandler{app: app}
}

func (h *DeviceHandler) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var req CreateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformedRequest(w)

		return
	}

	if validationErrors := validateRequest(req); validationErrors != nil {
		writeValidationFailure(w, validationErrors)

		return
	}

	state, err := model.ParseState(req.State)
	if err != nil {
		writeMalformedRequest(w)

		return
	}

	device, err := h.app.Commands.CreateDevice.Handle(r.Context(), commands.CreateDeviceCommand{
		Name:  req.Name,
		Brand: req.Brand,
		State: state,
	})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v1/devices/%s", device.ID.String()))
	writeJSONResponse(w, http.StatusCreated, toDeviceResponse(device))
}

func (h *DeviceHandler) GetDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := h.devicePathID(w, r)
	if !ok {
		return
	}

	device, err := h.app.Queries.GetDevice.Execute(r.Context(), queries.GetDeviceQuery{ID: id})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceResponse(device))
}

func (h *DeviceHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	filter := model.DeviceFilter{}

	if brand := r.URL.Query().Get("brand"); brand != "" {
		filter.Brand = &brand
	}

	if stateParam := r.URL.Query().Get("state"); stateParam != "" {
		state, err := model.ParseState(stateParam)
		if err != nil {
			writeInvalidParameter(w, "state")

			return
		}

		filter.State = &state
	}

	devices, err := h.app.Queries.ListDevices.Execute(r.Context(), queries.ListDevicesQuery{Filter: filter})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceListResponse(devices))
}

func (h *DeviceHandler) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := h.devicePathID(w, r)
	if !ok {
		return
	}

	var req UpdateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformedRequest(w)

		return
	}

	if validationErrors := validateRequest(req); validationErrors != nil {
		writeValidationFailure(w, validationErrors)

		return
	}

	state, err := model.ParseState(req.State)
	if err != nil {
		writeMalformedRequest(w)

		return
	}

	device, err := h.app.Commands.UpdateDevice.Handle(r.Context(), commands.UpdateDeviceCommand{
		ID:    id,
		Name:  req.Name,
		Brand: req.Brand,
		State: state,
	})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceResponse(device))
}

func (h *DeviceHandler) PatchDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := h.devicePathID(w, r)
	if !ok {
		return
	}

	var req PatchDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformedRequest(w)

		return
	}

	if req.IsEmpty() {
		validationErrors := model.NewValidationErrors()
		validationErrors.Add("", model.ErrEmptyPatch.Error(), "required")
		writeValidationFailure(w, validationErrors)

		return
	}

	if validationErrors := validateRequest(req); validationErrors != nil {
		writeValidationFailure(w, validationErrors)

		return
	}

	patch := model.DevicePatch{
		Name:  req.Name,
		Brand: req.Brand,
	}

	if req.State != nil {
		state, err := model.ParseState(*req.State)
		if err != nil {
			writeMalformedRequest(w)

			return
		}

		patch.State = &state
	}

	device, err := h.app.Commands.PatchDevice.Handle(r.Context(), commands.PatchDeviceCommand{
		ID:    id,
		Patch: patch,
	})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDeviceResponse(device))
}

func (h *DeviceHandler) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := h.devicePathID(w, r)
	if !ok {
		return
	}

	_, err := h.app.Commands.DeleteDevice.Handle(r.Context(), commands.DeleteDeviceCommand{ID: id})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DeviceHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchLiveness.Execute(r.Context(), queries.FetchLivenessQuery{})
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "down",
			"timestamp": time.Now().UTC(),
		})

		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    result.Status,
		"timestamp": time.Now().UTC(),
	})
}

func (h *DeviceHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchReadiness.Execute(r.Context(), queries.FetchReadinessQuery{})
	if err != nil || !result.Ready {
		writeJSONResponse(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "down",
			"timestamp": time.Now().UTC(),
		})

		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    result.Status,
		"timestamp": time.Now().UTC(),
	})
}

func (h *DeviceHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchHealthReport.Execute(r.Context(), queries.FetchHealthReportQuery{})
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "down",
			"timestamp": time.Now().UTC(),
		})

		return
	}

	httpStatus := http.StatusOK
	if result.Status != "healthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSONResponse(w, httpStatus, map[string]any{
		"status":       result.Status,
		"version":      result.Version,
		"uptime":       result.Uptime,
		"dependencies": result.Dependencies,
		"timestamp":    time.Now().UTC(),
	})
}

// devicePathID parses the {deviceID} path parameter, writing the invalid
// parameter problem itself when the value is not a UUID.
func (h *DeviceHandler) devicePathID(w http.ResponseWriter, r *http.Request) (model.DeviceID, bool) {
	id, err := model.ParseDeviceID(chi.URLParam(r, "deviceID"))
	if err != nil {
		writeInvalidParameter(w, "deviceID")

		return model.DeviceID{}, false
	}

	return id, true
}
