package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/architeacher/device-registry/internal/domain/model"
)

const (
	contentTypeHeader = "Content-Type"
	applicationJSON   = "application/json"
)

type deviceResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Brand     string     `json:"brand"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func toDeviceResponse(device *model.Device) deviceResponse {
	resp := deviceResponse{
		ID:        device.ID.String(),
		Name:      device.Name,
		Brand:     device.Brand,
		State:     device.State.String(),
		CreatedAt: device.CreatedAt,
	}

	if !device.UpdatedAt.IsZero() {
		updatedAt := device.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

func toDeviceListResponse(devices []*model.Device) []deviceResponse {
	responses := make([]deviceResponse, 0, len(devices))
	for _, device := range devices {
		responses = append(responses, toDeviceResponse(device))
	}

	return responses
}

func writeJSONResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set(contentTypeHeader, applicationJSON)
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}
