package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/architeacher/device-registry/internal/domain/model"
)

const (
	applicationProblemJSON = "application/problem+json"

	codeNotFound          = "NOT_FOUND"
	codeDomainValidation  = "DOMAIN_VALIDATION"
	codeRequestValidation = "REQUEST_VALIDATION"
	codeMalformedRequest  = "MALFORMED_REQUEST"
	codeInvalidParameter  = "INVALID_PARAMETER"
	codeInternalError     = "INTERNAL_ERROR"
)

type (
	fieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}

	// Problem is an RFC 7807 problem document carrying the error category
	// tag and a timestamp alongside the standard members.
	Problem struct {
		Type      string       `json:"type"`
		Title     string       `json:"title"`
		Status    int          `json:"status"`
		Detail    string       `json:"detail"`
		ErrorCode string       `json:"errorCode"`
		Timestamp time.Time    `json:"timestamp"`
		Errors    []fieldError `json:"errors,omitempty"`
	}
)

func writeProblem(w http.ResponseWriter, status int, title, errorCode, detail string, fieldErrors ...fieldError) {
	w.Header().Set(contentTypeHeader, applicationProblemJSON)
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(Problem{
		Type:      "about:blank",
		Title:     title,
		Status:    status,
		Detail:    detail,
		ErrorCode: errorCode,
		Timestamp: time.Now().UTC(),
		Errors:    fieldErrors,
	})
}

func writeNotFound(w http.ResponseWriter, detail string) {
	writeProblem(w, http.StatusNotFound, "Resource not found", codeNotFound, detail)
}

func writeDomainViolation(w http.ResponseWriter, detail string) {
	writeProblem(w, http.StatusUnprocessableEntity, "Domain validation failed", codeDomainValidation, detail)
}

func writeValidationFailure(w http.ResponseWriter, validationErrors *model.ValidationErrors) {
	fieldErrors := make([]fieldError, 0, len(validationErrors.Errors))
	for _, ve := range validationErrors.Errors {
		fieldErrors = append(fieldErrors, fieldError{Field: ve.Field, Message: ve.Message})
	}

	writeProblem(w, http.StatusBadRequest, "Request validation failed", codeRequestValidation,
		"One or more fields are invalid.", fieldErrors...)
}

func writeMalformedRequest(w http.ResponseWriter) {
	writeProblem(w, http.StatusBadRequest, "Malformed request", codeMalformedRequest,
		"Request body is invalid or could not be parsed.")
}

func writeInvalidParameter(w http.ResponseWriter, param string) {
	writeProblem(w, http.StatusBadRequest, "Invalid parameter", codeInvalidParameter,
		"Parameter '"+param+"' has an invalid value.")
}

// writeDomainError is the single boundary translation from domain errors
// to HTTP problem documents.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErrors *model.ValidationErrors

	switch {
	case errors.Is(err, model.ErrDeviceNotFound):
		writeNotFound(w, model.ErrDeviceNotFound.Error())

	case errors.Is(err, model.ErrCannotUpdateInUseDevice),
		errors.Is(err, model.ErrCannotDeleteInUseDevice):
		writeDomainViolation(w, err.Error())

	case errors.Is(err, model.ErrInvalidState):
		writeMalformedRequest(w)

	case errors.As(err, &validationErrors):
		writeValidationFailure(w, validationErrors)

	default:
		writeProblem(w, http.StatusInternalServerError, "Internal server error", codeInternalError,
			"An unexpected error occurred.")
	}
}
