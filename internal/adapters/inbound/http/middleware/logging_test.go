package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/architeacher/device-registry/internal/adapters/inbound/http/middleware"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestAccessLogger_LogsRequest(t *testing.T) {
	t.Parallel()

	logBuffer := &bytes.Buffer{}
	log := logger.NewBufferedTestLogger(logBuffer)

	handler := middleware.AccessLogger(log, true)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/devices?brand=Apple", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	output := logBuffer.String()
	require.Contains(t, output, `"method":"GET"`)
	require.Contains(t, output, `"path":"/v1/devices"`)
	require.Contains(t, output, `"status":200`)
	require.Contains(t, output, `"query":"brand=Apple"`)
}

func TestAccessLogger_OmitsQueryParamsWhenDisabled(t *testing.T) {
	t.Parallel()

	logBuffer := &bytes.Buffer{}
	log := logger.NewBufferedTestLogger(logBuffer)

	handler := middleware.AccessLogger(log, false)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/devices?brand=Apple", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.NotContains(t, logBuffer.String(), `"query"`)
}

func TestAccessLogger_ServerErrorsLogAtErrorLevel(t *testing.T) {
	t.Parallel()

	logBuffer := &bytes.Buffer{}
	log := logger.NewBufferedTestLogger(logBuffer)

	handler := middleware.AccessLogger(log, false)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/devices", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	output := logBuffer.String()
	require.Contains(t, output, `"level":"error"`)
	require.Contains(t, output, `"status":500`)
}

func TestFlushableResponseWriter_TracksStatusAndBytes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	wrapped := middleware.NewFlushableResponseWriter(rec)

	wrapped.WriteHeader(http.StatusCreated)
	n, err := wrapped.Write([]byte("payload"))

	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, http.StatusCreated, wrapped.StatusCode())
	require.Equal(t, uint64(7), wrapped.BytesWritten())
}

func TestFlushableResponseWriter_DoubleWriteHeaderIgnored(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	wrapped := middleware.NewFlushableResponseWriter(rec)

	wrapped.WriteHeader(http.StatusNotFound)
	wrapped.WriteHeader(http.StatusOK)

	require.Equal(t, http.StatusNotFound, wrapped.StatusCode())
}
