package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/italianiuk/italianiuk-server/internal/errors"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), w.Body.String())
	return result
}

func TestCodedHelpers(t *testing.T) {
	tests := []struct {
		name    string
		write   func(w http.ResponseWriter)
		status  int
		code    string
		message string
	}{
		{
			name:    "not found",
			write:   func(w http.ResponseWriter) { NotFound(w, "no API route for /api/v1/x", nil) },
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "no API route for /api/v1/x",
		},
		{
			name:    "too many requests",
			write:   func(w http.ResponseWriter) { TooManyRequests(w, "slow down", discard()) },
			status:  http.StatusTooManyRequests,
			code:    "RATE_LIMITED",
			message: "slow down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

			result := decode(t, w)
			assert.InDelta(t, Version, result["v"], 0)
			assert.Equal(t, false, result["success"])
			assert.Equal(t, tt.code, result["code"])
			assert.Equal(t, tt.message, result["message"])
			assert.NotContains(t, result, "error")
			assert.NotContains(t, result, "data")
			assert.NotContains(t, result, "details")
		})
	}
}

func TestError_Details(t *testing.T) {
	t.Run("client errors keep details", func(t *testing.T) {
		w := httptest.NewRecorder()
		Error(w, domainerrors.ValidationWithDetails("bad query", map[string]string{"cat": "unknown"}), discard())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		result := decode(t, w)
		assert.Equal(t, "VALIDATION", result["code"])
		assert.Equal(t, map[string]any{"cat": "unknown"}, result["details"])
	})

	t.Run("server errors drop details", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := domainerrors.Wrap(errors.New("disk on fire"), domainerrors.CodeInternal, "internal error").
			WithDetails("stack")
		Error(w, err, discard())

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		result := decode(t, w)
		assert.Equal(t, "INTERNAL", result["code"])
		assert.Equal(t, "internal error", result["message"])
		assert.NotContains(t, result, "details")
		assert.NotContains(t, w.Body.String(), "disk on fire")
	})
}

func TestEnvelope_OmitEmpty(t *testing.T) {
	data, err := json.Marshal(Envelope{Version: Version, Success: false, Error: "something failed"})
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"v":1`)
	assert.Contains(t, s, `"success":false`)
	assert.Contains(t, s, `"error":"something failed"`)
	assert.NotContains(t, s, `"data":`)
	assert.NotContains(t, s, `"code":`)
}
