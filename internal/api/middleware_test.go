package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/italianiuk/italianiuk-server/internal/errors"
)

func TestEnvelopeTransformer_AlwaysIncludesVersion(t *testing.T) {
	tests := []struct {
		name   string
		status string
		input  any
	}{
		{"success response", "200", map[string]string{"key": "value"}},
		{"no body", "200", nil},
		{"plain error", "400", errors.New("invalid input")},
		{"coded error", "404", &APIError{Code: "NOT_FOUND", Message: "city not found"}},
		{"internal server error", "500", errors.New("internal error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnvelopeTransformer(nil, tt.status, tt.input)
			require.NoError(t, err)

			jsonBytes, err := json.Marshal(result)
			require.NoError(t, err)

			var envelope map[string]any
			require.NoError(t, json.Unmarshal(jsonBytes, &envelope))
			assert.InDelta(t, EnvelopeVersion, envelope["v"], 0)
		})
	}
}

func TestEnvelopeTransformer_SuccessResponse(t *testing.T) {
	data := map[string]string{"city": "london"}

	result, err := EnvelopeTransformer(nil, "200", data)
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok, "Expected APIEnvelope type")

	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.True(t, envelope.Success)
	assert.Equal(t, data, envelope.Data)
	assert.Empty(t, envelope.Error)
}

func TestEnvelopeTransformer_ErrorResponse(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "400", errors.New("validation failed"))
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok, "Expected APIEnvelope type")

	assert.False(t, envelope.Success)
	assert.Nil(t, envelope.Data)
	assert.Equal(t, "validation failed", envelope.Error)
}

func TestEnvelopeTransformer_ErrorWithDetails(t *testing.T) {
	apiErr := &APIError{
		Code:    "VALIDATION",
		Message: "Invalid query",
		Details: []string{"unknown category"},
	}

	result, err := EnvelopeTransformer(nil, "400", apiErr)
	require.NoError(t, err)

	envelope, ok := result.(APIErrorEnvelope)
	require.True(t, ok, "Expected APIErrorEnvelope type")

	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.Equal(t, "Invalid query", envelope.Message)
	assert.Equal(t, []string{"unknown category"}, envelope.Details)
}

func TestNewAPIError(t *testing.T) {
	t.Run("domain error", func(t *testing.T) {
		apiErr := newAPIError(domainerrors.ValidationWithDetails("bad query", map[string]string{"cat": "pizza"}))
		assert.Equal(t, http.StatusBadRequest, apiErr.GetStatus())
		assert.Equal(t, "VALIDATION", apiErr.Code)
		assert.Equal(t, map[string]string{"cat": "pizza"}, apiErr.Details)
	})

	t.Run("wrapped domain error", func(t *testing.T) {
		err := errors.Join(errors.New("context"), domainerrors.NotFound("gone"))
		apiErr := newAPIError(err)
		assert.Equal(t, http.StatusNotFound, apiErr.GetStatus())
	})

	t.Run("unknown error is opaque", func(t *testing.T) {
		apiErr := newAPIError(errors.New("bleve: index closed"))
		assert.Equal(t, http.StatusInternalServerError, apiErr.GetStatus())
		assert.Equal(t, "INTERNAL", apiErr.Code)
		assert.Equal(t, "internal server error", apiErr.Message)
	})
}

func TestRegisterErrorHandler(t *testing.T) {
	RegisterErrorHandler()

	t.Run("status mapping", func(t *testing.T) {
		for status, code := range map[int]string{
			http.StatusBadRequest:          "VALIDATION",
			http.StatusUnprocessableEntity: "VALIDATION",
			http.StatusNotFound:            "NOT_FOUND",
			http.StatusTooManyRequests:     "RATE_LIMITED",
			http.StatusServiceUnavailable:  "UNAVAILABLE",
			http.StatusInternalServerError: "INTERNAL",
		} {
			apiErr, ok := huma.NewError(status, "msg").(*APIError)
			require.True(t, ok)
			assert.Equal(t, status, apiErr.GetStatus())
			assert.Equal(t, code, apiErr.Code)
		}
	})

	t.Run("domain error wins", func(t *testing.T) {
		apiErr, ok := huma.NewError(http.StatusInternalServerError, "oops", domainerrors.NotFound("no such city")).(*APIError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, apiErr.GetStatus())
		assert.Equal(t, "no such city", apiErr.Message)
	})

	t.Run("server error hides causes", func(t *testing.T) {
		apiErr, ok := huma.NewError(http.StatusInternalServerError, "oops", errors.New("secret")).(*APIError)
		require.True(t, ok)
		assert.Nil(t, apiErr.Details)
	})
}
