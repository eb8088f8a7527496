package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFoundf("city %q not found", "atlantis")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))
	assert.Equal(t, `city "atlantis" not found`, err.Error())
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("load page: %w", Validation("bad category"))

	assert.True(t, Is(err, ErrValidation))
}

func TestError_WrapKeepsCause(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, CodeInternal, "read listings")

	assert.True(t, Is(err, io.ErrUnexpectedEOF))
	assert.True(t, Is(err, ErrInternal))
	assert.Equal(t, "read listings: unexpected EOF", err.Error())
}

func TestCode_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, CodeNotFound.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, CodeValidation.HTTPStatus())
	assert.Equal(t, http.StatusTooManyRequests, CodeRateLimited.HTTPStatus())
	assert.Equal(t, http.StatusServiceUnavailable, CodeUnavailable.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Code("bogus").HTTPStatus())
}

func TestError_WithDetails(t *testing.T) {
	base := Validation("invalid listings")
	withDetails := base.WithDetails(map[string]string{"slug": "is required"})

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"slug": "is required"}, withDetails.Details)
	assert.Equal(t, base.Code, withDetails.Code)
}
