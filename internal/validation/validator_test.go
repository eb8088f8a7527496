package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italianiuk/italianiuk-server/internal/domain"
	domainerrors "github.com/italianiuk/italianiuk-server/internal/errors"
	"github.com/italianiuk/italianiuk-server/internal/validation"
)

func TestValidator_ValidListing(t *testing.T) {
	v := validation.New()

	err := v.Validate(domain.Listing{
		Slug:    "da-mario",
		Name:    "Da Mario",
		Website: "https://damario.example",
	})

	assert.NoError(t, err)
}

func TestValidator_ListingErrorsUseYAMLNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(domain.Listing{
		Slug:    "Da-Mario",
		MapsURL: "not a url",
	})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be lowercase", details["slug"])
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid URL", details["mapsUrl"])
}

func TestValidator_CityKey(t *testing.T) {
	v := validation.New()

	for _, key := range []string{"leeds", "milton-keynes", "stoke-on-trent"} {
		assert.NoError(t, v.Var(key, "citykey"), key)
	}
	for _, key := range []string{"Leeds", "milton keynes", "-leeds", "leeds-", "leeds--city", ""} {
		assert.Error(t, v.Var(key, "citykey"), key)
	}
}
