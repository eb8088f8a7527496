package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListing_Link_PrefersWebsite(t *testing.T) {
	l := &Listing{
		Slug:    "da-mario",
		Website: "https://damario.example",
		MapsURL: "https://maps.example/da-mario",
	}

	assert.Equal(t, "https://damario.example", l.Link())
	assert.True(t, l.HasLink())
}

func TestListing_Link_FallsBackToMaps(t *testing.T) {
	l := &Listing{Slug: "da-mario", MapsURL: "https://maps.example/da-mario"}

	assert.Equal(t, "https://maps.example/da-mario", l.Link())
}

func TestListing_Link_FallsBackToHash(t *testing.T) {
	l := &Listing{Slug: "da-mario"}

	assert.Equal(t, "#", l.Link())
	assert.False(t, l.HasLink())
}

func TestCityBucket_PresentIncludesEmptyKeys(t *testing.T) {
	b := CityBucket{
		CategoryShops:       {},
		CategoryRestaurants: {{Slug: "a"}},
	}

	// Canonical order, not map order; an empty slice still counts as present.
	assert.Equal(t, []Category{CategoryRestaurants, CategoryShops}, b.Present())
	assert.Equal(t, 0, b.Count(CategoryShops))
	assert.Equal(t, 0, b.Count(CategoryDelis))
	assert.Nil(t, b.Listings(CategoryDelis))
}

func TestCityBucket_CloneIsDeep(t *testing.T) {
	b := CityBucket{CategoryRestaurants: {{Slug: "a", Name: "A"}}}

	c := b.Clone()
	c[CategoryRestaurants][0].Name = "changed"
	c[CategoryShops] = []Listing{{Slug: "b"}}

	assert.Equal(t, "A", b[CategoryRestaurants][0].Name)
	assert.NotContains(t, b, CategoryShops)
}

func TestCityBucket_CloneNil(t *testing.T) {
	var b CityBucket

	c := b.Clone()

	assert.NotNil(t, c)
	assert.Empty(t, c)
}

func TestHumanizeKey(t *testing.T) {
	assert.Equal(t, "milton keynes", HumanizeKey("milton-keynes"))
	assert.Equal(t, "leeds", HumanizeKey("leeds"))
}

func TestCityLabel(t *testing.T) {
	assert.Equal(t, "Milton Keynes", CityLabel("milton-keynes"))
	assert.Equal(t, "Leeds", CityLabel("leeds"))
	assert.Equal(t, "Stoke On Trent", CityLabel("stoke-on-trent"))
}

func TestListingID(t *testing.T) {
	assert.Equal(t, "leeds/delis/casa-nostra", ListingID("leeds", CategoryDelis, "casa-nostra"))
}
