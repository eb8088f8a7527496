package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"", CategoryAll},
		{"all", CategoryAll},
		{"restaurants", CategoryRestaurants},
		{"delis", CategoryDelis},
		{"shops", CategoryShops},
		{" Shops ", CategoryShops},
		{"bakeries", CategoryAll},
		{"restaurant", CategoryAll},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFilterCategory(tt.in))
		})
	}
}

func TestParseCategory_RejectsAll(t *testing.T) {
	_, ok := ParseCategory("all")
	assert.False(t, ok)
}

func TestNewQuery_TrimsText(t *testing.T) {
	q := NewQuery("nope", "  Leeds ")

	assert.Equal(t, CategoryAll, q.Category)
	assert.Equal(t, "Leeds", q.Text)
	assert.Equal(t, "leeds", q.Needle())
}

func TestQuery_Href_OmitsDefaults(t *testing.T) {
	base := "/directory"

	assert.Equal(t, base, NewQuery("all", "").Href(base))
	assert.Equal(t, base, NewQuery("", "   ").Href(base))
	assert.Equal(t, base+"?cat=shops", NewQuery("shops", "").Href(base))
	assert.Equal(t, base+"?q=leeds", NewQuery("all", "leeds").Href(base))
	assert.Equal(t, base+"?cat=delis&q=milton+keynes", NewQuery("delis", "milton keynes").Href(base))
}

func TestQuery_RoundTrip(t *testing.T) {
	queries := []Query{
		NewQuery("all", ""),
		NewQuery("restaurants", ""),
		NewQuery("delis", "leeds"),
		NewQuery("shops", "Città & co"),
		NewQuery("all", "a=b?c"),
	}

	for _, q := range queries {
		t.Run(q.Href("/x"), func(t *testing.T) {
			u, err := url.Parse(q.Href("/directory"))
			require.NoError(t, err)

			got := ParseQuery(u.Query())
			assert.Equal(t, q, got)
		})
	}
}

func TestQuery_IsDefault(t *testing.T) {
	assert.True(t, NewQuery("", "").IsDefault())
	assert.True(t, NewQuery("all", " ").IsDefault())
	assert.False(t, NewQuery("shops", "").IsDefault())
	assert.False(t, NewQuery("all", "x").IsDefault())
}

func TestQuery_WithCategory(t *testing.T) {
	q := NewQuery("shops", "leeds")

	got := q.WithCategory(CategoryAll)

	assert.Equal(t, CategoryAll, got.Category)
	assert.Equal(t, "leeds", got.Text)
	assert.Equal(t, CategoryShops, q.Category)
}

func TestLocale_Paths(t *testing.T) {
	assert.Equal(t, "/directory", LocaleEN.DirectoryPath())
	assert.Equal(t, "/it/directory", LocaleIT.DirectoryPath())
	assert.Equal(t, "/it/directory/leeds", LocaleIT.CityPath("leeds"))

	l, ok := ParseLocale("IT")
	assert.True(t, ok)
	assert.Equal(t, LocaleIT, l)

	_, ok = ParseLocale("fr")
	assert.False(t, ok)
}
