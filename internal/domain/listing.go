package domain

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LinkFallback is the href used when a listing has no outbound link.
const LinkFallback = "#"

// Listing is a single business in the directory. Listings are fixed per
// deployment and never change at runtime.
type Listing struct {
	Slug    string `json:"slug" yaml:"slug" validate:"required,lowercase,max=120"`
	Name    string `json:"name" yaml:"name" validate:"required,max=200"`
	Address string `json:"address" yaml:"address" validate:"max=300"`
	Short   string `json:"short" yaml:"short" validate:"max=500"`
	Image   string `json:"image,omitempty" yaml:"image,omitempty" validate:"max=500"`
	Website string `json:"website,omitempty" yaml:"website,omitempty" validate:"omitempty,url"`
	MapsURL string `json:"maps_url,omitempty" yaml:"mapsUrl,omitempty" validate:"omitempty,url"`
}

// Link returns the outbound href: website first, then the maps link, then "#".
func (l *Listing) Link() string {
	if l.Website != "" {
		return l.Website
	}
	if l.MapsURL != "" {
		return l.MapsURL
	}
	return LinkFallback
}

// HasLink reports whether the listing exposes any outbound link.
func (l *Listing) HasLink() bool {
	return l.Link() != LinkFallback
}

// ListingID builds the stable identifier of a listing: city/category/slug.
func ListingID(city string, category Category, slug string) string {
	return city + "/" + string(category) + "/" + slug
}

// CityBucket holds the listings of one city grouped by category.
// A category key may be missing or present with an empty slice.
type CityBucket map[Category][]Listing

// Listings returns the listings for a category, or nil when absent.
func (b CityBucket) Listings(c Category) []Listing {
	return b[c]
}

// Count returns the number of listings in a category, zero when absent.
func (b CityBucket) Count(c Category) int {
	return len(b[c])
}

// Present returns the category keys present in the bucket in canonical order.
// A key counts as present even if its slice is empty.
func (b CityBucket) Present() []Category {
	present := make([]Category, 0, len(Categories))
	for _, c := range Categories {
		if _, ok := b[c]; ok {
			present = append(present, c)
		}
	}
	return present
}

// Clone returns a deep copy so callers cannot mutate the source snapshot.
func (b CityBucket) Clone() CityBucket {
	out := maps.Clone(b)
	for c, ls := range out {
		out[c] = slices.Clone(ls)
	}
	if out == nil {
		out = CityBucket{}
	}
	return out
}

// HumanizeKey turns a city key into words: "milton-keynes" -> "milton keynes".
func HumanizeKey(key string) string {
	return strings.ReplaceAll(key, "-", " ")
}

// CityLabel is the locale-neutral display label of a city key:
// "milton-keynes" -> "Milton Keynes".
func CityLabel(key string) string {
	return cases.Title(language.Und).String(HumanizeKey(key))
}
