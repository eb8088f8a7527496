package domain

import "strings"

// Category is one of the fixed listing types a city can offer.
type Category string

// Listing categories. CategoryAll is only valid as a filter value.
const (
	CategoryAll         Category = "all"
	CategoryRestaurants Category = "restaurants"
	CategoryDelis       Category = "delis"
	CategoryShops       Category = "shops"
)

// Categories is the canonical category order. It drives image priority when
// aggregating, filter validation, and chip order when rendering.
var Categories = []Category{CategoryRestaurants, CategoryDelis, CategoryShops} //nolint:gochecknoglobals // Closed enumeration

// IsListing reports whether c is one of the listing categories (not "all").
func (c Category) IsListing() bool {
	switch c {
	case CategoryRestaurants, CategoryDelis, CategoryShops:
		return true
	default:
		return false
	}
}

// String returns the category key.
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a listing category key.
// Returns false for "all" and for anything outside the closed set.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsListing() {
		return "", false
	}
	return c, true
}

// ParseFilterCategory parses the cat query parameter.
// Unknown values fall back to CategoryAll rather than failing.
func ParseFilterCategory(s string) Category {
	if c, ok := ParseCategory(s); ok {
		return c
	}
	return CategoryAll
}
