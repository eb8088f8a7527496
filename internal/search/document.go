// Package search provides full-text search over directory listings using
// an in-memory Bleve index. It complements the city directory, which
// filters by exact substring, with ranked listing lookup across cities.
package search

import (
	"github.com/italianiuk/italianiuk-server/internal/domain"
)

// ListingDocument is the indexed form of a listing.
type ListingDocument struct {
	ID       string          `json:"id"` // city/category/slug
	City     string          `json:"city"`
	Category domain.Category `json:"category"`
	Slug     string          `json:"slug"`
	Name     string          `json:"name"`
	Address  string          `json:"address,omitempty"`
	Short    string          `json:"short,omitempty"`
	Image    string          `json:"image,omitempty"`
	Link     string          `json:"link"`
}

// NewListingDocument builds the document for a listing in a city category.
func NewListingDocument(city string, category domain.Category, l *domain.Listing) *ListingDocument {
	return &ListingDocument{
		ID:       domain.ListingID(city, category, l.Slug),
		City:     city,
		Category: category,
		Slug:     l.Slug,
		Name:     l.Name,
		Address:  l.Address,
		Short:    l.Short,
		Image:    l.Image,
		Link:     l.Link(),
	}
}

// ToMap converts the document to a map keyed by the mapped field names.
func (d *ListingDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":       d.ID,
		"city":     d.City,
		"category": string(d.Category),
		"slug":     d.Slug,
		"name":     d.Name,
		"link":     d.Link,
	}
	if d.Address != "" {
		m["address"] = d.Address
	}
	if d.Short != "" {
		m["short"] = d.Short
	}
	if d.Image != "" {
		m["image"] = d.Image
	}
	return m
}
