// Package store holds the read-only listing snapshot the directory is built
// from. The snapshot is loaded once at startup and never mutated afterwards,
// so it is safe for concurrent readers without locking.
package store

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/italianiuk/italianiuk-server/internal/domain"
	domainerrors "github.com/italianiuk/italianiuk-server/internal/errors"
	"github.com/italianiuk/italianiuk-server/internal/validation"
)

// Store is an immutable snapshot of the directory listings keyed by city.
type Store struct {
	cities   map[string]domain.CityBucket
	keys     []string
	listings int
}

// ListingRef locates a listing inside the snapshot.
type ListingRef struct {
	City     string
	Category domain.Category
	Listing  domain.Listing
}

// ID returns the stable listing identifier.
func (r ListingRef) ID() string {
	return domain.ListingID(r.City, r.Category, r.Listing.Slug)
}

// New validates cities and builds a snapshot. The input is deep-copied.
// Validation failures are reported together as a single domain validation
// error whose details map "city/category/index/field" paths to messages.
func New(cities map[string]domain.CityBucket, v *validation.Validator) (*Store, error) {
	if v == nil {
		v = validation.New()
	}

	problems := make(map[string]string)
	snapshot := make(map[string]domain.CityBucket, len(cities))
	total := 0

	for key, bucket := range cities {
		if err := v.Var(key, "citykey"); err != nil {
			problems[key] = "city key must be lowercase words separated by hyphens"
			continue
		}

		for category, listings := range bucket {
			if !category.IsListing() {
				problems[key+"/"+string(category)] = "unknown category"
				continue
			}

			seen := make(map[string]int, len(listings))
			for i := range listings {
				path := key + "/" + string(category) + "/" + strconv.Itoa(i)
				collectListingProblems(v, &listings[i], path, problems)

				slug := listings[i].Slug
				if first, dup := seen[slug]; dup && slug != "" {
					problems[path+"/slug"] = fmt.Sprintf("duplicates slug of entry %d", first)
				} else {
					seen[slug] = i
				}
			}
			total += len(listings)
		}

		snapshot[key] = bucket.Clone()
	}

	if len(problems) > 0 {
		return nil, domainerrors.ValidationWithDetails(
			fmt.Sprintf("listing data has %d problem(s)", len(problems)),
			problems,
		)
	}

	return &Store{
		cities:   snapshot,
		keys:     slices.Sorted(maps.Keys(snapshot)),
		listings: total,
	}, nil
}

func collectListingProblems(v *validation.Validator, l *domain.Listing, path string, problems map[string]string) {
	err := v.Validate(l)
	if err == nil {
		return
	}

	var domainErr *domainerrors.Error
	if !domainerrors.As(err, &domainErr) {
		problems[path] = err.Error()
		return
	}
	fields, ok := domainErr.Details.(map[string]string)
	if !ok {
		problems[path] = domainErr.Message
		return
	}
	for field, msg := range fields {
		problems[path+"/"+field] = msg
	}
}

// CityKeys returns every city key in ascending order.
func (s *Store) CityKeys() []string {
	return slices.Clone(s.keys)
}

// City returns a copy of the bucket for a city.
func (s *Store) City(key string) (domain.CityBucket, bool) {
	bucket, ok := s.cities[key]
	if !ok {
		return nil, false
	}
	return bucket.Clone(), true
}

// Has reports whether the city key exists, populated or not.
func (s *Store) Has(key string) bool {
	_, ok := s.cities[key]
	return ok
}

// CityCount returns the number of city keys, including empty cities.
func (s *Store) CityCount() int {
	return len(s.keys)
}

// ListingCount returns the total number of listings across all cities.
func (s *Store) ListingCount() int {
	return s.listings
}

// Listings returns every listing in deterministic order: city key ascending,
// then canonical category order, then data file order.
func (s *Store) Listings() []ListingRef {
	refs := make([]ListingRef, 0, s.listings)
	for _, key := range s.keys {
		bucket := s.cities[key]
		for _, category := range domain.Categories {
			for _, l := range bucket[category] {
				refs = append(refs, ListingRef{City: key, Category: category, Listing: l})
			}
		}
	}
	return refs
}
