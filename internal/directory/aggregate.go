// Package directory turns the listing snapshot into the city view of the
// directory: per-city summaries, query filtering, and featured selection.
//
// Every function here is pure. Calling them repeatedly with the same inputs
// yields the same output, so results can be memoized by the caller.
package directory

import (
	"slices"
	"strings"

	"github.com/italianiuk/italianiuk-server/internal/domain"
)

// Source is the read-only view of the listing store the aggregator needs.
type Source interface {
	CityKeys() []string
	City(key string) (domain.CityBucket, bool)
}

// Labeler maps a city key to its display label for the current locale.
type Labeler func(key string) string

// Aggregate builds one summary per city in src, sorted by label ascending.
// Cities with no listings are included with zero counts and the placeholder
// image; absence of data is never an error. A nil label uses domain.CityLabel.
func Aggregate(src Source, label Labeler, placeholder string) []domain.CitySummary {
	if label == nil {
		label = domain.CityLabel
	}

	keys := src.CityKeys()
	summaries := make([]domain.CitySummary, 0, len(keys))
	for _, key := range keys {
		bucket, _ := src.City(key)
		summaries = append(summaries, Summarize(key, label(key), bucket, placeholder))
	}

	// Byte-wise compare keeps the order independent of the host locale.
	// Ties fall back to the key so the order is total.
	slices.SortStableFunc(summaries, func(a, b domain.CitySummary) int {
		if c := strings.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})

	return summaries
}

// Summarize derives the summary of a single city bucket.
func Summarize(key, label string, bucket domain.CityBucket, placeholder string) domain.CitySummary {
	counts := make(map[domain.Category]int, len(domain.Categories))
	total := 0
	for _, c := range domain.Categories {
		n := bucket.Count(c)
		counts[c] = n
		total += n
	}

	return domain.CitySummary{
		Key:        key,
		Label:      label,
		Counts:     counts,
		TotalCount: total,
		FirstImage: firstImage(bucket, placeholder),
		Categories: bucket.Present(),
	}
}

// firstImage scans categories in canonical order and returns the first
// non-empty listing image.
func firstImage(bucket domain.CityBucket, placeholder string) string {
	for _, c := range domain.Categories {
		for _, l := range bucket[c] {
			if l.Image != "" {
				return l.Image
			}
		}
	}
	return placeholder
}
