package directory

import (
	"cmp"
	"slices"

	"github.com/italianiuk/italianiuk-server/internal/domain"
)

// FeaturedSize is both the number of featured cities and the minimum number
// of results needed before any city is featured.
const FeaturedSize = 3

// SelectFeatured splits filtered into the featured cities and the rest.
//
// With fewer than FeaturedSize cities nothing is featured. Otherwise the
// FeaturedSize cities with the highest totals are featured, highest first,
// ties keeping their input order. Remaining keeps input order. Every input
// city ends up in exactly one of the two slices.
func SelectFeatured(filtered []domain.CitySummary) (featured, remaining []domain.CitySummary) {
	if len(filtered) < FeaturedSize {
		return []domain.CitySummary{}, slices.Clone(filtered)
	}

	ranked := make([]int, len(filtered))
	for i := range ranked {
		ranked[i] = i
	}
	slices.SortStableFunc(ranked, func(a, b int) int {
		return cmp.Compare(filtered[b].TotalCount, filtered[a].TotalCount)
	})

	picked := make(map[int]bool, FeaturedSize)
	featured = make([]domain.CitySummary, 0, FeaturedSize)
	for _, idx := range ranked[:FeaturedSize] {
		picked[idx] = true
		featured = append(featured, filtered[idx])
	}

	remaining = make([]domain.CitySummary, 0, len(filtered)-FeaturedSize)
	for i := range filtered {
		if !picked[i] {
			remaining = append(remaining, filtered[i])
		}
	}
	return featured, remaining
}
