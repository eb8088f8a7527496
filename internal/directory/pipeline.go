package directory

import "github.com/italianiuk/italianiuk-server/internal/domain"

// Result is the outcome of one aggregation, filter and selection pass.
type Result struct {
	Query domain.Query

	// All is every city, populated or not, in label order.
	All []domain.CitySummary
	// Filtered is the subset of All matching Query.
	Filtered []domain.CitySummary
	// Featured and Remaining partition Filtered.
	Featured  []domain.CitySummary
	Remaining []domain.CitySummary

	// PopulatedCount is the number of cities with at least one listing,
	// i.e. the size of the unfiltered "all" view.
	PopulatedCount int
	// ChipCounts is the per-category city count for the query text.
	ChipCounts map[domain.Category]int
}

// NoCities reports whether the directory has no populated city at all, as
// opposed to a query that simply matched nothing.
func (r *Result) NoCities() bool {
	return r.PopulatedCount == 0
}

// NoMatches reports whether the query matched no city while the directory
// itself has content.
func (r *Result) NoMatches() bool {
	return len(r.Filtered) == 0 && r.PopulatedCount > 0
}

// ShowsAll reports whether the filtered view contains every populated city.
func (r *Result) ShowsAll() bool {
	return len(r.Filtered) > 0 && len(r.Filtered) == r.PopulatedCount
}

// Run executes the full pass for one request.
func Run(src Source, q domain.Query, label Labeler, placeholder string) *Result {
	all := Aggregate(src, label, placeholder)
	filtered := Filter(all, q)
	featured, remaining := SelectFeatured(filtered)

	return &Result{
		Query:          q,
		All:            all,
		Filtered:       filtered,
		Featured:       featured,
		Remaining:      remaining,
		PopulatedCount: Populated(all),
		ChipCounts:     CategoryCounts(all, q),
	}
}
