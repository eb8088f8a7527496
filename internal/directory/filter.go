package directory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/italianiuk/italianiuk-server/internal/domain"
)

// Filter returns the summaries matching q, preserving input order.
// An empty result is a normal outcome.
func Filter(summaries []domain.CitySummary, q domain.Query) []domain.CitySummary {
	needle := q.Needle()
	category := q.Category
	if category == "" {
		category = domain.CategoryAll
	}

	out := make([]domain.CitySummary, 0, len(summaries))
	for i := range summaries {
		s := &summaries[i]
		if MatchesText(s, needle) && s.Offers(category) {
			out = append(out, *s)
		}
	}
	return out
}

// MatchesText reports whether a folded needle occurs in the city's label or
// key. The empty needle matches everything.
func MatchesText(s *domain.CitySummary, needle string) bool {
	if needle == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(s.Label), needle) ||
		strings.Contains(fold.String(s.Key), needle)
}

// Populated counts the cities with at least one listing.
func Populated(summaries []domain.CitySummary) int {
	n := 0
	for i := range summaries {
		if summaries[i].Populated() {
			n++
		}
	}
	return n
}

// CategoryCounts reports, for "all" and each category, how many cities match
// the query text and offer that category. The query's own category is
// ignored so every chip can show what selecting it would return.
func CategoryCounts(summaries []domain.CitySummary, q domain.Query) map[domain.Category]int {
	needle := q.Needle()
	counts := make(map[domain.Category]int, len(domain.Categories)+1)
	counts[domain.CategoryAll] = 0
	for _, c := range domain.Categories {
		counts[c] = 0
	}

	for i := range summaries {
		s := &summaries[i]
		if !MatchesText(s, needle) {
			continue
		}
		if s.Offers(domain.CategoryAll) {
			counts[domain.CategoryAll]++
		}
		for _, c := range domain.Categories {
			if s.Offers(c) {
				counts[c]++
			}
		}
	}
	return counts
}
