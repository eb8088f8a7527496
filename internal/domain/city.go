package domain

// CitySummary is the per-city aggregate shown in the directory.
// It is derived from a CityBucket on every pass and never stored.
type CitySummary struct {
	Key        string           `json:"key"`
	Label      string           `json:"label"`
	Counts     map[Category]int `json:"counts"`
	TotalCount int              `json:"total_count"`
	FirstImage string           `json:"first_image"`
	Categories []Category       `json:"categories"`
}

// Count returns the number of listings for a category, zero when absent.
func (s *CitySummary) Count(c Category) int {
	return s.Counts[c]
}

// Populated reports whether the city has at least one listing.
func (s *CitySummary) Populated() bool {
	return s.TotalCount > 0
}

// Offers reports whether the city matches a category filter.
// CategoryAll matches any populated city.
func (s *CitySummary) Offers(c Category) bool {
	if c == CategoryAll {
		return s.Populated()
	}
	return s.Count(c) > 0
}
