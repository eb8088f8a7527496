package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/italianiuk/italianiuk-server/internal/domain"
)

// Limits applied to SearchParams.
const (
	DefaultLimit = 20
	MaxLimit     = 100
	facetSize    = 50

	// Name typo and prefix matching start at these query lengths, in runes.
	minFuzzyRunes  = 3
	minPrefixRunes = 2
)

// SearchParams configures a listing search.
type SearchParams struct {
	Query    string          // free text, empty matches every listing
	Category domain.Category // empty or CategoryAll means any
	City     string          // city key, empty means any

	Limit  int
	Offset int

	IncludeFacets bool
}

// SearchResult is a page of listing hits.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"took_ms"`
	Hits   []SearchHit `json:"hits"`
	Facets *Facets     `json:"facets,omitempty"`
}

// SearchHit is a single matching listing.
type SearchHit struct {
	ID       string          `json:"id"`
	City     string          `json:"city"`
	Category domain.Category `json:"category"`
	Slug     string          `json:"slug"`
	Name     string          `json:"name"`
	Address  string          `json:"address,omitempty"`
	Short    string          `json:"short,omitempty"`
	Image    string          `json:"image,omitempty"`
	Link     string          `json:"link"`
	Score    float64         `json:"score"`
}

// Facets counts hits per category and per city.
type Facets struct {
	Categories []FacetCount `json:"categories"`
	Cities     []FacetCount `json:"cities"`
}

// FacetCount is a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// normalize clamps paging and trims the text.
func (p SearchParams) normalize() SearchParams {
	p.Query = strings.TrimSpace(p.Query)
	p.City = strings.TrimSpace(strings.ToLower(p.City))
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

var storedFields = []string{"id", "city", "category", "slug", "name", "address", "short", "image", "link"} //nolint:gochecknoglobals // Static field list

// Search runs a listing search.
func (s *ListingIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	params = params.normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)
	req.Fields = storedFields
	if params.Query == "" {
		req.SortBy([]string{"id"})
	} else {
		req.SortBy([]string{"-_score", "id"})
	}
	if params.IncludeFacets {
		req.AddFacet("category", bleve.NewFacetRequest("category", len(domain.Categories)))
		req.AddFacet("city", bleve.NewFacetRequest("city", facetSize))
	}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	out := &SearchResult{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		out.Hits = append(out.Hits, SearchHit{
			ID:       hit.ID,
			City:     field(hit.Fields, "city"),
			Category: domain.Category(field(hit.Fields, "category")),
			Slug:     field(hit.Fields, "slug"),
			Name:     field(hit.Fields, "name"),
			Address:  field(hit.Fields, "address"),
			Short:    field(hit.Fields, "short"),
			Image:    field(hit.Fields, "image"),
			Link:     field(hit.Fields, "link"),
			Score:    hit.Score,
		})
	}
	if params.IncludeFacets {
		out.Facets = extractFacets(res)
	}

	return out, nil
}

func field(fields map[string]any, name string) string {
	v, _ := fields[name].(string)
	return v
}

// buildSearchQuery combines the text query with the category and city
// filters. Text matches any of the text fields; filters must all hold.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if params.Query != "" {
		text := []query.Query{}
		runes := utf8.RuneCountInString(params.Query)

		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		text = append(text, nameMatch)

		addressMatch := bleve.NewMatchQuery(params.Query)
		addressMatch.SetField("address")
		text = append(text, addressMatch)

		shortMatch := bleve.NewMatchQuery(params.Query)
		shortMatch.SetField("short")
		text = append(text, shortMatch)

		// Typo tolerance on names.
		if runes >= minFuzzyRunes {
			fuzzy := bleve.NewFuzzyQuery(strings.ToLower(params.Query))
			fuzzy.SetFuzziness(1)
			fuzzy.SetField("name")
			fuzzy.SetBoost(0.8)
			text = append(text, fuzzy)
		}

		// As-you-type on names.
		if runes >= minPrefixRunes {
			prefix := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefix.SetField("name")
			prefix.SetBoost(0.5)
			text = append(text, prefix)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(text...))
	}

	if params.Category.IsListing() {
		tq := bleve.NewTermQuery(string(params.Category))
		tq.SetField("category")
		queries = append(queries, tq)
	}

	if params.City != "" {
		tq := bleve.NewTermQuery(params.City)
		tq.SetField("city")
		queries = append(queries, tq)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

func extractFacets(res *bleve.SearchResult) *Facets {
	facets := &Facets{
		Categories: []FacetCount{},
		Cities:     []FacetCount{},
	}
	if f, ok := res.Facets["category"]; ok && f.Terms != nil {
		for _, term := range f.Terms.Terms() {
			facets.Categories = append(facets.Categories, FacetCount{Value: term.Term, Count: term.Count})
		}
	}
	if f, ok := res.Facets["city"]; ok && f.Terms != nil {
		for _, term := range f.Terms.Terms() {
			facets.Cities = append(facets.Cities, FacetCount{Value: term.Term, Count: term.Count})
		}
	}
	return facets
}
