package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/italianiuk/italianiuk-server/internal/domain"
	"github.com/italianiuk/italianiuk-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchListings",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings/search",
		Summary:     "Search listings",
		Description: "Full-text search over listing names, addresses and descriptions across all cities",
		Tags:        []string{"Search"},
	}, s.handleSearchListings)
}

// === DTOs ===

// SearchInput contains parameters for searching listings.
type SearchInput struct {
	Query    string `query:"q" maxLength:"200" doc:"Search text. Omit to list every listing."`
	Category string `query:"cat" doc:"all, restaurants, delis or shops"`
	City     string `query:"city" maxLength:"64" doc:"Restrict to one city key"`
	Limit    int    `query:"limit" minimum:"0" maximum:"100" doc:"Max hits (default 20)"`
	Offset   int    `query:"offset" minimum:"0" doc:"Pagination offset"`
	Facets   bool   `query:"facets" doc:"Include category and city facets"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body *search.SearchResult
}

func (s *Server) handleSearchListings(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	res, err := s.services.Search.Search(ctx, search.SearchParams{
		Query:         input.Query,
		Category:      domain.Category(strings.ToLower(strings.TrimSpace(input.Category))),
		City:          input.City,
		Limit:         input.Limit,
		Offset:        input.Offset,
		IncludeFacets: input.Facets,
	})
	if err != nil {
		return nil, newAPIError(err)
	}
	return &SearchOutput{Body: res}, nil
}
