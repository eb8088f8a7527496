package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/italianiuk/italianiuk-server/internal/domain"
	"github.com/italianiuk/italianiuk-server/internal/present"
)

func (s *Server) registerDirectoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getDirectory",
		Method:      http.MethodGet,
		Path:        "/api/v1/directory",
		Summary:     "Directory page",
		Description: "Cities matching the query, split into featured and remaining, with localized labels. An unknown category is treated as all.",
		Tags:        []string{"Directory"},
	}, s.handleGetDirectory)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDirectoryCity",
		Method:      http.MethodGet,
		Path:        "/api/v1/directory/cities/{key}",
		Summary:     "City page",
		Description: "Listings of one city grouped by category",
		Tags:        []string{"Directory"},
	}, s.handleGetCity)
}

// === DTOs ===

// LocaleInput selects the response locale. When locale is empty the
// Accept-Language header decides.
type LocaleInput struct {
	Locale         string `query:"locale" enum:"en,it" doc:"Response locale (en or it)"`
	AcceptLanguage string `header:"Accept-Language" doc:"Used when locale is not given"`
}

func (in *LocaleInput) resolve(s *Server) domain.Locale {
	return s.services.Translator.Resolve(in.Locale, in.AcceptLanguage)
}

// DirectoryInput contains the directory query.
type DirectoryInput struct {
	LocaleInput
	Query    string `query:"q" maxLength:"200" doc:"City name or key fragment"`
	Category string `query:"cat" doc:"all, restaurants, delis or shops"`
}

// DirectoryOutput wraps the directory page for Huma.
type DirectoryOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         *present.DirectoryPage
}

// CityInput identifies a city page.
type CityInput struct {
	LocaleInput
	Key string `path:"key" maxLength:"64" doc:"City key, e.g. london"`
}

// CityOutput wraps the city page for Huma.
type CityOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         *present.CityPage
}

// === Handlers ===

func (s *Server) handleGetDirectory(ctx context.Context, input *DirectoryInput) (*DirectoryOutput, error) {
	locale := input.resolve(s)
	page := s.services.Directory.Directory(ctx, locale, domain.NewQuery(input.Category, input.Query))
	return &DirectoryOutput{CacheControl: CacheFiveMinutes, Body: page}, nil
}

func (s *Server) handleGetCity(ctx context.Context, input *CityInput) (*CityOutput, error) {
	locale := input.resolve(s)
	page, err := s.services.Directory.City(ctx, locale, input.Key)
	if err != nil {
		return nil, newAPIError(err)
	}
	return &CityOutput{CacheControl: CacheFiveMinutes, Body: page}, nil
}
