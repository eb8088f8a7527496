package api

import (
	"github.com/italianiuk/italianiuk-server/internal/i18n"
	"github.com/italianiuk/italianiuk-server/internal/service"
)

// Services groups the services and helpers used by the API server.
type Services struct {
	Directory  *service.DirectoryService
	Search     *service.SearchService
	Translator *i18n.Translator // Locale negotiation for the JSON API
}
