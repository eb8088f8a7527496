package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/italianiuk/italianiuk-server/internal/domain"
	domainerrors "github.com/italianiuk/italianiuk-server/internal/errors"
	"github.com/italianiuk/italianiuk-server/internal/http/response"
	"github.com/italianiuk/italianiuk-server/internal/i18n"
	"github.com/italianiuk/italianiuk-server/internal/present"
)

//go:embed templates/*.html
var templates embed.FS

const (
	pageDirectory = "directory"
	pageCity      = "city"
	pageNotFound  = "not_found"
)

// pageRenderer holds one parsed template set per page, each sharing the
// layout.
type pageRenderer struct {
	pages map[string]*template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	r := &pageRenderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageDirectory, pageCity, pageNotFound} {
		t, err := template.New("layout.html").ParseFS(templates,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// layoutData is what the layout template sees. Page carries the page
// specific view model.
type layoutData struct {
	Lang       domain.Locale
	Title      string
	Alternates []present.LocaleLink
	Page       any
}

// notFoundPage is the view model of the 404 page.
type notFoundPage struct {
	Title     string
	Message   string
	BackHref  string
	BackLabel string
}

func (s *Server) registerPageRoutes() {
	for _, locale := range domain.Locales {
		s.router.Get(locale.DirectoryPath(), s.handleDirectoryPage(locale))
		s.router.Get(locale.DirectoryPath()+"/{city}", s.handleCityPage(locale))
	}
}

// handleDirectoryPage serves the directory listing page.
// GET /directory, GET /it/directory
func (s *Server) handleDirectoryPage(locale domain.Locale) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := s.services.Directory.Directory(r.Context(), locale, domain.ParseQuery(r.URL.Query()))

		s.renderPage(w, r, http.StatusOK, pageDirectory, layoutData{
			Lang:       locale,
			Title:      page.Title,
			Alternates: page.Alternates,
			Page:       page,
		})
	}
}

// handleCityPage serves a city detail page.
// GET /directory/{city}, GET /it/directory/{city}
func (s *Server) handleCityPage(locale domain.Locale) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "city")

		page, err := s.services.Directory.City(r.Context(), locale, key)
		if err != nil {
			if domainerrors.Is(err, domainerrors.ErrNotFound) {
				s.renderNotFound(w, r, locale)
				return
			}
			s.logger.ErrorContext(r.Context(), "failed to render city page", "city", key, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		s.renderPage(w, r, http.StatusOK, pageCity, layoutData{
			Lang:       locale,
			Title:      page.Label,
			Alternates: page.Alternates,
			Page:       page,
		})
	}
}

// handleNotFoundPage serves the 404 page for unknown paths outside /api and
// an enveloped NOT_FOUND error inside it.
func (s *Server) handleNotFoundPage(w http.ResponseWriter, r *http.Request) {
	if isAPIPath(r.URL.Path) {
		response.NotFound(w, "no API route for "+r.URL.Path, s.logger)
		return
	}
	locale := domain.DefaultLocale
	if prefix := domain.LocaleIT.Prefix(); r.URL.Path == prefix || strings.HasPrefix(r.URL.Path, prefix+"/") {
		locale = domain.LocaleIT
	}
	s.renderNotFound(w, r, locale)
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request, locale domain.Locale) {
	tr := s.services.Translator
	title := tr.Text(locale, i18n.MsgCityNotFound)
	s.renderPage(w, r, http.StatusNotFound, pageNotFound, layoutData{
		Lang:  locale,
		Title: title,
		Page: notFoundPage{
			Title:     title,
			Message:   tr.Text(locale, i18n.MsgCityNotFoundBody),
			BackHref:  locale.DirectoryPath(),
			BackLabel: tr.Text(locale, i18n.MsgCityBack),
		},
	})
}

// renderPage executes into a buffer so template failures still produce a
// clean 500.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data layoutData) {
	var buf bytes.Buffer
	if err := s.pages.pages[name].Execute(&buf, data); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to execute template", "page", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", string(data.Lang))
	if status == http.StatusOK {
		w.Header().Set("Cache-Control", CacheFiveMinutes)
	} else {
		w.Header().Set("Cache-Control", CacheNoStore)
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
