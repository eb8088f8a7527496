package present

import "github.com/italianiuk/italianiuk-server/internal/domain"

// Empty state kinds.
const (
	EmptyNoCities = "no_cities"
	EmptyNoMatch  = "no_matches"
)

// DirectoryPage is everything a template or API client needs to render the
// directory for one query.
type DirectoryPage struct {
	Locale     domain.Locale  `json:"locale" doc:"Locale the page was rendered in" enum:"en,it"`
	Title      string         `json:"title"`
	Intro      string         `json:"intro"`
	BasePath   string         `json:"base_path" doc:"Path of the cleared directory page"`
	Query      QueryView      `json:"query"`
	Summary    string         `json:"summary" doc:"Localized result count phrase"`
	Matched    int            `json:"matched" doc:"Number of cities matching the query"`
	Populated  int            `json:"populated" doc:"Number of cities with at least one listing"`
	ShowsAll   bool           `json:"shows_all"`
	Chips      []CategoryChip `json:"chips"`
	Featured   []CityCard     `json:"featured"`
	Remaining  []CityCard     `json:"remaining"`
	ClearHref  string         `json:"clear_href"`
	Empty      *EmptyState    `json:"empty,omitempty"`
	Labels     PageLabels     `json:"labels"`
	Alternates []LocaleLink   `json:"alternates"`
}

// QueryView echoes the normalized query back for the search form.
type QueryView struct {
	Text     string          `json:"text"`
	Category domain.Category `json:"category"`
}

// CategoryChip is one filter button.
type CategoryChip struct {
	Category domain.Category `json:"category"`
	Label    string          `json:"label"`
	Href     string          `json:"href"`
	Count    int             `json:"count" doc:"Cities matching the text that offer this category"`
	Active   bool            `json:"active"`
	Disabled bool            `json:"disabled"`
}

// CityCard is a city tile in the featured or remaining grid.
type CityCard struct {
	Key       string       `json:"key"`
	Label     string       `json:"label"`
	Href      string       `json:"href"`
	Image     string       `json:"image"`
	Total     int          `json:"total"`
	TotalText string       `json:"total_text"`
	Badges    []CountBadge `json:"badges"`
}

// CountBadge is a non-zero per-category count on a card.
type CountBadge struct {
	Category domain.Category `json:"category"`
	Label    string          `json:"label"`
	Count    int             `json:"count"`
}

// EmptyState replaces the grids when nothing is shown.
type EmptyState struct {
	Kind         string `json:"kind" enum:"no_cities,no_matches"`
	Message      string `json:"message"`
	ClearLabel   string `json:"clear_label,omitempty"`
	ClearHref    string `json:"clear_href,omitempty"`
	SuggestLabel string `json:"suggest_label"`
	SuggestHref  string `json:"suggest_href"`
}

// PageLabels are static strings used by the directory template.
type PageLabels struct {
	Featured          string `json:"featured"`
	More              string `json:"more"`
	SearchPlaceholder string `json:"search_placeholder"`
	SearchSubmit      string `json:"search_submit"`
}

// LocaleLink points at the same page in another locale.
type LocaleLink struct {
	Locale domain.Locale `json:"locale"`
	Href   string        `json:"href"`
	URL    string        `json:"url"`
	Active bool          `json:"active"`
}

// CityPage is the detail page of one city.
type CityPage struct {
	Locale     domain.Locale     `json:"locale"`
	Key        string            `json:"key"`
	Label      string            `json:"label"`
	Image      string            `json:"image"`
	Total      int               `json:"total"`
	TotalText  string            `json:"total_text"`
	BackHref   string            `json:"back_href"`
	BackLabel  string            `json:"back_label"`
	Sections   []CategorySection `json:"sections"`
	Alternates []LocaleLink      `json:"alternates"`
}

// CategorySection lists one category of a city page. A section without
// listings carries a ComingSoon block instead.
type CategorySection struct {
	Category   domain.Category `json:"category"`
	Label      string          `json:"label"`
	Listings   []ListingView   `json:"listings"`
	ComingSoon *ComingSoon     `json:"coming_soon,omitempty"`
}

// ListingView is a rendered listing.
type ListingView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Short      string `json:"short"`
	Image      string `json:"image,omitempty"`
	Href       string `json:"href"`
	External   bool   `json:"external"`
	VisitLabel string `json:"visit_label"`
}

// ComingSoon is shown for a category with no listings yet.
type ComingSoon struct {
	Title        string `json:"title"`
	Message      string `json:"message"`
	SuggestLabel string `json:"suggest_label"`
	SuggestHref  string `json:"suggest_href"`
}
