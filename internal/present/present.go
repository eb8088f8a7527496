// Package present turns directory results into localized view models for
// the HTML templates and the JSON API.
package present

import (
	"net/url"
	"strings"

	"github.com/italianiuk/italianiuk-server/internal/directory"
	"github.com/italianiuk/italianiuk-server/internal/domain"
	"github.com/italianiuk/italianiuk-server/internal/i18n"
)

// Options configures a Presenter.
type Options struct {
	// SuggestionEmail receives "suggest a city" and "suggest a place" mails.
	SuggestionEmail string
	// BaseURL is the public origin prefixed to alternate-language URLs.
	// Empty keeps them root-relative.
	BaseURL string
}

// Presenter builds view models. It holds no per-request state.
type Presenter struct {
	tr      *i18n.Translator
	email   string
	baseURL string
}

// New creates a Presenter.
func New(tr *i18n.Translator, opts Options) *Presenter {
	return &Presenter{
		tr:      tr,
		email:   opts.SuggestionEmail,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
	}
}

// Translator returns the translator the presenter renders with.
func (p *Presenter) Translator() *i18n.Translator {
	return p.tr
}

// Directory renders a pipeline result.
func (p *Presenter) Directory(l domain.Locale, res *directory.Result) *DirectoryPage {
	base := l.DirectoryPath()
	q := res.Query

	page := &DirectoryPage{
		Locale:    l,
		Title:     p.tr.Text(l, i18n.MsgDirectoryTitle),
		Intro:     p.tr.Text(l, i18n.MsgDirectoryIntro),
		BasePath:  base,
		Query:     QueryView{Text: q.Text, Category: q.Category},
		Summary:   p.Summary(l, len(res.Filtered), res.PopulatedCount),
		Matched:   len(res.Filtered),
		Populated: res.PopulatedCount,
		ShowsAll:  res.ShowsAll(),
		Chips:     p.Chips(l, q, res.ChipCounts),
		Featured:  p.cards(l, res.Featured),
		Remaining: p.cards(l, res.Remaining),
		ClearHref: base,
		Labels: PageLabels{
			Featured:          p.tr.Text(l, i18n.MsgFeaturedHeading),
			More:              p.tr.Text(l, i18n.MsgMoreHeading),
			SearchPlaceholder: p.tr.Text(l, i18n.MsgSearchPlaceholder),
			SearchSubmit:      p.tr.Text(l, i18n.MsgSearchSubmit),
		},
		Alternates: p.alternates(l, func(other domain.Locale) string {
			return q.Href(other.DirectoryPath())
		}),
	}

	switch {
	case res.NoCities():
		page.Empty = &EmptyState{
			Kind:         EmptyNoCities,
			Message:      p.tr.Text(l, i18n.MsgSummaryEmpty),
			SuggestLabel: p.tr.Text(l, i18n.MsgEmptySuggest),
			SuggestHref:  p.citySuggestion(l, ""),
		}
	case res.NoMatches():
		page.Empty = &EmptyState{
			Kind:         EmptyNoMatch,
			Message:      p.tr.Text(l, i18n.MsgSummaryNone),
			ClearLabel:   p.tr.Text(l, i18n.MsgEmptyClear),
			ClearHref:    base,
			SuggestLabel: p.tr.Text(l, i18n.MsgEmptySuggest),
			SuggestHref:  p.citySuggestion(l, q.Text),
		}
	}

	return page
}

// Summary returns the localized count phrase. Showing every populated city
// uses the "all cities" phrasing.
func (p *Presenter) Summary(l domain.Locale, matched, populated int) string {
	switch {
	case populated == 0:
		return p.tr.Text(l, i18n.MsgSummaryEmpty)
	case matched == 0:
		return p.tr.Text(l, i18n.MsgSummaryNone)
	case matched == populated:
		return p.tr.Text(l, i18n.MsgSummaryAll, matched)
	default:
		return p.tr.Text(l, i18n.MsgSummaryFound, matched)
	}
}

// Chips renders the category filter, "all" first then the canonical order.
// Each chip keeps the current text and replaces only the category.
func (p *Presenter) Chips(l domain.Locale, q domain.Query, counts map[domain.Category]int) []CategoryChip {
	active := q.Category
	if active == "" {
		active = domain.CategoryAll
	}
	base := l.DirectoryPath()

	order := append([]domain.Category{domain.CategoryAll}, domain.Categories...)
	chips := make([]CategoryChip, 0, len(order))
	for _, c := range order {
		n := counts[c]
		chips = append(chips, CategoryChip{
			Category: c,
			Label:    p.tr.Category(l, c),
			Href:     q.WithCategory(c).Href(base),
			Count:    n,
			Active:   c == active,
			Disabled: n == 0,
		})
	}
	return chips
}

// Card renders one city tile.
func (p *Presenter) Card(l domain.Locale, s *domain.CitySummary) CityCard {
	badges := make([]CountBadge, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		if n := s.Count(c); n > 0 {
			badges = append(badges, CountBadge{Category: c, Label: p.tr.Category(l, c), Count: n})
		}
	}

	return CityCard{
		Key:       s.Key,
		Label:     s.Label,
		Href:      l.CityPath(s.Key),
		Image:     s.FirstImage,
		Total:     s.TotalCount,
		TotalText: p.tr.Text(l, i18n.MsgCityTotal, s.TotalCount),
		Badges:    badges,
	}
}

func (p *Presenter) cards(l domain.Locale, summaries []domain.CitySummary) []CityCard {
	cards := make([]CityCard, 0, len(summaries))
	for i := range summaries {
		cards = append(cards, p.Card(l, &summaries[i]))
	}
	return cards
}

// City renders the detail page of one city. Every category gets a section
// in canonical order, empty ones with a "coming soon" block.
func (p *Presenter) City(l domain.Locale, s *domain.CitySummary, bucket domain.CityBucket) *CityPage {
	page := &CityPage{
		Locale:    l,
		Key:       s.Key,
		Label:     s.Label,
		Image:     s.FirstImage,
		Total:     s.TotalCount,
		TotalText: p.tr.Text(l, i18n.MsgCityTotal, s.TotalCount),
		BackHref:  l.DirectoryPath(),
		BackLabel: p.tr.Text(l, i18n.MsgCityBack),
		Sections:  make([]CategorySection, 0, len(domain.Categories)),
		Alternates: p.alternates(l, func(other domain.Locale) string {
			return other.CityPath(s.Key)
		}),
	}

	visit := p.tr.Text(l, i18n.MsgCityVisit)
	for _, c := range domain.Categories {
		listings := bucket.Listings(c)
		section := CategorySection{
			Category: c,
			Label:    p.tr.Category(l, c),
			Listings: make([]ListingView, 0, len(listings)),
		}
		for i := range listings {
			item := &listings[i]
			section.Listings = append(section.Listings, ListingView{
				ID:         domain.ListingID(s.Key, c, item.Slug),
				Name:       item.Name,
				Address:    item.Address,
				Short:      item.Short,
				Image:      item.Image,
				Href:       item.Link(),
				External:   item.HasLink(),
				VisitLabel: visit,
			})
		}
		if len(section.Listings) == 0 {
			noun := p.tr.CategoryNoun(l, c)
			section.ComingSoon = &ComingSoon{
				Title:        p.tr.Text(l, i18n.MsgCityComingSoon),
				Message:      p.tr.Text(l, i18n.MsgCityNoListings, noun, s.Label),
				SuggestLabel: p.tr.Text(l, i18n.MsgCitySuggest),
				SuggestHref: Mailto(p.email,
					p.tr.Text(l, i18n.MsgCitySuggestSubj, noun, s.Label),
					p.tr.Text(l, i18n.MsgCitySuggestBody, noun, s.Label)),
			}
		}
		page.Sections = append(page.Sections, section)
	}

	return page
}

// citySuggestion builds the mailto for suggesting a new city, mentioning
// the search text when there is one.
func (p *Presenter) citySuggestion(l domain.Locale, text string) string {
	body := p.tr.Text(l, i18n.MsgSuggestBody)
	if text != "" {
		body = p.tr.Text(l, i18n.MsgSuggestBodyQuery, text)
	}
	return Mailto(p.email, p.tr.Text(l, i18n.MsgSuggestSubject), body)
}

// Mailto builds a mailto href with an encoded subject and body.
// Spaces are encoded as %20 since mail clients do not decode "+".
func Mailto(address, subject, body string) string {
	v := "subject=" + escape(subject)
	if body != "" {
		v += "&body=" + escape(body)
	}
	return "mailto:" + address + "?" + v
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (p *Presenter) alternates(current domain.Locale, href func(domain.Locale) string) []LocaleLink {
	links := make([]LocaleLink, 0, len(domain.Locales))
	for _, l := range domain.Locales {
		h := href(l)
		links = append(links, LocaleLink{Locale: l, Href: h, URL: p.baseURL + h, Active: l == current})
	}
	return links
}
