// Package i18n provides the English and Italian message catalog, localized
// city labels, and locale negotiation.
package i18n

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/italianiuk/italianiuk-server/internal/domain"
)

// Translator resolves message ids to localized text.
// It is immutable after New and safe for concurrent use.
type Translator struct {
	catalog *catalog.Builder
	matcher language.Matcher
}

// New builds a Translator with the built-in catalog.
func New() (*Translator, error) {
	b, err := newCatalog()
	if err != nil {
		return nil, fmt.Errorf("build message catalog: %w", err)
	}

	tags := make([]language.Tag, 0, len(domain.Locales))
	for _, l := range domain.Locales {
		tags = append(tags, l.Tag())
	}

	return &Translator{
		catalog: b,
		matcher: language.NewMatcher(tags),
	}, nil
}

// Printer returns a printer bound to the locale.
func (t *Translator) Printer(l domain.Locale) *message.Printer {
	return message.NewPrinter(l.Tag(), message.Catalog(t.catalog))
}

// Text formats the message id for the locale.
func (t *Translator) Text(l domain.Locale, id string, args ...any) string {
	return t.Printer(l).Sprintf(id, args...)
}

// Category returns the localized label of a category, including "all".
func (t *Translator) Category(l domain.Locale, c domain.Category) string {
	return t.Text(l, CategoryMessage(string(c)))
}

// CategoryNoun returns the lower-case category label for use mid-sentence.
func (t *Translator) CategoryNoun(l domain.Locale, c domain.Category) string {
	return cases.Lower(l.Tag()).String(t.Category(l, c))
}

// CityLabel returns the display name of a city key. Known cities use their
// localized name; everything else is the key with hyphens as spaces, title
// cased for the locale.
func (t *Translator) CityLabel(l domain.Locale, key string) string {
	if name, ok := cityNames[l.Tag()][key]; ok {
		return name
	}
	return cases.Title(l.Tag()).String(domain.HumanizeKey(key))
}

// Labeler returns CityLabel bound to a locale.
func (t *Translator) Labeler(l domain.Locale) func(string) string {
	return func(key string) string {
		return t.CityLabel(l, key)
	}
}

// Negotiate picks the best supported locale for an Accept-Language header.
// Empty or unparseable headers yield the default locale.
func (t *Translator) Negotiate(acceptLanguage string) domain.Locale {
	if acceptLanguage == "" {
		return domain.DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return domain.DefaultLocale
	}

	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return domain.DefaultLocale
	}
	return domain.Locales[idx]
}

// Resolve returns the explicit locale when valid, otherwise negotiates from
// the Accept-Language header.
func (t *Translator) Resolve(explicit, acceptLanguage string) domain.Locale {
	if l, ok := domain.ParseLocale(explicit); ok {
		return l
	}
	return t.Negotiate(acceptLanguage)
}
