package domain

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a site language. English is the default and has no route prefix.
type Locale string

// Supported locales.
const (
	LocaleEN Locale = "en"
	LocaleIT Locale = "it"
)

// DefaultLocale is served when no prefix is present.
const DefaultLocale = LocaleEN

// Locales lists the supported locales, default first.
var Locales = []Locale{LocaleEN, LocaleIT} //nolint:gochecknoglobals // Closed enumeration

// ParseLocale parses a locale code such as "it" or "IT".
func ParseLocale(s string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleEN:
		return LocaleEN, true
	case LocaleIT:
		return LocaleIT, true
	default:
		return "", false
	}
}

// Tag returns the BCP 47 tag for the locale.
func (l Locale) Tag() language.Tag {
	if l == LocaleIT {
		return language.Italian
	}
	return language.English
}

// Prefix returns the route prefix: "" for English, "/it" for Italian.
func (l Locale) Prefix() string {
	if l == DefaultLocale || l == "" {
		return ""
	}
	return "/" + string(l)
}

// DirectoryPath returns the base path of the directory page for the locale.
func (l Locale) DirectoryPath() string {
	return l.Prefix() + "/directory"
}

// CityPath returns the path of a city page for the locale.
func (l Locale) CityPath(key string) string {
	return l.DirectoryPath() + "/" + key
}
