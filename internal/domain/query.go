package domain

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
)

// Query parameter names used by directory links.
const (
	ParamText     = "q"
	ParamCategory = "cat"
)

// Query is the directory filter state carried in the page URL.
type Query struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// NewQuery builds a normalized query. Unknown categories become CategoryAll
// and surrounding whitespace is dropped from the text.
func NewQuery(category, text string) Query {
	return Query{
		Category: ParseFilterCategory(category),
		Text:     strings.TrimSpace(text),
	}
}

// ParseQuery reads a query from URL values.
func ParseQuery(v url.Values) Query {
	return NewQuery(v.Get(ParamCategory), v.Get(ParamText))
}

// Needle returns the case-folded text used for matching.
func (q Query) Needle() string {
	return cases.Fold().String(q.Text)
}

// IsDefault reports whether the query is the cleared state.
func (q Query) IsDefault() bool {
	return q.Text == "" && (q.Category == CategoryAll || q.Category == "")
}

// WithCategory returns a copy of q with the category replaced.
func (q Query) WithCategory(c Category) Query {
	q.Category = c
	return q
}

// Values encodes q as URL values, omitting parameters at their default.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Text != "" {
		v.Set(ParamText, q.Text)
	}
	if q.Category != CategoryAll && q.Category != "" {
		v.Set(ParamCategory, string(q.Category))
	}
	return v
}

// Href appends the encoded query to base. The cleared query returns base
// unchanged.
func (q Query) Href(base string) string {
	encoded := q.Values().Encode()
	if encoded == "" {
		return base
	}
	return base + "?" + encoded
}
