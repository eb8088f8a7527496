package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italianiuk/italianiuk-server/internal/domain"
	"github.com/italianiuk/italianiuk-server/internal/i18n"
)

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.New()
	require.NoError(t, err)
	return tr
}

func TestText_Plurals(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		locale domain.Locale
		id     string
		n      int
		want   string
	}{
		{domain.LocaleEN, i18n.MsgSummaryFound, 1, "1 city found"},
		{domain.LocaleEN, i18n.MsgSummaryFound, 4, "4 cities found"},
		{domain.LocaleIT, i18n.MsgSummaryFound, 1, "1 città trovata"},
		{domain.LocaleIT, i18n.MsgSummaryFound, 4, "4 città trovate"},
		{domain.LocaleEN, i18n.MsgSummaryAll, 9, "All 9 cities"},
		{domain.LocaleIT, i18n.MsgSummaryAll, 9, "Tutte le 9 città"},
		{domain.LocaleEN, i18n.MsgCityTotal, 1, "1 place"},
		{domain.LocaleIT, i18n.MsgCityTotal, 7, "7 locali"},
	}

	for _, tt := range tests {
		t.Run(string(tt.locale)+"/"+tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Text(tt.locale, tt.id, tt.n))
		})
	}
}

func TestText_PositionalArgs(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "No delis listed in Leeds yet.", tr.Text(domain.LocaleEN, i18n.MsgCityNoListings, "delis", "Leeds"))
	assert.Equal(t, "Nessun elemento in gastronomie a Leeds per ora.", tr.Text(domain.LocaleIT, i18n.MsgCityNoListings, "gastronomie", "Leeds"))
}

func TestCategory(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "Restaurants", tr.Category(domain.LocaleEN, domain.CategoryRestaurants))
	assert.Equal(t, "Gastronomie", tr.Category(domain.LocaleIT, domain.CategoryDelis))
	assert.Equal(t, "Tutte", tr.Category(domain.LocaleIT, domain.CategoryAll))
	assert.Equal(t, "negozi", tr.CategoryNoun(domain.LocaleIT, domain.CategoryShops))
}

func TestEveryMessageTranslated(t *testing.T) {
	tr := newTranslator(t)

	ids := []string{
		i18n.MsgDirectoryTitle, i18n.MsgSummaryNone, i18n.MsgSummaryEmpty,
		i18n.MsgFeaturedHeading, i18n.MsgMoreHeading, i18n.MsgEmptyClear,
		i18n.MsgEmptySuggest, i18n.MsgCityComingSoon, i18n.MsgCitySuggest,
		i18n.MsgCityNotFound,
	}
	for _, id := range ids {
		en := tr.Text(domain.LocaleEN, id)
		it := tr.Text(domain.LocaleIT, id)
		assert.NotEqual(t, id, en, "english text missing for %s", id)
		assert.NotEqual(t, en, it, "italian text missing for %s", id)
	}
}

func TestCityLabel(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "Milton Keynes", tr.CityLabel(domain.LocaleEN, "milton-keynes"))
	assert.Equal(t, "Milton Keynes", tr.CityLabel(domain.LocaleIT, "milton-keynes"))
	assert.Equal(t, "London", tr.CityLabel(domain.LocaleEN, "london"))
	assert.Equal(t, "Londra", tr.CityLabel(domain.LocaleIT, "london"))
	assert.Equal(t, "Edimburgo", tr.Labeler(domain.LocaleIT)("edinburgh"))
}

func TestNegotiate(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		header string
		want   domain.Locale
	}{
		{"", domain.LocaleEN},
		{"it-IT,it;q=0.9,en;q=0.8", domain.LocaleIT},
		{"en-GB,en;q=0.9", domain.LocaleEN},
		{"fr-FR", domain.LocaleEN},
		{"de;q=0.9,it;q=0.5", domain.LocaleIT},
		{";;;garbage", domain.LocaleEN},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Negotiate(tt.header))
		})
	}
}

func TestResolve_ExplicitWins(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, domain.LocaleEN, tr.Resolve("en", "it"))
	assert.Equal(t, domain.LocaleIT, tr.Resolve("", "it"))
	assert.Equal(t, domain.LocaleIT, tr.Resolve("xx", "it"))
}
