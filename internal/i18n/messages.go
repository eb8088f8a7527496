package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message ids. Templates and the presenter refer to messages only by id.
const (
	MsgDirectoryTitle    = "directory.title"
	MsgDirectoryIntro    = "directory.intro"
	MsgSummaryAll        = "directory.summary.all"
	MsgSummaryFound      = "directory.summary.found"
	MsgSummaryNone       = "directory.summary.none"
	MsgSummaryEmpty      = "directory.summary.empty"
	MsgFeaturedHeading   = "directory.featured"
	MsgMoreHeading       = "directory.more"
	MsgSearchPlaceholder = "directory.search.placeholder"
	MsgSearchSubmit      = "directory.search.submit"
	MsgEmptyClear        = "directory.empty.clear"
	MsgEmptySuggest      = "directory.empty.suggest"
	MsgSuggestSubject    = "directory.suggest.subject"
	MsgSuggestBody       = "directory.suggest.body"
	MsgSuggestBodyQuery  = "directory.suggest.body.query"
	MsgCityTotal         = "city.total"
	MsgCityBack          = "city.back"
	MsgCityVisit         = "city.visit"
	MsgCityComingSoon    = "city.coming_soon"
	MsgCityNoListings    = "city.no_listings"
	MsgCitySuggest       = "city.suggest"
	MsgCitySuggestSubj   = "city.suggest.subject"
	MsgCitySuggestBody   = "city.suggest.body"
	MsgCityNotFound      = "city.not_found"
	MsgCityNotFoundBody  = "city.not_found.body"

	msgCategoryPrefix = "category."
)

// CategoryMessage returns the message id of a category label.
func CategoryMessage(c string) string {
	return msgCategoryPrefix + c
}

type entry struct {
	key string
	msg catalog.Message
}

func str(key, text string) entry {
	return entry{key: key, msg: catalog.String(text)}
}

func english() []entry {
	return []entry{
		str(MsgDirectoryTitle, "Italian Directory UK"),
		str(MsgDirectoryIntro, "Italian restaurants, delis and shops across the UK, city by city."),
		{MsgSummaryAll, plural.Selectf(1, "%d",
			"one", "%d city",
			"other", "All %d cities")},
		{MsgSummaryFound, plural.Selectf(1, "%d",
			"one", "%d city found",
			"other", "%d cities found")},
		str(MsgSummaryNone, "No cities match your search"),
		str(MsgSummaryEmpty, "The directory is being populated"),
		str(MsgFeaturedHeading, "Most popular cities"),
		str(MsgMoreHeading, "More cities"),
		str(MsgSearchPlaceholder, "Search a city"),
		str(MsgSearchSubmit, "Search"),
		str(MsgEmptyClear, "Clear filters"),
		str(MsgEmptySuggest, "Suggest a city"),
		str(MsgSuggestSubject, "Italian Directory UK: city suggestion"),
		str(MsgSuggestBody, "Hello, I would like to suggest a city for the directory:"),
		str(MsgSuggestBodyQuery, "Hello, I would like to suggest %s for the directory."),
		{MsgCityTotal, plural.Selectf(1, "%d",
			"one", "%d place",
			"other", "%d places")},
		str(MsgCityBack, "Back to the directory"),
		str(MsgCityVisit, "Visit"),
		str(MsgCityComingSoon, "Coming soon"),
		str(MsgCityNoListings, "No %[1]s listed in %[2]s yet."),
		str(MsgCitySuggest, "Suggest a place"),
		str(MsgCitySuggestSubj, "Italian Directory UK: %[1]s in %[2]s"),
		str(MsgCitySuggestBody, "Hello, I would like to suggest one of the %[1]s in %[2]s:"),
		str(MsgCityNotFound, "City not found"),
		str(MsgCityNotFoundBody, "This city is not in the directory yet."),
		str(CategoryMessage("all"), "All"),
		str(CategoryMessage("restaurants"), "Restaurants"),
		str(CategoryMessage("delis"), "Delis"),
		str(CategoryMessage("shops"), "Shops"),
	}
}

func italian() []entry {
	return []entry{
		str(MsgDirectoryTitle, "Guida Italiana UK"),
		str(MsgDirectoryIntro, "Ristoranti, gastronomie e negozi italiani nel Regno Unito, città per città."),
		{MsgSummaryAll, plural.Selectf(1, "%d",
			"one", "%d città",
			"other", "Tutte le %d città")},
		{MsgSummaryFound, plural.Selectf(1, "%d",
			"one", "%d città trovata",
			"other", "%d città trovate")},
		str(MsgSummaryNone, "Nessuna città corrisponde alla tua ricerca"),
		str(MsgSummaryEmpty, "La guida è in fase di allestimento"),
		str(MsgFeaturedHeading, "Città più popolari"),
		str(MsgMoreHeading, "Altre città"),
		str(MsgSearchPlaceholder, "Cerca una città"),
		str(MsgSearchSubmit, "Cerca"),
		str(MsgEmptyClear, "Rimuovi filtri"),
		str(MsgEmptySuggest, "Suggerisci una città"),
		str(MsgSuggestSubject, "Guida Italiana UK: suggerimento città"),
		str(MsgSuggestBody, "Ciao, vorrei suggerire una città per la guida:"),
		str(MsgSuggestBodyQuery, "Ciao, vorrei suggerire %s per la guida."),
		{MsgCityTotal, plural.Selectf(1, "%d",
			"one", "%d locale",
			"other", "%d locali")},
		str(MsgCityBack, "Torna alla guida"),
		str(MsgCityVisit, "Visita"),
		str(MsgCityComingSoon, "In arrivo"),
		str(MsgCityNoListings, "Nessun elemento in %[1]s a %[2]s per ora."),
		str(MsgCitySuggest, "Suggerisci un locale"),
		str(MsgCitySuggestSubj, "Guida Italiana UK: %[1]s a %[2]s"),
		str(MsgCitySuggestBody, "Ciao, vorrei suggerire un locale tra %[1]s a %[2]s:"),
		str(MsgCityNotFound, "Città non trovata"),
		str(MsgCityNotFoundBody, "Questa città non è ancora nella guida."),
		str(CategoryMessage("all"), "Tutte"),
		str(CategoryMessage("restaurants"), "Ristoranti"),
		str(CategoryMessage("delis"), "Gastronomie"),
		str(CategoryMessage("shops"), "Negozi"),
	}
}

// newCatalog builds the message catalog for every supported language.
func newCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range map[language.Tag][]entry{
		language.English: english(),
		language.Italian: italian(),
	} {
		for _, e := range entries {
			if err := b.Set(tag, e.key, e.msg); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// cityNames holds the localized names of cities whose label is not simply
// the title-cased key.
var cityNames = map[language.Tag]map[string]string{ //nolint:gochecknoglobals // Static table
	language.Italian: {
		"london":    "Londra",
		"edinburgh": "Edimburgo",
	},
}
