package hiddenquery

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	keyAdditionalFilters = "AdditionalFilters"
	titleSeparator       = " : "
)

var titles = newTitleCatalog()

func newTitleCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msg := range map[language.Tag]string{
		language.English: "Additional filters",
		language.French:  "Filtres additionnels",
		language.German:  "Zusätzliche Filter",
		language.Spanish: "Filtros adicionales",
	} {
		if err := b.SetString(tag, keyAdditionalFilters, msg); err != nil {
			panic(err)
		}
	}
	return b
}

// DefaultTitle returns the localized breadcrumb title for tag, including the
// trailing separator.
func DefaultTitle(tag language.Tag) string {
	if tag == language.Und {
		tag = language.English
	}
	p := message.NewPrinter(tag, message.Catalog(titles))
	return p.Sprintf(keyAdditionalFilters) + titleSeparator
}
