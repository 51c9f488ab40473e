// internal/util/datefmt.go
package util

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// DefaultLocale is used when a caller asks for a locale we do not know.
const DefaultLocale = "fr"

type dateLocale struct {
	locale        monday.Locale
	layout        string
	unknownMethod string
}

var dateLocales = map[string]dateLocale{
	"fr": {locale: monday.LocaleFrFR, layout: "02 January 2006 à 15h04", unknownMethod: "Inconnue"},
	"en": {locale: monday.LocaleEnUS, layout: "02 January 2006 at 15:04", unknownMethod: "Unknown"},
}

func localeKey(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(l, "-_."); i >= 0 {
		l = l[:i]
	}
	return l
}

// SupportedLocale reports whether locale (e.g. "en-US", "fr_FR.UTF-8") maps
// onto a locale we can format.
func SupportedLocale(locale string) bool {
	_, ok := dateLocales[localeKey(locale)]
	return ok
}

// NormalizeLocale maps inputs such as "fr_FR.UTF-8", "en-US" or "" onto a
// supported locale key.
func NormalizeLocale(locale string) string {
	if l := localeKey(locale); SupportedLocale(l) {
		return l
	}
	return DefaultLocale
}

// FormatDate renders t as a human readable date in the given locale,
// e.g. "05 mars 2025 à 14h07" for fr.
func FormatDate(t time.Time, locale string) string {
	loc := dateLocales[NormalizeLocale(locale)]
	return monday.Format(t, loc.layout, loc.locale)
}

// UnknownMethodLabel is the label shown when a history entry's method was removed.
func UnknownMethodLabel(locale string) string {
	return dateLocales[NormalizeLocale(locale)].unknownMethod
}
