package i18n

import "strings"

// Supported forum languages, stored on the user record
const (
	LanguageEnglish = "en"
	LanguageRussian = "ru"
)

// ByLocale maps a locale tag (e.g. "ru", "ru-RU", "en_US") to a supported
// forum language, defaulting to English.
func ByLocale(locale string) string {
	base := strings.ToLower(locale)
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	switch base {
	case LanguageRussian:
		return LanguageRussian
	default:
		return LanguageEnglish
	}
}
