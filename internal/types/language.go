package types

import (
	"fmt"
	"strings"
)

// Language is a supported output language.
type Language string

// Supported output languages.
const (
	LanguageEnglish  Language = "English"
	LanguageDutch    Language = "Dutch"
	LanguageSpanish  Language = "Spanish"
	LanguageFrench   Language = "French"
	LanguageGerman   Language = "German"
	LanguageChinese  Language = "Chinese"
	LanguageJapanese Language = "Japanese"
	LanguageRussian  Language = "Russian"
)

// DefaultLanguage is used when no language is requested.
const DefaultLanguage = LanguageEnglish

// SupportedLanguages lists every accepted output language in display order.
func SupportedLanguages() []Language {
	return []Language{
		LanguageEnglish,
		LanguageDutch,
		LanguageSpanish,
		LanguageFrench,
		LanguageGerman,
		LanguageChinese,
		LanguageJapanese,
		LanguageRussian,
	}
}

// UnsupportedLanguageError is returned when a language outside the supported set is requested.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported target language %q (supported: %s)", e.Language, supportedLanguageList())
}

// ParseLanguage resolves a language name case-insensitively to its canonical spelling.
func ParseLanguage(name string) (Language, error) {
	trimmed := strings.TrimSpace(name)
	for _, lang := range SupportedLanguages() {
		if strings.EqualFold(trimmed, string(lang)) {
			return lang, nil
		}
	}
	return "", &UnsupportedLanguageError{Language: name}
}

func supportedLanguageList() string {
	names := make([]string, 0, len(SupportedLanguages()))
	for _, lang := range SupportedLanguages() {
		names = append(names, string(lang))
	}
	return strings.Join(names, ", ")
}
