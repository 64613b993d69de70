package model

import "strings"

// Language is a supported content language.
type Language string

const (
	English Language = "en"
	Tamil   Language = "ta"
)

// ParseLanguage maps a language code to a Language. Unknown or empty codes yield English.
func ParseLanguage(code string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(code))) {
	case Tamil:
		return Tamil
	default:
		return English
	}
}
