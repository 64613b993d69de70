// Package symptom turns raw symptom input into canonical tokens and queries.
package symptom

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyQuery is returned for a query with no symptoms in it.
var ErrEmptyQuery = errors.New("please select at least one symptom")

const querySeparator = ", "

// Tokenize lowercases text, splits it on commas and trims each piece.
// Empty pieces are dropped. Duplicates and short tokens are kept.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	lowered := strings.ToLower(norm.NFKC.String(text))
	parts := strings.Split(lowered, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IsValidToken reports whether tok may appear in a vocabulary:
// longer than one character and not the literal "nan" left by empty CSV cells.
func IsValidToken(tok string) bool {
	return utf8.RuneCountInString(tok) > 1 && tok != "nan"
}

// UniqueTokens tokenizes text and keeps valid tokens once, in first-seen order.
func UniqueTokens(text string) []string {
	tokens := Tokenize(text)
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !IsValidToken(t) {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ComposeQuery joins the non-blank selected tokens and appends freeText as typed.
func ComposeQuery(selected []string, freeText string) string {
	picked := make([]string, 0, len(selected))
	for _, s := range selected {
		if strings.TrimSpace(s) != "" {
			picked = append(picked, s)
		}
	}
	query := strings.Join(picked, querySeparator)
	if freeText == "" {
		return query
	}
	if query == "" {
		return freeText
	}
	return query + querySeparator + freeText
}

// ValidateQuery rejects queries without a single symptom token, such as
// blanks or bare separators, before they reach the classifier.
func ValidateQuery(query string) error {
	if len(Tokenize(query)) == 0 {
		return ErrEmptyQuery
	}
	return nil
}
