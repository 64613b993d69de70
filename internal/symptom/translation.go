package symptom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// TranslationMap maps an English symptom token to its localized display form.
// A missing entry means no translation is known.
type TranslationMap map[string]string

// Option is a selectable symptom: the token sent to the classifier and its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LoadTranslations reads a JSON object of token -> translation.
// A missing file yields an empty map.
func LoadTranslations(path string) (TranslationMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TranslationMap{}, nil
		}
		return nil, fmt.Errorf("read translations: %w", err)
	}
	m := TranslationMap{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode translations: %w", err)
	}
	return m, nil
}

// Label returns "token (translation)" when a translation exists, otherwise the token.
func (m TranslationMap) Label(token string) string {
	if tr := m[token]; tr != "" {
		return token + " (" + tr + ")"
	}
	return token
}

// DisplayOptions labels each token for a selection list. Values stay English.
func (m TranslationMap) DisplayOptions(tokens []string) []Option {
	out := make([]Option, len(tokens))
	for i, tok := range tokens {
		out[i] = Option{Value: tok, Label: m.Label(tok)}
	}
	return out
}
