package symptom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SymptomsColumn is the corpus column holding comma-joined symptom lists.
const SymptomsColumn = "Symptoms"

// BuildVocabulary returns the sorted union of valid tokens across corpus rows.
func BuildVocabulary(rows []string) []string {
	set := make(map[string]struct{})
	for _, row := range rows {
		for _, tok := range UniqueTokens(row) {
			set[tok] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(set))
	for tok := range set {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)
	return vocab
}

// LoadCorpus reads the Symptoms column of a CSV training corpus.
func LoadCorpus(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return ReadCorpus(f)
}

// ReadCorpus reads the Symptoms column from CSV data with a header row.
// Rows too short to contain the column are skipped.
func ReadCorpus(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty corpus")
		}
		return nil, fmt.Errorf("read corpus header: %w", err)
	}
	col := -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if strings.EqualFold(name, SymptomsColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("corpus has no %q column", SymptomsColumn)
	}

	var rows []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read corpus row: %w", err)
		}
		if col >= len(record) {
			continue
		}
		rows = append(rows, record[col])
	}
	return rows, nil
}
