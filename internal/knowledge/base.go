// Package knowledge resolves disease classes to bilingual reference content.
package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gramhealth-go/internal/model"
)

// ErrNotFound is returned when a class has no knowledge-base entry.
var ErrNotFound = errors.New("no knowledge base entry")

// Base is an immutable set of disease records keyed by class name.
type Base struct {
	records map[string]model.DiseaseRecord
}

// New builds a Base from records, filling each record's Class from its key.
func New(records map[string]model.DiseaseRecord) *Base {
	b := &Base{records: make(map[string]model.DiseaseRecord, len(records))}
	for class, rec := range records {
		rec.Class = class
		b.records[class] = rec
	}
	return b
}

// Load reads a knowledge-base JSON file: an object keyed by class name.
func Load(path string) (*Base, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open knowledge base: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a knowledge-base JSON document from r.
func Decode(r io.Reader) (*Base, error) {
	records := map[string]model.DiseaseRecord{}
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}
	return New(records), nil
}

// Len returns the number of records.
func (b *Base) Len() int {
	return len(b.records)
}

// Classes returns the class names in sorted order.
func (b *Base) Classes() []string {
	out := make([]string, 0, len(b.records))
	for class := range b.records {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the raw record for class.
func (b *Base) Lookup(class string) (model.DiseaseRecord, bool) {
	rec, ok := b.records[class]
	return rec, ok
}
