package knowledge

import (
	"context"
	"encoding/json"
	"fmt"

	"gramhealth-go/internal/model"
	"gramhealth-go/pkg/es"
	"gramhealth-go/pkg/log"
)

// maxIndexedDiseases bounds the single match_all fetch.
const maxIndexedDiseases = 10000

// LoadFromElasticsearch builds a Base from every document in index.
// Document IDs are class names.
func LoadFromElasticsearch(ctx context.Context, index string) (*Base, error) {
	docs, err := es.FetchAll(ctx, index, maxIndexedDiseases)
	if err != nil {
		return nil, fmt.Errorf("fetch knowledge base: %w", err)
	}
	records := make(map[string]model.DiseaseRecord, len(docs))
	for class, raw := range docs {
		var rec model.DiseaseRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			log.Warnf("[Knowledge] skipping malformed document %q: %v", class, err)
			continue
		}
		records[class] = rec
	}
	return New(records), nil
}

// SeedIndex writes every record of b into index, keyed by class name.
func SeedIndex(ctx context.Context, index string, b *Base) error {
	for _, class := range b.Classes() {
		if err := es.IndexDocument(ctx, index, class, b.records[class]); err != nil {
			return fmt.Errorf("seed %s: %w", class, err)
		}
	}
	log.Infof("[Knowledge] seeded %d diseases into index '%s'", b.Len(), index)
	return nil
}
