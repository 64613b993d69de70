package pipeline

import (
	"context"
	"fmt"

	"gramhealth-go/internal/classifier"
	"gramhealth-go/internal/config"
	"gramhealth-go/internal/knowledge"
	"gramhealth-go/internal/symptom"
	"gramhealth-go/pkg/es"
	"gramhealth-go/pkg/log"
)

// Resources is the read-only state shared by every request: the classifier,
// the symptom vocabulary, the knowledge base and the symptom translations.
// It is loaded once at startup and never mutated afterwards.
type Resources struct {
	Classifier   classifier.Classifier
	Knowledge    *knowledge.Base
	Vocabulary   []string
	Translations symptom.TranslationMap
}

// LoadResources reads every artifact named in cfg. When Elasticsearch is enabled
// the knowledge base comes from the index, optionally seeded from the file first.
func LoadResources(ctx context.Context, cfg config.Config) (*Resources, error) {
	rc := cfg.Resources

	nb, err := classifier.LoadNaiveBayes(rc.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}
	log.Infof("[Resources] classifier loaded with %d classes", len(nb.Classes()))

	rows, err := symptom.LoadCorpus(rc.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	vocab := symptom.BuildVocabulary(rows)
	log.Infof("[Resources] vocabulary built: %d symptoms from %d corpus rows", len(vocab), len(rows))

	kb, err := loadKnowledge(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("[Resources] knowledge base loaded with %d diseases", kb.Len())

	translations, err := symptom.LoadTranslations(rc.TranslationsPath)
	if err != nil {
		log.Warnf("[Resources] symptom translations unavailable, continuing without them: %v", err)
		translations = symptom.TranslationMap{}
	}

	for _, class := range nb.Classes() {
		if _, ok := kb.Lookup(class); !ok {
			log.Warnf("[Resources] class %q has no knowledge base entry", class)
		}
	}

	return &Resources{
		Classifier:   nb,
		Knowledge:    kb,
		Vocabulary:   vocab,
		Translations: translations,
	}, nil
}

func loadKnowledge(ctx context.Context, cfg config.Config) (*knowledge.Base, error) {
	if !cfg.Elasticsearch.Enabled {
		kb, err := knowledge.Load(cfg.Resources.KnowledgeBase)
		if err != nil {
			return nil, fmt.Errorf("load knowledge base: %w", err)
		}
		return kb, nil
	}

	if err := es.InitES(cfg.Elasticsearch); err != nil {
		return nil, fmt.Errorf("init elasticsearch: %w", err)
	}
	index := cfg.Elasticsearch.IndexName
	if cfg.Elasticsearch.Seed {
		fileKB, err := knowledge.Load(cfg.Resources.KnowledgeBase)
		if err != nil {
			return nil, fmt.Errorf("load knowledge base for seeding: %w", err)
		}
		if err := knowledge.SeedIndex(ctx, index, fileKB); err != nil {
			return nil, err
		}
	}
	kb, err := knowledge.LoadFromElasticsearch(ctx, index)
	if err != nil {
		return nil, err
	}
	return kb, nil
}
