package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

// NaiveBayes is a multinomial Naive Bayes model over comma-separated symptom tokens.
// It is immutable after loading and safe for concurrent use.
type NaiveBayes struct {
	classes        []string
	vocabulary     map[string]int
	classLogPrior  []float64
	featureLogProb [][]float64
}

// naiveBayesArtifact is the exported model file layout.
// feature_log_prob is indexed [class][vocabulary index].
type naiveBayesArtifact struct {
	Classes        []string       `json:"classes"`
	Vocabulary     map[string]int `json:"vocabulary"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`
}

// LoadNaiveBayes reads and validates a model artifact.
func LoadNaiveBayes(path string) (*NaiveBayes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	return ParseNaiveBayes(data)
}

// ParseNaiveBayes decodes and validates a model artifact.
func ParseNaiveBayes(data []byte) (*NaiveBayes, error) {
	var a naiveBayesArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if len(a.Classes) == 0 {
		return nil, errors.New("model artifact has no classes")
	}
	if len(a.ClassLogPrior) != len(a.Classes) {
		return nil, fmt.Errorf("class_log_prior has %d entries for %d classes", len(a.ClassLogPrior), len(a.Classes))
	}
	if len(a.FeatureLogProb) != len(a.Classes) {
		return nil, fmt.Errorf("feature_log_prob has %d rows for %d classes", len(a.FeatureLogProb), len(a.Classes))
	}
	width := len(a.Vocabulary)
	for i, row := range a.FeatureLogProb {
		if len(row) != width {
			return nil, fmt.Errorf("feature_log_prob row %d has %d columns, vocabulary has %d", i, len(row), width)
		}
	}
	for tok, idx := range a.Vocabulary {
		if idx < 0 || idx >= width {
			return nil, fmt.Errorf("vocabulary index %d for %q out of range", idx, tok)
		}
	}
	return &NaiveBayes{
		classes:        a.Classes,
		vocabulary:     a.Vocabulary,
		classLogPrior:  a.ClassLogPrior,
		featureLogProb: a.FeatureLogProb,
	}, nil
}

// Classes returns the class names in model order.
func (m *NaiveBayes) Classes() []string {
	out := make([]string, len(m.classes))
	copy(out, m.classes)
	return out
}

// Predict returns the posterior probability of every class for text.
// Tokens outside the vocabulary are ignored, so an all-unknown query yields the priors.
func (m *NaiveBayes) Predict(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty input text")
	}

	counts := make(map[int]float64)
	for _, part := range strings.Split(strings.ToLower(text), ",") {
		tok := strings.TrimSpace(part)
		if tok == "" {
			continue
		}
		if idx, ok := m.vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	jll := make([]float64, len(m.classes))
	for c := range m.classes {
		score := m.classLogPrior[c]
		for idx, n := range counts {
			score += n * m.featureLogProb[c][idx]
		}
		jll[c] = score
	}
	return softmax(jll), nil
}

// softmax normalizes log scores into probabilities using the log-sum-exp shift.
func softmax(logits []float64) []float64 {
	maxLogit := math.Inf(-1)
	for _, v := range logits {
		if v > maxLogit {
			maxLogit = v
		}
	}
	out := make([]float64, len(logits))
	if math.IsInf(maxLogit, -1) {
		return out
	}
	var sum float64
	for i, v := range logits {
		out[i] = math.Exp(v - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
