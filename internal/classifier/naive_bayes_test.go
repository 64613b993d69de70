package classifier

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testArtifact = `{
	"classes": ["Common Cold", "Malaria", "Migraine"],
	"vocabulary": {"chills": 0, "continuous sneezing": 1, "high fever": 2, "headache": 3},
	"class_log_prior": [-1.0986, -1.0986, -1.0986],
	"feature_log_prob": [
		[-1.2, -0.7, -3.0, -3.0],
		[-0.9, -3.0, -0.8, -2.5],
		[-3.0, -3.0, -3.0, -0.2]
	]
}`

func TestNaiveBayesPredict(t *testing.T) {
	m, err := ParseNaiveBayes([]byte(testArtifact))
	require.NoError(t, err)
	assert.Equal(t, []string{"Common Cold", "Malaria", "Migraine"}, m.Classes())

	probs, err := m.Predict(context.Background(), "High Fever, chills")
	require.NoError(t, err)
	require.Len(t, probs, 3)

	var sum float64
	for _, p := range probs {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, probs[1], probs[0])
	assert.Greater(t, probs[1], probs[2])
}

func TestNaiveBayesUnknownTokensYieldPriors(t *testing.T) {
	m, err := ParseNaiveBayes([]byte(testArtifact))
	require.NoError(t, err)

	probs, err := m.Predict(context.Background(), "something unheard of")
	require.NoError(t, err)
	for _, p := range probs {
		assert.InDelta(t, 1.0/3.0, p, 1e-9)
	}
}

func TestNaiveBayesRejectsEmptyInput(t *testing.T) {
	m, err := ParseNaiveBayes([]byte(testArtifact))
	require.NoError(t, err)
	_, err = m.Predict(context.Background(), "  ")
	assert.Error(t, err)
}

func TestParseNaiveBayesValidation(t *testing.T) {
	bad := []string{
		`not json`,
		`{"classes": []}`,
		`{"classes": ["A"], "vocabulary": {}, "class_log_prior": [], "feature_log_prob": [[]]}`,
		`{"classes": ["A"], "vocabulary": {"x": 0}, "class_log_prior": [0], "feature_log_prob": [[]]}`,
		`{"classes": ["A"], "vocabulary": {"x": 3}, "class_log_prior": [0], "feature_log_prob": [[0]]}`,
	}
	for _, b := range bad {
		_, err := ParseNaiveBayes([]byte(b))
		assert.Error(t, err, b)
	}
}

func TestSoftmaxAllNegativeInfinity(t *testing.T) {
	out := softmax([]float64{math.Inf(-1), math.Inf(-1)})
	assert.Equal(t, []float64{0, 0}, out)
}

func TestVector(t *testing.T) {
	c := Static([]string{"A", "B"}, []float64{0.25, 0.75})
	vec, err := Vector(context.Background(), c, "x")
	require.NoError(t, err)
	assert.Equal(t, []Scored{{"A", 0.25}, {"B", 0.75}}, vec)

	mismatched := Static([]string{"A", "B"}, []float64{1})
	_, err = Vector(context.Background(), mismatched, "x")
	assert.Error(t, err)

	boom := errors.New("artifact missing")
	failing := Func{ClassNames: []string{"A"}, PredictFn: func(context.Context, string) ([]float64, error) { return nil, boom }}
	_, err = Vector(context.Background(), failing, "x")
	assert.ErrorIs(t, err, boom)
}
