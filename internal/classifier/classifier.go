// Package classifier is the boundary to the pretrained symptom classifier.
package classifier

import (
	"context"
	"fmt"
)

// Classifier maps one symptom query to a probability per disease class.
// Predict returns probabilities aligned with Classes().
type Classifier interface {
	Classes() []string
	Predict(ctx context.Context, text string) ([]float64, error)
}

// Scored pairs a class name with its probability.
type Scored struct {
	Class       string
	Probability float64
}

// Vector runs c on text and pairs each probability with its class, in native class order.
func Vector(ctx context.Context, c Classifier, text string) ([]Scored, error) {
	probs, err := c.Predict(ctx, text)
	if err != nil {
		return nil, err
	}
	classes := c.Classes()
	if len(probs) != len(classes) {
		return nil, fmt.Errorf("classifier returned %d probabilities for %d classes", len(probs), len(classes))
	}
	out := make([]Scored, len(classes))
	for i, name := range classes {
		out[i] = Scored{Class: name, Probability: probs[i]}
	}
	return out, nil
}

// Func adapts a fixed class list and a prediction function to Classifier.
type Func struct {
	ClassNames []string
	PredictFn  func(ctx context.Context, text string) ([]float64, error)
}

// Classes returns the class list.
func (f Func) Classes() []string { return f.ClassNames }

// Predict calls PredictFn.
func (f Func) Predict(ctx context.Context, text string) ([]float64, error) {
	return f.PredictFn(ctx, text)
}

// Static returns a Classifier that always predicts probs for classes.
func Static(classes []string, probs []float64) Func {
	return Func{
		ClassNames: classes,
		PredictFn: func(context.Context, string) ([]float64, error) {
			out := make([]float64, len(probs))
			copy(out, probs)
			return out, nil
		},
	}
}
