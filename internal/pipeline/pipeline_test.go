package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gramhealth-go/internal/classifier"
	"gramhealth-go/internal/knowledge"
	"gramhealth-go/internal/model"
	"gramhealth-go/internal/report"
	"gramhealth-go/internal/symptom"
)

const pipelineKB = `{
	"A": {
		"title_en": "Alpha Fever",
		"title_ta": "ஆல்ஃபா காய்ச்சல்",
		"description_en": "Alpha description.",
		"first_aid_en": ["Rest", "Hydrate"],
		"first_aid_ta": ["ஓய்வு", "நீர் அருந்தவும்"],
		"when_to_see_doctor_en": "After 3 days.",
		"when_to_see_doctor_ta": "3 நாட்களுக்குப் பிறகு."
	},
	"B": {
		"title_en": "Beta Cold",
		"description_en": "Beta description.",
		"first_aid_en": ["Steam"],
		"when_to_see_doctor_en": "If breathless."
	}
}`

var authed = model.Session{Username: "alice", Authenticated: true}

func newProcessor(t *testing.T, c classifier.Classifier) *Processor {
	t.Helper()
	kb, err := knowledge.Decode(strings.NewReader(pipelineKB))
	require.NoError(t, err)
	res := &Resources{
		Classifier:   c,
		Knowledge:    kb,
		Vocabulary:   []string{"chills", "fever"},
		Translations: symptom.TranslationMap{"fever": "காய்ச்சல்"},
	}
	clock := func() time.Time { return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC) }
	return NewProcessor(res, 3, report.NewCompiler("").WithClock(clock))
}

func TestDiagnoseRanksAndResolves(t *testing.T) {
	p := newProcessor(t, classifier.Static([]string{"C", "A", "B"}, []float64{0.1, 0.6, 0.3}))

	res, err := p.Diagnose(context.Background(), authed, Request{
		Selected: []string{"fever", "chills"},
		FreeText: "Headache",
		Language: model.English,
	})
	require.NoError(t, err)

	assert.Equal(t, "fever, chills, Headache", res.Query)
	assert.True(t, res.Primary.Found)
	assert.Equal(t, "A", res.Primary.Class)
	assert.Equal(t, "Alpha Fever", res.Primary.Title)
	assert.Equal(t, "60.0%", res.Primary.ConfidenceLabel)
	assert.Equal(t, 60, res.Primary.ConfidenceBar)
	assert.Equal(t, []string{"Rest", "Hydrate"}, res.Primary.FirstAid)

	require.Len(t, res.Differentials, 2)
	assert.Equal(t, DifferentialView{Class: "B", Found: true, Title: "Beta Cold", Confidence: res.Differentials[0].Confidence, ConfidenceLabel: "30.0%"}, res.Differentials[0])
	assert.Equal(t, "C", res.Differentials[1].Class)
	assert.False(t, res.Differentials[1].Found)
	assert.Equal(t, "C", res.Differentials[1].Title)
	assert.Equal(t, "10.0%", res.Differentials[1].ConfidenceLabel)
}

func TestDiagnoseTamil(t *testing.T) {
	p := newProcessor(t, classifier.Static([]string{"A", "B"}, []float64{0.7, 0.3}))
	res, err := p.Diagnose(context.Background(), authed, Request{Selected: []string{"fever"}, Language: model.Tamil})
	require.NoError(t, err)

	assert.Equal(t, "ஆல்ஃபா காய்ச்சல் (Alpha Fever)", res.Primary.Title)
	assert.Equal(t, []string{"ஓய்வு (Rest)", "நீர் அருந்தவும் (Hydrate)"}, res.Primary.FirstAid)
	assert.Equal(t, "Beta Cold", res.Differentials[0].Title)
}

func TestDiagnoseMissingPrimary(t *testing.T) {
	p := newProcessor(t, classifier.Static([]string{"Z", "A"}, []float64{0.9, 0.1}))
	res, err := p.Diagnose(context.Background(), authed, Request{Selected: []string{"fever"}})
	require.NoError(t, err)

	assert.False(t, res.Primary.Found)
	assert.Equal(t, "No data for Z", res.Primary.Message)
	assert.Equal(t, "90.0%", res.Primary.ConfidenceLabel)
	assert.Nil(t, res.Resolved)

	_, err = p.Report(authed, model.PatientContext{Age: 30, Gender: model.Male}, res)
	assert.ErrorIs(t, err, ErrNoReport)
}

func TestDiagnoseAllZero(t *testing.T) {
	p := newProcessor(t, classifier.Static([]string{"X", "Y", "Z", "A"}, []float64{0, 0, 0, 0}))
	res, err := p.Diagnose(context.Background(), authed, Request{Selected: []string{"fever"}})
	require.NoError(t, err)

	assert.Equal(t, "X", res.Primary.Class)
	assert.Equal(t, "0.0%", res.Primary.ConfidenceLabel)
	require.Len(t, res.Differentials, 2)
	assert.Equal(t, "Y", res.Differentials[0].Class)
	assert.Equal(t, "Z", res.Differentials[1].Class)
	assert.Equal(t, "0.0%", res.Differentials[1].ConfidenceLabel)
}

func TestDiagnoseValidation(t *testing.T) {
	called := false
	c := classifier.Func{
		ClassNames: []string{"A"},
		PredictFn: func(context.Context, string) ([]float64, error) {
			called = true
			return []float64{1}, nil
		},
	}
	p := newProcessor(t, c)

	for _, req := range []Request{
		{},
		{Selected: []string{"", ""}},
		{FreeText: " , ,"},
		{Selected: []string{" "}, FreeText: ","},
	} {
		_, err := p.Diagnose(context.Background(), authed, req)
		assert.ErrorIs(t, err, symptom.ErrEmptyQuery, "%+v", req)
	}

	_, err := p.Diagnose(context.Background(), authed, Request{})
	assert.ErrorIs(t, err, symptom.ErrEmptyQuery)

	_, err = p.Diagnose(context.Background(), model.Anonymous, Request{Selected: []string{"fever"}})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, called, "classifier must not run for rejected requests")
}

func TestDiagnoseInferenceFailure(t *testing.T) {
	boom := errors.New("model artifact missing")
	p := newProcessor(t, classifier.Func{
		ClassNames: []string{"A"},
		PredictFn:  func(context.Context, string) ([]float64, error) { return nil, boom },
	})
	res, err := p.Diagnose(context.Background(), authed, Request{Selected: []string{"fever"}})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInference)
	assert.ErrorIs(t, err, boom)

	empty := newProcessor(t, classifier.Static(nil, nil))
	_, err = empty.Diagnose(context.Background(), authed, Request{Selected: []string{"fever"}})
	assert.ErrorIs(t, err, ErrInference)
}

func TestReportIsEnglish(t *testing.T) {
	p := newProcessor(t, classifier.Static([]string{"A", "B"}, []float64{0.7, 0.3}))
	res, err := p.Diagnose(context.Background(), authed, Request{Selected: []string{"fever", "chills"}, Language: model.Tamil})
	require.NoError(t, err)

	out, err := p.Report(authed, model.PatientContext{Age: 42, Gender: model.Female}, res)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte("Predicted Condition: Alpha Fever")))
	assert.True(t, bytes.Contains(out, []byte("fever, chills")))
	assert.True(t, bytes.Contains(out, []byte("- Rest")))
	assert.True(t, bytes.Contains(out, []byte("After 3 days.")))

	_, err = p.Report(authed, model.PatientContext{Age: 0, Gender: model.Female}, res)
	assert.Error(t, err)
	_, err = p.Report(authed, model.PatientContext{Age: 20, Gender: "Unknown"}, res)
	assert.Error(t, err)
	_, err = p.Report(model.Anonymous, model.PatientContext{Age: 20, Gender: model.Male}, res)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSymptomOptions(t *testing.T) {
	p := newProcessor(t, classifier.Static([]string{"A"}, []float64{1}))
	assert.Equal(t, []symptom.Option{{Value: "chills", Label: "chills"}, {Value: "fever", Label: "fever (காய்ச்சல்)"}}, p.SymptomOptions())
}
