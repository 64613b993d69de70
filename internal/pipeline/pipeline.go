// Package pipeline runs the diagnostic flow: normalize the symptoms, classify,
// rank the shortlist, resolve it against the knowledge base and compile the report.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"gramhealth-go/internal/classifier"
	"gramhealth-go/internal/knowledge"
	"gramhealth-go/internal/model"
	"gramhealth-go/internal/ranking"
	"gramhealth-go/internal/report"
	"gramhealth-go/internal/symptom"
	"gramhealth-go/pkg/log"
)

var (
	// ErrNotAuthenticated is returned for requests without an authenticated session.
	ErrNotAuthenticated = errors.New("authentication required")
	// ErrInference wraps every classifier failure.
	ErrInference = errors.New("inference failed")
	// ErrNoReport is returned when the primary diagnosis has no knowledge-base entry.
	ErrNoReport = errors.New("no knowledge base data for the primary diagnosis")
)

// Request is one screening submission.
type Request struct {
	Selected []string
	FreeText string
	Language model.Language
}

// PrimaryView is the top diagnosis as displayed. When Found is false only Class,
// Message and the confidence fields are set.
type PrimaryView struct {
	Class           string   `json:"class"`
	Found           bool     `json:"found"`
	Message         string   `json:"message,omitempty"`
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	FirstAid        []string `json:"firstAid,omitempty"`
	WhenToSeeDoctor string   `json:"whenToSeeDoctor,omitempty"`
	Confidence      float64  `json:"confidence"`
	ConfidenceLabel string   `json:"confidenceLabel"`
	ConfidenceBar   int      `json:"confidenceBar"`
}

// DifferentialView is a lower-ranked diagnosis. Title is the raw class name
// when Found is false.
type DifferentialView struct {
	Class           string  `json:"class"`
	Found           bool    `json:"found"`
	Title           string  `json:"title"`
	Confidence      float64 `json:"confidence"`
	ConfidenceLabel string  `json:"confidenceLabel"`
}

// Result is the outcome of Diagnose.
type Result struct {
	Query         string             `json:"query"`
	Language      model.Language     `json:"language"`
	Primary       PrimaryView        `json:"primary"`
	Differentials []DifferentialView `json:"differentials"`

	Ranked   ranking.Ranked      `json:"-"`
	Resolved *knowledge.Resolved `json:"-"`
}

// Processor runs the pipeline against shared Resources.
type Processor struct {
	res      *Resources
	topK     int
	compiler *report.Compiler
}

// NewProcessor creates a Processor. topK <= 0 selects ranking.DefaultK.
func NewProcessor(res *Resources, topK int, compiler *report.Compiler) *Processor {
	if topK <= 0 {
		topK = ranking.DefaultK
	}
	if compiler == nil {
		compiler = report.NewCompiler(report.DefaultTitle)
	}
	return &Processor{res: res, topK: topK, compiler: compiler}
}

// SymptomOptions returns the vocabulary as "token (translation)" labels, in
// every display language, so users can search either script. Values are the
// English tokens the classifier expects.
func (p *Processor) SymptomOptions() []symptom.Option {
	return p.res.Translations.DisplayOptions(p.res.Vocabulary)
}

// Diagnose runs one request through the pipeline. It fails only for an
// unauthenticated session, an empty query or a classifier failure; missing
// knowledge-base entries are reported inside the Result.
func (p *Processor) Diagnose(ctx context.Context, session model.Session, req Request) (*Result, error) {
	if !session.Authenticated {
		return nil, ErrNotAuthenticated
	}

	query := symptom.ComposeQuery(req.Selected, req.FreeText)
	if err := symptom.ValidateQuery(query); err != nil {
		return nil, err
	}
	log.Infof("[Pipeline] step 1: query composed for %s (%d selected symptoms)", session.Username, len(req.Selected))

	vector, err := classifier.Vector(ctx, p.res.Classifier, query)
	if err != nil {
		log.Errorf("[Pipeline] step 2: classifier failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}

	ranked := ranking.TopK(vector, p.topK)
	top, ok := ranked.Primary()
	if !ok {
		return nil, fmt.Errorf("%w: classifier returned no classes", ErrInference)
	}
	log.Infof("[Pipeline] step 3: primary %q at %s, %d differentials", top.Class, top.Label(), len(ranked.Differentials()))

	result := &Result{
		Query:    query,
		Language: req.Language,
		Ranked:   ranked,
		Primary: PrimaryView{
			Class:           top.Class,
			Confidence:      top.Percent,
			ConfidenceLabel: top.Label(),
			ConfidenceBar:   top.Bar(),
		},
		Differentials: make([]DifferentialView, 0, len(ranked.Differentials())),
	}

	resolved, err := p.res.Knowledge.Resolve(top.Class, req.Language)
	switch {
	case err == nil:
		result.Resolved = &resolved
		result.Primary.Found = true
		result.Primary.Title = resolved.Title
		result.Primary.Description = resolved.Description
		result.Primary.FirstAid = resolved.FirstAid
		result.Primary.WhenToSeeDoctor = resolved.WhenToSeeDoctor
	case errors.Is(err, knowledge.ErrNotFound):
		log.Warnf("[Pipeline] step 4: no knowledge base entry for primary %q", top.Class)
		result.Primary.Message = "No data for " + top.Class
	default:
		return nil, err
	}

	for _, e := range ranked.Differentials() {
		title, found := p.res.Knowledge.DisplayTitle(e.Class, req.Language)
		result.Differentials = append(result.Differentials, DifferentialView{
			Class:           e.Class,
			Found:           found,
			Title:           title,
			Confidence:      e.Percent,
			ConfidenceLabel: e.Label(),
		})
	}
	return result, nil
}

// Report compiles the English report for a Diagnose result.
func (p *Processor) Report(session model.Session, patient model.PatientContext, result *Result) ([]byte, error) {
	if !session.Authenticated {
		return nil, ErrNotAuthenticated
	}
	if result == nil || result.Resolved == nil {
		return nil, ErrNoReport
	}
	patient.Query = result.Query
	if err := patient.Validate(); err != nil {
		return nil, err
	}

	r := result.Resolved
	out, err := p.compiler.Compile(report.Input{
		Title:           r.TitleEN,
		Symptoms:        patient.Query,
		FirstAid:        r.FirstAidEN,
		WhenToSeeDoctor: r.WhenToSeeDoctorEN,
		Age:             patient.Age,
		Gender:          string(patient.Gender),
	})
	if err != nil {
		return nil, err
	}
	log.Infof("[Pipeline] step 5: report compiled for %s (%d bytes)", session.Username, len(out))
	return out, nil
}
