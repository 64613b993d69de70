package service

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
	"gramhealth-go/internal/pipeline"
	"gramhealth-go/internal/report"
	"gramhealth-go/internal/symptom"
	"gramhealth-go/pkg/tasks"
)

const screeningKB = `{
	"Malaria": {
		"title_en": "Malaria",
		"title_ta": "மலேரியா",
		"description_en": "Mosquito-borne fever.",
		"first_aid_en": ["Rest", "Drink fluids"],
		"when_to_see_doctor_en": "Immediately if fever persists."
	}
}`

type recordingPublisher struct {
	events []tasks.ScreeningEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev tasks.ScreeningEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

type recordingArchive struct {
	objects map[string][]byte
	err     error
}

func (a *recordingArchive) Store(_ context.Context, objectName, _ string, data []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	if a.objects == nil {
		a.objects = map[string][]byte{}
	}
	a.objects[objectName] = data
	return "https://archive.local/" + objectName, nil
}

func newTestProcessor(t *testing.T, classes []string, probs []float64) *pipeline.Processor {
	t.Helper()
	kb, err := knowledge.Decode(strings.NewReader(screeningKB))
	require.NoError(t, err)
	return pipeline.NewProcessor(&pipeline.Resources{
		Classifier:   classifier.Static(classes, probs),
		Knowledge:    kb,
		Vocabulary:   []string{"chills", "fever"},
		Translations: symptom.TranslationMap{"fever": "காய்ச்சல்"},
	}, 3, nil)
}

var alice = model.Session{Username: "alice", Authenticated: true}

func TestScreenPublishesAuditEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewScreeningService(newTestProcessor(t, []string{"Malaria", "Flu"}, []float64{0.8, 0.2}), pub, nil, "")

	res, err := svc.Screen(context.Background(), alice, ScreeningRequest{
		Selected: []string{"fever"},
		Language: model.Tamil,
	})
	require.NoError(t, err)
	assert.Equal(t, "மலேரியா (Malaria)", res.Primary.Title)

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "alice", ev.Username)
	assert.Equal(t, "Malaria", ev.PrimaryClass)
	assert.True(t, ev.Resolved)
	assert.Equal(t, "ta", ev.Language)
}

func TestScreenIgnoresPublishFailure(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewScreeningService(newTestProcessor(t, []string{"Malaria"}, []float64{1}), pub, nil, "")

	_, err := svc.Screen(context.Background(), alice, ScreeningRequest{Selected: []string{"fever"}, Language: model.English})
	assert.NoError(t, err)
}

func TestScreenRequiresSession(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewScreeningService(newTestProcessor(t, []string{"Malaria"}, []float64{1}), pub, nil, "")

	_, err := svc.Screen(context.Background(), model.Anonymous, ScreeningRequest{Selected: []string{"fever"}})
	assert.ErrorIs(t, err, pipeline.ErrNotAuthenticated)
	assert.Empty(t, pub.events)
}

func TestReportArchivesDocument(t *testing.T) {
	archive := &recordingArchive{}
	svc := NewScreeningService(newTestProcessor(t, []string{"Malaria"}, []float64{1}), nil, archive, "")

	doc, err := svc.Report(context.Background(), alice, ScreeningRequest{
		Age:      34,
		Gender:   model.Female,
		Selected: []string{"fever", "chills"},
		Language: model.Tamil,
	})
	require.NoError(t, err)
	assert.Equal(t, report.Filename, doc.Filename)
	assert.Equal(t, report.MIMEType, doc.MIMEType)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
	assert.True(t, strings.HasPrefix(doc.URL, "https://archive.local/reports/alice/"))
	require.Len(t, archive.objects, 1)
}

func TestReportSurvivesArchiveFailure(t *testing.T) {
	archive := &recordingArchive{err: errors.New("bucket missing")}
	svc := NewScreeningService(newTestProcessor(t, []string{"Malaria"}, []float64{1}), nil, archive, "Custom.pdf")

	doc, err := svc.Report(context.Background(), alice, ScreeningRequest{Age: 20, Gender: model.Male, Selected: []string{"fever"}})
	require.NoError(t, err)
	assert.Equal(t, "Custom.pdf", doc.Filename)
	assert.Empty(t, doc.URL)
	assert.NotEmpty(t, doc.Data)
}

func TestReportWithoutKnowledgeEntry(t *testing.T) {
	svc := NewScreeningService(newTestProcessor(t, []string{"Unknown", "Malaria"}, []float64{0.9, 0.1}), nil, nil, "")

	_, err := svc.Report(context.Background(), alice, ScreeningRequest{Age: 20, Gender: model.Male, Selected: []string{"fever"}})
	assert.ErrorIs(t, err, pipeline.ErrNoReport)
}

func TestReportObjectNameKeepsUserInOwnPrefix(t *testing.T) {
	archive := &recordingArchive{}
	svc := NewScreeningService(newTestProcessor(t, []string{"Malaria"}, []float64{1}), nil, archive, "")
	eve := model.Session{Username: "eve/../alice", Authenticated: true}

	_, err := svc.Report(context.Background(), eve, ScreeningRequest{Age: 30, Gender: model.Female, Selected: []string{"fever"}})
	require.NoError(t, err)

	require.Len(t, archive.objects, 1)
	for name := range archive.objects {
		assert.True(t, strings.HasPrefix(name, "reports/eve%2F..%2Falice/"), name)
		assert.Len(t, strings.Split(name, "/"), 4, name)
	}
}

func TestReportObjectName(t *testing.T) {
	at := time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "reports/meena/2026-01-02/id1.pdf", reportObjectName("meena", at, "id1"))
	assert.Equal(t, "reports/a%2Fb/2026-01-02/id1.pdf", reportObjectName("a/b", at, "id1"))
}
