package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"gramhealth-go/internal/model"
	"gramhealth-go/internal/pipeline"
	"gramhealth-go/internal/report"
	"gramhealth-go/internal/symptom"
	"gramhealth-go/pkg/log"
	"gramhealth-go/pkg/tasks"
)

// AuditPublisher receives one event per completed screening.
type AuditPublisher interface {
	Publish(ctx context.Context, event tasks.ScreeningEvent) error
}

// ReportArchive keeps a copy of a report and returns a download link for it.
type ReportArchive interface {
	Store(ctx context.Context, objectName, contentType string, data []byte) (string, error)
}

// ScreeningRequest is the patient input of a screening.
type ScreeningRequest struct {
	Age      int
	Gender   model.Gender
	Selected []string
	FreeText string
	Language model.Language
}

// ReportDocument is a compiled report ready for download.
type ReportDocument struct {
	ID       string
	Filename string
	MIMEType string
	Data     []byte
	// URL is a link to the archived copy; empty when archiving is off or failed.
	URL string
}

// ScreeningService runs screenings and builds reports.
type ScreeningService interface {
	SymptomOptions() []symptom.Option
	Screen(ctx context.Context, session model.Session, req ScreeningRequest) (*pipeline.Result, error)
	Report(ctx context.Context, session model.Session, req ScreeningRequest) (*ReportDocument, error)
}

type screeningService struct {
	processor *pipeline.Processor
	publisher AuditPublisher
	archive   ReportArchive
	filename  string
}

// NewScreeningService creates a ScreeningService. publisher and archive are optional.
func NewScreeningService(processor *pipeline.Processor, publisher AuditPublisher, archive ReportArchive, filename string) ScreeningService {
	if filename == "" {
		filename = report.Filename
	}
	return &screeningService{
		processor: processor,
		publisher: publisher,
		archive:   archive,
		filename:  filename,
	}
}

func (s *screeningService) SymptomOptions() []symptom.Option {
	return s.processor.SymptomOptions()
}

// Screen runs the pipeline and publishes an audit event. Publishing is best effort.
func (s *screeningService) Screen(ctx context.Context, session model.Session, req ScreeningRequest) (*pipeline.Result, error) {
	result, err := s.processor.Diagnose(ctx, session, pipeline.Request{
		Selected: req.Selected,
		FreeText: req.FreeText,
		Language: req.Language,
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, session, result)
	return result, nil
}

func (s *screeningService) publish(ctx context.Context, session model.Session, result *pipeline.Result) {
	if s.publisher == nil {
		return
	}
	event := tasks.ScreeningEvent{
		EventID:      uuid.NewString(),
		Username:     session.Username,
		PrimaryClass: result.Primary.Class,
		Confidence:   result.Primary.Confidence,
		Resolved:     result.Primary.Found,
		Language:     string(result.Language),
		OccurredAt:   time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warnf("[ScreeningService] audit event %s not published: %v", event.EventID, err)
	}
}

// Report re-runs the screening for req and compiles the English report.
// The pipeline is deterministic for a loaded model, so the report always
// matches the result the user was shown for the same input.
func (s *screeningService) Report(ctx context.Context, session model.Session, req ScreeningRequest) (*ReportDocument, error) {
	result, err := s.processor.Diagnose(ctx, session, pipeline.Request{
		Selected: req.Selected,
		FreeText: req.FreeText,
		Language: req.Language,
	})
	if err != nil {
		return nil, err
	}
	data, err := s.processor.Report(session, model.PatientContext{Age: req.Age, Gender: req.Gender}, result)
	if err != nil {
		return nil, err
	}

	doc := &ReportDocument{
		ID:       uuid.NewString(),
		Filename: s.filename,
		MIMEType: report.MIMEType,
		Data:     data,
	}
	if s.archive != nil {
		object := reportObjectName(session.Username, time.Now(), doc.ID)
		link, err := s.archive.Store(ctx, object, doc.MIMEType, data)
		if err != nil {
			log.Warnf("[ScreeningService] report %s not archived: %v", doc.ID, err)
		} else {
			doc.URL = link
		}
	}
	return doc, nil
}

// reportObjectName keys a report under its owner. The username is escaped so
// it always stays a single path segment.
func reportObjectName(username string, at time.Time, id string) string {
	return fmt.Sprintf("reports/%s/%s/%s.pdf", url.PathEscape(username), at.Format("2006-01-02"), id)
}
