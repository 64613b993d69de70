package service

import (
	"context"
	"fmt"

	"gramhealth-go/internal/model"
	"gramhealth-go/internal/repository"
	"gramhealth-go/pkg/log"
	"gramhealth-go/pkg/tasks"
)

// AuditService stores screening events consumed from Kafka.
type AuditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates an AuditService.
func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Handle persists one event. Redelivered events are stored once.
func (s *AuditService) Handle(_ context.Context, event tasks.ScreeningEvent) error {
	if event.EventID == "" {
		log.Warnf("[AuditService] dropping event without id for user %q", event.Username)
		return nil
	}
	audit := &model.ScreeningAudit{
		EventID:      event.EventID,
		Username:     event.Username,
		PrimaryClass: event.PrimaryClass,
		Confidence:   event.Confidence,
		Resolved:     event.Resolved,
		Language:     event.Language,
		OccurredAt:   model.LocalTime(event.OccurredAt),
	}
	if err := s.repo.Create(audit); err != nil {
		return fmt.Errorf("store audit %s: %w", event.EventID, err)
	}
	log.Infow("[AuditService] screening recorded", "eventId", event.EventID, "username", event.Username, "class", event.PrimaryClass)
	return nil
}
