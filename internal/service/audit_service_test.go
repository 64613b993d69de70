package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gramhealth-go/internal/model"
	"gramhealth-go/pkg/tasks"
)

type fakeAuditRepo struct {
	byEvent map[string]model.ScreeningAudit
	err     error
}

func (r *fakeAuditRepo) Create(a *model.ScreeningAudit) error {
	if r.err != nil {
		return r.err
	}
	if r.byEvent == nil {
		r.byEvent = map[string]model.ScreeningAudit{}
	}
	if _, ok := r.byEvent[a.EventID]; !ok {
		r.byEvent[a.EventID] = *a
	}
	return nil
}

func TestAuditServiceHandle(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo)
	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	ev := tasks.ScreeningEvent{EventID: "e1", Username: "alice", PrimaryClass: "Malaria", Confidence: 80, Resolved: true, Language: "en", OccurredAt: at}

	require.NoError(t, svc.Handle(context.Background(), ev))
	require.NoError(t, svc.Handle(context.Background(), ev))

	assert.Len(t, repo.byEvent, 1)
	assert.Equal(t, model.LocalTime(at), repo.byEvent["e1"].OccurredAt)
}

func TestAuditServiceDropsEventWithoutID(t *testing.T) {
	repo := &fakeAuditRepo{}
	require.NoError(t, NewAuditService(repo).Handle(context.Background(), tasks.ScreeningEvent{Username: "alice"}))
	assert.Empty(t, repo.byEvent)
}

func TestAuditServiceSurfacesStoreFailure(t *testing.T) {
	repo := &fakeAuditRepo{err: errors.New("db down")}
	err := NewAuditService(repo).Handle(context.Background(), tasks.ScreeningEvent{EventID: "e2"})
	assert.ErrorContains(t, err, "db down")
}
