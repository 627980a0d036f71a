package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/models"
)

type fakeAuditRepo struct {
	inserted  []models.AuditEvent
	insertErr error
	listed    []models.AuditEventDetail
	listErr   error
}

func (f *fakeAuditRepo) Insert(ctx context.Context, event *models.AuditEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *event)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEventDetail, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

func TestAuditServiceRecordSwallowsStoreFailure(t *testing.T) {
	repo := &fakeAuditRepo{insertErr: errors.New("disk full")}
	svc := NewAuditService(repo, nil)

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), models.AuditEvent{Action: models.AuditActionLogin, TargetTable: "profiles"})
	})
}

func TestAuditServiceRecordPersistsEvent(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, nil)

	svc.Record(context.Background(), models.AuditEvent{Action: models.AuditActionJobCreate, TargetTable: "jobs"})
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, models.AuditActionJobCreate, repo.inserted[0].Action)
}

func TestAuditServiceListReturnsEmptyOnFailure(t *testing.T) {
	repo := &fakeAuditRepo{listErr: errors.New("relation missing")}
	svc := NewAuditService(repo, nil)

	events := svc.List(context.Background(), models.AuditFilter{})
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestAuditServiceListPassesThrough(t *testing.T) {
	repo := &fakeAuditRepo{listed: []models.AuditEventDetail{
		{AuditEvent: models.AuditEvent{ID: "e1", Action: models.AuditActionLogout}},
	}}
	svc := NewAuditService(repo, nil)

	events := svc.List(context.Background(), models.AuditFilter{})
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)
}
