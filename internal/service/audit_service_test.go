package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_RecordKeepsDetailsAsJSON(t *testing.T) {
	svc, store := newTestAudit()
	id := int64(42)

	svc.Record(context.Background(), 1001, model.AuditActionDelete, "teacher", &id, map[string]string{"nickname": "Anna"})

	require.Len(t, store.events, 1)
	event := store.events[0]
	assert.Equal(t, model.AuditActionDelete, event.Action)
	assert.Equal(t, "teacher", event.Resource)
	assert.JSONEq(t, `{"nickname":"Anna"}`, string(event.Details))

	recent, err := svc.Recent(context.Background())
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestAuditService_Prune(t *testing.T) {
	svc, store := newTestAudit()
	now := time.Now()
	store.events = []*model.AuditEvent{
		{Resource: "teacher", CreatedAt: now.AddDate(0, 0, -120)},
		{Resource: "schedule", CreatedAt: now.AddDate(0, 0, -10)},
		{Resource: "group", CreatedAt: now},
	}

	removed, err := svc.Prune(context.Background(), 90)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	require.Len(t, store.events, 2)
	assert.Equal(t, "schedule", store.events[0].Resource)
}
