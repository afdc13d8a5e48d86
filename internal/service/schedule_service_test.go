package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func id64(v int64) *int64 { return &v }

func newScheduleService(api *fakeAPI) (*ScheduleService, *fakeAuditStore) {
	audit, store := newTestAudit()
	return NewScheduleService(api, api, api, audit, zap.NewNop()), store
}

func TestScheduleService_GroupsMergesActiveAndFull(t *testing.T) {
	api := &fakeAPI{groups: map[model.GroupStatus][]model.Group{
		model.GroupStatusActive: {
			{ID: 1, GroupName: "A1 kids", MaxStudents: 6, Members: make([]model.GroupMember, 2)},
			{ID: 2, GroupName: "B2 adults", Course: &model.Course{Name: "Business English"}},
		},
		model.GroupStatusFull: {
			{ID: 3, GroupName: "IELTS", MaxStudents: 4, Members: make([]model.GroupMember, 4)},
			{ID: 1, GroupName: "A1 kids"},
		},
	}}
	svc, _ := newScheduleService(api)

	options, err := svc.Groups(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, options, 3)

	assert.Equal(t, int64(1), options[0].ID)
	assert.Equal(t, 2, options[0].CurrentStudents)
	assert.Equal(t, "Business English", options[1].CourseName)
	assert.Equal(t, int64(3), options[2].ID)
	assert.Equal(t, 4, options[2].CurrentStudents)
}

func TestScheduleService_GroupsFailsWhenOneListFails(t *testing.T) {
	api := &fakeAPI{groupsErr: errAPI}
	svc, _ := newScheduleService(api)

	_, err := svc.Groups(context.Background(), 1)
	assert.ErrorIs(t, err, errAPI)
}

func TestScheduleService_CreateClass(t *testing.T) {
	api := &fakeAPI{}
	svc, store := newScheduleService(api)

	flow := wizard.NewClassFlow()
	flow.Draft = wizard.ScheduleDraft{
		ScheduleName:     "Adults B1 evening",
		GroupID:          id64(5),
		DefaultTeacherID: id64(2),
		RoomID:           id64(9),
		StartDate:        "2024-01-01",
		TotalHours:       40,
		HoursPerSession:  2,
		SessionTimes: []model.SessionTime{
			{Weekday: 1, StartTime: "09:00"},
			{Weekday: 3, StartTime: "18:00"},
		},
		SessionPerWeek:   2,
		RecurringPattern: model.RecurringWeekly,
	}

	_, err := svc.CreateClass(context.Background(), 100, flow)
	assert.ErrorIs(t, err, wizard.ErrCannotCreate)
	assert.Nil(t, api.lastCreate)

	flow.Preview = &model.SchedulePreview{CanCreate: true, EstimatedEndDate: "2024-03-27"}
	schedule, err := svc.CreateClass(context.Background(), 100, flow)
	require.NoError(t, err)
	assert.Equal(t, int64(77), schedule.ID)

	require.NotNil(t, api.lastCreate)
	assert.Equal(t, "2024-03-27T00:00:00Z", api.lastCreate.EstimatedEndDate)
	assert.Equal(t, model.RecurringCustom, api.lastCreate.RecurringPattern)
	assert.Equal(t, 2, api.lastCreate.SessionPerWeek)
	assert.Empty(t, api.lastCreate.SessionStartTime)
	assert.Nil(t, api.lastCreate.TimeSlots)

	require.Len(t, store.events, 1)
	assert.Equal(t, model.AuditActionCreate, store.events[0].Action)
	assert.Equal(t, "schedule", store.events[0].Resource)
	assert.Equal(t, int64(77), *store.events[0].ResourceID)
}

func TestScheduleService_CreateFailureIsNotAudited(t *testing.T) {
	api := &fakeAPI{createErr: errAPI}
	svc, store := newScheduleService(api)

	draft := wizard.NewEventFlow(model.ScheduleTypeHoliday).Draft
	draft.ScheduleName = "Songkran"
	draft.StartDate = "2024-04-13"
	draft.TimeSlots = []model.TimeSlot{{DayOfWeek: "saturday", StartTime: "00:00", EndTime: "23:59"}}

	_, err := svc.CreateEvent(context.Background(), 100, draft)
	assert.ErrorIs(t, err, errAPI)
	assert.Empty(t, store.events)
}

func TestScheduleService_CheckConflictsNeedsStartDate(t *testing.T) {
	api := &fakeAPI{conflicts: &model.RoomConflictResult{}}
	svc, _ := newScheduleService(api)

	_, err := svc.CheckConflicts(context.Background(), wizard.NewScheduleDraft())
	assert.ErrorIs(t, err, wizard.ErrMissingStartDate)
}
