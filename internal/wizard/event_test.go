package wizard

import (
	"testing"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSlot(t *testing.T) {
	slot, err := ParseTimeSlot("Mon 9:00-10:30")
	require.NoError(t, err)
	assert.Equal(t, model.TimeSlot{DayOfWeek: "monday", StartTime: "09:00", EndTime: "10:30"}, slot)

	slot, err = ParseTimeSlot("saturday 13:00-15:00")
	require.NoError(t, err)
	assert.Equal(t, "saturday", slot.DayOfWeek)

	for _, raw := range []string{"mo 09:00-10:00", "mon 10:00-09:00", "mon 09:00", "xyz 09:00-10:00", "mon 9-10"} {
		_, err := ParseTimeSlot(raw)
		assert.Error(t, err, raw)
	}
}

func TestParticipantsAreDeduplicated(t *testing.T) {
	d := EventDraft{ScheduleType: model.ScheduleTypeMeeting}
	assert.True(t, d.AddParticipant(model.User{ID: 7, Username: "ann"}))
	assert.False(t, d.AddParticipant(model.User{ID: 7, Username: "ann"}))
	assert.True(t, d.AddParticipant(model.User{ID: 8, Username: "bob"}))
	assert.Equal(t, []int64{7, 8}, d.ParticipantIDs)

	d.RemoveParticipant(7)
	assert.Equal(t, []int64{8}, d.ParticipantIDs)
	assert.NotContains(t, d.Participants, int64(7))
}

func TestIsEventReady(t *testing.T) {
	d := EventDraft{
		ScheduleName: "Staff meeting",
		ScheduleType: model.ScheduleTypeMeeting,
		StartDate:    "2024-05-02",
		TimeSlots:    []model.TimeSlot{{DayOfWeek: "thursday", StartTime: "16:00", EndTime: "17:00"}},
	}
	assert.False(t, IsEventReady(d))

	d.ParticipantIDs = []int64{3}
	assert.True(t, IsEventReady(d))

	holiday := d
	holiday.ScheduleType = model.ScheduleTypeHoliday
	holiday.ParticipantIDs = nil
	assert.True(t, IsEventReady(holiday))
}

func TestBuildEventRequestStripsEmptyOptionals(t *testing.T) {
	zero := int64(0)
	d := EventDraft{
		ScheduleName:   " Songkran ",
		ScheduleType:   model.ScheduleTypeHoliday,
		StartDate:      "2024-04-13",
		EndDate:        "2024-04-15",
		RoomID:         &zero,
		ParticipantIDs: []int64{},
		TimeSlots:      []model.TimeSlot{{DayOfWeek: "saturday", StartTime: "00:00", EndTime: "23:59"}},
	}

	req, err := BuildEventRequest(d)
	require.NoError(t, err)
	assert.Equal(t, "Songkran", req.ScheduleName)
	assert.Nil(t, req.DefaultRoomID)
	assert.Nil(t, req.ParticipantUserIDs)
	assert.Nil(t, req.GroupID)
	assert.Equal(t, model.RecurringNone, req.RecurringPattern)
	assert.Equal(t, "2024-04-15T00:00:00Z", req.EstimatedEndDate)
	assert.Len(t, req.TimeSlots, 1)
	assert.Nil(t, req.SessionTimes)
}

func TestEventFlowNavigationAndSearch(t *testing.T) {
	f := NewEventFlow(model.ScheduleTypeAppointment)
	require.NoError(t, f.Next())
	assert.ErrorIs(t, f.Next(), ErrEventNotReady)

	first := f.BeginSearch("an")
	second := f.BeginSearch("ann")
	assert.False(t, f.ApplySearch(first, []model.User{{ID: 1}}))
	assert.True(t, f.ApplySearch(second, []model.User{{ID: 2}}))
	assert.Equal(t, "ann", f.Search)
	require.Len(t, f.Found, 1)

	require.NoError(t, f.Prev())
	assert.Equal(t, TabBasic, f.Tab)
}
