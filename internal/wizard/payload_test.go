package wizard

import (
	"encoding/json"
	"testing"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00Z", got)

	got, err = NormalizeDate("2024-03-10T17:45:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10T00:00:00Z", got)

	got, err = NormalizeDate("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizeDate("01/02/2024")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestBuildPreviewRequestForcesCustomPattern(t *testing.T) {
	d := readyDraft()
	d.SessionStartTime = "08:00"
	d.SessionTimes = append(d.SessionTimes, model.SessionTime{Weekday: 3, StartTime: "09:00"})
	d.SessionPerWeek = 1 // устаревшее значение пересчитывается

	req, err := BuildPreviewRequest(d)
	require.NoError(t, err)

	assert.Equal(t, model.RecurringCustom, req.RecurringPattern)
	assert.Equal(t, 2, req.SessionPerWeek)
	assert.Equal(t, "2024-01-01T00:00:00Z", req.StartDate)
	assert.Empty(t, req.SessionStartTime)
	assert.Equal(t, model.ScheduleTypeClass, req.ScheduleType)
	assert.Equal(t, int64(9), *req.DefaultRoomID)
}

func TestBuildPreviewRequestKeepsPatternForSingleSession(t *testing.T) {
	d := readyDraft()
	d.RecurringPattern = model.RecurringBiWeekly

	req, err := BuildPreviewRequest(d)
	require.NoError(t, err)
	assert.Equal(t, model.RecurringBiWeekly, req.RecurringPattern)
	assert.Equal(t, 1, req.SessionPerWeek)
}

func TestBuildCreateRequestUsesPreviewEndDate(t *testing.T) {
	preview := &model.SchedulePreview{CanCreate: true, EstimatedEndDate: "2024-03-18"}

	req, err := BuildCreateRequest(readyDraft(), preview)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-18T00:00:00Z", req.EstimatedEndDate)

	_, err = BuildCreateRequest(ScheduleDraft{}, preview)
	assert.ErrorIs(t, err, ErrMissingStartDate)
}

func TestSessionExclusivity(t *testing.T) {
	t.Run("session times strip legacy fields", func(t *testing.T) {
		d := readyDraft()
		d.SessionStartTime = "10:00"
		d.TimeSlots = []model.TimeSlot{{DayOfWeek: "monday", StartTime: "10:00", EndTime: "11:00"}}

		req, err := BuildCreateRequest(d, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, req.SessionTimes)
		assert.Empty(t, req.SessionStartTime)
		assert.Nil(t, req.TimeSlots)

		raw, err := json.Marshal(req)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "session_start_time")
		assert.NotContains(t, string(raw), "time_slots")
		assert.Contains(t, string(raw), "session_times")
	})

	t.Run("no session times strips the field", func(t *testing.T) {
		d := readyDraft()
		d.SessionTimes = []model.SessionTime{}
		d.SessionStartTime = "10:00"

		req, err := BuildCreateRequest(d, nil)
		require.NoError(t, err)
		assert.Nil(t, req.SessionTimes)
		assert.Equal(t, "10:00", req.SessionStartTime)

		raw, err := json.Marshal(req)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "session_times")
	})
}

func TestBuildRoomCheckRequest(t *testing.T) {
	req, err := BuildRoomCheckRequest(readyDraft())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00Z", req.StartDate)
	assert.Equal(t, int64(9), *req.RoomID)
	assert.Equal(t, 1, req.SessionPerWeek)

	_, err = BuildRoomCheckRequest(NewScheduleDraft())
	assert.ErrorIs(t, err, ErrMissingStartDate)
}
