package wizard

import (
	"testing"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func readyDraft() ScheduleDraft {
	return ScheduleDraft{
		ScheduleName:     "Adults B1 evening",
		GroupID:          ptr(5),
		DefaultTeacherID: ptr(2),
		RoomID:           ptr(9),
		StartDate:        "2024-01-01",
		TotalHours:       40,
		HoursPerSession:  2,
		SessionTimes:     []model.SessionTime{{Weekday: 1, StartTime: "09:00"}},
		SessionPerWeek:   1,
		RecurringPattern: model.RecurringWeekly,
	}
}

func TestIsPreviewReady(t *testing.T) {
	d := readyDraft()
	assert.True(t, IsRoomCheckReady(d))
	assert.True(t, IsPreviewReady(d))

	noTeacher := d
	noTeacher.DefaultTeacherID = nil
	assert.False(t, IsPreviewReady(noTeacher))

	missing := map[string]func(*ScheduleDraft){
		"schedule_name":     func(d *ScheduleDraft) { d.ScheduleName = "" },
		"group_id":          func(d *ScheduleDraft) { d.GroupID = nil },
		"start_date":        func(d *ScheduleDraft) { d.StartDate = "" },
		"total_hours":       func(d *ScheduleDraft) { d.TotalHours = 0 },
		"hours_per_session": func(d *ScheduleDraft) { d.HoursPerSession = 0 },
		"session_times":     func(d *ScheduleDraft) { d.SessionTimes = nil },
		"start_time":        func(d *ScheduleDraft) { d.SessionTimes = []model.SessionTime{{Weekday: 1}} },
		"room":              func(d *ScheduleDraft) { d.RoomID = nil },
	}
	for name, drop := range missing {
		t.Run(name, func(t *testing.T) {
			draft := readyDraft()
			drop(&draft)
			assert.False(t, IsPreviewReady(draft))
		})
	}
}

func TestIsRoomCheckReadyNeedsStartTimeInEverySlot(t *testing.T) {
	d := readyDraft()
	d.SessionTimes = []model.SessionTime{{Weekday: 1, StartTime: "09:00"}, {Weekday: 3}}
	assert.False(t, IsRoomCheckReady(d))

	d.SessionTimes[1].StartTime = "18:30"
	assert.True(t, IsRoomCheckReady(d))
}

func TestIsRoomCheckReadyIgnoresIdentityFields(t *testing.T) {
	d := readyDraft()
	d.ScheduleName = ""
	d.GroupID = nil
	d.RoomID = nil
	assert.True(t, IsRoomCheckReady(d))
	assert.False(t, IsPreviewReady(d))
}

func TestClassFlowLinearNavigation(t *testing.T) {
	f := NewClassFlow()

	assert.ErrorIs(t, f.Prev(), ErrNoPrevTab)
	require.NoError(t, f.Next())
	assert.Equal(t, TabSchedule, f.Tab)
	require.NoError(t, f.Next())
	assert.Equal(t, TabRoom, f.Tab)

	// черновик пустой, preview закрыт
	assert.ErrorIs(t, f.Next(), ErrPreviewNotReady)
	assert.Equal(t, TabRoom, f.Tab)

	f.Draft = readyDraft()
	require.NoError(t, f.Next())
	assert.Equal(t, TabPreview, f.Tab)
	assert.ErrorIs(t, f.Next(), ErrNoNextTab)

	require.NoError(t, f.Prev())
	assert.Equal(t, TabRoom, f.Tab)
}

func TestClassFlowDirectJumps(t *testing.T) {
	f := NewClassFlow()
	assert.ErrorIs(t, f.GoTo(TabPreview), ErrPreviewNotReady)
	assert.ErrorIs(t, f.GoTo(Tab("summary")), ErrIllegalTransition)

	require.NoError(t, f.GoTo(TabRoom))
	require.NoError(t, f.GoTo(TabBasic))

	f.Draft = readyDraft()
	require.NoError(t, f.GoTo(TabPreview))
}

func TestRoomConflictBlocksLeavingRoomTab(t *testing.T) {
	f := NewClassFlow()
	f.Draft = readyDraft()
	f.Tab = TabRoom
	f.Conflicts = &model.RoomConflictResult{
		HasConflict: true,
		Conflicts:   []model.RoomConflict{{RoomID: 9, SessionDate: "2024-01-08"}},
	}

	assert.True(t, f.SelectedRoomConflicts())
	assert.ErrorIs(t, f.Next(), ErrRoomConflict)
	assert.ErrorIs(t, f.GoTo(TabPreview), ErrRoomConflict)

	// выбор другой аудитории снимает блокировку, результат проверки сохраняется
	require.NoError(t, f.Dispatch(SetField{Field: FieldRoom, Value: "10"}))
	assert.NotNil(t, f.Conflicts)
	assert.False(t, f.SelectedRoomConflicts())
	require.NoError(t, f.Next())
}

func TestAutoTriggers(t *testing.T) {
	f := NewClassFlow()
	f.Draft = readyDraft()

	assert.False(t, f.NeedsRoomCheck())
	require.NoError(t, f.GoTo(TabRoom))
	assert.True(t, f.NeedsRoomCheck())

	gen := f.BeginRequest(RequestRoomCheck)
	require.True(t, f.ApplyRoomCheck(gen, &model.RoomConflictResult{}))
	assert.False(t, f.NeedsRoomCheck())

	require.NoError(t, f.GoTo(TabPreview))
	assert.True(t, f.NeedsPreview())
}

func TestStaleResponsesAreDropped(t *testing.T) {
	f := NewClassFlow()
	f.Draft = readyDraft()
	f.Tab = TabPreview

	first := f.BeginRequest(RequestPreview)
	second := f.BeginRequest(RequestPreview)

	assert.False(t, f.ApplyPreview(first, &model.SchedulePreview{CanCreate: false}))
	assert.Nil(t, f.Preview)
	assert.True(t, f.ApplyPreview(second, &model.SchedulePreview{CanCreate: true}))
	require.NoError(t, f.CanCreate())

	// изменение черновика делает ответ на старый черновик устаревшим
	third := f.BeginRequest(RequestPreview)
	require.NoError(t, f.Dispatch(SetStartDate{Date: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)}))
	assert.Nil(t, f.Preview)
	assert.False(t, f.ApplyPreview(third, &model.SchedulePreview{CanCreate: true}))
	assert.ErrorIs(t, f.CanCreate(), ErrCannotCreate)
}

func TestGenerationsOnNilMap(t *testing.T) {
	var g Generations
	assert.False(t, g.IsCurrent(RequestPreview, 1))
	g.Invalidate(RequestPreview)

	f := &ClassFlow{}
	assert.Equal(t, uint64(1), f.BeginRequest(RequestRoomCheck))
}
