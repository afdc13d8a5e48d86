package wizard

import (
	"testing"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustReduce(t *testing.T, d ScheduleDraft, a Action) ScheduleDraft {
	t.Helper()
	next, err := Reduce(d, a)
	require.NoError(t, err)
	return next
}

func TestSessionPerWeekFollowsSessionTimes(t *testing.T) {
	d := NewScheduleDraft()
	assert.Equal(t, len(d.SessionTimes), d.SessionPerWeek)

	actions := []Action{
		AddSession{Session: model.SessionTime{Weekday: 3, StartTime: "10:00"}},
		AddSession{Session: model.SessionTime{Weekday: 5, StartTime: "18:30"}},
		UpdateSession{Index: 1, Session: model.SessionTime{Weekday: 4, StartTime: "11:00"}},
		RemoveSession{Index: 0},
		RemoveSession{Index: 0},
		AddSession{Session: model.SessionTime{Weekday: 6}},
		RemoveSession{Index: 1},
		RemoveSession{Index: 0},
	}

	for i, a := range actions {
		d = mustReduce(t, d, a)
		assert.Equal(t, len(d.SessionTimes), d.SessionPerWeek, "after action %d (%T)", i, a)
	}
	assert.Empty(t, d.SessionTimes)
}

func TestReduceRejectsBadSessionWithoutChanges(t *testing.T) {
	d := NewScheduleDraft()

	_, err := Reduce(d, RemoveSession{Index: 4})
	assert.ErrorIs(t, err, ErrSessionIndex)

	_, err = Reduce(d, AddSession{Session: model.SessionTime{Weekday: 7, StartTime: "09:00"}})
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	next, err := Reduce(d, UpdateSession{Index: 0, Session: model.SessionTime{Weekday: 1, StartTime: "25:00"}})
	assert.ErrorIs(t, err, ErrInvalidTime)
	assert.Equal(t, d, next)
}

func TestSetStartDateSyncsFirstWeekdayOnly(t *testing.T) {
	d := NewScheduleDraft()
	d = mustReduce(t, d, UpdateSession{Index: 0, Session: model.SessionTime{Weekday: 1, StartTime: "09:00"}})
	d = mustReduce(t, d, AddSession{Session: model.SessionTime{Weekday: 4, StartTime: "13:00"}})
	d = mustReduce(t, d, AddSession{Session: model.SessionTime{Weekday: 6, StartTime: "15:00"}})

	// 2024-01-03 - среда
	date := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	d = mustReduce(t, d, SetStartDate{Date: date})

	assert.Equal(t, "2024-01-03", d.StartDate)
	assert.Equal(t, int(time.Wednesday), d.SessionTimes[0].Weekday)
	assert.Equal(t, "09:00", d.SessionTimes[0].StartTime)
	assert.Equal(t, model.SessionTime{Weekday: 4, StartTime: "13:00"}, d.SessionTimes[1])
	assert.Equal(t, model.SessionTime{Weekday: 6, StartTime: "15:00"}, d.SessionTimes[2])
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	d := NewScheduleDraft()
	d = mustReduce(t, d, UpdateSession{Index: 0, Session: model.SessionTime{Weekday: 2, StartTime: "08:00"}})

	_ = mustReduce(t, d, SetStartDate{Date: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)})
	_ = mustReduce(t, d, RemoveSession{Index: 0})

	require.Len(t, d.SessionTimes, 1)
	assert.Equal(t, 2, d.SessionTimes[0].Weekday)
}

func TestSelectGroupCopiesCapacityAndCourse(t *testing.T) {
	d := mustReduce(t, NewScheduleDraft(), SelectGroup{Group: model.GroupOption{ID: 5, CourseID: 11, MaxStudents: 8}})

	require.NotNil(t, d.GroupID)
	assert.Equal(t, int64(5), *d.GroupID)
	assert.Equal(t, int64(11), d.CourseID)
	assert.Equal(t, 8, d.MaxStudents)
}

func TestSetField(t *testing.T) {
	d := NewScheduleDraft()
	d = mustReduce(t, d, SetField{Field: FieldBranch, Value: "1"})
	d = mustReduce(t, d, SelectGroup{Group: model.GroupOption{ID: 5, CourseID: 2, MaxStudents: 4}})
	d = mustReduce(t, d, SetField{Field: FieldTotalHours, Value: " 40 "})
	d = mustReduce(t, d, SetField{Field: FieldRecurringPattern, Value: "bi-weekly"})

	assert.Equal(t, 40, d.TotalHours)
	assert.Equal(t, model.RecurringBiWeekly, d.RecurringPattern)

	// смена филиала сбрасывает группу
	d = mustReduce(t, d, SetField{Field: FieldBranch, Value: "2"})
	assert.Nil(t, d.GroupID)
	assert.Zero(t, d.MaxStudents)

	_, err := Reduce(d, SetField{Field: FieldTotalHours, Value: "-3"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = Reduce(d, SetField{Field: FieldRecurringPattern, Value: "hourly"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = Reduce(d, SetField{Field: "color", Value: "red"})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestResetRestoresDefaults(t *testing.T) {
	d := mustReduce(t, NewScheduleDraft(), SetField{Field: FieldScheduleName, Value: "Kids A1"})
	d = mustReduce(t, d, Reset{})
	assert.Equal(t, NewScheduleDraft(), d)
}
