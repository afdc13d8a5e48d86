package schedule

import (
	"testing"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/config"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(t *testing.T) wizard.RoomPolicy {
	t.Helper()
	bands, err := config.ParseCapacityBands(config.DefaultCapacityBands)
	require.NoError(t, err)
	return wizard.RoomPolicy{OnlineBranchID: 3, Bands: bands}
}

func ptr(v int64) *int64 { return &v }

// buttons возвращает callback data -> текст кнопки
func buttons(screen common.Screen) map[string]string {
	out := make(map[string]string)
	if screen.Keyboard == nil {
		return out
	}
	for _, row := range screen.Keyboard.InlineKeyboard {
		for _, btn := range row {
			out[btn.CallbackData] = btn.Text
		}
	}
	return out
}

func classSession(t *testing.T) *state.Session {
	t.Helper()
	w := wizard.NewWrapper()
	require.NoError(t, w.SelectClass())
	return &state.Session{Wizard: &w, Class: wizard.NewClassFlow()}
}

func readyClassSession(t *testing.T) *state.Session {
	t.Helper()
	s := classSession(t)
	s.Class.Draft.ScheduleName = "Kids B1"
	s.Class.Draft.BranchID = ptr(1)
	s.Class.Draft.GroupID = ptr(5)
	s.Class.Draft.MaxStudents = 6
	s.Class.Draft.DefaultTeacherID = ptr(2)
	s.Class.Draft.StartDate = "2024-01-01"
	s.Class.Draft.TotalHours = 40
	s.Class.Draft.HoursPerSession = 2
	s.Class.Draft.SessionTimes = []model.SessionTime{{Weekday: 1, StartTime: "09:00"}}
	s.Class.Draft.RoomID = ptr(11)
	return s
}

func TestRenderTypeSelection(t *testing.T) {
	w := wizard.NewWrapper()
	screen := Render(&state.Session{Wizard: &w}, testPolicy(t))

	btns := buttons(screen)
	assert.Contains(t, btns, PickClass)
	assert.Contains(t, btns, PickEvent)
	assert.Contains(t, btns, Close)
}

func TestRenderEventTypeSelectionListsAllTypes(t *testing.T) {
	w := wizard.NewWrapper()
	require.NoError(t, w.SelectEvents())
	screen := Render(&state.Session{Wizard: &w}, testPolicy(t))

	btns := buttons(screen)
	for _, et := range model.EventTypes {
		assert.Contains(t, btns, EventType+string(et))
	}
	assert.Contains(t, btns, Back)
}

func TestRenderWithoutWizardIsExpired(t *testing.T) {
	screen := Render(&state.Session{}, testPolicy(t))
	assert.Equal(t, ExpiredScreen().Text, screen.Text)
}

func TestRenderClassBasicShowsMissingFields(t *testing.T) {
	s := classSession(t)
	screen := Render(s, testPolicy(t))

	assert.Contains(t, screen.Text, "Still needed: name, group, teacher, start date, total hours, session times, room")
	btns := buttons(screen)
	assert.Contains(t, btns, ClassNext)
	assert.NotContains(t, btns, ClassPrev)
	// без филиала нельзя выбрать группу
	assert.NotContains(t, btns, ClassGroups+"0")
}

func TestRenderClassBasicUsesLookupNames(t *testing.T) {
	s := readyClassSession(t)
	s.Lookups.Branches = []model.Branch{{ID: 1, NameEn: "Sukhumvit"}}
	s.Lookups.Groups = []model.GroupOption{{ID: 5, GroupName: "B1 <evening>"}}

	screen := Render(s, testPolicy(t))
	assert.Contains(t, screen.Text, "Sukhumvit")
	assert.Contains(t, screen.Text, "B1 &lt;evening&gt;")
	// преподавателя нет в справочнике
	assert.Contains(t, screen.Text, "#2")
	assert.Contains(t, screen.Text, "Ready for preview")
}

func TestRenderRoomTabMarksRooms(t *testing.T) {
	s := readyClassSession(t)
	s.Class.Tab = wizard.TabRoom
	s.Class.Draft.RoomID = ptr(12)
	s.Lookups.Rooms = []model.Room{
		{ID: 11, BranchID: 1, RoomName: "Room 6", Capacity: 6},
		{ID: 12, BranchID: 1, RoomName: "Hall", Capacity: 30},
		{ID: 13, BranchID: 1, RoomName: "Room 8", Capacity: 6},
	}
	s.Class.Conflicts = &model.RoomConflictResult{
		HasConflict: true,
		Conflicts:   []model.RoomConflict{{RoomID: 12, RoomName: "Hall", SessionDate: "2024-01-01"}},
	}

	screen := Render(s, testPolicy(t))
	btns := buttons(screen)

	assert.Equal(t, "⭐ Room 6 (6)", btns[ClassRoom+"11"])
	assert.Equal(t, "✅ Hall (30)", btns[ClassRoom+"12"])
	assert.Contains(t, screen.Text, "The selected room is busy")
	assert.Contains(t, btns, ClassCheck)
}

func TestRenderPreviewTabCreateButtonFollowsServer(t *testing.T) {
	s := readyClassSession(t)
	s.Class.Tab = wizard.TabPreview
	s.Class.Preview = &model.SchedulePreview{
		CanCreate: false,
		Sessions:  []model.PreviewSession{{SessionNumber: 1, Date: "2024-01-01", StartTime: "09:00", EndTime: "11:00"}},
	}

	btns := buttons(Render(s, testPolicy(t)))
	assert.NotContains(t, btns, ClassCreate)
	assert.Contains(t, btns, ClassImage+"0")

	s.Class.Preview.CanCreate = true
	btns = buttons(Render(s, testPolicy(t)))
	assert.Contains(t, btns, ClassCreate)
}

func TestRenderGroupFormShowsSelectedStudents(t *testing.T) {
	s := classSession(t)
	s.Group = wizard.NewGroupForm()
	s.Group.ToggleStudent(model.Student{ID: 7, FirstName: "Anna", LastName: "Lee"})
	s.Lookups.Students = []model.Student{{ID: 8, FirstName: "Tom"}}

	screen := Render(s, testPolicy(t))
	btns := buttons(screen)

	assert.Contains(t, screen.Text, "Students (1)")
	assert.Equal(t, "✅ Anna Lee", btns[GroupToggle+"7"])
	assert.Equal(t, "⬜ Tom", btns[GroupToggle+"8"])
	assert.Contains(t, btns, GroupSave)
}

func TestRenderEventHidesAlreadyAddedParticipants(t *testing.T) {
	w := wizard.NewWrapper()
	require.NoError(t, w.SelectEvents())
	require.NoError(t, w.SelectEventType(model.ScheduleTypeMeeting))

	flow := wizard.NewEventFlow(model.ScheduleTypeMeeting)
	flow.Draft.AddParticipant(model.User{ID: 1, Username: "anna"})
	flow.Search = "an"
	flow.Found = []model.User{{ID: 1, Username: "anna"}, {ID: 2, Username: "andrew"}}

	screen := Render(&state.Session{Wizard: &w, Event: flow}, testPolicy(t))
	btns := buttons(screen)

	assert.NotContains(t, btns, EventParticipant+"1")
	assert.Contains(t, btns, EventParticipant+"2")
	assert.Contains(t, btns, EventParticipantX+"1")
	assert.Contains(t, screen.Text, "Participants (required): 1")
}

func TestInputHintAddsStopButton(t *testing.T) {
	s := classSession(t)
	s.SetState(state.StateSessionTime, map[string]string{"index": "0"})

	screen := Render(s, testPolicy(t))
	assert.Contains(t, screen.Text, "start time for session 1")
	assert.Equal(t, StopInput, screen.Keyboard.InlineKeyboard[0][0].CallbackData)
}

func TestApplyInputClassStartDateSyncsFirstWeekday(t *testing.T) {
	s := classSession(t)
	s.SetState(state.StateClassField, map[string]string{"field": fieldStartDate})

	require.NoError(t, ApplyInput(s, "2024-01-03"))
	assert.Equal(t, "2024-01-03", s.Class.Draft.StartDate)
	assert.Equal(t, int(time.Wednesday), s.Class.Draft.SessionTimes[0].Weekday)
}

func TestApplyInputSessionTimePadsClock(t *testing.T) {
	s := classSession(t)
	s.SetState(state.StateSessionTime, map[string]string{"index": "0"})

	require.NoError(t, ApplyInput(s, "9:30"))
	assert.Equal(t, "09:30", s.Class.Draft.SessionTimes[0].StartTime)

	assert.ErrorIs(t, ApplyInput(s, "25:00"), wizard.ErrInvalidTime)
}

func TestApplyInputEventDates(t *testing.T) {
	s := &state.Session{Event: wizard.NewEventFlow(model.ScheduleTypeEvent)}

	s.SetState(state.StateEventField, map[string]string{"field": fieldStartDate})
	require.NoError(t, ApplyInput(s, "2024-03-10"))

	s.SetState(state.StateEventField, map[string]string{"field": fieldEndDate})
	assert.ErrorIs(t, ApplyInput(s, "2024-03-01"), wizard.ErrInvalidValue)
	require.NoError(t, ApplyInput(s, "2024-03-12"))
	assert.Equal(t, "2024-03-12", s.Event.Draft.EndDate)
}

func TestApplyInputEventSlot(t *testing.T) {
	s := &state.Session{Event: wizard.NewEventFlow(model.ScheduleTypeEvent)}
	s.SetState(state.StateEventSlot, nil)

	require.NoError(t, ApplyInput(s, "fri 9:00-10:30"))
	require.Len(t, s.Event.Draft.TimeSlots, 1)
	assert.Equal(t, "friday", s.Event.Draft.TimeSlots[0].DayOfWeek)

	assert.ErrorIs(t, ApplyInput(s, "someday"), wizard.ErrInvalidTimeSlot)
}

func TestApplyInputGroupMaxStudents(t *testing.T) {
	s := classSession(t)
	s.Group = wizard.NewGroupForm()
	s.SetState(state.StateGroupField, map[string]string{"field": fieldMaxStudents})

	assert.ErrorIs(t, ApplyInput(s, "zero"), wizard.ErrInvalidValue)
	require.NoError(t, ApplyInput(s, "8"))
	assert.Equal(t, 8, s.Group.MaxStudents)
}

func TestApplyInputWithoutFormIsExpired(t *testing.T) {
	s := &state.Session{}
	s.SetState(state.StateClassField, map[string]string{"field": "notes"})
	assert.ErrorIs(t, ApplyInput(s, "x"), common.ErrSessionExpired)
}

func TestPickerScreenPagination(t *testing.T) {
	items := make([]common.PickerItem, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, common.PickerItem{Label: "item", Data: ClassBranch + string(rune('a'+i))})
	}

	first := buttons(common.PickerScreen("t", items, 0, ClassBranches, ClassTab+"basic"))
	assert.Contains(t, first, ClassBranches+"1")
	assert.NotContains(t, first, ClassBranch+"i")

	last := buttons(common.PickerScreen("t", items, 5, ClassBranches, ClassTab+"basic"))
	assert.Contains(t, last, ClassBranch+"i")
	assert.Contains(t, last, ClassBranches+"0")
}
