package reports

import (
	"testing"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buttons(screen common.Screen) map[string]string {
	out := make(map[string]string)
	for _, row := range screen.Keyboard.InlineKeyboard {
		for _, btn := range row {
			out[btn.CallbackData] = btn.Text
		}
	}
	return out
}

func TestShiftDate(t *testing.T) {
	tests := []struct {
		name string
		kind attendance.Kind
		date string
		dir  int
		want string
	}{
		{"day forward", attendance.KindDaily, "2024-02-28", 1, "2024-02-29"},
		{"day back over month", attendance.KindDaily, "2024-03-01", -1, "2024-02-29"},
		{"week forward", attendance.KindWeekly, "2024-12-30", 1, "2025-01-06"},
		{"month back", attendance.KindMonthly, "2024-03-15", -1, "2024-02-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShiftDate(tt.kind, tt.date, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ShiftDate(attendance.KindDaily, "15/03/2024", 1)
	assert.ErrorIs(t, err, common.ErrInvalidFormat)
}

func TestSetupScreen(t *testing.T) {
	screen := SetupScreen(state.AttendanceView{Kind: attendance.KindWeekly, Date: "2024-03-15"})
	btns := buttons(screen)

	assert.Contains(t, screen.Text, "Weekly")
	assert.Contains(t, screen.Text, "Fri, 15 Mar 2024")
	assert.Equal(t, "• Weekly •", btns[Kind+"weekly"])
	assert.Equal(t, "Daily", btns[Kind+"daily"])
	assert.Equal(t, "◀️ Week", btns[Shift+"-1"])
	assert.Contains(t, btns, Load)
}

func TestReportScreenListsDailyRecords(t *testing.T) {
	report := attendance.DailyReport{DailyAttendancePayload: model.DailyAttendancePayload{
		Date: "2024-03-15",
		TeacherAttendances: []model.TeacherAttendance{
			{TeacherName: "Anna", Status: model.AttendanceOnTime, CheckInTime: "08:55"},
			{TeacherName: "Tom", Status: model.AttendanceLate, CheckInTime: "09:20"},
		},
	}}
	res := &service.ReportResult{Report: report, Stats: attendance.CalculateStats(report)}

	screen := ReportScreen(res)
	btns := buttons(screen)

	assert.Contains(t, screen.Text, "Daily attendance")
	assert.Contains(t, screen.Text, "Anna · 08:55")
	assert.Contains(t, screen.Text, "Tom · 09:20")
	assert.Contains(t, btns, Export+"json")
	assert.Contains(t, btns, Export+"xlsx")
	assert.Contains(t, btns, Show)
}

func TestReportScreenPeriodHasNoRecords(t *testing.T) {
	report := attendance.WeeklyReport{PeriodAttendancePayload: model.PeriodAttendancePayload{
		StartDate: "2024-03-11",
		EndDate:   "2024-03-17",
	}}
	res := &service.ReportResult{Report: report, Stats: attendance.CalculateStats(report)}

	screen := ReportScreen(res)
	assert.Contains(t, screen.Text, "2024-03-11 - 2024-03-17")
	assert.NotContains(t, screen.Text, "No check-ins recorded")
}

func TestWithDateHint(t *testing.T) {
	screen := withDateHint(SetupScreen(state.AttendanceView{Kind: attendance.KindDaily, Date: "2024-03-15"}))
	assert.Equal(t, StopInput, screen.Keyboard.InlineKeyboard[0][0].CallbackData)
	assert.Contains(t, screen.Text, "YYYY-MM-DD")
}

func TestIsInputState(t *testing.T) {
	assert.True(t, IsInputState(state.StateAttendanceDate))
	assert.False(t, IsInputState(state.StateTeacherSearch))
}
