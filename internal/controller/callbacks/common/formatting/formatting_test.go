package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatNumbers(t *testing.T) {
	assert.Equal(t, "12,500", FormatNumber(12500))
	assert.Equal(t, "not set", FormatHourlyRate(nil))

	rate := 1500
	assert.Equal(t, "฿1,500 / hour", FormatHourlyRate(&rate))
	assert.Equal(t, "75%", FormatPercent(0.75))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 session", PluralizeSessions(1))
	assert.Equal(t, "0 sessions", PluralizeSessions(0))
	assert.Equal(t, "1,200 students", PluralizeStudents(1200))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mon, 15 Jan 2024", FormatDate("2024-01-15"))
	assert.Equal(t, "Mon, 15 Jan 2024", FormatDate("2024-01-15T00:00:00Z"))
	assert.Equal(t, "soon", FormatDate("soon"))
	assert.Equal(t, "not set", FormatDate(""))
}

func TestFormatSlots(t *testing.T) {
	assert.Equal(t, "Mon 09:00", FormatSessionTime(model.SessionTime{Weekday: 1, StartTime: "09:00"}))
	assert.Equal(t, "Sun --:--", FormatSessionTime(model.SessionTime{}))
	assert.Equal(t, "Friday 09:00-10:30",
		FormatTimeSlot(model.TimeSlot{DayOfWeek: "friday", StartTime: "09:00", EndTime: "10:30"}))
}

func TestFormatConflicts(t *testing.T) {
	assert.Contains(t, FormatConflicts(nil), "not checked")
	assert.Contains(t, FormatConflicts(&model.RoomConflictResult{}), "No room conflicts")

	res := &model.RoomConflictResult{
		HasConflict: true,
		Conflicts: []model.RoomConflict{
			{RoomID: 1, RoomName: "A<1>", SessionDate: "2024-01-15", StartTime: "09:00", EndTime: "10:00", ScheduleName: "IELTS"},
		},
	}
	out := FormatConflicts(res)
	assert.Contains(t, out, "1 conflict")
	assert.Contains(t, out, "A&lt;1&gt;")
}

func TestFormatPreview(t *testing.T) {
	p := &model.SchedulePreview{
		CanCreate:        false,
		EstimatedEndDate: "2024-03-25",
		Sessions: []model.PreviewSession{
			{Date: "2024-01-01", StartTime: "09:00", EndTime: "11:00"},
		},
		HolidayImpacts: []model.HolidayImpact{{OriginalDate: "2024-01-01", ShiftedDate: "2024-01-08", HolidayName: "New Year"}},
		Issues: []model.PreviewIssue{
			{Severity: model.IssueSeverityError, Message: "payment missing"},
		},
	}
	out := FormatPreview(p)
	assert.Contains(t, out, "Cannot be created")
	assert.Contains(t, out, "1 session")
	assert.Contains(t, out, "New Year")
	assert.Contains(t, out, "⛔ payment missing")
}

func TestFormatStatCards(t *testing.T) {
	report := attendance.DailyReport{DailyAttendancePayload: model.DailyAttendancePayload{
		Date: "2024-01-15",
		TeacherAttendances: []model.TeacherAttendance{
			{TeacherName: "Anna", Status: model.AttendanceOnTime},
			{TeacherName: "Ben", Status: model.AttendanceLate},
			{TeacherName: "Chai", Status: model.AttendanceFieldWork},
			{TeacherName: "Dao", Status: model.AttendanceOnTime},
		},
	}}

	out := FormatStatCards(report, attendance.CalculateStats(report))
	assert.Contains(t, out, "Daily attendance")
	assert.Contains(t, out, "Total: <b>4</b>")
	assert.Contains(t, out, "On time: <b>2</b> (50%)")

	rows := FormatDailyRecords(report, 2)
	assert.Contains(t, rows, "Anna")
	assert.Contains(t, rows, "and 2 more")
	assert.NotContains(t, rows, "Chai")
}

func TestFormatAuditEvent(t *testing.T) {
	id := int64(7)
	e := &model.AuditEvent{
		TelegramID: 42,
		Action:     model.AuditActionDelete,
		Resource:   "teacher",
		ResourceID: &id,
		CreatedAt:  time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC),
	}
	loc := time.FixedZone("ICT", 7*3600)
	assert.Equal(t, "🗑 delete teacher #7 · by 42 · 15 Jan 2024 10:00", FormatAuditEvent(e, loc))
	assert.Contains(t, FormatAuditEvents(nil, loc), "No actions")
}

func TestFormatTeacherInfo(t *testing.T) {
	rate := 800
	teacher := &model.Teacher{
		FirstNameEn:     "Anna",
		LastNameEn:      "Smith",
		NicknameEn:      "Ann",
		TeacherType:     model.TeacherTypeAdults,
		HourlyRate:      &rate,
		Specializations: "IELTS, Business English",
		Active:          true,
		User:            &model.TeacherUser{Email: "anna@example.com"},
	}
	out := FormatTeacherInfo(teacher)
	assert.Contains(t, out, "Anna Smith (Ann)")
	assert.Contains(t, out, "฿800 / hour")
	assert.Contains(t, out, "IELTS, Business English")
	assert.Contains(t, out, "anna@example.com")
}
