package model

type AttendanceStatus string

const (
	AttendanceOnTime    AttendanceStatus = "on-time"
	AttendanceLate      AttendanceStatus = "late"
	AttendanceFieldWork AttendanceStatus = "field-work"
	AttendanceAbsent    AttendanceStatus = "absent"
)

// TeacherAttendance - отметка преподавателя в дневном отчёте
type TeacherAttendance struct {
	TeacherID   int64            `json:"teacher_id"`
	TeacherName string           `json:"teacher_name"`
	Status      AttendanceStatus `json:"status"`
	CheckInTime string           `json:"check_in_time"`
	Location    string           `json:"location,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// TeacherSummary - агрегаты в недельном и месячном отчётах
type TeacherSummary struct {
	TotalTeachers int `json:"total_teachers"`
	TotalRecords  int `json:"total_records"`
	OnTime        int `json:"on_time"`
	Late          int `json:"late"`
	FieldWork     int `json:"field_work"`
	Absent        int `json:"absent"`
}

type DailyAttendancePayload struct {
	Date               string              `json:"date"`
	TeacherAttendances []TeacherAttendance `json:"teacher_attendances"`
}

type PeriodAttendancePayload struct {
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	Month          string         `json:"month,omitempty"`
	TeacherSummary TeacherSummary `json:"teacher_summary"`
}
