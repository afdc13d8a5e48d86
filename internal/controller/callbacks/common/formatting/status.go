package formatting

import (
	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// StatusDisplay представляет отображение статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

// GetGroupStatusDisplay возвращает emoji и текст для статуса группы
func GetGroupStatusDisplay(status model.GroupStatus) StatusDisplay {
	displays := map[model.GroupStatus]StatusDisplay{
		model.GroupStatusActive:      {"🟢", "Active"},
		model.GroupStatusFull:        {"🔵", "Full"},
		model.GroupStatusInactive:    {"⚫️", "Inactive"},
		model.GroupStatusSuspended:   {"⏸", "Suspended"},
		model.GroupStatusNeedFeeling: {"🟡", "Needs students"},
		model.GroupStatusEmpty:       {"⚪️", "Empty"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Unknown"}
}

// GetRoomStatusDisplay возвращает emoji и текст для статуса аудитории
func GetRoomStatusDisplay(status model.RoomStatus) StatusDisplay {
	displays := map[model.RoomStatus]StatusDisplay{
		model.RoomStatusAvailable:   {"🟢", "Available"},
		model.RoomStatusOccupied:    {"🔴", "Occupied"},
		model.RoomStatusMaintenance: {"🛠", "Maintenance"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Unknown"}
}

// GetAttendanceStatusDisplay возвращает emoji и текст для отметки посещаемости
func GetAttendanceStatusDisplay(status model.AttendanceStatus) StatusDisplay {
	displays := map[model.AttendanceStatus]StatusDisplay{
		model.AttendanceOnTime:    {"✅", "On time"},
		model.AttendanceLate:      {"⏰", "Late"},
		model.AttendanceFieldWork: {"🚗", "Field work"},
		model.AttendanceAbsent:    {"❌", "Absent"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", string(status)}
}

// GetActiveDisplay - статус преподавателя
func GetActiveDisplay(active bool) StatusDisplay {
	if active {
		return StatusDisplay{"✅", "Active"}
	}
	return StatusDisplay{"⏸", "Inactive"}
}

// GetScheduleTypeDisplay - тип расписания для кнопок выбора
func GetScheduleTypeDisplay(t model.ScheduleType) StatusDisplay {
	displays := map[model.ScheduleType]StatusDisplay{
		model.ScheduleTypeClass:       {"🎓", "Class"},
		model.ScheduleTypeMeeting:     {"🤝", "Meeting"},
		model.ScheduleTypeAppointment: {"📌", "Appointment"},
		model.ScheduleTypeEvent:       {"🎉", "Event"},
		model.ScheduleTypePersonal:    {"👤", "Personal"},
		model.ScheduleTypeHoliday:     {"🏖", "Holiday"},
	}

	if display, ok := displays[t]; ok {
		return display
	}

	return StatusDisplay{"📅", string(t)}
}

// PatternLabel - подпись повторения расписания
func PatternLabel(p model.RecurringPattern) string {
	labels := map[model.RecurringPattern]string{
		model.RecurringDaily:    "Daily",
		model.RecurringWeekly:   "Weekly",
		model.RecurringBiWeekly: "Every 2 weeks",
		model.RecurringMonthly:  "Monthly",
		model.RecurringYearly:   "Yearly",
		model.RecurringCustom:   "Custom days",
		model.RecurringNone:     "Does not repeat",
	}
	if label, ok := labels[p]; ok {
		return label
	}
	return string(p)
}

// PaymentStatusLabel - подпись статуса оплаты группы
func PaymentStatusLabel(p model.PaymentStatus) string {
	switch p {
	case model.PaymentStatusPending:
		return "Pending"
	case model.PaymentStatusDepositPaid:
		return "Deposit paid"
	case model.PaymentStatusFullyPaid:
		return "Fully paid"
	default:
		return string(p)
	}
}
