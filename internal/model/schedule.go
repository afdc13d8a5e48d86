package model

import "time"

type ScheduleType string

const (
	ScheduleTypeClass       ScheduleType = "class"
	ScheduleTypeMeeting     ScheduleType = "meeting"
	ScheduleTypeAppointment ScheduleType = "appointment"
	ScheduleTypeEvent       ScheduleType = "event"
	ScheduleTypePersonal    ScheduleType = "personal"
	ScheduleTypeHoliday     ScheduleType = "holiday"
)

// EventTypes - типы, доступные на шаге выбора события
var EventTypes = []ScheduleType{
	ScheduleTypeMeeting,
	ScheduleTypeAppointment,
	ScheduleTypeEvent,
	ScheduleTypePersonal,
	ScheduleTypeHoliday,
}

// IsEventType проверяет, что тип относится к событиям, а не к классу
func IsEventType(t ScheduleType) bool {
	for _, et := range EventTypes {
		if et == t {
			return true
		}
	}
	return false
}

type RecurringPattern string

const (
	RecurringDaily    RecurringPattern = "daily"
	RecurringWeekly   RecurringPattern = "weekly"
	RecurringBiWeekly RecurringPattern = "bi-weekly"
	RecurringMonthly  RecurringPattern = "monthly"
	RecurringYearly   RecurringPattern = "yearly"
	RecurringCustom   RecurringPattern = "custom"
	RecurringNone     RecurringPattern = "none"
)

// SessionTime - еженедельный слот: день недели (0 = воскресенье) и время начала
type SessionTime struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
}

// TimeSlot - произвольный слот события
type TimeSlot struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CreateScheduleRequest - тело POST /schedules и /schedules/preview
type CreateScheduleRequest struct {
	ScheduleName          string           `json:"schedule_name"`
	ScheduleType          ScheduleType     `json:"schedule_type"`
	GroupID               *int64           `json:"group_id,omitempty"`
	ParticipantUserIDs    []int64          `json:"participant_user_ids,omitempty"`
	RecurringPattern      RecurringPattern `json:"recurring_pattern"`
	TotalHours            int              `json:"total_hours,omitempty"`
	HoursPerSession       int              `json:"hours_per_session,omitempty"`
	SessionPerWeek        int              `json:"session_per_week,omitempty"`
	MaxStudents           int              `json:"max_students,omitempty"`
	StartDate             string           `json:"start_date"`
	EstimatedEndDate      string           `json:"estimated_end_date,omitempty"`
	DefaultTeacherID      *int64           `json:"default_teacher_id,omitempty"`
	DefaultRoomID         *int64           `json:"default_room_id,omitempty"`
	BranchID              *int64           `json:"branch_id,omitempty"`
	AutoRescheduleHoliday bool             `json:"auto_reschedule"`
	Notes                 string           `json:"notes,omitempty"`
	SessionStartTime      string           `json:"session_start_time,omitempty"`
	CustomRecurringDays   []int            `json:"custom_recurring_days,omitempty"`
	SessionTimes          []SessionTime    `json:"session_times,omitempty"`
	TimeSlots             []TimeSlot       `json:"time_slots,omitempty"`
}

type Schedule struct {
	ID               int64            `json:"id"`
	ScheduleName     string           `json:"schedule_name"`
	ScheduleType     ScheduleType     `json:"schedule_type"`
	GroupID          *int64           `json:"group_id,omitempty"`
	RecurringPattern RecurringPattern `json:"recurring_pattern"`
	TotalHours       int              `json:"total_hours"`
	StartDate        time.Time        `json:"start_date"`
	EstimatedEndDate time.Time        `json:"estimated_end_date"`
	Status           string           `json:"status"`
}

// RoomConflictRequest - параметры проверки конфликтов аудиторий
type RoomConflictRequest struct {
	RoomID           *int64           `json:"room_id,omitempty"`
	BranchID         *int64           `json:"branch_id,omitempty"`
	RecurringPattern RecurringPattern `json:"recurring_pattern"`
	TotalHours       int              `json:"total_hours"`
	HoursPerSession  int              `json:"hours_per_session"`
	SessionPerWeek   int              `json:"session_per_week"`
	StartDate        string           `json:"start_date"`
	SessionTimes     []SessionTime    `json:"session_times"`
}

// RoomConflict - одно пересечение с уже существующей сессией
type RoomConflict struct {
	RoomID       int64  `json:"room_id"`
	RoomName     string `json:"room_name"`
	SessionDate  string `json:"session_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	ScheduleName string `json:"schedule_name"`
}

type RoomConflictResult struct {
	HasConflict bool           `json:"has_conflict"`
	Conflicts   []RoomConflict `json:"conflicts"`
}

// ConflictingRooms возвращает id аудиторий, у которых есть пересечения
func (r *RoomConflictResult) ConflictingRooms() map[int64]bool {
	rooms := make(map[int64]bool)
	if r == nil {
		return rooms
	}
	for _, c := range r.Conflicts {
		rooms[c.RoomID] = true
	}
	return rooms
}
