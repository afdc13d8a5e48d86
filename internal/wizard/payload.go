package wizard

import (
	"errors"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

var ErrMissingStartDate = errors.New("start date is required")

// NormalizeDate приводит дату к ISO-8601 на полночь UTC
func NormalizeDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return toUTCMidnight(t), nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return toUTCMidnight(t), nil
}

func toUTCMidnight(t time.Time) string {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
}

// BuildRoomCheckRequest собирает параметры проверки конфликтов
func BuildRoomCheckRequest(d ScheduleDraft) (model.RoomConflictRequest, error) {
	start, err := NormalizeDate(d.StartDate)
	if err != nil {
		return model.RoomConflictRequest{}, err
	}
	if start == "" {
		return model.RoomConflictRequest{}, ErrMissingStartDate
	}

	return model.RoomConflictRequest{
		RoomID:           d.RoomID,
		BranchID:         d.BranchID,
		RecurringPattern: effectivePattern(d),
		TotalHours:       d.TotalHours,
		HoursPerSession:  d.HoursPerSession,
		SessionPerWeek:   len(d.SessionTimes),
		StartDate:        start,
		SessionTimes:     append([]model.SessionTime(nil), d.SessionTimes...),
	}, nil
}

// BuildPreviewRequest собирает тело запроса preview: session_per_week пересчитан,
// при нескольких временах шаблон принудительно custom, старые одиночные поля удалены
func BuildPreviewRequest(d ScheduleDraft) (model.CreateScheduleRequest, error) {
	start, err := NormalizeDate(d.StartDate)
	if err != nil {
		return model.CreateScheduleRequest{}, err
	}
	if start == "" {
		return model.CreateScheduleRequest{}, ErrMissingStartDate
	}

	req := model.CreateScheduleRequest{
		ScheduleName:          d.ScheduleName,
		ScheduleType:          model.ScheduleTypeClass,
		GroupID:               d.GroupID,
		RecurringPattern:      effectivePattern(d),
		TotalHours:            d.TotalHours,
		HoursPerSession:       d.HoursPerSession,
		SessionPerWeek:        len(d.SessionTimes),
		MaxStudents:           d.MaxStudents,
		StartDate:             start,
		DefaultTeacherID:      d.DefaultTeacherID,
		DefaultRoomID:         d.RoomID,
		BranchID:              d.BranchID,
		AutoRescheduleHoliday: d.AutoReschedule,
		Notes:                 d.Notes,
		SessionTimes:          append([]model.SessionTime(nil), d.SessionTimes...),
	}
	if len(d.SessionTimes) == 0 {
		req.SessionStartTime = d.SessionStartTime
		req.TimeSlots = append([]model.TimeSlot(nil), d.TimeSlots...)
	}

	EnforceSessionExclusivity(&req)
	return req, nil
}

// BuildCreateRequest - итоговое тело POST /schedules.
// estimated_end_date берётся из рассчитанного сервером preview.
func BuildCreateRequest(d ScheduleDraft, preview *model.SchedulePreview) (model.CreateScheduleRequest, error) {
	req, err := BuildPreviewRequest(d)
	if err != nil {
		return req, err
	}
	if preview != nil && preview.EstimatedEndDate != "" {
		end, err := NormalizeDate(preview.EstimatedEndDate)
		if err != nil {
			return req, err
		}
		req.EstimatedEndDate = end
	}

	EnforceSessionExclusivity(&req)
	return req, nil
}

// EnforceSessionExclusivity: непустой session_times убирает session_start_time и time_slots,
// пустой session_times удаляется целиком
func EnforceSessionExclusivity(req *model.CreateScheduleRequest) {
	if len(req.SessionTimes) > 0 {
		req.SessionStartTime = ""
		req.TimeSlots = nil
		return
	}
	req.SessionTimes = nil
	if len(req.TimeSlots) == 0 {
		req.TimeSlots = nil
	}
}

func effectivePattern(d ScheduleDraft) model.RecurringPattern {
	if len(d.SessionTimes) > 1 {
		return model.RecurringCustom
	}
	if d.RecurringPattern == "" {
		return model.RecurringWeekly
	}
	return d.RecurringPattern
}
