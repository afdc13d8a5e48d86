package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// DateLayout - формат дат, который вводит администратор
const DateLayout = "2006-01-02"

var (
	ErrUnknownField   = errors.New("unknown draft field")
	ErrInvalidValue   = errors.New("invalid field value")
	ErrSessionIndex   = errors.New("session index out of range")
	ErrInvalidTime    = errors.New("time must be HH:MM")
	ErrInvalidWeekday = errors.New("weekday must be within 0..6")
	ErrUnknownAction  = errors.New("unknown draft action")
)

// ScheduleDraft - незавершённая форма создания расписания класса
type ScheduleDraft struct {
	ScheduleName     string                 `json:"schedule_name"`
	BranchID         *int64                 `json:"branch_id,omitempty"`
	GroupID          *int64                 `json:"group_id,omitempty"`
	CourseID         int64                  `json:"course_id"`
	MaxStudents      int                    `json:"max_students"`
	DefaultTeacherID *int64                 `json:"default_teacher_id,omitempty"`
	RoomID           *int64                 `json:"room_id,omitempty"`
	RecurringPattern model.RecurringPattern `json:"recurring_pattern"`
	TotalHours       int                    `json:"total_hours"`
	HoursPerSession  int                    `json:"hours_per_session"`
	SessionPerWeek   int                    `json:"session_per_week"`
	StartDate        string                 `json:"start_date"`
	AutoReschedule   bool                   `json:"auto_reschedule"`
	Notes            string                 `json:"notes"`
	SessionTimes     []model.SessionTime    `json:"session_times"`
	SessionStartTime string                 `json:"session_start_time,omitempty"`
	TimeSlots        []model.TimeSlot       `json:"time_slots,omitempty"`
}

// NewScheduleDraft возвращает черновик со значениями по умолчанию
func NewScheduleDraft() ScheduleDraft {
	return ScheduleDraft{
		RecurringPattern: model.RecurringWeekly,
		HoursPerSession:  1,
		AutoReschedule:   true,
		SessionTimes:     []model.SessionTime{{Weekday: int(time.Monday)}},
		SessionPerWeek:   1,
	}
}

// Field - поле черновика, которое можно выставить через SetField
type Field string

const (
	FieldScheduleName     Field = "schedule_name"
	FieldBranch           Field = "branch_id"
	FieldTeacher          Field = "default_teacher_id"
	FieldRoom             Field = "room_id"
	FieldRecurringPattern Field = "recurring_pattern"
	FieldTotalHours       Field = "total_hours"
	FieldHoursPerSession  Field = "hours_per_session"
	FieldAutoReschedule   Field = "auto_reschedule"
	FieldNotes            Field = "notes"
)

// Action - изменение черновика. Реализации перечислены ниже.
type Action interface {
	isAction()
}

type SetField struct {
	Field Field
	Value string
}

type SetStartDate struct {
	Date time.Time
}

type AddSession struct {
	Session model.SessionTime
}

type RemoveSession struct {
	Index int
}

type UpdateSession struct {
	Index   int
	Session model.SessionTime
}

type SelectGroup struct {
	Group model.GroupOption
}

type Reset struct{}

func (SetField) isAction()      {}
func (SetStartDate) isAction()  {}
func (AddSession) isAction()    {}
func (RemoveSession) isAction() {}
func (UpdateSession) isAction() {}
func (SelectGroup) isAction()   {}
func (Reset) isAction()         {}

// Reduce применяет действие к копии черновика.
// После любого действия session_per_week == len(session_times).
func Reduce(d ScheduleDraft, a Action) (ScheduleDraft, error) {
	next := d.clone()

	switch act := a.(type) {
	case SetField:
		if err := next.setField(act.Field, act.Value); err != nil {
			return d, err
		}

	case SetStartDate:
		next.StartDate = act.Date.Format(DateLayout)
		if len(next.SessionTimes) > 0 {
			next.SessionTimes[0].Weekday = int(act.Date.Weekday())
		}

	case AddSession:
		if err := validateSession(act.Session); err != nil {
			return d, err
		}
		next.SessionTimes = append(next.SessionTimes, act.Session)

	case RemoveSession:
		if act.Index < 0 || act.Index >= len(next.SessionTimes) {
			return d, ErrSessionIndex
		}
		next.SessionTimes = append(next.SessionTimes[:act.Index], next.SessionTimes[act.Index+1:]...)

	case UpdateSession:
		if act.Index < 0 || act.Index >= len(next.SessionTimes) {
			return d, ErrSessionIndex
		}
		if err := validateSession(act.Session); err != nil {
			return d, err
		}
		next.SessionTimes[act.Index] = act.Session

	case SelectGroup:
		id := act.Group.ID
		next.GroupID = &id
		next.MaxStudents = act.Group.MaxStudents
		next.CourseID = act.Group.CourseID

	case Reset:
		next = NewScheduleDraft()

	default:
		return d, fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}

	next.SessionPerWeek = len(next.SessionTimes)
	return next, nil
}

func (d ScheduleDraft) clone() ScheduleDraft {
	c := d
	if d.SessionTimes != nil {
		c.SessionTimes = append([]model.SessionTime(nil), d.SessionTimes...)
	}
	if d.TimeSlots != nil {
		c.TimeSlots = append([]model.TimeSlot(nil), d.TimeSlots...)
	}
	return c
}

func (d *ScheduleDraft) setField(field Field, raw string) error {
	value := strings.TrimSpace(raw)

	switch field {
	case FieldScheduleName:
		d.ScheduleName = value
	case FieldNotes:
		d.Notes = value
	case FieldBranch:
		id, err := parseOptionalID(value)
		if err != nil {
			return err
		}
		// смена филиала сбрасывает выбор группы и аудитории
		if !sameID(d.BranchID, id) {
			d.GroupID = nil
			d.RoomID = nil
			d.CourseID = 0
			d.MaxStudents = 0
		}
		d.BranchID = id
	case FieldTeacher:
		id, err := parseOptionalID(value)
		if err != nil {
			return err
		}
		d.DefaultTeacherID = id
	case FieldRoom:
		id, err := parseOptionalID(value)
		if err != nil {
			return err
		}
		d.RoomID = id
	case FieldRecurringPattern:
		switch p := model.RecurringPattern(value); p {
		case model.RecurringDaily, model.RecurringWeekly, model.RecurringBiWeekly,
			model.RecurringMonthly, model.RecurringYearly, model.RecurringCustom:
			d.RecurringPattern = p
		default:
			return fmt.Errorf("%w: recurring pattern %q", ErrInvalidValue, value)
		}
	case FieldTotalHours:
		n, err := parsePositive(value)
		if err != nil {
			return err
		}
		d.TotalHours = n
	case FieldHoursPerSession:
		n, err := parsePositive(value)
		if err != nil {
			return err
		}
		d.HoursPerSession = n
	case FieldAutoReschedule:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidValue, value)
		}
		d.AutoReschedule = b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

func parseOptionalID(value string) (*int64, error) {
	if value == "" || value == "0" {
		return nil, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 0 {
		return nil, fmt.Errorf("%w: id %q", ErrInvalidValue, value)
	}
	return &id, nil
}

func parsePositive(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: expected positive number, got %q", ErrInvalidValue, value)
	}
	return n, nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func validateSession(s model.SessionTime) error {
	if s.Weekday < 0 || s.Weekday > 6 {
		return ErrInvalidWeekday
	}
	if s.StartTime != "" && !ValidClock(s.StartTime) {
		return ErrInvalidTime
	}
	return nil
}

// ValidClock проверяет строку формата HH:MM
func ValidClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidValue, s)
	}
	return t, nil
}
