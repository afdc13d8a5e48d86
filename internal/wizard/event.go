package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// EventTabs - вкладки формы события, проверки аудитории нет
var EventTabs = []Tab{TabBasic, TabSchedule, TabPreview}

var (
	ErrEventNotReady   = errors.New("event is not ready for preview")
	ErrInvalidTimeSlot = errors.New("time slot must look like \"mon 09:00-10:30\"")
	ErrSlotIndex       = errors.New("time slot index out of range")
)

// Weekdays - названия дней, которые ожидает API, индекс совпадает с time.Weekday
var Weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// EventDraft - незавершённая форма события
type EventDraft struct {
	ScheduleName     string                 `json:"schedule_name"`
	ScheduleType     model.ScheduleType     `json:"schedule_type"`
	BranchID         *int64                 `json:"branch_id,omitempty"`
	RoomID           *int64                 `json:"room_id,omitempty"`
	OrganizerID      *int64                 `json:"organizer_id,omitempty"`
	ParticipantIDs   []int64                `json:"participant_ids,omitempty"`
	Participants     map[int64]string       `json:"participants,omitempty"`
	RecurringPattern model.RecurringPattern `json:"recurring_pattern"`
	StartDate        string                 `json:"start_date"`
	EndDate          string                 `json:"end_date,omitempty"`
	TimeSlots        []model.TimeSlot       `json:"time_slots,omitempty"`
	Notes            string                 `json:"notes"`
}

// EventFlow - состояние формы события
type EventFlow struct {
	Tab      Tab          `json:"tab"`
	Draft    EventDraft   `json:"draft"`
	Search   string       `json:"search,omitempty"`
	Found    []model.User `json:"found,omitempty"`
	Requests Generations  `json:"requests"`
}

// NewEventFlow открывает форму события указанного типа
func NewEventFlow(t model.ScheduleType) *EventFlow {
	return &EventFlow{
		Tab: TabBasic,
		Draft: EventDraft{
			ScheduleType:     t,
			RecurringPattern: model.RecurringNone,
		},
		Requests: Generations{},
	}
}

// ParticipantsRequired - для личных дел и праздников участники не нужны
func (d EventDraft) ParticipantsRequired() bool {
	return d.ScheduleType != model.ScheduleTypePersonal && d.ScheduleType != model.ScheduleTypeHoliday
}

// IsEventReady: название, дата начала, хотя бы один слот и участники, если они нужны
func IsEventReady(d EventDraft) bool {
	if strings.TrimSpace(d.ScheduleName) == "" || d.StartDate == "" || len(d.TimeSlots) == 0 {
		return false
	}
	if d.ParticipantsRequired() && len(d.ParticipantIDs) == 0 {
		return false
	}
	return true
}

// AddParticipant добавляет участника, повторный id игнорируется
func (d *EventDraft) AddParticipant(u model.User) bool {
	for _, id := range d.ParticipantIDs {
		if id == u.ID {
			return false
		}
	}
	d.ParticipantIDs = append(d.ParticipantIDs, u.ID)
	if d.Participants == nil {
		d.Participants = make(map[int64]string)
	}
	d.Participants[u.ID] = u.Username
	return true
}

// RemoveParticipant убирает участника из списка
func (d *EventDraft) RemoveParticipant(id int64) {
	out := d.ParticipantIDs[:0]
	for _, pid := range d.ParticipantIDs {
		if pid != id {
			out = append(out, pid)
		}
	}
	d.ParticipantIDs = out
	delete(d.Participants, id)
}

// AddTimeSlot добавляет слот после проверки времени
func (d *EventDraft) AddTimeSlot(slot model.TimeSlot) error {
	if err := validateTimeSlot(slot); err != nil {
		return err
	}
	d.TimeSlots = append(d.TimeSlots, slot)
	return nil
}

// RemoveTimeSlot удаляет слот по индексу
func (d *EventDraft) RemoveTimeSlot(idx int) error {
	if idx < 0 || idx >= len(d.TimeSlots) {
		return ErrSlotIndex
	}
	d.TimeSlots = append(d.TimeSlots[:idx], d.TimeSlots[idx+1:]...)
	return nil
}

// ParseTimeSlot разбирает ввод вида "mon 09:00-10:30" или "Monday 9:00-10:30"
func ParseTimeSlot(raw string) (model.TimeSlot, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) != 2 {
		return model.TimeSlot{}, ErrInvalidTimeSlot
	}

	day := matchWeekday(fields[0])
	if day == "" {
		return model.TimeSlot{}, ErrInvalidTimeSlot
	}

	bounds := strings.SplitN(fields[1], "-", 2)
	if len(bounds) != 2 {
		return model.TimeSlot{}, ErrInvalidTimeSlot
	}

	slot := model.TimeSlot{
		DayOfWeek: day,
		StartTime: padClock(bounds[0]),
		EndTime:   padClock(bounds[1]),
	}
	if err := validateTimeSlot(slot); err != nil {
		return model.TimeSlot{}, err
	}
	return slot, nil
}

func validateTimeSlot(slot model.TimeSlot) error {
	if matchWeekday(slot.DayOfWeek) == "" {
		return ErrInvalidTimeSlot
	}
	if !ValidClock(slot.StartTime) || !ValidClock(slot.EndTime) {
		return ErrInvalidTime
	}
	if slot.StartTime >= slot.EndTime {
		return fmt.Errorf("%w: end must be after start", ErrInvalidTimeSlot)
	}
	return nil
}

func matchWeekday(s string) string {
	if len(s) < 3 {
		return ""
	}
	for _, day := range Weekdays {
		if strings.HasPrefix(day, s) {
			return day
		}
	}
	return ""
}

// padClock превращает "9:00" в "09:00"
func padClock(s string) string {
	if len(s) == 4 && s[1] == ':' {
		return "0" + s
	}
	return s
}

// BuildEventRequest собирает тело POST /schedules для события.
// Пустые необязательные списки и id не отправляются.
func BuildEventRequest(d EventDraft) (model.CreateScheduleRequest, error) {
	if !IsEventReady(d) {
		return model.CreateScheduleRequest{}, ErrEventNotReady
	}

	start, err := NormalizeDate(d.StartDate)
	if err != nil {
		return model.CreateScheduleRequest{}, err
	}
	end, err := NormalizeDate(d.EndDate)
	if err != nil {
		return model.CreateScheduleRequest{}, err
	}
	if end == "" {
		end = start
	}

	req := model.CreateScheduleRequest{
		ScheduleName:     strings.TrimSpace(d.ScheduleName),
		ScheduleType:     d.ScheduleType,
		RecurringPattern: d.RecurringPattern,
		StartDate:        start,
		EstimatedEndDate: end,
		DefaultTeacherID: nonZero(d.OrganizerID),
		DefaultRoomID:    nonZero(d.RoomID),
		BranchID:         nonZero(d.BranchID),
		Notes:            strings.TrimSpace(d.Notes),
	}
	if req.RecurringPattern == "" {
		req.RecurringPattern = model.RecurringNone
	}
	if ids := dedupeIDs(d.ParticipantIDs); len(ids) > 0 {
		req.ParticipantUserIDs = ids
	}
	if len(d.TimeSlots) > 0 {
		req.TimeSlots = append([]model.TimeSlot(nil), d.TimeSlots...)
	}
	return req, nil
}

func nonZero(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Next переключает вкладку события вперёд, в preview только при готовности
func (f *EventFlow) Next() error {
	idx := tabIndex(EventTabs, f.Tab)
	if idx < 0 || idx+1 >= len(EventTabs) {
		return ErrNoNextTab
	}
	to := EventTabs[idx+1]
	if to == TabPreview && !IsEventReady(f.Draft) {
		return ErrEventNotReady
	}
	f.Tab = to
	return nil
}

// Prev переключает вкладку события назад
func (f *EventFlow) Prev() error {
	idx := tabIndex(EventTabs, f.Tab)
	if idx <= 0 {
		return ErrNoPrevTab
	}
	f.Tab = EventTabs[idx-1]
	return nil
}

// BeginSearch запоминает запрос поиска участников и возвращает номер запроса
func (f *EventFlow) BeginSearch(query string) uint64 {
	if f.Requests == nil {
		f.Requests = Generations{}
	}
	f.Search = query
	return f.Requests.Begin(RequestParticipants)
}

// ApplySearch сохраняет результаты, если запрос ещё актуален
func (f *EventFlow) ApplySearch(gen uint64, users []model.User) bool {
	if !f.Requests.IsCurrent(RequestParticipants, gen) {
		return false
	}
	f.Found = users
	return true
}
