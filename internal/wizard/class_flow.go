package wizard

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// Tab - вкладка мастера расписания класса
type Tab string

const (
	TabBasic    Tab = "basic"
	TabSchedule Tab = "schedule"
	TabRoom     Tab = "room"
	TabPreview  Tab = "preview"
)

// ClassTabs - фиксированный порядок вкладок
var ClassTabs = []Tab{TabBasic, TabSchedule, TabRoom, TabPreview}

var (
	ErrIllegalTransition = errors.New("illegal tab transition")
	ErrNoNextTab         = errors.New("already on the last tab")
	ErrNoPrevTab         = errors.New("already on the first tab")
	ErrPreviewNotReady   = errors.New("schedule is not ready for preview")
	ErrRoomConflict      = errors.New("selected room has a conflict")
	ErrCannotCreate      = errors.New("preview does not allow creation")
)

type tabGuard func(f *ClassFlow) error

// classTransitions - разрешённые переходы между вкладками и их условия.
// Переходы назад разрешены всегда, вперёд в preview только при готовности.
var classTransitions = map[Tab]map[Tab]tabGuard{
	TabBasic: {
		TabSchedule: nil,
		TabRoom:     nil,
		TabPreview:  guardPreview,
	},
	TabSchedule: {
		TabBasic:   nil,
		TabRoom:    nil,
		TabPreview: guardPreview,
	},
	TabRoom: {
		TabBasic:    nil,
		TabSchedule: nil,
		TabPreview:  guardPreview,
	},
	TabPreview: {
		TabBasic:    nil,
		TabSchedule: nil,
		TabRoom:     nil,
	},
}

func guardPreview(f *ClassFlow) error {
	if !IsPreviewReady(f.Draft) {
		return ErrPreviewNotReady
	}
	if f.SelectedRoomConflicts() {
		return ErrRoomConflict
	}
	return nil
}

// ClassFlow - состояние мастера создания расписания класса
type ClassFlow struct {
	Tab       Tab                       `json:"tab"`
	Draft     ScheduleDraft             `json:"draft"`
	Conflicts *model.RoomConflictResult `json:"conflicts,omitempty"`
	Preview   *model.SchedulePreview    `json:"preview,omitempty"`
	Requests  Generations               `json:"requests"`
}

// NewClassFlow создаёт мастер на первой вкладке
func NewClassFlow() *ClassFlow {
	return &ClassFlow{
		Tab:      TabBasic,
		Draft:    NewScheduleDraft(),
		Requests: Generations{},
	}
}

// Dispatch применяет действие к черновику. Результаты проверки и preview,
// посчитанные для старого черновика, сбрасываются.
func (f *ClassFlow) Dispatch(a Action) error {
	next, err := Reduce(f.Draft, a)
	if err != nil {
		return err
	}
	f.Draft = next
	f.Preview = nil
	f.Requests.Invalidate(RequestPreview)

	// выбор аудитории не меняет результат проверки конфликтов
	if sf, ok := a.(SetField); ok && sf.Field == FieldRoom {
		return nil
	}
	f.Conflicts = nil
	f.Requests.Invalidate(RequestRoomCheck)
	return nil
}

// BeginRequest регистрирует автоматический запрос и возвращает его номер
func (f *ClassFlow) BeginRequest(kind RequestKind) uint64 {
	if f.Requests == nil {
		f.Requests = Generations{}
	}
	return f.Requests.Begin(kind)
}

// ApplyRoomCheck сохраняет результат проверки, если он не устарел
func (f *ClassFlow) ApplyRoomCheck(gen uint64, res *model.RoomConflictResult) bool {
	if !f.Requests.IsCurrent(RequestRoomCheck, gen) {
		return false
	}
	f.Conflicts = res
	return true
}

// ApplyPreview сохраняет preview, если он не устарел
func (f *ClassFlow) ApplyPreview(gen uint64, p *model.SchedulePreview) bool {
	if !f.Requests.IsCurrent(RequestPreview, gen) {
		return false
	}
	f.Preview = p
	return true
}

// CanEnter проверяет переход на вкладку по таблице переходов
func (f *ClassFlow) CanEnter(to Tab) error {
	if to == f.Tab {
		return nil
	}
	allowed, ok := classTransitions[f.Tab]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f.Tab, to)
	}
	guard, ok := allowed[to]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f.Tab, to)
	}
	if guard != nil {
		return guard(f)
	}
	return nil
}

// GoTo переходит на вкладку, если это разрешено
func (f *ClassFlow) GoTo(to Tab) error {
	if err := f.CanEnter(to); err != nil {
		return err
	}
	f.Tab = to
	return nil
}

// Next - переход на следующую вкладку (индекс + 1)
func (f *ClassFlow) Next() error {
	idx := tabIndex(ClassTabs, f.Tab)
	if idx < 0 || idx+1 >= len(ClassTabs) {
		return ErrNoNextTab
	}
	if f.Tab == TabRoom && f.SelectedRoomConflicts() {
		return ErrRoomConflict
	}
	return f.GoTo(ClassTabs[idx+1])
}

// Prev - переход на предыдущую вкладку (индекс - 1)
func (f *ClassFlow) Prev() error {
	idx := tabIndex(ClassTabs, f.Tab)
	if idx <= 0 {
		return ErrNoPrevTab
	}
	return f.GoTo(ClassTabs[idx-1])
}

// NeedsRoomCheck - нужно ли автоматически проверить конфликты при входе на вкладку room
func (f *ClassFlow) NeedsRoomCheck() bool {
	return f.Tab == TabRoom && f.Conflicts == nil && IsRoomCheckReady(f.Draft)
}

// NeedsPreview - нужно ли запросить preview при входе на вкладку
func (f *ClassFlow) NeedsPreview() bool {
	return f.Tab == TabPreview && f.Preview == nil && IsPreviewReady(f.Draft)
}

// SelectedRoomConflicts сообщает, конфликтует ли выбранная аудитория
func (f *ClassFlow) SelectedRoomConflicts() bool {
	if f.Draft.RoomID == nil || f.Conflicts == nil {
		return false
	}
	return f.Conflicts.ConflictingRooms()[*f.Draft.RoomID]
}

// CanCreate - кнопка "Создать" доступна только если сервер разрешил
func (f *ClassFlow) CanCreate() error {
	if f.Preview == nil || !f.Preview.CanCreate {
		return ErrCannotCreate
	}
	return nil
}

// IsRoomCheckReady: start_date, total_hours, hours_per_session и непустой session_times,
// где у каждого слота задано время начала
func IsRoomCheckReady(d ScheduleDraft) bool {
	return d.StartDate != "" &&
		d.TotalHours > 0 &&
		d.HoursPerSession > 0 &&
		hasSessionTimes(d.SessionTimes)
}

// IsPreviewReady: всё для проверки аудитории плюс название, группа, преподаватель и аудитория
func IsPreviewReady(d ScheduleDraft) bool {
	return IsRoomCheckReady(d) &&
		d.ScheduleName != "" &&
		d.GroupID != nil &&
		d.DefaultTeacherID != nil &&
		d.RoomID != nil
}

// hasSessionTimes - хотя бы один слот, и ни одного без start_time:
// пустой слот ушёл бы в запрос как некорректное время
func hasSessionTimes(sessions []model.SessionTime) bool {
	if len(sessions) == 0 {
		return false
	}
	for _, s := range sessions {
		if s.StartTime == "" {
			return false
		}
	}
	return true
}

func tabIndex(tabs []Tab, t Tab) int {
	for i, tab := range tabs {
		if tab == t {
			return i
		}
	}
	return -1
}
