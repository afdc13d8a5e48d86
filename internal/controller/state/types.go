package state

import (
	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
)

// UserState - какой текстовый ввод бот ждёт от пользователя
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Мастер расписания класса
	StateClassField   UserState = "class_field"   // Data["field"] = wizard.Field
	StateSessionTime  UserState = "session_time"  // Data["index"] = индекс занятия
	StateGroupField   UserState = "group_field"   // Data["field"]
	StateGroupStudent UserState = "group_student" // поиск студентов для группы

	// Форма события
	StateEventField       UserState = "event_field" // Data["field"]
	StateEventSlot        UserState = "event_slot"
	StateParticipantQuery UserState = "participant_query"

	// Преподаватели
	StateTeacherField   UserState = "teacher_field" // Data["field"]
	StateTeacherSearch  UserState = "teacher_search"
	StateTeacherConfirm UserState = "teacher_confirm" // ввод имени для удаления

	// Регистрация студента
	StateStudentField UserState = "student_field" // Data["field"]

	// Отчёты посещаемости
	StateAttendanceDate UserState = "attendance_date"
)

// TeacherForm - черновик создания/редактирования преподавателя
type TeacherForm struct {
	TeacherID int64              `json:"teacher_id,omitempty"` // 0 - создание
	Input     model.TeacherInput `json:"input"`
}

// TeacherListView - фильтры и страница списка преподавателей
type TeacherListView struct {
	Search   string `json:"search,omitempty"`
	Active   *bool  `json:"active,omitempty"`
	BranchID *int64 `json:"branch_id,omitempty"`
	Page     int    `json:"page"`
}

// AttendanceView - выбранный тип отчёта и дата
type AttendanceView struct {
	Kind attendance.Kind `json:"kind"`
	Date string          `json:"date"`
}

// Lookups - справочники, загруженные для текущего мастера
type Lookups struct {
	Branches []model.Branch      `json:"branches,omitempty"`
	Groups   []model.GroupOption `json:"groups,omitempty"`
	Rooms    []model.Room        `json:"rooms,omitempty"`
	Teachers []model.Teacher     `json:"teachers,omitempty"`
	Courses  []model.Course      `json:"courses,omitempty"`
	Students []model.Student     `json:"students,omitempty"`
}

// Session - всё состояние диалога одного пользователя, сериализуется в JSON
type Session struct {
	State UserState         `json:"state"`
	Data  map[string]string `json:"data,omitempty"`

	// Сообщение, которое перерисовывается как окно мастера
	ChatID    int64 `json:"chat_id,omitempty"`
	MessageID int   `json:"message_id,omitempty"`

	Wizard  *wizard.Wrapper   `json:"wizard,omitempty"`
	Class   *wizard.ClassFlow `json:"class,omitempty"`
	Event   *wizard.EventFlow `json:"event,omitempty"`
	Group   *wizard.GroupForm `json:"group,omitempty"`
	Lookups Lookups           `json:"lookups"`

	Teacher     *TeacherForm                  `json:"teacher,omitempty"`
	TeacherList *TeacherListView              `json:"teacher_list,omitempty"`
	Student     *model.RegisterStudentRequest `json:"student,omitempty"`
	Attendance  *AttendanceView               `json:"attendance,omitempty"`
}

// SetState переключает ожидаемый ввод и сбрасывает его параметры
func (s *Session) SetState(state UserState, data map[string]string) {
	s.State = state
	s.Data = data
}

// ClearInput сбрасывает ожидание текстового ввода, черновики остаются
func (s *Session) ClearInput() {
	s.State = StateNone
	s.Data = nil
}

// Get возвращает значение параметра текущего ввода
func (s *Session) Get(key string) string {
	if s.Data == nil {
		return ""
	}
	return s.Data[key]
}

// ResetWizard закрывает мастер расписания целиком
func (s *Session) ResetWizard() {
	s.Wizard = nil
	s.Class = nil
	s.Event = nil
	s.Group = nil
	s.Lookups = Lookups{}
	s.ClearInput()
}

// IsEmpty - сессию можно удалить из хранилища
func (s *Session) IsEmpty() bool {
	return s.State == StateNone &&
		s.Wizard == nil &&
		s.Class == nil &&
		s.Event == nil &&
		s.Group == nil &&
		s.Teacher == nil &&
		s.TeacherList == nil &&
		s.Student == nil &&
		s.Attendance == nil
}
