package wizard

import (
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// GroupForm - вложенная форма создания группы внутри мастера класса
type GroupForm struct {
	GroupName     string              `json:"group_name"`
	CourseID      int64               `json:"course_id"`
	Level         string              `json:"level"`
	MaxStudents   int                 `json:"max_students"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	Description   string              `json:"description"`
	StudentIDs    []int64             `json:"student_ids,omitempty"`
	StudentNames  map[int64]string    `json:"student_names,omitempty"`
}

// NewGroupForm создаёт форму с ожиданием оплаты по умолчанию
func NewGroupForm() *GroupForm {
	return &GroupForm{PaymentStatus: model.PaymentStatusPending}
}

// ToggleStudent добавляет студента или убирает, если он уже выбран
func (g *GroupForm) ToggleStudent(s model.Student) bool {
	for i, id := range g.StudentIDs {
		if id == s.ID {
			g.StudentIDs = append(g.StudentIDs[:i], g.StudentIDs[i+1:]...)
			delete(g.StudentNames, s.ID)
			return false
		}
	}
	g.StudentIDs = append(g.StudentIDs, s.ID)
	if g.StudentNames == nil {
		g.StudentNames = make(map[int64]string)
	}
	g.StudentNames[s.ID] = s.DisplayName()
	return true
}

// Request собирает тело POST /groups
func (g *GroupForm) Request(branchID *int64) model.CreateGroupRequest {
	return model.CreateGroupRequest{
		GroupName:     strings.TrimSpace(g.GroupName),
		CourseID:      g.CourseID,
		Level:         strings.TrimSpace(g.Level),
		MaxStudents:   g.MaxStudents,
		PaymentStatus: g.PaymentStatus,
		Description:   strings.TrimSpace(g.Description),
		BranchID:      branchID,
	}
}

// GroupOptionFromCreated превращает созданную группу в опцию выбора для черновика
func GroupOptionFromCreated(g *model.Group, form *GroupForm, added int) model.GroupOption {
	opt := model.NewGroupOption(*g)
	if opt.MaxStudents == 0 {
		opt.MaxStudents = form.MaxStudents
	}
	if opt.CourseID == 0 {
		opt.CourseID = form.CourseID
	}
	if opt.CurrentStudents == 0 {
		opt.CurrentStudents = added
	}
	return opt
}
