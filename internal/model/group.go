package model

type GroupStatus string

const (
	GroupStatusActive      GroupStatus = "active"
	GroupStatusInactive    GroupStatus = "inactive"
	GroupStatusSuspended   GroupStatus = "suspended"
	GroupStatusFull        GroupStatus = "full"
	GroupStatusNeedFeeling GroupStatus = "need-feeling"
	GroupStatusEmpty       GroupStatus = "empty"
)

type PaymentStatus string

const (
	PaymentStatusPending     PaymentStatus = "pending"
	PaymentStatusDepositPaid PaymentStatus = "deposit_paid"
	PaymentStatusFullyPaid   PaymentStatus = "fully_paid"
)

// PaymentStatuses - допустимые значения для формы создания группы
var PaymentStatuses = []PaymentStatus{PaymentStatusPending, PaymentStatusDepositPaid, PaymentStatusFullyPaid}

type GroupMember struct {
	ID            int64         `json:"id"`
	GroupID       int64         `json:"group_id"`
	StudentID     int64         `json:"student_id"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Status        string        `json:"status"`
	Student       *Student      `json:"student,omitempty"`
}

type Group struct {
	ID            int64         `json:"id"`
	GroupName     string        `json:"group_name"`
	CourseID      int64         `json:"course_id"`
	Level         string        `json:"level"`
	MaxStudents   int           `json:"max_students"`
	Status        GroupStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Description   string        `json:"description"`
	BranchID      *int64        `json:"branch_id,omitempty"`
	Course        *Course       `json:"course,omitempty"`
	Members       []GroupMember `json:"members"`
}

// GroupOption - группа в виде, удобном для выбора в мастере
type GroupOption struct {
	ID              int64       `json:"id"`
	GroupName       string      `json:"group_name"`
	CourseID        int64       `json:"course_id"`
	CourseName      string      `json:"course_name"`
	Level           string      `json:"level"`
	MaxStudents     int         `json:"max_students"`
	CurrentStudents int         `json:"current_students"`
	Status          GroupStatus `json:"status"`
}

// NewGroupOption строит опцию выбора, current_students = число участников
func NewGroupOption(g Group) GroupOption {
	opt := GroupOption{
		ID:              g.ID,
		GroupName:       g.GroupName,
		CourseID:        g.CourseID,
		Level:           g.Level,
		MaxStudents:     g.MaxStudents,
		CurrentStudents: len(g.Members),
		Status:          g.Status,
	}
	if g.Course != nil {
		opt.CourseName = g.Course.Name
	}
	return opt
}

type CreateGroupRequest struct {
	GroupName     string        `json:"group_name" validate:"required,min=2,max=100"`
	CourseID      int64         `json:"course_id" validate:"required,gt=0"`
	Level         string        `json:"level,omitempty" validate:"max=50"`
	MaxStudents   int           `json:"max_students" validate:"required,min=1,max=50"`
	PaymentStatus PaymentStatus `json:"payment_status" validate:"required,oneof=pending deposit_paid fully_paid"`
	Description   string        `json:"description,omitempty" validate:"max=500"`
	BranchID      *int64        `json:"branch_id,omitempty"`
}

type AddGroupMemberRequest struct {
	StudentID     int64         `json:"student_id"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}
