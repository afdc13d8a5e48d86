package model

import "strings"

type TeacherType string

const (
	TeacherTypeBoth      TeacherType = "Both"
	TeacherTypeAdults    TeacherType = "Adults"
	TeacherTypeKid       TeacherType = "Kid"
	TeacherTypeAdminTeam TeacherType = "Admin Team"
)

// TeacherTypes - все типы в порядке показа на клавиатуре
var TeacherTypes = []TeacherType{TeacherTypeBoth, TeacherTypeAdults, TeacherTypeKid, TeacherTypeAdminTeam}

type TeacherUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LineID   string `json:"line_id"`
	Avatar   string `json:"avatar"`
}

type Teacher struct {
	ID              int64        `json:"id"`
	UserID          int64        `json:"user_id"`
	FirstNameEn     string       `json:"first_name_en"`
	FirstNameTh     string       `json:"first_name_th"`
	LastNameEn      string       `json:"last_name_en"`
	LastNameTh      string       `json:"last_name_th"`
	NicknameEn      string       `json:"nickname_en"`
	NicknameTh      string       `json:"nickname_th"`
	Nationality     string       `json:"nationality"`
	TeacherType     TeacherType  `json:"teacher_type"`
	HourlyRate      *int         `json:"hourly_rate,omitempty"`
	Specializations string       `json:"specializations"`
	Certifications  string       `json:"certifications"`
	Active          bool         `json:"active"`
	BranchID        *int64       `json:"branch_id,omitempty"`
	Branch          *Branch      `json:"branch,omitempty"`
	User            *TeacherUser `json:"user,omitempty"`
}

// FullName возвращает "First Last (Nick)"
func (t Teacher) FullName() string {
	name := strings.TrimSpace(t.FirstNameEn + " " + t.LastNameEn)
	if name == "" {
		name = strings.TrimSpace(t.FirstNameTh + " " + t.LastNameTh)
	}
	if t.NicknameEn != "" {
		name += " (" + t.NicknameEn + ")"
	}
	return name
}

// ConfirmationName - имя, которое нужно ввести для подтверждения удаления
func (t Teacher) ConfirmationName() string {
	if nick := strings.TrimSpace(t.NicknameEn); nick != "" {
		return nick
	}
	return strings.TrimSpace(t.FirstNameEn)
}

// TeacherInput - тело запроса создания/обновления преподавателя
type TeacherInput struct {
	FirstNameEn     string      `json:"first_name_en" validate:"required,min=1,max=100"`
	FirstNameTh     string      `json:"first_name_th,omitempty" validate:"max=100"`
	LastNameEn      string      `json:"last_name_en" validate:"required,min=1,max=100"`
	LastNameTh      string      `json:"last_name_th,omitempty" validate:"max=100"`
	NicknameEn      string      `json:"nickname_en,omitempty" validate:"max=50"`
	NicknameTh      string      `json:"nickname_th,omitempty" validate:"max=50"`
	Nationality     string      `json:"nationality,omitempty" validate:"max=50"`
	TeacherType     TeacherType `json:"teacher_type" validate:"required,oneof=Both Adults Kid 'Admin Team'"`
	HourlyRate      *int        `json:"hourly_rate,omitempty" validate:"omitempty,min=0,max=100000"`
	Specializations string      `json:"specializations,omitempty" validate:"max=500"`
	Certifications  string      `json:"certifications,omitempty" validate:"max=500"`
	Active          bool        `json:"active"`
	BranchID        *int64      `json:"branch_id,omitempty"`
	Email           string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone           string      `json:"phone,omitempty" validate:"omitempty,thai_phone"`
	LineID          string      `json:"line_id,omitempty" validate:"max=50"`
}

// InputFromTeacher заполняет форму редактирования текущими значениями
func InputFromTeacher(t Teacher) TeacherInput {
	in := TeacherInput{
		FirstNameEn:     t.FirstNameEn,
		FirstNameTh:     t.FirstNameTh,
		LastNameEn:      t.LastNameEn,
		LastNameTh:      t.LastNameTh,
		NicknameEn:      t.NicknameEn,
		NicknameTh:      t.NicknameTh,
		Nationality:     t.Nationality,
		TeacherType:     t.TeacherType,
		HourlyRate:      t.HourlyRate,
		Specializations: t.Specializations,
		Certifications:  t.Certifications,
		Active:          t.Active,
		BranchID:        t.BranchID,
	}
	if t.User != nil {
		in.Email = t.User.Email
		in.Phone = t.User.Phone
		in.LineID = t.User.LineID
	}
	return in
}

// TeacherFilter - параметры списка преподавателей
type TeacherFilter struct {
	Search   string
	BranchID *int64
	Active   *bool
	Page     int
	Limit    int
}

// JoinList собирает список специализаций в строку через запятую
func JoinList(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			cleaned = append(cleaned, it)
		}
	}
	return strings.Join(cleaned, ", ")
}

// SplitList разбирает строку через запятую
func SplitList(s string) []string {
	var out []string
	for _, it := range strings.Split(s, ",") {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
