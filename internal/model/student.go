package model

type Student struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FirstNameEn string `json:"first_name_en"`
	LastNameEn  string `json:"last_name_en"`
	NicknameTh  string `json:"nickname_th"`
	NicknameEn  string `json:"nickname_en"`
	Phone       string `json:"phone"`
	CitizenID   string `json:"citizen_id"`
	Status      string `json:"registration_status"`
}

// DisplayName - имя студента для списков выбора
func (s Student) DisplayName() string {
	name := s.FirstNameEn
	if name == "" {
		name = s.FirstName
	}
	last := s.LastNameEn
	if last == "" {
		last = s.LastName
	}
	if last != "" {
		name += " " + last
	}
	if s.NicknameEn != "" {
		name += " (" + s.NicknameEn + ")"
	}
	return name
}

// RegisterStudentRequest - быстрая регистрация студента
type RegisterStudentRequest struct {
	FirstName  string `json:"first_name" validate:"required,min=1,max=100"`
	LastName   string `json:"last_name" validate:"required,min=1,max=100"`
	NicknameEn string `json:"nickname_en,omitempty" validate:"max=50"`
	Phone      string `json:"phone" validate:"required,thai_phone"`
	CitizenID  string `json:"citizen_id,omitempty" validate:"omitempty,thai_citizen_id"`
}
