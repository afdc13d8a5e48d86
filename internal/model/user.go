package model

import "time"

// Admin - пользователь Telegram, которому разрешено управлять школой через бота
type Admin struct {
	ID              int64     `json:"id"`
	TelegramID      int64     `json:"telegram_id"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	LanguageCode    string    `json:"language_code"`
	IsAdmin         bool      `json:"is_admin"`
	DefaultBranchID *int64    `json:"default_branch_id,omitempty"`
	DigestEnabled   bool      `json:"digest_enabled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DisplayName возвращает имя для приветствий
func (a *Admin) DisplayName() string {
	if a.FirstName != "" {
		return a.FirstName
	}
	if a.Username != "" {
		return "@" + a.Username
	}
	return "admin"
}

// User - учётная запись школьной системы (участник событий)
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LineID   string `json:"line_id"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
	BranchID *int64 `json:"branch_id,omitempty"`
}
