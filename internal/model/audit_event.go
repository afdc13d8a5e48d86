package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditEvent - запись о мутирующем вызове API, сделанном через бота
type AuditEvent struct {
	ID         uuid.UUID       `json:"id"`
	TelegramID int64           `json:"telegram_id"`
	Action     AuditAction     `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID *int64          `json:"resource_id,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
