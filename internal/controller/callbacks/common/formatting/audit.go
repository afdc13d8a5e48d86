package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// FormatAuditEvents форматирует историю действий администраторов
func FormatAuditEvents(events []*model.AuditEvent, loc *time.Location) string {
	if len(events) == 0 {
		return "🕘 No actions recorded yet"
	}

	var sb strings.Builder
	sb.WriteString("🕘 <b>Recent actions</b>\n\n")
	for _, e := range events {
		sb.WriteString(FormatAuditEvent(e, loc) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatAuditEvent форматирует одну запись аудита
func FormatAuditEvent(e *model.AuditEvent, loc *time.Location) string {
	emoji := map[model.AuditAction]string{
		model.AuditActionCreate: "➕",
		model.AuditActionUpdate: "✏️",
		model.AuditActionDelete: "🗑",
	}[e.Action]
	if emoji == "" {
		emoji = "•"
	}

	at := e.CreatedAt
	if loc != nil {
		at = at.In(loc)
	}

	resource := html.EscapeString(e.Resource)
	if e.ResourceID != nil {
		resource += fmt.Sprintf(" #%d", *e.ResourceID)
	}
	return fmt.Sprintf("%s %s %s · by %d · %s", emoji, e.Action, resource, e.TelegramID, FormatDateTime(at))
}
