package handlers

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// FormatBranches - список филиалов для /branch, выбранный по умолчанию отмечен
func FormatBranches(branches []model.Branch, defaultID *int64) string {
	if len(branches) == 0 {
		return "🏫 No branches found."
	}

	var sb strings.Builder
	sb.WriteString("🏫 <b>Branches</b>\n\n")
	for _, br := range branches {
		mark := "▫️"
		if defaultID != nil && *defaultID == br.ID {
			mark = "⭐"
		}
		sb.WriteString(fmt.Sprintf("%s <code>%d</code> %s\n", mark, br.ID, html.EscapeString(br.NameEn)))
	}
	sb.WriteString("\nSet the default with /branch &lt;id&gt;")
	return sb.String()
}
