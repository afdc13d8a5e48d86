package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// FormatTeacherInfo форматирует карточку преподавателя
func FormatTeacherInfo(t *model.Teacher) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("👩‍🏫 <b>%s</b>\n", html.EscapeString(t.FullName())))
	if thai := strings.TrimSpace(t.FirstNameTh + " " + t.LastNameTh); thai != "" {
		sb.WriteString(fmt.Sprintf("🇹🇭 %s", html.EscapeString(thai)))
		if t.NicknameTh != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", html.EscapeString(t.NicknameTh)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("📊 Status: %s\n", GetActiveDisplay(t.Active)))
	sb.WriteString(fmt.Sprintf("🏷 Type: %s\n", t.TeacherType))
	sb.WriteString(fmt.Sprintf("💰 Hourly rate: %s\n", FormatHourlyRate(t.HourlyRate)))
	if t.Nationality != "" {
		sb.WriteString(fmt.Sprintf("🌏 Nationality: %s\n", html.EscapeString(t.Nationality)))
	}
	if t.Branch != nil {
		sb.WriteString(fmt.Sprintf("🏫 Branch: %s\n", html.EscapeString(t.Branch.Name())))
	}

	if specs := model.SplitList(t.Specializations); len(specs) > 0 {
		sb.WriteString(fmt.Sprintf("📚 Specializations: %s\n", html.EscapeString(strings.Join(specs, ", "))))
	}
	if certs := model.SplitList(t.Certifications); len(certs) > 0 {
		sb.WriteString(fmt.Sprintf("🎖 Certifications: %s\n", html.EscapeString(strings.Join(certs, ", "))))
	}

	if u := t.User; u != nil {
		sb.WriteString("\n")
		if u.Email != "" {
			sb.WriteString(fmt.Sprintf("✉️ %s\n", html.EscapeString(u.Email)))
		}
		if u.Phone != "" {
			sb.WriteString(fmt.Sprintf("📞 %s\n", html.EscapeString(u.Phone)))
		}
		if u.LineID != "" {
			sb.WriteString(fmt.Sprintf("💬 LINE: %s\n", html.EscapeString(u.LineID)))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatTeacherShort форматирует строку списка преподавателей
func FormatTeacherShort(t model.Teacher, index int) string {
	line := fmt.Sprintf("%d. %s %s · %s",
		index,
		GetActiveDisplay(t.Active).Emoji,
		html.EscapeString(t.FullName()),
		t.TeacherType)
	if t.Branch != nil {
		line += " · " + html.EscapeString(t.Branch.Name())
	}
	return line
}

// FormatTeacherInput показывает форму создания/редактирования
func FormatTeacherInput(in model.TeacherInput) string {
	value := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "<i>empty</i>"
		}
		return html.EscapeString(s)
	}

	rows := []struct {
		label string
		value string
	}{
		{"First name (EN)*", value(in.FirstNameEn)},
		{"Last name (EN)*", value(in.LastNameEn)},
		{"Nickname (EN)", value(in.NicknameEn)},
		{"First name (TH)", value(in.FirstNameTh)},
		{"Last name (TH)", value(in.LastNameTh)},
		{"Nickname (TH)", value(in.NicknameTh)},
		{"Nationality", value(in.Nationality)},
		{"Type*", value(string(in.TeacherType))},
		{"Hourly rate", FormatHourlyRate(in.HourlyRate)},
		{"Specializations", value(in.Specializations)},
		{"Certifications", value(in.Certifications)},
		{"Email", value(in.Email)},
		{"Phone", value(in.Phone)},
		{"LINE ID", value(in.LineID)},
		{"Active", GetActiveDisplay(in.Active).String()},
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s: %s\n", r.label, r.value))
	}
	return strings.TrimRight(sb.String(), "\n")
}
