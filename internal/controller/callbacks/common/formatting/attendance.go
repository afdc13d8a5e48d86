package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
)

// FormatStatCards форматирует карточки статистики отчёта
func FormatStatCards(r attendance.Report, stats attendance.Stats) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 <b>%s attendance</b>\n", kindTitle(r.Kind())))
	sb.WriteString(fmt.Sprintf("🗓 %s\n\n", html.EscapeString(r.Period())))

	sb.WriteString(fmt.Sprintf("👥 Total: <b>%s</b>\n", FormatNumber(stats.Total)))
	sb.WriteString(fmt.Sprintf("✅ On time: <b>%s</b> (%s)\n", FormatNumber(stats.OnTime), FormatPercent(stats.OnTimeRate())))
	sb.WriteString(fmt.Sprintf("⏰ Late: <b>%s</b>\n", FormatNumber(stats.Late)))
	sb.WriteString(fmt.Sprintf("🚗 Field work: <b>%s</b>", FormatNumber(stats.FieldWork)))

	return sb.String()
}

// FormatDailyRecords форматирует отметки преподавателей дневного отчёта
func FormatDailyRecords(r attendance.DailyReport, limit int) string {
	if len(r.TeacherAttendances) == 0 {
		return "No check-ins recorded"
	}

	var sb strings.Builder
	for i, rec := range r.TeacherAttendances {
		if limit > 0 && i == limit {
			sb.WriteString(fmt.Sprintf("… and %d more\n", len(r.TeacherAttendances)-limit))
			break
		}
		status := GetAttendanceStatusDisplay(rec.Status)
		line := fmt.Sprintf("%s %s", status.Emoji, html.EscapeString(rec.TeacherName))
		if rec.CheckInTime != "" {
			line += " · " + html.EscapeString(rec.CheckInTime)
		}
		if rec.Location != "" {
			line += " · " + html.EscapeString(rec.Location)
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func kindTitle(k attendance.Kind) string {
	switch k {
	case attendance.KindDaily:
		return "Daily"
	case attendance.KindWeekly:
		return "Weekly"
	case attendance.KindMonthly:
		return "Monthly"
	default:
		return string(k)
	}
}
