package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// maxListedItems - сколько строк списка показывать в одном сообщении
const maxListedItems = 8

// FormatSessionTime форматирует слот класса: "Mon 09:00"
func FormatSessionTime(st model.SessionTime) string {
	clock := st.StartTime
	if clock == "" {
		clock = "--:--"
	}
	return fmt.Sprintf("%s %s", GetWeekdayShortName(st.Weekday), clock)
}

// FormatTimeSlot форматирует слот события: "Monday 09:00-10:30"
func FormatTimeSlot(ts model.TimeSlot) string {
	day := ts.DayOfWeek
	if day != "" {
		day = strings.ToUpper(day[:1]) + day[1:]
	}
	return fmt.Sprintf("%s %s-%s", day, ts.StartTime, ts.EndTime)
}

// FormatConflicts форматирует результат проверки аудиторий
func FormatConflicts(res *model.RoomConflictResult) string {
	if res == nil {
		return "🔍 Room availability not checked yet"
	}
	if !res.HasConflict && len(res.Conflicts) == 0 {
		return "✅ No room conflicts for these times"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚠️ <b>%s</b>\n", Plural(len(res.Conflicts), "conflict", "conflicts")))
	for i, c := range res.Conflicts {
		if i == maxListedItems {
			sb.WriteString(fmt.Sprintf("   … and %d more\n", len(res.Conflicts)-maxListedItems))
			break
		}
		sb.WriteString(fmt.Sprintf("   • %s: %s %s-%s (%s)\n",
			html.EscapeString(c.RoomName),
			FormatDate(c.SessionDate),
			c.StartTime,
			c.EndTime,
			html.EscapeString(c.ScheduleName)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatPreview форматирует рассчитанный сервером preview
func FormatPreview(p *model.SchedulePreview) string {
	if p == nil {
		return "⏳ Preview is not loaded"
	}

	var sb strings.Builder

	status := "✅ Ready to create"
	if !p.CanCreate {
		status = "⛔ Cannot be created yet"
	}
	sb.WriteString(status + "\n\n")

	total := p.TotalSessions
	if total == 0 {
		total = len(p.Sessions)
	}
	sb.WriteString(fmt.Sprintf("🗓 %s, ends %s\n", PluralizeSessions(total), FormatDate(p.EstimatedEndDate)))

	if len(p.Sessions) > 0 {
		first := p.Sessions[0]
		sb.WriteString(fmt.Sprintf("▶️ First session: %s %s-%s\n", FormatDate(first.Date), first.StartTime, first.EndTime))
	}

	if len(p.HolidayImpacts) > 0 {
		sb.WriteString(fmt.Sprintf("\n🏖 <b>Holiday shifts (%d)</b>\n", len(p.HolidayImpacts)))
		for i, hi := range p.HolidayImpacts {
			if i == maxListedItems {
				sb.WriteString(fmt.Sprintf("   … and %d more\n", len(p.HolidayImpacts)-maxListedItems))
				break
			}
			sb.WriteString(fmt.Sprintf("   • %s → %s (%s)\n",
				FormatDate(hi.OriginalDate), FormatDate(hi.ShiftedDate), html.EscapeString(hi.HolidayName)))
		}
	}

	if gp := p.GroupPayment; gp != nil {
		sb.WriteString(fmt.Sprintf("\n💳 Payment: %d of %d members eligible, %d pending\n",
			gp.EligibleCount, gp.TotalMembers, gp.PendingCount))
	}

	if len(p.Issues) > 0 {
		sb.WriteString("\n<b>Issues</b>\n")
		for _, is := range p.Issues {
			emoji := "⚠️"
			if is.Severity == model.IssueSeverityError {
				emoji = "⛔"
			}
			sb.WriteString(fmt.Sprintf("%s %s\n", emoji, html.EscapeString(is.Message)))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
