package formatting

import (
	"fmt"
	"time"
)

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02 Jan 2006 15:04")
}

// FormatDate форматирует дату из API ("2024-01-15" или RFC3339).
// Нераспознанная строка возвращается как есть.
func FormatDate(s string) string {
	if s == "" {
		return "not set"
	}
	t, ok := parseAPIDate(s)
	if !ok {
		return s
	}
	return t.Format("Mon, 02 Jan 2006")
}

func parseAPIDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatHours форматирует количество часов
func FormatHours(hours int) string {
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%s hours", FormatNumber(hours))
}

// GetWeekdayShortName возвращает краткое название дня недели (0 = воскресенье)
func GetWeekdayShortName(weekday int) string {
	if weekday >= 0 && weekday < len(weekdayNames) {
		return weekdayNames[weekday][:3]
	}
	return "?"
}
