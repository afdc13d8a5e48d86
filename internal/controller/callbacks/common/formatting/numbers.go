package formatting

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber форматирует целое с разделителями разрядов: 12,500
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatHourlyRate форматирует ставку преподавателя в батах
func FormatHourlyRate(rate *int) string {
	if rate == nil {
		return "not set"
	}
	return printer.Sprintf("฿%d / hour", *rate)
}

// FormatPercent форматирует долю 0..1 как процент
func FormatPercent(ratio float64) string {
	return printer.Sprintf("%.0f%%", ratio*100)
}
