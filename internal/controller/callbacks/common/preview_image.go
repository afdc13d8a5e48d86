package common

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 8
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 8
	defaultMaxHour   = 20
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 16.0
	slotTimeFontSize   = 16.0
	legendItemFontSize = 13.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	sessionColor            = color.RGBA{133, 193, 85, 220}
	sessionRescheduledColor = color.RGBA{255, 190, 90, 235}
	sessionHolidayColor     = color.RGBA{158, 158, 158, 200}
	slotTextColor           = color.RGBA{20, 24, 28, 230}
	slotShadowColor         = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// weekBounds содержит границы недели
type weekBounds struct {
	start time.Time
	end   time.Time
}

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

// previewSlot - занятие из preview с разобранными датой и временем
type previewSlot struct {
	number      int
	start       time.Time
	end         time.Time
	holiday     bool
	rescheduled bool
}

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont загружает шрифт Go указанного стиля или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style ...FontStyle) {
	fontStyle := FontStyleDefault
	if len(style) > 0 {
		fontStyle = style[0]
	}

	fontData := goregular.TTF
	if fontStyle == FontStyleBold {
		fontData = gobold.TTF
	}

	fontsMu.Lock()
	parsed, ok := cachedFonts[fontStyle]
	if !ok {
		var err error
		parsed, err = opentype.Parse(fontData)
		if err != nil {
			fontsMu.Unlock()
			dc.SetFontFace(basicfont.Face7x13)
			return
		}
		cachedFonts[fontStyle] = parsed
	}
	fontsMu.Unlock()

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// PreviewWeeks возвращает число недель, занятых сессиями preview
func PreviewWeeks(preview *model.SchedulePreview) int {
	slots := parsePreviewSessions(preview)
	if len(slots) == 0 {
		return 0
	}
	first := normalizeToWeekBounds(slots[0].start).start
	last := normalizeToWeekBounds(slots[len(slots)-1].start).start
	return int(last.Sub(first).Hours()/24/7) + 1
}

// GeneratePreviewImage рисует неделю week (с нуля) рассчитанного расписания.
// Перенесённые из-за праздника занятия подсвечиваются.
func GeneratePreviewImage(title string, preview *model.SchedulePreview, week int) ([]byte, error) {
	slots := parsePreviewSessions(preview)
	if len(slots) == 0 {
		return nil, fmt.Errorf("preview has no sessions")
	}
	weeks := PreviewWeeks(preview)
	if week < 0 || week >= weeks {
		return nil, fmt.Errorf("week %d out of range 0..%d", week, weeks-1)
	}

	bounds := normalizeToWeekBounds(slots[0].start)
	bounds.start = bounds.start.AddDate(0, 0, 7*week)
	bounds.end = bounds.start.AddDate(0, 0, 6)

	slotsByDay := groupSlotsByDay(slots, bounds)
	hours := calculateHourRange(slots)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, title, bounds, week, weeks)
	drawHourLabels(dc, hours, cellHeight)
	drawDaysAndSlots(dc, bounds, slotsByDay, hours, dayWidth, dayHeight, cellHeight)
	drawLegend(dc, dayWidth)

	return encodeImage(dc)
}

func parsePreviewSessions(preview *model.SchedulePreview) []previewSlot {
	if preview == nil {
		return nil
	}
	slots := make([]previewSlot, 0, len(preview.Sessions))
	for _, s := range preview.Sessions {
		day, err := parseSessionDate(s.Date)
		if err != nil {
			continue
		}
		start, ok := atClock(day, s.StartTime)
		if !ok {
			continue
		}
		end, ok := atClock(day, s.EndTime)
		if !ok || !end.After(start) {
			end = start.Add(time.Hour)
		}
		slots = append(slots, previewSlot{
			number:      s.SessionNumber,
			start:       start,
			end:         end,
			holiday:     s.IsHoliday,
			rescheduled: s.Rescheduled,
		})
	}
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].start.Before(slots[j].start) })
	return slots
}

func parseSessionDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}

func atClock(day time.Time, clock string) (time.Time, bool) {
	parts := strings.SplitN(clock, ":", 3)
	if len(parts) < 2 {
		return time.Time{}, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return time.Time{}, false
	}
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), true
}

// normalizeToWeekBounds нормализует дату к границам недели (Пн-Вс)
func normalizeToWeekBounds(date time.Time) weekBounds {
	normalized := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start := normalized.AddDate(0, 0, -daysSinceMonday)
	end := start.AddDate(0, 0, 6)

	return weekBounds{start: start, end: end}
}

// groupSlotsByDay группирует занятия недели по дням
func groupSlotsByDay(slots []previewSlot, week weekBounds) map[string][]previewSlot {
	slotsByDay := make(map[string][]previewSlot)
	for _, slot := range slots {
		if slot.start.Before(week.start) || slot.start.After(week.end.AddDate(0, 0, 1)) {
			continue
		}
		dateKey := slot.start.Format("2006-01-02")
		slotsByDay[dateKey] = append(slotsByDay[dateKey], slot)
	}
	return slotsByDay
}

// calculateHourRange определяет диапазон часов по всем занятиям, чтобы недели были одного масштаба
func calculateHourRange(slots []previewSlot) hourRange {
	minHour := 24
	maxHour := 0

	for _, slot := range slots {
		startH := slot.start.Hour()
		endH := slot.end.Hour()
		if slot.end.Minute() > 0 {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour + 1,
	}
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует название расписания и номер недели
func drawHeader(dc *gg.Context, title string, week weekBounds, index, total int) {
	if title == "" {
		title = "Schedule preview"
	}
	header := fmt.Sprintf("%s  ·  week %d/%d  ·  %s", title, index+1, total, week.start.Format("January 2006"))

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	_, h := dc.MeasureString(header)
	dc.DrawStringAnchored(header, float64(leftLabelsWidth), float64(headerHeight)/8+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx < hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawStringAnchored(formatHourLabel(hours.start+hIdx), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDaysAndSlots рисует все дни недели с занятиями
func drawDaysAndSlots(dc *gg.Context, week weekBounds, slotsByDay map[string][]previewSlot,
	hours hourRange, dayWidth, dayHeight int, cellHeight float64) {

	currentDate := week.start

	for dayIndex := 0; dayIndex < totalDaysInWeek; dayIndex++ {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex)
		drawDayHeader(dc, currentDate, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, slot := range slotsByDay[currentDate.Format("2006-01-02")] {
			drawSlot(dc, slot, x, y, dayWidth, hours, cellHeight)
		}

		currentDate = currentDate.AddDate(0, 0, 1)
	}
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int) {
	if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует день недели и дату
func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(date.Format("Mon"), x+float64(dayWidth)/2, y, 0.5, -0.2)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawSlot рисует одно занятие
func drawSlot(dc *gg.Context, slot previewSlot, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour := float64(slot.start.Hour()) + float64(slot.start.Minute())/60.0
	endHour := float64(slot.end.Hour()) + float64(slot.end.Minute())/60.0

	slotY := y + (startHour-float64(hours.start))*cellHeight
	slotHeight := (endHour - startHour) * cellHeight
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}

	fillColor := getSessionColor(slot)
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	loadFont(dc, slotTimeFontSize, FontStyleBold)
	dc.SetColor(slotTextColor)
	txtX := x + float64(dayPaddingX) + 8
	txtY := slotY + 18
	dc.DrawStringAnchored(slot.start.Format("15:04")+"-"+slot.end.Format("15:04"), txtX, txtY, 0, 0)

	if slotHeight > 25 && slot.number > 0 {
		loadFont(dc, slotTimeFontSize-2)
		dc.DrawStringAnchored("#"+strconv.Itoa(slot.number), txtX, txtY+16, 0, 0)
	}
}

// getSessionColor возвращает цвет занятия по его статусу
func getSessionColor(slot previewSlot) color.RGBA {
	switch {
	case slot.holiday:
		return sessionHolidayColor
	case slot.rescheduled:
		return sessionRescheduledColor
	default:
		return sessionColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, dayWidth int) {
	legendX := float64(leftLabelsWidth + totalDaysInWeek*dayWidth + 10)
	legendY := float64(imageHeight) - 100.0

	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{"Session", sessionColor},
		{"Rescheduled", sessionRescheduledColor},
		{"Holiday", sessionHolidayColor},
	}

	boxW := 20.0
	boxH := 14.0
	liY := legendY + 22

	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(legendX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, legendX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatHourLabel(h int) string {
	if h < 10 {
		return "0" + strconv.Itoa(h) + ":00"
	}
	return strconv.Itoa(h) + ":00"
}
