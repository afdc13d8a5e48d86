package attendance

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// Kind - вид отчёта, совпадает с названием эндпоинта
type Kind string

const (
	KindDaily   Kind = "daily"
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
)

// ParseKind проверяет вид отчёта из callback данных
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindDaily, KindWeekly, KindMonthly:
		return k, nil
	default:
		return "", fmt.Errorf("unknown report kind %q", s)
	}
}

// Report - отчёт одного из трёх видов. Вид определяется эндпоинтом,
// а не наличием полей в ответе.
type Report interface {
	Kind() Kind
	// Period - человекочитаемый период отчёта
	Period() string
}

type DailyReport struct {
	model.DailyAttendancePayload
}

type WeeklyReport struct {
	model.PeriodAttendancePayload
}

type MonthlyReport struct {
	model.PeriodAttendancePayload
}

func (DailyReport) Kind() Kind   { return KindDaily }
func (WeeklyReport) Kind() Kind  { return KindWeekly }
func (MonthlyReport) Kind() Kind { return KindMonthly }

func (r DailyReport) Period() string { return r.Date }

func (r WeeklyReport) Period() string { return r.StartDate + " - " + r.EndDate }

func (r MonthlyReport) Period() string {
	if r.Month != "" {
		return r.Month
	}
	return r.StartDate + " - " + r.EndDate
}

// Stats - общая форма карточек статистики
type Stats struct {
	Total     int `json:"total"`
	OnTime    int `json:"onTime"`
	Late      int `json:"late"`
	FieldWork int `json:"fieldWork"`
}

// CalculateStats считает карточки: дневной отчёт по отметкам преподавателей,
// недельный и месячный по teacher_summary
func CalculateStats(r Report) Stats {
	switch rep := r.(type) {
	case DailyReport:
		return dailyStats(rep.TeacherAttendances)
	case *DailyReport:
		return dailyStats(rep.TeacherAttendances)
	case WeeklyReport:
		return summaryStats(rep.TeacherSummary)
	case *WeeklyReport:
		return summaryStats(rep.TeacherSummary)
	case MonthlyReport:
		return summaryStats(rep.TeacherSummary)
	case *MonthlyReport:
		return summaryStats(rep.TeacherSummary)
	default:
		return Stats{}
	}
}

func dailyStats(records []model.TeacherAttendance) Stats {
	s := Stats{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case model.AttendanceOnTime:
			s.OnTime++
		case model.AttendanceLate:
			s.Late++
		case model.AttendanceFieldWork:
			s.FieldWork++
		}
	}
	return s
}

func summaryStats(sum model.TeacherSummary) Stats {
	total := sum.TotalRecords
	if total == 0 {
		total = sum.OnTime + sum.Late + sum.FieldWork + sum.Absent
	}
	return Stats{
		Total:     total,
		OnTime:    sum.OnTime,
		Late:      sum.Late,
		FieldWork: sum.FieldWork,
	}
}

// OnTimeRate - доля пришедших вовремя, 0 для пустого отчёта
func (s Stats) OnTimeRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.OnTime) / float64(s.Total)
}

// FileName - имя файла выгрузки, например attendance_daily_2024-01-15.json
func FileName(r Report, at time.Time, ext string) string {
	return fmt.Sprintf("attendance_%s_%s.%s", r.Kind(), at.Format("2006-01-02"), ext)
}
