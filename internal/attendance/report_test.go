package attendance

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDaily() DailyReport {
	return DailyReport{model.DailyAttendancePayload{
		Date: "2024-01-15",
		TeacherAttendances: []model.TeacherAttendance{
			{TeacherID: 1, TeacherName: "Ann", Status: model.AttendanceOnTime},
			{TeacherID: 2, TeacherName: "Ben", Status: model.AttendanceLate},
			{TeacherID: 3, TeacherName: "Cat", Status: model.AttendanceFieldWork},
			{TeacherID: 4, TeacherName: "Dan", Status: model.AttendanceOnTime},
		},
	}}
}

func TestCalculateStatsDaily(t *testing.T) {
	assert.Equal(t, Stats{Total: 4, OnTime: 2, Late: 1, FieldWork: 1}, CalculateStats(sampleDaily()))

	rep := sampleDaily()
	assert.Equal(t, Stats{Total: 4, OnTime: 2, Late: 1, FieldWork: 1}, CalculateStats(&rep))
	assert.Equal(t, Stats{}, CalculateStats(DailyReport{}))
}

func TestCalculateStatsFromSummary(t *testing.T) {
	weekly := WeeklyReport{model.PeriodAttendancePayload{
		StartDate:      "2024-01-15",
		EndDate:        "2024-01-21",
		TeacherSummary: model.TeacherSummary{TotalRecords: 30, OnTime: 20, Late: 6, FieldWork: 3, Absent: 1},
	}}
	assert.Equal(t, Stats{Total: 30, OnTime: 20, Late: 6, FieldWork: 3}, CalculateStats(weekly))

	monthly := MonthlyReport{model.PeriodAttendancePayload{
		Month:          "2024-01",
		TeacherSummary: model.TeacherSummary{OnTime: 5, Late: 2, FieldWork: 1},
	}}
	assert.Equal(t, Stats{Total: 8, OnTime: 5, Late: 2, FieldWork: 1}, CalculateStats(monthly))
	assert.Equal(t, "2024-01", monthly.Period())
	assert.Equal(t, KindMonthly, monthly.Kind())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("weekly")
	require.NoError(t, err)
	assert.Equal(t, KindWeekly, k)

	_, err = ParseKind("yearly")
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	at := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	data, err := ExportJSON(sampleDaily(), at)
	require.NoError(t, err)

	var decoded struct {
		Kind   string `json:"kind"`
		Stats  Stats  `json:"stats"`
		Report struct {
			TeacherAttendances []model.TeacherAttendance `json:"teacher_attendances"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "daily", decoded.Kind)
	assert.Equal(t, 2, decoded.Stats.OnTime)
	assert.Len(t, decoded.Report.TeacherAttendances, 4)

	assert.Equal(t, "attendance_daily_2024-01-15.json", FileName(sampleDaily(), at, "json"))
}

func TestExportXLSX(t *testing.T) {
	data, err := ExportXLSX(sampleDaily())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "4", v)

	name, err := f.GetCellValue(teachersSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Ben", name)

	weekly := WeeklyReport{model.PeriodAttendancePayload{StartDate: "2024-01-15", EndDate: "2024-01-21"}}
	data, err = ExportXLSX(weekly)
	require.NoError(t, err)
	f2, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f2.Close()
	assert.Equal(t, []string{summarySheet}, f2.GetSheetList())
}
