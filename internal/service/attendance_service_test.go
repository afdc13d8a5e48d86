package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAttendanceService_Fetch(t *testing.T) {
	api := &fakeAPI{report: attendance.DailyReport{DailyAttendancePayload: model.DailyAttendancePayload{
		Date: "2024-01-15",
		TeacherAttendances: []model.TeacherAttendance{
			{Status: model.AttendanceOnTime},
			{Status: model.AttendanceLate},
			{Status: model.AttendanceFieldWork},
			{Status: model.AttendanceOnTime},
		},
	}}}
	svc := NewAttendanceService(api, time.UTC, zap.NewNop())

	res, err := svc.Fetch(context.Background(), attendance.KindDaily, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, attendance.Stats{Total: 4, OnTime: 2, Late: 1, FieldWork: 1}, res.Stats)

	_, err = svc.Fetch(context.Background(), attendance.KindDaily, "15/01/2024")
	assert.Error(t, err)
}

func TestAttendanceService_Export(t *testing.T) {
	svc := NewAttendanceService(&fakeAPI{}, time.UTC, zap.NewNop())
	report := attendance.WeeklyReport{PeriodAttendancePayload: model.PeriodAttendancePayload{
		StartDate:      "2024-01-15",
		EndDate:        "2024-01-21",
		TeacherSummary: model.TeacherSummary{TotalRecords: 10, OnTime: 8, Late: 2},
	}}

	name, data, err := svc.Export(report, "json")
	require.NoError(t, err)
	assert.Contains(t, name, "attendance_weekly_")
	assert.Contains(t, string(data), `"onTime": 8`)

	name, data, err = svc.Export(report, "xlsx")
	require.NoError(t, err)
	assert.Contains(t, name, ".xlsx")
	assert.NotEmpty(t, data)

	_, _, err = svc.Export(report, "csv")
	assert.Error(t, err)
}
