package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type digestAdmins struct {
	recipients []*model.Admin
}

func (d *digestAdmins) Create(context.Context, *model.Admin) error { return nil }
func (d *digestAdmins) GetByTelegramID(context.Context, int64) (*model.Admin, error) {
	return nil, nil
}
func (d *digestAdmins) Update(context.Context, *model.Admin) error          { return nil }
func (d *digestAdmins) SetDigestEnabled(context.Context, int64, bool) error { return nil }
func (d *digestAdmins) ListDigestRecipients(context.Context) ([]*model.Admin, error) {
	return d.recipients, nil
}

type dailyAPI struct{}

func (dailyAPI) Report(_ context.Context, _ attendance.Kind, date string) (attendance.Report, error) {
	return attendance.DailyReport{DailyAttendancePayload: model.DailyAttendancePayload{
		Date: date,
		TeacherAttendances: []model.TeacherAttendance{
			{Status: model.AttendanceOnTime},
			{Status: model.AttendanceLate},
		},
	}}, nil
}

func TestDigestSpecRunsAtLocalHour(t *testing.T) {
	bkk := time.FixedZone("ICT", 7*3600)
	sched, err := cron.ParseStandard(DigestSpec(20))
	require.NoError(t, err)

	// 19:30 по Бангкоку - сводка сегодня в 20:00
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC).In(bkk)
	assert.True(t, time.Date(2024, 3, 15, 20, 0, 0, 0, bkk).Equal(sched.Next(now)))

	// ровно 20:00 - уже завтра
	now = time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC).In(bkk)
	assert.True(t, time.Date(2024, 3, 16, 20, 0, 0, 0, bkk).Equal(sched.Next(now)))
}

func TestStartRejectsBadDigestHour(t *testing.T) {
	logger := zap.NewNop()
	admins := service.NewAdminService(&digestAdmins{}, nil, logger)
	reports := service.NewAttendanceService(dailyAPI{}, time.UTC, logger)

	s := NewScheduler(admins, reports, nil, func(context.Context, int64, string) error { return nil }, nil, 25, time.UTC, logger)
	assert.Error(t, s.Start(context.Background()))
}

func TestSendDigest(t *testing.T) {
	logger := zap.NewNop()
	admins := service.NewAdminService(&digestAdmins{recipients: []*model.Admin{
		{TelegramID: 1}, {TelegramID: 2}, {TelegramID: 3},
	}}, nil, logger)
	reports := service.NewAttendanceService(dailyAPI{}, time.UTC, logger)

	var delivered []int64
	var lastText string
	send := func(_ context.Context, chatID int64, text string) error {
		if chatID == 2 {
			return errors.New("bot was blocked by the user")
		}
		delivered = append(delivered, chatID)
		lastText = text
		return nil
	}

	s := NewScheduler(admins, reports, nil, send, nil, 20, time.UTC, logger)
	err := s.SendDigest(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "send digest to 2")
	assert.Equal(t, []int64{1, 3}, delivered)
	assert.Contains(t, lastText, "Daily digest")
	assert.Contains(t, lastText, "Late: <b>1</b>")
}

func TestSendDigestWithoutRecipients(t *testing.T) {
	logger := zap.NewNop()
	admins := service.NewAdminService(&digestAdmins{}, nil, logger)
	reports := service.NewAttendanceService(dailyAPI{}, time.UTC, logger)

	called := false
	s := NewScheduler(admins, reports, nil, func(context.Context, int64, string) error {
		called = true
		return nil
	}, nil, 20, time.UTC, logger)

	require.NoError(t, s.SendDigest(context.Background()))
	assert.False(t, called)
}
