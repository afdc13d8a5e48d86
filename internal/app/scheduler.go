package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/school_admin_bot/internal/service"
	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// auditRetentionDays - сколько дней хранится журнал действий
const auditRetentionDays = 90

const (
	sweepSpec     = "@hourly"
	retentionSpec = "30 3 * * *"
)

// DigestSender доставляет текст сводки администратору (личный чат = telegram id)
type DigestSender func(ctx context.Context, chatID int64, text string) error

// Sweeper очищает протухшие сессии хранилища в памяти
type Sweeper interface {
	Sweep() int
}

// Scheduler управляет фоновыми задачами по расписанию cron в часовом поясе школы
type Scheduler struct {
	adminService      *service.AdminService
	attendanceService *service.AttendanceService
	auditService      *service.AuditService
	send              DigestSender
	sweeper           Sweeper
	digestHour        int
	cron              *cron.Cron
	logger            *zap.Logger
}

// NewScheduler создаёт новый планировщик. sweeper может быть nil (сессии в Redis),
// auditService может быть nil (журнал не чистится).
func NewScheduler(
	adminService *service.AdminService,
	attendanceService *service.AttendanceService,
	auditService *service.AuditService,
	send DigestSender,
	sweeper Sweeper,
	digestHour int,
	location *time.Location,
	logger *zap.Logger,
) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	cronLog := cronLogger{logger.Sugar()}
	return &Scheduler{
		adminService:      adminService,
		attendanceService: attendanceService,
		auditService:      auditService,
		send:              send,
		sweeper:           sweeper,
		digestHour:        digestHour,
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger: logger,
	}
}

// DigestSpec - cron-выражение ежедневной сводки
func DigestSpec(hour int) string {
	return fmt.Sprintf("0 %d * * *", hour)
}

// Start регистрирует задачи и запускает cron
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("Starting background scheduler", zap.Int("digest_hour", s.digestHour))

	if _, err := s.cron.AddFunc(DigestSpec(s.digestHour), func() {
		if err := s.SendDigest(ctx); err != nil {
			s.logger.Error("Failed to send daily digest", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule digest: %w", err)
	}

	if s.sweeper != nil {
		if _, err := s.cron.AddFunc(sweepSpec, s.sweepSessions); err != nil {
			return fmt.Errorf("schedule session sweep: %w", err)
		}
	}

	if s.auditService != nil {
		if _, err := s.cron.AddFunc(retentionSpec, func() { s.pruneAudit(ctx) }); err != nil {
			return fmt.Errorf("schedule audit retention: %w", err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop останавливает cron и ждёт завершения запущенных задач
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	<-s.cron.Stop().Done()
}

// SendDigest отправляет сегодняшние карточки посещаемости всем подписанным администраторам.
// Ошибки доставки отдельным администраторам собираются и не прерывают рассылку.
func (s *Scheduler) SendDigest(ctx context.Context) error {
	recipients, err := s.adminService.DigestRecipients(ctx)
	if err != nil {
		return fmt.Errorf("load digest recipients: %w", err)
	}
	if len(recipients) == 0 {
		s.logger.Info("No digest recipients")
		return nil
	}

	res, err := s.attendanceService.Fetch(ctx, attendance.KindDaily, s.attendanceService.Today())
	if err != nil {
		return err
	}
	text := DigestText(res)

	var errs error
	sent := 0
	for _, admin := range recipients {
		if err := s.send(ctx, admin.TelegramID, text); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("send digest to %d: %w", admin.TelegramID, err))
			continue
		}
		sent++
	}

	s.logger.Info("Daily digest sent",
		zap.Int("recipients", len(recipients)),
		zap.Int("sent", sent))
	return errs
}

// DigestText - текст ежедневной сводки
func DigestText(res *service.ReportResult) string {
	return "🌙 <b>Daily digest</b>\n\n" + formatting.FormatStatCards(res.Report, res.Stats) +
		"\n\nTurn off with /digest"
}

// sweepSessions удаляет протухшие сессии из памяти
func (s *Scheduler) sweepSessions() {
	if removed := s.sweeper.Sweep(); removed > 0 {
		s.logger.Info("Expired sessions removed", zap.Int("count", removed))
	}
}

// pruneAudit удаляет старые события журнала
func (s *Scheduler) pruneAudit(ctx context.Context) {
	removed, err := s.auditService.Prune(ctx, auditRetentionDays)
	if err != nil {
		s.logger.Error("Failed to prune audit events", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("Old audit events removed", zap.Int64("count", removed))
	}
}

// cronLogger пишет служебные сообщения cron в zap
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
