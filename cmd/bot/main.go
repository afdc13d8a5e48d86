package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/apiclient"
	"github.com/Freeeeeet/school_admin_bot/internal/app"
	"github.com/Freeeeeet/school_admin_bot/internal/config"
	"github.com/Freeeeeet/school_admin_bot/internal/controller"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/httpserver"
	"github.com/Freeeeeet/school_admin_bot/internal/repository"
	"github.com/Freeeeeet/school_admin_bot/internal/service"
	"github.com/Freeeeeet/school_admin_bot/internal/validation"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// closeDelay - сколько висит сообщение об успешном создании расписания
const closeDelay = 1500 * time.Millisecond

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting school admin bot",
		zap.String("environment", cfg.Environment),
		zap.String("api", cfg.APIBaseURL),
		zap.Bool("webhook", cfg.UseWebhook()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// ===== База данных бота =====
	pool, err := app.NewPostgresPool(ctx, cfg.GetDBDSN(), logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		return err
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	checks := []httpserver.Check{{Name: "postgres", Ping: pool.Ping}}

	// ===== Сессии =====
	var (
		store   state.Store
		sweeper app.Sweeper
	)
	if cfg.RedisURL != "" {
		rdb, err := app.NewRedisClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = state.NewRedisStore(rdb, cfg.SessionTTL)
		checks = append(checks, httpserver.Check{Name: "redis", Ping: redisPing(rdb)})
	} else {
		mem := state.NewMemoryStore(cfg.SessionTTL)
		store, sweeper = mem, mem
		logger.Info("REDIS_URL is not set, sessions are kept in memory")
	}

	// ===== Сервисы =====
	api := apiclient.NewClient(cfg.APIBaseURL, cfg.APIToken, cfg.APITimeout, logger)
	validator := validation.New()

	auditService := service.NewAuditService(repository.NewAuditRepository(pool), logger)
	adminService := service.NewAdminService(repository.NewAdminRepository(pool), cfg.IsBootstrapAdmin, logger)
	attendanceService := service.NewAttendanceService(api, cfg.Location, logger)

	debouncer := service.NewDebouncer(cfg.ParticipantDebounce)
	defer debouncer.Stop()

	deps := &callbacktypes.Handler{
		AdminService:      adminService,
		AuditService:      auditService,
		ScheduleService:   service.NewScheduleService(api, api, api, auditService, logger),
		GroupService:      service.NewGroupService(api, api, validator, auditService, logger),
		TeacherService:    service.NewTeacherService(api, validator, auditService, logger),
		StudentService:    service.NewStudentService(api, validator, auditService, logger),
		AttendanceService: attendanceService,
		Sessions:          state.NewManager(store),
		RoomPolicy:        wizard.NewRoomPolicy(cfg),
		Debouncer:         debouncer,
		Location:          cfg.Location,
		APITimeout:        cfg.APITimeout,
		CloseDelay:        closeDelay,
		Logger:            logger,
	}

	// ===== Бот =====
	var opts []bot.Option
	if cfg.UseWebhook() && cfg.WebhookSecret != "" {
		opts = append(opts, bot.WithWebhookSecretToken(cfg.WebhookSecret))
	}
	b, err := bot.New(cfg.TelegramToken, opts...)
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, deps)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// без меню команд бот всё равно работает
		logger.Warn("Bot commands were not set", zap.Error(err))
	}

	scheduler := app.NewScheduler(adminService, attendanceService, auditService, htmlSender(b), sweeper, cfg.DigestHour, cfg.Location, logger)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	// ===== HTTP и получение обновлений =====
	var webhook http.HandlerFunc
	if cfg.UseWebhook() {
		webhook = botController.WebhookHandler()
	}
	server := httpserver.New(cfg.HTTPAddr, httpserver.NewRouter(checks, webhook, logger), logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	g.Go(func() error {
		if cfg.UseWebhook() {
			return botController.StartWebhook(gctx, cfg.WebhookURL, cfg.WebhookSecret)
		}
		return botController.Start(gctx)
	})
	return g.Wait()
}

// htmlSender отправляет сводку личным сообщением с HTML-разметкой
func htmlSender(b *bot.Bot) app.DigestSender {
	return func(ctx context.Context, chatID int64, text string) error {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      text,
			ParseMode: models.ParseModeHTML,
		})
		return err
	}
}

func redisPing(rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
