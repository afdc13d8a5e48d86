package controller

import (
	"context"
	"net/http"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/handlers"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

// NewBotController: команды и callbacks работают с одними зависимостями
func NewBotController(botInstance *bot.Bot, deps *callbacktypes.Handler) *BotController {
	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(deps),
		callbackHandler: callbacks.NewHandler(deps),
		logger:          deps.Logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Общие команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/menu", bot.MatchTypeExact, c.handlers.HandleMenu)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Разделы
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/schedule", bot.MatchTypeExact, c.handlers.HandleSchedule)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/teachers", bot.MatchTypeExact, c.handlers.HandleTeachers)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newteacher", bot.MatchTypeExact, c.handlers.HandleNewTeacher)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newstudent", bot.MatchTypeExact, c.handlers.HandleNewStudent)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/attendance", bot.MatchTypeExact, c.handlers.HandleAttendance)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypeExact, c.handlers.HandleHistory)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/digest", bot.MatchTypeExact, c.handlers.HandleDigest)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/branch", bot.MatchTypePrefix, c.handlers.HandleBranch)

	// Обработчик текстовых сообщений (ввод в открытые формы)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "menu", Description: "🏫 Main menu"},
		{Command: "schedule", Description: "📅 New class or event schedule"},
		{Command: "teachers", Description: "👩‍🏫 Teachers"},
		{Command: "newteacher", Description: "➕ Add a teacher"},
		{Command: "newstudent", Description: "🧑‍🎓 Register a student"},
		{Command: "attendance", Description: "📊 Attendance reports"},
		{Command: "history", Description: "🕘 Recent changes"},
		{Command: "digest", Description: "🔔 Daily digest on/off"},
		{Command: "branch", Description: "🏫 Default branch"},
		{Command: "cancel", Description: "✖️ Stop the current form"},
		{Command: "help", Description: "❓ Help"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота в режиме long polling. Блокирует до отмены ctx.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot (long polling)...")
	if _, err := c.bot.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
		c.logger.Warn("Failed to delete webhook", zap.Error(err))
	}
	c.bot.Start(ctx)
	return nil
}

// StartWebhook регистрирует webhook в Telegram и обрабатывает обновления,
// которые приходят в WebhookHandler. Блокирует до отмены ctx.
func (c *BotController) StartWebhook(ctx context.Context, url, secret string) error {
	c.logger.Info("Starting bot (webhook)...", zap.String("url", url))
	if _, err := c.bot.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:         url,
		SecretToken: secret,
	}); err != nil {
		return err
	}
	c.bot.StartWebhook(ctx)
	return nil
}

// WebhookHandler принимает обновления Telegram по HTTP
func (c *BotController) WebhookHandler() http.HandlerFunc {
	return c.bot.WebhookHandler()
}
