package handlers

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/reports"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/schedule"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/students"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/teachers"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 <b>Commands</b>\n\n" +
	"/menu - Main menu\n" +
	"/schedule - Create a class or event schedule\n" +
	"/teachers - Teacher list\n" +
	"/newteacher - Add a teacher\n" +
	"/newstudent - Register a student\n" +
	"/attendance - Attendance reports\n" +
	"/history - Recent changes made through the bot\n" +
	"/digest - Turn the daily digest on or off\n" +
	"/branch - Show branches or set your default one\n" +
	"/cancel - Stop the current form\n\n" +
	"While a form waits for text, just send it as a message."

// HandleStart обрабатывает команду /start: регистрирует пользователя и показывает меню
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	user := update.Message.From
	chatID := update.Message.Chat.ID

	admin, err := h.deps.AdminService.RegisterAdmin(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Int64("telegram_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, err)
		return
	}

	if !admin.IsAdmin {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf(
			"👋 Hi, %s!\n\nThis bot is for school administrators only.\n"+
				"Ask an administrator to add your Telegram ID: <code>%d</code>",
			html.EscapeString(user.FirstName), user.ID))
		return
	}

	h.sendScreen(ctx, b, chatID, common.MainMenuScreen(admin))
}

// HandleMenu обрабатывает команду /menu
func (h *Handlers) HandleMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.MainMenuScreen(admin))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel - закрывает все формы
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.deps.Debouncer.Cancel(telegramID)

	s, err := h.deps.Sessions.Get(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to load session", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	if s.IsEmpty() {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "ℹ️ Nothing to cancel.")
		return
	}

	if err := h.deps.Sessions.ClearState(ctx, telegramID); err != nil {
		h.logger.Error("Failed to clear session", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Cancelled.\n\nUse /menu to start again.")
}

// HandleSchedule обрабатывает команду /schedule
func (h *Handlers) HandleSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.open(ctx, b, update, "open_wizard", func(telegramID, chatID int64) error {
		return schedule.StartWizard(ctx, b, h.deps, telegramID, chatID)
	})
}

// HandleTeachers обрабатывает команду /teachers
func (h *Handlers) HandleTeachers(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.open(ctx, b, update, "open_teachers", func(telegramID, chatID int64) error {
		return teachers.StartList(ctx, b, h.deps, telegramID, chatID)
	})
}

// HandleNewTeacher обрабатывает команду /newteacher
func (h *Handlers) HandleNewTeacher(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}
	if err := teachers.StartNew(ctx, b, h.deps, admin, update.Message.Chat.ID); err != nil {
		h.logger.Error("Failed to open teacher form", zap.Int64("telegram_id", admin.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
	}
}

// HandleNewStudent обрабатывает команду /newstudent
func (h *Handlers) HandleNewStudent(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.open(ctx, b, update, "open_student_form", func(telegramID, chatID int64) error {
		return students.StartForm(ctx, b, h.deps, chatID, telegramID)
	})
}

// HandleAttendance обрабатывает команду /attendance
func (h *Handlers) HandleAttendance(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.open(ctx, b, update, "open_attendance", func(telegramID, chatID int64) error {
		return reports.StartReport(ctx, b, h.deps, telegramID, chatID)
	})
}

// HandleHistory обрабатывает команду /history
func (h *Handlers) HandleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAdmin(ctx, b, update); !ok {
		return
	}

	events, err := h.deps.AuditService.Recent(ctx)
	if err != nil {
		h.logger.Error("Failed to load history", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.HistoryScreen(events, h.deps.Location))
}

// HandleDigest обрабатывает команду /digest
func (h *Handlers) HandleDigest(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	enabled, err := h.deps.AdminService.ToggleDigest(ctx, admin.TelegramID)
	if err != nil {
		h.logger.Error("Failed to toggle digest", zap.Int64("telegram_id", admin.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	if enabled {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🔔 Daily digest is on.")
	} else {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🔕 Daily digest is off.")
	}
}

// HandleBranch обрабатывает команду /branch [id]: без аргумента показывает филиалы
func (h *Handlers) HandleBranch(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	branches, err := h.deps.ScheduleService.Branches(ctx)
	if err != nil {
		h.logger.Error("Failed to load branches", zap.Error(err))
		h.sendError(ctx, b, chatID, err)
		return
	}

	arg := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/branch"))
	if arg == "" {
		h.sendMessage(ctx, b, chatID, FormatBranches(branches, admin.DefaultBranchID))
		return
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrInvalidFormat)
		return
	}
	name := ""
	for _, br := range branches {
		if br.ID == id {
			name = br.NameEn
		}
	}
	if name == "" {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("❌ Branch #%d not found. Send /branch to see the list.", id))
		return
	}

	if err := h.deps.AdminService.SetDefaultBranch(ctx, admin.TelegramID, id); err != nil {
		h.logger.Error("Failed to set default branch", zap.Int64("telegram_id", admin.TelegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.sendMessage(ctx, b, chatID, "🏫 Default branch: <b>"+html.EscapeString(name)+"</b>")
}

// HandleTextMessage передаёт текст разделу, который ждёт ввод.
// При ошибке ожидание ввода остаётся, пользователь видит причину.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.deps.Sessions.GetState(ctx, telegramID)

	input := InputHandlerFor(currentState)
	if input == nil {
		h.logger.Debug("No active input, ignoring message",
			zap.Int64("telegram_id", telegramID),
			zap.String("state", string(currentState)))
		return
	}

	if _, ok := h.requireAdmin(ctx, b, update); !ok {
		return
	}

	if err := input(ctx, b, h.deps, telegramID, update.Message.Text); err != nil {
		if common.IsUserError(err) {
			h.logger.Debug("Input rejected",
				zap.Int64("telegram_id", telegramID),
				zap.String("state", string(currentState)),
				zap.Error(err))
		} else {
			h.logger.Error("Failed to handle input",
				zap.Int64("telegram_id", telegramID),
				zap.String("state", string(currentState)),
				zap.Error(err))
		}
		h.sendError(ctx, b, update.Message.Chat.ID, err)
	}
}

// InputFunc применяет текст пользователя к открытой форме раздела
type InputFunc func(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID int64, text string) error

// InputHandlerFor возвращает раздел, который ждёт текст в этом состоянии
func InputHandlerFor(st state.UserState) InputFunc {
	switch {
	case st == state.StateNone:
		return nil
	case schedule.IsInputState(st):
		return schedule.HandleInput
	case teachers.IsInputState(st):
		return teachers.HandleInput
	case reports.IsInputState(st):
		return reports.HandleInput
	case students.IsInputState(st):
		return students.HandleInput
	}
	return nil
}

// open проверяет права и открывает окно раздела новым сообщением
func (h *Handlers) open(ctx context.Context, b *bot.Bot, update *models.Update, op string, fn func(telegramID, chatID int64) error) {
	admin, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}
	if err := fn(admin.TelegramID, update.Message.Chat.ID); err != nil {
		h.logger.Error("Failed to open window",
			zap.String("operation", op),
			zap.Int64("telegram_id", admin.TelegramID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
	}
}
