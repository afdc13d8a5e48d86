package common

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Callback data пунктов главного меню
const (
	MenuSchedule   = "sw:open"
	MenuTeachers   = "tl:open"
	MenuStudent    = "st:open"
	MenuAttendance = "at:open"
	MenuHistory    = "hist"
	MenuDigest     = "digest"
)

// MainMenuScreen формирует главное меню администратора
func MainMenuScreen(admin *model.Admin) Screen {
	digest := "🔕 Daily digest: off"
	if admin.DigestEnabled {
		digest = "🔔 Daily digest: on"
	}

	text := fmt.Sprintf("🏫 <b>School admin</b>\n\nHi, %s! What would you like to do?",
		html.EscapeString(admin.DisplayName()))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 New schedule", MenuSchedule)).
		Row(
			keyboard.Button("👩‍🏫 Teachers", MenuTeachers),
			keyboard.Button("🧑‍🎓 New student", MenuStudent),
		).
		Row(
			keyboard.Button("📊 Attendance", MenuAttendance),
			keyboard.Button("🕘 History", MenuHistory),
		).
		Row(keyboard.Button(digest, MenuDigest)).
		Build()

	return Screen{Text: text, Keyboard: kb}
}

// HandleBackToMain закрывает все формы и показывает главное меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithAdmin(ctx, b, callback, h, func(hc *HandlerContext) {
		h.Debouncer.Cancel(hc.TelegramID)
		if err := hc.ClearState(); err != nil {
			h.Logger.Warn("Failed to clear session", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}

		if err := hc.Show(MainMenuScreen(hc.Admin)); err != nil {
			HandleError(hc, err, "show_main_menu")
			return
		}
		hc.Answer("")
	})
}

// HandleNoop подтверждает нажатие кнопки-индикатора
func HandleNoop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	AnswerCallback(ctx, b, callback.ID, "")
}

// HistoryScreen - последние действия, сделанные через бота
func HistoryScreen(events []*model.AuditEvent, loc *time.Location) Screen {
	return Screen{
		Text:     formatting.FormatAuditEvents(events, loc),
		Keyboard: keyboard.NewBuilder().AddBackToMainButton().Build(),
	}
}

// HandleHistory показывает историю действий
func HandleHistory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithAdmin(ctx, b, callback, h, func(hc *HandlerContext) {
		events, err := h.AuditService.Recent(hc.Ctx)
		if err != nil {
			HandleError(hc, err, "load_history")
			return
		}
		if err := hc.Show(HistoryScreen(events, h.Location)); err != nil {
			HandleError(hc, err, "show_history")
			return
		}
		hc.Answer("")
	})
}

// HandleDigestToggle включает и выключает ежедневную сводку
func HandleDigestToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithAdmin(ctx, b, callback, h, func(hc *HandlerContext) {
		enabled, err := h.AdminService.ToggleDigest(hc.Ctx, hc.TelegramID)
		if err != nil {
			HandleError(hc, err, "toggle_digest")
			return
		}
		hc.Admin.DigestEnabled = enabled

		if err := hc.Show(MainMenuScreen(hc.Admin)); err != nil {
			HandleError(hc, err, "show_main_menu")
			return
		}

		answer := "🔕 Daily digest disabled"
		if enabled {
			answer = "🔔 Daily digest enabled"
		}
		LogAndAnswer(hc, "Digest toggled", answer)
	})
}
