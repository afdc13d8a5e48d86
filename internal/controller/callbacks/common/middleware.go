package common

import (
	"context"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithAdmin создаёт HandlerContext и проверяет, что пользователь - администратор.
// При ошибке сам отвечает пользователю.
func WithAdmin(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadAdmin(); err != nil {
		h.Logger.Warn("Admin check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// HandleUserError отвечает на ошибку ввода без уровня Error в логах
func HandleUserError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Debug("Rejected action",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// LogAndAnswer логирует действие и отвечает на callback
func LogAndAnswer(hc *HandlerContext, message string, answer string) {
	fields := []zap.Field{zap.Int64("telegram_id", hc.TelegramID)}
	if hc.Admin != nil {
		fields = append(fields, zap.Int64("admin_id", hc.Admin.ID))
	}
	hc.Handler.Logger.Info(message, fields...)
	hc.Answer(answer)
}

// Report выбирает уровень логирования по типу ошибки
func Report(hc *HandlerContext, err error, operation string) {
	if IsUserError(err) {
		HandleUserError(hc, err, operation)
		return
	}
	HandleError(hc, err, operation)
}
