package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireAdmin проверяет что отправитель - администратор
// Возвращает admin и true если OK, nil и false если нет
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Admin, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	admin, err := h.deps.AdminService.RequireAdmin(ctx, telegramID)
	if err != nil {
		if errors.Is(err, service.ErrNotAdmin) {
			h.logger.Debug("Command from non-admin", zap.Int64("telegram_id", telegramID))
		} else {
			h.logger.Error("Failed to check admin", zap.Int64("telegram_id", telegramID), zap.Error(err))
		}
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return nil, false
	}

	return admin, true
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	h.sendMessage(ctx, b, chatID, common.ErrorMessage(err))
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendScreen отправляет окно и логирует если не удалось
func (h *Handlers) sendScreen(ctx context.Context, b *bot.Bot, chatID int64, screen common.Screen) {
	if _, err := common.SendScreen(ctx, b, chatID, screen); err != nil {
		h.logger.Error("Failed to send screen",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
