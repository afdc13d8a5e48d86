package common

import (
	"context"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	Admin      *model.Admin
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadAdmin загружает администратора в контекст
func (hc *HandlerContext) LoadAdmin() error {
	admin, err := hc.Handler.AdminService.RequireAdmin(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	hc.Admin = admin
	return nil
}

// Data - callback data нажатой кнопки
func (hc *HandlerContext) Data() string {
	return hc.Callback.Data
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение с кнопкой
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	return hc.Show(Screen{Text: text, Keyboard: keyboard})
}

// Show перерисовывает сообщение с кнопкой
func (hc *HandlerContext) Show(screen Screen) error {
	if hc.Message == nil {
		return ErrNoMessage
	}
	return EditScreen(hc.Ctx, hc.Bot, hc.ChatID, hc.Message.ID, screen)
}

// DeleteMessage удаляет сообщение с кнопкой
func (hc *HandlerContext) DeleteMessage() error {
	if hc.Message == nil {
		return ErrNoMessage
	}
	return DeleteMessage(hc.Ctx, hc.Bot, hc.ChatID, hc.Message.ID)
}

// SendMessage отправляет новое сообщение
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	_, err := SendScreen(hc.Ctx, hc.Bot, hc.ChatID, Screen{Text: text, Keyboard: keyboard})
	return err
}

// Session загружает сессию пользователя
func (hc *HandlerContext) Session() (*state.Session, error) {
	return hc.Handler.Sessions.Get(hc.Ctx, hc.TelegramID)
}

// UpdateSession изменяет сессию под блокировкой пользователя.
// Сообщение с кнопкой запоминается как окно, которое потом перерисовывается.
func (hc *HandlerContext) UpdateSession(fn func(s *state.Session) error) (*state.Session, error) {
	return hc.Handler.Sessions.Update(hc.Ctx, hc.TelegramID, func(s *state.Session) error {
		if hc.Message != nil {
			s.ChatID = hc.ChatID
			s.MessageID = hc.Message.ID
		}
		return fn(s)
	})
}

// ClearState очищает состояние пользователя
func (hc *HandlerContext) ClearState() error {
	return hc.Handler.Sessions.ClearState(hc.Ctx, hc.TelegramID)
}
