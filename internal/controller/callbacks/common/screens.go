package common

import (
	"bytes"
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Screen - текст и клавиатура одного окна бота
type Screen struct {
	Text     string
	Keyboard *models.InlineKeyboardMarkup
}

// SendScreen отправляет окно новым сообщением и возвращает его id
func SendScreen(ctx context.Context, b *bot.Bot, chatID int64, screen Screen) (int, error) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      screen.Text,
		ParseMode: models.ParseModeHTML,
	}
	if screen.Keyboard != nil {
		params.ReplyMarkup = screen.Keyboard
	}

	msg, err := b.SendMessage(ctx, params)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// EditScreen перерисовывает существующее сообщение
func EditScreen(ctx context.Context, b *bot.Bot, chatID int64, messageID int, screen Screen) error {
	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      screen.Text,
		ParseMode: models.ParseModeHTML,
	}
	if screen.Keyboard != nil {
		params.ReplyMarkup = screen.Keyboard
	}

	_, err := b.EditMessageText(ctx, params)

	// Игнорируем ошибку "message is not modified" - это не настоящая ошибка
	if IsMessageNotModifiedError(err) {
		return nil
	}
	return err
}

// DeleteMessage удаляет сообщение, ошибка не критична
func DeleteMessage(ctx context.Context, b *bot.Bot, chatID int64, messageID int) error {
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	return err
}

// SendDocument отправляет файл (выгрузка отчёта)
func SendDocument(ctx context.Context, b *bot.Bot, chatID int64, filename string, data []byte, caption string) error {
	_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(data),
		},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	return err
}

// SendPhoto отправляет картинку с клавиатурой
func SendPhoto(ctx context.Context, b *bot.Bot, chatID int64, filename string, data []byte, caption string, keyboard *models.InlineKeyboardMarkup) (int, error) {
	params := &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(data),
		},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	msg, err := b.SendPhoto(ctx, params)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}
