package schedule

import (
	"context"
	"fmt"
	"html"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleClassImage отправляет картинку недели preview отдельным сообщением
func HandleClassImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		week := common.PageArg(common.CallbackArgs(hc.Data(), ClassImage))
		if err := sendPreviewImage(hc, week); err != nil {
			common.Report(hc, err, "preview_image")
			return
		}
		hc.Answer("")
	})
}

// HandlePreviewWeek листает картинку: старое фото удаляется, новое отправляется
func HandlePreviewWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		week := common.PageArg(common.CallbackArgs(hc.Data(), PreviewWeek))
		if err := hc.DeleteMessage(); err != nil {
			h.Logger.Warn("Failed to delete preview image", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}
		if err := sendPreviewImage(hc, week); err != nil {
			common.Report(hc, err, "preview_image")
			return
		}
		hc.Answer("")
	})
}

// HandlePreviewClose убирает картинку
func HandlePreviewClose(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := hc.DeleteMessage(); err != nil {
			common.HandleError(hc, err, "close_preview_image")
			return
		}
		hc.Answer("")
	})
}

func sendPreviewImage(hc *common.HandlerContext, week int) error {
	s, err := hc.Session()
	if err != nil {
		return err
	}
	if s.Class == nil || s.Class.Preview == nil || len(s.Class.Preview.Sessions) == 0 {
		return common.ErrSessionExpired
	}

	preview := s.Class.Preview
	total := common.PreviewWeeks(preview)
	if week >= total {
		week = total - 1
	}
	if week < 0 {
		week = 0
	}

	png, err := common.GeneratePreviewImage(s.Class.Draft.ScheduleName, preview, week)
	if err != nil {
		return fmt.Errorf("render preview image: %w", err)
	}

	kb := keyboard.NewBuilder().
		AddRow(keyboard.WeekPagination(PreviewWeek, week, total)).
		Row(keyboard.Button("✖️ Close", PreviewClose)).
		Build()

	caption := fmt.Sprintf("🖼 %s · week %d of %d", previewCaption(s.Class.Draft.ScheduleName), week+1, total)
	_, err = common.SendPhoto(hc.Ctx, hc.Bot, hc.ChatID, fmt.Sprintf("preview_week_%d.png", week+1), png, caption, kb)
	return err
}

func previewCaption(name string) string {
	if name == "" {
		return string(model.ScheduleTypeClass)
	}
	return html.EscapeString(common.Truncate(name, 60))
}
