package teachers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callbacks раздела преподавателей (tl:, tf:, tv:, te:, td:)
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Список =====
	case data == Open:
		HandleOpen(ctx, b, callback, h)
	case data == Back:
		HandleBack(ctx, b, callback, h)
	case strings.HasPrefix(data, Page):
		HandlePage(ctx, b, callback, h)
	case data == Search:
		HandleSearch(ctx, b, callback, h)
	case data == FilterActive:
		HandleFilterActive(ctx, b, callback, h)
	case strings.HasPrefix(data, FilterBranches):
		HandleFilterBranches(ctx, b, callback, h)
	case strings.HasPrefix(data, FilterBranch):
		HandleFilterBranch(ctx, b, callback, h)
	case data == FilterClear:
		HandleFilterClear(ctx, b, callback, h)
	case strings.HasPrefix(data, View):
		HandleView(ctx, b, callback, h)

	// ===== Форма =====
	case data == New:
		HandleNew(ctx, b, callback, h)
	case strings.HasPrefix(data, Edit):
		HandleEdit(ctx, b, callback, h)
	case data == Show:
		HandleShow(ctx, b, callback, h)
	case strings.HasPrefix(data, Field):
		HandleField(ctx, b, callback, h)
	case strings.HasPrefix(data, Type):
		HandleType(ctx, b, callback, h)
	case data == ToggleActive:
		HandleToggleActive(ctx, b, callback, h)
	case strings.HasPrefix(data, Branches):
		HandleBranches(ctx, b, callback, h)
	case strings.HasPrefix(data, Branch):
		HandleBranch(ctx, b, callback, h)
	case data == Save:
		HandleSave(ctx, b, callback, h)
	case data == Cancel:
		HandleCancel(ctx, b, callback, h)
	case data == StopInput:
		HandleStopInput(ctx, b, callback, h)

	// ===== Удаление =====
	case strings.HasPrefix(data, Delete):
		HandleDelete(ctx, b, callback, h)
	case data == DeleteCancel:
		HandleDeleteCancel(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown teachers callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
