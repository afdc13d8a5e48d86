package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/reports"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/schedule"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/students"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/teachers"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Prefixes
// ========================
// Каждый раздел бота владеет своими префиксами callback data

var (
	// мастер расписаний: обёртка, класс, группа, событие, картинка превью
	schedulePrefixes = []string{"sw:", "sc:", "sg:", "se:", "pi:"}
	// преподаватели: список, фильтры, карточка, форма, удаление
	teacherPrefixes  = []string{"tl:", "tf:", "tv:", "te:", "td:"}
	reportPrefixes   = []string{"at:"}
	studentPrefixes  = []string{"st:"}
)

// Section возвращает раздел, которому принадлежит callback data
func Section(data string) string {
	switch {
	case data == keyboard.MainMenuData, data == keyboard.NoopData,
		data == common.MenuHistory, data == common.MenuDigest:
		return "common"
	case hasAnyPrefix(data, schedulePrefixes):
		return "schedule"
	case hasAnyPrefix(data, teacherPrefixes):
		return "teachers"
	case hasAnyPrefix(data, reportPrefixes):
		return "attendance"
	case hasAnyPrefix(data, studentPrefixes):
		return "students"
	}
	return ""
}

func hasAnyPrefix(data string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(data, p) {
			return true
		}
	}
	return false
}

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch Section(data) {
	case "common":
		switch data {
		case keyboard.MainMenuData:
			common.HandleBackToMain(ctx, b, callback, h)
		case keyboard.NoopData:
			common.HandleNoop(ctx, b, callback, h)
		case common.MenuHistory:
			common.HandleHistory(ctx, b, callback, h)
		case common.MenuDigest:
			common.HandleDigestToggle(ctx, b, callback, h)
		}
	case "schedule":
		schedule.Route(ctx, b, callback, h)
	case "teachers":
		teachers.Route(ctx, b, callback, h)
	case "attendance":
		reports.Route(ctx, b, callback, h)
	case "students":
		students.Route(ctx, b, callback, h)
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("telegram_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
