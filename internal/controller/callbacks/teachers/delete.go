package teachers

import (
	"context"
	"strconv"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleDelete просит ввести имя преподавателя для подтверждения удаления
func HandleDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), Delete), 0)
		if err != nil {
			common.Report(hc, err, "ask_delete_teacher")
			return
		}

		teacher, err := h.TeacherService.Get(hc.Ctx, id)
		if err != nil {
			common.HandleError(hc, err, "ask_delete_teacher")
			return
		}

		if _, err := hc.UpdateSession(func(s *state.Session) error {
			s.Teacher = nil
			s.SetState(state.StateTeacherConfirm, map[string]string{"id": strconv.FormatInt(teacher.ID, 10)})
			return nil
		}); err != nil {
			common.HandleError(hc, err, "ask_delete_teacher")
			return
		}

		if err := hc.Show(ConfirmDeleteScreen(teacher)); err != nil {
			common.HandleError(hc, err, "ask_delete_teacher")
			return
		}
		hc.Answer("")
	})
}

// HandleDeleteCancel возвращает к карточке без удаления
func HandleDeleteCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		var raw string
		if _, err := hc.UpdateSession(func(s *state.Session) error {
			if s.State == state.StateTeacherConfirm {
				raw = s.Get("id")
			}
			s.ClearInput()
			return nil
		}); err != nil {
			common.HandleError(hc, err, "cancel_delete_teacher")
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			// подтверждение уже закрыто, показываем список
			updateList(hc, "cancel_delete_teacher", func(s *state.Session) error { return nil })
			return
		}

		teacher, err := h.TeacherService.Get(hc.Ctx, id)
		if err != nil {
			common.HandleError(hc, err, "cancel_delete_teacher")
			return
		}
		if err := hc.Show(DetailScreen(teacher)); err != nil {
			common.HandleError(hc, err, "show_teacher")
			return
		}
		hc.Answer("Nothing was deleted")
	})
}

// confirmDelete удаляет преподавателя, если введённое имя совпало.
// При несовпадении ожидание ввода остаётся.
func confirmDelete(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID int64, typed string) error {
	s, err := h.Sessions.Get(ctx, telegramID)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(s.Get("id"), 10, 64)
	if err != nil {
		return common.ErrSessionExpired
	}

	teacher, err := h.TeacherService.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := h.TeacherService.Delete(ctx, telegramID, teacher, typed); err != nil {
		return err
	}

	s, err = h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		s.ClearInput()
		if s.TeacherList != nil {
			s.TeacherList.Page = 0
		}
		return nil
	})
	if err != nil {
		return err
	}
	return redraw(ctx, b, s, DeletedScreen(teacher.FullName()))
}
