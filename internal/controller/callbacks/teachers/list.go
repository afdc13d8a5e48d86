package teachers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleOpen открывает список со сброшенными фильтрами
func HandleOpen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateList(hc, "open_teachers", func(s *state.Session) error {
			s.TeacherList = &state.TeacherListView{}
			s.Teacher = nil
			return nil
		})
	})
}

// HandleBack возвращает к списку, фильтры и страница сохраняются
func HandleBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateList(hc, "back_to_teachers", func(s *state.Session) error {
			s.Teacher = nil
			return nil
		})
	})
}

// HandlePage листает список
func HandlePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := common.PageArg(common.CallbackArgs(hc.Data(), Page))
		updateList(hc, "teachers_page", func(s *state.Session) error {
			listView(s).Page = page
			return nil
		})
	})
}

// HandleSearch ждёт строку поиска текстом
func HandleSearch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateList(hc, "teachers_search", func(s *state.Session) error {
			listView(s)
			s.SetState(state.StateTeacherSearch, nil)
			return nil
		})
	})
}

// HandleFilterActive переключает фильтр активности
func HandleFilterActive(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateList(hc, "teachers_filter_active", func(s *state.Session) error {
			v := listView(s)
			v.Active = nextActive(v.Active)
			v.Page = 0
			return nil
		})
	})
}

// HandleFilterBranches показывает выбор филиала для фильтра
func HandleFilterBranches(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := common.PageArg(common.CallbackArgs(hc.Data(), FilterBranches))

		branches, err := h.ScheduleService.Branches(hc.Ctx)
		if err != nil {
			common.HandleError(hc, err, "load_branches")
			return
		}
		s, err := hc.Session()
		if err != nil {
			common.HandleError(hc, err, "load_session")
			return
		}

		var selected *int64
		if s.TeacherList != nil {
			selected = s.TeacherList.BranchID
		}
		items := append([]common.PickerItem{{Label: "All branches", Data: FilterBranch + "0", Selected: selected == nil}},
			common.BranchItems(branches, selected, FilterBranch)...)

		if err := hc.Show(common.PickerScreen("🏫 <b>Filter by branch</b>", items, page, FilterBranches, Back)); err != nil {
			common.HandleError(hc, err, "show_branch_filter")
			return
		}
		hc.Answer("")
	})
}

// HandleFilterBranch применяет фильтр по филиалу, 0 - все филиалы
func HandleFilterBranch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), FilterBranch), 0)
		if err != nil {
			common.Report(hc, err, "teachers_filter_branch")
			return
		}
		updateList(hc, "teachers_filter_branch", func(s *state.Session) error {
			v := listView(s)
			v.BranchID = nil
			if id != 0 {
				v.BranchID = &id
			}
			v.Page = 0
			return nil
		})
	})
}

// HandleFilterClear сбрасывает поиск и фильтры
func HandleFilterClear(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateList(hc, "teachers_filter_clear", func(s *state.Session) error {
			s.TeacherList = &state.TeacherListView{}
			if s.State == state.StateTeacherSearch {
				s.ClearInput()
			}
			return nil
		})
	})
}

// HandleView показывает карточку преподавателя
func HandleView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(hc.Data())
		if err != nil {
			common.Report(hc, fmt.Errorf("%w: %v", common.ErrInvalidFormat, err), "view_teacher")
			return
		}

		teacher, err := h.TeacherService.Get(hc.Ctx, id)
		if err != nil {
			common.HandleError(hc, err, "view_teacher")
			return
		}

		if _, err := hc.UpdateSession(func(s *state.Session) error {
			s.ClearInput()
			return nil
		}); err != nil {
			common.HandleError(hc, err, "save_session")
			return
		}

		if err := hc.Show(DetailScreen(teacher)); err != nil {
			common.HandleError(hc, err, "show_teacher")
			return
		}
		hc.Answer("")
	})
}

// updateList меняет фильтры в сессии и перерисовывает список
func updateList(hc *common.HandlerContext, op string, fn func(s *state.Session) error) {
	s, err := hc.UpdateSession(func(s *state.Session) error {
		if s.State == state.StateTeacherField || s.State == state.StateTeacherConfirm {
			s.ClearInput()
		}
		return fn(s)
	})
	if err != nil {
		common.Report(hc, err, op)
		return
	}

	screen, err := ListWindow(hc.Ctx, hc.Handler, s)
	if err != nil {
		common.HandleError(hc, err, op)
		return
	}
	if err := hc.Show(screen); err != nil {
		common.HandleError(hc, err, op)
		return
	}
	hc.Answer("")
}

// listView возвращает фильтры списка, создавая их при необходимости
func listView(s *state.Session) *state.TeacherListView {
	if s.TeacherList == nil {
		s.TeacherList = &state.TeacherListView{}
	}
	return s.TeacherList
}

// ListWindow загружает страницу по фильтрам сессии и рисует список
func ListWindow(ctx context.Context, h *callbacktypes.Handler, s *state.Session) (common.Screen, error) {
	view := state.TeacherListView{}
	if s.TeacherList != nil {
		view = *s.TeacherList
	}

	page, err := h.TeacherService.List(ctx, model.TeacherFilter{
		Search:   view.Search,
		BranchID: view.BranchID,
		Active:   view.Active,
		Page:     view.Page + 1,
	})
	if err != nil {
		return common.Screen{}, err
	}

	var branches []model.Branch
	if view.BranchID != nil {
		// без названий фильтр покажет #id
		if branches, err = h.ScheduleService.Branches(ctx); err != nil {
			h.Logger.Warn("Failed to load branches for teacher filter", zap.Error(err))
		}
	}

	return WithInputHint(s, ListScreen(page, view, branches)), nil
}

// StartList отправляет список новым сообщением (команда /teachers)
func StartList(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID, chatID int64) error {
	s, err := h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		s.TeacherList = &state.TeacherListView{}
		s.Teacher = nil
		s.ClearInput()
		return nil
	})
	if err != nil {
		return err
	}
	screen, err := ListWindow(ctx, h, s)
	if err != nil {
		return err
	}
	return sendWindow(ctx, b, h, telegramID, chatID, screen)
}

// sendWindow отправляет окно раздела и запоминает его в сессии
func sendWindow(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID, chatID int64, screen common.Screen) error {
	msgID, err := common.SendScreen(ctx, b, chatID, screen)
	if err != nil {
		return err
	}
	_, err = h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		s.ChatID = chatID
		s.MessageID = msgID
		return nil
	})
	return err
}
