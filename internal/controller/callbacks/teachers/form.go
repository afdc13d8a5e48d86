package teachers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// NewTeacherInput - значения формы создания по умолчанию
func NewTeacherInput() model.TeacherInput {
	return model.TeacherInput{
		TeacherType: model.TeacherTypeBoth,
		Active:      true,
	}
}

// HandleNew открывает пустую форму
func HandleNew(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateForm(hc, "new_teacher", func(s *state.Session) error {
			in := NewTeacherInput()
			in.BranchID = hc.Admin.DefaultBranchID
			s.Teacher = &state.TeacherForm{Input: in}
			s.ClearInput()
			return nil
		})
	})
}

// HandleEdit открывает форму с текущими значениями преподавателя
func HandleEdit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), Edit), 0)
		if err != nil {
			common.Report(hc, err, "edit_teacher")
			return
		}

		teacher, err := h.TeacherService.Get(hc.Ctx, id)
		if err != nil {
			common.HandleError(hc, err, "edit_teacher")
			return
		}

		updateForm(hc, "edit_teacher", func(s *state.Session) error {
			s.Teacher = &state.TeacherForm{TeacherID: teacher.ID, Input: model.InputFromTeacher(*teacher)}
			s.ClearInput()
			return nil
		})
	})
}

// HandleShow перерисовывает форму (возврат из выбора филиала)
func HandleShow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateForm(hc, "show_teacher_form", func(s *state.Session) error { return nil })
	})
}

// HandleField ждёт значение текстового поля
func HandleField(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		field := ""
		if args := common.CallbackArgs(hc.Data(), Field); len(args) > 0 {
			field = args[0]
		}
		if _, ok := fieldHints[field]; !ok {
			common.Report(hc, common.ErrInvalidFormat, "teacher_field")
			return
		}
		updateForm(hc, "teacher_field", func(s *state.Session) error {
			if s.Teacher == nil {
				return common.ErrSessionExpired
			}
			s.SetState(state.StateTeacherField, map[string]string{"field": field})
			return nil
		})
	})
}

// HandleType выбирает тип преподавателя
func HandleType(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		t := model.TeacherType(strings.TrimPrefix(hc.Data(), Type))
		if !validTeacherType(t) {
			common.Report(hc, common.ErrInvalidFormat, "teacher_type")
			return
		}
		editForm(hc, "teacher_type", func(f *state.TeacherForm) {
			f.Input.TeacherType = t
		})
	})
}

// HandleToggleActive переключает флаг активности
func HandleToggleActive(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		editForm(hc, "teacher_active", func(f *state.TeacherForm) {
			f.Input.Active = !f.Input.Active
		})
	})
}

// HandleBranches показывает выбор филиала преподавателя
func HandleBranches(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := common.PageArg(common.CallbackArgs(hc.Data(), Branches))

		s, err := hc.Session()
		if err != nil {
			common.HandleError(hc, err, "load_session")
			return
		}
		if s.Teacher == nil {
			common.Report(hc, common.ErrSessionExpired, "teacher_branches")
			return
		}

		branches, err := h.ScheduleService.Branches(hc.Ctx)
		if err != nil {
			common.HandleError(hc, err, "load_branches")
			return
		}

		selected := s.Teacher.Input.BranchID
		items := append([]common.PickerItem{{Label: "No branch", Data: Branch + "0", Selected: selected == nil}},
			common.BranchItems(branches, selected, Branch)...)

		if err := hc.Show(common.PickerScreen("🏫 <b>Teacher's branch</b>", items, page, Branches, Show)); err != nil {
			common.HandleError(hc, err, "show_teacher_branches")
			return
		}
		hc.Answer("")
	})
}

// HandleBranch выставляет филиал, 0 - без филиала
func HandleBranch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), Branch), 0)
		if err != nil {
			common.Report(hc, err, "teacher_branch")
			return
		}
		editForm(hc, "teacher_branch", func(f *state.TeacherForm) {
			f.Input.BranchID = nil
			if id != 0 {
				f.Input.BranchID = &id
			}
		})
	})
}

// HandleSave создаёт или обновляет преподавателя. При ошибке форма остаётся.
func HandleSave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		s, err := hc.Session()
		if err != nil {
			common.HandleError(hc, err, "load_session")
			return
		}
		if s.Teacher == nil {
			common.Report(hc, common.ErrSessionExpired, "save_teacher")
			return
		}

		form := *s.Teacher
		created := form.TeacherID == 0

		var teacher *model.Teacher
		if created {
			teacher, err = h.TeacherService.Create(hc.Ctx, hc.TelegramID, form.Input)
		} else {
			teacher, err = h.TeacherService.Update(hc.Ctx, hc.TelegramID, form.TeacherID, form.Input)
		}
		if err != nil {
			common.Report(hc, err, "save_teacher")
			return
		}

		if _, err := hc.UpdateSession(func(s *state.Session) error {
			s.Teacher = nil
			s.ClearInput()
			return nil
		}); err != nil {
			h.Logger.Warn("Failed to clear teacher form", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}

		if err := hc.Show(SavedScreen(teacher, created)); err != nil {
			common.HandleError(hc, err, "show_teacher")
			return
		}
		common.LogAndAnswer(hc, "Teacher saved", "✅ Saved")
	})
}

// HandleCancel закрывает форму: к карточке при редактировании, к списку при создании
func HandleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		s, err := hc.Session()
		if err != nil {
			common.HandleError(hc, err, "load_session")
			return
		}

		var teacherID int64
		if s.Teacher != nil {
			teacherID = s.Teacher.TeacherID
		}
		if teacherID == 0 {
			updateList(hc, "cancel_teacher_form", func(s *state.Session) error {
				s.Teacher = nil
				return nil
			})
			return
		}

		teacher, err := h.TeacherService.Get(hc.Ctx, teacherID)
		if err != nil {
			common.HandleError(hc, err, "cancel_teacher_form")
			return
		}
		if _, err := hc.UpdateSession(func(s *state.Session) error {
			s.Teacher = nil
			s.ClearInput()
			return nil
		}); err != nil {
			h.Logger.Warn("Failed to clear teacher form", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}
		if err := hc.Show(DetailScreen(teacher)); err != nil {
			common.HandleError(hc, err, "show_teacher")
			return
		}
		hc.Answer("")
	})
}

// HandleStopInput перестаёт ждать текст и перерисовывает окно
func HandleStopInput(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		s, err := hc.UpdateSession(func(s *state.Session) error {
			s.ClearInput()
			return nil
		})
		if err != nil {
			common.HandleError(hc, err, "stop_input")
			return
		}

		screen, err := Window(hc.Ctx, h, s)
		if err != nil {
			common.HandleError(hc, err, "stop_input")
			return
		}
		if err := hc.Show(screen); err != nil {
			common.HandleError(hc, err, "stop_input")
			return
		}
		hc.Answer("")
	})
}

// updateForm меняет открытую форму и перерисовывает её
func updateForm(hc *common.HandlerContext, op string, fn func(s *state.Session) error) {
	s, err := hc.UpdateSession(func(s *state.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		if s.Teacher == nil {
			return common.ErrSessionExpired
		}
		return nil
	})
	if err != nil {
		common.Report(hc, err, op)
		return
	}

	screen, err := FormWindow(hc.Ctx, hc.Handler, s)
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

// editForm меняет поля открытой формы
func editForm(hc *common.HandlerContext, op string, fn func(f *state.TeacherForm)) {
	updateForm(hc, op, func(s *state.Session) error {
		if s.Teacher == nil {
			return common.ErrSessionExpired
		}
		fn(s.Teacher)
		return nil
	})
}

// FormWindow рисует форму; названия филиалов загружаются только если филиал выбран
func FormWindow(ctx context.Context, h *callbacktypes.Handler, s *state.Session) (common.Screen, error) {
	if s.Teacher == nil {
		return common.Screen{}, common.ErrSessionExpired
	}

	var branches []model.Branch
	if s.Teacher.Input.BranchID != nil {
		var err error
		if branches, err = h.ScheduleService.Branches(ctx); err != nil {
			h.Logger.Warn("Failed to load branches for teacher form", zap.Error(err))
		}
	}
	return WithInputHint(s, FormScreen(s.Teacher, branches)), nil
}

// Window - текущее окно раздела: форма, если она открыта, иначе список
func Window(ctx context.Context, h *callbacktypes.Handler, s *state.Session) (common.Screen, error) {
	if s.Teacher != nil {
		return FormWindow(ctx, h, s)
	}
	return ListWindow(ctx, h, s)
}

func validTeacherType(t model.TeacherType) bool {
	for _, known := range model.TeacherTypes {
		if known == t {
			return true
		}
	}
	return false
}

// StartNew отправляет пустую форму новым сообщением (команда /newteacher)
func StartNew(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, admin *model.Admin, chatID int64) error {
	s, err := h.Sessions.Update(ctx, admin.TelegramID, func(s *state.Session) error {
		in := NewTeacherInput()
		in.BranchID = admin.DefaultBranchID
		s.Teacher = &state.TeacherForm{Input: in}
		s.ClearInput()
		return nil
	})
	if err != nil {
		return err
	}
	screen, err := FormWindow(ctx, h, s)
	if err != nil {
		return err
	}
	return sendWindow(ctx, b, h, admin.TelegramID, chatID, screen)
}
