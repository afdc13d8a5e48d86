package schedule

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// classPatterns - варианты повторения для класса
var classPatterns = []model.RecurringPattern{
	model.RecurringWeekly,
	model.RecurringBiWeekly,
	model.RecurringDaily,
	model.RecurringMonthly,
	model.RecurringCustom,
}

// HandleClassTab - прямой переход на вкладку
func HandleClassTab(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		tab := wizard.Tab(hc.Data()[len(ClassTab):])
		withClass(hc, "class_tab", func(_ *state.Session, f *wizard.ClassFlow) error {
			return f.GoTo(tab)
		})
	})
}

// HandleClassNext - следующая вкладка
func HandleClassNext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withClass(hc, "class_next", func(_ *state.Session, f *wizard.ClassFlow) error {
			return f.Next()
		})
	})
}

// HandleClassPrev - предыдущая вкладка
func HandleClassPrev(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withClass(hc, "class_prev", func(_ *state.Session, f *wizard.ClassFlow) error {
			return f.Prev()
		})
	})
}

// HandleClassField включает ожидание текстового значения поля
func HandleClassField(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		field := hc.Data()[len(ClassField):]
		withClass(hc, "class_field", func(s *state.Session, _ *wizard.ClassFlow) error {
			s.SetState(state.StateClassField, map[string]string{"field": field})
			return nil
		})
	})
}

// HandleClassBranches показывает список филиалов
func HandleClassBranches(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := common.PageArg(common.CallbackArgs(hc.Data(), ClassBranches))

		s, err := loadBranches(hc.Ctx, h, hc.TelegramID)
		if err != nil {
			common.Report(hc, err, "load_branches")
			return
		}
		if s.Class == nil {
			common.Report(hc, common.ErrSessionExpired, "load_branches")
			return
		}

		showPicker(hc, "show_branches", common.PickerScreen("🏫 <b>Pick a branch</b>",
			common.BranchItems(s.Lookups.Branches, s.Class.Draft.BranchID, ClassBranch), page, ClassBranches, ClassTab+string(wizard.TabBasic)))
	})
}

// HandleClassBranch выбирает филиал. Смена филиала сбрасывает группу, аудиторию и справочники.
func HandleClassBranch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), ClassBranch), 0)
		if err != nil {
			common.Report(hc, err, "class_branch")
			return
		}

		withClass(hc, "class_branch", func(s *state.Session, f *wizard.ClassFlow) error {
			changed := f.Draft.BranchID == nil || *f.Draft.BranchID != id
			if err := f.Dispatch(wizard.SetField{Field: wizard.FieldBranch, Value: strconv.FormatInt(id, 10)}); err != nil {
				return err
			}
			if changed {
				f.Requests.Invalidate(wizard.RequestGroups)
				s.Lookups.Groups = nil
				s.Lookups.Rooms = nil
				s.Lookups.Teachers = nil
			}
			return nil
		})
	})
}

// HandleClassGroups показывает группы филиала; первая страница всегда перезагружается
func HandleClassGroups(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := common.PageArg(common.CallbackArgs(hc.Data(), ClassGroups))

		if page == 0 {
			if err := loadGroups(hc.Ctx, h, hc.TelegramID); err != nil {
				common.Report(hc, err, "load_groups")
				return
			}
		}

		s, err := hc.Session()
		if err != nil || s.Class == nil {
			common.Report(hc, common.ErrSessionExpired, "show_groups")
			return
		}

		showPicker(hc, "show_groups", common.PickerScreen("👥 <b>Pick a group</b>\nActive groups first, then full ones",
			groupItems(s.Lookups.Groups, s.Class.Draft.GroupID), page, ClassGroups, ClassTab+string(wizard.TabBasic)))
	})
}

// HandleClassGroup выбирает группу: max_students и course_id копируются в черновик
func HandleClassGroup(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), ClassGroup), 0)
		if err != nil {
			common.Report(hc, err, "class_group")
			return
		}

		withClass(hc, "class_group", func(s *state.Session, f *wizard.ClassFlow) error {
			for _, g := range s.Lookups.Groups {
				if g.ID == id {
					return f.Dispatch(wizard.SelectGroup{Group: g})
				}
			}
			return common.ErrNothingLoaded
		})
	})
}

// HandleClassTeachers показывает преподавателей филиала
func HandleClassTeachers(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := common.PageArg(common.CallbackArgs(hc.Data(), ClassTeachers))

		current, err := hc.Session()
		if err != nil || current.Class == nil {
			common.Report(hc, common.ErrSessionExpired, "load_teachers")
			return
		}

		s, err := loadTeachers(hc.Ctx, h, hc.TelegramID, current.Class.Draft.BranchID)
		if err != nil {
			common.Report(hc, err, "load_teachers")
			return
		}

		showPicker(hc, "show_teachers", common.PickerScreen("👩‍🏫 <b>Pick the default teacher</b>",
			teacherItems(s.Lookups.Teachers, s.Class.Draft.DefaultTeacherID, ClassTeacher), page, ClassTeachers, ClassTab+string(wizard.TabBasic)))
	})
}

// HandleClassTeacher выбирает преподавателя по умолчанию
func HandleClassTeacher(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args := common.CallbackArgs(hc.Data(), ClassTeacher)
		if _, err := common.IntArg(args, 0); err != nil {
			common.Report(hc, err, "class_teacher")
			return
		}
		withClass(hc, "class_teacher", func(_ *state.Session, f *wizard.ClassFlow) error {
			return f.Dispatch(wizard.SetField{Field: wizard.FieldTeacher, Value: args[0]})
		})
	})
}

// HandleClassRoom выбирает аудиторию. Проверка конфликтов при этом не сбрасывается.
func HandleClassRoom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args := common.CallbackArgs(hc.Data(), ClassRoom)
		if _, err := common.IntArg(args, 0); err != nil {
			common.Report(hc, err, "class_room")
			return
		}
		withClass(hc, "class_room", func(_ *state.Session, f *wizard.ClassFlow) error {
			return f.Dispatch(wizard.SetField{Field: wizard.FieldRoom, Value: args[0]})
		})
	})
}

// HandleClassPatterns показывает варианты повторения
func HandleClassPatterns(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		s, err := hc.Session()
		if err != nil || s.Class == nil {
			common.Report(hc, common.ErrSessionExpired, "class_patterns")
			return
		}
		showPicker(hc, "class_patterns", PatternPickerScreen(s.Class.Draft.RecurringPattern, classPatterns,
			ClassPattern, ClassTab+string(wizard.TabSchedule)))
	})
}

// HandleClassPattern выставляет повторение
func HandleClassPattern(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		value := hc.Data()[len(ClassPattern):]
		withClass(hc, "class_pattern", func(_ *state.Session, f *wizard.ClassFlow) error {
			return f.Dispatch(wizard.SetField{Field: wizard.FieldRecurringPattern, Value: value})
		})
	})
}

// HandleClassAuto переключает перенос занятий с праздников
func HandleClassAuto(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withClass(hc, "class_auto_reschedule", func(_ *state.Session, f *wizard.ClassFlow) error {
			return f.Dispatch(wizard.SetField{
				Field: wizard.FieldAutoReschedule,
				Value: strconv.FormatBool(!f.Draft.AutoReschedule),
			})
		})
	})
}

// HandleSessionAdd добавляет занятие с временем предыдущего
func HandleSessionAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withClass(hc, "session_add", func(_ *state.Session, f *wizard.ClassFlow) error {
			next := model.SessionTime{Weekday: int(time.Monday)}
			if n := len(f.Draft.SessionTimes); n > 0 {
				last := f.Draft.SessionTimes[n-1]
				next = model.SessionTime{Weekday: (last.Weekday + 1) % 7, StartTime: last.StartTime}
			}
			return f.Dispatch(wizard.AddSession{Session: next})
		})
	})
}

// HandleSessionDel удаляет занятие
func HandleSessionDel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		idx, err := common.IntArg(common.CallbackArgs(hc.Data(), SessionDel), 0)
		if err != nil {
			common.Report(hc, err, "session_del")
			return
		}
		withClass(hc, "session_del", func(_ *state.Session, f *wizard.ClassFlow) error {
			return f.Dispatch(wizard.RemoveSession{Index: int(idx)})
		})
	})
}

// HandleSessionDays показывает выбор дня недели для занятия
func HandleSessionDays(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		idx, err := common.IntArg(common.CallbackArgs(hc.Data(), SessionDays), 0)
		if err != nil {
			common.Report(hc, err, "session_days")
			return
		}
		s, err := hc.Session()
		if err != nil || s.Class == nil {
			common.Report(hc, common.ErrSessionExpired, "session_days")
			return
		}
		if int(idx) >= len(s.Class.Draft.SessionTimes) {
			common.Report(hc, wizard.ErrSessionIndex, "session_days")
			return
		}
		showPicker(hc, "session_days", WeekdayPickerScreen(int(idx), s.Class.Draft.SessionTimes[idx].Weekday))
	})
}

// HandleSessionDay меняет день недели занятия, время остаётся прежним
func HandleSessionDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args := common.CallbackArgs(hc.Data(), SessionDay)
		idx, err := common.IntArg(args, 0)
		if err != nil {
			common.Report(hc, err, "session_day")
			return
		}
		weekday, err := common.IntArg(args, 1)
		if err != nil {
			common.Report(hc, err, "session_day")
			return
		}

		withClass(hc, "session_day", func(_ *state.Session, f *wizard.ClassFlow) error {
			if int(idx) >= len(f.Draft.SessionTimes) {
				return wizard.ErrSessionIndex
			}
			st := f.Draft.SessionTimes[idx]
			st.Weekday = int(weekday)
			return f.Dispatch(wizard.UpdateSession{Index: int(idx), Session: st})
		})
	})
}

// HandleSessionTime включает ввод времени начала занятия
func HandleSessionTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args := common.CallbackArgs(hc.Data(), SessionTime)
		if _, err := common.IntArg(args, 0); err != nil {
			common.Report(hc, err, "session_time")
			return
		}
		withClass(hc, "session_time", func(s *state.Session, _ *wizard.ClassFlow) error {
			s.SetState(state.StateSessionTime, map[string]string{"index": args[0]})
			return nil
		})
	})
}

// HandleClassCheck повторяет проверку конфликтов вручную
func HandleClassCheck(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withClass(hc, "class_check", func(_ *state.Session, f *wizard.ClassFlow) error {
			if !wizard.IsRoomCheckReady(f.Draft) {
				return wizard.ErrPreviewNotReady
			}
			f.Conflicts = nil
			return nil
		})
	})
}

// HandleClassPreview перезапрашивает preview
func HandleClassPreview(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withClass(hc, "class_preview", func(_ *state.Session, f *wizard.ClassFlow) error {
			f.Preview = nil
			return nil
		})
	})
}

// HandleClassReset возвращает черновик к значениям по умолчанию
func HandleClassReset(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withClass(hc, "class_reset", func(s *state.Session, f *wizard.ClassFlow) error {
			s.ClearInput()
			s.Group = nil
			if err := f.Dispatch(wizard.Reset{}); err != nil {
				return err
			}
			f.Tab = wizard.TabBasic
			return nil
		})
	})
}

// HandleClassCreate создаёт расписание. При ошибке черновик остаётся как был.
func HandleClassCreate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		s, err := hc.Session()
		if err != nil || s.Class == nil {
			common.Report(hc, common.ErrSessionExpired, "create_class")
			return
		}
		if err := s.Class.CanCreate(); err != nil {
			common.Report(hc, err, "create_class")
			return
		}

		flow := *s.Class
		schedule, err := h.ScheduleService.CreateClass(hc.Ctx, hc.TelegramID, &flow)
		if err != nil {
			common.Report(hc, err, "create_class")
			return
		}

		finishCreated(hc, schedule, flow.Draft.ScheduleName, model.ScheduleTypeClass)
	})
}

// finishCreated показывает сообщение об успехе, сбрасывает мастер
// и через CloseDelay убирает окно, возвращая главное меню
func finishCreated(hc *common.HandlerContext, schedule *model.Schedule, name string, t model.ScheduleType) {
	h := hc.Handler

	if _, err := hc.UpdateSession(func(s *state.Session) error {
		s.ResetWizard()
		return nil
	}); err != nil {
		h.Logger.Warn("Failed to reset wizard", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
	}

	if err := hc.Show(CreatedScreen(name, t)); err != nil {
		h.Logger.Warn("Failed to show success message", zap.Error(err))
	}
	common.LogAndAnswer(hc, fmt.Sprintf("Schedule %d created", schedule.ID), "✅ Created")

	if hc.Message == nil {
		return
	}
	b, chatID, msgID, admin := hc.Bot, hc.ChatID, hc.Message.ID, hc.Admin
	time.AfterFunc(h.CloseDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.APITimeout)
		defer cancel()

		if err := common.DeleteMessage(ctx, b, chatID, msgID); err != nil {
			h.Logger.Warn("Failed to close wizard window", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		if _, err := common.SendScreen(ctx, b, chatID, common.MainMenuScreen(admin)); err != nil {
			h.Logger.Warn("Failed to send main menu", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	})
}

// isExpired - окно мастера уже закрыто другим действием
func isExpired(err error) bool {
	return errors.Is(err, common.ErrSessionExpired)
}
