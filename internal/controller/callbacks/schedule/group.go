package schedule

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/service"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// withGroup - mutate для вложенной формы новой группы
func withGroup(hc *common.HandlerContext, op string, fn func(s *state.Session, g *wizard.GroupForm) error) bool {
	return withClass(hc, op, func(s *state.Session, _ *wizard.ClassFlow) error {
		if s.Group == nil {
			return common.ErrSessionExpired
		}
		return fn(s, s.Group)
	})
}

// HandleGroupOpen открывает форму новой группы для выбранного филиала
func HandleGroupOpen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		s, err := hc.Session()
		if err != nil || s.Class == nil {
			common.Report(hc, common.ErrSessionExpired, "open_group_form")
			return
		}
		if s.Class.Draft.BranchID == nil {
			common.Report(hc, common.ErrBranchRequired, "open_group_form")
			return
		}

		courses := s.Lookups.Courses
		if len(courses) == 0 {
			courses, err = h.ScheduleService.Courses(hc.Ctx, *s.Class.Draft.BranchID)
			if err != nil {
				common.Report(hc, err, "load_courses")
				return
			}
		}

		withClass(hc, "open_group_form", func(s *state.Session, _ *wizard.ClassFlow) error {
			s.Lookups.Courses = courses
			s.Lookups.Students = nil
			s.Group = wizard.NewGroupForm()
			s.ClearInput()
			return nil
		})
	})
}

// HandleGroupShow возвращает к форме группы из списка выбора
func HandleGroupShow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withGroup(hc, "show_group_form", func(*state.Session, *wizard.GroupForm) error { return nil })
	})
}

// HandleGroupField включает ввод поля группы
func HandleGroupField(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		field := hc.Data()[len(GroupField):]
		withGroup(hc, "group_field", func(s *state.Session, _ *wizard.GroupForm) error {
			s.SetState(state.StateGroupField, map[string]string{"field": field})
			return nil
		})
	})
}

// HandleGroupCourses показывает курсы филиала
func HandleGroupCourses(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := common.PageArg(common.CallbackArgs(hc.Data(), GroupCourses))
		s, err := hc.Session()
		if err != nil || s.Group == nil {
			common.Report(hc, common.ErrSessionExpired, "group_courses")
			return
		}
		showPicker(hc, "group_courses", common.PickerScreen("📚 <b>Pick a course</b>",
			courseItems(s.Lookups.Courses, s.Group.CourseID), page, GroupCourses, GroupShow))
	})
}

// HandleGroupCourse выбирает курс группы
func HandleGroupCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), GroupCourse), 0)
		if err != nil {
			common.Report(hc, err, "group_course")
			return
		}
		withGroup(hc, "group_course", func(s *state.Session, g *wizard.GroupForm) error {
			g.CourseID = id
			for _, c := range s.Lookups.Courses {
				if c.ID == id && g.Level == "" {
					g.Level = c.Level
				}
			}
			return nil
		})
	})
}

// HandleGroupPay выставляет статус оплаты
func HandleGroupPay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		status := model.PaymentStatus(hc.Data()[len(GroupPay):])
		withGroup(hc, "group_payment", func(_ *state.Session, g *wizard.GroupForm) error {
			for _, p := range model.PaymentStatuses {
				if p == status {
					g.PaymentStatus = status
					return nil
				}
			}
			return fmt.Errorf("%w: payment status %q", wizard.ErrInvalidValue, status)
		})
	})
}

// HandleGroupSearch включает поиск студентов
func HandleGroupSearch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withGroup(hc, "group_search", func(s *state.Session, _ *wizard.GroupForm) error {
			s.SetState(state.StateGroupStudent, nil)
			return nil
		})
	})
}

// HandleGroupToggle добавляет или убирает студента
func HandleGroupToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), GroupToggle), 0)
		if err != nil {
			common.Report(hc, err, "group_toggle")
			return
		}
		withGroup(hc, "group_toggle", func(s *state.Session, g *wizard.GroupForm) error {
			student := model.Student{ID: id}
			for _, st := range s.Lookups.Students {
				if st.ID == id {
					student = st
				}
			}
			g.ToggleStudent(student)
			return nil
		})
	})
}

// HandleGroupCancel закрывает форму группы без создания
func HandleGroupCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withClass(hc, "group_cancel", func(s *state.Session, _ *wizard.ClassFlow) error {
			s.Group = nil
			s.Lookups.Students = nil
			s.ClearInput()
			return nil
		})
	})
}

// HandleGroupSave создаёт группу, добавляет студентов и выбирает группу в черновике.
// Студенты, которых не удалось добавить, перечисляются в ответе.
func HandleGroupSave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		s, err := hc.Session()
		if err != nil || s.Class == nil || s.Group == nil {
			common.Report(hc, common.ErrSessionExpired, "create_group")
			return
		}

		form := *s.Group
		group, batch, err := h.GroupService.CreateWithMembers(hc.Ctx, hc.TelegramID, s.Class.Draft.BranchID, &form)
		if err != nil {
			common.Report(hc, err, "create_group")
			return
		}

		option := wizard.GroupOptionFromCreated(group, &form, len(batch.Succeeded))
		_, err = hc.UpdateSession(func(s *state.Session) error {
			s.Group = nil
			s.Lookups.Students = nil
			s.ClearInput()
			if s.Class == nil {
				return nil
			}
			s.Lookups.Groups = append(s.Lookups.Groups, option)
			return s.Class.Dispatch(wizard.SelectGroup{Group: option})
		})
		if err != nil {
			common.Report(hc, err, "select_created_group")
			return
		}

		if err := Sync(hc.Ctx, hc.Bot, h, hc.TelegramID); err != nil {
			common.Report(hc, err, "create_group")
			return
		}

		if len(batch.Failed) > 0 {
			h.Logger.Warn("Group created with failed members",
				zap.Int64("group_id", group.ID),
				zap.Int("failed", len(batch.Failed)))
			hc.AnswerAlert(memberFailuresText(form, batch.Failed))
			return
		}
		common.LogAndAnswer(hc, "Group created from wizard", "✅ Group created")
	})
}

func memberFailuresText(form wizard.GroupForm, failed []service.MemberFailure) string {
	text := fmt.Sprintf("⚠️ Group created, but %d student(s) were not added:", len(failed))
	for i, f := range failed {
		if i == 5 {
			text += fmt.Sprintf("\n…and %d more", len(failed)-i)
			break
		}
		name := form.StudentNames[f.StudentID]
		if name == "" {
			name = fmt.Sprintf("#%d", f.StudentID)
		}
		text += "\n• " + name
	}
	return common.Truncate(text, 200)
}

// SearchStudents ищет студентов для формы группы и перерисовывает окно
func SearchStudents(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID int64, query string) error {
	students, err := h.GroupService.SearchStudents(ctx, query)
	if err != nil {
		return err
	}
	_, err = h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		if s.Group == nil {
			return common.ErrSessionExpired
		}
		s.Lookups.Students = students
		return nil
	})
	if err != nil {
		return err
	}
	return Redraw(ctx, b, h, telegramID)
}
