package schedule

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// StartWizard отправляет новое окно мастера (команда /schedule)
func StartWizard(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID, chatID int64) error {
	h.Debouncer.Cancel(telegramID)

	s, err := h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		openWrapper(s)
		return nil
	})
	if err != nil {
		return fmt.Errorf("open wizard: %w", err)
	}

	msgID, err := common.SendScreen(ctx, b, chatID, Render(s, h.RoomPolicy))
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

// openWrapper каждый раз создаёт мастер заново
func openWrapper(s *state.Session) {
	s.ResetWizard()
	w := wizard.NewWrapper()
	s.Wizard = &w
}

// HandleOpen открывает мастер из главного меню
func HandleOpen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.Debouncer.Cancel(hc.TelegramID)
		mutate(hc, "open_wizard", func(s *state.Session) error {
			openWrapper(s)
			return nil
		})
	})
}

// HandlePickClass открывает форму расписания класса
func HandlePickClass(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		mutate(hc, "pick_class", func(s *state.Session) error {
			if err := s.Wizard.SelectClass(); err != nil {
				return err
			}
			s.Class = wizard.NewClassFlow()
			if branch := hc.Admin.DefaultBranchID; branch != nil {
				return s.Class.Dispatch(wizard.SetField{
					Field: wizard.FieldBranch,
					Value: strconv.FormatInt(*branch, 10),
				})
			}
			return nil
		})
	})
}

// HandlePickEvents переходит к выбору типа события
func HandlePickEvents(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		mutate(hc, "pick_events", func(s *state.Session) error {
			return s.Wizard.SelectEvents()
		})
	})
}

// HandleEventType открывает форму события выбранного типа
func HandleEventType(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		t := model.ScheduleType(hc.Data()[len(EventType):])
		mutate(hc, "pick_event_type", func(s *state.Session) error {
			if err := s.Wizard.SelectEventType(t); err != nil {
				return err
			}
			s.Event = wizard.NewEventFlow(t)
			s.Event.Draft.BranchID = hc.Admin.DefaultBranchID
			return nil
		})
	})
}

// HandleBack - шаг назад в обёртке. Черновик формы при этом отбрасывается.
func HandleBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.Debouncer.Cancel(hc.TelegramID)
		mutate(hc, "wizard_back", func(s *state.Session) error {
			s.Wizard.Back()
			s.Class = nil
			s.Event = nil
			s.Group = nil
			s.ClearInput()
			return nil
		})
	})
}

// HandleClose закрывает мастер и удаляет окно
func HandleClose(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.Debouncer.Cancel(hc.TelegramID)
		_, err := hc.UpdateSession(func(s *state.Session) error {
			s.ResetWizard()
			return nil
		})
		if err != nil {
			common.HandleError(hc, err, "close_wizard")
			return
		}
		if err := hc.Show(common.MainMenuScreen(hc.Admin)); err != nil {
			common.HandleError(hc, err, "close_wizard")
			return
		}
		hc.Answer("Closed")
	})
}

// HandleStopInput отменяет ожидание текстового ввода
func HandleStopInput(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.Debouncer.Cancel(hc.TelegramID)
		mutate(hc, "stop_input", func(s *state.Session) error {
			s.ClearInput()
			return nil
		})
	})
}

// mutate применяет fn к сессии мастера, выполняет автоматические запросы и перерисовывает окно
func mutate(hc *common.HandlerContext, op string, fn func(s *state.Session) error) bool {
	_, err := hc.UpdateSession(func(s *state.Session) error {
		if s.Wizard == nil {
			return common.ErrSessionExpired
		}
		return fn(s)
	})
	if err != nil {
		common.Report(hc, err, op)
		return false
	}

	if err := Sync(hc.Ctx, hc.Bot, hc.Handler, hc.TelegramID); err != nil {
		common.Report(hc, err, op)
		return false
	}
	hc.Answer("")
	return true
}

// withClass - mutate для формы класса
func withClass(hc *common.HandlerContext, op string, fn func(s *state.Session, f *wizard.ClassFlow) error) bool {
	return mutate(hc, op, func(s *state.Session) error {
		if s.Class == nil {
			return common.ErrSessionExpired
		}
		return fn(s, s.Class)
	})
}

// withEvent - mutate для формы события
func withEvent(hc *common.HandlerContext, op string, fn func(s *state.Session, f *wizard.EventFlow) error) bool {
	return mutate(hc, op, func(s *state.Session) error {
		if s.Event == nil {
			return common.ErrSessionExpired
		}
		return fn(s, s.Event)
	})
}

// showPicker показывает экран выбора в окне мастера
func showPicker(hc *common.HandlerContext, op string, screen common.Screen) {
	if err := hc.Show(screen); err != nil {
		common.HandleError(hc, err, op)
		return
	}
	hc.Answer("")
}

func logAPIFailure(h *callbacktypes.Handler, op string, telegramID int64, err error) {
	h.Logger.Error("Wizard request failed",
		zap.String("operation", op),
		zap.Int64("telegram_id", telegramID),
		zap.Error(err))
}
