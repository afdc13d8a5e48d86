package schedule

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var eventPatterns = []model.RecurringPattern{
	model.RecurringNone,
	model.RecurringDaily,
	model.RecurringWeekly,
	model.RecurringBiWeekly,
	model.RecurringMonthly,
	model.RecurringYearly,
}

// HandleEventShow возвращает к форме события из списка выбора
func HandleEventShow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withEvent(hc, "show_event_form", func(*state.Session, *wizard.EventFlow) error { return nil })
	})
}

// HandleEventNext - следующая вкладка события
func HandleEventNext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withEvent(hc, "event_next", func(_ *state.Session, f *wizard.EventFlow) error {
			return f.Next()
		})
	})
}

// HandleEventPrev - предыдущая вкладка события
func HandleEventPrev(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withEvent(hc, "event_prev", func(_ *state.Session, f *wizard.EventFlow) error {
			return f.Prev()
		})
	})
}

// HandleEventField включает ввод текстового поля события
func HandleEventField(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		field := hc.Data()[len(EventField):]
		withEvent(hc, "event_field", func(s *state.Session, _ *wizard.EventFlow) error {
			s.SetState(state.StateEventField, map[string]string{"field": field})
			return nil
		})
	})
}

// HandleEventBranches показывает филиалы
func HandleEventBranches(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := common.PageArg(common.CallbackArgs(hc.Data(), EventBranches))

		s, err := loadBranches(hc.Ctx, h, hc.TelegramID)
		if err != nil {
			common.Report(hc, err, "load_branches")
			return
		}
		if s.Event == nil {
			common.Report(hc, common.ErrSessionExpired, "load_branches")
			return
		}

		showPicker(hc, "show_branches", common.PickerScreen("🏫 <b>Pick a branch</b>",
			common.BranchItems(s.Lookups.Branches, s.Event.Draft.BranchID, EventBranch), page, EventBranches, EventShow))
	})
}

// HandleEventBranch выбирает филиал, аудитория другого филиала сбрасывается
func HandleEventBranch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), EventBranch), 0)
		if err != nil {
			common.Report(hc, err, "event_branch")
			return
		}
		withEvent(hc, "event_branch", func(s *state.Session, f *wizard.EventFlow) error {
			if f.Draft.BranchID != nil && *f.Draft.BranchID == id {
				return nil
			}
			f.Draft.BranchID = &id
			f.Draft.RoomID = nil
			s.Lookups.Rooms = nil
			s.Lookups.Teachers = nil
			return nil
		})
	})
}

// HandleEventRooms показывает аудитории филиала, аудитория необязательна
func HandleEventRooms(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := common.PageArg(common.CallbackArgs(hc.Data(), EventRooms))
		s, err := hc.Session()
		if err != nil || s.Event == nil {
			common.Report(hc, common.ErrSessionExpired, "event_rooms")
			return
		}
		if s.Event.Draft.BranchID == nil {
			common.Report(hc, common.ErrBranchRequired, "event_rooms")
			return
		}

		branchID := *s.Event.Draft.BranchID
		if !roomsLoadedFor(s.Lookups.Rooms, branchID) {
			if err := loadRooms(hc.Ctx, h, hc.TelegramID, branchID); err != nil {
				common.Report(hc, err, "load_rooms")
				return
			}
			if s, err = hc.Session(); err != nil || s.Event == nil {
				common.Report(hc, common.ErrSessionExpired, "event_rooms")
				return
			}
		}

		items := []common.PickerItem{{Label: "No room", Data: EventRoom + "0", Selected: s.Event.Draft.RoomID == nil}}
		for _, r := range s.Lookups.Rooms {
			items = append(items, common.PickerItem{
				Label:    fmt.Sprintf("%s (%d)", r.RoomName, r.Capacity),
				Data:     fmt.Sprintf("%s%d", EventRoom, r.ID),
				Selected: s.Event.Draft.RoomID != nil && *s.Event.Draft.RoomID == r.ID,
			})
		}
		showPicker(hc, "event_rooms", common.PickerScreen("🚪 <b>Pick a room</b>", items, page, EventRooms, EventShow))
	})
}

// HandleEventRoom выбирает аудиторию, 0 - без аудитории
func HandleEventRoom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), EventRoom), 0)
		if err != nil {
			common.Report(hc, err, "event_room")
			return
		}
		withEvent(hc, "event_room", func(_ *state.Session, f *wizard.EventFlow) error {
			f.Draft.RoomID = nil
			if id != 0 {
				f.Draft.RoomID = &id
			}
			return nil
		})
	})
}

// HandleEventOrganizers показывает преподавателей для выбора организатора
func HandleEventOrganizers(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := common.PageArg(common.CallbackArgs(hc.Data(), EventOrganizers))

		current, err := hc.Session()
		if err != nil || current.Event == nil {
			common.Report(hc, common.ErrSessionExpired, "load_organizers")
			return
		}
		s, err := loadTeachers(hc.Ctx, h, hc.TelegramID, current.Event.Draft.BranchID)
		if err != nil {
			common.Report(hc, err, "load_organizers")
			return
		}

		showPicker(hc, "show_organizers", common.PickerScreen("🧑‍💼 <b>Pick the organizer</b>",
			teacherItems(s.Lookups.Teachers, s.Event.Draft.OrganizerID, EventOrganizer), page, EventOrganizers, EventShow))
	})
}

// HandleEventOrganizer выбирает организатора
func HandleEventOrganizer(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), EventOrganizer), 0)
		if err != nil {
			common.Report(hc, err, "event_organizer")
			return
		}
		withEvent(hc, "event_organizer", func(_ *state.Session, f *wizard.EventFlow) error {
			f.Draft.OrganizerID = &id
			return nil
		})
	})
}

// HandleEventPatterns показывает варианты повторения события
func HandleEventPatterns(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		s, err := hc.Session()
		if err != nil || s.Event == nil {
			common.Report(hc, common.ErrSessionExpired, "event_patterns")
			return
		}
		showPicker(hc, "event_patterns", PatternPickerScreen(s.Event.Draft.RecurringPattern, eventPatterns,
			EventPattern, EventShow))
	})
}

// HandleEventPattern выставляет повторение события
func HandleEventPattern(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		pattern := model.RecurringPattern(hc.Data()[len(EventPattern):])
		withEvent(hc, "event_pattern", func(_ *state.Session, f *wizard.EventFlow) error {
			for _, p := range eventPatterns {
				if p == pattern {
					f.Draft.RecurringPattern = pattern
					return nil
				}
			}
			return fmt.Errorf("%w: pattern %q", wizard.ErrInvalidValue, pattern)
		})
	})
}

// HandleEventSlotAdd включает ввод слота времени
func HandleEventSlotAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withEvent(hc, "event_slot_add", func(s *state.Session, _ *wizard.EventFlow) error {
			s.SetState(state.StateEventSlot, nil)
			return nil
		})
	})
}

// HandleEventSlotDel удаляет слот времени
func HandleEventSlotDel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		idx, err := common.IntArg(common.CallbackArgs(hc.Data(), EventSlotDel), 0)
		if err != nil {
			common.Report(hc, err, "event_slot_del")
			return
		}
		withEvent(hc, "event_slot_del", func(_ *state.Session, f *wizard.EventFlow) error {
			return f.Draft.RemoveTimeSlot(int(idx))
		})
	})
}

// HandleEventSearch включает поиск участников
func HandleEventSearch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		withEvent(hc, "event_search", func(s *state.Session, _ *wizard.EventFlow) error {
			s.SetState(state.StateParticipantQuery, nil)
			return nil
		})
	})
}

// HandleEventParticipant добавляет найденного пользователя в участники
func HandleEventParticipant(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), EventParticipant), 0)
		if err != nil {
			common.Report(hc, err, "event_participant")
			return
		}
		withEvent(hc, "event_participant", func(_ *state.Session, f *wizard.EventFlow) error {
			for _, u := range f.Found {
				if u.ID == id {
					f.Draft.AddParticipant(u)
					return nil
				}
			}
			return common.ErrNothingLoaded
		})
	})
}

// HandleEventParticipantRemove убирает участника
func HandleEventParticipantRemove(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.IntArg(common.CallbackArgs(hc.Data(), EventParticipantX), 0)
		if err != nil {
			common.Report(hc, err, "event_participant_remove")
			return
		}
		withEvent(hc, "event_participant_remove", func(_ *state.Session, f *wizard.EventFlow) error {
			f.Draft.RemoveParticipant(id)
			return nil
		})
	})
}

// HandleEventCreate создаёт событие. При ошибке черновик остаётся как был.
func HandleEventCreate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		s, err := hc.Session()
		if err != nil || s.Event == nil {
			common.Report(hc, common.ErrSessionExpired, "create_event")
			return
		}

		draft := s.Event.Draft
		schedule, err := h.ScheduleService.CreateEvent(hc.Ctx, hc.TelegramID, draft)
		if err != nil {
			common.Report(hc, err, "create_event")
			return
		}

		finishCreated(hc, schedule, draft.ScheduleName, draft.ScheduleType)
	})
}

// SearchParticipants запускает отложенный поиск участников.
// Новый запрос отменяет ожидающий, устаревший ответ отбрасывается.
func SearchParticipants(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID int64, query string) error {
	var gen uint64
	_, err := h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		if s.Event == nil {
			return common.ErrSessionExpired
		}
		gen = s.Event.BeginSearch(query)
		return nil
	})
	if err != nil {
		return err
	}

	h.Debouncer.Trigger(telegramID, func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.APITimeout)
		defer cancel()

		users, err := h.ScheduleService.SearchParticipants(ctx, query)
		if err != nil {
			logAPIFailure(h, "search_participants", telegramID, err)
			return
		}

		applied := false
		_, err = h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
			if s.Event == nil {
				return common.ErrSessionExpired
			}
			applied = s.Event.ApplySearch(gen, users)
			return nil
		})
		if err != nil {
			if !isExpired(err) {
				logAPIFailure(h, "apply_participants", telegramID, err)
			}
			return
		}
		if !applied {
			h.Logger.Debug("Dropped stale participant search", zap.Int64("telegram_id", telegramID), zap.String("query", query))
			return
		}

		if err := Redraw(ctx, b, h, telegramID); err != nil {
			logAPIFailure(h, "redraw_participants", telegramID, err)
		}
	})
	return nil
}
