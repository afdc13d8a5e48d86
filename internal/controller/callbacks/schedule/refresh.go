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
	"go.uber.org/zap"
)

// Sync выполняет автоматические запросы текущей вкладки и перерисовывает окно мастера.
// Окно перерисовывается даже если запрос упал, ошибка возвращается вызывающему.
func Sync(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID int64) error {
	var syncErr error
	if err := loadRoomsForTab(ctx, h, telegramID); err != nil {
		syncErr = err
	}
	if syncErr == nil {
		if err := runRoomCheck(ctx, h, telegramID); err != nil {
			syncErr = err
		}
	}
	if syncErr == nil {
		if err := runPreview(ctx, h, telegramID); err != nil {
			syncErr = err
		}
	}

	if err := Redraw(ctx, b, h, telegramID); err != nil {
		return err
	}
	return syncErr
}

// Redraw перерисовывает окно мастера по сохранённой сессии
func Redraw(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID int64) error {
	s, err := h.Sessions.Get(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if s.MessageID == 0 {
		return nil
	}
	return common.EditScreen(ctx, b, s.ChatID, s.MessageID, Render(s, h.RoomPolicy))
}

// loadRoomsForTab загружает аудитории филиала при входе на вкладку room
func loadRoomsForTab(ctx context.Context, h *callbacktypes.Handler, telegramID int64) error {
	s, err := h.Sessions.Get(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if s.Class == nil || s.Class.Tab != wizard.TabRoom || s.Class.Draft.BranchID == nil {
		return nil
	}
	branchID := *s.Class.Draft.BranchID
	if roomsLoadedFor(s.Lookups.Rooms, branchID) {
		return nil
	}
	return loadRooms(ctx, h, telegramID, branchID)
}

func roomsLoadedFor(rooms []model.Room, branchID int64) bool {
	return len(rooms) > 0 && rooms[0].BranchID == branchID
}

func loadRooms(ctx context.Context, h *callbacktypes.Handler, telegramID, branchID int64) error {
	rooms, err := h.ScheduleService.Rooms(ctx, branchID)
	if err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}
	_, err = h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		s.Lookups.Rooms = rooms
		return nil
	})
	return err
}

// runRoomCheck проверяет конфликты аудиторий, если вкладка room этого ждёт
func runRoomCheck(ctx context.Context, h *callbacktypes.Handler, telegramID int64) error {
	var (
		run   bool
		gen   uint64
		draft wizard.ScheduleDraft
	)
	_, err := h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		if s.Class == nil || !s.Class.NeedsRoomCheck() {
			return nil
		}
		run = true
		gen = s.Class.BeginRequest(wizard.RequestRoomCheck)
		draft = s.Class.Draft
		return nil
	})
	if err != nil || !run {
		return err
	}

	res, err := h.ScheduleService.CheckConflicts(ctx, draft)
	if err != nil {
		return fmt.Errorf("check room conflicts: %w", err)
	}

	_, err = h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		if s.Class == nil || !s.Class.ApplyRoomCheck(gen, res) {
			h.Logger.Debug("Dropped stale room check", zap.Int64("telegram_id", telegramID), zap.Uint64("generation", gen))
		}
		return nil
	})
	return err
}

// runPreview запрашивает preview, если вкладка preview этого ждёт
func runPreview(ctx context.Context, h *callbacktypes.Handler, telegramID int64) error {
	var (
		run   bool
		gen   uint64
		draft wizard.ScheduleDraft
	)
	_, err := h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		if s.Class == nil || !s.Class.NeedsPreview() {
			return nil
		}
		run = true
		gen = s.Class.BeginRequest(wizard.RequestPreview)
		draft = s.Class.Draft
		return nil
	})
	if err != nil || !run {
		return err
	}

	preview, err := h.ScheduleService.Preview(ctx, draft)
	if err != nil {
		return fmt.Errorf("preview schedule: %w", err)
	}

	_, err = h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		if s.Class == nil || !s.Class.ApplyPreview(gen, preview) {
			h.Logger.Debug("Dropped stale preview", zap.Int64("telegram_id", telegramID), zap.Uint64("generation", gen))
		}
		return nil
	})
	return err
}

// loadGroups загружает группы филиала. Результат для уже сменённого филиала отбрасывается.
func loadGroups(ctx context.Context, h *callbacktypes.Handler, telegramID int64) error {
	var (
		gen      uint64
		branchID int64
	)
	_, err := h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		if s.Class == nil {
			return common.ErrSessionExpired
		}
		if s.Class.Draft.BranchID == nil {
			return common.ErrNothingLoaded
		}
		branchID = *s.Class.Draft.BranchID
		gen = s.Class.BeginRequest(wizard.RequestGroups)
		return nil
	})
	if err != nil {
		return err
	}

	groups, err := h.ScheduleService.Groups(ctx, branchID)
	if err != nil {
		return fmt.Errorf("load groups: %w", err)
	}

	_, err = h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		if s.Class == nil || !s.Class.Requests.IsCurrent(wizard.RequestGroups, gen) {
			h.Logger.Debug("Dropped stale group list", zap.Int64("telegram_id", telegramID), zap.Int64("branch_id", branchID))
			return nil
		}
		s.Lookups.Groups = groups
		return nil
	})
	return err
}

// loadBranches загружает филиалы один раз за сессию мастера
func loadBranches(ctx context.Context, h *callbacktypes.Handler, telegramID int64) (*state.Session, error) {
	s, err := h.Sessions.Get(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(s.Lookups.Branches) > 0 {
		return s, nil
	}

	branches, err := h.ScheduleService.Branches(ctx)
	if err != nil {
		return nil, err
	}
	return h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		s.Lookups.Branches = branches
		return nil
	})
}

// loadTeachers загружает преподавателей филиала для выбора
func loadTeachers(ctx context.Context, h *callbacktypes.Handler, telegramID int64, branchID *int64) (*state.Session, error) {
	s, err := h.Sessions.Get(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(s.Lookups.Teachers) > 0 {
		return s, nil
	}

	teachers, err := h.ScheduleService.Teachers(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		s.Lookups.Teachers = teachers
		return nil
	})
}
