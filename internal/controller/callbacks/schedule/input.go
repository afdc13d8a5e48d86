package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"github.com/go-telegram/bot"
)

// IsInputState - состояние текстового ввода, которое обрабатывает мастер расписаний
func IsInputState(st state.UserState) bool {
	switch st {
	case state.StateClassField, state.StateSessionTime, state.StateGroupField, state.StateGroupStudent,
		state.StateEventField, state.StateEventSlot, state.StateParticipantQuery:
		return true
	}
	return false
}

// HandleInput применяет текст пользователя к мастеру и перерисовывает окно.
// При ошибке ввода состояние не меняется и можно отправить значение ещё раз.
func HandleInput(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID int64, text string) error {
	text = strings.TrimSpace(text)

	switch h.Sessions.GetState(ctx, telegramID) {
	case state.StateParticipantQuery:
		return SearchParticipants(ctx, b, h, telegramID, text)
	case state.StateGroupStudent:
		return SearchStudents(ctx, b, h, telegramID, text)
	}

	_, err := h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		if s.Wizard == nil {
			return common.ErrSessionExpired
		}
		if err := ApplyInput(s, text); err != nil {
			return err
		}
		s.ClearInput()
		return nil
	})
	if err != nil {
		return err
	}
	return Sync(ctx, b, h, telegramID)
}

// ApplyInput записывает введённое значение в форму, которую ждёт текущее состояние
func ApplyInput(s *state.Session, text string) error {
	switch s.State {
	case state.StateClassField:
		if s.Class == nil {
			return common.ErrSessionExpired
		}
		return applyClassField(s.Class, s.Get("field"), text)

	case state.StateSessionTime:
		if s.Class == nil {
			return common.ErrSessionExpired
		}
		idx, err := strconv.Atoi(s.Get("index"))
		if err != nil {
			return fmt.Errorf("%w: session index %q", common.ErrInvalidFormat, s.Get("index"))
		}
		return applySessionTime(s.Class, idx, text)

	case state.StateGroupField:
		if s.Group == nil {
			return common.ErrSessionExpired
		}
		return applyGroupField(s.Group, s.Get("field"), text)

	case state.StateEventField:
		if s.Event == nil {
			return common.ErrSessionExpired
		}
		return applyEventField(&s.Event.Draft, s.Get("field"), text)

	case state.StateEventSlot:
		if s.Event == nil {
			return common.ErrSessionExpired
		}
		slot, err := wizard.ParseTimeSlot(text)
		if err != nil {
			return err
		}
		return s.Event.Draft.AddTimeSlot(slot)

	default:
		return common.ErrSessionExpired
	}
}

func applyClassField(f *wizard.ClassFlow, field, value string) error {
	if field == fieldStartDate {
		date, err := wizard.ParseDate(value)
		if err != nil {
			return err
		}
		return f.Dispatch(wizard.SetStartDate{Date: date})
	}
	return f.Dispatch(wizard.SetField{Field: wizard.Field(field), Value: value})
}

func applySessionTime(f *wizard.ClassFlow, idx int, value string) error {
	if idx < 0 || idx >= len(f.Draft.SessionTimes) {
		return wizard.ErrSessionIndex
	}
	clock := padClock(value)
	if !wizard.ValidClock(clock) {
		return wizard.ErrInvalidTime
	}
	st := f.Draft.SessionTimes[idx]
	st.StartTime = clock
	return f.Dispatch(wizard.UpdateSession{Index: idx, Session: st})
}

func applyGroupField(g *wizard.GroupForm, field, value string) error {
	switch field {
	case fieldGroupName:
		if value == "" {
			return fmt.Errorf("%w: empty group name", wizard.ErrInvalidValue)
		}
		g.GroupName = value
	case fieldLevel:
		g.Level = value
	case fieldDescription:
		g.Description = value
	case fieldMaxStudents:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: max students %q", wizard.ErrInvalidValue, value)
		}
		g.MaxStudents = n
	default:
		return fmt.Errorf("%w: %s", wizard.ErrUnknownField, field)
	}
	return nil
}

func applyEventField(d *wizard.EventDraft, field, value string) error {
	switch field {
	case string(wizard.FieldScheduleName):
		if value == "" {
			return fmt.Errorf("%w: empty name", wizard.ErrInvalidValue)
		}
		d.ScheduleName = value
	case string(wizard.FieldNotes):
		d.Notes = value
	case fieldStartDate:
		date, err := wizard.ParseDate(value)
		if err != nil {
			return err
		}
		d.StartDate = date.Format(wizard.DateLayout)
		if d.EndDate != "" && d.EndDate < d.StartDate {
			d.EndDate = ""
		}
	case fieldEndDate:
		date, err := wizard.ParseDate(value)
		if err != nil {
			return err
		}
		end := date.Format(wizard.DateLayout)
		if d.StartDate != "" && end < d.StartDate {
			return fmt.Errorf("%w: end date before start date", wizard.ErrInvalidValue)
		}
		d.EndDate = end
	default:
		return fmt.Errorf("%w: %s", wizard.ErrUnknownField, field)
	}
	return nil
}

// padClock превращает "9:00" в "09:00"
func padClock(s string) string {
	if len(s) == 4 && s[1] == ':' {
		return "0" + s
	}
	return s
}

