package teachers

import (
	"context"
	"strconv"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/validation"
	"github.com/go-telegram/bot"
)

// clearValue - ввод, который очищает необязательное поле
const clearValue = "-"

// IsInputState - состояние текстового ввода раздела преподавателей
func IsInputState(st state.UserState) bool {
	switch st {
	case state.StateTeacherField, state.StateTeacherSearch, state.StateTeacherConfirm:
		return true
	}
	return false
}

// HandleInput применяет текст пользователя и перерисовывает окно раздела
func HandleInput(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID int64, text string) error {
	text = strings.TrimSpace(text)

	switch h.Sessions.GetState(ctx, telegramID) {
	case state.StateTeacherConfirm:
		return confirmDelete(ctx, b, h, telegramID, text)

	case state.StateTeacherSearch:
		s, err := h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
			v := listView(s)
			v.Search = text
			if text == clearValue {
				v.Search = ""
			}
			v.Page = 0
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
		return redraw(ctx, b, s, screen)

	case state.StateTeacherField:
		s, err := h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
			if s.Teacher == nil {
				return common.ErrSessionExpired
			}
			if err := ApplyField(&s.Teacher.Input, s.Get("field"), text); err != nil {
				return err
			}
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
		return redraw(ctx, b, s, screen)

	default:
		return common.ErrSessionExpired
	}
}

// ApplyField записывает значение текстового поля формы. "-" очищает поле.
// Полная проверка формы выполняется при сохранении.
func ApplyField(in *model.TeacherInput, field, value string) error {
	value = strings.TrimSpace(value)
	if value == clearValue {
		value = ""
	}

	switch field {
	case fieldFirstNameEn:
		in.FirstNameEn = value
	case fieldLastNameEn:
		in.LastNameEn = value
	case fieldNicknameEn:
		in.NicknameEn = value
	case fieldFirstNameTh:
		in.FirstNameTh = value
	case fieldLastNameTh:
		in.LastNameTh = value
	case fieldNicknameTh:
		in.NicknameTh = value
	case fieldNationality:
		in.Nationality = value
	case fieldEmail:
		in.Email = value
	case fieldPhone:
		in.Phone = value
	case fieldLineID:
		in.LineID = value
	case fieldSpecializations:
		in.Specializations = model.JoinList(model.SplitList(value))
	case fieldCertifications:
		in.Certifications = model.JoinList(model.SplitList(value))
	case fieldHourlyRate:
		if value == "" {
			in.HourlyRate = nil
			return nil
		}
		rate, err := strconv.Atoi(strings.ReplaceAll(value, ",", ""))
		if err != nil || rate < 0 {
			return validation.FieldErrors{fieldHourlyRate: "hourly_rate must be a whole number of baht"}
		}
		in.HourlyRate = &rate
	default:
		return common.ErrInvalidFormat
	}
	return nil
}

// redraw перерисовывает окно раздела, запомненное в сессии
func redraw(ctx context.Context, b *bot.Bot, s *state.Session, screen common.Screen) error {
	if s.MessageID == 0 {
		_, err := common.SendScreen(ctx, b, s.ChatID, screen)
		return err
	}
	return common.EditScreen(ctx, b, s.ChatID, s.MessageID, screen)
}
