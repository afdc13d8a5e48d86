package students

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/validation"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Callback data регистрации студента
const (
	Open      = "st:open"
	Field     = "st:field:" // st:field:phone
	Save      = "st:save"
	Cancel    = "st:cancel"
	StopInput = "st:noinput"
)

// Поля анкеты совпадают с json-именами запроса
const (
	fieldFirstName = "first_name"
	fieldLastName  = "last_name"
	fieldNickname  = "nickname_en"
	fieldPhone     = "phone"
	fieldCitizenID = "citizen_id"
)

type formField struct {
	key      string
	label    string
	hint     string
	required bool
}

var formFields = []formField{
	{fieldFirstName, "First name", "Send the first name", true},
	{fieldLastName, "Last name", "Send the last name", true},
	{fieldNickname, "Nickname", "Send the English nickname, or <code>-</code> to clear", false},
	{fieldPhone, "Phone", "Send the phone number, e.g. <code>0812345678</code>", true},
	{fieldCitizenID, "Citizen ID", "Send the 13-digit Thai citizen ID, or <code>-</code> to clear", false},
}

func lookupField(key string) (formField, bool) {
	for _, f := range formFields {
		if f.key == key {
			return f, true
		}
	}
	return formField{}, false
}

func fieldValue(req *model.RegisterStudentRequest, key string) string {
	switch key {
	case fieldFirstName:
		return req.FirstName
	case fieldLastName:
		return req.LastName
	case fieldNickname:
		return req.NicknameEn
	case fieldPhone:
		return req.Phone
	case fieldCitizenID:
		return req.CitizenID
	}
	return ""
}

// ApplyField записывает значение поля анкеты. "-" очищает необязательное поле.
func ApplyField(req *model.RegisterStudentRequest, key, value string) error {
	value = strings.TrimSpace(value)
	f, ok := lookupField(key)
	if !ok {
		return common.ErrInvalidFormat
	}
	if value == "-" && !f.required {
		value = ""
	}

	switch key {
	case fieldFirstName:
		req.FirstName = value
	case fieldLastName:
		req.LastName = value
	case fieldNickname:
		req.NicknameEn = value
	case fieldPhone:
		req.Phone = validation.NormalizePhone(value)
	case fieldCitizenID:
		req.CitizenID = strings.ReplaceAll(value, "-", "")
	}
	return nil
}

// Missing - незаполненные обязательные поля
func Missing(req *model.RegisterStudentRequest) []string {
	var out []string
	for _, f := range formFields {
		if f.required && fieldValue(req, f.key) == "" {
			out = append(out, strings.ToLower(f.label))
		}
	}
	return out
}

// FormScreen - анкета регистрации
func FormScreen(req *model.RegisterStudentRequest) common.Screen {
	var sb strings.Builder
	sb.WriteString("🎓 <b>Register student</b>\n\n")

	fieldButtons := make([]models.InlineKeyboardButton, 0, len(formFields))
	for _, f := range formFields {
		value := fieldValue(req, f.key)
		shown := "—"
		if value != "" {
			shown = html.EscapeString(value)
		}
		mark := ""
		if f.required {
			mark = "*"
		}
		sb.WriteString(fmt.Sprintf("%s%s: %s\n", f.label, mark, shown))
		fieldButtons = append(fieldButtons, keyboard.CheckButton(f.label, value != "", Field+f.key))
	}

	kb := keyboard.NewBuilder().Grid(fieldButtons, 2)
	if missing := Missing(req); len(missing) > 0 {
		sb.WriteString("\nStill needed: " + strings.Join(missing, ", "))
	} else {
		kb.Row(keyboard.Button("💾 Register", Save))
	}
	kb.Row(keyboard.CancelButton(Cancel))

	return common.Screen{Text: sb.String(), Keyboard: kb.Build()}
}

// RegisteredScreen - итог регистрации
func RegisteredScreen(student *model.Student) common.Screen {
	text := fmt.Sprintf("✅ <b>Student registered</b>\n\n%s\nID: <code>%d</code>",
		html.EscapeString(student.DisplayName()), student.ID)
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🎓 Register another", Open)).
		AddBackToMainButton().
		Build()
	return common.Screen{Text: text, Keyboard: kb}
}

// InputHint - подсказка поля, которое бот ждёт
func InputHint(s *state.Session) string {
	if s.State != state.StateStudentField {
		return ""
	}
	f, ok := lookupField(s.Get("field"))
	if !ok {
		return ""
	}
	return "✍️ <b>" + f.hint + "</b>"
}

// WithInputHint добавляет подсказку ввода и кнопку отмены ввода
func WithInputHint(s *state.Session, screen common.Screen) common.Screen {
	hint := InputHint(s)
	if hint == "" {
		return screen
	}
	screen.Text += "\n\n" + hint
	rows := append([][]models.InlineKeyboardButton{{keyboard.Button("✖️ Stop typing", StopInput)}}, screen.Keyboard.InlineKeyboard...)
	screen.Keyboard = &models.InlineKeyboardMarkup{InlineKeyboard: rows}
	return screen
}

// StartForm открывает пустую анкету новым сообщением (команда /newstudent)
func StartForm(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID, telegramID int64) error {
	screen := FormScreen(&model.RegisterStudentRequest{})
	msgID, err := common.SendScreen(ctx, b, chatID, screen)
	if err != nil {
		return err
	}
	_, err = h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		s.Student = &model.RegisterStudentRequest{}
		s.ClearInput()
		s.ChatID = chatID
		s.MessageID = msgID
		return nil
	})
	return err
}

// HandleOpen открывает пустую анкету
func HandleOpen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateForm(hc, "open_student_form", func(s *state.Session) error {
			s.Student = &model.RegisterStudentRequest{}
			s.ClearInput()
			return nil
		})
	})
}

// HandleField ждёт значение поля
func HandleField(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		key := strings.TrimPrefix(hc.Data(), Field)
		if _, ok := lookupField(key); !ok {
			common.Report(hc, common.ErrInvalidFormat, "student_field")
			return
		}
		updateForm(hc, "student_field", func(s *state.Session) error {
			if s.Student == nil {
				return common.ErrSessionExpired
			}
			s.SetState(state.StateStudentField, map[string]string{"field": key})
			return nil
		})
	})
}

// HandleStopInput перестаёт ждать ввод
func HandleStopInput(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateForm(hc, "student_stop_input", func(s *state.Session) error {
			if s.Student == nil {
				return common.ErrSessionExpired
			}
			s.ClearInput()
			return nil
		})
	})
}

// HandleSave регистрирует студента. При ошибке анкета остаётся открытой.
func HandleSave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		s, err := hc.Session()
		if err != nil {
			common.HandleError(hc, err, "register_student")
			return
		}
		if s.Student == nil {
			common.Report(hc, common.ErrSessionExpired, "register_student")
			return
		}

		student, err := h.StudentService.Register(hc.Ctx, hc.TelegramID, *s.Student)
		if err != nil {
			common.Report(hc, err, "register_student")
			return
		}

		if _, err := hc.UpdateSession(func(s *state.Session) error {
			s.Student = nil
			s.ClearInput()
			return nil
		}); err != nil {
			h.Logger.Warn("Failed to clear student form", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}

		if err := hc.Show(RegisteredScreen(student)); err != nil {
			common.HandleError(hc, err, "show_student")
			return
		}
		hc.Answer("Student registered")
	})
}

// HandleCancel закрывает анкету и возвращает в главное меню
func HandleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if _, err := hc.UpdateSession(func(s *state.Session) error {
			s.Student = nil
			s.ClearInput()
			return nil
		}); err != nil {
			common.HandleError(hc, err, "cancel_student")
			return
		}
		if err := hc.Show(common.MainMenuScreen(hc.Admin)); err != nil {
			common.HandleError(hc, err, "cancel_student")
			return
		}
		hc.Answer("")
	})
}

func updateForm(hc *common.HandlerContext, op string, fn func(s *state.Session) error) {
	s, err := hc.UpdateSession(fn)
	if err != nil {
		common.Report(hc, err, op)
		return
	}
	if err := hc.Show(WithInputHint(s, FormScreen(s.Student))); err != nil {
		common.HandleError(hc, err, op)
		return
	}
	hc.Answer("")
}

// IsInputState - бот ждёт поле анкеты
func IsInputState(st state.UserState) bool {
	return st == state.StateStudentField
}

// HandleInput проверяет поле сразу после ввода и перерисовывает анкету.
// Неверное значение оставляет ожидание ввода.
func HandleInput(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID int64, text string) error {
	s, err := h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		if s.Student == nil {
			return common.ErrSessionExpired
		}
		key := s.Get("field")
		f, ok := lookupField(key)
		if !ok {
			return common.ErrSessionExpired
		}
		value := strings.TrimSpace(text)
		if !(value == "-" && !f.required) {
			if err := h.StudentService.ValidateField(key, value); err != nil {
				return err
			}
		}
		if err := ApplyField(s.Student, key, value); err != nil {
			return err
		}
		s.ClearInput()
		return nil
	})
	if err != nil {
		return err
	}

	screen := FormScreen(s.Student)
	if s.MessageID == 0 {
		_, err = common.SendScreen(ctx, b, s.ChatID, screen)
		return err
	}
	return common.EditScreen(ctx, b, s.ChatID, s.MessageID, screen)
}

// Route распределяет callbacks регистрации (st:)
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	case data == Open:
		HandleOpen(ctx, b, callback, h)
	case strings.HasPrefix(data, Field):
		HandleField(ctx, b, callback, h)
	case data == Save:
		HandleSave(ctx, b, callback, h)
	case data == Cancel:
		HandleCancel(ctx, b, callback, h)
	case data == StopInput:
		HandleStopInput(ctx, b, callback, h)
	default:
		h.Logger.Warn("Unknown student callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
