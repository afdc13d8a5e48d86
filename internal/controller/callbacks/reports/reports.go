package reports

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/attendance"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Callback data отчётов посещаемости
const (
	Open      = "at:open"
	Show      = "at:show"
	Kind      = "at:kind:"  // at:kind:weekly
	Shift     = "at:shift:" // at:shift:-1
	Today     = "at:today"
	Date      = "at:date"
	Load      = "at:load"
	Export    = "at:exp:" // at:exp:xlsx
	StopInput = "at:noinput"
)

// dailyRecordsLimit - сколько отметок дневного отчёта показывать в сообщении
const dailyRecordsLimit = 15

var kinds = []attendance.Kind{attendance.KindDaily, attendance.KindWeekly, attendance.KindMonthly}

// SetupScreen - выбор вида отчёта и даты
func SetupScreen(view state.AttendanceView) common.Screen {
	kindButtons := make([]models.InlineKeyboardButton, 0, len(kinds))
	for _, k := range kinds {
		kindButtons = append(kindButtons, keyboard.RadioButton(kindLabel(k), k == view.Kind, Kind+string(k)))
	}

	unit := periodUnit(view.Kind)
	kb := keyboard.NewBuilder().
		AddRow(kindButtons).
		Row(
			keyboard.Button("◀️ "+unit, Shift+"-1"),
			keyboard.Button("📅 Today", Today),
			keyboard.Button(unit+" ▶️", Shift+"1"),
		).
		Row(keyboard.Button("✍️ Type a date", Date)).
		Row(keyboard.Button("📊 Show report", Load)).
		AddBackToMainButton().
		Build()

	text := fmt.Sprintf("📊 <b>Attendance report</b>\n\nType: %s\nDate: %s",
		kindLabel(view.Kind), formatting.FormatDate(view.Date))
	return common.Screen{Text: text, Keyboard: kb}
}

// ReportScreen - карточки статистики и, для дневного отчёта, отметки преподавателей
func ReportScreen(res *service.ReportResult) common.Screen {
	var sb strings.Builder
	sb.WriteString(formatting.FormatStatCards(res.Report, res.Stats))

	switch r := res.Report.(type) {
	case attendance.DailyReport:
		sb.WriteString("\n\n" + formatting.FormatDailyRecords(r, dailyRecordsLimit))
	case *attendance.DailyReport:
		sb.WriteString("\n\n" + formatting.FormatDailyRecords(*r, dailyRecordsLimit))
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("⬇️ JSON", Export+"json"),
			keyboard.Button("⬇️ Excel", Export+"xlsx"),
		).
		AddBackButton(Show).
		Build()

	return common.Screen{Text: sb.String(), Keyboard: kb}
}

// ShiftDate сдвигает дату на период отчёта: день, неделю или месяц
func ShiftDate(kind attendance.Kind, date string, dir int) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidFormat, date)
	}
	switch kind {
	case attendance.KindWeekly:
		t = t.AddDate(0, 0, 7*dir)
	case attendance.KindMonthly:
		t = t.AddDate(0, dir, 0)
	default:
		t = t.AddDate(0, 0, dir)
	}
	return t.Format("2006-01-02"), nil
}

func kindLabel(k attendance.Kind) string {
	switch k {
	case attendance.KindWeekly:
		return "Weekly"
	case attendance.KindMonthly:
		return "Monthly"
	default:
		return "Daily"
	}
}

func periodUnit(k attendance.Kind) string {
	switch k {
	case attendance.KindWeekly:
		return "Week"
	case attendance.KindMonthly:
		return "Month"
	default:
		return "Day"
	}
}

// StartReport отправляет выбор отчёта новым сообщением (команда /attendance)
func StartReport(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID, chatID int64) error {
	view := state.AttendanceView{Kind: attendance.KindDaily, Date: h.AttendanceService.Today()}
	msgID, err := common.SendScreen(ctx, b, chatID, SetupScreen(view))
	if err != nil {
		return err
	}
	_, err = h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		s.Attendance = &view
		s.ClearInput()
		s.ChatID = chatID
		s.MessageID = msgID
		return nil
	})
	return err
}

// HandleOpen открывает выбор отчёта на сегодня
func HandleOpen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateView(hc, "open_attendance", func(v *state.AttendanceView) error {
			v.Kind = attendance.KindDaily
			v.Date = h.AttendanceService.Today()
			return nil
		})
	})
}

// HandleShow возвращает к выбору отчёта
func HandleShow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateView(hc, "show_attendance", func(v *state.AttendanceView) error { return nil })
	})
}

// HandleKind выбирает вид отчёта
func HandleKind(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		kind, err := attendance.ParseKind(strings.TrimPrefix(hc.Data(), Kind))
		if err != nil {
			common.Report(hc, fmt.Errorf("%w: %v", common.ErrInvalidFormat, err), "attendance_kind")
			return
		}
		updateView(hc, "attendance_kind", func(v *state.AttendanceView) error {
			v.Kind = kind
			return nil
		})
	})
}

// HandleShift листает дату на период отчёта
func HandleShift(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		dir, err := strconv.Atoi(strings.TrimPrefix(hc.Data(), Shift))
		if err != nil || (dir != 1 && dir != -1) {
			common.Report(hc, common.ErrInvalidFormat, "attendance_shift")
			return
		}
		updateView(hc, "attendance_shift", func(v *state.AttendanceView) error {
			date, err := ShiftDate(v.Kind, v.Date, dir)
			if err != nil {
				return err
			}
			v.Date = date
			return nil
		})
	})
}

// HandleToday возвращает дату на сегодня
func HandleToday(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateView(hc, "attendance_today", func(v *state.AttendanceView) error {
			v.Date = h.AttendanceService.Today()
			return nil
		})
	})
}

// HandleDate ждёт дату текстом
func HandleDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		s, err := hc.UpdateSession(func(s *state.Session) error {
			if s.Attendance == nil {
				return common.ErrSessionExpired
			}
			s.SetState(state.StateAttendanceDate, nil)
			return nil
		})
		if err != nil {
			common.Report(hc, err, "attendance_date")
			return
		}
		if err := hc.Show(withDateHint(SetupScreen(*s.Attendance))); err != nil {
			common.HandleError(hc, err, "attendance_date")
			return
		}
		hc.Answer("")
	})
}

// HandleStopInput перестаёт ждать дату
func HandleStopInput(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updateView(hc, "attendance_stop_input", func(v *state.AttendanceView) error { return nil })
	})
}

// HandleLoad запрашивает отчёт выбранного вида на выбранную дату
func HandleLoad(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		res, err := fetch(hc)
		if err != nil {
			common.Report(hc, err, "load_attendance")
			return
		}
		if err := hc.Show(ReportScreen(res)); err != nil {
			common.HandleError(hc, err, "show_attendance")
			return
		}
		hc.Answer("")
	})
}

// HandleExport отправляет отчёт файлом. Отчёт запрашивается заново,
// в сессии хранится только выбор вида и даты.
func HandleExport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		format := strings.TrimPrefix(hc.Data(), Export)

		res, err := fetch(hc)
		if err != nil {
			common.Report(hc, err, "export_attendance")
			return
		}

		name, data, err := h.AttendanceService.Export(res.Report, format)
		if err != nil {
			common.HandleError(hc, err, "export_attendance")
			return
		}

		caption := fmt.Sprintf("📎 %s attendance · %s", kindLabel(res.Report.Kind()), html.EscapeString(res.Report.Period()))
		if err := common.SendDocument(hc.Ctx, hc.Bot, hc.ChatID, name, data, caption); err != nil {
			common.HandleError(hc, err, "send_attendance_file")
			return
		}

		h.Logger.Info("Attendance exported",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("kind", string(res.Report.Kind())),
			zap.String("format", format))
		hc.Answer("")
	})
}

func fetch(hc *common.HandlerContext) (*service.ReportResult, error) {
	s, err := hc.Session()
	if err != nil {
		return nil, err
	}
	if s.Attendance == nil {
		return nil, common.ErrSessionExpired
	}
	return hc.Handler.AttendanceService.Fetch(hc.Ctx, s.Attendance.Kind, s.Attendance.Date)
}

// updateView меняет выбор отчёта и перерисовывает экран выбора
func updateView(hc *common.HandlerContext, op string, fn func(v *state.AttendanceView) error) {
	s, err := hc.UpdateSession(func(s *state.Session) error {
		if s.Attendance == nil {
			s.Attendance = &state.AttendanceView{
				Kind: attendance.KindDaily,
				Date: hc.Handler.AttendanceService.Today(),
			}
		}
		if s.State == state.StateAttendanceDate {
			s.ClearInput()
		}
		return fn(s.Attendance)
	})
	if err != nil {
		common.Report(hc, err, op)
		return
	}
	if err := hc.Show(SetupScreen(*s.Attendance)); err != nil {
		common.HandleError(hc, err, op)
		return
	}
	hc.Answer("")
}

func withDateHint(screen common.Screen) common.Screen {
	screen.Text += "\n\n✍️ <b>Send the date as YYYY-MM-DD</b>"
	rows := append([][]models.InlineKeyboardButton{{keyboard.Button("✖️ Stop typing", StopInput)}}, screen.Keyboard.InlineKeyboard...)
	screen.Keyboard = &models.InlineKeyboardMarkup{InlineKeyboard: rows}
	return screen
}

// IsInputState - бот ждёт дату отчёта
func IsInputState(st state.UserState) bool {
	return st == state.StateAttendanceDate
}

// HandleInput принимает дату отчёта текстом и перерисовывает экран выбора
func HandleInput(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID int64, text string) error {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("%w: date %q", common.ErrInvalidFormat, text)
	}

	s, err := h.Sessions.Update(ctx, telegramID, func(s *state.Session) error {
		if s.Attendance == nil {
			return common.ErrSessionExpired
		}
		s.Attendance.Date = date.Format("2006-01-02")
		s.ClearInput()
		return nil
	})
	if err != nil {
		return err
	}

	screen := SetupScreen(*s.Attendance)
	if s.MessageID == 0 {
		_, err = common.SendScreen(ctx, b, s.ChatID, screen)
		return err
	}
	return common.EditScreen(ctx, b, s.ChatID, s.MessageID, screen)
}

// Route распределяет callbacks отчётов (at:)
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	case data == Open:
		HandleOpen(ctx, b, callback, h)
	case data == Show:
		HandleShow(ctx, b, callback, h)
	case strings.HasPrefix(data, Kind):
		HandleKind(ctx, b, callback, h)
	case strings.HasPrefix(data, Shift):
		HandleShift(ctx, b, callback, h)
	case data == Today:
		HandleToday(ctx, b, callback, h)
	case data == Date:
		HandleDate(ctx, b, callback, h)
	case data == StopInput:
		HandleStopInput(ctx, b, callback, h)
	case data == Load:
		HandleLoad(ctx, b, callback, h)
	case strings.HasPrefix(data, Export):
		HandleExport(ctx, b, callback, h)
	default:
		h.Logger.Warn("Unknown attendance callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
