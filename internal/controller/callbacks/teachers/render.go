package teachers

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// ListScreen - страница списка преподавателей с фильтрами
func ListScreen(page *service.TeacherPage, view state.TeacherListView, branches []model.Branch) common.Screen {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👩‍🏫 <b>Teachers</b> · %s\n", formatting.FormatNumber(page.Total)))
	if f := filterLine(view, branches); f != "" {
		sb.WriteString(f + "\n")
	}
	sb.WriteString("\n")

	if len(page.Teachers) == 0 {
		sb.WriteString("<i>No teachers found</i>")
	}
	offset := (page.Page - 1) * service.TeachersPageSize
	for i, t := range page.Teachers {
		sb.WriteString(formatting.FormatTeacherShort(t, offset+i+1) + "\n")
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(page.Teachers))
	for i, t := range page.Teachers {
		label := fmt.Sprintf("%d. %s", offset+i+1, common.Truncate(t.FullName(), 26))
		buttons = append(buttons, keyboard.Button(label, fmt.Sprintf("%s%d", View, t.ID)))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, 2).
		AddPagination(Page, page.Page-1, page.Pages).
		Row(
			keyboard.Button("🔍 Search", Search),
			keyboard.Button(activeLabel(view.Active), FilterActive),
			keyboard.Button("🏫 Branch", FilterBranches+"0"),
		)
	if hasFilters(view) {
		kb.Row(keyboard.Button("♻️ Clear filters", FilterClear))
	}
	kb.Row(keyboard.Button("➕ New teacher", New)).
		AddBackToMainButton()

	return common.Screen{Text: strings.TrimRight(sb.String(), "\n"), Keyboard: kb.Build()}
}

func filterLine(view state.TeacherListView, branches []model.Branch) string {
	var parts []string
	if view.Search != "" {
		parts = append(parts, fmt.Sprintf("🔍 “%s”", html.EscapeString(view.Search)))
	}
	if view.Active != nil {
		parts = append(parts, formatting.GetActiveDisplay(*view.Active).String())
	}
	if view.BranchID != nil {
		parts = append(parts, "🏫 "+branchName(branches, view.BranchID))
	}
	return strings.Join(parts, " · ")
}

func hasFilters(view state.TeacherListView) bool {
	return view.Search != "" || view.Active != nil || view.BranchID != nil
}

// activeLabel - подпись кнопки фильтра активности
func activeLabel(active *bool) string {
	switch {
	case active == nil:
		return "📊 All"
	case *active:
		return "✅ Active"
	default:
		return "⏸ Inactive"
	}
}

// nextActive переключает фильтр по кругу: все -> активные -> неактивные -> все
func nextActive(active *bool) *bool {
	switch {
	case active == nil:
		v := true
		return &v
	case *active:
		v := false
		return &v
	default:
		return nil
	}
}

// DetailScreen - карточка преподавателя только для чтения
func DetailScreen(t *model.Teacher) common.Screen {
	kb := keyboard.NewBuilder().
		Row(
			keyboard.EditButton(fmt.Sprintf("%s%d", Edit, t.ID)),
			keyboard.DeleteButton(fmt.Sprintf("%s%d", Delete, t.ID)),
		).
		AddBackButton(Back).
		Build()

	return common.Screen{Text: formatting.FormatTeacherInfo(t), Keyboard: kb}
}

// FormScreen - диалог создания или редактирования
func FormScreen(form *state.TeacherForm, branches []model.Branch) common.Screen {
	title := "➕ <b>New teacher</b>"
	if form.TeacherID != 0 {
		title = "✏️ <b>Edit teacher</b>"
	}

	text := fmt.Sprintf("%s\n\n%s\nBranch: %s\n\n<i>* required</i>",
		title, formatting.FormatTeacherInput(form.Input), branchName(branches, form.Input.BranchID))

	fields := make([]models.InlineKeyboardButton, 0, len(formFields))
	for _, f := range formFields {
		fields = append(fields, keyboard.Button(fieldLabels[f], Field+f))
	}

	types := make([]models.InlineKeyboardButton, 0, len(model.TeacherTypes))
	for _, t := range model.TeacherTypes {
		types = append(types, keyboard.RadioButton(string(t), t == form.Input.TeacherType, Type+string(t)))
	}

	kb := keyboard.NewBuilder().
		Grid(fields, 3).
		Grid(types, 2).
		Row(
			keyboard.CheckButton("Active", form.Input.Active, ToggleActive),
			keyboard.Button("🏫 Branch", Branches+"0"),
		).
		Row(
			keyboard.Button("💾 Save", Save),
			keyboard.Button("✖️ Cancel", Cancel),
		).
		Build()

	return common.Screen{Text: text, Keyboard: kb}
}

// ConfirmDeleteScreen просит ввести имя преподавателя
func ConfirmDeleteScreen(t *model.Teacher) common.Screen {
	text := fmt.Sprintf("🗑 <b>Delete %s?</b>\n\nThis cannot be undone. Send <code>%s</code> to confirm.",
		html.EscapeString(t.FullName()), html.EscapeString(t.ConfirmationName()))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✖️ Keep teacher", DeleteCancel)).
		Build()

	return common.Screen{Text: text, Keyboard: kb}
}

// DeletedScreen - итог удаления с возвратом к списку
func DeletedScreen(name string) common.Screen {
	return common.Screen{
		Text:     fmt.Sprintf("✅ Teacher <b>%s</b> deleted", html.EscapeString(name)),
		Keyboard: keyboard.NewBuilder().AddBackButton(Back).Build(),
	}
}

// SavedScreen - сообщение об успехе над карточкой
func SavedScreen(t *model.Teacher, created bool) common.Screen {
	screen := DetailScreen(t)
	verb := "updated"
	if created {
		verb = "created"
	}
	screen.Text = fmt.Sprintf("✅ Teacher %s\n\n%s", verb, screen.Text)
	return screen
}

// formFields - порядок кнопок текстовых полей формы
var formFields = []string{
	fieldFirstNameEn, fieldLastNameEn, fieldNicknameEn,
	fieldFirstNameTh, fieldLastNameTh, fieldNicknameTh,
	fieldNationality, fieldHourlyRate, fieldEmail,
	fieldPhone, fieldLineID, fieldSpecializations,
	fieldCertifications,
}

var fieldLabels = map[string]string{
	fieldFirstNameEn:     "First (EN)",
	fieldLastNameEn:      "Last (EN)",
	fieldNicknameEn:      "Nick (EN)",
	fieldFirstNameTh:     "First (TH)",
	fieldLastNameTh:      "Last (TH)",
	fieldNicknameTh:      "Nick (TH)",
	fieldNationality:     "Nationality",
	fieldHourlyRate:      "Rate",
	fieldEmail:           "Email",
	fieldPhone:           "Phone",
	fieldLineID:          "LINE",
	fieldSpecializations: "Specializations",
	fieldCertifications:  "Certifications",
}

var fieldHints = map[string]string{
	fieldFirstNameEn:     "first name in English",
	fieldLastNameEn:      "last name in English",
	fieldNicknameEn:      "nickname in English",
	fieldFirstNameTh:     "first name in Thai",
	fieldLastNameTh:      "last name in Thai",
	fieldNicknameTh:      "nickname in Thai",
	fieldNationality:     "nationality",
	fieldHourlyRate:      "hourly rate in baht",
	fieldEmail:           "email",
	fieldPhone:           "phone, for example 0812345678",
	fieldLineID:          "LINE ID",
	fieldSpecializations: "specializations separated by commas",
	fieldCertifications:  "certifications separated by commas",
}

// InputHint - что бот ждёт текстом в разделе преподавателей
func InputHint(s *state.Session) string {
	switch s.State {
	case state.StateTeacherField:
		hint := fieldHints[s.Get("field")]
		if hint == "" {
			hint = "value"
		}
		return "Send the " + hint + ". Send - to clear it"
	case state.StateTeacherSearch:
		return "Send a name, nickname or email to search"
	default:
		return ""
	}
}

// WithInputHint дописывает подсказку ввода и кнопку выхода из него
func WithInputHint(s *state.Session, screen common.Screen) common.Screen {
	hint := InputHint(s)
	if hint == "" {
		return screen
	}
	screen.Text += "\n\n✍️ <b>" + hint + "</b>"
	if screen.Keyboard != nil {
		rows := append([][]models.InlineKeyboardButton{{keyboard.Button("✖️ Stop typing", StopInput)}}, screen.Keyboard.InlineKeyboard...)
		screen.Keyboard = &models.InlineKeyboardMarkup{InlineKeyboard: rows}
	}
	return screen
}

func branchName(branches []model.Branch, id *int64) string {
	if id == nil {
		return "<i>not set</i>"
	}
	for _, b := range branches {
		if b.ID == *id {
			return html.EscapeString(b.Name())
		}
	}
	return fmt.Sprintf("#%d", *id)
}
