package schedule

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"github.com/go-telegram/bot/models"
)

// Render рисует окно мастера по сохранённой сессии
func Render(s *state.Session, policy wizard.RoomPolicy) common.Screen {
	if s.Wizard == nil {
		return ExpiredScreen()
	}

	var screen common.Screen
	switch {
	case s.Wizard.Step == wizard.StepTypeSelection:
		screen = typeSelectionScreen()
	case s.Wizard.Step == wizard.StepEventTypeSelection:
		screen = eventTypeScreen()
	case s.Wizard.ScheduleType == model.ScheduleTypeClass && s.Class != nil && s.Group != nil:
		screen = groupFormScreen(s)
	case s.Wizard.ScheduleType == model.ScheduleTypeClass && s.Class != nil:
		screen = classScreen(s, policy)
	case s.Event != nil:
		screen = eventScreen(s)
	default:
		return ExpiredScreen()
	}

	return withInputHint(s, screen)
}

// ExpiredScreen - окно мастера, сессия которого уже удалена
func ExpiredScreen() common.Screen {
	return common.Screen{
		Text:     "⌛ This form has expired. Start again from the menu.",
		Keyboard: keyboard.NewBuilder().AddBackToMainButton().Build(),
	}
}

// CreatedScreen - сообщение об успешном создании, удаляется через CloseDelay
func CreatedScreen(name string, t model.ScheduleType) common.Screen {
	display := formatting.GetScheduleTypeDisplay(t)
	return common.Screen{
		Text: fmt.Sprintf("✅ %s <b>%s</b> created successfully", display.Text, html.EscapeString(name)),
	}
}

func typeSelectionScreen() common.Screen {
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("🎓 Class", PickClass),
			keyboard.Button("🗓 Event", PickEvent),
		).
		Row(keyboard.Button("✖️ Close", Close)).
		Build()

	return common.Screen{
		Text:     "📅 <b>New schedule</b>\n\nWhat would you like to create?",
		Keyboard: kb,
	}
}

func eventTypeScreen() common.Screen {
	buttons := make([]models.InlineKeyboardButton, 0, len(model.EventTypes))
	for _, t := range model.EventTypes {
		buttons = append(buttons, keyboard.Button(formatting.GetScheduleTypeDisplay(t).String(), EventType+string(t)))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, 2).
		Row(keyboard.BackButton(Back), keyboard.Button("✖️ Close", Close)).
		Build()

	return common.Screen{
		Text:     "🗓 <b>New event</b>\n\nPick the event type",
		Keyboard: kb,
	}
}

// ===== Класс =====

func classScreen(s *state.Session, policy wizard.RoomPolicy) common.Screen {
	f := s.Class

	var body string
	kb := keyboard.NewBuilder()
	kb.AddRow(tabsRow(wizard.ClassTabs, f.Tab, ClassTab))

	switch f.Tab {
	case wizard.TabBasic:
		body = classBasicText(f.Draft, s.Lookups)
		classBasicButtons(kb, f.Draft)
	case wizard.TabSchedule:
		body = classScheduleText(f.Draft)
		classScheduleButtons(kb, f.Draft)
	case wizard.TabRoom:
		body = classRoomText(f, s.Lookups)
		classRoomButtons(kb, f, s.Lookups, policy)
	case wizard.TabPreview:
		body = classPreviewText(f, s.Lookups)
		classPreviewButtons(kb, f)
	}

	kb.AddRow(navRow(wizard.ClassTabs, f.Tab, ClassPrev, ClassNext))
	kb.Row(
		keyboard.Button("↩️ Type", Back),
		keyboard.Button("♻️ Reset", ClassReset),
		keyboard.Button("✖️ Close", Close),
	)

	text := "🎓 <b>New class schedule</b>\n\n" + body
	return common.Screen{Text: text, Keyboard: kb.Build()}
}

func classBasicText(d wizard.ScheduleDraft, l state.Lookups) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📝 Name: %s\n", valueOrEmpty(d.ScheduleName)))
	sb.WriteString(fmt.Sprintf("🏫 Branch: %s\n", branchName(l.Branches, d.BranchID)))
	sb.WriteString(fmt.Sprintf("👥 Group: %s\n", groupLabel(l.Groups, d.GroupID)))
	if d.GroupID != nil {
		sb.WriteString(fmt.Sprintf("   max %s\n", formatting.PluralizeStudents(d.MaxStudents)))
	}
	sb.WriteString(fmt.Sprintf("👩‍🏫 Teacher: %s\n", teacherName(l.Teachers, d.DefaultTeacherID)))
	sb.WriteString(fmt.Sprintf("🗒 Notes: %s\n", valueOrEmpty(d.Notes)))
	sb.WriteString(fmt.Sprintf("🔁 Shift sessions off holidays: %s\n", onOff(d.AutoReschedule)))
	sb.WriteString("\n" + readinessLine(d))
	return sb.String()
}

func classBasicButtons(kb *keyboard.Builder, d wizard.ScheduleDraft) {
	kb.Row(
		keyboard.Button("📝 Name", ClassField+string(wizard.FieldScheduleName)),
		keyboard.Button("🏫 Branch", ClassBranches+"0"),
	)
	if d.BranchID != nil {
		kb.Row(
			keyboard.Button("👥 Group", ClassGroups+"0"),
			keyboard.Button("➕ New group", GroupOpen),
		)
	}
	kb.Row(
		keyboard.Button("👩‍🏫 Teacher", ClassTeachers+"0"),
		keyboard.Button("🗒 Notes", ClassField+string(wizard.FieldNotes)),
	)
	kb.Row(keyboard.CheckButton("Shift sessions off holidays", d.AutoReschedule, ClassAuto))
}

func classScheduleText(d wizard.ScheduleDraft) string {
	var sb strings.Builder
	start := "<i>empty</i>"
	if d.StartDate != "" {
		start = formatting.FormatDate(d.StartDate)
	}
	sb.WriteString(fmt.Sprintf("📅 Start date: %s\n", start))
	sb.WriteString(fmt.Sprintf("⏱ Total: %s\n", hoursOrEmpty(d.TotalHours)))
	sb.WriteString(fmt.Sprintf("⌛ Per session: %s\n", hoursOrEmpty(d.HoursPerSession)))

	pattern := formatting.PatternLabel(d.RecurringPattern)
	if len(d.SessionTimes) > 1 {
		pattern = formatting.PatternLabel(model.RecurringCustom)
	}
	sb.WriteString(fmt.Sprintf("🔁 Repeats: %s\n", pattern))
	sb.WriteString(fmt.Sprintf("🗓 Sessions per week: %d\n", d.SessionPerWeek))
	for i, st := range d.SessionTimes {
		sb.WriteString(fmt.Sprintf("   %d. %s\n", i+1, formatting.FormatSessionTime(st)))
	}
	if len(d.SessionTimes) == 0 {
		sb.WriteString("   <i>no sessions, add at least one</i>\n")
	}
	sb.WriteString("\n" + readinessLine(d))
	return sb.String()
}

func classScheduleButtons(kb *keyboard.Builder, d wizard.ScheduleDraft) {
	kb.Row(
		keyboard.Button("📅 Start date", ClassField+fieldStartDate),
		keyboard.Button("🔁 Repeats", ClassPatterns),
	)
	kb.Row(
		keyboard.Button("⏱ Total hours", ClassField+string(wizard.FieldTotalHours)),
		keyboard.Button("⌛ Hours/session", ClassField+string(wizard.FieldHoursPerSession)),
	)
	for i, st := range d.SessionTimes {
		kb.Row(
			keyboard.Button(fmt.Sprintf("%d. %s", i+1, formatting.FormatSessionTime(st)), fmt.Sprintf("%s%d", SessionDays, i)),
			keyboard.Button("🕘 Time", fmt.Sprintf("%s%d", SessionTime, i)),
			keyboard.Button("🗑", fmt.Sprintf("%s%d", SessionDel, i)),
		)
	}
	kb.Row(keyboard.Button("➕ Add session", SessionAdd))
}

func classRoomText(f *wizard.ClassFlow, l state.Lookups) string {
	d := f.Draft
	var sb strings.Builder

	if d.BranchID == nil {
		return "🏫 Pick a branch on the Basic tab first\n\n" + readinessLine(d)
	}

	sb.WriteString(fmt.Sprintf("🏫 %s · group of %d\n", branchName(l.Branches, d.BranchID), d.MaxStudents))
	sb.WriteString(fmt.Sprintf("🚪 Room: %s\n\n", roomName(l.Rooms, d.RoomID)))

	if !wizard.IsRoomCheckReady(d) {
		sb.WriteString("🔍 Fill in start date, hours and session times to check availability\n")
	} else {
		sb.WriteString(formatting.FormatConflicts(f.Conflicts) + "\n")
	}
	if f.SelectedRoomConflicts() {
		sb.WriteString("\n⚠️ <b>The selected room is busy.</b> Pick another one to continue\n")
	}
	sb.WriteString("\n⭐ recommended · ⚠️ busy\n")
	sb.WriteString(readinessLine(d))
	return sb.String()
}

func classRoomButtons(kb *keyboard.Builder, f *wizard.ClassFlow, l state.Lookups, policy wizard.RoomPolicy) {
	d := f.Draft
	if d.BranchID == nil {
		return
	}

	options := policy.RankRooms(*d.BranchID, l.Rooms, d.MaxStudents, f.Conflicts)
	buttons := make([]models.InlineKeyboardButton, 0, len(options))
	for _, o := range options {
		buttons = append(buttons, keyboard.Button(roomOptionLabel(o, d.RoomID), fmt.Sprintf("%s%d", ClassRoom, o.Room.ID)))
	}
	kb.Grid(buttons, 2)

	if wizard.IsRoomCheckReady(d) {
		kb.Row(keyboard.Button("🔍 Check availability", ClassCheck))
	}
}

func roomOptionLabel(o wizard.RoomOption, selected *int64) string {
	var mark string
	switch {
	case selected != nil && *selected == o.Room.ID:
		mark = "✅ "
	case o.HasConflict:
		mark = "⚠️ "
	case o.Recommended:
		mark = "⭐ "
	}
	return common.Truncate(fmt.Sprintf("%s%s (%d)", mark, o.Room.RoomName, o.Room.Capacity), 40)
}

func classPreviewText(f *wizard.ClassFlow, l state.Lookups) string {
	d := f.Draft
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<b>%s</b>\n", valueOrEmpty(d.ScheduleName)))
	sb.WriteString(fmt.Sprintf("👥 %s · 👩‍🏫 %s · 🚪 %s\n\n",
		groupLabel(l.Groups, d.GroupID), teacherName(l.Teachers, d.DefaultTeacherID), roomName(l.Rooms, d.RoomID)))

	if !wizard.IsPreviewReady(d) {
		sb.WriteString(readinessLine(d))
		return sb.String()
	}
	sb.WriteString(formatting.FormatPreview(f.Preview))
	return sb.String()
}

func classPreviewButtons(kb *keyboard.Builder, f *wizard.ClassFlow) {
	if !wizard.IsPreviewReady(f.Draft) {
		return
	}
	row := []models.InlineKeyboardButton{keyboard.Button("🔄 Refresh", ClassPreview)}
	if f.Preview != nil && len(f.Preview.Sessions) > 0 {
		row = append(row, keyboard.Button("🖼 Week view", ClassImage+"0"))
	}
	kb.AddRow(row)

	if f.CanCreate() == nil {
		kb.Row(keyboard.Button("✅ Create schedule", ClassCreate))
	}
}

// missingForPreview перечисляет незаполненные поля, нужные для preview
func missingForPreview(d wizard.ScheduleDraft) []string {
	var missing []string
	if strings.TrimSpace(d.ScheduleName) == "" {
		missing = append(missing, "name")
	}
	if d.GroupID == nil {
		missing = append(missing, "group")
	}
	if d.DefaultTeacherID == nil {
		missing = append(missing, "teacher")
	}
	if d.StartDate == "" {
		missing = append(missing, "start date")
	}
	if d.TotalHours <= 0 {
		missing = append(missing, "total hours")
	}
	if d.HoursPerSession <= 0 {
		missing = append(missing, "hours per session")
	}
	if !sessionTimesSet(d.SessionTimes) {
		missing = append(missing, "session times")
	}
	if d.RoomID == nil {
		missing = append(missing, "room")
	}
	return missing
}

func sessionTimesSet(sessions []model.SessionTime) bool {
	if len(sessions) == 0 {
		return false
	}
	for _, st := range sessions {
		if st.StartTime == "" {
			return false
		}
	}
	return true
}

func readinessLine(d wizard.ScheduleDraft) string {
	missing := missingForPreview(d)
	if len(missing) == 0 {
		return "✅ Ready for preview"
	}
	return "✏️ Still needed: " + strings.Join(missing, ", ")
}

// ===== Новая группа =====

func groupFormScreen(s *state.Session) common.Screen {
	g := s.Group

	var sb strings.Builder
	sb.WriteString("👥 <b>New group</b>\n\n")
	sb.WriteString(fmt.Sprintf("📝 Name: %s\n", valueOrEmpty(g.GroupName)))
	sb.WriteString(fmt.Sprintf("📚 Course: %s\n", courseName(s.Lookups.Courses, g.CourseID)))
	sb.WriteString(fmt.Sprintf("🎚 Level: %s\n", valueOrEmpty(g.Level)))
	sb.WriteString(fmt.Sprintf("👥 Max students: %s\n", intOrEmpty(g.MaxStudents)))
	sb.WriteString(fmt.Sprintf("💳 Payment: %s\n", formatting.PaymentStatusLabel(g.PaymentStatus)))
	sb.WriteString(fmt.Sprintf("🗒 Description: %s\n", valueOrEmpty(g.Description)))

	sb.WriteString(fmt.Sprintf("\n🧑‍🎓 Students (%d):\n", len(g.StudentIDs)))
	for _, id := range g.StudentIDs {
		sb.WriteString(fmt.Sprintf("   • %s\n", html.EscapeString(g.StudentNames[id])))
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("📝 Name", GroupField+fieldGroupName),
			keyboard.Button("📚 Course", GroupCourses+"0"),
		).
		Row(
			keyboard.Button("🎚 Level", GroupField+fieldLevel),
			keyboard.Button("👥 Max students", GroupField+fieldMaxStudents),
		).
		Row(keyboard.Button("🗒 Description", GroupField+fieldDescription))

	payButtons := make([]models.InlineKeyboardButton, 0, len(model.PaymentStatuses))
	for _, p := range model.PaymentStatuses {
		payButtons = append(payButtons, keyboard.RadioButton(formatting.PaymentStatusLabel(p), p == g.PaymentStatus, GroupPay+string(p)))
	}
	kb.AddRow(payButtons)

	// найденные студенты и уже выбранные
	selected := make(map[int64]bool, len(g.StudentIDs))
	for _, id := range g.StudentIDs {
		selected[id] = true
	}
	shown := make(map[int64]bool)
	var studentButtons []models.InlineKeyboardButton
	for _, st := range s.Lookups.Students {
		shown[st.ID] = true
		studentButtons = append(studentButtons, keyboard.CheckButton(
			common.Truncate(st.DisplayName(), 30), selected[st.ID], fmt.Sprintf("%s%d", GroupToggle, st.ID)))
	}
	for _, id := range g.StudentIDs {
		if shown[id] {
			continue
		}
		studentButtons = append(studentButtons, keyboard.CheckButton(
			common.Truncate(g.StudentNames[id], 30), true, fmt.Sprintf("%s%d", GroupToggle, id)))
	}
	kb.Grid(studentButtons, 2)

	kb.Row(keyboard.Button("🔍 Find students", GroupSearch))
	kb.Row(
		keyboard.Button("💾 Create group", GroupSave),
		keyboard.Button("✖️ Cancel", GroupCancel),
	)

	return common.Screen{Text: strings.TrimRight(sb.String(), "\n"), Keyboard: kb.Build()}
}

// ===== Событие =====

func eventScreen(s *state.Session) common.Screen {
	f := s.Event
	d := f.Draft
	display := formatting.GetScheduleTypeDisplay(d.ScheduleType)

	var body string
	kb := keyboard.NewBuilder()
	kb.AddRow(tabsRow(wizard.EventTabs, f.Tab, ""))

	switch f.Tab {
	case wizard.TabBasic:
		body = eventBasicText(f, s.Lookups)
		eventBasicButtons(kb, f)
	case wizard.TabSchedule:
		body = eventScheduleText(d)
		eventScheduleButtons(kb, d)
	case wizard.TabPreview:
		body = eventPreviewText(d, s.Lookups)
		if wizard.IsEventReady(d) {
			kb.Row(keyboard.Button("✅ Create "+strings.ToLower(display.Text), EventCreate))
		}
	}

	kb.AddRow(navRow(wizard.EventTabs, f.Tab, EventPrev, EventNext))
	kb.Row(
		keyboard.Button("↩️ Type", Back),
		keyboard.Button("✖️ Close", Close),
	)

	text := fmt.Sprintf("%s <b>New %s</b>\n\n%s", display.Emoji, strings.ToLower(display.Text), body)
	return common.Screen{Text: text, Keyboard: kb.Build()}
}

func eventBasicText(f *wizard.EventFlow, l state.Lookups) string {
	d := f.Draft
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📝 Name: %s\n", valueOrEmpty(d.ScheduleName)))
	sb.WriteString(fmt.Sprintf("🏫 Branch: %s\n", branchName(l.Branches, d.BranchID)))
	sb.WriteString(fmt.Sprintf("🚪 Room: %s\n", roomName(l.Rooms, d.RoomID)))
	sb.WriteString(fmt.Sprintf("🧑‍💼 Organizer: %s\n", teacherName(l.Teachers, d.OrganizerID)))
	sb.WriteString(fmt.Sprintf("🗒 Notes: %s\n", valueOrEmpty(d.Notes)))

	required := ""
	if d.ParticipantsRequired() {
		required = " (required)"
	}
	sb.WriteString(fmt.Sprintf("\n👥 Participants%s: %d\n", required, len(d.ParticipantIDs)))
	for _, id := range d.ParticipantIDs {
		sb.WriteString(fmt.Sprintf("   • %s\n", html.EscapeString(participantName(d, id))))
	}

	if f.Search != "" {
		sb.WriteString(fmt.Sprintf("\n🔍 Results for “%s”: %d\n", html.EscapeString(f.Search), len(f.Found)))
	}
	return sb.String()
}

func eventBasicButtons(kb *keyboard.Builder, f *wizard.EventFlow) {
	d := f.Draft
	kb.Row(
		keyboard.Button("📝 Name", EventField+string(wizard.FieldScheduleName)),
		keyboard.Button("🏫 Branch", EventBranches+"0"),
	)
	row := []models.InlineKeyboardButton{keyboard.Button("🧑‍💼 Organizer", EventOrganizers+"0")}
	if d.BranchID != nil {
		row = append(row, keyboard.Button("🚪 Room", EventRooms+"0"))
	}
	kb.AddRow(row)
	kb.Row(
		keyboard.Button("🗒 Notes", EventField+string(wizard.FieldNotes)),
		keyboard.Button("🔍 Find participants", EventSearch),
	)

	var found []models.InlineKeyboardButton
	for _, u := range f.Found {
		if containsID(d.ParticipantIDs, u.ID) {
			continue
		}
		found = append(found, keyboard.Button("➕ "+common.Truncate(userLabel(u), 28), fmt.Sprintf("%s%d", EventParticipant, u.ID)))
	}
	kb.Grid(found, 2)

	var chosen []models.InlineKeyboardButton
	for _, id := range d.ParticipantIDs {
		chosen = append(chosen, keyboard.Button("✖️ "+common.Truncate(participantName(d, id), 28), fmt.Sprintf("%s%d", EventParticipantX, id)))
	}
	kb.Grid(chosen, 2)
}

func eventScheduleText(d wizard.EventDraft) string {
	var sb strings.Builder
	start := "<i>empty</i>"
	if d.StartDate != "" {
		start = formatting.FormatDate(d.StartDate)
	}
	end := "same as start"
	if d.EndDate != "" {
		end = formatting.FormatDate(d.EndDate)
	}
	sb.WriteString(fmt.Sprintf("📅 Start date: %s\n", start))
	sb.WriteString(fmt.Sprintf("🏁 End date: %s\n", end))
	sb.WriteString(fmt.Sprintf("🔁 Repeats: %s\n", formatting.PatternLabel(d.RecurringPattern)))
	sb.WriteString(fmt.Sprintf("\n🕘 Time slots (%d):\n", len(d.TimeSlots)))
	for i, ts := range d.TimeSlots {
		sb.WriteString(fmt.Sprintf("   %d. %s\n", i+1, formatting.FormatTimeSlot(ts)))
	}
	if len(d.TimeSlots) == 0 {
		sb.WriteString("   <i>add at least one slot</i>\n")
	}
	return sb.String()
}

func eventScheduleButtons(kb *keyboard.Builder, d wizard.EventDraft) {
	kb.Row(
		keyboard.Button("📅 Start date", EventField+fieldStartDate),
		keyboard.Button("🏁 End date", EventField+fieldEndDate),
	)
	kb.Row(keyboard.Button("🔁 Repeats", EventPatterns))

	var slots []models.InlineKeyboardButton
	for i, ts := range d.TimeSlots {
		slots = append(slots, keyboard.Button("🗑 "+formatting.FormatTimeSlot(ts), fmt.Sprintf("%s%d", EventSlotDel, i)))
	}
	kb.Grid(slots, 1)
	kb.Row(keyboard.Button("➕ Add time slot", EventSlotAdd))
}

// eventPreviewText - локальная сводка события, сервер preview для событий не считает
func eventPreviewText(d wizard.EventDraft, l state.Lookups) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%s</b>\n", valueOrEmpty(d.ScheduleName)))
	sb.WriteString(fmt.Sprintf("🏫 %s · 🚪 %s\n", branchName(l.Branches, d.BranchID), roomName(l.Rooms, d.RoomID)))
	sb.WriteString(fmt.Sprintf("🧑‍💼 %s\n", teacherName(l.Teachers, d.OrganizerID)))
	sb.WriteString(fmt.Sprintf("📅 %s", formatting.FormatDate(d.StartDate)))
	if d.EndDate != "" && d.EndDate != d.StartDate {
		sb.WriteString(" → " + formatting.FormatDate(d.EndDate))
	}
	sb.WriteString(fmt.Sprintf(" · %s\n", formatting.PatternLabel(d.RecurringPattern)))
	for _, ts := range d.TimeSlots {
		sb.WriteString(fmt.Sprintf("   🕘 %s\n", formatting.FormatTimeSlot(ts)))
	}
	sb.WriteString(fmt.Sprintf("👥 %d participants\n\n", len(d.ParticipantIDs)))

	if wizard.IsEventReady(d) {
		sb.WriteString("✅ Ready to create")
	} else {
		sb.WriteString("✏️ Name, start date, a time slot and participants are required")
	}
	return sb.String()
}

// ===== Общие элементы =====

// tabsRow - ряд вкладок; при пустом prefix вкладки только показывают позицию
func tabsRow(tabs []wizard.Tab, current wizard.Tab, prefix string) []models.InlineKeyboardButton {
	row := make([]models.InlineKeyboardButton, 0, len(tabs))
	for i, t := range tabs {
		data := keyboard.NoopData
		if prefix != "" {
			data = prefix + string(t)
		}
		row = append(row, keyboard.RadioButton(fmt.Sprintf("%d %s", i+1, tabTitle(t)), t == current, data))
	}
	return row
}

func navRow(tabs []wizard.Tab, current wizard.Tab, prevData, nextData string) []models.InlineKeyboardButton {
	idx := -1
	for i, t := range tabs {
		if t == current {
			idx = i
		}
	}
	var row []models.InlineKeyboardButton
	if idx > 0 {
		row = append(row, keyboard.Button("⬅️ Previous", prevData))
	}
	if idx >= 0 && idx < len(tabs)-1 {
		row = append(row, keyboard.Button("Next ➡️", nextData))
	}
	return row
}

func tabTitle(t wizard.Tab) string {
	switch t {
	case wizard.TabBasic:
		return "Basic"
	case wizard.TabSchedule:
		return "Schedule"
	case wizard.TabRoom:
		return "Room"
	case wizard.TabPreview:
		return "Preview"
	default:
		return string(t)
	}
}

func withInputHint(s *state.Session, screen common.Screen) common.Screen {
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

// InputHint - что бот ждёт текстом в текущем состоянии
func InputHint(s *state.Session) string {
	field := s.Get("field")
	switch s.State {
	case state.StateClassField, state.StateEventField, state.StateGroupField:
		return "Send the " + fieldTitle(field)
	case state.StateSessionTime:
		return fmt.Sprintf("Send the start time for session %s as HH:MM", indexTitle(s.Get("index")))
	case state.StateGroupStudent:
		return "Send a student name or phone to search"
	case state.StateEventSlot:
		return "Send a time slot, for example: mon 09:00-10:30"
	case state.StateParticipantQuery:
		return "Send a name to search participants. Each new message replaces the search"
	default:
		return ""
	}
}

func fieldTitle(field string) string {
	titles := map[string]string{
		string(wizard.FieldScheduleName):    "schedule name",
		string(wizard.FieldNotes):           "notes",
		string(wizard.FieldTotalHours):      "total hours (number)",
		string(wizard.FieldHoursPerSession): "hours per session (number)",
		fieldStartDate:                      "start date as YYYY-MM-DD",
		fieldEndDate:                        "end date as YYYY-MM-DD",
		fieldGroupName:                      "group name",
		fieldLevel:                          "group level",
		fieldMaxStudents:                    "maximum number of students",
		fieldDescription:                    "group description",
	}
	if t, ok := titles[field]; ok {
		return t
	}
	return "value"
}

func indexTitle(raw string) string {
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return raw
	}
	return fmt.Sprintf("%d", n+1)
}

func valueOrEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "<i>empty</i>"
	}
	return html.EscapeString(s)
}

func intOrEmpty(n int) string {
	if n <= 0 {
		return "<i>empty</i>"
	}
	return fmt.Sprintf("%d", n)
}

func hoursOrEmpty(n int) string {
	if n <= 0 {
		return "<i>empty</i>"
	}
	return formatting.FormatHours(n)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func branchName(branches []model.Branch, id *int64) string {
	if id == nil {
		return "<i>not selected</i>"
	}
	for _, b := range branches {
		if b.ID == *id {
			return html.EscapeString(b.Name())
		}
	}
	return fmt.Sprintf("#%d", *id)
}

func groupLabel(groups []model.GroupOption, id *int64) string {
	if id == nil {
		return "<i>not selected</i>"
	}
	for _, g := range groups {
		if g.ID == *id {
			return html.EscapeString(g.GroupName)
		}
	}
	return fmt.Sprintf("#%d", *id)
}

func teacherName(teachers []model.Teacher, id *int64) string {
	if id == nil {
		return "<i>not selected</i>"
	}
	for _, t := range teachers {
		if t.ID == *id {
			return html.EscapeString(t.FullName())
		}
	}
	return fmt.Sprintf("#%d", *id)
}

func roomName(rooms []model.Room, id *int64) string {
	if id == nil {
		return "<i>not selected</i>"
	}
	for _, r := range rooms {
		if r.ID == *id {
			return html.EscapeString(r.RoomName)
		}
	}
	return fmt.Sprintf("#%d", *id)
}

func courseName(courses []model.Course, id int64) string {
	if id == 0 {
		return "<i>not selected</i>"
	}
	for _, c := range courses {
		if c.ID == id {
			return html.EscapeString(c.Name)
		}
	}
	return fmt.Sprintf("#%d", id)
}

func participantName(d wizard.EventDraft, id int64) string {
	if name := d.Participants[id]; name != "" {
		return name
	}
	return fmt.Sprintf("user #%d", id)
}

func userLabel(u model.User) string {
	if u.Username != "" {
		return u.Username
	}
	if u.Email != "" {
		return u.Email
	}
	return fmt.Sprintf("user #%d", u.ID)
}

func containsID(ids []int64, id int64) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
