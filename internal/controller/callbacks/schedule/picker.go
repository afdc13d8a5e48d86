package schedule

import (
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

func groupItems(groups []model.GroupOption, selected *int64) []common.PickerItem {
	items := make([]common.PickerItem, 0, len(groups))
	for _, g := range groups {
		label := fmt.Sprintf("%s · %d/%d", g.GroupName, g.CurrentStudents, g.MaxStudents)
		if g.Status == model.GroupStatusFull {
			label += " · full"
		}
		if g.CourseName != "" {
			label += " · " + g.CourseName
		}
		items = append(items, common.PickerItem{
			Label:    label,
			Data:     fmt.Sprintf("%s%d", ClassGroup, g.ID),
			Selected: selected != nil && *selected == g.ID,
		})
	}
	return items
}

func teacherItems(teachers []model.Teacher, selected *int64, prefix string) []common.PickerItem {
	items := make([]common.PickerItem, 0, len(teachers))
	for _, t := range teachers {
		items = append(items, common.PickerItem{
			Label:    t.FullName(),
			Data:     fmt.Sprintf("%s%d", prefix, t.ID),
			Selected: selected != nil && *selected == t.ID,
		})
	}
	return items
}

func courseItems(courses []model.Course, selected int64) []common.PickerItem {
	items := make([]common.PickerItem, 0, len(courses))
	for _, c := range courses {
		label := c.Name
		if c.Level != "" {
			label += " · " + c.Level
		}
		items = append(items, common.PickerItem{
			Label:    label,
			Data:     fmt.Sprintf("%s%d", GroupCourse, c.ID),
			Selected: selected == c.ID,
		})
	}
	return items
}

// WeekdayPickerScreen - выбор дня недели для занятия index
func WeekdayPickerScreen(index int, current int) common.Screen {
	buttons := make([]models.InlineKeyboardButton, 0, 7)
	// неделя с понедельника, как в школьном расписании
	for _, wd := range []int{1, 2, 3, 4, 5, 6, 0} {
		buttons = append(buttons, keyboard.RadioButton(
			formatting.GetWeekdayShortName(wd), wd == current, fmt.Sprintf("%s%d:%d", SessionDay, index, wd)))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, 4).
		AddBackButton(ClassTab + "schedule").
		Build()

	return common.Screen{
		Text:     fmt.Sprintf("📆 Pick the weekday for session %d", index+1),
		Keyboard: kb,
	}
}

// PatternPickerScreen - выбор повторения
func PatternPickerScreen(current model.RecurringPattern, patterns []model.RecurringPattern, prefix, backData string) common.Screen {
	kb := keyboard.NewBuilder()
	for _, p := range patterns {
		kb.Row(keyboard.RadioButton(formatting.PatternLabel(p), p == current, prefix+string(p)))
	}
	kb.AddBackButton(backData)

	return common.Screen{Text: "🔁 How often does it repeat?", Keyboard: kb.Build()}
}
