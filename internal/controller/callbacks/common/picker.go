package common

import (
	"fmt"
	"strconv"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

const pickerPageSize = 8

// PickerItem - строка списка выбора
type PickerItem struct {
	Label    string
	Data     string
	Selected bool
}

// PickerScreen - список выбора с пагинацией (page 0-based)
func PickerScreen(title string, items []PickerItem, page int, pagePrefix, backData string) Screen {
	pages := (len(items) + pickerPageSize - 1) / pickerPageSize
	if page >= pages {
		page = pages - 1
	}
	if page < 0 {
		page = 0
	}

	text := title
	if len(items) == 0 {
		text += "\n\n<i>Nothing found</i>"
	}

	kb := keyboard.NewBuilder()
	start := page * pickerPageSize
	end := start + pickerPageSize
	if end > len(items) {
		end = len(items)
	}
	for _, it := range items[start:end] {
		label := it.Label
		if it.Selected {
			label = "✅ " + label
		}
		kb.Row(keyboard.Button(Truncate(label, 60), it.Data))
	}
	kb.AddPagination(pagePrefix, page, pages)
	kb.AddBackButton(backData)

	return Screen{Text: text, Keyboard: kb.Build()}
}

// PageArg - номер страницы из callback data, по умолчанию 0
func PageArg(args []string) int {
	if len(args) == 0 {
		return 0
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// BranchItems - филиалы для списка выбора
func BranchItems(branches []model.Branch, selected *int64, prefix string) []PickerItem {
	items := make([]PickerItem, 0, len(branches))
	for _, b := range branches {
		items = append(items, PickerItem{
			Label:    b.Name(),
			Data:     fmt.Sprintf("%s%d", prefix, b.ID),
			Selected: selected != nil && *selected == b.ID,
		})
	}
	return items
}
