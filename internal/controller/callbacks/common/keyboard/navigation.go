package keyboard

import "github.com/go-telegram/bot/models"

// MainMenuData - callback возврата в главное меню
const MainMenuData = "menu"

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Back", callbackData)
}

// BackToMainButton создаёт кнопку "В главное меню"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 Main menu", MainMenuData)
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancel", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirm", callbackData)
}

// ConfirmCancelButtons создаёт ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

// CheckButton - кнопка-переключатель с отметкой выбора
func CheckButton(text string, checked bool, callbackData string) models.InlineKeyboardButton {
	mark := "⬜ "
	if checked {
		mark = "✅ "
	}
	return Button(mark+text, callbackData)
}

// RadioButton - кнопка выбора одного значения из нескольких
func RadioButton(text string, selected bool, callbackData string) models.InlineKeyboardButton {
	if selected {
		return Button("• "+text+" •", callbackData)
	}
	return Button(text, callbackData)
}

// AddBackButton добавляет кнопку "Назад" к builder
func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

// AddBackToMainButton добавляет кнопку "В главное меню" к builder
func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}

// EditButton создаёт кнопку "Редактировать"
func EditButton(callbackData string) models.InlineKeyboardButton {
	return Button("✏️ Edit", callbackData)
}

// DeleteButton создаёт кнопку "Удалить"
func DeleteButton(callbackData string) models.InlineKeyboardButton {
	return Button("🗑 Delete", callbackData)
}
