package common

import (
	"errors"

	"github.com/Freeeeeet/school_admin_bot/internal/apiclient"
	"github.com/Freeeeeet/school_admin_bot/internal/service"
	"github.com/Freeeeeet/school_admin_bot/internal/validation"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
)

// Общие ошибки для обработчиков
var (
	ErrAdminRequired  = errors.New("admin rights required")
	ErrSessionExpired = errors.New("wizard session expired")
	ErrNoMessage      = errors.New("no message in callback")
	ErrInvalidFormat  = errors.New("invalid callback format")
	ErrNothingLoaded  = errors.New("lookup list is empty")
	ErrBranchRequired = errors.New("branch is not selected")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var fieldErrs validation.FieldErrors
	var apiErr *apiclient.APIError

	switch {
	case errors.Is(err, ErrAdminRequired), errors.Is(err, service.ErrNotAdmin):
		return "⛔ This bot is for school administrators only"
	case errors.Is(err, ErrSessionExpired):
		return "⌛ This form has expired. Open it again from the menu"
	case errors.Is(err, ErrNoMessage):
		return "❌ Could not process the message"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid data format"
	case errors.Is(err, ErrNothingLoaded):
		return "ℹ️ Nothing to choose from"
	case errors.Is(err, ErrBranchRequired):
		return "🏫 Pick a branch first"
	case errors.Is(err, service.ErrConfirmationMismatch):
		return "❌ The name does not match. Nothing was deleted"

	case errors.Is(err, wizard.ErrPreviewNotReady):
		return "⚠️ Fill in name, group, teacher, start date, hours, session times and room first"
	case errors.Is(err, wizard.ErrRoomConflict):
		return "⚠️ The selected room is busy at these times. Pick another room"
	case errors.Is(err, wizard.ErrCannotCreate):
		return "⚠️ The preview does not allow creating this schedule"
	case errors.Is(err, wizard.ErrEventNotReady):
		return "⚠️ Fill in name, start date, at least one time slot and participants first"
	case errors.Is(err, wizard.ErrMissingStartDate):
		return "⚠️ Start date is required"
	case errors.Is(err, wizard.ErrInvalidTimeSlot):
		return "❌ Time slot must look like: mon 09:00-10:30"
	case errors.Is(err, wizard.ErrInvalidTime):
		return "❌ Time must be HH:MM"
	case errors.Is(err, wizard.ErrInvalidValue):
		return "❌ Invalid value"
	case errors.Is(err, wizard.ErrSessionIndex), errors.Is(err, wizard.ErrSlotIndex):
		return "❌ This item no longer exists"
	case errors.Is(err, wizard.ErrIllegalTransition), errors.Is(err, wizard.ErrIllegalStep):
		return "❌ This step is not available now"
	case errors.Is(err, wizard.ErrNoNextTab), errors.Is(err, wizard.ErrNoPrevTab):
		return "ℹ️ No more tabs in this direction"

	case errors.As(err, &fieldErrs):
		return "❌ " + fieldErrs.Error()
	case errors.As(err, &apiErr):
		return "❌ " + apiclient.Message(err)
	default:
		return "❌ Something went wrong. Please try again"
	}
}

// IsUserError - ошибка ввода или состояния формы, а не сбой
func IsUserError(err error) bool {
	var fieldErrs validation.FieldErrors
	switch {
	case errors.As(err, &fieldErrs), apiclient.IsValidation(err):
		return true
	case errors.Is(err, ErrSessionExpired), errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrNothingLoaded), errors.Is(err, ErrBranchRequired):
		return true
	case errors.Is(err, service.ErrConfirmationMismatch):
		return true
	}
	for _, target := range wizardErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var wizardErrors = []error{
	wizard.ErrPreviewNotReady, wizard.ErrRoomConflict, wizard.ErrCannotCreate, wizard.ErrEventNotReady,
	wizard.ErrMissingStartDate, wizard.ErrInvalidTimeSlot, wizard.ErrInvalidTime, wizard.ErrInvalidValue,
	wizard.ErrInvalidWeekday, wizard.ErrSessionIndex, wizard.ErrSlotIndex, wizard.ErrIllegalTransition,
	wizard.ErrIllegalStep, wizard.ErrNoNextTab, wizard.ErrNoPrevTab, wizard.ErrUnknownField,
}
