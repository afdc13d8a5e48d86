package wizard

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// Step - шаг обёртки мастера расписаний
type Step string

const (
	StepTypeSelection      Step = "type-selection"
	StepEventTypeSelection Step = "event-type-selection"
	StepForm               Step = "form"
)

var ErrIllegalStep = errors.New("illegal wizard step")

// Wrapper выбирает, какую форму показать: класс или событие
type Wrapper struct {
	Step         Step               `json:"step"`
	ScheduleType model.ScheduleType `json:"schedule_type,omitempty"`
}

// NewWrapper создаёт обёртку в начальном состоянии
func NewWrapper() Wrapper {
	return Wrapper{Step: StepTypeSelection}
}

// SelectClass сразу открывает форму класса
func (w *Wrapper) SelectClass() error {
	if w.Step != StepTypeSelection {
		return fmt.Errorf("%w: select class from %s", ErrIllegalStep, w.Step)
	}
	w.Step = StepForm
	w.ScheduleType = model.ScheduleTypeClass
	return nil
}

// SelectEvents переходит к выбору типа события
func (w *Wrapper) SelectEvents() error {
	if w.Step != StepTypeSelection {
		return fmt.Errorf("%w: select events from %s", ErrIllegalStep, w.Step)
	}
	w.Step = StepEventTypeSelection
	return nil
}

// SelectEventType открывает форму события выбранного типа
func (w *Wrapper) SelectEventType(t model.ScheduleType) error {
	if w.Step != StepEventTypeSelection {
		return fmt.Errorf("%w: select event type from %s", ErrIllegalStep, w.Step)
	}
	if !model.IsEventType(t) {
		return fmt.Errorf("%w: %q is not an event type", ErrIllegalStep, t)
	}
	w.Step = StepForm
	w.ScheduleType = t
	return nil
}

// BackFromForm: для событий возвращает к выбору типа события, для класса к выбору типа
func (w *Wrapper) BackFromForm() {
	if w.ScheduleType != model.ScheduleTypeClass {
		w.Step = StepEventTypeSelection
		return
	}
	w.Step = StepTypeSelection
	w.ScheduleType = ""
}

// Back - шаг назад с любого шага
func (w *Wrapper) Back() {
	switch w.Step {
	case StepForm:
		w.BackFromForm()
	default:
		w.Close()
	}
}

// Close сбрасывает обёртку в начальное состояние
func (w *Wrapper) Close() {
	*w = NewWrapper()
}
