package wizard

import (
	"testing"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapperClassPath(t *testing.T) {
	w := NewWrapper()
	require.NoError(t, w.SelectClass())
	assert.Equal(t, StepForm, w.Step)
	assert.Equal(t, model.ScheduleTypeClass, w.ScheduleType)

	w.BackFromForm()
	assert.Equal(t, StepTypeSelection, w.Step)
}

func TestWrapperEventPath(t *testing.T) {
	w := NewWrapper()
	require.NoError(t, w.SelectEvents())
	assert.Equal(t, StepEventTypeSelection, w.Step)

	assert.ErrorIs(t, w.SelectEventType(model.ScheduleTypeClass), ErrIllegalStep)
	require.NoError(t, w.SelectEventType(model.ScheduleTypeHoliday))
	assert.Equal(t, StepForm, w.Step)

	w.BackFromForm()
	assert.Equal(t, StepEventTypeSelection, w.Step)
}

func TestWrapperBackFromFormByType(t *testing.T) {
	cases := []struct {
		typ  model.ScheduleType
		want Step
	}{
		{model.ScheduleTypeClass, StepTypeSelection},
		{model.ScheduleTypeMeeting, StepEventTypeSelection},
		{model.ScheduleTypeAppointment, StepEventTypeSelection},
		{model.ScheduleTypeEvent, StepEventTypeSelection},
		{model.ScheduleTypePersonal, StepEventTypeSelection},
		{model.ScheduleTypeHoliday, StepEventTypeSelection},
	}
	for _, tc := range cases {
		w := Wrapper{Step: StepForm, ScheduleType: tc.typ}
		w.BackFromForm()
		assert.Equal(t, tc.want, w.Step, tc.typ)
	}
}

func TestWrapperCloseResets(t *testing.T) {
	w := NewWrapper()
	require.NoError(t, w.SelectEvents())
	require.NoError(t, w.SelectEventType(model.ScheduleTypeMeeting))

	w.Close()
	assert.Equal(t, NewWrapper(), w)

	assert.ErrorIs(t, w.SelectEventType(model.ScheduleTypeMeeting), ErrIllegalStep)
	w.Back()
	assert.Equal(t, StepTypeSelection, w.Step)
}
