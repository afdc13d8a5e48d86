package handlers

import (
	"testing"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestInputHandlerFor(t *testing.T) {
	assert.Nil(t, InputHandlerFor(state.StateNone))
	assert.Nil(t, InputHandlerFor("create_subject_name"))

	for _, st := range []state.UserState{
		state.StateClassField,
		state.StateSessionTime,
		state.StateParticipantQuery,
		state.StateTeacherField,
		state.StateTeacherConfirm,
		state.StateStudentField,
		state.StateAttendanceDate,
	} {
		assert.NotNil(t, InputHandlerFor(st), st)
	}
}

func TestFormatBranches(t *testing.T) {
	assert.Contains(t, FormatBranches(nil, nil), "No branches")

	def := int64(2)
	text := FormatBranches([]model.Branch{
		{ID: 1, NameEn: "Silom"},
		{ID: 2, NameEn: "Online & Co"},
	}, &def)

	assert.Contains(t, text, "▫️ <code>1</code> Silom")
	assert.Contains(t, text, "⭐ <code>2</code> Online &amp; Co")
}
