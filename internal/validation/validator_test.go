package validation

import (
	"testing"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCitizenID(t *testing.T) {
	cases := map[string]bool{
		"1101700203361":     true,
		"3100100123451":     true,
		"3-1001-00123-45-1": true,
		"1101700203362":     false,
		"110170020336":      false,
		"11017002033611":    false,
		"11017002033a1":     false,
		"":                  false,
	}
	for id, want := range cases {
		assert.Equal(t, want, ValidCitizenID(id), id)
	}
}

func TestStudentRequestValidation(t *testing.T) {
	v := New()

	ok := model.RegisterStudentRequest{
		FirstName: "Somchai",
		LastName:  "Jaidee",
		Phone:     "081-234-5678",
		CitizenID: "1101700203361",
	}
	require.NoError(t, v.Struct(ok))

	// номер гражданина необязателен
	ok.CitizenID = ""
	require.NoError(t, v.Struct(ok))

	bad := model.RegisterStudentRequest{FirstName: "Somchai", Phone: "12345", CitizenID: "1101700203362"}
	err := v.Struct(bad)
	require.Error(t, err)

	fields, isFields := err.(FieldErrors)
	require.True(t, isFields)
	assert.Contains(t, fields, "last_name")
	assert.Contains(t, fields["phone"], "Thai phone number")
	assert.Contains(t, fields["citizen_id"], "Thai citizen ID")
}

func TestTeacherInputValidation(t *testing.T) {
	v := New()
	rate := 450

	in := model.TeacherInput{
		FirstNameEn: "Alice",
		LastNameEn:  "Smith",
		TeacherType: model.TeacherTypeAdminTeam,
		HourlyRate:  &rate,
		Email:       "alice@example.com",
	}
	require.NoError(t, v.Struct(in))

	in.TeacherType = "Robot"
	in.Email = "not-an-email"
	err := v.Struct(in)
	require.Error(t, err)
	fields := err.(FieldErrors)
	assert.Contains(t, fields, "teacher_type")
	assert.Contains(t, fields, "email")
}

func TestVar(t *testing.T) {
	v := New()

	assert.NoError(t, v.Var("start_time", "09:30", "hhmm"))

	err := v.Var("start_time", "9:30", "hhmm")
	require.Error(t, err)
	assert.Equal(t, "start_time must be a time in HH:MM format", err.Error())

	err = v.Var("hourly_rate", -1, "min=0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hourly_rate")
}
