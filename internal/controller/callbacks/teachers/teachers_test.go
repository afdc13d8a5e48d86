package teachers

import (
	"testing"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/service"
	"github.com/Freeeeeet/school_admin_bot/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buttons(screen common.Screen) map[string]string {
	out := make(map[string]string)
	if screen.Keyboard == nil {
		return out
	}
	for _, row := range screen.Keyboard.InlineKeyboard {
		for _, btn := range row {
			out[btn.CallbackData] = btn.Text
		}
	}
	return out
}

func TestNextActiveCycles(t *testing.T) {
	v := nextActive(nil)
	require.NotNil(t, v)
	assert.True(t, *v)

	v = nextActive(v)
	require.NotNil(t, v)
	assert.False(t, *v)

	assert.Nil(t, nextActive(v))
}

func TestListScreen(t *testing.T) {
	active := true
	branchID := int64(2)
	page := &service.TeacherPage{
		Teachers: []model.Teacher{
			{ID: 7, FirstNameEn: "Anna", LastNameEn: "Lee", NicknameEn: "Ann", Active: true, TeacherType: model.TeacherTypeKid},
		},
		Total: 11,
		Page:  2,
		Pages: 2,
	}
	view := state.TeacherListView{Search: "ann", Active: &active, BranchID: &branchID, Page: 1}

	screen := ListScreen(page, view, []model.Branch{{ID: 2, NameEn: "Silom"}})
	btns := buttons(screen)

	assert.Contains(t, screen.Text, "11. ✅ Anna Lee (Ann)")
	assert.Contains(t, screen.Text, "“ann”")
	assert.Contains(t, screen.Text, "Silom")
	assert.Equal(t, "11. Anna Lee (Ann)", btns[View+"7"])
	assert.Contains(t, btns, Page+"0")
	assert.Contains(t, btns, FilterClear)
	assert.Equal(t, "✅ Active", btns[FilterActive])
	assert.Contains(t, btns, New)
}

func TestListScreenWithoutFiltersHasNoClearButton(t *testing.T) {
	page := &service.TeacherPage{Page: 1, Pages: 1}
	screen := ListScreen(page, state.TeacherListView{}, nil)

	assert.Contains(t, screen.Text, "No teachers found")
	assert.NotContains(t, buttons(screen), FilterClear)
	assert.Equal(t, "📊 All", buttons(screen)[FilterActive])
}

func TestFormScreenMarksTypeAndTitle(t *testing.T) {
	form := &state.TeacherForm{Input: NewTeacherInput()}
	btns := buttons(FormScreen(form, nil))
	assert.Equal(t, "• Both •", btns[Type+string(model.TeacherTypeBoth)])
	assert.Equal(t, "Kid", btns[Type+string(model.TeacherTypeKid)])
	assert.Equal(t, "✅ Active", btns[ToggleActive])

	form.TeacherID = 3
	assert.Contains(t, FormScreen(form, nil).Text, "Edit teacher")
}

func TestConfirmDeleteScreenAsksForNickname(t *testing.T) {
	screen := ConfirmDeleteScreen(&model.Teacher{ID: 1, FirstNameEn: "Somchai", NicknameEn: "Tom"})
	assert.Contains(t, screen.Text, "<code>Tom</code>")

	screen = ConfirmDeleteScreen(&model.Teacher{ID: 1, FirstNameEn: "Somchai"})
	assert.Contains(t, screen.Text, "<code>Somchai</code>")
}

func TestApplyField(t *testing.T) {
	in := NewTeacherInput()

	require.NoError(t, ApplyField(&in, fieldFirstNameEn, "  Anna "))
	assert.Equal(t, "Anna", in.FirstNameEn)

	require.NoError(t, ApplyField(&in, fieldSpecializations, "IELTS, , kids ,grammar"))
	assert.Equal(t, "IELTS, kids, grammar", in.Specializations)

	require.NoError(t, ApplyField(&in, fieldHourlyRate, "1,200"))
	require.NotNil(t, in.HourlyRate)
	assert.Equal(t, 1200, *in.HourlyRate)

	require.NoError(t, ApplyField(&in, fieldHourlyRate, "-"))
	assert.Nil(t, in.HourlyRate)

	var fieldErrs validation.FieldErrors
	assert.ErrorAs(t, ApplyField(&in, fieldHourlyRate, "a lot"), &fieldErrs)

	assert.ErrorIs(t, ApplyField(&in, "salary", "1"), common.ErrInvalidFormat)
}

func TestInputHint(t *testing.T) {
	s := &state.Session{}
	assert.Empty(t, InputHint(s))

	s.SetState(state.StateTeacherField, map[string]string{"field": fieldPhone})
	assert.Contains(t, InputHint(s), "0812345678")

	screen := WithInputHint(s, FormScreen(&state.TeacherForm{Input: NewTeacherInput()}, nil))
	assert.Equal(t, StopInput, screen.Keyboard.InlineKeyboard[0][0].CallbackData)
}

func TestIsInputState(t *testing.T) {
	assert.True(t, IsInputState(state.StateTeacherConfirm))
	assert.True(t, IsInputState(state.StateTeacherSearch))
	assert.False(t, IsInputState(state.StateClassField))
}
