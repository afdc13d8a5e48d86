package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTeacherService(api *fakeAPI) (*TeacherService, *fakeAuditStore) {
	audit, store := newTestAudit()
	return NewTeacherService(api, validation.New(), audit, zap.NewNop()), store
}

func TestMatchesDeleteConfirmation(t *testing.T) {
	withNick := model.Teacher{FirstNameEn: "Somchai", NicknameEn: "Chai"}
	noNick := model.Teacher{FirstNameEn: "Anna"}

	tests := []struct {
		name    string
		teacher model.Teacher
		typed   string
		want    bool
	}{
		{"nickname exact", withNick, "Chai", true},
		{"nickname case and spaces", withNick, "  chAI ", true},
		{"first name when nickname set", withNick, "Somchai", false},
		{"first name fallback", noNick, "anna", true},
		{"empty input", noNick, "", false},
		{"no names at all", model.Teacher{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesDeleteConfirmation(tt.teacher, tt.typed))
		})
	}
}

func TestTeacherService_DeleteRequiresConfirmation(t *testing.T) {
	api := &fakeAPI{}
	svc, store := newTeacherService(api)
	teacher := &model.Teacher{ID: 4, FirstNameEn: "Somchai", NicknameEn: "Chai"}

	err := svc.Delete(context.Background(), 100, teacher, "Somchai")
	assert.ErrorIs(t, err, ErrConfirmationMismatch)
	assert.Empty(t, api.deleted)

	require.NoError(t, svc.Delete(context.Background(), 100, teacher, "chai"))
	assert.Equal(t, []int64{4}, api.deleted)
	require.Len(t, store.events, 1)
	assert.Equal(t, model.AuditActionDelete, store.events[0].Action)
}

func TestTeacherService_CreateNormalizesLists(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newTeacherService(api)

	_, err := svc.Create(context.Background(), 100, model.TeacherInput{
		FirstNameEn:     " John ",
		LastNameEn:      "Smith",
		TeacherType:     model.TeacherTypeAdults,
		Specializations: "IELTS, ,Business English,",
		Phone:           "081-234-5678",
	})
	require.NoError(t, err)

	sent := api.lastRequest.(model.TeacherInput)
	assert.Equal(t, "John", sent.FirstNameEn)
	assert.Equal(t, "IELTS, Business English", sent.Specializations)
	assert.Equal(t, "0812345678", sent.Phone)
}

func TestTeacherService_CreateValidation(t *testing.T) {
	api := &fakeAPI{}
	svc, store := newTeacherService(api)

	_, err := svc.Create(context.Background(), 100, model.TeacherInput{
		FirstNameEn: "John",
		TeacherType: "Robot",
		Email:       "not-an-email",
	})

	var fields validation.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "last_name_en")
	assert.Contains(t, fields, "teacher_type")
	assert.Contains(t, fields, "email")
	assert.Nil(t, api.lastRequest)
	assert.Empty(t, store.events)
}

func TestTeacherService_ListPagination(t *testing.T) {
	api := &fakeAPI{teachers: []model.Teacher{{ID: 1}}, teachersTotal: 23}
	svc, _ := newTeacherService(api)

	page, err := svc.List(context.Background(), model.TeacherFilter{Search: "  ann ", Page: 0})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 23, page.Total)
	assert.Equal(t, "ann", api.lastFilter.Search)
	assert.Equal(t, TeachersPageSize, api.lastFilter.Limit)
}
