package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/validation"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func newGroupForm(studentIDs ...int64) *wizard.GroupForm {
	form := wizard.NewGroupForm()
	form.GroupName = "Kids A1 Saturday"
	form.CourseID = 4
	form.MaxStudents = 6
	for _, id := range studentIDs {
		form.ToggleStudent(model.Student{ID: id, FirstName: "S"})
	}
	return form
}

func TestGroupService_CreateWithMembersPartialFailure(t *testing.T) {
	api := &fakeAPI{
		createdGroup: &model.Group{ID: 12, GroupName: "Kids A1 Saturday"},
		failMembers:  map[int64]bool{2: true, 4: true},
	}
	audit, store := newTestAudit()
	svc := NewGroupService(api, api, validation.New(), audit, zap.NewNop())

	group, result, err := svc.CreateWithMembers(context.Background(), 100, id64(1), newGroupForm(1, 2, 3, 4, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(12), group.ID)

	assert.ElementsMatch(t, []int64{1, 3, 5}, result.Succeeded)
	require.Len(t, result.Failed, 2)
	assert.True(t, result.Partial())

	batchErr := result.Err()
	require.Error(t, batchErr)
	assert.Len(t, multierr.Errors(batchErr), 2)
	assert.ErrorIs(t, batchErr, errAPI)

	assert.ElementsMatch(t, []int64{1, 3, 5}, api.added)
	require.Len(t, store.events, 1)
	assert.Equal(t, "group", store.events[0].Resource)
}

func TestGroupService_CreateWithoutMembers(t *testing.T) {
	api := &fakeAPI{createdGroup: &model.Group{ID: 3}}
	audit, _ := newTestAudit()
	svc := NewGroupService(api, api, validation.New(), audit, zap.NewNop())

	_, result, err := svc.CreateWithMembers(context.Background(), 100, nil, newGroupForm())
	require.NoError(t, err)
	assert.Empty(t, result.Succeeded)
	assert.Empty(t, result.Failed)
	assert.NoError(t, result.Err())
	assert.False(t, result.Partial())
}

func TestGroupService_InvalidFormIsNotSent(t *testing.T) {
	api := &fakeAPI{createdGroup: &model.Group{ID: 3}}
	audit, _ := newTestAudit()
	svc := NewGroupService(api, api, validation.New(), audit, zap.NewNop())

	form := newGroupForm()
	form.GroupName = ""
	form.MaxStudents = 0

	_, _, err := svc.CreateWithMembers(context.Background(), 100, nil, form)
	var fields validation.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "group_name")
	assert.Contains(t, fields, "max_students")
	assert.Nil(t, api.lastRequest)
}
