package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_UpdatePersistsWizardDraft(t *testing.T) {
	ctx := context.Background()
	sm := NewManager(NewMemoryStore(time.Hour))

	_, err := sm.Update(ctx, 42, func(s *Session) error {
		w := wizard.NewWrapper()
		require.NoError(t, w.SelectClass())
		s.Wizard = &w
		s.Class = wizard.NewClassFlow()
		s.SetState(StateClassField, map[string]string{"field": string(wizard.FieldScheduleName)})
		return s.Class.Dispatch(wizard.AddSession{Session: model.SessionTime{Weekday: 3, StartTime: "18:00"}})
	})
	require.NoError(t, err)

	s, err := sm.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, s.Class)
	assert.Equal(t, wizard.StepForm, s.Wizard.Step)
	assert.Equal(t, 2, s.Class.Draft.SessionPerWeek)
	assert.Equal(t, StateClassField, s.State)
	assert.Equal(t, "schedule_name", s.Get("field"))
	assert.Equal(t, StateClassField, sm.GetState(ctx, 42))
}

func TestManager_FailedUpdateIsNotSaved(t *testing.T) {
	ctx := context.Background()
	sm := NewManager(NewMemoryStore(time.Hour))

	_, err := sm.Update(ctx, 1, func(s *Session) error {
		s.Attendance = &AttendanceView{Date: "2024-01-15"}
		return nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = sm.Update(ctx, 1, func(s *Session) error {
		s.Attendance.Date = "2030-01-01"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	s, err := sm.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", s.Attendance.Date)
}

func TestManager_EmptySessionIsDeleted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	sm := NewManager(store)

	_, err := sm.Update(ctx, 7, func(s *Session) error {
		s.SetState(StateTeacherSearch, nil)
		return nil
	})
	require.NoError(t, err)
	_, ok, _ := store.Load(ctx, 7)
	assert.True(t, ok)

	_, err = sm.Update(ctx, 7, func(s *Session) error {
		s.ClearInput()
		return nil
	})
	require.NoError(t, err)
	_, ok, _ = store.Load(ctx, 7)
	assert.False(t, ok)
}

func TestManager_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	ctx := context.Background()
	sm := NewManager(NewMemoryStore(time.Hour))

	_, err := sm.Update(ctx, 5, func(s *Session) error {
		s.Group = wizard.NewGroupForm()
		return nil
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := int64(1); i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = sm.Update(ctx, 5, func(s *Session) error {
				s.Group.ToggleStudent(model.Student{ID: id, FirstName: "S"})
				return nil
			})
		}(i)
	}
	wg.Wait()

	s, err := sm.Get(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, s.Group.StudentIDs, 20)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, 1, []byte(`{}`)))
	_, ok, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Load(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Sweep())
}

func TestManager_LocksAreStripedAcrossUsers(t *testing.T) {
	ctx := context.Background()
	sm := NewManager(NewMemoryStore(time.Hour))

	assert.Same(t, sm.lockFor(7), sm.lockFor(7+lockStripes))
	assert.NotSame(t, sm.lockFor(7), sm.lockFor(8))

	var wg sync.WaitGroup
	for id := int64(1); id <= 500; id++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := sm.Update(ctx, id, func(s *Session) error {
				s.Attendance = &AttendanceView{Date: "2024-01-15"}
				return nil
			})
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	for _, id := range []int64{1, 64, 65, 500} {
		s, err := sm.Get(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, s.Attendance)
	}
}
