package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdminService_RegisterBootstrapsConfiguredIDs(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminService(store, func(id int64) bool { return id == 1001 }, zap.NewNop())
	ctx := context.Background()

	admin, err := svc.RegisterAdmin(ctx, 1001, "boss", "Nok", "", "en")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.DigestEnabled)

	guest, err := svc.RegisterAdmin(ctx, 2002, "guest", "Tom", "", "en")
	require.NoError(t, err)
	assert.False(t, guest.IsAdmin)

	_, err = svc.RequireAdmin(ctx, 2002)
	assert.ErrorIs(t, err, ErrNotAdmin)
	_, err = svc.RequireAdmin(ctx, 3003)
	assert.ErrorIs(t, err, ErrNotAdmin)

	// повторная регистрация обновляет профиль, id сохраняется
	again, err := svc.RegisterAdmin(ctx, 1001, "boss2", "Nok", "", "th")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	assert.Equal(t, "boss2", again.Username)
}

func TestAdminService_ToggleDigest(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminService(store, func(int64) bool { return true }, zap.NewNop())
	ctx := context.Background()

	_, err := svc.RegisterAdmin(ctx, 1001, "boss", "Nok", "", "en")
	require.NoError(t, err)

	enabled, err := svc.ToggleDigest(ctx, 1001)
	require.NoError(t, err)
	assert.False(t, enabled)

	recipients, err := svc.DigestRecipients(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipients)

	enabled, err = svc.ToggleDigest(ctx, 1001)
	require.NoError(t, err)
	assert.True(t, enabled)
}
