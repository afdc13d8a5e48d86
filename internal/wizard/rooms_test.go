package wizard

import (
	"testing"

	"github.com/Freeeeeet/school_admin_bot/internal/config"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPolicy(t *testing.T) RoomPolicy {
	t.Helper()
	bands, err := config.ParseCapacityBands(config.DefaultCapacityBands)
	require.NoError(t, err)
	return RoomPolicy{OnlineBranchID: 3, Bands: bands}
}

func TestOnlineBranchRecommendation(t *testing.T) {
	p := defaultPolicy(t)

	assert.True(t, p.IsRecommended(3, model.Room{RoomName: "Online Room A", Capacity: 1}, 30))
	assert.True(t, p.IsRecommended(3, model.Room{RoomName: "Studio", Capacity: 2, Equipment: []string{"whiteboard", "zoom_pro"}}, 6))
	assert.False(t, p.IsRecommended(3, model.Room{RoomName: "Room 101", Capacity: 6}, 6))
}

func TestCapacityBands(t *testing.T) {
	p := defaultPolicy(t)

	cases := []struct {
		size     int
		capacity int
		want     bool
	}{
		{6, 6, true},
		{6, 12, false},
		{6, 5, false},
		{2, 4, true},
		{2, 5, false},
		{1, 1, true},
		{7, 10, true},
		{7, 11, false},
		{12, 30, true},
		{12, 11, false},
		{0, 6, false},
	}
	for _, tc := range cases {
		got := p.IsRecommended(1, model.Room{RoomName: "Room", Capacity: tc.capacity}, tc.size)
		assert.Equal(t, tc.want, got, "size=%d capacity=%d", tc.size, tc.capacity)
	}
}

func TestRankRooms(t *testing.T) {
	p := defaultPolicy(t)
	rooms := []model.Room{
		{ID: 1, RoomName: "Hall", Capacity: 30},
		{ID: 2, RoomName: "Room 2", Capacity: 6},
		{ID: 3, RoomName: "Room 3", Capacity: 6},
	}
	conflicts := &model.RoomConflictResult{HasConflict: true, Conflicts: []model.RoomConflict{{RoomID: 2}}}

	ranked := p.RankRooms(1, rooms, 5, conflicts)
	require.Len(t, ranked, 3)
	assert.Equal(t, int64(3), ranked[0].Room.ID)
	assert.True(t, ranked[0].Recommended)
	assert.Equal(t, int64(1), ranked[1].Room.ID)
	assert.Equal(t, int64(2), ranked[2].Room.ID)
	assert.True(t, ranked[2].HasConflict)
}
