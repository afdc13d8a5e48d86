package wizard

import (
	"sort"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/config"
	"github.com/Freeeeeet/school_admin_bot/internal/model"
)

// zoomEquipment - оборудование онлайн-аудиторий
const zoomEquipment = "zoom_pro"

// RoomPolicy - правила подсказки аудиторий. Это только подсказка, не ограничение.
type RoomPolicy struct {
	OnlineBranchID int64
	Bands          []config.CapacityBand
}

// NewRoomPolicy берёт значения из конфигурации
func NewRoomPolicy(cfg *config.Config) RoomPolicy {
	return RoomPolicy{
		OnlineBranchID: cfg.OnlineBranchID,
		Bands:          cfg.RoomCapacityBands,
	}
}

// IsRecommended решает, подсвечивать ли аудиторию для группы размером groupSize
func (p RoomPolicy) IsRecommended(branchID int64, room model.Room, groupSize int) bool {
	if branchID == p.OnlineBranchID {
		return strings.Contains(strings.ToLower(room.RoomName), "online") || room.HasEquipment(zoomEquipment)
	}

	if groupSize <= 0 {
		return false
	}

	for _, band := range p.Bands {
		if groupSize <= band.MaxGroupSize {
			return room.Capacity >= groupSize && room.Capacity <= band.MaxCapacity
		}
	}
	return room.Capacity >= groupSize
}

// RoomOption - аудитория с отметками для клавиатуры выбора
type RoomOption struct {
	Room        model.Room
	Recommended bool
	HasConflict bool
}

// RankRooms размечает аудитории: рекомендованные без конфликтов идут первыми
func (p RoomPolicy) RankRooms(branchID int64, rooms []model.Room, groupSize int, conflicts *model.RoomConflictResult) []RoomOption {
	conflicting := conflicts.ConflictingRooms()

	options := make([]RoomOption, 0, len(rooms))
	for _, r := range rooms {
		options = append(options, RoomOption{
			Room:        r,
			Recommended: p.IsRecommended(branchID, r, groupSize),
			HasConflict: conflicting[r.ID],
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return rank(options[i]) < rank(options[j])
	})
	return options
}

func rank(o RoomOption) int {
	switch {
	case o.Recommended && !o.HasConflict:
		return 0
	case !o.HasConflict:
		return 1
	default:
		return 2
	}
}
