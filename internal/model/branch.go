package model

type BranchType string

const (
	BranchTypeOffline BranchType = "offline"
	BranchTypeOnline  BranchType = "online"
)

type Branch struct {
	ID       int64      `json:"id"`
	NameEn   string     `json:"name_en"`
	NameTh   string     `json:"name_th"`
	Code     string     `json:"code"`
	Address  string     `json:"address"`
	Phone    string     `json:"phone"`
	Type     BranchType `json:"type"`
	IsActive bool       `json:"active"`
}

// Name возвращает английское название, если оно есть
func (b Branch) Name() string {
	if b.NameEn != "" {
		return b.NameEn
	}
	return b.NameTh
}

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

type Room struct {
	ID        int64      `json:"id"`
	BranchID  int64      `json:"branch_id"`
	RoomName  string     `json:"room_name"`
	Capacity  int        `json:"capacity"`
	Equipment []string   `json:"equipment"`
	Status    RoomStatus `json:"status"`
}

// HasEquipment проверяет наличие оборудования по коду, например "zoom_pro"
func (r Room) HasEquipment(code string) bool {
	for _, e := range r.Equipment {
		if e == code {
			return true
		}
	}
	return false
}

type Course struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Level    string `json:"level"`
	Status   string `json:"status"`
	BranchID int64  `json:"branch_id"`
}
