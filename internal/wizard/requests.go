package wizard

// RequestKind - вид автоматического запроса мастера
type RequestKind string

const (
	RequestRoomCheck    RequestKind = "room_check"
	RequestPreview      RequestKind = "preview"
	RequestParticipants RequestKind = "participants"
	RequestGroups       RequestKind = "groups"
)

// Generations хранит номер последнего запроса каждого вида.
// Ответ, чей номер уже не текущий, должен быть отброшен.
type Generations map[RequestKind]uint64

// Begin регистрирует новый запрос и возвращает его номер
func (g Generations) Begin(kind RequestKind) uint64 {
	g[kind]++
	return g[kind]
}

// IsCurrent проверяет, что ответ относится к последнему запросу
func (g Generations) IsCurrent(kind RequestKind, gen uint64) bool {
	return gen != 0 && g[kind] == gen
}

// Invalidate делает все запросы этого вида устаревшими
func (g Generations) Invalidate(kind RequestKind) {
	if g == nil {
		return
	}
	g[kind]++
}
