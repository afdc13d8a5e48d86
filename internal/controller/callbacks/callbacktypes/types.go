package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/school_admin_bot/internal/service"
	"github.com/Freeeeeet/school_admin_bot/internal/wizard"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	AdminService      *service.AdminService
	AuditService      *service.AuditService
	ScheduleService   *service.ScheduleService
	GroupService      *service.GroupService
	TeacherService    *service.TeacherService
	StudentService    *service.StudentService
	AttendanceService *service.AttendanceService

	Sessions   *state.Manager
	RoomPolicy wizard.RoomPolicy
	Debouncer  *service.Debouncer
	Location   *time.Location

	// Таймаут фоновых запросов (поиск участников, автозакрытие окна)
	APITimeout time.Duration
	// Задержка перед удалением сообщения об успешном создании
	CloseDelay time.Duration

	Logger *zap.Logger
}
