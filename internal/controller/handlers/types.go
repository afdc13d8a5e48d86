package handlers

import (
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд и текста.
// Зависимости общие с callback handlers: окна, открытые командой, дальше живут на кнопках.
type Handlers struct {
	deps   *callbacktypes.Handler
	logger *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{
		deps:   deps,
		logger: deps.Logger,
	}
}
