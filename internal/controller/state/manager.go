package state

import (
	"context"
	"sync"
)

// lockStripes - число блокировок на всех пользователей
const lockStripes = 64

// Manager управляет сессиями пользователей поверх Store.
// Update выполняет чтение-изменение-запись под блокировкой пользователя.
// Блокировки разбиты на фиксированные полосы по telegramID, память не растёт с числом пользователей.
type Manager struct {
	store Store
	locks [lockStripes]sync.Mutex
}

// NewManager создаёт новый менеджер состояний
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (sm *Manager) lockFor(telegramID int64) *sync.Mutex {
	return &sm.locks[uint64(telegramID)%lockStripes]
}

// Get возвращает копию сессии; пустую, если её нет
func (sm *Manager) Get(ctx context.Context, telegramID int64) (*Session, error) {
	l := sm.lockFor(telegramID)
	l.Lock()
	defer l.Unlock()

	return sm.load(ctx, telegramID)
}

func (sm *Manager) load(ctx context.Context, telegramID int64) (*Session, error) {
	data, ok, err := sm.store.Load(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Session{}, nil
	}
	return decodeSession(data)
}

func (sm *Manager) save(ctx context.Context, telegramID int64, s *Session) error {
	if s.IsEmpty() {
		return sm.store.Delete(ctx, telegramID)
	}
	data, err := encodeSession(s)
	if err != nil {
		return err
	}
	return sm.store.Save(ctx, telegramID, data)
}

// Update загружает сессию, применяет fn и сохраняет результат.
// Если fn вернула ошибку, сессия не сохраняется.
func (sm *Manager) Update(ctx context.Context, telegramID int64, fn func(s *Session) error) (*Session, error) {
	l := sm.lockFor(telegramID)
	l.Lock()
	defer l.Unlock()

	s, err := sm.load(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return s, err
	}
	if err := sm.save(ctx, telegramID, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetState получает текущее состояние ввода пользователя
func (sm *Manager) GetState(ctx context.Context, telegramID int64) UserState {
	s, err := sm.Get(ctx, telegramID)
	if err != nil {
		return StateNone
	}
	return s.State
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(ctx context.Context, telegramID int64) error {
	l := sm.lockFor(telegramID)
	l.Lock()
	defer l.Unlock()

	return sm.store.Delete(ctx, telegramID)
}
