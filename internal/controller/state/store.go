package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Store хранит сериализованные сессии по telegram id
type Store interface {
	Load(ctx context.Context, telegramID int64) ([]byte, bool, error)
	Save(ctx context.Context, telegramID int64, data []byte) error
	Delete(ctx context.Context, telegramID int64) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore - хранилище в памяти процесса, используется без REDIS_URL
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[int64]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[int64]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Load(_ context.Context, telegramID int64) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[telegramID]
	if !ok {
		return nil, false, nil
	}
	if m.ttl > 0 && m.now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.data, true, nil
}

func (m *MemoryStore) Save(_ context.Context, telegramID int64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[telegramID] = memoryEntry{
		data:      data,
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, telegramID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, telegramID)
	return nil
}

// Sweep удаляет просроченные сессии, вызывается планировщиком
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, entry := range m.entries {
		if m.ttl > 0 && now.After(entry.expiresAt) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

func encodeSession(s *Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
