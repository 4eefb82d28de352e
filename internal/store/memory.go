package store

import (
	"context"
	"encoding/json"
	"sync"

	"evergrove/internal/engine"
)

// Memory keeps snapshots in process memory. It is the default store
// and the one tests use. Snapshots are held serialized so callers can
// never alias live game state through the store.
type Memory struct {
	mu    sync.RWMutex
	snaps map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{snaps: make(map[string][]byte)}
}

func (m *Memory) Save(_ context.Context, gameID string, snap *engine.GameSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[gameID] = data
	return nil
}

func (m *Memory) Load(_ context.Context, gameID string) (*engine.GameSnapshot, error) {
	m.mu.RLock()
	data, ok := m.snaps[gameID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var snap engine.GameSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (m *Memory) Delete(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, gameID)
	return nil
}
