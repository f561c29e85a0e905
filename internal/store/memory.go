package store

import (
	"context"
	"log/slog"
	"sync"

	"prompt_generator_server/internal/types"
)

// MemoryStore keeps the serialised list in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	data   []byte
	logger *slog.Logger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	return NewMemoryStoreWithData(logger, nil)
}

// NewMemoryStoreWithData seeds the store with a raw stored value.
func NewMemoryStoreWithData(logger *slog.Logger, data []byte) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{data: data, logger: logger.With("component", "memory-store")}
}

func (m *MemoryStore) Load(_ context.Context) types.SavedResultList {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeList(m.logger, m.data)
}

func (m *MemoryStore) Save(_ context.Context, list types.SavedResultList) {
	data, err := encodeList(list)
	if err != nil {
		m.logger.Error("failed to encode saved list", "error", err)
		return
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
}

// Raw returns the stored bytes.
func (m *MemoryStore) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}
