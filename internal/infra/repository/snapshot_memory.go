package repository

import (
	"context"
	"sync"
)

// プロセス内だけのKV（テストと CART_STORAGE_DRIVER=memory 用）
type MemorySnapshotStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemorySnapshotStorage() *MemorySnapshotStorage {
	return &MemorySnapshotStorage{entries: make(map[string]string)}
}

func (s *MemorySnapshotStorage) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *MemorySnapshotStorage) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}
