package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
)

// ProgressStorage keeps serialized progress in memory. Used by the memory driver and in tests.
type ProgressStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewProgressStorage creates an empty ProgressStorage.
func NewProgressStorage() *ProgressStorage {
	return &ProgressStorage{
		data: make(map[string][]byte),
	}
}

// Load returns the data stored under key.
func (s *ProgressStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, entities.ErrProgressNotFound
	}
	return slices.Clone(data), nil
}

// Save stores data under key, replacing previous data.
func (s *ProgressStorage) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(data)
	return nil
}

// Delete removes data stored under key.
func (s *ProgressStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Ping always succeeds.
func (s *ProgressStorage) Ping(context.Context) error {
	return nil
}
