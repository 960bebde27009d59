package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-presenter-bot/internal/metrics"
)

// ProgressService reads and writes the answered set of a session through a ProgressPersister.
type ProgressService struct {
	persister ProgressPersister
	keyPrefix string
	metrics   *metrics.Metrics
}

func NewProgressService(persister ProgressPersister, keyPrefix string, m *metrics.Metrics) *ProgressService {
	return &ProgressService{
		persister: persister,
		keyPrefix: keyPrefix,
		metrics:   m,
	}
}

// Key returns the storage key of a session.
func (s *ProgressService) Key(sessionID int64) string {
	return fmt.Sprintf("%s:%d", s.keyPrefix, sessionID)
}

// Load returns the persisted progress of a session, or an empty store if nothing was saved.
func (s *ProgressService) Load(ctx context.Context, sessionID int64) (*entities.ProgressStore, error) {
	data, err := s.persister.Load(ctx, s.Key(sessionID))
	if err != nil {
		if errors.Is(err, entities.ErrProgressNotFound) {
			return entities.NewProgressStore(), nil
		}
		return nil, err
	}

	return entities.DeserializeProgress(data)
}

// Save writes the whole progress set of a session.
func (s *ProgressService) Save(ctx context.Context, sessionID int64, progress *entities.ProgressStore) error {
	data, err := progress.Serialize()
	if err != nil {
		return err
	}

	err = s.persister.Save(ctx, s.Key(sessionID), data)
	s.metrics.ProgressWrite("save", err)
	return err
}

// Clear removes the persisted progress of a session.
func (s *ProgressService) Clear(ctx context.Context, sessionID int64) error {
	err := s.persister.Delete(ctx, s.Key(sessionID))
	s.metrics.ProgressWrite("delete", err)
	return err
}

// Ping checks the backend when it supports it.
func (s *ProgressService) Ping(ctx context.Context) error {
	if p, ok := s.persister.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
