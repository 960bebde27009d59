package service

import (
	"context"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
)

type QuestionRepository interface {
	All() []entities.Question
	Len() int
	Get(index int) (entities.Question, error)
}

// ProgressPersister stores serialized progress by key.
// Load returns entities.ErrProgressNotFound when nothing is stored.
type ProgressPersister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type SessionStorage interface {
	Store(session *entities.Session)
	Get(sessionID int64) (*entities.Session, bool)
	Delete(sessionID int64)
}
