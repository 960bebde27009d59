package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-presenter-bot/internal/secret"
)

// Origin tells which source the question bank was loaded from.
type Origin string

const (
	OriginEncrypted Origin = "encrypted"
	OriginPlain     Origin = "plain"
)

// QuestionSource describes where the question bank lives.
type QuestionSource struct {
	EncryptedPath string
	PlainPath     string
	SecretKey     string
}

// QuestionRepository provides read-only access to the question bank.
// It is loaded once and safe for concurrent use.
type QuestionRepository struct {
	questions []entities.Question
	origin    Origin
	path      string
}

// NewQuestionRepository loads the question bank. The encrypted source is preferred when a key is
// configured and the file exists; otherwise the plaintext source is used.
// Errors wrap entities.ErrDataUnavailable or entities.ErrDataCorrupt.
func NewQuestionRepository(src QuestionSource) (*QuestionRepository, error) {
	if src.SecretKey != "" && fileExists(src.EncryptedPath) {
		questions, err := loadEncrypted(src.EncryptedPath, src.SecretKey)
		if err != nil {
			return nil, err
		}
		return &QuestionRepository{questions: questions, origin: OriginEncrypted, path: src.EncryptedPath}, nil
	}

	questions, err := loadPlain(src.PlainPath)
	if err != nil {
		return nil, err
	}
	return &QuestionRepository{questions: questions, origin: OriginPlain, path: src.PlainPath}, nil
}

// NewQuestionRepositoryFrom wraps an already validated question bank.
func NewQuestionRepositoryFrom(questions []entities.Question) *QuestionRepository {
	return &QuestionRepository{questions: slices.Clone(questions), origin: OriginPlain}
}

// All returns a copy of the question bank in order.
func (r *QuestionRepository) All() []entities.Question {
	return slices.Clone(r.questions)
}

// Len returns the number of questions.
func (r *QuestionRepository) Len() int {
	return len(r.questions)
}

// Get returns the question at index.
func (r *QuestionRepository) Get(index int) (entities.Question, error) {
	if index < 0 || index >= len(r.questions) {
		return entities.Question{}, fmt.Errorf("%w: %d", entities.ErrQuestionNotFound, index+1)
	}
	return r.questions[index], nil
}

// Origin returns the source kind the bank was loaded from.
func (r *QuestionRepository) Origin() Origin {
	return r.origin
}

// Path returns the file the bank was loaded from.
func (r *QuestionRepository) Path() string {
	return r.path
}

// ParseQuestions decodes and validates a JSON array of questions.
func ParseQuestions(data []byte) ([]entities.Question, error) {
	var questions []entities.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("%w: unmarshal questions JSON: %v", entities.ErrDataCorrupt, err)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: question bank is empty", entities.ErrDataCorrupt)
	}

	v := validator.New()
	for i := range questions {
		q := &questions[i]
		q.Normalize()

		if err := v.Struct(q); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", entities.ErrDataCorrupt, i+1, err)
		}
		if !q.HasOption(q.Answer) {
			return nil, fmt.Errorf("%w: question %d: answer %q has no option text", entities.ErrDataCorrupt, i+1, q.Answer)
		}
	}

	return questions, nil
}

func loadEncrypted(path, key string) ([]entities.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", entities.ErrDataCorrupt, path, err)
	}

	plain, err := secret.Decrypt(data, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entities.ErrDataCorrupt, path, err)
	}

	return ParseQuestions(plain)
}

func loadPlain(path string) ([]entities.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", entities.ErrDataUnavailable, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", entities.ErrDataCorrupt, path, err)
	}

	return ParseQuestions(data)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
