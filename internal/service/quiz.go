package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/index"
	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/navigation"
	"github.com/aliskhannn/quiz-presenter-bot/internal/metrics"
)

// View is everything a renderer needs to draw the current screen of a session.
type View struct {
	SessionID int64
	State     entities.NavigationState
	Phase     navigation.Phase

	// Question screen. Question is nil in the error sub-state.
	QuestionIndex int
	Question      *entities.Question

	// Home screen.
	Groups []index.Group

	Answered int
	Total    int
}

// QuizService owns the sessions and runs every user action through the navigation machine.
// Actions are applied one at a time.
type QuizService struct {
	mu sync.Mutex

	machine   *navigation.Machine
	questions QuestionRepository
	sessions  SessionStorage
	progress  *ProgressService
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewQuizService(
	creds navigation.Credentials,
	questions QuestionRepository,
	sessions SessionStorage,
	progress *ProgressService,
	logger *zap.Logger,
	m *metrics.Metrics,
) *QuizService {
	return &QuizService{
		machine:   navigation.NewMachine(creds, questions.Len()),
		questions: questions,
		sessions:  sessions,
		progress:  progress,
		logger:    logger,
		metrics:   m,
	}
}

// Dispatch applies action to the session and returns the view to render.
// The returned view is always renderable. A non-nil error is recoverable and
// should be shown alongside the view.
func (s *QuizService) Dispatch(ctx context.Context, sessionID int64, action navigation.Action) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(ctx, sessionID)

	next, effects, err := s.machine.Apply(session.State, action)
	session.State = next

	s.metrics.Transition(string(action.Kind), outcome(err))
	if err != nil {
		s.logger.Debug("transition rejected",
			zap.Int64("session_id", sessionID),
			zap.String("action", string(action.Kind)),
			zap.Error(err),
		)
	}

	if effErr := s.applyEffects(ctx, session, effects); effErr != nil && err == nil {
		err = effErr
	}

	return s.view(session), err
}

// Current returns the view of a session without changing it.
func (s *QuizService) Current(ctx context.Context, sessionID int64) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(s.session(ctx, sessionID))
}

// Ready reports whether the progress backend is reachable.
func (s *QuizService) Ready(ctx context.Context) error {
	return s.progress.Ping(ctx)
}

// session returns the live session, creating it and merging persisted progress on first sight.
func (s *QuizService) session(ctx context.Context, sessionID int64) *entities.Session {
	if session, ok := s.sessions.Get(sessionID); ok {
		return session
	}

	session := entities.NewSession(sessionID)

	saved, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		s.logger.Warn("failed to load progress, starting empty",
			zap.Int64("session_id", sessionID),
			zap.Error(err),
		)
	} else {
		if dropped := saved.Retain(s.questions.Len()); dropped > 0 {
			s.logger.Warn("dropped saved progress outside the question bank",
				zap.Int64("session_id", sessionID),
				zap.Int("dropped", dropped),
				zap.Int("questions", s.questions.Len()),
			)
		}
		session.Progress.Merge(saved)
	}

	s.sessions.Store(session)
	return session
}

func (s *QuizService) applyEffects(ctx context.Context, session *entities.Session, effects []navigation.Effect) error {
	var errs []error

	for _, eff := range effects {
		switch eff.Kind {
		case navigation.EffectRecordProgress:
			session.Progress.Record(eff.Index)
			if err := s.progress.Save(ctx, session.ID, session.Progress); err != nil {
				s.logger.Error("failed to save progress",
					zap.Int64("session_id", session.ID),
					zap.Int("question_index", eff.Index),
					zap.Error(err),
				)
				errs = append(errs, err)
			}

		case navigation.EffectClearProgress:
			session.Progress.Clear()
			if err := s.progress.Clear(ctx, session.ID); err != nil {
				s.logger.Error("failed to clear progress",
					zap.Int64("session_id", session.ID),
					zap.Error(err),
				)
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", entities.ErrProgressNotSaved, errors.Join(errs...))
	}
	return nil
}

func (s *QuizService) view(session *entities.Session) View {
	v := View{
		SessionID: session.ID,
		State:     session.State,
		Phase:     s.machine.Phase(session.State),
		Answered:  session.Progress.Len(),
		Total:     s.questions.Len(),
	}

	switch session.State.Screen {
	case entities.ScreenHome:
		v.Groups = index.Build(s.questions.All(), session.Progress)

	case entities.ScreenQuestion:
		idx, _ := session.State.Selected()
		v.QuestionIndex = idx
		if v.Phase != navigation.PhaseMissing {
			if q, err := s.questions.Get(idx); err == nil {
				v.Question = &q
			}
		}
	}

	return v
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entities.ErrAuthMismatch):
		return "auth_mismatch"
	case errors.Is(err, entities.ErrAuthRequired):
		return "auth_required"
	case errors.Is(err, entities.ErrQuestionNotFound):
		return "not_found"
	default:
		return "rejected"
	}
}
