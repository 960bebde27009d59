package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/index"
	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/navigation"
	"github.com/aliskhannn/quiz-presenter-bot/internal/metrics"
	"github.com/aliskhannn/quiz-presenter-bot/internal/repository"
	"github.com/aliskhannn/quiz-presenter-bot/internal/service"
	"github.com/aliskhannn/quiz-presenter-bot/internal/storage"
)

var creds = navigation.Credentials{Username: "admin", Password: "secret"}

type failingPersister struct {
	*storage.ProgressStorage
	failLoad bool
	failSave bool
}

func (f *failingPersister) Load(ctx context.Context, key string) ([]byte, error) {
	if f.failLoad {
		return nil, errors.New("backend down")
	}
	return f.ProgressStorage.Load(ctx, key)
}

func (f *failingPersister) Save(ctx context.Context, key string, data []byte) error {
	if f.failSave {
		return errors.New("backend down")
	}
	return f.ProgressStorage.Save(ctx, key, data)
}

func sampleQuestions() []entities.Question {
	return []entities.Question{
		{Question: "Q1", A: "x", B: "y", C: "z", Answer: "B", Explanation: "e", Group: "A", Type: entities.TypeGeneral},
		{Question: "Q2", A: "1", B: "2", C: "3", D: "4", Answer: "D", Group: "A", Type: entities.TypeWarmUp},
		{Question: "Q3", A: "p", B: "q", C: "r", Answer: "A", Group: "B", Type: entities.TypeGeneral},
	}
}

func newService(t *testing.T, persister service.ProgressPersister) (*service.QuizService, *storage.SessionStorage) {
	t.Helper()
	sessions := storage.NewSessionStorage()
	progress := service.NewProgressService(persister, "quiz_progress", metrics.New())
	svc := service.NewQuizService(
		creds,
		repository.NewQuestionRepositoryFrom(sampleQuestions()),
		sessions,
		progress,
		zap.NewNop(),
		metrics.New(),
	)
	return svc, sessions
}

func mustDispatch(t *testing.T, svc *service.QuizService, id int64, a navigation.Action) service.View {
	t.Helper()
	v, err := svc.Dispatch(context.Background(), id, a)
	if err != nil {
		t.Fatalf("dispatch %s: unexpected error: %v", a.Kind, err)
	}
	return v
}

func TestQuizService_Scenario(t *testing.T) {
	persisted := storage.NewProgressStorage()
	svc, _ := newService(t, persisted)

	v := mustDispatch(t, svc, 1, navigation.Show())
	if v.State.Screen != entities.ScreenLogin {
		t.Fatalf("expected login screen, got %s", v.State.Screen)
	}

	v = mustDispatch(t, svc, 1, navigation.Login("admin", "secret"))
	if v.State.Screen != entities.ScreenHome {
		t.Fatalf("expected home, got %s", v.State.Screen)
	}
	if len(v.Groups) != 2 || v.Groups[0].Name != "A" {
		t.Fatalf("unexpected groups: %+v", v.Groups)
	}

	v = mustDispatch(t, svc, 1, navigation.Select(0))
	if v.Phase != navigation.PhaseViewing || v.Question == nil || v.Question.Question != "Q1" {
		t.Fatalf("unexpected question view: %+v", v)
	}

	mustDispatch(t, svc, 1, navigation.RequestReveal())
	v = mustDispatch(t, svc, 1, navigation.ConfirmReveal())
	if v.Phase != navigation.PhaseRevealed {
		t.Fatalf("expected revealed, got %s", v.Phase)
	}
	if v.Question.OptionText(v.Question.Answer) != "y" {
		t.Fatalf("expected correct option y, got %q", v.Question.OptionText(v.Question.Answer))
	}
	if v.Answered != 1 {
		t.Fatalf("expected 1 answered, got %d", v.Answered)
	}

	data, err := persisted.Load(context.Background(), "quiz_progress:1")
	if err != nil {
		t.Fatalf("progress not persisted: %v", err)
	}
	if string(data) != "[0]" {
		t.Fatalf("expected [0], got %s", data)
	}

	v = mustDispatch(t, svc, 1, navigation.GoHome())
	if got := v.Groups[0].Tiles[0].State; got != index.TileAnswered {
		t.Fatalf("expected answered tile, got %s", got)
	}
}

func TestQuizService_LoadsPersistedProgressOnFirstSight(t *testing.T) {
	persisted := storage.NewProgressStorage()
	_ = persisted.Save(context.Background(), "quiz_progress:7", []byte("[1,2]"))

	svc, _ := newService(t, persisted)

	v := svc.Current(context.Background(), 7)
	if v.Answered != 2 {
		t.Fatalf("expected 2 answered from storage, got %d", v.Answered)
	}
}

func TestQuizService_DropsSavedProgressOutsideBank(t *testing.T) {
	persisted := storage.NewProgressStorage()
	_ = persisted.Save(context.Background(), "quiz_progress:7", []byte("[0,5,9,40]"))

	svc, _ := newService(t, persisted)
	mustDispatch(t, svc, 7, navigation.Login("admin", "secret"))

	v := svc.Current(context.Background(), 7)
	if v.Answered != 1 || v.Total != 3 {
		t.Fatalf("expected Answered 1 / 3, got %d / %d", v.Answered, v.Total)
	}
	if got := v.Groups[0].Tiles[0].State; got != index.TileAnswered {
		t.Fatalf("expected first tile answered, got %s", got)
	}
}

func TestQuizService_LoadFailureStartsEmpty(t *testing.T) {
	svc, _ := newService(t, &failingPersister{ProgressStorage: storage.NewProgressStorage(), failLoad: true})

	v := svc.Current(context.Background(), 3)
	if v.Answered != 0 || v.State.Screen != entities.ScreenLogin {
		t.Fatalf("expected fresh session, got %+v", v)
	}
}

func TestQuizService_SaveFailureKeepsTransition(t *testing.T) {
	svc, _ := newService(t, &failingPersister{ProgressStorage: storage.NewProgressStorage(), failSave: true})

	mustDispatch(t, svc, 1, navigation.Login("admin", "secret"))
	mustDispatch(t, svc, 1, navigation.Select(2))
	mustDispatch(t, svc, 1, navigation.RequestReveal())

	v, err := svc.Dispatch(context.Background(), 1, navigation.ConfirmReveal())
	if !errors.Is(err, entities.ErrProgressNotSaved) {
		t.Fatalf("expected ErrProgressNotSaved, got %v", err)
	}
	if entities.IsFatal(err) {
		t.Fatal("save failure must be recoverable")
	}
	if v.Phase != navigation.PhaseRevealed || v.Answered != 1 {
		t.Fatalf("transition should stand: %+v", v)
	}
}

func TestQuizService_ClearDeletesPersistedProgress(t *testing.T) {
	persisted := storage.NewProgressStorage()
	_ = persisted.Save(context.Background(), "quiz_progress:1", []byte("[0,1]"))
	svc, _ := newService(t, persisted)

	mustDispatch(t, svc, 1, navigation.Login("admin", "secret"))

	mustDispatch(t, svc, 1, navigation.RequestClear())
	v := mustDispatch(t, svc, 1, navigation.CancelClear())
	if v.Answered != 2 {
		t.Fatalf("cancel must keep progress, got %d", v.Answered)
	}

	mustDispatch(t, svc, 1, navigation.RequestClear())
	v = mustDispatch(t, svc, 1, navigation.ConfirmClear())
	if v.Answered != 0 {
		t.Fatalf("expected cleared progress, got %d", v.Answered)
	}
	if _, err := persisted.Load(context.Background(), "quiz_progress:1"); !errors.Is(err, entities.ErrProgressNotFound) {
		t.Fatalf("expected key deleted, got %v", err)
	}
}

func TestQuizService_OutOfRangeIsRecoverable(t *testing.T) {
	svc, _ := newService(t, storage.NewProgressStorage())
	mustDispatch(t, svc, 1, navigation.Login("admin", "secret"))

	v, err := svc.Dispatch(context.Background(), 1, navigation.Select(99))
	if !errors.Is(err, entities.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	if v.State.Screen != entities.ScreenQuestion || v.Phase != navigation.PhaseMissing || v.Question != nil {
		t.Fatalf("expected question error sub-state, got %+v", v)
	}

	v = mustDispatch(t, svc, 1, navigation.GoHome())
	if v.State.Screen != entities.ScreenHome {
		t.Fatalf("home must stay reachable, got %s", v.State.Screen)
	}
}

func TestQuizService_SessionsAreIsolated(t *testing.T) {
	svc, sessions := newService(t, storage.NewProgressStorage())

	mustDispatch(t, svc, 1, navigation.Login("admin", "secret"))
	v := svc.Current(context.Background(), 2)
	if v.State.Authenticated {
		t.Fatal("second chat must start unauthenticated")
	}
	if sessions.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", sessions.Len())
	}
}

func TestProgressService_Key(t *testing.T) {
	p := service.NewProgressService(storage.NewProgressStorage(), "quiz_progress", nil)
	if got := p.Key(42); got != "quiz_progress:42" {
		t.Fatalf("unexpected key %q", got)
	}
	if err := p.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
