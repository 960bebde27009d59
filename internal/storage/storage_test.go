package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
)

func TestSessionStorage(t *testing.T) {
	s := NewSessionStorage()

	if _, ok := s.Get(1); ok {
		t.Fatal("expected no session")
	}

	sess := entities.NewSession(1)
	s.Store(sess)

	got, ok := s.Get(1)
	if !ok || got != sess {
		t.Fatalf("expected stored session, got %v", got)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 session, got %d", s.Len())
	}

	s.Delete(1)
	if _, ok := s.Get(1); ok {
		t.Error("session not deleted")
	}
}

func TestProgressStorage(t *testing.T) {
	ctx := context.Background()
	s := NewProgressStorage()

	if _, err := s.Load(ctx, "k"); !errors.Is(err, entities.ErrProgressNotFound) {
		t.Fatalf("expected ErrProgressNotFound, got %v", err)
	}

	data := []byte("[1,2]")
	if err := s.Save(ctx, "k", data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data[1] = '9'

	got, err := s.Load(ctx, "k")
	if err != nil || string(got) != "[1,2]" {
		t.Fatalf("expected stored copy, got %q, %v", got, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Load(ctx, "k"); !errors.Is(err, entities.ErrProgressNotFound) {
		t.Errorf("expected ErrProgressNotFound after delete, got %v", err)
	}
}

func TestMessageStorageSwap(t *testing.T) {
	s := NewMessageStorage()

	if _, replaced := s.Swap(10, 100); replaced {
		t.Error("first message cannot replace anything")
	}

	prev, replaced := s.Swap(10, 101)
	if !replaced || prev.MessageID != 100 {
		t.Errorf("expected to replace message 100, got %+v, %v", prev, replaced)
	}

	if _, replaced := s.Swap(10, 101); replaced {
		t.Error("same message must not be reported as replaced")
	}

	m, ok := s.Get(10)
	if !ok || m.MessageID != 101 {
		t.Errorf("unexpected current message: %+v", m)
	}
}
