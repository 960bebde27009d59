package storage

import (
	"sync"
	"time"
)

// ScreenMessage identifies the bot message that currently shows a chat's screen.
type ScreenMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// MessageStorage remembers the latest screen message per chat so that
// keyboards of older screens can be retired.
type MessageStorage struct {
	mu       sync.RWMutex
	messages map[int64]ScreenMessage
}

func NewMessageStorage() *MessageStorage {
	return &MessageStorage{
		messages: make(map[int64]ScreenMessage),
	}
}

// Swap stores the new screen message and returns the one it replaces.
func (s *MessageStorage) Swap(chatID int64, messageID int) (ScreenMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.messages[chatID]
	s.messages[chatID] = ScreenMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    time.Now(),
	}

	return prev, ok && prev.MessageID != messageID
}

func (s *MessageStorage) Get(chatID int64) (ScreenMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[chatID]
	return m, ok
}
