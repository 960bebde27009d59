package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/navigation"
	"github.com/aliskhannn/quiz-presenter-bot/internal/service"
	"github.com/aliskhannn/quiz-presenter-bot/internal/storage"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type QuizService interface {
	Dispatch(ctx context.Context, sessionID int64, action navigation.Action) (service.View, error)
	Current(ctx context.Context, sessionID int64) service.View
}

type ScreenStorage interface {
	Swap(chatID int64, messageID int) (storage.ScreenMessage, bool)
}
