package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/navigation"
)

func (h *Handler) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID

	switch m.Command() {
	case "start":
		_ = h.withErrorHandling(h.dispatchHandler(navigation.Show()))(ctx, chatID)

	case "login":
		defer h.deleteMessage(chatID, m.MessageID)

		username, password, ok := splitCredentials(m.CommandArguments())
		if !ok {
			h.sendError(chatID, msgLoginUsage)
			return
		}
		_ = h.withErrorHandling(h.dispatchHandler(navigation.Login(username, password)))(ctx, chatID)

	case "home":
		_ = h.withErrorHandling(h.dispatchHandler(navigation.GoHome()))(ctx, chatID)

	case "logout":
		_ = h.withErrorHandling(h.dispatchHandler(navigation.Logout()))(ctx, chatID)

	case "help":
		h.sendError(chatID, msgHelp)

	default:
		h.sendError(chatID, msgUnknownCommand)
	}
}

// handleText treats plain text on the Login screen as a credentials submission.
func (h *Handler) handleText(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID

	if h.quiz.Current(ctx, chatID).State.Screen != entities.ScreenLogin {
		h.sendError(chatID, msgUseButtons)
		return
	}

	defer h.deleteMessage(chatID, m.MessageID)

	username, password, ok := splitCredentials(m.Text)
	if !ok {
		h.sendError(chatID, msgLoginPrompt)
		return
	}

	_ = h.withErrorHandling(h.dispatchHandler(navigation.Login(username, password)))(ctx, chatID)
}

// dispatchHandler runs action and shows the resulting screen as a new message.
func (h *Handler) dispatchHandler(action navigation.Action) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		view, err := h.quiz.Dispatch(ctx, chatID, action)
		if err != nil {
			h.logger.Info("action rejected",
				zap.Int64("session_id", chatID),
				zap.String("action", string(action.Kind)),
				zap.Error(err),
			)
		}
		return h.showScreen(chatID, renderView(view, err, 0))
	}
}

// deleteMessage removes a user message, used for messages carrying credentials.
func (h *Handler) deleteMessage(chatID int64, msgID int) {
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, msgID)); err != nil {
		h.logger.Warn("failed to delete credentials message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// splitCredentials parses "username password".
func splitCredentials(s string) (string, string, bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}
