package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	defer h.answerCallback(cb.ID, "")

	if cb.Message == nil {
		return
	}

	cd := decodeCallback(cb.Data)
	if cd.Action == actionNoop {
		return
	}

	action, ok := cd.toAction()
	if !ok {
		h.logger.Warn("invalid callback data", zap.String("data", cb.Data))
		return
	}

	page, _ := cd.page()

	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
		view, err := h.quiz.Dispatch(ctx, chatID, action)
		if err != nil {
			h.logger.Info("action rejected",
				zap.Int64("session_id", chatID),
				zap.String("action", string(action.Kind)),
				zap.Error(err),
			)
		}
		return h.editScreen(chatID, msgID, renderView(view, err, page))
	})(ctx, chatID)
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
