package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot      Bot
	logger   *zap.Logger
	quiz     QuizService
	screens  ScreenStorage
	fatalErr error
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	quiz QuizService,
	screens ScreenStorage,
) *Handler {
	return &Handler{
		bot:     bot,
		logger:  logger,
		quiz:    quiz,
		screens: screens,
	}
}

// NewHaltedHandler creates a handler that answers every update with the load failure.
func NewHaltedHandler(bot Bot, logger *zap.Logger, fatalErr error) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		fatalErr: fatalErr,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started", zap.Bool("halted", h.fatalErr != nil))
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if h.fatalErr != nil {
		h.handleHalted(update)
		return
	}

	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.Bool("command", update.Message.IsCommand()),
	)

	if update.Message.IsCommand() {
		h.handleCommand(ctx, update.Message)
		return
	}

	h.handleText(ctx, update.Message)
}

// handleHalted answers any update with the fatal load failure.
func (h *Handler) handleHalted(update tgbotapi.Update) {
	text := fatalMessage(h.fatalErr)

	switch {
	case update.CallbackQuery != nil:
		h.answerCallback(update.CallbackQuery.ID, "")
		if update.CallbackQuery.Message != nil {
			h.sendError(update.CallbackQuery.Message.Chat.ID, text)
		}
	case update.Message != nil:
		h.sendError(update.Message.Chat.ID, text)
	}
}

// showScreen sends s as a new message and retires the keyboard of the previous screen.
func (h *Handler) showScreen(chatID int64, s screen) error {
	msg := newHTMLMessage(chatID, s.text)
	if s.keyboard != nil {
		msg.ReplyMarkup = *s.keyboard
	}

	sent, err := h.bot.Send(msg)
	if err != nil {
		return err
	}

	h.track(chatID, sent.MessageID)
	return nil
}

// editScreen replaces the message that carried a pressed button.
func (h *Handler) editScreen(chatID int64, msgID int, s screen) error {
	edit := newHTMLEdit(chatID, msgID, s.text)
	edit.ReplyMarkup = s.keyboard

	if _, err := h.bot.Send(edit); err != nil && !isNotModified(err) {
		return err
	}

	h.track(chatID, msgID)
	return nil
}

func (h *Handler) track(chatID int64, msgID int) {
	prev, replaced := h.screens.Swap(chatID, msgID)
	if !replaced {
		return
	}

	retire := tgbotapi.NewEditMessageReplyMarkup(chatID, prev.MessageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := h.bot.Request(retire); err != nil {
		h.logger.Debug("failed to retire old keyboard",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", prev.MessageID),
			zap.Error(err),
		)
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	_ = h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
