// messages.go contains message templates and error notices for Telegram.

package telegram

import (
	"errors"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
)

const (
	msgLoginPrompt = "Send your username and password in one message:\n<code>username password</code>\n\nor use /login username password."
	msgLoginUsage  = "Usage: /login username password"
	msgUseButtons  = "Use the buttons below, or /home and /logout."
	msgHelp        = "<b>Commands</b>\n\n" +
		"/start — show the current screen\n" +
		"/login user password — sign in\n" +
		"/home — back to the question index\n" +
		"/logout — sign out\n" +
		"/help — this message"
	msgInternalError  = "Something went wrong. Please try again later."
	msgUnknownCommand = "Unknown command. See /help."
)

// Inline notices shown above the screen after a rejected action.
const (
	noticeAuthMismatch      = "❌ Incorrect username or password."
	noticeAuthRequired      = "🔒 Please log in first."
	noticeQuestionNotFound  = "⚠️ That question does not exist or is out of range."
	noticeInvalidTransition = "ℹ️ That button is no longer active."
	noticeProgressNotSaved  = "⚠️ Progress could not be saved."
)

// Fatal failure messages.
const (
	msgDataUnavailable = "⛔ The quiz is unavailable: no question file was found."
	msgDataCorrupt     = "⛔ The quiz is unavailable: the question file could not be decrypted or read."
	msgDataFailed      = "⛔ The quiz is unavailable: the question bank could not be loaded."
)

// noticeFor maps a recoverable error to the inline notice shown to the user.
func noticeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, entities.ErrAuthMismatch):
		return noticeAuthMismatch
	case errors.Is(err, entities.ErrAuthRequired):
		return noticeAuthRequired
	case errors.Is(err, entities.ErrQuestionNotFound):
		return noticeQuestionNotFound
	case errors.Is(err, entities.ErrInvalidTransition):
		return noticeInvalidTransition
	case errors.Is(err, entities.ErrProgressNotSaved):
		return noticeProgressNotSaved
	default:
		return msgInternalError
	}
}

// fatalMessage describes a question bank load failure.
func fatalMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrDataUnavailable):
		return msgDataUnavailable
	case errors.Is(err, entities.ErrDataCorrupt):
		return msgDataCorrupt
	default:
		return msgDataFailed
	}
}
