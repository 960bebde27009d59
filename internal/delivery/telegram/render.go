package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/navigation"
	"github.com/aliskhannn/quiz-presenter-bot/internal/service"
)

// screen is a rendered view: HTML text and an optional inline keyboard.
type screen struct {
	text     string
	keyboard *tgbotapi.InlineKeyboardMarkup
}

// renderView turns a view and the error of the action that produced it into a screen.
// page selects the page of the question index on the home screen.
func renderView(v service.View, err error, page int) screen {
	var s screen

	switch v.State.Screen {
	case entities.ScreenHome:
		s = renderHome(v, page)
	case entities.ScreenQuestion:
		s = renderQuestion(v)
	default:
		s = screen{text: "🔐 <b>Login</b>\n\n" + msgLoginPrompt}
	}

	// The error sub-state already explains itself.
	if notice := noticeFor(err); notice != "" && v.Phase != navigation.PhaseMissing {
		s.text = notice + "\n\n" + s.text
	}

	return s
}

func renderHome(v service.View, page int) screen {
	var sb strings.Builder

	sb.WriteString("🏠 <b>Question index</b>\n")
	fmt.Fprintf(&sb, "Answered: %d / %d\n", v.Answered, v.Total)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s answered  %s warm-up  %s not yet\n", markerAnswered, markerWarmUp, markerDefault)

	if v.State.ConfirmClear {
		sb.WriteString("\n<b>Clear all progress?</b> This cannot be undone.")
	}

	kb := buildHomeKeyboard(v.Groups, v.State.ConfirmClear, page)
	return screen{text: sb.String(), keyboard: &kb}
}

func renderQuestion(v service.View) screen {
	if v.Phase == navigation.PhaseMissing || v.Question == nil {
		kb := buildNavigationKeyboard()
		return screen{text: noticeQuestionNotFound, keyboard: &kb}
	}

	q := v.Question
	revealed := v.Phase == navigation.PhaseRevealed

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Question %d</b> | %s\n\n", v.QuestionIndex+1, esc(q.Group))
	sb.WriteString(esc(q.Question))
	sb.WriteString("\n\n")

	for _, opt := range q.Options() {
		line := fmt.Sprintf("%s) %s", opt.Key, esc(opt.Text))
		if revealed && opt.Key == q.Answer {
			line = "✅ <b>" + line + "</b>"
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	var kb tgbotapi.InlineKeyboardMarkup
	switch v.Phase {
	case navigation.PhaseConfirming:
		sb.WriteString("\n<b>Reveal the answer?</b>")
		kb = buildRevealConfirmKeyboard()

	case navigation.PhaseRevealed:
		fmt.Fprintf(&sb, "\n<b>Correct answer:</b> %s) %s\n", q.Answer, esc(q.OptionText(q.Answer)))
		explanation := q.Explanation
		if explanation == "" {
			explanation = "None"
		}
		fmt.Fprintf(&sb, "<b>Explanation:</b> %s", esc(explanation))
		kb = buildNavigationKeyboard()

	default:
		kb = buildQuestionKeyboard()
	}

	return screen{text: sb.String(), keyboard: &kb}
}
