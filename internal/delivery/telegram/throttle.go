package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// throttledBot spaces outgoing Bot API calls to stay under Telegram's flood limits.
type throttledBot struct {
	Bot
	ctx     context.Context
	limiter *rate.Limiter
}

// NewThrottledBot wraps bot so that Send and Request are limited to perSecond calls with the given burst.
// A non-positive rate disables the limit. Waiting calls fail once ctx is done.
func NewThrottledBot(ctx context.Context, bot Bot, perSecond float64, burst int) Bot {
	if perSecond <= 0 {
		return bot
	}
	if burst < 1 {
		burst = 1
	}
	return &throttledBot{
		Bot:     bot,
		ctx:     ctx,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (b *throttledBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := b.limiter.Wait(b.ctx); err != nil {
		return tgbotapi.Message{}, err
	}
	return b.Bot.Send(c)
}

func (b *throttledBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if err := b.limiter.Wait(b.ctx); err != nil {
		return nil, err
	}
	return b.Bot.Request(c)
}
