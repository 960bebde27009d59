// Package keepalive periodically requests the liveness probe so the host does not idle the bot.
package keepalive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Pinger struct {
	client   *http.Client
	url      string
	interval time.Duration
	logger   *zap.Logger
}

func NewPinger(url string, interval, timeout time.Duration, logger *zap.Logger) *Pinger {
	return &Pinger{
		client:   &http.Client{Timeout: timeout},
		url:      url,
		interval: interval,
		logger:   logger,
	}
}

// Run pings immediately and then every interval until ctx is cancelled.
// Failed pings are logged and never stop the schedule. Intervals below one second round up.
func (p *Pinger) Run(ctx context.Context) error {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	_, err := c.AddFunc(fmt.Sprintf("@every %s", p.interval), func() {
		p.pingAndLog(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule keepalive: %w", err)
	}

	p.logger.Info("keepalive started",
		zap.String("url", p.url),
		zap.Duration("interval", p.interval),
	)

	p.pingAndLog(ctx)
	c.Start()

	<-ctx.Done()

	// Wait for an in-flight ping to return.
	<-c.Stop().Done()
	p.logger.Info("keepalive stopped")

	return nil
}

func (p *Pinger) pingAndLog(ctx context.Context) {
	status, err := p.Ping(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn("ping failed", zap.String("url", p.url), zap.Error(err))
		return
	}
	p.logger.Info("ping", zap.String("url", p.url), zap.Int("status", status))
}

// Ping performs a single request and returns the response status code.
func (p *Pinger) Ping(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
