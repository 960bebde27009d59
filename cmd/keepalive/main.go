package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-presenter-bot/internal/config"
	"github.com/aliskhannn/quiz-presenter-bot/internal/keepalive"
	"github.com/aliskhannn/quiz-presenter-bot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := keepalive.NewPinger(cfg.KeepAlive.URL, cfg.KeepAlive.Interval, cfg.KeepAlive.Timeout, lg.Named("keepalive"))
	if err := p.Run(ctx); err != nil {
		lg.Error("keepalive stopped with error", zap.Error(err))
	}
}
