package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/quiz-presenter-bot/internal/config"
	"github.com/aliskhannn/quiz-presenter-bot/internal/delivery/httpapi"
	"github.com/aliskhannn/quiz-presenter-bot/internal/delivery/telegram"
	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/navigation"
	"github.com/aliskhannn/quiz-presenter-bot/internal/logger"
	"github.com/aliskhannn/quiz-presenter-bot/internal/metrics"
	"github.com/aliskhannn/quiz-presenter-bot/internal/repository"
	"github.com/aliskhannn/quiz-presenter-bot/internal/service"
	"github.com/aliskhannn/quiz-presenter-bot/internal/storage"
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

	if err := cfg.ValidateBot(); err != nil {
		lg.Fatal("invalid configuration", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create telegram bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Show the current screen"},
		{Command: "login", Description: "Sign in (usage: /login user password)"},
		{Command: "home", Description: "Back to the question index"},
		{Command: "logout", Description: "Sign out"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = !cfg.IsProduction()
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	tg := telegram.NewThrottledBot(ctx, bot, cfg.Telegram.SendRate, cfg.Telegram.SendBurst)

	var (
		handler *telegram.Handler
		ready   httpapi.ReadinessChecker
	)

	questions, loadErr := repository.NewQuestionRepository(repository.QuestionSource{
		EncryptedPath: cfg.Questions.EncryptedPath,
		PlainPath:     cfg.Questions.PlainPath,
		SecretKey:     cfg.Questions.SecretKey,
	})
	if loadErr != nil {
		// The bot stays up to tell users why the quiz is unavailable.
		lg.Error("question bank failed to load", zap.Error(loadErr))
		handler = telegram.NewHaltedHandler(tg, lg.Named("telegram"), loadErr)
		ready = httpapi.ReadyFunc(func(context.Context) error { return loadErr })
	} else {
		lg.Info("question bank loaded",
			zap.Int("questions", questions.Len()),
			zap.String("origin", string(questions.Origin())),
			zap.String("path", questions.Path()),
		)
		m.QuestionsLoaded(questions.Len())

		persister, closePersister, err := newProgressPersister(ctx, cfg, lg)
		if err != nil {
			lg.Fatal("failed to open progress storage", zap.String("driver", cfg.Progress.Driver), zap.Error(err))
		}
		defer closePersister()

		progressService := service.NewProgressService(persister, cfg.Progress.Key, m)
		quizService := service.NewQuizService(
			navigation.Credentials{Username: cfg.Auth.Username, Password: cfg.Auth.Password},
			questions,
			storage.NewSessionStorage(),
			progressService,
			lg.Named("quiz"),
			m,
		)

		handler = telegram.NewHandler(tg, lg.Named("telegram"), quizService, storage.NewMessageStorage())
		ready = quizService
	}

	server := httpapi.NewServer(ready, lg.Named("http"), m)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handler.Run(gctx)
	})
	g.Go(func() error {
		return server.Run(gctx, cfg.HTTP.Addr)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
		return
	}

	lg.Info("shutdown complete")
}
