// Command slides exports the question bank as a clickable HTML slide deck.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-presenter-bot/internal/config"
	"github.com/aliskhannn/quiz-presenter-bot/internal/logger"
	"github.com/aliskhannn/quiz-presenter-bot/internal/repository"
	"github.com/aliskhannn/quiz-presenter-bot/internal/slides"
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

	if err := run(os.Args[1:], cfg, lg); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		lg.Fatal("slide export failed", zap.Error(err))
	}
}

func run(args []string, cfg *config.Config, lg *zap.Logger) error {
	fs := pflag.NewFlagSet("slides", pflag.ContinueOnError)
	input := fs.StringP("input", "i", "", "plaintext question file (overrides the configured sources)")
	output := fs.StringP("output", "o", cfg.Slides.Output, "HTML deck to write")
	title := fs.StringP("title", "t", cfg.Slides.Title, "deck title")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src := repository.QuestionSource{
		EncryptedPath: cfg.Questions.EncryptedPath,
		PlainPath:     cfg.Questions.PlainPath,
		SecretKey:     cfg.Questions.SecretKey,
	}
	if *input != "" {
		src = repository.QuestionSource{PlainPath: *input}
	}

	questions, err := repository.NewQuestionRepository(src)
	if err != nil {
		return err
	}

	image, err := slides.LoadBufferImage(cfg.Slides.BufferImage)
	if err != nil {
		lg.Warn("buffer image skipped", zap.String("path", cfg.Slides.BufferImage), zap.Error(err))
	}

	deck := slides.Plan(questions.All(), slides.Options{
		Title:         *title,
		Subtitle:      cfg.Slides.Subtitle,
		IndexTitle:    cfg.Slides.IndexTitle,
		MaxIndexTiles: cfg.Slides.MaxIndexTiles,
		BufferImage:   image,
	})
	if deck.Omitted > 0 {
		lg.Warn("index slide is full, some questions have no tile",
			zap.Int("max_index_tiles", cfg.Slides.MaxIndexTiles),
			zap.Int("omitted", deck.Omitted),
		)
	}

	var buf bytes.Buffer
	if err := slides.Render(&buf, deck); err != nil {
		return err
	}
	if err := os.WriteFile(*output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *output, err)
	}

	lg.Info("slide deck written",
		zap.String("path", *output),
		zap.Int("questions", questions.Len()),
		zap.Int("slides", len(deck.Slides)),
	)
	return nil
}
