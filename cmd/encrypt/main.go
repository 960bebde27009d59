// Command encrypt validates the plaintext question bank and writes it as a Fernet token.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/aliskhannn/quiz-presenter-bot/internal/config"
	"github.com/aliskhannn/quiz-presenter-bot/internal/repository"
	"github.com/aliskhannn/quiz-presenter-bot/internal/secret"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := run(os.Args[1:], cfg, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func run(args []string, cfg *config.Config, out io.Writer) error {
	fs := pflag.NewFlagSet("encrypt", pflag.ContinueOnError)
	input := fs.StringP("input", "i", cfg.Questions.PlainPath, "plaintext question file")
	output := fs.StringP("output", "o", cfg.Questions.EncryptedPath, "encrypted output file")
	key := fs.StringP("key", "k", cfg.Questions.SecretKey, "Fernet key (defaults to QUIZ_SECRET_KEY)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	plain, err := os.ReadFile(*input)
	if err != nil {
		return fmt.Errorf("read %s: %w", *input, err)
	}

	questions, err := repository.ParseQuestions(plain)
	if err != nil {
		return fmt.Errorf("validate %s: %w", *input, err)
	}

	if *key == "" {
		generated, err := secret.GenerateKey()
		if err != nil {
			return err
		}
		*key = generated
		fmt.Fprintf(out, "Generated a new key. Store it as QUIZ_SECRET_KEY:\n%s\n", generated)
	}

	token, err := secret.Encrypt(plain, *key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*output, token, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", *output, err)
	}

	fmt.Fprintf(out, "Encrypted %d questions from %s to %s\n", len(questions), *input, *output)
	return nil
}
