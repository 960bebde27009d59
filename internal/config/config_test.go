package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("BIBLE_QUIZ_USER", "admin")
	t.Setenv("BIBLE_QUIZ_PASS", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "local" {
		t.Errorf("expected env 'local', got '%s'", cfg.Env)
	}
	if cfg.Questions.PlainPath != "questions.json" || cfg.Questions.EncryptedPath != "questions.enc" {
		t.Errorf("unexpected question paths: %+v", cfg.Questions)
	}
	if cfg.Progress.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver, got '%s'", cfg.Progress.Driver)
	}
	if cfg.KeepAlive.Interval != 10*time.Minute || cfg.KeepAlive.Timeout != 10*time.Second {
		t.Errorf("unexpected keepalive timings: %+v", cfg.KeepAlive)
	}
	if cfg.Telegram.SendRate != 25 || cfg.Telegram.SendBurst != 5 {
		t.Errorf("unexpected telegram throttle: %+v", cfg.Telegram)
	}
	if cfg.Slides.MaxIndexTiles != 36 {
		t.Errorf("expected 36 index tiles, got %d", cfg.Slides.MaxIndexTiles)
	}
	if cfg.Auth.Username != "admin" || cfg.Auth.Password != "secret" {
		t.Errorf("credentials not loaded: %+v", cfg.Auth)
	}
	if err := cfg.ValidateBot(); err != nil {
		t.Errorf("ValidateBot failed: %v", err)
	}
}

func TestLoadFromDotEnvAndPort(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	env := "QUIZ_SECRET_KEY= abc \nPROGRESS_DRIVER=Redis\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("PORT", "10000")

	// Variables loaded from .env leak into the process; restore them afterwards.
	t.Cleanup(func() {
		os.Unsetenv("QUIZ_SECRET_KEY")
		os.Unsetenv("PROGRESS_DRIVER")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Questions.SecretKey != "abc" {
		t.Errorf("expected secret key 'abc', got '%s'", cfg.Questions.SecretKey)
	}
	if cfg.Progress.Driver != DriverRedis {
		t.Errorf("expected redis driver, got '%s'", cfg.Progress.Driver)
	}
	if cfg.HTTP.Addr != ":10000" {
		t.Errorf("expected addr ':10000', got '%s'", cfg.HTTP.Addr)
	}
}

func TestValidateBot(t *testing.T) {
	base := Config{
		TelegramAPIToken: "token",
		Auth:             Auth{Username: "u", Password: "p"},
		Progress:         Progress{Driver: DriverMemory},
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"valid", func(c *Config) {}, nil},
		{"missing token", func(c *Config) { c.TelegramAPIToken = "" }, ErrMissingEnvironmentVariables},
		{"missing password", func(c *Config) { c.Auth.Password = "" }, ErrMissingEnvironmentVariables},
		{"postgres without url", func(c *Config) { c.Progress.Driver = DriverPostgres }, ErrMissingEnvironmentVariables},
		{"redis without address", func(c *Config) { c.Progress.Driver = DriverRedis }, ErrMissingEnvironmentVariables},
		{"unknown driver", func(c *Config) { c.Progress.Driver = "mongo" }, ErrUnknownProgressDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.ValidateBot(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
