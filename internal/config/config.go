package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownProgressDriver       = errors.New("unknown progress driver")
)

// Progress storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`   // Telegram API token loaded from environment
	Telegram         Telegram  `mapstructure:"telegram"`
	Auth             Auth      `mapstructure:"auth"`
	Questions        Questions `mapstructure:"questions"`
	Progress         Progress  `mapstructure:"progress"`
	DB               DB        `mapstructure:"database"`
	Redis            Redis     `mapstructure:"redis"`
	SQLite           SQLite    `mapstructure:"sqlite"`
	HTTP             HTTP      `mapstructure:"http"`
	KeepAlive        KeepAlive `mapstructure:"keepalive"`
	Slides           Slides    `mapstructure:"slides"`
	Log              Log       `mapstructure:"log"`
}

// Telegram tunes the Bot API client.
type Telegram struct {
	SendRate  float64 `mapstructure:"send_rate"`  // outgoing calls per second, 0 disables the limit
	SendBurst int     `mapstructure:"send_burst"` // calls allowed at once before throttling
}

// Auth is the single shared account. Both values come from the environment only.
type Auth struct {
	Username string `mapstructure:"-"`
	Password string `mapstructure:"-"`
}

// Questions locates the question bank.
type Questions struct {
	EncryptedPath string `mapstructure:"encrypted_path"` // Fernet-encrypted JSON, preferred when a key is set
	PlainPath     string `mapstructure:"plain_path"`     // plaintext JSON fallback
	SecretKey     string `mapstructure:"-"`              // Fernet key loaded from environment
}

// Progress selects where answered questions are persisted.
type Progress struct {
	Driver string `mapstructure:"driver"` // memory, sqlite, postgres or redis
	Key    string `mapstructure:"key"`    // storage key prefix, one entry per chat
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Redis holds Redis connection settings.
type Redis struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"-"`
	DB       int    `mapstructure:"db"`
}

// SQLite holds the local progress database location.
type SQLite struct {
	Path string `mapstructure:"path"`
}

// HTTP configures the side server for liveness, readiness and metrics.
type HTTP struct {
	Addr string `mapstructure:"addr"`
}

// KeepAlive configures the external pinger.
type KeepAlive struct {
	URL      string        `mapstructure:"url"`
	Interval time.Duration `mapstructure:"interval"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Slides configures the slide deck exporter.
type Slides struct {
	Title         string `mapstructure:"title"`
	Subtitle      string `mapstructure:"subtitle"`
	IndexTitle    string `mapstructure:"index_title"`
	Output        string `mapstructure:"output"`
	BufferImage   string `mapstructure:"buffer_image"`
	MaxIndexTiles int    `mapstructure:"max_index_tiles"`
}

// Log configures log output. File rotation is enabled when File is set.
type Log struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// IsProduction reports whether the production environment is active.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Local .env is optional; the process environment always wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("auth_username", "BIBLE_QUIZ_USER")
	_ = v.BindEnv("auth_password", "BIBLE_QUIZ_PASS")
	_ = v.BindEnv("quiz_secret_key", "QUIZ_SECRET_KEY")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis.address", "REDIS_ADDRESS")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("keepalive.url", "KEEPALIVE_URL")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.Auth.Username = v.GetString("auth_username")
	cfg.Auth.Password = v.GetString("auth_password")
	cfg.Questions.SecretKey = strings.TrimSpace(v.GetString("quiz_secret_key"))
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.Password = v.GetString("redis_password")

	// Hosting platforms announce the listening port through PORT.
	if port := v.GetString("port"); port != "" {
		cfg.HTTP.Addr = ":" + port
	}

	cfg.Progress.Driver = strings.ToLower(strings.TrimSpace(cfg.Progress.Driver))

	return &cfg, nil
}

// ValidateBot checks the settings the interactive bot cannot start without.
func (c *Config) ValidateBot() error {
	var missing []string
	if c.TelegramAPIToken == "" {
		missing = append(missing, "TELEGRAM_API_TOKEN")
	}
	if c.Auth.Username == "" {
		missing = append(missing, "BIBLE_QUIZ_USER")
	}
	if c.Auth.Password == "" {
		missing = append(missing, "BIBLE_QUIZ_PASS")
	}

	switch c.Progress.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.DB.URL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case DriverRedis:
		if c.Redis.Address == "" {
			missing = append(missing, "REDIS_ADDRESS")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProgressDriver, c.Progress.Driver)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnvironmentVariables, strings.Join(missing, ", "))
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("telegram.send_rate", 25)
	v.SetDefault("telegram.send_burst", 5)

	v.SetDefault("questions.encrypted_path", "questions.enc")
	v.SetDefault("questions.plain_path", "questions.json")

	v.SetDefault("progress.driver", DriverSQLite)
	v.SetDefault("progress.key", "quiz_progress")

	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("sqlite.path", "data/progress.db")

	v.SetDefault("http.addr", ":8080")

	v.SetDefault("keepalive.url", "http://localhost:8080/?ping=1")
	v.SetDefault("keepalive.interval", "10m")
	v.SetDefault("keepalive.timeout", "10s")

	v.SetDefault("slides.title", "✨ Flash of Insight")
	v.SetDefault("slides.subtitle", "Click a tile to open a question")
	v.SetDefault("slides.index_title", "📚 Question Index")
	v.SetDefault("slides.output", "quiz-deck.html")
	v.SetDefault("slides.buffer_image", "")
	v.SetDefault("slides.max_index_tiles", 36)

	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
}
