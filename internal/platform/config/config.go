package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "heroes-marathon-bot/internal/platform/errors"
)

const (
	SinkPostgres = "postgres"
	SinkSqlite   = "sqlite"
	SinkCSV      = "csv"

	SessionsMemory = "memory"
	SessionsRedis  = "redis"
)

// Config aggregates every runtime setting of the bot.
// Values come from an optional YAML file (CONFIG_FILE) overridden by environment variables.
type Config struct {
	BotToken    string `yaml:"bot_token"`
	BotDebug    bool   `yaml:"bot_debug"`
	PollTimeout int    `yaml:"poll_timeout"`
	Workers     int    `yaml:"workers"`

	Sink        string `yaml:"result_sink"`
	DatabaseURL string `yaml:"database_url"`
	SqlitePath  string `yaml:"sqlite_path"`
	CSVPath     string `yaml:"csv_path"`

	SessionBackend string        `yaml:"session_backend"`
	RedisURL       string        `yaml:"redis_url"`
	SessionTTL     time.Duration `yaml:"session_ttl"`

	MinNameLength   int           `yaml:"min_name_length"`
	StartRetryDelay time.Duration `yaml:"start_retry_delay"`

	WebsiteURLUK string `yaml:"website_url_uk"`
	WebsiteURLEN string `yaml:"website_url_en"`

	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

func defaults() Config {
	return Config{
		PollTimeout:    60,
		Workers:        16,
		Sink:           SinkCSV,
		SqlitePath:     "data/marathon.db",
		CSVPath:        "marathon_results.csv",
		SessionBackend: SessionsMemory,
		SessionTTL:     7 * 24 * time.Hour,
		MinNameLength:  2,
		WebsiteURLUK:   "https://www.ukrainian.run/#registration",
		WebsiteURLEN:   "https://www.ukrainian.run/en/#registration",
		LogLevel:       "info",
	}
}

// Load reads the configuration. It fails when the bot credential is absent.
func Load() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("load config: parse %q: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.BotToken = Get("BOT_TOKEN", cfg.BotToken)
	cfg.Sink = strings.ToLower(Get("RESULT_SINK", cfg.Sink))
	cfg.DatabaseURL = Get("DATABASE_URL", cfg.DatabaseURL)
	cfg.SqlitePath = Get("SQLITE_PATH", cfg.SqlitePath)
	cfg.CSVPath = Get("CSV_PATH", cfg.CSVPath)
	cfg.SessionBackend = strings.ToLower(Get("SESSION_BACKEND", cfg.SessionBackend))
	cfg.RedisURL = Get("REDIS_URL", cfg.RedisURL)
	cfg.WebsiteURLUK = Get("WEBSITE_URL_UK", cfg.WebsiteURLUK)
	cfg.WebsiteURLEN = Get("WEBSITE_URL_EN", cfg.WebsiteURLEN)
	cfg.HTTPAddr = Get("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = Get("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = Get("LOG_FILE", cfg.LogFile)

	var err error
	if cfg.BotDebug, err = getBool("BOT_DEBUG", cfg.BotDebug); err != nil {
		return err
	}
	if cfg.PollTimeout, err = getInt("POLL_TIMEOUT", cfg.PollTimeout); err != nil {
		return err
	}
	if cfg.Workers, err = getInt("WORKERS", cfg.Workers); err != nil {
		return err
	}
	if cfg.MinNameLength, err = getInt("MIN_NAME_LENGTH", cfg.MinNameLength); err != nil {
		return err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", cfg.SessionTTL); err != nil {
		return err
	}
	if cfg.StartRetryDelay, err = getDuration("START_RETRY_DELAY", cfg.StartRetryDelay); err != nil {
		return err
	}

	return nil
}

// Validate checks required settings and the consistency of the chosen backends.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BotToken) == "" {
		return fmt.Errorf("%w: BOT_TOKEN is required", apperrors.ErrInvalidConfig)
	}

	switch c.Sink {
	case SinkPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres sink", apperrors.ErrInvalidConfig)
		}
	case SinkSqlite:
		if strings.TrimSpace(c.SqlitePath) == "" {
			return fmt.Errorf("%w: SQLITE_PATH is required for the sqlite sink", apperrors.ErrInvalidConfig)
		}
	case SinkCSV:
		if strings.TrimSpace(c.CSVPath) == "" {
			return fmt.Errorf("%w: CSV_PATH is required for the csv sink", apperrors.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown RESULT_SINK %q", apperrors.ErrInvalidConfig, c.Sink)
	}

	switch c.SessionBackend {
	case SessionsMemory:
	case SessionsRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("%w: REDIS_URL is required for the redis session backend", apperrors.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown SESSION_BACKEND %q", apperrors.ErrInvalidConfig, c.SessionBackend)
	}

	if c.Workers < 1 {
		return fmt.Errorf("%w: WORKERS must be positive", apperrors.ErrInvalidConfig)
	}
	if c.StartRetryDelay < 0 {
		return fmt.Errorf("%w: START_RETRY_DELAY must not be negative", apperrors.ErrInvalidConfig)
	}

	return nil
}

// Get returns the trimmed value of an environment variable or fallback when unset.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", apperrors.ErrInvalidConfig, key, v)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", apperrors.ErrInvalidConfig, key, v)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", apperrors.ErrInvalidConfig, key, v)
	}
	return d, nil
}
