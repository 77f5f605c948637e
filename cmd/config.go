package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	SettingsCacheTTL time.Duration `env:"SETTINGS_CACHE_TTL" envDefault:"5m"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// CandidateRanking is "load" or "name".
	CandidateRanking string `env:"CANDIDATE_RANKING" envDefault:"load"`

	PresenceTTL             time.Duration `env:"PRESENCE_TTL" envDefault:"2m"`
	PresenceSweepSchedule   string        `env:"PRESENCE_SWEEP_SCHEDULE" envDefault:"@every 30s"`
	SettingsRefreshSchedule string        `env:"SETTINGS_REFRESH_SCHEDULE" envDefault:"@every 1m"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PresenceTTL <= 0 {
		return Config{}, fmt.Errorf("PRESENCE_TTL must be positive, got %s", cfg.PresenceTTL)
	}
	if cfg.SettingsCacheTTL <= 0 {
		return Config{}, fmt.Errorf("SETTINGS_CACHE_TTL must be positive, got %s", cfg.SettingsCacheTTL)
	}
	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// String renders the config for startup logs with secrets masked.
func (c Config) String() string {
	return fmt.Sprintf("http_port=%s db=%s@%s:%s/%s redis=%s ranking=%s presence_ttl=%s log_level=%s jwt_secret=%s",
		c.HTTPPort, c.DBUser, c.DBHost, c.DBPort, c.DBName, c.RedisAddr,
		c.CandidateRanking, c.PresenceTTL, c.LogLevel, mask(c.JWTSecret))
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
