// internal/config/config.go
//
// Process configuration, read from the environment (and an optional .env file).
// Every key has a development default so the server starts with no setup.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Lookup modes.
const (
	LookupHTTP   = "http"
	LookupStatic = "static"
)

// History backends.
const (
	HistorySQLite = "sqlite"
	HistoryMemory = "memory"
)

// Config holds every tunable of the server.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	DBPath   string `env:"DB_PATH" envDefault:"./data/chain.db"`

	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	AppEnv       string `env:"APP_ENV" envDefault:"development"`

	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"chain_token"`

	DailySalt        string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	StarterWordsFile string `env:"STARTER_WORDS_FILE"`

	LookupMode    string        `env:"LOOKUP_MODE" envDefault:"http"`
	LookupURL     string        `env:"LOOKUP_URL" envDefault:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"5s"`
	LookupRetries uint          `env:"LOOKUP_RETRIES" envDefault:"3"`

	HistoryBackend string `env:"HISTORY_BACKEND" envDefault:"sqlite"`
	HistoryLimit   int    `env:"HISTORY_LIMIT" envDefault:"10"`

	StrictGuesses bool          `env:"STRICT_GUESSES" envDefault:"false"`
	TickInterval  time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`
	SessionIdle   time.Duration `env:"SESSION_IDLE" envDefault:"30m"`
}

// Production reports whether cookies must be Secure / SameSite=None.
func (c Config) Production() bool { return c.AppEnv == "production" }

// Load reads .env (if present, without overriding the real environment) and
// parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment into a Config and validates it.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) validate() error {
	c.LookupMode = strings.ToLower(strings.TrimSpace(c.LookupMode))
	c.HistoryBackend = strings.ToLower(strings.TrimSpace(c.HistoryBackend))

	switch c.LookupMode {
	case LookupHTTP, LookupStatic:
	default:
		return fmt.Errorf("LOOKUP_MODE: unknown mode %q", c.LookupMode)
	}
	switch c.HistoryBackend {
	case HistorySQLite, HistoryMemory:
	default:
		return fmt.Errorf("HISTORY_BACKEND: unknown backend %q", c.HistoryBackend)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	return nil
}
