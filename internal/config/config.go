// Package config читает настройки бота из окружения и (опционально) из .env файла.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Host     string `env:"MC_HOST" envDefault:"play.example.com"`
	Port     int    `env:"MC_PORT" envDefault:"25565"`
	Username string `env:"MC_USER" envDefault:"MyBot"`
	Password string `env:"MC_PASS"`
	// пусто = версия согласуется мостом автоматически
	Version string `env:"MC_VERSION"`
	Owner   string `env:"MC_OWNER"`

	// AFKInterval в секундах, <= 0 отключает anti-AFK
	AFKInterval    int           `env:"AFK_INTERVAL" envDefault:"60"`
	ReconnectDelay time.Duration `env:"MC_RECONNECT_DELAY" envDefault:"5s"`

	BridgeURL string `env:"MC_BRIDGE_URL" envDefault:"ws://127.0.0.1:8765/bot"`

	LogFile  string `env:"MC_LOG_FILE"`
	LogLevel string `env:"MC_LOG_LEVEL" envDefault:"info"`
}

// Load — подгружает envFile (если он есть) в окружение процесса, не перетирая
// уже выставленные переменные, и разбирает из окружения Config.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Owner = strings.TrimSpace(cfg.Owner)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("MC_PORT out of range: %d", c.Port)
	}
	if c.Username == "" {
		return errors.New("MC_USER is empty")
	}
	if c.ReconnectDelay <= 0 {
		return fmt.Errorf("MC_RECONNECT_DELAY must be positive, got %s", c.ReconnectDelay)
	}
	u, err := url.Parse(c.BridgeURL)
	if err != nil {
		return fmt.Errorf("MC_BRIDGE_URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("MC_BRIDGE_URL must be ws:// or wss://, got %q", c.BridgeURL)
	}
	return nil
}

// AFKEvery возвращает период anti-AFK; 0 значит выключено.
func (c Config) AFKEvery() time.Duration {
	if c.AFKInterval <= 0 {
		return 0
	}
	return time.Duration(c.AFKInterval) * time.Second
}
