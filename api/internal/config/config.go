package config

import (
	"io/fs"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"whocall-bot/api/internal/phone"
)

type Config struct {
	// Environment selects the logger flavour: development or production.
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	Telegram struct {
		// Token authenticates the bot. Required.
		Token string `env:"TELEGRAM_TOKEN" env-required:"true" yaml:"token"`
		// Debug turns on request logging inside the Telegram client.
		Debug bool `env:"BOT_DEBUG" env-default:"false" yaml:"debug"`
		// Language of replies: zh or en.
		Language string `env:"BOT_LANGUAGE" env-default:"zh" yaml:"language"`
		// Workers is the number of update handlers running in parallel.
		Workers int `env:"BOT_WORKERS" env-default:"4" yaml:"workers"`
		// WebhookURL switches the bot to webhook mode when set, e.g. https://<app>.koyeb.app
		WebhookURL string `env:"WEBHOOK_URL" yaml:"webhookURL"`
		// PollTimeout is the long polling timeout.
		PollTimeout time.Duration `env:"BOT_POLL_TIMEOUT" env-default:"30s" yaml:"pollTimeout"`
	} `yaml:"telegram"`

	HTTP struct {
		Addr              string        `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		MetricsPath       string        `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
	} `yaml:"http"`

	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. When path is not empty the YAML
// file is read first and environment variables override it.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv copies variables from ./.env into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "load .env")
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return errors.New("TELEGRAM_TOKEN is not set")
	}
	if _, ok := phone.LocaleFor(c.Telegram.Language); !ok {
		return errors.Errorf("unsupported BOT_LANGUAGE %q: want zh or en", c.Telegram.Language)
	}
	if c.Telegram.Workers < 1 {
		return errors.Errorf("BOT_WORKERS must be positive, got %d", c.Telegram.Workers)
	}
	if c.Telegram.PollTimeout < time.Second {
		return errors.Errorf("BOT_POLL_TIMEOUT must be at least 1s, got %s", c.Telegram.PollTimeout)
	}
	return nil
}

// Locale returns the reply locale for the configured language.
func (c *Config) Locale() phone.Locale {
	l, _ := phone.LocaleFor(c.Telegram.Language)
	return l
}
