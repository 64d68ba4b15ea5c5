package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Telegram struct {
	TelegramAPIToken string `yaml:"token" env:"TELEGRAM_BOT_TOKEN" env-required:"true"`
	PollTimeout      int    `yaml:"poll_timeout" env:"TELEGRAM_POLL_TIMEOUT" env-default:"60"`
	Debug            bool   `yaml:"debug" env:"TELEGRAM_DEBUG" env-default:"false"`
}

type Mistral struct {
	APIKey         string        `yaml:"api_key" env:"MISTRAL_API_KEY" env-required:"true"`
	BaseURL        string        `yaml:"base_url" env:"MISTRAL_BASE_URL" env-default:"https://api.mistral.ai"`
	TextModel      string        `yaml:"text_model" env:"MISTRAL_TEXT_MODEL" env-default:"mistral-large-latest"`
	ImageModel     string        `yaml:"image_model" env:"MISTRAL_IMAGE_MODEL" env-default:"mistral-medium-2505"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"MISTRAL_REQUEST_TIMEOUT" env-default:"90s"`
}

const (
	FlowStyles = "styles"
	FlowSimple = "simple"
)

type Bot struct {
	// Flow is either FlowStyles (style menu, then topic) or FlowSimple
	// (a single "generate post" button, default temperature).
	Flow         string `yaml:"flow" env:"BOT_FLOW" env-default:"styles"`
	Language     string `yaml:"language" env:"BOT_LANGUAGE" env-default:"ru"`
	CaptionLimit int    `yaml:"caption_limit" env:"BOT_CAPTION_LIMIT" env-default:"1024"`
}

func (b Bot) StyleSelection() bool {
	return b.Flow != FlowSimple
}

type Journal struct {
	Size int `yaml:"size" env:"JOURNAL_SIZE" env-default:"50"`
}

type Redis struct {
	Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Endpoint string `yaml:"endpoint" env:"REDIS_ENDPOINT" env-default:"localhost:6379"`
}

type Config struct {
	Env      string   `yaml:"env" env:"ENV" env-default:"local"`
	Telegram Telegram `yaml:"telegram"`
	Mistral  Mistral  `yaml:"mistral"`
	Bot      Bot      `yaml:"bot"`
	Journal  Journal  `yaml:"journal"`
	Redis    Redis    `yaml:"redis"`
}

// LoadConfig reads .env (if any), then the yaml file at cfgPath (if it
// exists), then the environment. A missing credential is an error.
func LoadConfig(cfgPath string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err == nil {
			if err = cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", cfgPath, err)
			}
			return validate(&cfg)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config %s: %w", cfgPath, err)
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	return validate(&cfg)
}

func validate(cfg *Config) (*Config, error) {
	if cfg.Telegram.TelegramAPIToken == "" {
		return nil, errors.New("telegram bot token is empty")
	}
	if cfg.Mistral.APIKey == "" {
		return nil, errors.New("mistral api key is empty")
	}
	if cfg.Bot.Flow != FlowStyles && cfg.Bot.Flow != FlowSimple {
		return nil, fmt.Errorf("unknown bot flow %q", cfg.Bot.Flow)
	}
	if cfg.Bot.CaptionLimit <= 0 {
		return nil, fmt.Errorf("caption limit must be positive, got %d", cfg.Bot.CaptionLimit)
	}
	return cfg, nil
}
