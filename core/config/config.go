package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// LineConfig holds LINE Messaging API credentials.
type LineConfig struct {
	ChannelSecret string `yaml:"channel_secret" envconfig:"LINE_CHANNEL_SECRET"`
	ChannelToken  string `yaml:"channel_token" envconfig:"LINE_CHANNEL_ACCESS_TOKEN"`
}

// ServerConfig specifies the inbound webhook listener settings.
type ServerConfig struct {
	Listen string `yaml:"listen" envconfig:"SERVER_LISTEN"`
	Port   int    `yaml:"port" envconfig:"PORT"`
}

// BotConfig holds conversation settings for the quiz flow.
type BotConfig struct {
	// TriggerPhrase starts a new quiz session on exact match (after trimming).
	TriggerPhrase string `yaml:"trigger_phrase" envconfig:"BOT_TRIGGER_PHRASE"`
	// PromoURL, when set, adds a link-out button to the result message.
	PromoURL string `yaml:"promo_url" envconfig:"BOT_PROMO_URL"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

const (
	// DefaultTriggerPhrase starts the quiz when no override is configured.
	DefaultTriggerPhrase = "かんたん診断"
	// DefaultPort matches the platform-provided PORT fallback.
	DefaultPort = 8080
)

// Config aggregates the configuration for the bot process.
type Config struct {
	Line    LineConfig    `yaml:"line"`
	Server  ServerConfig  `yaml:"server"`
	Bot     BotConfig     `yaml:"bot"`
	Logging LoggingConfig `yaml:"logging"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(cfg.Line.ChannelSecret) == "" {
		return fmt.Errorf("line.channel_secret is required")
	}
	if strings.TrimSpace(cfg.Line.ChannelToken) == "" {
		return fmt.Errorf("line.channel_token is required")
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}

	cfg.Bot.TriggerPhrase = strings.TrimSpace(cfg.Bot.TriggerPhrase)
	if cfg.Bot.TriggerPhrase == "" {
		cfg.Bot.TriggerPhrase = DefaultTriggerPhrase
	}

	if promo := strings.TrimSpace(cfg.Bot.PromoURL); promo != "" {
		if !strings.HasPrefix(promo, "https://") && !strings.HasPrefix(promo, "http://") {
			return fmt.Errorf("bot.promo_url must be an http(s) URL, got %q", promo)
		}
		cfg.Bot.PromoURL = promo
	} else {
		cfg.Bot.PromoURL = ""
	}

	return nil
}
