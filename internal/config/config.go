// Package config loads bot configuration from defaults, an optional config
// file and XRPLBOT_-prefixed environment variables, in that priority order.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP webhook surface settings.
type ServerConfig struct {
	Addr          string `mapstructure:"addr"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// GitHubConfig holds the comment-posting credentials.
type GitHubConfig struct {
	Token    string `mapstructure:"token"`
	BotLogin string `mapstructure:"bot_login"`
}

// XRPLConfig holds the transaction fetcher settings.
type XRPLConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheSize int           `mapstructure:"cache_size"`
}

// StorageConfig holds the on-disk store locations. Empty paths disable the
// corresponding store.
type StorageConfig struct {
	EventsPath string `mapstructure:"events_path"`
	AuditPath  string `mapstructure:"audit_path"`
}

// Config is the full bot configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	GitHub  GitHubConfig  `mapstructure:"github"`
	XRPL    XRPLConfig    `mapstructure:"xrpl"`
	Storage StorageConfig `mapstructure:"storage"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.webhook_secret", "")
	v.SetDefault("github.token", "")
	v.SetDefault("github.bot_login", "xrpl-bot[bot]")
	v.SetDefault("xrpl.endpoint", "wss://xrpl.ws")
	v.SetDefault("xrpl.timeout", 15*time.Second)
	v.SetDefault("xrpl.cache_size", 512)
	v.SetDefault("storage.events_path", "")
	v.SetDefault("storage.audit_path", "")
}

// Load reads configuration in priority order: defaults, then the config
// file (required when a path is given, optional otherwise), then
// environment variables such as XRPLBOT_GITHUB_TOKEN.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("xrplbot")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("XRPLBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings every command needs. Credentials are checked
// by the commands that use them, not here, so read-only commands work
// without a token.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.XRPL.Endpoint == "" {
		return errors.New("xrpl.endpoint must not be empty")
	}
	if c.XRPL.Timeout <= 0 {
		return errors.New("xrpl.timeout must be positive")
	}
	if c.XRPL.CacheSize <= 0 {
		return errors.New("xrpl.cache_size must be positive")
	}
	if c.GitHub.BotLogin == "" {
		return errors.New("github.bot_login must not be empty")
	}
	return nil
}
