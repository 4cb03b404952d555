package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Enquiry EnquiryConfig `mapstructure:"enquiry"`
}

// ServerConfig points at the batch server REST API.
type ServerConfig struct {
	URL      string        `mapstructure:"url"`
	Token    string        `mapstructure:"token"`
	Timeout  time.Duration `mapstructure:"timeout"`
	RetryMax int           `mapstructure:"retry_max"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Pretty bool   `mapstructure:"pretty"`
}

// EnquiryConfig holds the defaults the criteria form is reset to.
type EnquiryConfig struct {
	Limit           int `mapstructure:"limit"`
	WindowBackDays  int `mapstructure:"window_back_days"`
	WindowAheadDays int `mapstructure:"window_ahead_days"`
}

const envPrefix = "BATCH_TUI"

// Load reads configuration from path (or the default location when path is
// empty) and the environment. Env var overrides use prefix BATCH_TUI_, e.g.
// BATCH_TUI_SERVER_TOKEN. A missing config file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(filepath.Join(userConfigDir(), "batch-tui"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.url", "")
	v.SetDefault("server.token", "")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.retry_max", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "batch-tui", "batch-tui.log"))
	v.SetDefault("log.pretty", false)
	v.SetDefault("enquiry.limit", 1000)
	v.SetDefault("enquiry.window_back_days", 90)
	v.SetDefault("enquiry.window_ahead_days", 3)
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

// ServerHost returns the host[:port] part of the server URL.
func (c Config) ServerHost() string {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return c.Server.URL
	}
	return u.Host
}

func (c Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server url is required (use --server or server.url)")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("server url %q must be an absolute http(s) URL", c.Server.URL)
	}
	if c.Server.Token == "" {
		return fmt.Errorf("server token is required (use --token or BATCH_TUI_SERVER_TOKEN)")
	}
	if c.Enquiry.Limit <= 0 {
		return fmt.Errorf("enquiry.limit must be positive, got %d", c.Enquiry.Limit)
	}
	if c.Enquiry.WindowBackDays < 0 || c.Enquiry.WindowAheadDays < 0 {
		return fmt.Errorf("enquiry window days must not be negative")
	}
	return nil
}
