package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"pricewatch/internal/logger"
	"pricewatch/internal/report"
)

// Config holds all configuration for pricewatch.
type Config struct {
	// Market page
	SiteURL        string        `mapstructure:"site_url"`
	ProxyEnabled   bool          `mapstructure:"proxy_enabled"`
	ProxyURL       string        `mapstructure:"proxy_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Telegram delivery
	TelegramBotToken  string `mapstructure:"telegram_bot_token"`
	TelegramChannelID string `mapstructure:"telegram_channel_id"`
	TelegramBaseURL   string `mapstructure:"telegram_base_url"`
	TelegramParseMode string `mapstructure:"telegram_parse_mode"`

	// Scheduling and output
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	ReportVariant string        `mapstructure:"report_variant"`
	LogLevel      string        `mapstructure:"log_level"`
}

// Load reads configuration from environment variables and an optional config file.
// Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - TELEGRAM_BOT_ID, TELEGRAM_CHANNEL_ID (required to send, see RequireTelegram)
//   - SITE_URL (optional, defaults to https://tgju.org/)
//   - PROXY_ENABLED, PROXY_URL (optional, proxy disabled by default)
//   - TELEGRAM_BASE_URL, TELEGRAM_PARSE_MODE (optional)
//   - POLL_INTERVAL, REQUEST_TIMEOUT (optional, Go durations)
//   - REPORT_VARIANT (optional, trend or tables)
//   - LOG_LEVEL (optional)
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches
// for config.yaml in the working directory and $HOME/.pricewatch.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.SetDefault("site_url", "https://tgju.org/")
	v.SetDefault("proxy_enabled", false)
	v.SetDefault("proxy_url", "socks5://127.0.0.1:2080")
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("telegram_base_url", "https://api.telegram.org")
	v.SetDefault("telegram_parse_mode", "Markdown")
	v.SetDefault("poll_interval", "5m")
	v.SetDefault("report_variant", report.VariantTrend.String())
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pricewatch")

		// Read config file (ignore if not found)
		_ = v.ReadInConfig()
	}

	v.BindEnv("site_url", "SITE_URL")
	v.BindEnv("proxy_enabled", "PROXY_ENABLED")
	v.BindEnv("proxy_url", "PROXY_URL")
	v.BindEnv("request_timeout", "REQUEST_TIMEOUT")
	v.BindEnv("telegram_bot_token", "TELEGRAM_BOT_ID")
	v.BindEnv("telegram_channel_id", "TELEGRAM_CHANNEL_ID")
	v.BindEnv("telegram_base_url", "TELEGRAM_BASE_URL")
	v.BindEnv("telegram_parse_mode", "TELEGRAM_PARSE_MODE")
	v.BindEnv("poll_interval", "POLL_INTERVAL")
	v.BindEnv("report_variant", "REPORT_VARIANT")
	v.BindEnv("log_level", "LOG_LEVEL")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	var problems []string

	if u, err := url.Parse(c.SiteURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid site_url %q", c.SiteURL))
	}
	if c.ProxyEnabled {
		if u, err := url.Parse(c.ProxyURL); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("invalid proxy_url %q", c.ProxyURL))
		}
	}
	if c.PollInterval <= 0 {
		problems = append(problems, "poll_interval must be positive")
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "request_timeout must be positive")
	}
	if _, err := report.ParseVariant(c.ReportVariant); err != nil {
		problems = append(problems, err.Error())
	}
	if !logger.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("invalid log_level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// RequireTelegram reports missing Telegram credentials.
func (c *Config) RequireTelegram() error {
	var missing []string
	if c.TelegramBotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_ID")
	}
	if c.TelegramChannelID == "" {
		missing = append(missing, "TELEGRAM_CHANNEL_ID")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Variant returns the parsed report variant.
func (c *Config) Variant() report.Variant {
	v, _ := report.ParseVariant(c.ReportVariant)
	return v
}

// Proxy returns the proxy URL to use, or "" when the proxy is disabled.
func (c *Config) Proxy() string {
	if !c.ProxyEnabled {
		return ""
	}
	return c.ProxyURL
}
