package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Watchlist struct {
		Path string `yaml:"path"`
	} `yaml:"watchlist"`
	DataSource struct {
		Provider       string `yaml:"provider"` // yahoo | api | mock
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		SymbolSuffix   string `yaml:"symbol_suffix"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		HistoryDays    int    `yaml:"history_days"`
		QuoteWindow    int    `yaml:"quote_window_days"`
	} `yaml:"data_source"`
	Scan struct {
		Concurrency int `yaml:"concurrency"`
		MaxRetries  int `yaml:"max_retries"`
	} `yaml:"scan"`
	Schedule struct {
		ScanCron     string `yaml:"scan_cron"`
		SkipWeekends bool   `yaml:"skip_weekends"`
		Timezone     string `yaml:"timezone"`
		RunOnStart   bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Email struct {
		Host     string   `yaml:"host"`
		Port     int      `yaml:"port"`
		From     string   `yaml:"from"`
		Password string   `yaml:"password"`
		To       []string `yaml:"to"`
	} `yaml:"email"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy   string `yaml:"proxy"`
	RunOnce bool   `yaml:"run_once"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine; env and defaults still
// apply. An optional .env file is loaded first for local runs.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("WATCHLIST_PATH"); v != "" {
		cfg.Watchlist.Path = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("EMAIL_TO"); v != "" {
		var to []string
		for _, addr := range strings.Split(v, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				to = append(to, addr)
			}
		}
		cfg.Email.To = to
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("RUN_ONCE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RunOnce = b
		}
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Schedule.RunOnStart = b
		}
	}

	// Defaults
	if cfg.Watchlist.Path == "" {
		cfg.Watchlist.Path = "configs/stocks.csv"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.SymbolSuffix == "" {
		cfg.DataSource.SymbolSuffix = ".NS"
	}
	if cfg.DataSource.TimeoutSeconds == 0 {
		cfg.DataSource.TimeoutSeconds = 30
	}
	if cfg.DataSource.HistoryDays == 0 {
		cfg.DataSource.HistoryDays = 365
	}
	if cfg.DataSource.QuoteWindow == 0 {
		cfg.DataSource.QuoteWindow = 365
	}
	if cfg.Scan.Concurrency == 0 {
		cfg.Scan.Concurrency = 1
	}
	if cfg.Schedule.ScanCron == "" {
		// Weekdays at 16:30, after the NSE close.
		cfg.Schedule.ScanCron = "0 30 16 * * 1-5"
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "Asia/Kolkata"
	}
	if cfg.Email.Port == 0 {
		cfg.Email.Port = 587
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent. It runs before
// any scanning; failures are fatal.
func (c *Config) Validate() error {
	if c.Watchlist.Path == "" {
		return fmt.Errorf("watchlist.path is required")
	}

	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "api":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the api provider")
		}
	default:
		return fmt.Errorf("data_source.provider must be yahoo, api, or mock (got %q)", c.DataSource.Provider)
	}

	emailTouched := c.Email.Host != "" || c.Email.From != "" || len(c.Email.To) > 0 || c.Email.Password != ""
	if emailTouched {
		if c.Email.Host == "" {
			return fmt.Errorf("email.host is required when email is configured")
		}
		if c.Email.From == "" {
			return fmt.Errorf("email.from is required when email is configured")
		}
		if len(c.Email.To) == 0 {
			return fmt.Errorf("email.to is required when email is configured")
		}
	}

	telegramTouched := c.Telegram.BotToken != "" || c.Telegram.ChatID != ""
	if telegramTouched {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is configured")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is configured")
		}
	}

	if !c.EmailEnabled() && !c.TelegramEnabled() {
		return fmt.Errorf("at least one delivery channel (email or telegram) must be configured")
	}

	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone: %w", err)
	}
	return nil
}

// EmailEnabled reports whether the email channel is fully configured.
func (c *Config) EmailEnabled() bool {
	return c.Email.Host != "" && c.Email.From != "" && len(c.Email.To) > 0
}

// TelegramEnabled reports whether the telegram channel is fully configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
