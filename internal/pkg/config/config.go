package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Store   StoreConfig   `yaml:"store"`
	Alert   AlertConfig   `yaml:"alert"`
	Report  ReportConfig  `yaml:"report"`
	History HistoryConfig `yaml:"history"`
	Lock    LockConfig    `yaml:"lock"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type FetchConfig struct {
	Source     string        `yaml:"source"` // bet9ja, bet9ja-chrome or static
	BaseURL    string        `yaml:"base_url"`
	OddsPath   string        `yaml:"odds_path"`
	UserAgent  string        `yaml:"user_agent"`
	Timeout    time.Duration `yaml:"timeout"`
	StaticFile string        `yaml:"static_file"` // snapshot file for source=static
}

type StoreConfig struct {
	Dir string `yaml:"dir"`
}

type AlertConfig struct {
	ThresholdPercent float64        `yaml:"threshold_percent"` // strict >, in percent
	Email            EmailConfig    `yaml:"email"`
	Telegram         TelegramConfig `yaml:"telegram"`
}

type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type ReportConfig struct {
	Dir string `yaml:"dir"`
}

type HistoryConfig struct {
	PostgresDSN string `yaml:"postgres_dsn"` // optional history mirror
}

type LockConfig struct {
	Path string `yaml:"path"`
}

// Load reads and parses the config file. ${VAR} references are expanded from
// the environment before parsing, so credentials never have to live in the
// file itself. Unset variables expand to empty values, which leaves the
// corresponding channel unconfigured.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadAndValidate loads the config, fills in defaults and validates it.
func LoadAndValidate(configPath string) (*Config, error) {
	config, err := Load(configPath)
	if err != nil {
		return nil, err
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// ApplyDefaults fills in defaults for everything that can be defaulted.
// Channel credentials stay empty: an unconfigured channel is a valid state.
func (c *Config) ApplyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Fetch.Source == "" {
		c.Fetch.Source = "bet9ja"
	}
	if c.Fetch.BaseURL == "" {
		c.Fetch.BaseURL = "https://web.bet9ja.com"
	}
	if c.Fetch.OddsPath == "" {
		c.Fetch.OddsPath = "/Sport/OddsPrint.ashx"
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = defaultUserAgent
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Store.Dir == "" {
		c.Store.Dir = "data"
	}
	if c.Alert.ThresholdPercent == 0 {
		c.Alert.ThresholdPercent = 10.0
	}
	if c.Alert.Email.Port == 0 {
		c.Alert.Email.Port = 465
	}
	if c.Alert.Email.From == "" {
		c.Alert.Email.From = c.Alert.Email.Username
	}
	if c.Report.Dir == "" {
		c.Report.Dir = filepath.Join(c.Store.Dir, "reports")
	}
	if c.Lock.Path == "" {
		c.Lock.Path = filepath.Join(c.Store.Dir, "oddswatch.lock")
	}
}

func (c *Config) Validate() error {
	if c.Alert.ThresholdPercent <= 0 {
		return fmt.Errorf("alert.threshold_percent must be positive, got %v", c.Alert.ThresholdPercent)
	}
	if c.Fetch.Source == "static" && c.Fetch.StaticFile == "" {
		return fmt.Errorf("fetch.static_file is required when fetch.source is static")
	}
	if c.Alert.Email.Port < 0 || c.Alert.Email.Port > 65535 {
		return fmt.Errorf("alert.email.port out of range: %d", c.Alert.Email.Port)
	}
	return nil
}
