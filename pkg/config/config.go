package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ChatTarget is one Telegram delivery destination. ThreadID is optional and
// addresses a forum topic inside the chat.
type ChatTarget struct {
	ChatID   string `yaml:"chat_id" json:"chat_id"`
	ThreadID int    `yaml:"message_thread_id,omitempty" json:"message_thread_id,omitempty"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Telegram struct {
		BotToken string       `yaml:"bot_token"`
		APIBase  string       `yaml:"api_base"`
		Targets  []ChatTarget `yaml:"targets"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"telegram"`
	Binance struct {
		WebSocketURL   string        `yaml:"websocket_url"`
		Channel        string        `yaml:"channel"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
	} `yaml:"binance"`
	Bybit struct {
		APIURL       string        `yaml:"api_url"`
		PollInterval time.Duration `yaml:"poll_interval"`
		PageLimit    int           `yaml:"page_limit"`
	} `yaml:"bybit"`
	Fetcher struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"fetcher"`
	Novelty struct {
		HistorySize int `yaml:"history_size"`
	} `yaml:"novelty"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		StateKey string `yaml:"state_key"`
	} `yaml:"redis"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// BOT_TOKEN and CHAT_IDS match the deployment secrets; CHAT_IDS is a JSON
// array of strings or {chat_id, message_thread_id} objects.
func LoadWithEnv(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if v := os.Getenv("BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("CHAT_IDS"); v != "" {
		targets, err := ParseChatTargets(v)
		if err != nil {
			return nil, fmt.Errorf("parse CHAT_IDS: %w", err)
		}
		c.Telegram.Targets = targets
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
		c.ClickHouse.Enabled = true
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// ParseChatTargets decodes the CHAT_IDS JSON array. String entries are bare
// chat ids; object entries carry a thread id.
func ParseChatTargets(raw string) ([]ChatTarget, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("not a JSON array: %w", err)
	}

	targets := make([]ChatTarget, 0, len(items))
	for i, item := range items {
		var id string
		if err := json.Unmarshal(item, &id); err == nil {
			if id == "" {
				return nil, fmt.Errorf("target %d: chat id is empty", i)
			}
			targets = append(targets, ChatTarget{ChatID: id})
			continue
		}
		var t ChatTarget
		if err := json.Unmarshal(item, &t); err != nil {
			return nil, fmt.Errorf("target %d: not a string or object: %w", i, err)
		}
		if t.ChatID == "" {
			return nil, fmt.Errorf("target %d: chat_id is required", i)
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Telegram.APIBase == "" {
		c.Telegram.APIBase = "https://api.telegram.org"
	}
	if c.Telegram.Timeout == 0 {
		c.Telegram.Timeout = 10 * time.Second
	}
	if c.Binance.WebSocketURL == "" {
		c.Binance.WebSocketURL = "wss://ws-api.binance.com/ws-api/v3"
	}
	if c.Binance.Channel == "" {
		c.Binance.Channel = "binance_announcements"
	}
	if c.Binance.ReconnectDelay == 0 {
		c.Binance.ReconnectDelay = 60 * time.Second
	}
	if c.Binance.PingInterval == 0 {
		c.Binance.PingInterval = 20 * time.Second
	}
	if c.Bybit.APIURL == "" {
		c.Bybit.APIURL = "https://api.bybit.com/v5/announcements/index"
	}
	if c.Bybit.PollInterval == 0 {
		c.Bybit.PollInterval = 5 * time.Minute
	}
	if c.Bybit.PageLimit == 0 {
		c.Bybit.PageLimit = 10
	}
	if c.Fetcher.Timeout == 0 {
		c.Fetcher.Timeout = 20 * time.Second
	}
	if c.Novelty.HistorySize == 0 {
		c.Novelty.HistorySize = 50
	}
	if c.Redis.StateKey == "" {
		c.Redis.StateKey = "delistradar:notified"
	}
}

// Validate checks if the configuration is valid. A service that can never
// deliver a notification is misconfigured, so the Telegram section is
// mandatory; archive and fan-out backends are optional.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if len(c.Telegram.Targets) == 0 {
		return fmt.Errorf("telegram.targets cannot be empty")
	}
	for i, t := range c.Telegram.Targets {
		if t.ChatID == "" {
			return fmt.Errorf("telegram.targets[%d].chat_id is required", i)
		}
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	return nil
}
