package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

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
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Market struct {
		Source          string        `yaml:"source"` // "websocket" or "synthetic"
		WebSocketURL    string        `yaml:"websocket_url"`
		APIKey          string        `yaml:"api_key"`
		Symbols         []string      `yaml:"symbols"`
		RefreshInterval time.Duration `yaml:"refresh_interval"`
		ReconnectDelay  time.Duration `yaml:"reconnect_delay"`
		PingInterval    time.Duration `yaml:"ping_interval"`
	} `yaml:"market"`
	Valuation struct {
		ThaiSymbol string `yaml:"thai_symbol"`
		USSymbol   string `yaml:"us_symbol"`
		FxSymbol   string `yaml:"fx_symbol"`
		GoldSymbol string `yaml:"gold_symbol"`
		BondSymbol string `yaml:"bond_symbol"`
	} `yaml:"valuation"`
	Simulation struct {
		DefaultPaths    int           `yaml:"default_paths"`
		SamplePaths     int           `yaml:"sample_paths"`
		Workers         int           `yaml:"workers"`
		MaxHorizonYears int           `yaml:"max_horizon_years"`
		CacheTTL        time.Duration `yaml:"cache_ttl"`
	} `yaml:"simulation"`
	History struct {
		Type         string        `yaml:"type"` // "kafka", "clickhouse" or "none"
		BatchSize    int           `yaml:"batch_size"`
		BatchTimeout time.Duration `yaml:"batch_timeout"`
	} `yaml:"history"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Cache struct {
		Enabled bool `yaml:"enabled"`
		Redis   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
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
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("MARKET_API_KEY"); v != "" {
		c.Market.APIKey = v
	}
	if v := os.Getenv("MARKET_SOURCE"); v != "" {
		c.Market.Source = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Market.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("HISTORY_BACKEND"); v != "" {
		c.History.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Market.Source == "" {
		c.Market.Source = "synthetic"
	}
	if c.Market.RefreshInterval <= 0 {
		c.Market.RefreshInterval = 30 * time.Second
	}
	if c.Market.ReconnectDelay <= 0 {
		c.Market.ReconnectDelay = 5 * time.Second
	}
	if c.Market.PingInterval <= 0 {
		c.Market.PingInterval = 30 * time.Second
	}
	if c.Valuation.ThaiSymbol == "" {
		c.Valuation.ThaiSymbol = "SET"
	}
	if c.Valuation.USSymbol == "" {
		c.Valuation.USSymbol = "QQQ"
	}
	if c.Valuation.FxSymbol == "" {
		c.Valuation.FxSymbol = "USDTHB"
	}
	if c.Valuation.GoldSymbol == "" {
		c.Valuation.GoldSymbol = "GLD"
	}
	if c.Valuation.BondSymbol == "" {
		c.Valuation.BondSymbol = "AGG"
	}
	if len(c.Market.Symbols) == 0 {
		c.Market.Symbols = []string{
			c.Valuation.ThaiSymbol,
			c.Valuation.USSymbol,
			c.Valuation.FxSymbol,
			c.Valuation.GoldSymbol,
			c.Valuation.BondSymbol,
		}
	}
	if c.Simulation.DefaultPaths <= 0 {
		c.Simulation.DefaultPaths = 1000
	}
	if c.Simulation.SamplePaths <= 0 {
		c.Simulation.SamplePaths = 50
	}
	if c.Simulation.Workers <= 0 {
		c.Simulation.Workers = 8
	}
	if c.Simulation.MaxHorizonYears <= 0 {
		c.Simulation.MaxHorizonYears = 50
	}
	if c.Simulation.CacheTTL <= 0 {
		c.Simulation.CacheTTL = 15 * time.Minute
	}
	if c.History.Type == "" {
		c.History.Type = "none"
	}
	if c.History.BatchSize <= 0 {
		c.History.BatchSize = 100
	}
	if c.History.BatchTimeout <= 0 {
		c.History.BatchTimeout = 5 * time.Second
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Market.Source != "websocket" && c.Market.Source != "synthetic" {
		return fmt.Errorf("market.source must be 'websocket' or 'synthetic', got '%s'", c.Market.Source)
	}
	if c.Market.Source == "websocket" {
		if c.Market.WebSocketURL == "" {
			return fmt.Errorf("market.websocket_url is required for websocket source")
		}
		if c.Market.APIKey == "" {
			return fmt.Errorf("market.api_key is required for websocket source")
		}
	}
	switch c.History.Type {
	case "kafka", "clickhouse", "none":
	default:
		return fmt.Errorf("history.type must be 'kafka', 'clickhouse' or 'none', got '%s'", c.History.Type)
	}
	if c.History.Type == "kafka" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty for kafka history")
	}
	if c.History.Type == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required for clickhouse history")
	}
	return nil
}
