package config

import (
	"fmt"
	"os"
	"time"

	"Diversonal/pkg/util"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"90s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"20s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Logging struct {
		Level     string `yaml:"level" default:"info"`
		Format    string `yaml:"format" default:"console"`
		Output    string `yaml:"output" default:"stdout"`
		Collector struct {
			Enabled         bool          `yaml:"enabled"`
			Interval        time.Duration `yaml:"interval" default:"30s"`
			CountThreshold  int           `yaml:"count_threshold" default:"100"`
			IncludeWarnings bool          `yaml:"include_warnings"`
		} `yaml:"collector"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	FMP struct {
		BaseURL   string        `yaml:"base_url" default:"https://financialmodelingprep.com/stable"`
		APIKey    string        `yaml:"api_key"`
		Timeout   time.Duration `yaml:"timeout" default:"30s"`
		RateLimit float64       `yaml:"rate_limit"`
		Burst     int           `yaml:"burst" default:"10"`
	} `yaml:"fmp"`
	LLM struct {
		Provider    string        `yaml:"provider" default:"anthropic"`
		Model       string        `yaml:"model"`
		APIKey      string        `yaml:"api_key"`
		Timeout     time.Duration `yaml:"timeout" default:"45s"`
		MaxTokens   int           `yaml:"max_tokens" default:"512"`
		Temperature float64       `yaml:"temperature" default:"0.2"`
	} `yaml:"llm"`
	AssetData struct {
		CashYield        float64       `yaml:"cash_yield" default:"4.0"`
		NewsLimit        int           `yaml:"news_limit" default:"10"`
		StrictAssetClass bool          `yaml:"strict_asset_class"`
		CacheTTL         time.Duration `yaml:"cache_ttl"`
		RateLimit        float64       `yaml:"rate_limit"`
		RateBurst        int           `yaml:"rate_burst" default:"5"`
	} `yaml:"asset_data"`
	Cache struct {
		Backend  string `yaml:"backend" default:"memory"`
		MaxBytes int64  `yaml:"max_bytes" default:"67108864"`
		Redis    struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		ScoresTopic  string        `yaml:"scores_topic"`
		LogsTopic    string        `yaml:"logs_topic" default:"diversonal.logs"`
		Compression  string        `yaml:"compression" default:"gzip"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		BatchSize    int           `yaml:"batch_size" default:"100"`
		Linger       time.Duration `yaml:"linger" default:"1s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		Async        bool          `yaml:"async" default:"true"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled     bool          `yaml:"enabled"`
		Host        string        `yaml:"host" default:"localhost"`
		Port        int           `yaml:"port" default:"9000"`
		Database    string        `yaml:"database" default:"diversonal"`
		User        string        `yaml:"user" default:"default"`
		Password    string        `yaml:"password"`
		UseHTTP     bool          `yaml:"use_http"`
		AsyncInsert bool          `yaml:"async_insert" default:"true"`
		DialTimeout time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout time.Duration `yaml:"read_timeout" default:"10s"`
	} `yaml:"clickhouse"`
}

// Default returns a config with every default applied and nothing loaded from disk.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Load reads, parses and validates a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables, validating once at the end.
// A missing file is not an error: the defaults plus environment are used.
func LoadWithEnv(path string) (*Config, error) {
	var (
		c   *Config
		err error
	)
	if _, statErr := os.Stat(path); statErr == nil {
		c, err = parse(path)
	} else {
		c, err = Default()
	}
	if err != nil {
		return nil, err
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// parse applies the defaults and then the YAML file, without validating.
func parse(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("FMP_API_KEY"); v != "" {
		c.FMP.APIKey = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	switch c.LLM.Provider {
	case "anthropic":
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && c.LLM.APIKey == "" {
			c.LLM.APIKey = v
		}
	case "gemini":
		if v := os.Getenv("GEMINI_API_KEY"); v != "" && c.LLM.APIKey == "" {
			c.LLM.APIKey = v
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = util.SplitNonEmpty(v, ",")
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	switch c.LLM.Provider {
	case "anthropic", "gemini", "none":
	default:
		return fmt.Errorf("llm.provider must be 'anthropic', 'gemini' or 'none', got '%s'", c.LLM.Provider)
	}
	switch c.Cache.Backend {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
	}
	if c.Cache.MaxBytes <= 0 {
		return fmt.Errorf("cache.max_bytes must be positive")
	}
	if c.AssetData.NewsLimit <= 0 {
		return fmt.Errorf("asset_data.news_limit must be positive")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	if c.Kafka.ScoresTopic != "" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka.scores_topic is set")
	}
	return nil
}
