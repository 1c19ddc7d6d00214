package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Log      LogConfig      `mapstructure:"log"`
	Store    StoreConfig    `mapstructure:"store"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Prompts  PromptsConfig  `mapstructure:"prompts"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// Upper bound for request bodies; screenshots are large
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

type LLMConfig struct {
	// gemini, openai, or auto (first provider with a key)
	Provider    string        `mapstructure:"provider"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int64         `mapstructure:"max_tokens"`
	// Per analysis mode model overrides, e.g. session_intelligence: gpt-4o
	Models map[string]string `mapstructure:"models"`
	Gemini GeminiConfig      `mapstructure:"gemini"`
	OpenAI OpenAIConfig      `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	// openai or azure
	Provider       string `mapstructure:"provider"`
	APIKey         string `mapstructure:"api_key"`
	APIEndpoint    string `mapstructure:"endpoint"`
	Model          string `mapstructure:"model"`
	DeploymentName string `mapstructure:"deployment"`
	APIVersion     string `mapstructure:"api_version"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	FilePath   string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type StoreConfig struct {
	// memory or redis
	Backend  string        `mapstructure:"backend"`
	Size     int           `mapstructure:"size"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
	Prefix   string        `mapstructure:"prefix"`
}

type AnalysisConfig struct {
	BatchWorkers int `mapstructure:"batch_workers"`
	MaxBatchSize int `mapstructure:"max_batch_size"`
}

type PromptsConfig struct {
	SummaryMaxChars int `mapstructure:"summary_max_chars"`
}

var defaults = map[string]any{
	"server.port":             "8000",
	"server.host":             "0.0.0.0",
	"server.read_timeout":     "30s",
	"server.write_timeout":    "120s",
	"server.shutdown_timeout": "30s",
	"server.max_body_bytes":   int64(32 << 20),

	"llm.provider":           "auto",
	"llm.timeout":            "90s",
	"llm.temperature":        0.2,
	"llm.max_tokens":         int64(2048),
	"llm.models":             map[string]string{},
	"llm.gemini.api_key":     "",
	"llm.gemini.model":       "gemini-2.0-flash",
	"llm.openai.provider":    "openai",
	"llm.openai.api_key":     "",
	"llm.openai.endpoint":    "https://api.openai.com/v1",
	"llm.openai.model":       "gpt-4o-mini",
	"llm.openai.deployment":  "gpt-4o",
	"llm.openai.api_version": "2024-06-01",

	"log.level":        "info",
	"log.file":         "",
	"log.max_size_mb":  100,
	"log.max_backups":  3,
	"log.max_age_days": 28,
	"log.compress":     true,

	"store.backend":   "memory",
	"store.size":      1024,
	"store.ttl":       "168h",
	"store.redis_url": "redis://localhost:6379/0",
	"store.prefix":    "prodsight:summary:",

	"analysis.batch_workers":  4,
	"analysis.max_batch_size": 20,

	"prompts.summary_max_chars": 500,
}

// Environment names kept for compatibility with common deployments, in
// addition to the SECTION_KEY form.
var aliases = map[string][]string{
	"llm.gemini.api_key":     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"llm.gemini.model":       {"GEMINI_MODEL"},
	"llm.openai.provider":    {"OPENAI_PROVIDER"},
	"llm.openai.api_key":     {"OPENAI_API_KEY"},
	"llm.openai.endpoint":    {"OPENAI_ENDPOINT"},
	"llm.openai.model":       {"OPENAI_MODEL"},
	"llm.openai.deployment":  {"OPENAI_DEPLOYMENT"},
	"llm.openai.api_version": {"OPENAI_API_VERSION"},
	"store.redis_url":        {"REDIS_URL"},
}

// LoadConfig reads defaults, then the optional file at path, then the
// environment. Later sources win.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range aliases {
		names := append([]string{key, strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, envs...)
		if err := v.BindEnv(names...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Info("configuration loaded successfully", "file", v.ConfigFileUsed())
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case "auto", "gemini", "openai":
	default:
		return fmt.Errorf("llm.provider must be auto, gemini or openai, got %q", c.LLM.Provider)
	}
	switch c.LLM.OpenAI.Provider {
	case "openai", "azure":
	default:
		return fmt.Errorf("llm.openai.provider must be openai or azure, got %q", c.LLM.OpenAI.Provider)
	}
	switch c.Store.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("store.backend must be memory or redis, got %q", c.Store.Backend)
	}
	if c.Analysis.BatchWorkers < 1 {
		return fmt.Errorf("analysis.batch_workers must be positive, got %d", c.Analysis.BatchWorkers)
	}
	return nil
}
