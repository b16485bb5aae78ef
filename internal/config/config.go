package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv       = "STOCK_SENTIMENT_CONFIG"
	logLevelEnv         = "LOG_LEVEL"
	searchEndpointEnv   = "SEARCH_ENDPOINT"
	searchSelectorEnv   = "SEARCH_SELECTOR"
	classifierEnv       = "CLASSIFIER_BACKEND"
	neutralThresholdEnv = "CLASSIFIER_NEUTRAL_THRESHOLD"
	inferenceURLEnv     = "ML_INFERENCE_URL"
	inferenceKeyEnv     = "ML_API_KEY"
	chatGPTAPIKeyEnv    = "CHATGPT_API_KEY"
	chatGPTModelEnv     = "CHATGPT_MODEL"
	serverAddrEnv       = "SERVER_ADDR"

	// MaxHeadlines caps how many headlines a single run classifies.
	MaxHeadlines = 10
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Search     SearchConfig     `yaml:"search"`
	Classifier ClassifierConfig `yaml:"classifier"`
	ML         MLConfig         `yaml:"ml"`
	ChatGPT    ChatGPTConfig    `yaml:"chatgpt"`
	Server     ServerConfig     `yaml:"server"`
}

// LoggingConfig selects the slog level and handler format ("text" or "json").
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SearchConfig describes the news search endpoint and how to read it.
type SearchConfig struct {
	Endpoint  string            `yaml:"endpoint"`
	Params    map[string]string `yaml:"params"`
	Selector  string            `yaml:"selector"`
	Limit     int               `yaml:"limit"`
	Timeout   time.Duration     `yaml:"timeout"`
	UserAgent string            `yaml:"userAgent"`
}

// ClassifierConfig picks the sentiment backend and its aggregation policy.
type ClassifierConfig struct {
	Backend          string        `yaml:"backend"`
	NeutralThreshold float64       `yaml:"neutralThreshold"`
	Concurrency      int           `yaml:"concurrency"`
	Timeout          time.Duration `yaml:"timeout"`
}

// MLConfig describes a hosted text-classification model.
type MLConfig struct {
	InferenceURL string `yaml:"inferenceUrl"`
	APIKey       string `yaml:"apiKey"`
}

// ChatGPTConfig defines how to contact the ChatGPT API.
type ChatGPTConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// ServerConfig configures the HTTP shell.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads .env and YAML configuration (if present) and applies environment overrides.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			log.Printf("config: %v (falling back to defaults)", err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	cfg.clamp()

	return cfg
}

func readFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, err
	}
	return fileCfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(searchEndpointEnv); v != "" {
		c.Search.Endpoint = v
	}
	if v := os.Getenv(searchSelectorEnv); v != "" {
		c.Search.Selector = v
	}

	if v := os.Getenv(classifierEnv); v != "" {
		c.Classifier.Backend = v
	}
	if v := os.Getenv(neutralThresholdEnv); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Classifier.NeutralThreshold = f
		} else {
			log.Printf("config: bad %s=%q: %v", neutralThresholdEnv, v, err)
		}
	}

	if v := os.Getenv(inferenceURLEnv); v != "" {
		c.ML.InferenceURL = v
	}
	if v := os.Getenv(inferenceKeyEnv); v != "" {
		c.ML.APIKey = v
	}

	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}
	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.ChatGPT.Model = v
	}

	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}
}

func (c *Config) clamp() {
	if c.Search.Limit <= 0 || c.Search.Limit > MaxHeadlines {
		c.Search.Limit = MaxHeadlines
	}
	if c.Classifier.Concurrency <= 0 {
		c.Classifier.Concurrency = 1
	}
	if c.Classifier.NeutralThreshold < 0 {
		c.Classifier.NeutralThreshold = 0
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Search.Endpoint != "" {
		base.Search.Endpoint = override.Search.Endpoint
	}
	if override.Search.Params != nil {
		base.Search.Params = override.Search.Params
	}
	if override.Search.Selector != "" {
		base.Search.Selector = override.Search.Selector
	}
	if override.Search.Limit != 0 {
		base.Search.Limit = override.Search.Limit
	}
	if override.Search.Timeout != 0 {
		base.Search.Timeout = override.Search.Timeout
	}
	if override.Search.UserAgent != "" {
		base.Search.UserAgent = override.Search.UserAgent
	}

	if override.Classifier.Backend != "" {
		base.Classifier.Backend = override.Classifier.Backend
	}
	if override.Classifier.NeutralThreshold != 0 {
		base.Classifier.NeutralThreshold = override.Classifier.NeutralThreshold
	}
	if override.Classifier.Concurrency != 0 {
		base.Classifier.Concurrency = override.Classifier.Concurrency
	}
	if override.Classifier.Timeout != 0 {
		base.Classifier.Timeout = override.Classifier.Timeout
	}

	if override.ML.InferenceURL != "" {
		base.ML.InferenceURL = override.ML.InferenceURL
	}
	if override.ML.APIKey != "" {
		base.ML.APIKey = override.ML.APIKey
	}

	if override.ChatGPT.Endpoint != "" {
		base.ChatGPT.Endpoint = override.ChatGPT.Endpoint
	}
	if override.ChatGPT.Model != "" {
		base.ChatGPT.Model = override.ChatGPT.Model
	}
	if override.ChatGPT.APIKey != "" {
		base.ChatGPT.APIKey = override.ChatGPT.APIKey
	}
	if override.ChatGPT.SystemPrompt != "" {
		base.ChatGPT.SystemPrompt = override.ChatGPT.SystemPrompt
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Search: SearchConfig{
			Endpoint:  "https://search.naver.com/search.naver",
			Params:    map[string]string{"ie": "utf8", "sm": "nws_hty"},
			Selector:  "a.news_tit",
			Limit:     MaxHeadlines,
			Timeout:   10 * time.Second,
			UserAgent: "StockSentiment/1.0",
		},
		Classifier: ClassifierConfig{
			Backend:          "lexicon",
			NeutralThreshold: 0,
			Concurrency:      4,
			Timeout:          30 * time.Second,
		},
		ML: MLConfig{
			InferenceURL: "https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english",
		},
		ChatGPT: ChatGPTConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			SystemPrompt: "You classify the sentiment of stock news headlines.",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}
