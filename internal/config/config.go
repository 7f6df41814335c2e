package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultUpstreamURL = "https://tonemagik-backend.fly.dev"

type Config struct {
	HTTPPort        string         `yaml:"http_port"`
	BackendPort     string         `yaml:"backend_port"`
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout"`
	Upstream        UpstreamConfig `yaml:"upstream"`
	Client          ClientConfig   `yaml:"client"`
	Database        DatabaseConfig `yaml:"database"`
	LLM             LLMConfig      `yaml:"llm"`
}

// UpstreamConfig selects the backend the proxy endpoints forward to.
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ClientConfig is read by the remagik CLI.
type ClientConfig struct {
	APIURL         string `yaml:"api_url"`
	Home           string `yaml:"home"`
	FreeUsageLimit int    `yaml:"free_usage_limit"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Path   string `yaml:"path"`
}

type LLMConfig struct {
	Provider      string `yaml:"provider"`
	Model         string `yaml:"model"`
	OpenAIKey     string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
	GeminiKey     string `yaml:"gemini_api_key"`
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and the environment, in that order of precedence (env wins).
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)
	cfg.BackendPort = getEnv("BACKEND_HTTP_PORT", cfg.BackendPort)
	cfg.ShutdownTimeout = getDuration("HTTP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	cfg.Upstream.BaseURL = getEnv("API_URL", cfg.Upstream.BaseURL)
	cfg.Upstream.Timeout = getDuration("REWRITE_TIMEOUT", cfg.Upstream.Timeout)

	cfg.Client.APIURL = getEnv("REMAGIK_API_URL", cfg.Client.APIURL)
	cfg.Client.Home = getEnv("REMAGIK_HOME", cfg.Client.Home)
	cfg.Client.FreeUsageLimit = getInt("FREE_USAGE_LIMIT", cfg.Client.FreeUsageLimit)

	cfg.Database.Driver = getEnv("DATABASE_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = getEnv("DATABASE_DSN", cfg.Database.DSN)
	cfg.Database.Path = getEnv("DATABASE_PATH", cfg.Database.Path)

	cfg.LLM.Provider = getEnv("LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.OpenAIKey = getEnv("OPENAI_API_KEY", cfg.LLM.OpenAIKey)
	cfg.LLM.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.LLM.OpenAIBaseURL)
	cfg.LLM.GeminiKey = getEnv("GEMINI_API_KEY", cfg.LLM.GeminiKey)

	return cfg, nil
}

func defaults() Config {
	return Config{
		HTTPPort:        "8080",
		BackendPort:     "8081",
		ShutdownTimeout: 10 * time.Second,
		Upstream: UpstreamConfig{
			BaseURL: DefaultUpstreamURL,
			Timeout: 30 * time.Second,
		},
		Client: ClientConfig{
			APIURL:         "http://localhost:8080",
			Home:           defaultHome(),
			FreeUsageLimit: 3,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join("data", "remagik.db"),
		},
		LLM: LLMConfig{
			Provider: "echo",
		},
	}
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".remagik"
	}
	return filepath.Join(home, ".remagik")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}
