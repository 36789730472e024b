package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Transport modes.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	AI        AIConfig        `yaml:"ai"`
	Geocode   GeocodeConfig   `yaml:"geocode"`
}

type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"auth_token"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig bounds the key-value medium. QuotaBytes <= 0 disables the cap.
type StorageConfig struct {
	QuotaBytes int64 `yaml:"quota_bytes"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type AIConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"base_url"`
	MaxRetries int    `yaml:"max_retries"`
}

type GeocodeConfig struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
}

// DefaultQuotaBytes matches the usual browser local storage allowance.
const DefaultQuotaBytes = 5 * 1024 * 1024

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportStdio,
		},
		DB: DBConfig{
			Path: "soundxcape.db",
		},
		Storage: StorageConfig{
			QuotaBytes: DefaultQuotaBytes,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv("SOUNDXCAPE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := getenv("SOUNDXCAPE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := getenv("SOUNDXCAPE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SOUNDXCAPE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if token := getenv("SOUNDXCAPE_AUTH_TOKEN"); token != "" {
		cfg.Server.AuthToken = token
	}
	if mode := getenv("SOUNDXCAPE_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if dbPath := getenv("SOUNDXCAPE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if quotaStr := getenv("SOUNDXCAPE_STORAGE_QUOTA"); quotaStr != "" {
		quota, err := strconv.ParseInt(quotaStr, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SOUNDXCAPE_STORAGE_QUOTA: %w", err)
		}
		cfg.Storage.QuotaBytes = quota
	}
	if level := getenv("SOUNDXCAPE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	// The first key found wins; GEMINI_API_KEY and API_KEY are the names
	// other Gemini tooling reads.
	for _, name := range []string{"SOUNDXCAPE_AI_API_KEY", "GEMINI_API_KEY", "API_KEY"} {
		if key := getenv(name); key != "" {
			cfg.AI.APIKey = key
			break
		}
	}
	if model := getenv("SOUNDXCAPE_AI_MODEL"); model != "" {
		cfg.AI.Model = model
	}
	if baseURL := getenv("SOUNDXCAPE_AI_BASE_URL"); baseURL != "" {
		cfg.AI.BaseURL = baseURL
	}
	if retriesStr := getenv("SOUNDXCAPE_AI_MAX_RETRIES"); retriesStr != "" {
		retries, err := strconv.Atoi(retriesStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SOUNDXCAPE_AI_MAX_RETRIES: %w", err)
		}
		cfg.AI.MaxRetries = retries
	}
	if baseURL := getenv("SOUNDXCAPE_GEOCODE_BASE_URL"); baseURL != "" {
		cfg.Geocode.BaseURL = baseURL
	}
	if agent := getenv("SOUNDXCAPE_GEOCODE_USER_AGENT"); agent != "" {
		cfg.Geocode.UserAgent = agent
	}

	cfg.Transport.Mode = strings.ToLower(strings.TrimSpace(cfg.Transport.Mode))
	if cfg.Transport.Mode != TransportStdio && cfg.Transport.Mode != TransportHTTP {
		return Config{}, fmt.Errorf("invalid transport mode %q: want %s or %s", cfg.Transport.Mode, TransportStdio, TransportHTTP)
	}
	if cfg.AI.MaxRetries < 0 {
		return Config{}, fmt.Errorf("invalid ai max_retries %d: must not be negative", cfg.AI.MaxRetries)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
