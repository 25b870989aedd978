package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported generative-AI providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `mapstructure:"-"`

	Server   ServerConfig   `mapstructure:"server"`
	Provider ProviderConfig `mapstructure:"provider"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ProviderConfig configures the generative-AI provider. An empty APIKey is
// allowed; every generation call then fails in the provider.
type ProviderConfig struct {
	Name       string        `mapstructure:"name"`
	APIKey     string        `mapstructure:"api_key"`
	APIKeyFile string        `mapstructure:"api_key_file"`
	TextModel  string        `mapstructure:"text_model"`
	ImageModel string        `mapstructure:"image_model"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// LogConfig configures the structured logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TracingConfig configures OpenTelemetry export over OTLP/gRPC
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// envBindings maps config keys to the environment variables that may set them,
// in order of precedence
var envBindings = map[string][]string{
	"server.host":             {"SERVER_HOST"},
	"server.port":             {"SERVER_PORT"},
	"server.shutdown_timeout": {"SHUTDOWN_TIMEOUT"},
	"provider.name":           {"PROVIDER"},
	"provider.api_key":        {"API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY"},
	"provider.api_key_file":   {"API_KEY_FILE"},
	"provider.text_model":     {"TEXT_MODEL"},
	"provider.image_model":    {"IMAGE_MODEL"},
	"provider.base_url":       {"PROVIDER_BASE_URL"},
	"provider.timeout":        {"PROVIDER_TIMEOUT"},
	"log.level":               {"LOG_LEVEL"},
	"log.format":              {"LOG_FORMAT"},
	"tracing.enabled":         {"TRACING_ENABLED"},
	"tracing.service_name":    {"OTEL_SERVICE_NAME"},
	"tracing.endpoint":        {"OTEL_EXPORTER_OTLP_ENDPOINT"},
	"tracing.sample_rate":     {"TRACING_SAMPLE_RATE"},
}

// LoadConfig builds the configuration from defaults, an optional .env file
// (development only) and the process environment
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env.LoadsDotEnv() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg, err := load(newViper())
	if err != nil {
		return nil, err
	}
	cfg.Environment = env

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	cfg, err := load(newViperWithoutEnv())
	if err != nil {
		panic(fmt.Sprintf("invalid built-in defaults: %v", err))
	}
	cfg.Environment = Development
	return cfg
}

func newViper() *viper.Viper {
	v := newViperWithoutEnv()
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	return v
}

func newViperWithoutEnv() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("provider.name", ProviderGemini)
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.api_key_file", "")
	v.SetDefault("provider.text_model", "")
	v.SetDefault("provider.image_model", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.timeout", "60s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "pantry-chef")
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.sample_rate", 1.0)
}

func load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Provider.Name = strings.ToLower(strings.TrimSpace(cfg.Provider.Name))

	if cfg.Provider.APIKey == "" && cfg.Provider.APIKeyFile != "" {
		apiKey, err := readKeyFile(cfg.Provider.APIKeyFile)
		if err != nil {
			return nil, err
		}
		cfg.Provider.APIKey = apiKey
	}

	applyModelDefaults(&cfg.Provider)
	return &cfg, nil
}

// readKeyFile reads a credential mounted as a file (e.g. a Docker secret)
func readKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}
	apiKey := strings.TrimSpace(string(data))
	if apiKey == "" {
		return "", fmt.Errorf("API key file %s is empty", path)
	}
	return apiKey, nil
}

func applyModelDefaults(p *ProviderConfig) {
	switch p.Name {
	case ProviderOpenAI:
		if p.TextModel == "" {
			p.TextModel = "gpt-4o-mini"
		}
		if p.ImageModel == "" {
			p.ImageModel = "dall-e-3"
		}
		if p.BaseURL == "" {
			p.BaseURL = "https://api.openai.com/v1"
		}
	default:
		if p.TextModel == "" {
			p.TextModel = "gemini-2.5-flash"
		}
		if p.ImageModel == "" {
			p.ImageModel = "imagen-4.0-generate-001"
		}
	}
}
