package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var supportedProviders = []string{ProviderGemini, ProviderOpenAI}

// ValidateConfig checks the configuration and reports every problem found
func ValidateConfig(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, ValidationError{Field: "server.port", Message: fmt.Sprintf("must be between 1 and 65535, got %d", cfg.Server.Port)})
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "server.shutdown_timeout", Message: "must be positive"})
	}

	if !isSupportedProvider(cfg.Provider.Name) {
		errs = append(errs, ValidationError{
			Field:   "provider.name",
			Message: fmt.Sprintf("unknown provider %q, expected one of: %s", cfg.Provider.Name, strings.Join(supportedProviders, ", ")),
		})
	}
	if cfg.Provider.Timeout <= 0 {
		errs = append(errs, ValidationError{Field: "provider.timeout", Message: "must be positive"})
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{Field: "log.format", Message: fmt.Sprintf("must be text or json, got %q", cfg.Log.Format)})
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, ValidationError{Field: "tracing.endpoint", Message: "is required when tracing is enabled"})
	}
	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		errs = append(errs, ValidationError{Field: "tracing.sample_rate", Message: fmt.Sprintf("must be between 0 and 1, got %g", cfg.Tracing.SampleRate)})
	}

	return errors.Join(errs...)
}

func isSupportedProvider(name string) bool {
	for _, p := range supportedProviders {
		if p == name {
			return true
		}
	}
	return false
}
