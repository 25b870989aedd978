package service

import (
	"context"
	"fmt"

	"github.com/pageza/pantry-chef/config"
	"github.com/pageza/pantry-chef/internal/logger"
)

// NewProvider builds the configured provider. When the provider cannot be
// constructed (typically a missing credential) it returns one that fails
// every call with the construction error, so the server still starts.
func NewProvider(ctx context.Context, cfg config.ProviderConfig) Provider {
	switch cfg.Name {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg)
		if err != nil {
			logger.L().Warn("generative-AI provider unavailable", "provider", cfg.Name, "error", err)
			return &unavailableProvider{name: cfg.Name, err: err}
		}
		return p
	default:
		return &unavailableProvider{name: cfg.Name, err: fmt.Errorf("unknown provider %q", cfg.Name)}
	}
}

type unavailableProvider struct {
	name string
	err  error
}

func (p *unavailableProvider) Name() string {
	return p.name
}

func (p *unavailableProvider) GenerateJSON(context.Context, StructuredRequest) (string, error) {
	return "", p.err
}

func (p *unavailableProvider) GenerateImage(context.Context, string) (*Image, error) {
	return nil, p.err
}
