package model

import (
	"fmt"

	"github.com/obstetra/fetal-health-service/internal/domain/providers"
	"github.com/obstetra/fetal-health-service/pkg/config"
)

// NewProviderFromConfig selects the model provider implementation:
// "forest" loads the in-process random-forest artifact, "remote" delegates to
// an external inference service, "mock" uses the deterministic stand-in.
func NewProviderFromConfig(cfg *config.ModelConfig) (providers.ModelProvider, error) {
	switch cfg.Provider {
	case "forest", "":
		return NewForestProvider(cfg.Path)
	case "remote":
		if cfg.URL == "" {
			return nil, fmt.Errorf("MODEL_URL is required for the remote model provider")
		}
		return NewRemoteProvider(cfg.URL), nil
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
