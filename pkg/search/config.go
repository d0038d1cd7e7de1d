package search

import (
	"net/http"
	"strings"

	"mediasearch/pkg/apperr"
	"mediasearch/pkg/clients"
	"mediasearch/pkg/clients/rawg"
	"mediasearch/pkg/logging"
	"mediasearch/pkg/models"
)

// Config holds what the built-in providers need.
type Config struct {
	RAWGAPIKey string
	// RAWGAPIURL overrides the public RAWG endpoint when set.
	RAWGAPIURL string

	HTTPClient *http.Client
	Breaker    *clients.HTTPCircuitBreaker
	Logger     logging.Logger
}

var _ Provider = (*rawg.Client)(nil)

// NewDefaultRegistry wires every built-in provider. Only games are served today.
func NewDefaultRegistry(cfg Config) (*Registry, error) {
	if strings.TrimSpace(cfg.RAWGAPIKey) == "" {
		return nil, apperr.Config("RAWG API key is required")
	}

	opts := []rawg.Option{
		rawg.WithHTTPClient(cfg.HTTPClient),
		rawg.WithLogger(cfg.Logger),
	}
	if cfg.RAWGAPIURL != "" {
		opts = append(opts, rawg.WithBaseURL(cfg.RAWGAPIURL))
	}
	if cfg.Breaker != nil {
		opts = append(opts, rawg.WithCircuitBreaker(cfg.Breaker))
	}

	registry := NewRegistry()
	registry.Register(models.MediaGame, rawg.NewClient(cfg.RAWGAPIKey, opts...))
	return registry, nil
}
