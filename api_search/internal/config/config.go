// Package config builds the search service configuration from the environment.
package config

import (
	"github.com/samber/mo"

	"mediasearch/pkg/apperr"
	envconfig "mediasearch/pkg/config"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8080
)

// Config is built once at startup and shared read-only.
type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	// Auth is carried for deployments that front the service with Supabase.
	// Nothing validates tokens against it.
	Auth mo.Option[AuthConfig]
}

type ServerConfig struct {
	Host string
	Port uint16
}

type ProviderConfig struct {
	APIKey string
	// BaseURL is empty unless RAWG_API_URL overrides the public endpoint.
	BaseURL string
	// CircuitBreaker guards provider calls unless RAWG_CIRCUIT_BREAKER=false.
	CircuitBreaker bool
}

type AuthConfig struct {
	URL       string
	JWTSecret string
}

// Load reads HOST, PORT, RAWG_API_KEY, RAWG_API_URL, RAWG_CIRCUIT_BREAKER,
// SUPABASE_URL and SUPABASE_JWT_SECRET. Failures are apperr Config errors.
func Load() (*Config, error) {
	port, err := envconfig.GetEnvUint16("PORT", DefaultPort)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "invalid PORT")
	}

	apiKey, err := envconfig.RequireEnv("RAWG_API_KEY")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "missing RAWG_API_KEY")
	}

	baseURL, _ := envconfig.LookupEnv("RAWG_API_URL")

	return &Config{
		Server: ServerConfig{
			Host: envconfig.GetEnv("HOST", DefaultHost),
			Port: port,
		},
		Provider: ProviderConfig{
			APIKey:         apiKey,
			BaseURL:        baseURL,
			CircuitBreaker: envconfig.GetEnvBool("RAWG_CIRCUIT_BREAKER", true),
		},
		Auth: loadAuth(),
	}, nil
}

// loadAuth returns Some only when both Supabase values are present.
func loadAuth() mo.Option[AuthConfig] {
	url, hasURL := envconfig.LookupEnv("SUPABASE_URL")
	secret, hasSecret := envconfig.LookupEnv("SUPABASE_JWT_SECRET")
	if !hasURL || !hasSecret {
		return mo.None[AuthConfig]()
	}
	return mo.Some(AuthConfig{URL: url, JWTSecret: secret})
}

// HealthValues lists the settings reported by the readiness check. Secrets
// are only reported as present or absent.
func (c *Config) HealthValues() map[string]string {
	return map[string]string{
		"RAWG_API_KEY": c.Provider.APIKey,
		"HOST":         c.Server.Host,
	}
}
