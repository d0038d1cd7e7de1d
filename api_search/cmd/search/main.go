package main

import (
	"os"

	"github.com/samber/lo"

	"mediasearch/api_search/internal/config"
	"mediasearch/api_search/internal/handlers"
	"mediasearch/pkg/clients"
	"mediasearch/pkg/clients/rawg"
	envconfig "mediasearch/pkg/config"
	"mediasearch/pkg/logging"
	"mediasearch/pkg/models"
	"mediasearch/pkg/monitoring"
	"mediasearch/pkg/search"
	"mediasearch/pkg/server"
	"mediasearch/pkg/version"
)

func main() {
	logger := logging.NewLoggerWithService(version.ServiceName)
	envconfig.LoadEnv(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Error("Invalid configuration")
		os.Exit(1)
	}
	if cfg.Auth.IsPresent() {
		logger.Info("Supabase settings loaded; tokens are not validated by this service")
	}

	healthChecker := monitoring.NewHealthChecker(version.ServiceName, version.Version)
	metricsCollector := monitoring.NewMetricsCollector(version.ServiceName, version.Version, version.GitCommit)

	var breaker *clients.HTTPCircuitBreaker
	if cfg.Provider.CircuitBreaker {
		breakerMetrics := clients.NewBreakerMetrics(metricsCollector.Registry())
		breakerCfg := clients.DefaultCircuitBreakerConfig()
		breakerCfg.Name = "rawg"
		breakerCfg.Logger = logger
		breakerCfg.OnStateChange = breakerMetrics.OnStateChange
		breaker = clients.NewHTTPCircuitBreaker(breakerCfg)
	}

	registry, err := search.NewDefaultRegistry(search.Config{
		RAWGAPIKey: cfg.Provider.APIKey,
		RAWGAPIURL: cfg.Provider.BaseURL,
		HTTPClient: clients.NewHTTPClient(rawg.DefaultTimeout),
		Breaker:    breaker,
		Logger:     logger,
	})
	if err != nil {
		logger.WithError(err).Error("Failed to build provider registry")
		os.Exit(1)
	}

	supported := registry.Supported()
	logger.WithField("media_types", lo.Map(supported, func(mt models.MediaType, _ int) string {
		return mt.String()
	})).Info("Providers registered")

	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(cfg.HealthValues()))
	if breaker != nil {
		healthChecker.AddCheck("rawg_circuit", monitoring.CircuitBreakerHealthCheck(breaker))
	}

	app := server.SetupServiceRouter(logger, version.ServiceName, healthChecker, metricsCollector)

	searchMetrics := handlers.NewSearchMetrics(metricsCollector)
	searchMetrics.RecordProviders(supported)
	handlers.RegisterRoutes(app,
		handlers.NewGameHandler(registry, logger, searchMetrics),
		handlers.NewSearchHandler(registry, logger, searchMetrics),
	)

	serverConfig := server.DefaultConfig(version.ServiceName, cfg.Server.Host, cfg.Server.Port)
	if err := server.Start(serverConfig, app, logger); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}
