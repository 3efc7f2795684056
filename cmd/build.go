package cmd

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/debnit/MsmeBazaar-sub001/internal/engine"
	"github.com/debnit/MsmeBazaar-sub001/internal/features"
	"github.com/debnit/MsmeBazaar-sub001/internal/heuristic"
	"github.com/debnit/MsmeBazaar-sub001/internal/history"
	"github.com/debnit/MsmeBazaar-sub001/internal/remote"
	"github.com/debnit/MsmeBazaar-sub001/internal/secrets"
)

// runtime bundles everything a command needs to serve match requests.
type runtime struct {
	engine   *engine.Engine
	remote   *remote.Client
	registry *prometheus.Registry
}

func buildRuntime(config *Config, logger *zap.Logger) (*runtime, error) {
	registry := prometheus.NewRegistry()
	metrics := engine.NewMetrics(registry)

	catalog := features.DefaultCatalog()
	if config.Catalog != nil {
		catalog = *config.Catalog
	}

	weights := heuristic.DefaultWeights()
	confidence := 0.0
	if config.Heuristic != nil {
		if config.Heuristic.Weights != nil {
			weights = *config.Heuristic.Weights
		}
		confidence = config.Heuristic.Confidence
	}

	engineCfg := engine.DefaultConfig()
	if config.Engine != nil {
		engineCfg = *config.Engine
	}

	remoteClient, err := buildRemoteClient(config.Remote, logger)
	if err != nil {
		return nil, err
	}

	store, err := buildHistoryStore(config.History)
	if err != nil {
		return nil, err
	}

	deps := engine.Deps{
		Extractor: features.NewExtractor(catalog),
		Heuristic: heuristic.NewScorer(weights, confidence),
		Recorder:  history.NewRecorder(store, logger),
		Metrics:   metrics,
		Logger:    logger,
	}
	if remoteClient != nil {
		deps.Remote = remoteClient
	}

	return &runtime{
		engine:   engine.New(engineCfg, deps),
		remote:   remoteClient,
		registry: registry,
	}, nil
}

func buildRemoteClient(config *RemoteConfig, logger *zap.Logger) (*remote.Client, error) {
	if config == nil || config.Endpoint == "" {
		logger.Info("no remote scorer configured; matching runs heuristic-only")
		return nil, nil
	}

	token, err := secrets.Load(secrets.Source{
		Name: "matchmaking scorer token",
		File: config.TokenFile,
		Env:  "MATCHMAKING_TOKEN",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set remote.token-file or MATCHMAKING_TOKEN_FILE)", err)
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second

	return remote.New(logger, config.Endpoint, token, config.ModelVersion, timeout), nil
}

func buildHistoryStore(config *HistoryConfig) (history.Store, error) {
	cap := 0
	dsn := ""
	if config != nil {
		cap = config.Cap
		dsn = config.PostgresDSN
	}

	if dsn != "" {
		store, err := history.NewPostgresStore(dsn, cap)
		if err != nil {
			return nil, fmt.Errorf("building postgres history store: %w", err)
		}
		return store, nil
	}

	return history.NewMemoryStore(cap), nil
}
