package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/domain"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/language"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/snapshot"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/resilience"
)

// app holds the collaborators shared by all commands.
type app struct {
	cfg       *config.Config
	artifacts snapshot.Store
	redis     *redis.Client
	metrics   *metrics.Metrics
	coord     *indexer.Coordinator
	closers   []func() error
}

// newApp wires the artifact store, the object registry and the coordinator.
// Metrics are registered with reg; nil uses the default registry served by
// /metrics.
func newApp(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*app, error) {
	a := &app{cfg: cfg, metrics: metrics.New(reg)}

	switch cfg.Storage.Backend {
	case "redis":
		var client *redis.Client
		err := resilience.Retry(ctx, "redis-connect", resilience.RetryConfig{}, func() error {
			var err error
			client, err = redis.NewClient(ctx, cfg.Redis)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("connecting artifact store: %w", err)
		}
		a.redis = client
		a.closers = append(a.closers, client.Close)
		a.artifacts = snapshot.NewRedisStore(client, cfg.Storage.RedisPrefix, cfg.Storage.RedisTTL)
	default:
		a.artifacts = snapshot.NewFileStore(cfg.Storage.Dir)
	}

	domains, err := a.loadDomains(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.coord, err = indexer.NewCoordinator(cfg.Index, language.NewRegistry(), a.artifacts,
		indexer.WithDomains(domains...),
		indexer.WithMetrics(a.metrics),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// loadDomains reads the cross-reference objects from Postgres when the
// registry is enabled.
func (a *app) loadDomains(ctx context.Context) ([]domain.Domain, error) {
	if !a.cfg.Postgres.Enabled {
		return nil, nil
	}
	db, err := postgres.Open(ctx, a.cfg.Postgres)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	src := domain.NewSQLSource(db)
	if err := src.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	domains, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("object registry loaded", "domains", len(domains))
	return domains, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("closing resource", "error", err)
		}
	}
	a.closers = nil
}
