package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sectool/internal/config"
	"github.com/kailas-cloud/sectool/internal/db"
	dbRedis "github.com/kailas-cloud/sectool/internal/db/redis"
	"github.com/kailas-cloud/sectool/internal/domain"
	logpkg "github.com/kailas-cloud/sectool/internal/logger"
	"github.com/kailas-cloud/sectool/internal/metrics"
	"github.com/kailas-cloud/sectool/internal/repository/rescache"
	"github.com/kailas-cloud/sectool/internal/transport/secapi"
	healthuc "github.com/kailas-cloud/sectool/internal/usecase/health"
	"github.com/kailas-cloud/sectool/internal/usecase/router"
	"github.com/kailas-cloud/sectool/internal/usecase/upstream"
)

// app is the composition root shared by every subcommand.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
	tool   *router.Service
	health *healthuc.Service
	store  db.Store
}

// newApp loads config, builds the logger and assembles the client chain:
// SEC API -> Cached (when enabled) -> Instrumented -> Router.
// apiKey overrides secapi.api_key when non-empty.
func newApp(ctx context.Context, apiKey string) (*app, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{env: env, cfg: cfg, logger: logger}
	if err := a.wire(ctx, domain.ResolveCredential(apiKey, cfg.SECAPI.APIKey)); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context, cred domain.Credential) error {
	metrics.RegisterUpstreamMetrics()

	if a.cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    a.cfg.Cache.Addrs,
			Password: a.cfg.Cache.Password,
		})
		if err != nil {
			return fmt.Errorf("failed to create cache store: %w", err)
		}
		a.store = store

		timeout := time.Duration(a.cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, timeout); err != nil {
			return fmt.Errorf("cache store not ready: %w", err)
		}
		a.logger.Info("Connected to cache store", zap.Strings("addrs", a.cfg.Cache.Addrs))
	}

	var api *secapi.Client
	factory := func(c domain.Credential) (router.Client, error) {
		var err error
		api, err = secapi.NewClient(&secapi.Config{
			Credential: c,
			BaseURL:    a.cfg.SECAPI.BaseURL,
			Timeout:    time.Duration(a.cfg.SECAPI.TimeoutSec) * time.Second,
			Logger:     a.logger,
		})
		if err != nil {
			return nil, err
		}

		return a.decorate(api), nil
	}

	svc, err := router.New(cred, factory)
	if err != nil {
		return err
	}
	a.tool = svc.WithRouteRecorder(metrics.RouteRecorder{})

	// Pass a nil interface, not a typed nil pointer, when the cache is off.
	var cache healthuc.CachePinger
	if a.store != nil {
		cache = a.store
	}
	a.health = healthuc.New(api, cache)

	a.logger.Debug("Tool wired",
		zap.String("base_url", a.cfg.SECAPI.BaseURL),
		zap.Object("credential", cred),
		zap.Bool("cache", a.store != nil),
	)
	return nil
}

// Close releases the cache connection and flushes the logger.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	_ = a.logger.Sync()
}

// decorate wraps the SEC API client with the result cache, when a store is
// configured, and call logging outermost so cache hits are logged too.
func (a *app) decorate(api upstream.Client) router.Client {
	client := api
	if a.store != nil {
		ttl := time.Duration(a.cfg.Cache.TTLSec) * time.Second
		client = rescache.New(client, a.store, ttl, metrics.ResultCacheTotal, a.logger)
	}
	return upstream.NewInstrumentedClient(client, a.logger)
}
