package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"tcmbrates/internal/adapters"
	"tcmbrates/internal/adapters/cache"
	"tcmbrates/internal/adapters/httpclient"
	"tcmbrates/internal/adapters/postgres"
	"tcmbrates/internal/api"
	"tcmbrates/internal/config"
	"tcmbrates/internal/domain"
	"tcmbrates/internal/metrics"
	"tcmbrates/internal/platform/db"
	httpserver "tcmbrates/internal/platform/http"
	"tcmbrates/internal/rate"
	"tcmbrates/internal/rate/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts the HTTP server and the refresh scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	loc, err := time.LoadLocation(appCfg.Source.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid source time zone %q: %w", appCfg.Source.TimeZone, err)
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, warm start)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(registry)

	// Table cache
	tableCache, closeCache, err := newTableCache(startupCtx, appCfg.Cache)
	if err != nil {
		logrus.WithError(err).Error("Failed to set up rate table cache")
		return err
	}
	defer closeCache()
	logrus.Infof("✅ Rate table cache ready (driver: %s)", appCfg.Cache.Driver)

	// Snapshot store (optional)
	var snapshotRepo adapters.SnapshotRepository
	if appCfg.DbServer.Enabled {
		pool, dbErr := db.Connect(startupCtx, appCfg.DbServer)
		if dbErr != nil {
			logrus.WithError(dbErr).Error("Error connecting to db")
			return dbErr
		}
		defer pool.Close()
		snapshotRepo = postgres.NewSnapshotRepository(pool)
		logrus.Info("✅ Postgres connection successful")
	}

	// Source client (configurable timeout)
	baseHTTPClient := &http.Client{Timeout: appCfg.HTTPClient.Timeout()}
	tcmbClient := httpclient.NewTCMBClient(baseHTTPClient, appCfg.HTTPClient.SourceURL)

	// Services
	rateService := rate.NewService(tcmbClient, tableCache, loc, appMetrics)
	if snapshotRepo != nil {
		if warmed, warmErr := rate.WarmStart(startupCtx, rateService, snapshotRepo); warmErr != nil {
			logrus.WithError(warmErr).Warn("Warm start skipped")
		} else if warmed {
			logrus.Info("✅ Rate table restored from last snapshot")
		}
	}
	rateValidator := rate.NewValidator(domain.CurrencyNames())

	scheduler := rate.NewScheduler(rateService, snapshotRepo, appCfg.Scheduler.RefreshInterval())
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	rateHandler := handler.NewRateHandler(rateValidator, rateService)
	router := api.NewRouter(rateHandler, appMetrics, registry)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// newTableCache builds the configured cache backend. The returned cache is nil for the
// "none" driver; the close func is always safe to call.
func newTableCache(ctx context.Context, cfg config.Cache) (adapters.RateTableCache, func(), error) {
	switch cfg.Driver {
	case config.CacheDriverNone:
		return nil, func() {}, nil
	case config.CacheDriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		return cache.NewRedisTableCache(client), func() { _ = client.Close() }, nil
	case config.CacheDriverBadger:
		c, err := cache.OpenBadgerTableCache(cfg.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {
			if closeErr := c.Close(); closeErr != nil {
				logrus.WithError(closeErr).Warn("Failed to close badger cache")
			}
		}, nil
	default:
		c, err := cache.NewRistrettoTableCache(cfg.MaxItems)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	}
}
