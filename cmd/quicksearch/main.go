package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/swxiao/jenkins/pkg/api"
	"github.com/swxiao/jenkins/pkg/cache"
	"github.com/swxiao/jenkins/pkg/config"
	"github.com/swxiao/jenkins/pkg/history"
	"github.com/swxiao/jenkins/pkg/model"
	"github.com/swxiao/jenkins/pkg/observability"
	"github.com/swxiao/jenkins/pkg/workspace"
)

func main() {
	port := flag.String("port", "", "Port to listen on (overrides QUICKSEARCH_PORT)")
	workspaceFile := flag.String("workspace-file", "", "Workspace definition file (overrides QUICKSEARCH_WORKSPACE_FILE)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *workspaceFile != "" {
		cfg.Search.WorkspaceFile = *workspaceFile
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("quicksearch exited with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *observability.Logger) error {
	registry := prometheus.NewRegistry()
	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
	}

	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		return err
	}
	var otelMetrics *observability.OTelMetrics
	if providers != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := providers.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Warn("Failed to shut down telemetry")
			}
		}()
		otelMetrics, err = observability.NewOTelMetrics()
		if err != nil {
			return err
		}
	}

	ws, err := workspace.Load(cfg.Search.WorkspaceFile)
	if err != nil {
		return err
	}
	holder := workspace.NewHolder(ws)
	logger.WithFields(map[string]interface{}{
		"file":  cfg.Search.WorkspaceFile,
		"items": len(ws.SearchIndex().Suggest("")),
	}).Info("Workspace loaded")

	var suggestCache *cache.SuggestCache
	if cfg.Cache.Enabled {
		suggestCache, err = cache.New(cache.Config{
			MaxEntries:    cfg.Cache.MaxEntries,
			TTL:           cfg.Cache.TTL,
			RedisURL:      cfg.Cache.RedisURL,
			RedisPassword: cfg.Cache.RedisPassword,
			RedisDB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return err
		}
		defer suggestCache.Close()
	}

	var db *sql.DB
	var recorder *history.Recorder
	if cfg.History.Enabled {
		db, err = sql.Open(cfg.History.Driver, cfg.History.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		recorder = history.NewRecorder(db, cfg.History.Driver)
		if err := recorder.InitSchema(ctx); err != nil {
			return err
		}
		logger.WithField("driver", cfg.History.Driver).Info("Search history enabled")
	}

	// Cached suggestions and the indexed-items gauge track the snapshot.
	holder.OnSwap(func(ws *model.Workspace) {
		if suggestCache != nil {
			if err := suggestCache.InvalidateAll(context.Background()); err != nil {
				logger.WithError(err).Warn("Failed to invalidate suggestion cache")
			}
		}
		if metrics != nil {
			metrics.IndexedItems.Set(float64(len(ws.SearchIndex().Suggest(""))))
		}
	})
	if metrics != nil {
		metrics.IndexedItems.Set(float64(len(ws.SearchIndex().Suggest(""))))
	}

	group, ctx := errgroup.WithContext(ctx)

	if cfg.Search.Watch {
		watcher, err := workspace.NewWatcher(cfg.Search.WorkspaceFile, holder, logger)
		if err != nil {
			return err
		}
		if metrics != nil {
			watcher.OnReload(func() {
				metrics.WorkspaceReloadsTotal.WithLabelValues("watch").Inc()
			})
		}
		group.Go(func() error {
			defer watcher.Close()
			return watcher.Run(ctx)
		})
	}

	if cfg.Search.RefreshSpec != "" {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.Search.RefreshSpec, func() {
			ws, err := workspace.Load(cfg.Search.WorkspaceFile)
			if err != nil {
				logger.WithError(err).Warn("Scheduled workspace refresh failed")
				return
			}
			holder.Swap(ws)
			if metrics != nil {
				metrics.WorkspaceReloadsTotal.WithLabelValues("schedule").Inc()
			}
			logger.Info("Workspace refreshed on schedule")
		})
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	gateway := api.NewServer(api.Options{
		Index:           holder,
		Logger:          logger,
		Metrics:         metrics,
		OTelMetrics:     otelMetrics,
		Cache:           suggestCache,
		History:         recorder,
		SuggestionLimit: cfg.Search.SuggestionLimit,
		CaseInsensitive: cfg.Search.CaseInsensitive,
	})

	appServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      gateway,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var redisClient *redis.Client
	if suggestCache != nil {
		redisClient = suggestCache.Redis()
	}
	checker := observability.NewHealthChecker(db, redisClient, func() bool {
		return holder.Get() != nil
	})
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/health/live", checker.Liveness)
	healthMux.HandleFunc("/health/ready", checker.Readiness)
	if cfg.Observability.MetricsEnabled {
		healthMux.Handle("/metrics", observability.Handler(registry))
	}
	healthServer := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.HealthPort,
		Handler: healthMux,
	}

	group.Go(func() error {
		logger.WithField("addr", appServer.Addr).Info("Quick-search gateway listening")
		if err := appServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		logger.WithField("addr", healthServer.Addr).Info("Health server listening")
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := appServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Gateway shutdown error")
		}
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Health server shutdown error")
		}
		return nil
	})

	return group.Wait()
}
