// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"procurement-workers/internal/api"
	"procurement-workers/internal/catalog"
	"procurement-workers/internal/common/camunda"
	"procurement-workers/internal/common/config"
	"procurement-workers/internal/common/database"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/observability"
	"procurement-workers/internal/decision/similarity"
	"procurement-workers/internal/procurement"
	"procurement-workers/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{Level: "info", Format: "console"}).Fatal("failed to load config", zap.Error(err))
	}

	zapLog := logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: cfg.App.Name,
		Env:     cfg.App.Environment,
	})
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("catalogSource", cfg.Catalog.Source),
	)

	obs := observability.New(cfg.App.Name, log)

	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("failed to load activity registry", zap.String("path", cfg.Registry.Path), zap.Error(err))
	}

	// --- Infrastructure ---
	var pg *database.PostgresClient
	if cfg.Catalog.Source == "postgres" {
		err = retryWithBackoff(func() error {
			client, connErr := database.NewPostgres(cfg.Database.Postgres)
			if connErr != nil {
				return connErr
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if connErr = client.Ping(ctx); connErr != nil {
				client.Close()
				return connErr
			}
			pg = client
			return nil
		}, 5, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("failed to connect to PostgreSQL", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("Connected to PostgreSQL")
	}

	redis, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("failed to create Redis client", zap.Error(err))
	}
	defer redis.Close()
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redis.Ping(pingCtx); err != nil {
		zapLog.Warn("Redis unreachable, signal cache will miss until it recovers", zap.Error(err))
	}
	pingCancel()

	var es *database.ElasticsearchClient
	if len(cfg.Database.Elasticsearch.Addresses) > 0 {
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Warn("Elasticsearch unavailable, news fallback disabled", zap.Error(err))
			es = nil
		}
	}

	var src catalog.Source
	if pg != nil {
		src = catalog.NewPostgresStore(pg.DB, log)
	} else {
		src = catalog.NewFileStore(cfg.Catalog.ProductsFile, cfg.Catalog.TariffsFile)
	}

	// --- Signal collaborators and the decision service ---
	demand := newDemandService(cfg, redis, es, log)
	weatherClient := newWeatherClient(cfg, redis, log)

	svc := procurement.NewService(src, similarity.Config{
		TopN:          cfg.Engine.SubstituteTopN,
		MinSimilarity: cfg.Engine.MinSimilarity,
		Precision:     similarity.DefaultConfig().Precision,
	}, log,
		procurement.WithDemandSource(demand),
		procurement.WithWeatherSource(weatherClient),
		procurement.WithObservability(obs),
	)

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var connErr error
		zeebe, connErr = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return connErr
	}, 5, 2*time.Second, zapLog, "Zeebe connection")
	if err != nil {
		zapLog.Fatal("failed to connect to Zeebe", zap.Error(err))
	}
	zapLog.Info("Connected to Zeebe", zap.String("gateway", cfg.Camunda.BrokerAddress))

	handlers, err := buildHandlers(context.Background(), cfg, svc, src, demand, weatherClient, log)
	if err != nil {
		zapLog.Fatal("failed to build worker handlers", zap.Error(err))
	}

	var workers []*camunda.Worker
	for _, taskType := range reg.TaskTypes() {
		handler, ok := handlers[taskType]
		if !ok {
			zapLog.Warn("registry declares a task type with no handler", zap.String("taskType", taskType))
			continue
		}
		if !config.IsWorkerEnabled(cfg, taskType) {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			continue
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		activity, _ := reg.Lookup(taskType)
		workers = append(workers, camunda.OpenWorker(zeebe.GetClient(), camunda.WorkerOptions{
			TaskType:      taskType,
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       activity.TimeoutDuration(config.GetDuration(wcfg.Timeout)),
			Name:          cfg.App.Name,
			Observability: obs,
		}, handler, log))
	}
	for taskType := range handlers {
		if !reg.Has(taskType) {
			zapLog.Warn("handler not declared in activity registry, not started", zap.String("taskType", taskType))
		}
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- HTTP: API, health and metrics ---
	root := chi.NewRouter()
	root.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	root.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true
		check := func(name string, fn func(context.Context) error) {
			if err := fn(ctx); err != nil {
				checks[name] = err.Error()
				ready = false
				return
			}
			checks[name] = "ok"
		}
		check("zeebe", zeebe.HealthCheck)
		check("redis", redis.Ping)
		if pg != nil {
			check("postgres", pg.Ping)
		}
		if es != nil {
			check("elasticsearch", es.Ping)
		}

		if !ready {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", checks)
			return
		}
		writeStatus(w, http.StatusOK, "ready", checks)
	})
	root.Handle("/metrics", promhttp.Handler())
	root.Mount("/", api.NewRouter(api.RouterConfig{
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		RateLimitRequests: cfg.Server.RateLimit,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    config.GetDuration(cfg.Server.RequestTimeout),
	}, svc, src, log))

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           root,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	debugServer := newDebugServer(cfg.Server.DebugAddress)
	if debugServer != nil {
		go func() {
			zapLog.Info("Debug server listening", zap.String("address", cfg.Server.DebugAddress))
			if err := debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zapLog.Error("Debug server failed", zap.Error(err))
			}
		}()
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	if debugServer != nil {
		if err := debugServer.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("Error shutting down debug server", zap.Error(err))
		}
	}
	for _, w := range workers {
		w.Stop()
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down telemetry", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string, checks map[string]string) {
	body := map[string]interface{}{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if checks != nil {
		body["checks"] = checks
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
