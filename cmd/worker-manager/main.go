// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lead-dispatch-workers/internal/common/camunda"
	"lead-dispatch-workers/internal/common/config"
	"lead-dispatch-workers/internal/common/database"
	"lead-dispatch-workers/internal/common/logger"
	"lead-dispatch-workers/internal/common/observability"
	"lead-dispatch-workers/internal/dispatch/engine"
	"lead-dispatch-workers/internal/dispatch/geo"
	"lead-dispatch-workers/internal/store"
	"lead-dispatch-workers/pkg/registry"

	dl "lead-dispatch-workers/internal/workers/lead/dispatch-lead"
	nv "lead-dispatch-workers/internal/workers/lead/notify-vendor"
	scc "lead-dispatch-workers/internal/workers/lead/sync-crm-contact"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Load Classification Ruleset ---
	var rules *registry.Ruleset
	if cfg.Ruleset.Path != "" {
		rules, err = registry.LoadRuleset(cfg.Ruleset.Path)
		if err != nil {
			zapLog.Fatal("ruleset load failed", zap.String("path", cfg.Ruleset.Path), zap.Error(err))
		}
		zapLog.Info("Ruleset loaded", zap.String("path", cfg.Ruleset.Path), zap.String("version", rules.Version))
	} else {
		rules = registry.DefaultRuleset()
		zapLog.Info("Using built-in ruleset", zap.String("version", rules.Version))
	}

	// --- Wire Dispatch Engine & Collaborators ---
	resolver := store.NewCachedResolver(
		geo.NewDatasetResolver(rules),
		redis.Client,
		cfg.Dispatch.GeoCacheTTL,
	)
	dispatchEngine := engine.New(rules, cfg.Dispatch, log, engine.Options{
		Resolver: resolver,
	})
	vendorStore := store.NewVendorStore(pg.DB, log)
	snapshotCache := store.NewSnapshotCache(redis.Client, cfg.Dispatch.SnapshotCacheTTL, log)
	auditIndexer := store.NewAuditIndexer(esClient.Client, cfg.Database.Elasticsearch.AuditIndex, log)

	zapLog.Info("Dispatch engine initialized", zap.String("rulesetVersion", rules.Version))

	// --- Register Workers ---
	var workers []*camunda.Worker

	// Dispatch Lead
	if taskType := dl.TaskType; config.IsWorkerEnabled(cfg, taskType) {
		handler := dl.NewHandler(
			dl.LoadConfig(),
			dispatchEngine,
			vendorStore,
			snapshotCache,
			auditIndexer,
			log,
		)
		workers = append(workers, startWorker(zeebeClient, taskType, config.GetWorkerConfig(cfg, taskType), handler.Handle, zapLog))
	}

	// Notify Vendor
	if taskType := nv.TaskType; config.IsWorkerEnabled(cfg, taskType) {
		nvCfg := nv.LoadConfig()
		nvCfg.EmailEnabled = cfg.Notifications.Email.Enabled
		nvCfg.SMSEnabled = cfg.Notifications.SMS.Enabled
		nvCfg.SMSPriorityThreshold = cfg.Notifications.SMS.PriorityThreshold
		nvCfg.FromEmail = cfg.Notifications.Email.FromEmail
		nvCfg.AWSRegion = cfg.Notifications.AWS.Region

		handler, err := nv.NewHandler(nvCfg, log)
		if err != nil {
			zapLog.Fatal("failed to create notify-vendor handler", zap.Error(err))
		}
		workers = append(workers, startWorker(zeebeClient, taskType, config.GetWorkerConfig(cfg, taskType), handler.Handle, zapLog))
	}

	// Sync CRM Contact
	if taskType := scc.TaskType; config.IsWorkerEnabled(cfg, taskType) {
		sccCfg := scc.LoadConfig()
		sccCfg.BaseURL = cfg.CRM.BaseURL
		sccCfg.OAuthToken = cfg.CRM.OAuthToken
		sccCfg.Timeout = config.GetDuration(cfg.CRM.Timeout)

		handler := scc.NewHandler(sccCfg, log)
		workers = append(workers, startWorker(zeebeClient, taskType, config.GetWorkerConfig(cfg, taskType), handler.Handle, zapLog))
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "unavailable",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "ready",
				"ruleset": rules.Version,
				"time":    time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		if w != nil {
			w.Close()
		}
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc camunda.JobHandler, log *zap.Logger) *camunda.Worker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	return camunda.StartWorker(client, taskType, camunda.WorkerOptions{
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       time.Duration(wcfg.Timeout) * time.Millisecond,
	}, handlerFunc, log)
}
