package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ledgersift/mail-ingestor/internal/config"
	"github.com/ledgersift/mail-ingestor/internal/extraction"
	"github.com/ledgersift/mail-ingestor/internal/gmail"
	"github.com/ledgersift/mail-ingestor/internal/logger"
	temporalprovider "github.com/ledgersift/mail-ingestor/internal/providers/temporal"
	"github.com/ledgersift/mail-ingestor/internal/store"
	"github.com/ledgersift/mail-ingestor/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadWorkerCoreConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "worker-core",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.Info("Starting Mail Ingestor Worker Core")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize provider gateway and credential handling
	gateway := gmail.NewClient(cfg.Gmail.PubSubTopic)
	refresher := gmail.NewOAuthRefresher(cfg.Gmail.ClientID, cfg.Gmail.ClientSecret)
	vault := gmail.StaticVault(cfg.Gmail.Credentials)

	// Initialize the extraction invoker
	extractor, err := extraction.New(extraction.Config{
		BaseURL: cfg.Extraction.BaseURL,
		APIKey:  cfg.Extraction.APIKey,
		Model:   cfg.Extraction.Model,
	})
	if err != nil {
		logger.Fatal("Failed to initialize extraction invoker", zap.Error(err))
	}

	// Initialize executor for activities
	executor := workflows.NewExecutor(
		workflows.ExecutorConfig{RefreshMargin: cfg.Gmail.RefreshMargin},
		dataStore, gateway, refresher, vault, extractor,
	)

	// Connect to Temporal with logger integration
	temporalLogger := temporalprovider.NewZapLoggerAdapter(logger.Default())
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporalLogger,
	})
	if err != nil {
		logger.Fatal("Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.Info("Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	// Create Temporal worker with Sentry interceptor
	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.MailboxTaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors: []interceptor.WorkerInterceptor{
				temporalprovider.NewSentryActivityInterceptor(),
			},
		})
	logger.Info("Created Temporal worker", zap.String("taskQueue", cfg.Temporal.MailboxTaskQueue))

	// Create worker core instance
	workerCore := workflows.NewWorkerCore(executor,
		workflows.WorkerCoreConfig{
			RenewalBuffer:        cfg.Lifecycle.RenewalBuffer,
			RenewalRetryInterval: cfg.Lifecycle.RenewalRetryInterval,
			ConfidenceThreshold:  cfg.Extraction.ConfidenceThreshold,
			ProcessedLabel:       cfg.Lifecycle.ProcessedLabel,
			HistoryEventLimit:    cfg.Lifecycle.HistoryEventLimit,
			MaxRunDuration:       cfg.Lifecycle.MaxRunDuration,
		})

	// Register workflows
	temporalWorker.RegisterWorkflow(workerCore.MailboxLifecycle)
	logger.Info("Registered workflows")

	// Register activities
	temporalWorker.RegisterActivity(executor.UpsertAccount)
	temporalWorker.RegisterActivity(executor.RefreshCredential)
	temporalWorker.RegisterActivity(executor.RegisterWatch)
	temporalWorker.RegisterActivity(executor.DeregisterWatch)
	temporalWorker.RegisterActivity(executor.UpdateAccountWatch)
	temporalWorker.RegisterActivity(executor.FetchDelta)
	temporalWorker.RegisterActivity(executor.AdvanceCursor)
	temporalWorker.RegisterActivity(executor.SaveSourceMessage)
	temporalWorker.RegisterActivity(executor.MatchMessage)
	temporalWorker.RegisterActivity(executor.ExtractFields)
	temporalWorker.RegisterActivity(executor.SaveExtractedResult)
	temporalWorker.RegisterActivity(executor.RecordRuleMatched)
	temporalWorker.RegisterActivity(executor.RecordRuleFailed)
	temporalWorker.RegisterActivity(executor.LabelMessage)
	temporalWorker.RegisterActivity(executor.MarkMessageProcessed)
	temporalWorker.RegisterActivity(executor.MarkMessageFailed)
	temporalWorker.RegisterActivity(executor.RecordAccountError)
	temporalWorker.RegisterActivity(executor.DeactivateAccount)
	logger.Info("Registered activities")

	// Start worker
	err = temporalWorker.Start()
	if err != nil {
		logger.Fatal("Failed to start worker", zap.Error(err))
	}
	logger.Info("Worker started and listening for tasks")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down worker")
	temporalWorker.Stop()
}
