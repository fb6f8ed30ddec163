package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"watchtracker/config"
	"watchtracker/internal/history"
	"watchtracker/internal/monitor"
	"watchtracker/internal/report"
	"watchtracker/internal/scraper"
	"watchtracker/logger"
	"watchtracker/services/cache"
	"watchtracker/services/notifier"
	"watchtracker/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("check_interval", cfg.CheckInterval).
		Int("model_count", len(config.Catalog())).
		Int("retailer_count", len(cfg.Retailers())).
		Msg("Starting watch price tracker")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize cache service for fetch rate limiting
	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)

	// Load price history
	storage := history.NewFileStorage(cfg.HistoryFile)
	store := history.NewStore(config.ModelNames(), cfg.RetailerNames(), storage)
	store.Load()

	// Create scrapers and the monitor
	scrapers := scraper.CreateScrapers(&cfg, cacheService)
	if len(scrapers) == 0 {
		log.Fatal().Msg("No scrapers were created")
	}
	mon := monitor.New(config.Catalog(), scrapers, store)

	// Initialize notifiers
	notifiers := initializeNotifiers(ctx, &cfg)
	defer func() {
		for _, n := range notifiers {
			n.Close()
		}
	}()

	// Create the worker
	w := worker.NewWorker(
		ctx,
		mon,
		notifiers,
		report.NewFileWriter(cfg.ReportDir),
		cfg.AlertRecipient,
		cfg.CheckInterval,
	)

	// Single-sweep mode: check once, report, and exit
	if cfg.RunOnce {
		deals := w.RunOnce()
		log.Info().Int("deal_count", len(deals)).Msg("Single sweep complete")
		return
	}

	// Start worker in a goroutine
	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting price check worker")
		workerDone <- w.Start()
	}()

	// Wait for shutdown signal or worker exit
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
		<-workerDone
	case err := <-workerDone:
		if err != nil {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	log.Info().Msg("Shutting down gracefully...")
}

// initializeNotifiers builds the configured alert channels: the Redis
// stream is always on, mail only when SMTP and a recipient are configured.
func initializeNotifiers(ctx context.Context, cfg *config.Config) []notifier.Notifier {
	notifiers := []notifier.Notifier{
		notifier.NewRedisNotifier(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMaxLen),
	}
	logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)", cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)

	if cfg.SMTPAddr != "" && cfg.AlertRecipient != "" {
		notifiers = append(notifiers, notifier.NewSMTPNotifier(cfg.SMTPAddr, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom))
		logger.Info("Mail alerts enabled for %s", cfg.AlertRecipient)
	}

	return notifiers
}
