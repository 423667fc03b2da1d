package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concierge-service/internal/infrastructure/config"
	"concierge-service/internal/infrastructure/oauth"
	"concierge-service/internal/infrastructure/persistence"
	"concierge-service/internal/infrastructure/router"
	"concierge-service/internal/interface/gmail"
	"concierge-service/internal/interface/repository"
	"concierge-service/internal/usecase"
	"concierge-service/pkg/logger"
	"concierge-service/pkg/metrics"
	"concierge-service/pkg/parser"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Concierge Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	log.Info("Configuration loaded", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	messageRepo := repository.NewMongoMessageRepository(db)
	bookingRepo := repository.NewMongoBookingRepository(db)
	serviceRepo := repository.NewGormServiceRepository(gormDB)
	notifier := repository.NewWhatsappNotifier(log)

	// Set up metrics
	m := metrics.NewMetrics("concierge")

	// Set up the booking pipeline
	requestParser := parser.NewRequestParser(log)
	bookingProcessor := usecase.NewBookingProcessor(messageRepo, bookingRepo, serviceRepo, notifier, requestParser, m, log)

	channelRouter := router.NewChannelRouter(log)
	channelRouter.Register(usecase.NewBookingHandlerAdapter(
		bookingProcessor,
		"booking",
		[]string{"booking", "concierge", "assistance"},
	))
	orchestrator := usecase.NewMessageOrchestrator(messageRepo, channelRouter, log)

	// Set up Gmail OAuth
	gmailOAuth := oauth.NewGmailOAuth(
		cfg.GmailClientID,
		cfg.GmailClientSecret,
		cfg.GmailRefreshToken,
		log,
	)
	tokenSource := gmailOAuth.GetTokenSource(ctx)

	// Set up Gmail inbox service
	inboxService, err := gmail.NewInboxService(ctx, tokenSource, messageRepo, orchestrator, log, cfg.GmailPollInterval)
	if err != nil {
		log.Fatal("Failed to create Gmail inbox service", "error", err)
	}

	// Start Gmail polling in a goroutine
	go inboxService.StartPolling(ctx)

	// Start the sweep for messages the immediate path missed
	go func() {
		processTicker := time.NewTicker(cfg.ProcessInterval)
		defer processTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Message processor stopped")
				return
			case <-processTicker.C:
				log.Info("Processing pending messages")
				if err := bookingProcessor.ProcessPendingMessages(ctx); err != nil {
					log.Error("Error processing messages", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Concierge Service stopped")
}
