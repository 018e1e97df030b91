package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/payfront/payfront/gateway"
	"github.com/payfront/payfront/handler"
	"github.com/payfront/payfront/infra/config"
	"github.com/payfront/payfront/infra/logger"
	"github.com/payfront/payfront/infra/opensearch"
	"github.com/payfront/payfront/infra/store"
	"github.com/payfront/payfront/provider"
	"github.com/payfront/payfront/provider/stripeapi"
	"github.com/payfront/payfront/router"
	"github.com/payfront/payfront/rpc"
)

var (
	openSearchLogger *opensearch.Logger
	eventStore       *store.EventStore
)

func init() {
	// Load Env (optional; real environments may inject variables directly)
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.App()

	// Initialize OpenSearch client and logger
	if cfg.EnableLogging {
		osClient, err := opensearch.NewClient(cfg)
		if err != nil {
			log.Printf("Failed to initialize OpenSearch client: %v", err)
			log.Println("Continuing without OpenSearch logging...")
		} else {
			openSearchLogger = opensearch.NewLogger(osClient)
			log.Println("OpenSearch logging initialized successfully")
		}
	} else {
		log.Println("OpenSearch logging is disabled")
	}

	var sink logger.Sink
	if openSearchLogger != nil {
		sink = openSearchLogger
	}
	logger.InitGlobal(logger.Config{Sink: sink, Service: "payfront"})

	// Webhook event deduplication store (optional)
	if cfg.EventDBPath != "" {
		var err error
		eventStore, err = store.NewEventStore(cfg.EventDBPath)
		if err != nil {
			log.Printf("Failed to open webhook event store: %v", err)
			log.Println("Continuing without webhook deduplication...")
			eventStore = nil
		} else {
			log.Println("Webhook event store initialized at", cfg.EventDBPath)
		}
	}
}

// runRetention prunes old webhook events on a daily tick.
func runRetention(ctx context.Context, events *store.EventStore, retentionDays int) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().AddDate(0, 0, -retentionDays)
			removed, err := events.CleanupBefore(cutoff)
			if err != nil {
				log.Printf("Webhook event cleanup failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("Webhook event cleanup removed %d events", removed)
			}
		}
	}
}

func main() {
	cfg := config.App()

	// The upstream client is built lazily on first use so the service can
	// boot (and answer discovery requests) without a credential present.
	facade := provider.NewFacade(func(secretKey string) (provider.Gateway, error) {
		return stripeapi.New(secretKey), nil
	})

	h := handler.New(facade, validator.New(), eventStore)

	table, err := gateway.NewTable(h.Routes())
	if err != nil {
		log.Fatalf("Route table error: %v", err)
	}

	fallback := rpc.NewServer(facade)
	dispatcher := gateway.NewDispatcher(table, fallback.Handle)

	r := router.New(dispatcher, openSearchLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 60 * time.Second,
	}

	// Create a context that listens for interrupt and terminate signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if eventStore != nil && cfg.LogRetentionDays > 0 {
		go runRetention(ctx, eventStore, cfg.LogRetentionDays)
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(err.Error())
		}
	}()

	log.Println("API is running on", cfg.Port)

	// Block until a signal is received
	<-ctx.Done()

	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	if eventStore != nil {
		_ = eventStore.Close()
	}
}
