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

	"guestbook/internal/adapters/driven/boltstore"
	"guestbook/internal/adapters/driven/filestore"
	"guestbook/internal/adapters/driven/memstore"
	"guestbook/internal/adapters/driving/httpadapter"
	"guestbook/internal/assets"
	"guestbook/internal/config"
	"guestbook/internal/core/service/guestbook"
)

func main() {
	fmt.Println(assets.BannerString)
	log.Printf("Starting guestbook server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Configuration loaded: Server Address=%s", cfg.ServerAddr)

	// create the context
	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	store, err := newStore(appCtx, cfg)
	if err != nil {
		// an unreachable store is fatal at startup, not per-request recoverable
		log.Fatalf("FATAL: Failed to open record store: %v", err)
	}
	defer store.Close()

	if err := run(appCtx, cfg, store); err != nil {
		log.Fatalf("FATAL: Application run failed: %v", err)
	}

	log.Println("Server exiting gracefully...")
}

// newStore opens the record store the configuration selects. This is
// the only place in the program that knows which backend is active.
func newStore(appCtx context.Context, cfg *config.Config) (guestbook.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Println("INFO: Initialising in-memory store (entries will not survive restart).")
		return memstore.New(), nil

	case config.BackendFile:
		log.Printf("INFO: Initialising file-based store at %s.", cfg.DataFile)

		store, err := filestore.New(cfg.DataFile)
		if err != nil {
			return nil, err
		}

		log.Printf("INFO: File-based store detected, starting watcher.")
		if err := store.Watch(appCtx); err != nil {
			return nil, err
		}

		return store, nil

	case config.BackendBolt:
		log.Printf("INFO: Initialising BoltDB store at %s.", cfg.BoltPath)
		return boltstore.New(cfg.BoltPath)

	default:
		return nil, fmt.Errorf("unknown store backend: %v", cfg.StoreBackend)
	}
}

// setupSignalHandler configures a listener for OS signals to trigger a graceful shutdown.
func setupSignalHandler(cancelFunc context.CancelFunc) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM) // listen to OS interrupt signal

	// clean shutdown sequence
	go func() {
		<-quit
		log.Println("Shutdown signal received...")
		cancelFunc()
	}()
}

func run(appCtx context.Context, cfg *config.Config, store guestbook.Store) error {
	// repository, service and handler, wired once at process start
	repo := guestbook.NewRepository(store)
	guestbookSvc := guestbook.NewService(repo)
	apiHandler := httpadapter.NewHandler(guestbookSvc)

	// config the server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiHandler.SetupRoutes(cfg.EnableCORS),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// start the server
	go func() {
		log.Printf("Server starting on %s", cfg.ServerAddr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("ERROR: Server listen error: %v", err)
		}
	}()

	// listen for context cancellation
	<-appCtx.Done()
	log.Println("Context cancelled, initiating server shutdown.")

	// graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("FATAL: Server forced to shutdown: %v", err)
	}

	return nil
}
