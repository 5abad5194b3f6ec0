package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pantry-sync-backend/config"
	"pantry-sync-backend/internal/api"
	"pantry-sync-backend/internal/auth"
	"pantry-sync-backend/internal/db"
	"pantry-sync-backend/internal/imaging"
	"pantry-sync-backend/internal/listpush"
	"pantry-sync-backend/internal/normalize"
	"pantry-sync-backend/internal/notification"
	"pantry-sync-backend/internal/openfoodfacts"
	"pantry-sync-backend/internal/pantry"
	"pantry-sync-backend/internal/scan"
	"pantry-sync-backend/internal/skylight"
	"pantry-sync-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "pantryd ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	switch {
	case err == nil:
		logger.Printf("configuration loaded successfully from %s", configPath)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		logger.Printf("no configuration at %s, using defaults", configPath)
		cfg = config.Default()
	default:
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	if !cfg.Push.PushEnabled() {
		logger.Println("VAPID keys not configured; push notifications are disabled")
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	normalizer := normalize.New()
	reconciler := pantry.NewReconciler(appStore)
	lists := skylight.NewListCache(skylight.NewClient(cfg.Skylight), cfg.Skylight.CacheTTL)
	notifier := notification.NewNotifier(appStore.DB(), cfg.Push)

	pool := listpush.NewWorkerPool(cfg.WorkerPool.Size, reconciler, lists, notifier)
	pool.Start(ctx)

	handler := api.NewHandler(api.Deps{
		DB:          appStore.DB(),
		Pantry:      reconciler,
		Lookup:      openfoodfacts.NewLookup(openfoodfacts.NewClient(cfg.OpenFoodFacts), normalizer, cfg.Server.CacheTTL),
		Scanner:     scan.NewService(appStore, imaging.NewProcessor(cfg.Imaging), normalizer),
		Credentials: auth.NewCredentialStore(appStore),
		Lists:       lists,
		Pusher:      pool,
		Push:        cfg.Push,
	})

	router := api.NewRouter(handler, cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}
	cancel()

	logger.Println("Server gracefully stopped")
}
