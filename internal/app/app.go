package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	gofirestore "cloud.google.com/go/firestore"

	"github.com/atlasvoyages/catalog/internal/catalog"
	"github.com/atlasvoyages/catalog/internal/config"
	"github.com/atlasvoyages/catalog/internal/httpserver"
	"github.com/atlasvoyages/catalog/internal/httpserver/deps"
	"github.com/atlasvoyages/catalog/internal/logger"
	"github.com/atlasvoyages/catalog/internal/scheduler"
	"github.com/atlasvoyages/catalog/internal/store/firestore"
	"github.com/atlasvoyages/catalog/internal/version"
)

type App struct {
	cfg             *config.Config
	logger          logger.Logger
	server          *httpserver.Server
	firestoreClient *gofirestore.Client
	catalog         *catalog.Service
	warmer          *scheduler.CacheWarmer
	sweeper         *scheduler.CacheSweeper
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Connect to Firestore early - fail fast if unavailable
	loggerClient.Infof("Connecting to Firestore project %s", cfg.ProjectID)
	client, err := firestore.Connect(context.Background(), firestore.ConnectOptions{
		ProjectID:       cfg.ProjectID,
		CredentialsFile: cfg.CredentialsFile,
	})
	if err != nil {
		loggerClient.Errorf("Failed to connect to Firestore: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Firestore client initialized")

	store := firestore.NewStore(client, firestore.Options{
		ToursCollection:      cfg.ToursCollection,
		CategoriesCollection: cfg.CategoriesCollection,
		QueryTimeout:         cfg.QueryTimeout,
	})

	svc := catalog.New(store, loggerClient, catalog.Config{
		CategoryTTL: cfg.CategoryCacheTTL,
		FeaturedTTL: cfg.FeaturedCacheTTL,
		DetailTTL:   cfg.DetailCacheTTL,
	})

	// Manual refresh trigger shared by the endpoint and the warmer.
	refreshTrigger := make(chan struct{}, 1)

	warmer := scheduler.NewCacheWarmer(svc, loggerClient, cfg.WarmInterval, refreshTrigger)
	sweeper := scheduler.NewCacheSweeper(svc, loggerClient, cfg.SweepInterval)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		Catalog:         svc,
		Warmer:          warmer,
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
		AdminCIDRs:      cfg.AdminCIDRs,
		TrustProxy:      cfg.TrustProxy,
		RefreshTrigger:  refreshTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:             cfg,
		logger:          loggerClient,
		server:          server,
		firestoreClient: client,
		catalog:         svc,
		warmer:          warmer,
		sweeper:         sweeper,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Catalog v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Catalog %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start cache warmer (primes the list caches and keeps them fresh)
	a.warmer.Start(ctx)
	a.logger.Info("cache warmer started",
		logger.Duration("interval", a.cfg.WarmInterval))

	// Start detail cache sweeper
	a.sweeper.Start(ctx)
	a.logger.Info("cache sweeper started",
		logger.Duration("interval", a.cfg.SweepInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.warmer.Stop()
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.firestoreClient != nil {
		if err := a.firestoreClient.Close(); err != nil {
			a.logger.Warnf("failed to close firestore client: %v", err)
		} else {
			a.logger.Info("✅ Firestore client closed cleanly")
		}
	}

	a.logger.Info("✅ Catalog stopped cleanly")
	return nil
}
