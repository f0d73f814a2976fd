package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mygiftflora/storefront/internal/admin"
	"github.com/mygiftflora/storefront/internal/carousel"
	"github.com/mygiftflora/storefront/internal/cartstore"
	"github.com/mygiftflora/storefront/internal/catalog"
	"github.com/mygiftflora/storefront/internal/handlers"
	"github.com/mygiftflora/storefront/internal/middleware"
	"github.com/mygiftflora/storefront/internal/platform/config"
	"github.com/mygiftflora/storefront/internal/platform/observability"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("storefront exited", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	snapshots, closeSnapshots, err := newSnapshotStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSnapshots()

	manager, err := cartstore.NewManager(cartstore.ManagerDeps{
		Snapshots: snapshots,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	catalogClient, err := catalog.NewClient(catalog.Deps{
		BaseURL:        cfg.Backend.BaseURL,
		UploadsBaseURL: cfg.Backend.UploadsBaseURL,
		Timeout:        cfg.Backend.FetchTimeout,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	adminClient, err := admin.NewClient(admin.Deps{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.FetchTimeout,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	signingKey := cfg.Session.SigningKey
	if signingKey == "" {
		signingKey, err = ephemeralKey()
		if err != nil {
			return err
		}
		logger.Warn("session signing key not configured, sessions will not survive a restart")
	}
	session, err := middleware.NewSession(middleware.SessionDeps{
		SigningKey: signingKey,
		Secure:     cfg.Session.Secure,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	bannerCarousel := carousel.New(0, 1)
	rotator, err := carousel.NewRotator(carousel.RotatorDeps{
		Carousel: bannerCarousel,
		Interval: cfg.Home.RotateInterval,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	rotator.Start(ctx)
	defer rotator.Stop()

	router, err := handlers.NewRouter(handlers.Deps{
		Logger:         logger,
		Session:        session,
		Manager:        manager,
		Catalog:        catalogClient,
		Admin:          adminClient,
		BannerCarousel: bannerCarousel,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newSnapshotStore(cfg config.Config, logger *zap.Logger) (cartstore.SnapshotStore, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Info("using in-memory snapshot store")
		return cartstore.NewMemoryStore(), func() {}, nil
	}

	store, err := cartstore.NewRedisStore(cfg.Redis.Addr)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("using redis snapshot store", zap.String("addr", cfg.Redis.Addr))
	return store, func() { _ = store.Close() }, nil
}

func ephemeralKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
