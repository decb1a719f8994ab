package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"motoshop-be/internal/admin"
	"motoshop-be/internal/config"
	"motoshop-be/internal/db"
	"motoshop-be/internal/logger"
	"motoshop-be/internal/media"
	"motoshop-be/internal/metrics"
	"motoshop-be/internal/middleware"
	"motoshop-be/internal/taxonomy"
	"motoshop-be/internal/transport"
	"motoshop-be/internal/wishlist"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(3 * time.Minute)
	go limiter.Run(ctx, time.Minute)

	handler := newServerWithLimiter(cfg, database, limiter)

	logger.L().Info("catalog server running", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
	return startServerFunc(ctx, ":"+cfg.AppPort, handler)
}

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	return newServerWithLimiter(cfg, database, nil)
}

func newServerWithLimiter(cfg *config.Config, database *sql.DB, limiter *middleware.RateLimiter) http.Handler {
	repo := taxonomy.NewRepository(database)
	store := taxonomy.NewService(repo, iconUploader(cfg))
	queries := taxonomy.NewQueryService(repo)

	sessionSecret := cfg.SessionSecret
	if sessionSecret == "" {
		logger.L().Warn("SESSION_SECRET is empty, wishlist cookies are signed with JWT_SECRET")
		sessionSecret = cfg.JWTSecret
	}

	h := transport.NewHandler(
		store,
		queries,
		admin.NewEditor(store),
		wishlist.NewCookieStore([]byte(sessionSecret), cfg.IsProduction()),
		metrics.NewRegistry(),
		database,
	)

	return transport.NewRouter(h, transport.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		JWTSecret:   []byte(cfg.JWTSecret),
		Limiter:     limiter,
	})
}

func iconUploader(cfg *config.Config) taxonomy.IconUploader {
	if cfg.CloudinaryCloudName == "" {
		logger.L().Warn("cloudinary is not configured, icon uploads are disabled")
		return media.Disabled()
	}

	store, err := media.NewCloudinaryIconStore(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		cfg.CloudinaryFolder,
	)
	if err != nil {
		logger.L().Error("cloudinary init failed, icon uploads are disabled", zap.Error(err))
		return media.Disabled()
	}
	return store
}

// startServer serves until ctx is cancelled, then drains in-flight requests
// for up to shutdownTimeout.
func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down catalog server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
