package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-contracts/auth"
	"github.com/diewo77/go-contracts/internal/config"
	"github.com/diewo77/go-contracts/internal/db"
	"github.com/diewo77/go-contracts/internal/logx"
	"github.com/diewo77/go-contracts/internal/pdf"
	"github.com/diewo77/go-contracts/internal/sigimage"
	"github.com/diewo77/go-contracts/internal/telemetry"
	"github.com/diewo77/go-contracts/internal/wizard"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logx.New(cfg.Telemetry.ServiceName, cfg.App.Dev)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	dbConn, err := db.Open(cfg.Database, cfg.App.Dev, logger)
	if err != nil {
		return err
	}

	// Handle migrate-only flag
	if *migrateOnlyFlag {
		if err := db.Migrate(dbConn, cfg.Database, true); err != nil {
			return err
		}
		logger.Info("migrations completed")
		return nil
	}

	// Handle seed-only flag
	if *seedOnlyFlag {
		if err := db.Seed(dbConn); err != nil {
			return err
		}
		logger.Info("seeding completed")
		return nil
	}

	if err := db.Migrate(dbConn, cfg.Database, cfg.App.Migrations); err != nil {
		return err
	}
	if err := db.Seed(dbConn); err != nil {
		return err
	}

	admin, err := auth.NewAdmin(cfg.Admin.Password, cfg.Admin.PasswordHash, cfg.Admin.SessionSecret)
	if err != nil {
		return err
	}

	store, closeStore := newWizardStore(ctx, cfg.Redis, logger)
	defer closeStore()

	routerCfg := NewRouterConfig(Deps{
		DB:         dbConn,
		Logger:     logger,
		Admin:      admin,
		Store:      store,
		Renderer:   newRenderer(cfg.Branding, logger),
		SessionTTL: cfg.Redis.SessionTTL,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      otelhttp.NewHandler(NewApp(routerCfg, logger), cfg.Telemetry.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "dev", cfg.App.Dev, "db", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received")

	// Graceful shutdown with timeout
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}

// newWizardStore uses Redis when configured and reachable, else process memory.
func newWizardStore(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (wizard.Store, func()) {
	if cfg.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		err := rdb.Ping(pctx).Err()
		if err == nil {
			logger.Info("wizard sessions in redis", "redis_addr", cfg.Addr)
			return wizard.NewRedisStore(rdb, cfg.SessionTTL, "wizard"), func() { _ = rdb.Close() }
		}
		logger.Warn("redis unavailable, using in-memory wizard sessions", "redis_addr", cfg.Addr, "err", err)
		_ = rdb.Close()
	}
	mem := wizard.NewMemoryStore(cfg.SessionTTL)
	go mem.RunSweeper(ctx, time.Minute)
	logger.Info("wizard sessions in memory", "ttl", cfg.SessionTTL)
	return mem, func() {}
}

// newRenderer applies branding and loads the business signature. A missing
// signature asset only removes that image from documents.
func newRenderer(b config.BrandingConfig, logger *slog.Logger) *pdf.Renderer {
	r := pdf.NewRenderer(pdf.Branding{
		Brand:           b.Brand,
		Subtitle:        b.Subtitle,
		BusinessCaption: b.BusinessCaption,
	}, logger)
	if b.BusinessSignaturePath == "" {
		return r
	}
	img, err := sigimage.Load(b.BusinessSignaturePath)
	if err != nil {
		logger.Warn("business signature not loaded", "path", b.BusinessSignaturePath, "err", err)
		return r
	}
	r.BusinessSignature = img
	return r
}
