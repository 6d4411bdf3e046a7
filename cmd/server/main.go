package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/config"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/db"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/logger"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/persistence"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/store"
	"github.com/joho/godotenv"
)

var cli struct {
	MigrateOnly bool   `help:"Run DB migrations and exit."`
	SeedOnly    bool   `help:"Run DB seed and exit."`
	EnvFile     string `help:"Environment file to load." default:".env" type:"path"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("studio-server"),
		kong.Description("Backend for the photo and video studio dashboard."),
		kong.UsageOnError(),
	)

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load(cli.EnvFile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Dir: cfg.Log.Dir, Dev: cfg.App.Dev}); err != nil {
		logger.Fatal("logger setup failed", "error", err)
	}

	conn, err := db.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if cli.MigrateOnly {
		if err := db.Migrate(conn, cfg.Database.Driver, cfg.Database.URL(), true); err != nil {
			logger.Fatal("migration failed", "error", err)
		}
		logger.Info("migrations completed")
		return
	}
	if cli.SeedOnly {
		if err := db.Seed(conn); err != nil {
			logger.Fatal("seeding failed", "error", err)
		}
		return
	}

	if err := db.Migrate(conn, cfg.Database.Driver, cfg.Database.URL(), cfg.App.Migrations); err != nil {
		logger.Fatal("migration failed", "error", err)
	}
	if cfg.App.Seed {
		if err := db.Seed(conn); err != nil {
			logger.Fatal("seeding failed", "error", err)
		}
	}

	stores := store.NewStores(store.GormTables(conn, persistence.BreakerSettings{
		MaxRequests: cfg.Breaker.MaxRequests,
		Timeout:     cfg.Breaker.Timeout,
		MaxFailures: cfg.Breaker.MaxFailures,
	}))
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := stores.LoadAll(loadCtx); err != nil {
		// The API still serves; POST /api/refresh retries the load.
		logger.Error("initial load failed", "error", err)
	}
	cancelLoad()

	sqlDB, err := conn.DB()
	if err != nil {
		logger.Fatal("database handle unavailable", "error", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(NewApp(stores, sqlDB, cfg.App.RevenueTarget)),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "dev", cfg.App.Dev, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("closing database", "error", err)
	}
	logger.Info("server stopped gracefully")
}
