package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/broncospizza/orders-api/internal/api"
	"github.com/broncospizza/orders-api/internal/config"
	"github.com/broncospizza/orders-api/internal/pkg/health"
	"github.com/broncospizza/orders-api/internal/pkg/logger"
	"github.com/broncospizza/orders-api/internal/service"
	"github.com/broncospizza/orders-api/internal/store"
)

// App holds all the core components of the application.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	db     *sql.DB
	server *api.Server
	hc     *health.DBHealthChecker
}

// New wires the whole service together: config, logger, pool, store,
// service (with the caching decorator), health checker and server. The
// schema is initialized and seeded here, before any traffic is served.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create a logger: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	dbStore := store.NewDBStore(db, appLogger)
	if err := dbStore.InitSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	orderService := service.NewCachingOrderService(
		service.New(dbStore, appLogger),
		appLogger,
		cfg.Cache.EntryCountCap,
		cfg.Cache.EntrySizeCap,
	)

	hc := health.NewDBHealthChecker(db, appLogger, cfg.Health.CheckInterval, cfg.Health.CheckTimeout)
	server := api.NewServer(orderService, hc, appLogger, cfg.HTTPServer)

	return &App{
		cfg:    cfg,
		logger: appLogger,
		db:     db,
		server: server,
		hc:     hc,
	}, nil
}

// Run starts the server and the health checker and blocks until a
// shutdown signal arrives, then drains in-flight requests before
// releasing the pool.
func (a *App) Run() {
	defer func() {
		if err := a.logger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v\n", err)
		}
		a.db.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.hc.Start(ctx)
	go func() {
		if err := a.server.Start(":" + a.cfg.HTTPServer.Port); err != nil {
			a.logger.Fatalw("server failed", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	a.logger.Infow("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.ShutdownTimeout)
	defer shutdownCancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Errorw("server shutdown failed", "error", err)
	}
}
