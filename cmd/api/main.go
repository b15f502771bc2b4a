// @title Virtual Pet API
// @version 1.0
// @description Mascotas virtuales: rasgos determinísticos, degradación de stats y recuperación.
// @BasePath /
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"virtual-pet/internal/adapters/auth/remote"
	pg "virtual-pet/internal/adapters/storage/postgres"
	"virtual-pet/internal/config"
	"virtual-pet/internal/domain/stats"
	"virtual-pet/internal/platform/logger"
	"virtual-pet/internal/router"
	"virtual-pet/internal/scheduler"
	"virtual-pet/internal/server"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", os.Getenv("VPET_CONFIG"), "path to YAML config (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "virtual-pet: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: logger.ParseFormat(cfg.Logging.Format),
		App:    cfg.Logging.App,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts := router.Options{
		Logger:  log,
		Engine:  stats.NewEngine(cfg.Balance.Rates()),
		Swagger: cfg.Server.Swagger,

		SweepConcurrency: cfg.Sweeper.Concurrency,
	}

	if cfg.Database.DSN != "" {
		db, err := pg.Open(cfg.Database.DSN, pg.PoolOptions{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
		opts.DB = db
		log.Info("storage: postgres")
	} else {
		log.Warn("storage: in-memory, data is lost on restart")
	}

	// sin verifier => modo dev con X-Debug-User-ID
	if cfg.Auth.Enabled() {
		v, err := remote.NewVerifier(remote.Config{
			BaseURL:      cfg.Auth.BaseURL,
			APIKey:       cfg.Auth.APIKey,
			APIKeyHeader: cfg.Auth.APIKeyHeader,
			VerifyPath:   cfg.Auth.VerifyPath,
			Timeout:      cfg.Auth.Timeout,
		}, log)
		if err != nil {
			return fmt.Errorf("auth verifier: %w", err)
		}
		opts.AuthVerifier = v
	} else {
		log.Warn("auth: dev mode, X-Debug-User-ID is trusted")
	}

	app := router.New(opts)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	lc := server.NewLifecycle(log)
	lc.Add("http", server.NewHTTPService(srv, cfg.Server.ShutdownTimeout, log))
	if cfg.Sweeper.Enabled {
		lc.Add("sweeper", scheduler.NewSweeper(app.Pets, cfg.Sweeper.Interval, scheduler.WithLogger(log)))
	}

	log.Info("virtual-pet starting", zap.String("addr", srv.Addr))
	return lc.Run(context.Background())
}
