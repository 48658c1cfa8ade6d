/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/labconsensus/analysis"
	"github.com/humaidq/labconsensus/db"
	"github.com/humaidq/labconsensus/routes"
)

const shutdownTimeout = 10 * time.Second

// CmdServe starts the HTTP API.
var CmdServe = &cli.Command{
	Name:    "serve",
	Aliases: []string{"start", "run"},
	Usage:   "Start the HTTP API",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Value:   "8080",
			Sources: cli.EnvVars("PORT"),
			Usage:   "the web server port",
		},
		&cli.StringFlag{
			Name:    "database-url",
			Sources: cli.EnvVars("DATABASE_URL"),
			Usage:   "PostgreSQL connection string; analyses are not stored when unset",
		},
	}, engineFlags()...),
	Action: serve,
}

func serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := engineConfig(engineOptionsFrom(cmd))
	if err != nil {
		return err
	}

	cfg.Metrics = analysis.NewMetrics(prometheus.DefaultRegisterer)

	opts := routes.Options{Gatherer: prometheus.DefaultGatherer}

	if databaseURL := cmd.String("database-url"); databaseURL != "" {
		appLogger.Info("connecting to database")

		if err := db.Init(ctx, databaseURL); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		appLogger.Info("syncing database schema")

		if err := db.SyncSchema(ctx, nil); err != nil {
			return fmt.Errorf("failed to sync schema: %w", err)
		}

		store := db.NewAnalysisStore(db.GetPool())
		cfg.Store = store
		opts.Analyses = store
	} else {
		appLogger.Warn("no database configured, analyses will not be stored")
	}

	engine := analysis.NewEngine(cfg)
	opts.Engine = engine

	if len(cfg.Sources) == 0 {
		appLogger.Warn("no LLM configured, only deterministic endpoints are available")
	}

	port := cmd.String("port")

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", port),
		Handler:           routes.New(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Analyses wait on every reasoning source.
		WriteTimeout: cfg.SourceTimeout + 30*time.Second,
		ErrorLog:     requestStdLogger,
	}

	errCh := make(chan error, 1)

	go func() {
		appLogger.Info("starting web server", "port", port, "biomarkers", engine.Catalog().Len(), "sources", engine.SourceIDs())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server failed: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	appLogger.Info("shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}

	return nil
}
