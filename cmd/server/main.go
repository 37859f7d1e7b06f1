package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tableside/api/internal/config"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/events"
	"github.com/tableside/api/internal/logger"
	"github.com/tableside/api/internal/router"
	"github.com/tableside/api/internal/ws"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Info("connected to database")

	hub := ws.NewHub(log.Named("ws"))
	sinks := []events.Publisher{hub}
	if cfg.NatsURL != "" {
		nats, err := events.NewNATSPublisher(cfg.NatsURL)
		if err != nil {
			return err
		}
		defer nats.Close() //nolint:errcheck
		sinks = append(sinks, nats)
		log.Info("publishing order events to NATS", zap.String("url", cfg.NatsURL))
	}
	publisher := events.NewFanout(log.Named("events"), sinks...)

	// Shutdown waits for active requests, so long-lived streams are told to
	// finish as soon as it starts.
	streams, stopStreams := context.WithCancel(ctx)
	defer stopStreams()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(streams, cfg, log, database.New(pool), pool, hub, publisher),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(stopStreams)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("server stopped")
	return nil
}
