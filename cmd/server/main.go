package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"resume-match/internal/app"
	"resume-match/internal/config"
	"resume-match/internal/scraper"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap, cleanup, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to bootstrap app: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	c := bootstrap.Container
	logger := c.Log

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		logger.Fatal("invalid HTTP port", zap.Error(err))
	}

	go c.Hub.Run(ctx)

	sched := scraper.NewScheduler(c.Scraper, c.Targets, logger.Named("scheduler"))
	if err := sched.Start(ctx, cfg.Scraper.Schedule); err != nil {
		logger.Fatal("scraper schedule", zap.Error(err))
	}
	defer sched.Stop()

	if err := serve(ctx, bootstrap.Fiber, addr, logger); err != nil {
		logger.Error("server error", zap.Error(err))
	}
}

// serve listens on addr until the listener fails or ctx is done, then shuts
// the app down.
func serve(ctx context.Context, f *fiber.App, addr string, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", addr))
		errCh <- f.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return f.ShutdownWithContext(shutdownCtx)
	}
}
