package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"resume-match/internal/app"
	"resume-match/internal/config"
	"resume-match/internal/logger"
	"resume-match/internal/scraper"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	targetsFile := flag.String("targets", "", "targets file (defaults to SCRAPER_TARGETS_FILE)")
	only := flag.String("target", "", "scrape only the named target")
	pages := flag.Int("pages", 0, "listing pages per target (defaults to SCRAPER_PAGES)")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *targetsFile != "" {
		cfg.Scraper.TargetsFile = *targetsFile
	}
	if *pages > 0 {
		cfg.Scraper.Pages = *pages
	}

	zl, err := logger.New(cfg.App.LogJSON, cfg.App.LogDebug)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, zl)
	if err != nil {
		zl.Error("failed to init container", zap.Error(err))
		return 1
	}
	defer func() {
		_ = c.Close()
	}()

	if err := app.Migrate(ctx, c); err != nil {
		zl.Error("migration failed", zap.Error(err))
		return 1
	}

	targets := c.Targets
	if name := strings.TrimSpace(*only); name != "" {
		targets = filterTargets(targets, name)
	}
	if len(targets) == 0 {
		zl.Error("no scraper targets configured", zap.String("file", cfg.Scraper.TargetsFile))
		return 1
	}

	summaries, err := c.Scraper.Run(ctx, targets)
	if err != nil {
		zl.Error("scrape interrupted", zap.Error(err))
	}

	total := 0
	for _, s := range summaries {
		total += s.Stored
	}
	zl.Info("scrape finished", zap.Int("targets", len(summaries)), zap.Int("stored", total))
	if err != nil {
		return 1
	}
	return 0
}

func filterTargets(in []scraper.Target, name string) []scraper.Target {
	for _, t := range in {
		if strings.EqualFold(t.Name, name) {
			return []scraper.Target{t}
		}
	}
	return nil
}
