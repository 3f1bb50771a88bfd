package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/career-coach/internal/app"
	"github.com/riskibarqy/career-coach/internal/config"
	"github.com/riskibarqy/career-coach/internal/observability"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

// insight-refresh regenerates every industry insight whose next update time
// has passed. It is meant to run from a scheduler such as cron.
func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}

func run() (int, error) {
	cfg, err := config.Load()
	if err != nil {
		return 1, fmt.Errorf("load config: %w", err)
	}

	workers := flag.Int("workers", cfg.InsightRefreshWorkers, "concurrent generation calls")
	limit := flag.Int("limit", cfg.InsightRefreshLimit, "max insights refreshed in one run")
	timeout := flag.Duration("timeout", 15*time.Minute, "overall run deadline")
	flag.Parse()

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}).
		With("service", cfg.ServiceName, "job", "insight-refresh")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return 1, fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownUptrace(ctx)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	container, err := app.New(ctx, cfg, logger)
	if err != nil {
		return 1, fmt.Errorf("build app: %w", err)
	}
	defer func() { _ = container.Close() }()

	result, err := container.InsightRefresh.RefreshStale(ctx, usecase.RefreshInput{
		Now:        time.Now().UTC(),
		MaxWorkers: *workers,
		Limit:      *limit,
	})
	if err != nil {
		return 1, fmt.Errorf("refresh insights: %w", err)
	}

	out, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
	if err != nil {
		return 1, fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))

	if result.FailedCount > 0 {
		return 2, nil
	}
	return 0, nil
}
