// Command polyterm discovers Polymarket events, filters them, and prints
// the results, along with wallet holdings and analytics lookups. It loads
// configuration, sets up logging and signal handling, and dispatches to
// one of the subcommands: browse, search, holdings, analytics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alanyoungcy/polyterm/internal/config"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: polyterm [-config path] <command> [flags]

commands:
  browse      list events from the catalog with optional filters
  search      keyword search with detail enrichment
  holdings    show open positions for the configured wallet
  analytics   show leaderboard performance for the configured wallet

run 'polyterm <command> -h' for command flags
`)
}

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	// Setup structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config",
			slog.String("path", *configPath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// Set log level from config.
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	command := flag.Arg(0)
	args := flag.Args()[1:]

	var runErr error
	switch command {
	case "browse":
		runErr = runBrowse(ctx, cfg, logger, args)
	case "search":
		runErr = runSearch(ctx, cfg, logger, args)
	case "holdings":
		runErr = runHoldings(ctx, cfg, logger, args)
	case "analytics":
		runErr = runAnalytics(ctx, cfg, logger, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		usage()
		os.Exit(2)
	}

	if runErr != nil {
		logger.Error("command failed",
			slog.String("command", command),
			slog.String("error", runErr.Error()),
		)
		fmt.Fprintf(os.Stderr, "polyterm %s: %v\n", command, runErr)
		os.Exit(1)
	}
}
