package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okatyev/catalogwatch/internal/bot"
	"github.com/okatyev/catalogwatch/internal/config"
	"github.com/okatyev/catalogwatch/internal/parser"
	"github.com/okatyev/catalogwatch/internal/repository/sqlite"
	"github.com/okatyev/catalogwatch/internal/services/checker"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to init repository: %v", err)
	}
	defer repo.Close()

	snapshotParser := parser.NewParser(logger, cfg.URL)
	updateChecker := checker.NewChecker(logger, snapshotParser, repo, cfg.CatalogID)

	watchBot, err := bot.NewBot(logger, repo, cfg.Tg.Token, cfg.Tg.Timeout)
	if err != nil {
		log.Fatalf("Failed to init bot: %v", err)
	}

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Start the bot in a goroutine to allow main to listen for signals.
	go watchBot.Start()

	// Run catalog checks on a fixed interval until the context is canceled.
	go runCheckLoop(ctx, logger, updateChecker, watchBot, cfg.CatalogID, cfg.CheckInterval)

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	// Stop the bot gracefully.
	watchBot.Stop()

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// runCheckLoop performs one check immediately and then on every tick,
// forwarding any detected changes to the subscribed chats.
func runCheckLoop(
	ctx context.Context,
	logger *slog.Logger,
	updateChecker checker.Interface,
	watchBot *bot.Bot,
	catalogID string,
	interval time.Duration,
) {
	runCheck(ctx, logger, updateChecker, watchBot, catalogID)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCheck(ctx, logger, updateChecker, watchBot, catalogID)
		}
	}
}

func runCheck(
	ctx context.Context,
	logger *slog.Logger,
	updateChecker checker.Interface,
	watchBot *bot.Bot,
	catalogID string,
) {
	diff, err := updateChecker.CheckForUpdates(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Catalog check failed", "catalog_id", catalogID, "error", err)
		return
	}

	if err = watchBot.Notify(ctx, catalogID, diff); err != nil {
		logger.ErrorContext(ctx, "Failed to notify subscribers", "catalog_id", catalogID, "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
