package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/runger/shifu/internal/config"
	"github.com/runger/shifu/internal/practice"
	"github.com/runger/shifu/internal/recommend"
	"github.com/runger/shifu/internal/server"
	"github.com/runger/shifu/internal/stats"
	"github.com/runger/shifu/internal/storage"
)

var serveConfigFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "config file path (default ~/.shifu/config.yaml)")
}

func runServe(ctx context.Context) error {
	// Best-effort .env loading before config reads the environment.
	_ = godotenv.Load()

	cfgPath := serveConfigFile
	if cfgPath == "" {
		cfgPath = config.DefaultConfigFile()
	}
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	// The completion credential has no safe default.
	if cfg.AI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}

	store, err := storage.NewSQLiteStore(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	completer := recommend.NewOpenAIClient(recommend.OpenAIConfig{
		APIKey:    cfg.AI.APIKey,
		Model:     cfg.AI.Model,
		MaxTokens: cfg.AI.MaxTokens,
		BaseURL:   cfg.AI.BaseURL,
		Timeout:   time.Duration(cfg.AI.TimeoutSecs) * time.Second,
	})
	recommender := recommend.NewRecommender(completer, recommend.FixedRetry{
		MaxAttempts: cfg.AI.MaxAttempts,
		Delay:       time.Duration(cfg.AI.RetryDelayMs) * time.Millisecond,
	}, logger)

	handler := server.NewHandler(server.HandlerDependencies{
		Store:       store,
		Service:     practice.NewService(store, logger),
		Aggregator:  stats.NewAggregator(store, cfg.AI.MinAttempts),
		Recommender: recommender,
		Logger:      logger,
	})

	return server.Run(ctx, cfg.Server.ListenAddr, handler)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
