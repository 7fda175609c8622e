package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erauner12/showcase/internal/chat"
	"github.com/erauner12/showcase/internal/config"
	"github.com/erauner12/showcase/internal/db"
	"github.com/erauner12/showcase/internal/httpapi"
	"github.com/erauner12/showcase/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const version = "0.1.0"

//go:embed catalogue.json
var defaultCatalogue []byte

var (
	configPath string
	httpAddr   string
	dataDir    string
	staticDir  string
	logLevel   string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "showcase-server",
		Short:         "Serve the task manager, storefront and assistant APIs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			config.SetupLogging(cfg, "showcase-api")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to configuration file (TOML)")
	cmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address (overrides config)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the collection documents")
	cmd.Flags().StringVar(&staticDir, "static-dir", "", "Directory with the front-end pages")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	return cmd
}

// loadConfig loads the configuration from file and environment, then
// applies CLI flag overrides before validation
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if httpAddr != "" {
		cfg.Server.HTTPAddr = httpAddr
	}
	if dataDir != "" {
		cfg.Server.DataDir = dataDir
	}
	if staticDir != "" {
		cfg.Server.StaticDir = staticDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.ValidateServer(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	backend, closeBackend, err := openBackend(ctx, cfg.Server)
	if err != nil {
		return err
	}
	defer closeBackend()

	if _, err := storage.Seed(ctx, backend, storage.ProductsCollection, defaultCatalogue); err != nil {
		return fmt.Errorf("failed to seed catalogue: %w", err)
	}
	if err := storage.InitCollections(ctx, backend, storage.TasksCollection, storage.CartCollection); err != nil {
		return fmt.Errorf("failed to initialise collections: %w", err)
	}

	srv := httpapi.NewServer(backend, chat.NewService(newResponder(ctx, cfg.Chat)))
	srv.StaticDir = cfg.Server.StaticDir
	srv.RateLimitConfig = httpapi.RateLimitInfo{
		WindowSeconds: cfg.Server.RateLimit.WindowSeconds,
		MaxRequests:   cfg.Server.RateLimit.MaxRequests,
		Burst:         cfg.Server.RateLimit.Burst,
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // assistant replies can be slow
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.HTTPAddr).Str("version", version).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	// Graceful shutdown on SIGINT/SIGTERM or server failure
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown error")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// openBackend picks Postgres when a database URL is configured and the
// data directory otherwise
func openBackend(ctx context.Context, cfg config.ServerConfig) (storage.Backend, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		backend := db.NewDocumentBackend(pool)
		if err := backend.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to migrate: %w", err)
		}
		log.Info().Msg("storing collections in postgres")
		return backend, pool.Close, nil
	}

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	log.Info().Str("dir", cfg.DataDir).Msg("storing collections as JSON files")
	return storage.NewFileBackend(fs, cfg.DataDir), func() {}, nil
}

// newResponder returns the Gemini responder, or nil when no key is
// configured so the assistant answers with a configuration error
func newResponder(ctx context.Context, cfg config.ChatConfig) chat.Responder {
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, assistant disabled")
		return nil
	}
	r, err := chat.NewGeminiResponder(ctx, cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		log.Error().Err(err).Msg("failed to create assistant client, assistant disabled")
		return nil
	}
	log.Info().Str("model", r.Name()).Msg("assistant enabled")
	return r
}
