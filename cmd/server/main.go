package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hoanghai1803/newsdesk/internal/ai"
	"github.com/hoanghai1803/newsdesk/internal/api"
	"github.com/hoanghai1803/newsdesk/internal/article"
	"github.com/hoanghai1803/newsdesk/internal/config"
	"github.com/hoanghai1803/newsdesk/internal/logger"
	"github.com/hoanghai1803/newsdesk/internal/market"
	"github.com/hoanghai1803/newsdesk/internal/storage"
	"github.com/hoanghai1803/newsdesk/internal/transform"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Log)

	providers, images := buildProviders(cfg.AI)
	if len(providers) == 0 {
		slog.Warn("no AI provider API key configured, every generation endpoint will fail")
	}

	ratings := buildRatingsSource(cfg.Market)

	store, closeStore, err := openUsageStore(cfg.Usage)
	if err != nil {
		slog.Error("failed to open usage log", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	gen := transform.NewGenerator(transform.Options{
		Providers:       providers,
		DefaultProvider: cfg.AI.Provider,
		Images:          images,
		Articles:        article.NewExtractor(time.Duration(cfg.Article.FetchTimeoutSeconds) * time.Second),
		Ratings:         ratings,
		LookbackDays:    cfg.Market.LookbackDays,
		MaxWords:        cfg.Article.MaxWords,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(gen, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			closeStore()
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}
}

// buildProviders constructs every provider that has an API key. The OpenAI
// provider doubles as the image generator.
func buildProviders(cfg config.AIConfig) ([]ai.Provider, ai.ImageGenerator) {
	var (
		providers []ai.Provider
		images    ai.ImageGenerator
	)

	candidates := []ai.ProviderConfig{
		{Provider: ai.ProviderOpenAI, APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel, ImageModel: cfg.ImageModel, TimeoutSec: cfg.TimeoutSeconds},
		{Provider: ai.ProviderAnthropic, APIKey: cfg.AnthropicAPIKey, Model: cfg.AnthropicModel, TimeoutSec: cfg.TimeoutSeconds},
	}
	for _, pc := range candidates {
		if pc.APIKey == "" {
			continue
		}
		p, err := ai.NewProvider(pc)
		if err != nil {
			slog.Error("failed to create AI provider", "provider", pc.Provider, "error", err)
			continue
		}
		providers = append(providers, p)
		if ig, ok := p.(ai.ImageGenerator); ok && images == nil {
			images = ig
		}
		slog.Info("AI provider configured", "provider", p.Name(), "model", p.Model())
	}

	return providers, images
}

// buildRatingsSource returns the configured market-data source, or nil when
// no API key is set.
func buildRatingsSource(cfg config.MarketConfig) market.Source {
	if cfg.APIKey == "" {
		slog.Warn("no market data API key configured, analyst-ratings will fail", "provider", cfg.Provider)
		return nil
	}

	var src market.Source
	switch cfg.Provider {
	case "finnhub":
		src = market.NewFinnhubSource(cfg.APIKey)
	default:
		src = market.NewRESTSource(cfg.APIKey, cfg.BaseURL, 30*time.Second)
	}
	slog.Info("market data source configured", "provider", src.Name(), "lookback_days", cfg.LookbackDays)
	return src
}

// openUsageStore opens and migrates the usage log. It returns a nil store and
// a no-op closer when the log is disabled.
func openUsageStore(cfg config.UsageConfig) (*storage.Store, func(), error) {
	if !cfg.Enabled {
		slog.Info("usage log disabled")
		return nil, func() {}, nil
	}

	db, err := storage.OpenDatabase(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	slog.Info("usage log enabled", "path", cfg.DatabasePath)
	store := storage.NewStore(db)
	return store, func() { store.Close() }, nil
}
