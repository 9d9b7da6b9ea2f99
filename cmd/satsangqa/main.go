package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/sanjayganatra/satsang-qa-portal/internal/ai"
	"github.com/sanjayganatra/satsang-qa-portal/internal/config"
	"github.com/sanjayganatra/satsang-qa-portal/internal/corpus"
	"github.com/sanjayganatra/satsang-qa-portal/internal/embedcache"
	"github.com/sanjayganatra/satsang-qa-portal/internal/handler"
	"github.com/sanjayganatra/satsang-qa-portal/internal/middleware"
	"github.com/sanjayganatra/satsang-qa-portal/internal/schedule"
	"github.com/sanjayganatra/satsang-qa-portal/internal/search"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "satsangqa",
		Short: "satsang q/a portal backend",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the search server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			_ = godotenv.Load()
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func embedderArgs(provider string, cfg *config.Config) interface{} {
	switch provider {
	case "local":
		return cfg.AI.Local
	case "openai":
		return ai.OpenAIConfig{APIKey: cfg.AI.APIKey, Model: cfg.AI.EmbedModel}
	default:
		return ai.GeminiConfig{APIKey: cfg.AI.APIKey, Model: cfg.AI.EmbedModel}
	}
}

func fallbackArgs(fb config.FallbackAIConfig) interface{} {
	switch fb.Provider {
	case "openai":
		return ai.OpenAIConfig{APIKey: fb.APIKey, BaseURL: fb.BaseURL, Model: fb.Model}
	case "openrouter":
		return ai.OpenRouterConfig{APIKey: fb.APIKey, BaseURL: fb.BaseURL}
	default:
		return ai.GeminiConfig{APIKey: fb.APIKey, Model: fb.Model}
	}
}

func buildEmbedder(cfg *config.Config) (ai.Embedder, error) {
	primary, err := ai.NewEmbedder(cfg.AI.Provider, embedderArgs(cfg.AI.Provider, cfg))
	if err != nil {
		return nil, fmt.Errorf("init embedding provider: %w", err)
	}
	entries := []ai.EmbedderEntry{{Name: cfg.AI.Provider, Embedder: primary}}
	for _, fb := range cfg.AI.Fallbacks {
		if fb.Provider == "openrouter" {
			continue // generation-only
		}
		embedder, err := ai.NewEmbedder(fb.Provider, fallbackArgs(fb))
		if err != nil {
			return nil, fmt.Errorf("init fallback embedding provider %s: %w", fb.Provider, err)
		}
		entries = append(entries, ai.EmbedderEntry{Name: fb.Provider, Embedder: embedder})
	}
	return embedcache.WrapQueryCache(ai.NewGroupEmbedder(entries), cfg.AI.QueryCacheSize, time.Hour), nil
}

func buildBridge(cfg *config.Config) (*search.Bridge, error) {
	var entries []ai.GeneratorEntry
	if cfg.AI.APIKey != "" && cfg.AI.Provider != "local" {
		provider, err := ai.NewProvider(cfg.AI.Provider, embedderArgs(cfg.AI.Provider, cfg))
		if err != nil {
			return nil, fmt.Errorf("init translation provider: %w", err)
		}
		entries = append(entries, ai.GeneratorEntry{
			Name:      cfg.AI.Provider,
			Generator: ai.NewGenerator(provider, cfg.AI.TranslateModel),
		})
	}
	for _, fb := range cfg.AI.Fallbacks {
		if fb.Model == "" {
			continue // no generation model configured for this backend
		}
		provider, err := ai.NewProvider(fb.Provider, fallbackArgs(fb))
		if err != nil {
			return nil, fmt.Errorf("init fallback translation provider %s: %w", fb.Provider, err)
		}
		entries = append(entries, ai.GeneratorEntry{
			Name:      fb.Provider,
			Generator: ai.NewGenerator(provider, fb.Model),
		})
	}
	return search.NewBridge(ai.NewGroupGenerator(entries)), nil
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("provider", cfg.AI.Provider),
		zap.String("sheet_url", cfg.Corpus.SheetURL),
	)

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	bridge, err := buildBridge(cfg)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	loader := corpus.NewLoader(httpClient, cfg.Corpus.SheetURL)
	store := corpus.NewStore(loader, time.Duration(cfg.Corpus.CacheTTLMinutes)*time.Minute)
	engine := search.NewEngine(store, embedder, bridge)

	searchHandler := handler.NewSearchHandler(engine, cfg.Search, cfg.Corpus.KeywordTopN)
	deps := handler.RouterDeps{
		Search:          searchHandler,
		SearchRateLimit: time.Duration(cfg.Search.RateLimitSeconds) * time.Second,
	}

	webEngine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORS),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(search.NewRefreshJob(engine), cfg.Corpus.RefreshCron); err != nil {
		return fmt.Errorf("schedule refresh job: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Warm the snapshot and index in the background; the first request
	// builds them anyway if this has not finished.
	go func() {
		if err := engine.WarmIndex(ctx); err != nil {
			logutil.GetLogger(ctx).Warn("initial index warmup failed", zap.Error(err))
		}
	}()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	go func() {
		if err := webEngine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
