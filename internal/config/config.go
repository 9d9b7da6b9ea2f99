package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"

	"github.com/sanjayganatra/satsang-qa-portal/internal/ai"
)

type Config struct {
	Port      int              `json:"port"`
	LogConfig logger.LogConfig `json:"log_config"`
	CORS      []string         `json:"cors_allowlist"`
	Corpus    CorpusConfig     `json:"corpus"`
	AI        AIConfig         `json:"ai"`
	Search    SearchConfig     `json:"search"`
}

type CorpusConfig struct {
	SheetURL        string `json:"sheet_url"`
	CacheTTLMinutes int    `json:"cache_ttl_minutes"`
	RefreshCron     string `json:"refresh_cron"`
	KeywordTopN     int    `json:"keyword_top_n"`
}

type AIConfig struct {
	// Provider selects the primary embedding backend: "gemini", "openai"
	// or "local".
	Provider       string         `json:"provider"`
	APIKey         string         `json:"api_key"`
	EmbedModel     string         `json:"embed_model"`
	TranslateModel string         `json:"translate_model"`
	Local          ai.LocalConfig `json:"local"`
	QueryCacheSize int            `json:"query_cache_size"`
	// Fallbacks are tried in order when the primary backend fails a whole
	// request. "openrouter" is generation-only and joins the translation
	// bridge chain; "openai" and "gemini" also back up the embedder.
	Fallbacks []FallbackAIConfig `json:"fallbacks"`
}

type FallbackAIConfig struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
	BaseURL  string `json:"base_url"`
}

// SearchConfig holds the ranking defaults. The disable_* flags exist so the
// zero-value config keeps the guardrail, phrase matching and the translation
// bridge on, matching the recommended setup.
type SearchConfig struct {
	TopK               int     `json:"top_k"`
	SemanticWeight     float64 `json:"semantic_weight"`
	OverrideThreshold  float64 `json:"override_threshold"`
	DisableShortGuard  bool    `json:"disable_short_query_guard"`
	DisablePhraseMatch bool    `json:"disable_phrase_match"`
	DisableTranslation bool    `json:"disable_translation"`
	RateLimitSeconds   int     `json:"rate_limit_seconds"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Corpus.SheetURL == "" {
		return nil, fmt.Errorf("corpus.sheet_url is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Corpus.CacheTTLMinutes == 0 {
		cfg.Corpus.CacheTTLMinutes = 10
	}
	if cfg.Corpus.RefreshCron == "" {
		cfg.Corpus.RefreshCron = "*/10 * * * *"
	}
	if cfg.Corpus.KeywordTopN == 0 {
		cfg.Corpus.KeywordTopN = 30
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "gemini"
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if cfg.AI.EmbedModel == "" {
		cfg.AI.EmbedModel = "text-embedding-004"
	}
	if cfg.AI.TranslateModel == "" {
		cfg.AI.TranslateModel = "gemini-1.5-flash"
	}
	if cfg.AI.QueryCacheSize == 0 {
		cfg.AI.QueryCacheSize = 2048
	}
	switch cfg.AI.Provider {
	case "gemini", "openai":
		// An empty key is tolerated at load time; the embedder reports
		// the index as unavailable and the bridge disables itself.
	case "local":
		if cfg.AI.Local.ModelPath == "" || cfg.AI.Local.TokenizerPath == "" {
			return nil, fmt.Errorf("ai.local.model_path and ai.local.tokenizer_path are required for local provider")
		}
	default:
		return nil, fmt.Errorf("ai.provider must be gemini, openai or local")
	}
	for _, fb := range cfg.AI.Fallbacks {
		switch fb.Provider {
		case "gemini", "openai", "openrouter":
		default:
			return nil, fmt.Errorf("ai.fallbacks provider must be gemini, openai or openrouter, got %q", fb.Provider)
		}
		if fb.APIKey == "" {
			return nil, fmt.Errorf("ai.fallbacks[%s].api_key is required", fb.Provider)
		}
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 40
	}
	if cfg.Search.SemanticWeight == 0 {
		cfg.Search.SemanticWeight = 0.75
	}
	if cfg.Search.OverrideThreshold == 0 {
		cfg.Search.OverrideThreshold = 0.62
	}
	return &cfg, nil
}
