package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sanjayganatra/satsang-qa-portal/internal/config"
	"github.com/sanjayganatra/satsang-qa-portal/internal/pkg/errcode"
	appErr "github.com/sanjayganatra/satsang-qa-portal/internal/pkg/errors"
	"github.com/sanjayganatra/satsang-qa-portal/internal/pkg/response"
	"github.com/sanjayganatra/satsang-qa-portal/internal/search"
)

type SearchHandler struct {
	engine   *search.Engine
	defaults config.SearchConfig
	keywords int
}

func NewSearchHandler(engine *search.Engine, defaults config.SearchConfig, keywordTopN int) *SearchHandler {
	return &SearchHandler{engine: engine, defaults: defaults, keywords: keywordTopN}
}

func (h *SearchHandler) options(c *gin.Context) (search.Options, bool) {
	opts := search.Options{
		Mode:               search.ModeHybrid,
		TopK:               h.defaults.TopK,
		SemanticWeight:     h.defaults.SemanticWeight,
		OverrideThreshold:  h.defaults.OverrideThreshold,
		ShortQueryGuard:    !h.defaults.DisableShortGuard,
		UsePhraseMatch:     !h.defaults.DisablePhraseMatch,
		TranslationEnabled: !h.defaults.DisableTranslation,
	}
	switch strings.ToLower(c.DefaultQuery("mode", "hybrid")) {
	case "hybrid", "":
	case "semantic":
		opts.Mode = search.ModeSemantic
	case "literal":
		opts.Mode = search.ModeLiteral
	default:
		return opts, false
	}
	if raw := c.Query("top_k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			return opts, false
		}
		opts.TopK = k
	}
	if raw := c.Query("semantic_weight"); raw != "" {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil || w < 0 || w > 1 {
			return opts, false
		}
		opts.SemanticWeight = w
	}
	if raw := c.Query("translate"); raw != "" {
		opts.TranslationEnabled = raw == "1" || raw == "true"
	}
	if raw := c.Query("phrase_match"); raw != "" {
		opts.UsePhraseMatch = raw == "1" || raw == "true"
	}
	if raw := c.Query("short_query_guard"); raw != "" {
		opts.ShortQueryGuard = raw == "1" || raw == "true"
	}
	return opts, true
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.Error(c, errcode.ErrInvalid, "query parameter 'q' is required")
		return
	}
	opts, ok := h.options(c)
	if !ok {
		response.Error(c, errcode.ErrInvalid, "invalid search parameters")
		return
	}
	results, err := h.engine.Search(c.Request.Context(), query, opts)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"query":   query,
		"mode":    string(opts.Mode),
		"total":   len(results),
		"results": results,
	})
}

func (h *SearchHandler) Browse(c *gin.Context) {
	results, err := h.engine.Browse(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"total":   len(results),
		"results": results,
	})
}

func (h *SearchHandler) Keywords(c *gin.Context) {
	topN := h.keywords
	if raw := c.Query("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.Error(c, errcode.ErrInvalid, "invalid top_n")
			return
		}
		topN = n
	}
	keywords, err := h.engine.Keywords(c.Request.Context(), topN)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"keywords": keywords})
}

func (h *SearchHandler) Stats(c *gin.Context) {
	records, indexes, err := h.engine.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"records": records,
		"indexes": indexes,
	})
}

func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case appErr.IsDataLoad(err):
		response.Error(c, errcode.ErrCorpusUnavailable, "corpus unavailable")
	case appErr.IsIndexUnavailable(err):
		response.Error(c, errcode.ErrIndexUnavailable, "index unavailable")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
