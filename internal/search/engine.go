package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sanjayganatra/satsang-qa-portal/internal/ai"
	"github.com/sanjayganatra/satsang-qa-portal/internal/corpus"
	"github.com/sanjayganatra/satsang-qa-portal/internal/model"
	appErr "github.com/sanjayganatra/satsang-qa-portal/internal/pkg/errors"
	"github.com/sanjayganatra/satsang-qa-portal/internal/textproc"
)

// Mode selects the ranking strategy for one request.
type Mode string

const (
	ModeLiteral  Mode = "literal"
	ModeSemantic Mode = "semantic"
	ModeHybrid   Mode = "hybrid"
)

const (
	defaultTopK      = 40
	minTopK          = 10
	maxTopK          = 200
	shortQueryTokens = 2
	shortQuerySemW   = 0.55
	englishOnlySemW  = 0.80
	defaultSemW      = 0.75
	defaultOverride  = 0.62
)

// Options carries the per-request ranking knobs. Zero values fall back to
// the configured defaults.
type Options struct {
	Mode               Mode
	TopK               int
	SemanticWeight     float64
	ShortQueryGuard    bool
	OverrideThreshold  float64
	UsePhraseMatch     bool
	TranslationEnabled bool
}

// Engine wires the corpus store, the embedding index and the translation
// bridge into the ranking entry point consumed by the handlers.
type Engine struct {
	store    *corpus.Store
	embedder ai.Embedder
	bridge   *Bridge
	index    *IndexCache
}

func NewEngine(store *corpus.Store, embedder ai.Embedder, bridge *Bridge) *Engine {
	return &Engine{
		store:    store,
		embedder: embedder,
		bridge:   bridge,
		index:    NewIndexCache(),
	}
}

func clampTopK(k int) int {
	switch {
	case k <= 0:
		return defaultTopK
	case k < minTopK:
		return minTopK
	case k > maxTopK:
		return maxTopK
	}
	return k
}

// weights picks the semantic/lexical split: short queries lean lexical,
// English-only queries force semantic dominance so stopword-driven lexical
// noise cannot take over.
func weights(qToks []string, semanticWeight float64) (semW, lexW float64) {
	if semanticWeight <= 0 || semanticWeight > 1 {
		semanticWeight = defaultSemW
	}
	if len(qToks) <= shortQueryTokens {
		semW, lexW = shortQuerySemW, 1-shortQuerySemW
	} else {
		semW, lexW = semanticWeight, 1-semanticWeight
	}
	if len(qToks) > 0 && !textproc.HasDevanagariToken(qToks) {
		semW, lexW = englishOnlySemW, 1-englishOnlySemW
	}
	return semW, lexW
}

// Search ranks the corpus against the query under the selected strategy.
// An empty result list is a valid outcome, not an error.
func (e *Engine) Search(ctx context.Context, query string, opts Options) ([]model.ScoredCandidate, error) {
	snap, err := e.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if opts.OverrideThreshold <= 0 {
		opts.OverrideThreshold = defaultOverride
	}

	queryHi := query
	if opts.TranslationEnabled {
		queryHi = e.bridge.TranslateQuery(ctx, query)
		if queryHi != query {
			logutil.GetLogger(ctx).Debug("query translated for search", zap.String("translated", queryHi))
		}
	}

	qToks := textproc.Tokenize(query)
	shortQuery := len(qToks) <= shortQueryTokens

	recordLex := func(rec *model.Record) float64 {
		return lexicalScorePair(query, queryHi, rec.LexText, opts.UsePhraseMatch)
	}

	if opts.Mode == ModeLiteral {
		var results []model.ScoredCandidate
		for _, rec := range snap.Records {
			ls := recordLex(rec)
			if ls <= 0 {
				continue
			}
			results = append(results, model.ScoredCandidate{
				Record: rec, FinalScore: ls, LexicalScore: ls, Method: model.MethodLiteral,
			})
		}
		sortByFinal(results)
		return results, nil
	}

	idx, err := e.index.Get(ctx, e.embedder, snap.EmbedTexts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrIndexUnavailable, err)
	}

	q1, q1Err := e.embedder.EncodeQuery(ctx, query)
	if q1Err != nil {
		logutil.GetLogger(ctx).Warn("query embedding failed", zap.Error(q1Err))
	}
	var q2 []float32
	if queryHi != query {
		var q2Err error
		q2, q2Err = e.embedder.EncodeQuery(ctx, queryHi)
		if q2Err != nil {
			logutil.GetLogger(ctx).Warn("translated query embedding failed", zap.Error(q2Err))
		}
	}
	if len(q1) == 0 && len(q2) == 0 {
		return nil, nil
	}

	semW, lexW := weights(qToks, opts.SemanticWeight)
	guard := opts.ShortQueryGuard && shortQuery

	var results []model.ScoredCandidate
	for _, cand := range topCandidates(q1, q2, idx.Vectors, clampTopK(opts.TopK)) {
		rec := snap.Records[cand.row]
		ls := recordLex(rec)
		if guard && ls == 0 && cand.score < opts.OverrideThreshold {
			continue
		}
		switch opts.Mode {
		case ModeSemantic:
			results = append(results, model.ScoredCandidate{
				Record: rec, FinalScore: cand.score, SemanticScore: cand.score,
				LexicalScore: ls, Method: model.MethodSemantic,
			})
		default: // hybrid
			method := model.MethodHybrid
			if ls == 0 {
				method = model.MethodSemantic
			}
			results = append(results, model.ScoredCandidate{
				Record: rec, FinalScore: semW*cand.score + lexW*ls,
				SemanticScore: cand.score, LexicalScore: ls, Method: method,
			})
		}
	}
	sortByFinal(results)
	return results, nil
}

// Browse returns the whole corpus unscored, tagged Browse.
func (e *Engine) Browse(ctx context.Context) ([]model.ScoredCandidate, error) {
	snap, err := e.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]model.ScoredCandidate, 0, len(snap.Records))
	for _, rec := range snap.Records {
		results = append(results, model.ScoredCandidate{Record: rec, Method: model.MethodBrowse})
	}
	return results, nil
}

// Keywords exposes the corpus quick-filter keywords.
func (e *Engine) Keywords(ctx context.Context, topN int) ([]string, error) {
	snap, err := e.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	return corpus.ExtractKeywords(snap.Records, topN), nil
}

// WarmIndex rebuilds the snapshot and pre-builds its embedding index so user
// requests rarely pay the cold-start cost. Used by the refresh job.
func (e *Engine) WarmIndex(ctx context.Context) error {
	snap, err := e.store.Refresh(ctx)
	if err != nil {
		return err
	}
	if _, err := e.index.Get(ctx, e.embedder, snap.EmbedTexts); err != nil {
		return fmt.Errorf("%w: %v", appErr.ErrIndexUnavailable, err)
	}
	return nil
}

// Stats reports corpus and index state for the stats endpoint.
func (e *Engine) Stats(ctx context.Context) (records int, indexes int, err error) {
	snap, err := e.store.Get(ctx)
	if err != nil {
		return 0, 0, err
	}
	return len(snap.Records), e.index.Size(), nil
}

func sortByFinal(results []model.ScoredCandidate) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
}
