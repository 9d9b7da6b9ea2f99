package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"

	"github.com/sanjayganatra/satsang-qa-portal/internal/ai"
)

// WrapQueryCache memoizes EncodeQuery results so repeated identical queries
// do not re-hit the embedding backend. Document batches pass through
// untouched; those are cached at the index level.
func WrapQueryCache(e ai.Embedder, size int, ttl time.Duration) ai.Embedder {
	if e == nil || size <= 0 || ttl <= 0 {
		return e
	}
	return &lruEmbedder{
		next:  e,
		cache: expirable.NewLRU[string, []float32](size, nil, ttl),
	}
}

type lruEmbedder struct {
	next  ai.Embedder
	cache *expirable.LRU[string, []float32]
}

func (l *lruEmbedder) Encode(ctx context.Context, texts []string, intent ai.Intent) ([][]float32, error) {
	return l.next.Encode(ctx, texts, intent)
}

func (l *lruEmbedder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	key := buildCacheKey(l.next.Identity(), text)
	if cached, ok := l.cache.Get(key); ok {
		logutil.GetLogger(ctx).Debug("query embedding cache hit (lru)")
		return cloneEmbedding(cached), nil
	}
	res, err := l.next.EncodeQuery(ctx, text)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, cloneEmbedding(res))
	return res, nil
}

func (l *lruEmbedder) Identity() string {
	return l.next.Identity()
}

func buildCacheKey(identity, text string) string {
	sum := sha256.Sum256([]byte(identity + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func cloneEmbedding(values []float32) []float32 {
	if len(values) == 0 {
		return nil
	}
	clone := make([]float32, len(values))
	copy(clone, values)
	return clone
}
