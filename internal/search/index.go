package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sanjayganatra/satsang-qa-portal/internal/ai"
)

// Index holds the embedding matrix for one (embedder identity, text tuple)
// pair. Entries are immutable once built and shared across requests.
type Index struct {
	Vectors [][]float32
	Dim     int
	BuiltAt time.Time
}

// IndexCache builds each index at most once per key under concurrent load.
// The singleflight group collapses racing cold-cache builds; completed
// entries are read without further coordination.
type IndexCache struct {
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]*Index
}

func NewIndexCache() *IndexCache {
	return &IndexCache{entries: make(map[string]*Index)}
}

func indexKey(identity string, texts []string) string {
	h := sha256.New()
	h.Write([]byte(identity))
	for _, t := range texts {
		h.Write([]byte{0x1f})
		h.Write([]byte(t))
	}
	return identity + "#" + hex.EncodeToString(h.Sum(nil)[:16])
}

// Get returns the index for the exact text tuple, building it through the
// embedder on first use. Embedding the whole corpus is one provider call per
// record, so a rebuild is only triggered when the snapshot or the provider
// configuration actually changed the key.
func (c *IndexCache) Get(ctx context.Context, embedder ai.Embedder, texts []string) (*Index, error) {
	key := indexKey(embedder.Identity(), texts)

	c.mu.RLock()
	idx := c.entries[key]
	c.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		existing := c.entries[key]
		c.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}
		start := time.Now()
		vectors, err := embedder.Encode(ctx, texts, ai.IntentDocument)
		if err != nil {
			return nil, err
		}
		dim := 0
		if len(vectors) > 0 {
			dim = len(vectors[0])
		}
		built := &Index{Vectors: vectors, Dim: dim, BuiltAt: time.Now()}
		c.mu.Lock()
		c.entries[key] = built
		c.mu.Unlock()
		logutil.GetLogger(ctx).Info("embedding index built",
			zap.Int("texts", len(texts)),
			zap.Int("dim", dim),
			zap.Duration("duration", time.Since(start)))
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Index), nil
}

// Size reports how many indexes are resident, for the stats endpoint.
func (c *IndexCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
