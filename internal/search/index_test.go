package search

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexCacheBuildsOnceUnderConcurrency(t *testing.T) {
	emb := &fakeEmbedder{axes: newTestAxes()}
	cache := NewIndexCache()
	texts := []string{"cold remedies", "anger control", "छीन लेना"}

	var wg sync.WaitGroup
	indexes := make([]*Index, 8)
	errs := make([]error, len(indexes))
	for i := 0; i < len(indexes); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			indexes[i], errs[i] = cache.Get(context.Background(), emb, texts)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	require.EqualValues(t, 1, emb.encodeCalls.Load())
	for _, idx := range indexes[1:] {
		require.Same(t, indexes[0], idx)
	}
	require.Equal(t, 1, cache.Size())
	require.Equal(t, 3, len(indexes[0].Vectors))
	require.Equal(t, 3, indexes[0].Dim)
}

func TestIndexCacheKeyedByTextsAndIdentity(t *testing.T) {
	cache := NewIndexCache()
	embA := &fakeEmbedder{id: "fake/a", axes: newTestAxes()}
	embB := &fakeEmbedder{id: "fake/b", axes: newTestAxes()}

	_, err := cache.Get(context.Background(), embA, []string{"cold"})
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), embA, []string{"cold", "anger"})
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), embB, []string{"cold"})
	require.NoError(t, err)
	require.Equal(t, 3, cache.Size())

	// Same identity and text tuple hits the cache.
	_, err = cache.Get(context.Background(), embA, []string{"cold"})
	require.NoError(t, err)
	require.Equal(t, 3, cache.Size())
	require.EqualValues(t, 2, embA.encodeCalls.Load())
}

func TestIndexCacheDoesNotCacheFailures(t *testing.T) {
	emb := &fakeEmbedder{axes: newTestAxes()}
	emb.failEncode.Store(true)
	cache := NewIndexCache()
	texts := []string{"cold"}

	_, err := cache.Get(context.Background(), emb, texts)
	require.Error(t, err)
	require.Zero(t, cache.Size())

	emb.failEncode.Store(false)
	idx, err := cache.Get(context.Background(), emb, texts)
	require.NoError(t, err)
	require.NotNil(t, idx)
	require.Equal(t, 1, cache.Size())
}
