package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestEmbedder(embedFn func(ctx context.Context, text string, intent Intent) ([]float32, error)) *geminiEmbedder {
	return &geminiEmbedder{
		apiKey:  "test-key",
		model:   defaultEmbedModel,
		sleep:   func(time.Duration) {},
		embedFn: embedFn,
	}
}

func TestEncodeRequiresAPIKey(t *testing.T) {
	e := &geminiEmbedder{model: defaultEmbedModel}
	_, err := e.Encode(context.Background(), []string{"hello"}, IntentDocument)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestEncodePreservesOrder(t *testing.T) {
	e := newTestEmbedder(func(_ context.Context, text string, _ Intent) ([]float32, error) {
		return []float32{float32(len(text)), 1}, nil
	})
	vectors, err := e.Encode(context.Background(), []string{"a", "bb", "ccc"}, IntentDocument)
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	require.Equal(t, []float32{1, 1}, vectors[0])
	require.Equal(t, []float32{2, 1}, vectors[1])
	require.Equal(t, []float32{3, 1}, vectors[2])
}

func TestEncodeDegradesFailedTextToZeroVector(t *testing.T) {
	attempts := make(map[string]int)
	e := newTestEmbedder(func(_ context.Context, text string, _ Intent) ([]float32, error) {
		attempts[text]++
		if text == "broken" {
			return nil, errors.New("endpoint error")
		}
		return []float32{1, 2, 3}, nil
	})
	vectors, err := e.Encode(context.Background(), []string{"fine", "broken", "also fine"}, IntentDocument)
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	require.Equal(t, []float32{1, 2, 3}, vectors[0])
	require.Equal(t, []float32{0, 0, 0}, vectors[1])
	require.Equal(t, []float32{1, 2, 3}, vectors[2])
	require.Equal(t, embedMaxAttempts, attempts["broken"])
	require.Equal(t, 1, attempts["fine"])
}

func TestEncodeFailsWhenNoTextSucceeds(t *testing.T) {
	e := newTestEmbedder(func(context.Context, string, Intent) ([]float32, error) {
		return nil, errors.New("endpoint down")
	})
	_, err := e.Encode(context.Background(), []string{"a", "b"}, IntentDocument)
	require.ErrorIs(t, err, ErrBatchFailed)
}

func TestEncodeQueryUsesQueryIntent(t *testing.T) {
	var got Intent
	e := newTestEmbedder(func(_ context.Context, _ string, intent Intent) ([]float32, error) {
		got = intent
		return []float32{0.5}, nil
	})
	vec, err := e.EncodeQuery(context.Background(), "naam jap")
	require.NoError(t, err)
	require.Equal(t, []float32{0.5}, vec)
	require.Equal(t, IntentQuery, got)
}

func TestIdentityDependsOnModelAndKey(t *testing.T) {
	a := &geminiEmbedder{apiKey: "k1", model: "m"}
	b := &geminiEmbedder{apiKey: "k2", model: "m"}
	c := &geminiEmbedder{apiKey: "k1", model: "m"}
	require.NotEqual(t, a.Identity(), b.Identity())
	require.Equal(t, a.Identity(), c.Identity())
}
