package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBridgeSkipsDevanagariQueries(t *testing.T) {
	gen := &fakeGenerator{out: "should not be used"}
	b := NewBridge(gen)
	require.Equal(t, "नाम जप कैसे करें", b.TranslateQuery(context.Background(), "नाम जप कैसे करें"))
	require.Zero(t, gen.calls.Load())
}

func TestBridgeSkipsMixedScriptQueries(t *testing.T) {
	gen := &fakeGenerator{out: "should not be used"}
	b := NewBridge(gen)
	// Enough non-ASCII runes to fail the English heuristic even without a
	// Devanagari code point.
	q := "jap kaise karen ¿¿¿¿¿¿"
	require.Equal(t, q, b.TranslateQuery(context.Background(), q))
	require.Zero(t, gen.calls.Load())
}

func TestBridgeWithoutGeneratorIsPassthrough(t *testing.T) {
	b := NewBridge(nil)
	require.Equal(t, "how to chant", b.TranslateQuery(context.Background(), "how to chant"))
}

func TestBridgeFailSoftOnGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model overloaded")}
	b := NewBridge(gen)
	require.Equal(t, "how to chant", b.TranslateQuery(context.Background(), "how to chant"))
	require.EqualValues(t, 1, gen.calls.Load())
}

func TestBridgeIgnoresEmptyTranslation(t *testing.T) {
	gen := &fakeGenerator{out: "   "}
	b := NewBridge(gen)
	require.Equal(t, "how to chant", b.TranslateQuery(context.Background(), "how to chant"))
}

func TestBridgeReturnsTrimmedTranslation(t *testing.T) {
	gen := &fakeGenerator{out: "  जप कैसे करें  "}
	b := NewBridge(gen)
	require.Equal(t, "जप कैसे करें", b.TranslateQuery(context.Background(), "how to do jap"))
}
