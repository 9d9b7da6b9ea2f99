package textproc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeDropsStopwordsAndShortTokens(t *testing.T) {
	toks := Tokenize("I am so sick of it all")
	for _, tok := range toks {
		require.False(t, IsEnglishStopword(tok), "stopword %q survived", tok)
		require.GreaterOrEqual(t, len(tok), 3)
	}
	require.Equal(t, []string{"sick", "all"}, toks)
}

func TestTokenizeKeepsShortDevanagariTokens(t *testing.T) {
	toks := Tokenize("जप कैसे करें")
	require.Equal(t, []string{"जप", "कैसे", "करें"}, toks)
}

func TestTokenizePreservesOrderAndDuplicates(t *testing.T) {
	toks := Tokenize("naam jap naam jap naam")
	require.Equal(t, []string{"naam", "jap", "naam", "jap", "naam"}, toks)
}

func TestTokenizeEmptyInput(t *testing.T) {
	require.Empty(t, Tokenize(""))
	require.Empty(t, Tokenize("   !!! ??? "))
}

func TestHasDevanagariToken(t *testing.T) {
	require.True(t, HasDevanagariToken([]string{"sick", "जप"}))
	require.False(t, HasDevanagariToken([]string{"sick", "cough"}))
}
