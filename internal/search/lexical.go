package search

import (
	"strings"

	"github.com/sanjayganatra/satsang-qa-portal/internal/textproc"
)

const phraseBoost = 0.5

// lexicalScore is the fraction of expanded query tokens appearing as
// substrings of the lower-cased record text, in [0,1]. Queries of one or two
// base tokens that appear verbatim in the text get a +0.5 phrase boost,
// capped at 1.0.
func lexicalScore(query, text string, usePhraseMatch bool) float64 {
	qClean := textproc.Clean(query)
	t := strings.ToLower(text)

	baseToks := textproc.Tokenize(query)
	toks := textproc.Expand(baseToks, query)
	if len(toks) == 0 {
		return 0
	}

	hits := 0
	for _, tok := range toks {
		if strings.Contains(t, tok) {
			hits++
		}
	}
	score := float64(hits) / float64(len(toks))

	if usePhraseMatch && len(baseToks) <= 2 && qClean != "" && strings.Contains(t, qClean) {
		score += phraseBoost
		if score > 1.0 {
			score = 1.0
		}
	}
	return score
}

// lexicalScorePair evaluates both query phrasings against the record and
// keeps the better one.
func lexicalScorePair(query, translated, text string, usePhraseMatch bool) float64 {
	score := lexicalScore(query, text, usePhraseMatch)
	if translated != query {
		if s := lexicalScore(translated, text, usePhraseMatch); s > score {
			score = s
		}
	}
	return score
}
