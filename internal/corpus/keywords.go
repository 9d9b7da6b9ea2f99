package corpus

import (
	"regexp"
	"sort"

	"github.com/sanjayganatra/satsang-qa-portal/internal/model"
	"github.com/sanjayganatra/satsang-qa-portal/internal/textproc"
)

var englishWordPattern = regexp.MustCompile(`[a-z]{4,}`)

// ExtractKeywords ranks intent-worthy English keywords for the quick-filter
// chips: alphabetic words of length >= 4 from the translated question text,
// minus stopwords and devotional/filler terms, ordered by frequency then
// alphabetically.
func ExtractKeywords(records []*model.Record, topN int) []string {
	if topN <= 0 {
		topN = 30
	}
	freq := make(map[string]int)
	for _, rec := range records {
		text := rec.CleanTranslatedQuestion
		if text == "" {
			text = textproc.Clean(rec.TranslatedAnswer)
		}
		for _, tok := range englishWordPattern.FindAllString(text, -1) {
			if textproc.IsEnglishStopword(tok) || textproc.IsSlicerStopword(tok) {
				continue
			}
			freq[tok]++
		}
	}
	ranked := make([]string, 0, len(freq))
	for tok := range freq {
		ranked = append(ranked, tok)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
