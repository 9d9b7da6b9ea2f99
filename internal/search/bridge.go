package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sanjayganatra/satsang-qa-portal/internal/ai"
	"github.com/sanjayganatra/satsang-qa-portal/internal/textproc"
)

const asciiRatioThreshold = 0.85

// Bridge rewrites an apparently-English query into Hindi to improve recall
// against the Hindi-dominant corpus. Every failure path returns the original
// query; the bridge never surfaces an error to the caller.
type Bridge struct {
	generator ai.IGenerator
}

func NewBridge(generator ai.IGenerator) *Bridge {
	return &Bridge{generator: generator}
}

func asciiRatio(s string) float64 {
	if len(s) == 0 {
		return 1
	}
	runes := []rune(s)
	ascii := 0
	for _, r := range runes {
		if r < 128 {
			ascii++
		}
	}
	return float64(ascii) / float64(len(runes))
}

// TranslateQuery returns the Hindi rendition of q, or q itself when the
// query already contains Devanagari, looks non-English, no generator is
// configured, or the call fails.
func (b *Bridge) TranslateQuery(ctx context.Context, q string) string {
	if textproc.HasDevanagari(q) {
		return q
	}
	if asciiRatio(q) < asciiRatioThreshold {
		return q
	}
	if b == nil || b.generator == nil {
		return q
	}
	prompt := fmt.Sprintf(
		"Translate the user query into natural Hindi for searching a devotional Q&A dataset. "+
			"Return ONLY the Hindi translation, no extra text.\n\nQuery: %s", q)
	out, err := b.generator.Generate(ctx, prompt)
	if err != nil {
		logutil.GetLogger(ctx).Warn("translation bridge failed, using original query", zap.Error(err))
		return q
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return q
	}
	return out
}
