package textproc

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	phonePattern = regexp.MustCompile(`\+?\d[\d\s\-]{8,}\d`)

	// Chat-export fragments: "1/10/25, 7:11 PM -" and bare "7:11 PM".
	chatTimestampPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d{1,2}/\d{1,2}/\d{2,4},\s*\d{1,2}:\d{2}\s*(AM|PM)\s*-\s*`),
		regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(AM|PM)\b`),
	}

	systemFragmentPattern = regexp.MustCompile(`(?i)\badded\b.*`)

	// Keep letters, combining marks, digits, underscore and whitespace;
	// everything else (punctuation, danda, emoji) becomes a space. \p{M} is
	// required or Devanagari matras would be stripped from their consonants.
	nonWordPattern   = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	zeroWidthRemover = strings.NewReplacer("\u200c", "", "\u200d", "")
)

// NormalizeText applies Unicode NFKC composition and strips zero-width
// joiner/non-joiner marks common in pasted Devanagari text.
func NormalizeText(s string) string {
	return zeroWidthRemover.Replace(norm.NFKC.String(s))
}

func removeDevotionalBoilerplate(s string) string {
	low := strings.ToLower(NormalizeText(s))
	for _, p := range devotionalPhrasesRoman {
		low = strings.ReplaceAll(low, p, " ")
	}
	for _, p := range devotionalPhrasesHI {
		low = strings.ReplaceAll(low, strings.ToLower(p), " ")
	}
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(low, " "))
}

// Clean normalizes raw text for search: Unicode composition, phone-number and
// chat-timestamp redaction, devotional salutation removal, symbol stripping
// and whitespace collapse. The result is lower-cased and never empty-padded;
// Clean(Clean(x)) == Clean(x).
func Clean(s string) string {
	s = NormalizeText(s)
	s = phonePattern.ReplaceAllString(s, " ")
	for _, pat := range chatTimestampPatterns {
		s = pat.ReplaceAllString(s, " ")
	}
	s = systemFragmentPattern.ReplaceAllString(s, " ")
	s = removeDevotionalBoilerplate(s)
	s = nonWordPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(s, " "))
}
