package textproc

import "strings"

func isASCIIToken(tok string) bool {
	for _, r := range tok {
		if r >= 128 {
			return false
		}
	}
	return true
}

// HasDevanagari reports whether the string contains any Devanagari rune.
func HasDevanagari(s string) bool {
	for _, r := range s {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}

// HasDevanagariToken reports whether any token contains a Devanagari rune.
func HasDevanagariToken(tokens []string) bool {
	for _, tok := range tokens {
		if HasDevanagari(tok) {
			return true
		}
	}
	return false
}

// Tokenize cleans the text and splits it into bilingual search tokens.
// English tokens drop stopwords and anything shorter than 3 characters;
// Devanagari tokens are kept from 2 runes up. Order and duplicates are
// preserved.
func Tokenize(s string) []string {
	var toks []string
	for _, tok := range strings.Fields(Clean(s)) {
		if isASCIIToken(tok) {
			if IsEnglishStopword(tok) || len(tok) < 3 {
				continue
			}
			toks = append(toks, tok)
			continue
		}
		if len([]rune(tok)) >= 2 {
			toks = append(toks, tok)
		}
	}
	return toks
}
