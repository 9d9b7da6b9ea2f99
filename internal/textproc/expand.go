package textproc

import (
	"sort"
	"strings"
)

func allowBridge(query string) bool {
	q := Clean(query)
	for _, trigger := range bridgeTriggers {
		if strings.Contains(q, trigger) {
			return true
		}
	}
	return false
}

// Expand grows a base token list with phrase-level and token-level synonyms
// plus the cross-language illness bridge. Ultra-common bridge tokens are
// stripped again unless the query carries a "taking away" trigger, so a
// generic verb cannot match unrelated records through synonym chaining.
// The result is de-duplicated and sorted; order carries no meaning.
func Expand(tokens []string, query string) []string {
	expanded := make(map[string]struct{})
	qClean := Clean(query)

	for _, t := range tokens {
		if t != "" {
			expanded[t] = struct{}{}
		}
	}

	for key, syns := range synonyms {
		keyClean := Clean(key)
		if keyClean == "" || !strings.Contains(qClean, keyClean) {
			continue
		}
		expanded[keyClean] = struct{}{}
		for _, s := range syns {
			expanded[Clean(s)] = struct{}{}
		}
	}

	for _, t := range tokens {
		for _, s := range synonyms[t] {
			expanded[Clean(s)] = struct{}{}
		}
	}

	for _, t := range tokens {
		if isASCIIToken(t) {
			for _, s := range illnessSynonymsEN[t] {
				expanded[Clean(s)] = struct{}{}
			}
			continue
		}
		for _, s := range illnessBridgeHI[t] {
			expanded[Clean(s)] = struct{}{}
		}
	}

	if !allowBridge(query) {
		for tok := range bridgeTokens {
			delete(expanded, tok)
		}
	}

	out := make([]string, 0, len(expanded))
	for tok := range expanded {
		if tok != "" {
			out = append(out, tok)
		}
	}
	sort.Strings(out)
	return out
}
