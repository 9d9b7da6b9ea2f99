package search

import (
	"math"
	"sort"
)

// cosineSimilarity over float32 vectors with float64 accumulation. An
// all-zero vector (the degraded-embedding placeholder) always scores 0, so
// it can never produce a false positive.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

type candidate struct {
	row   int
	score float64
}

// topCandidates scores every corpus vector against one or two query vectors
// (element-wise max, so a record matches if it is close to either phrasing)
// and returns the k best, descending, ties keeping corpus order.
func topCandidates(q1, q2 []float32, vectors [][]float32, k int) []candidate {
	if len(vectors) == 0 || (len(q1) == 0 && len(q2) == 0) {
		return nil
	}
	cands := make([]candidate, len(vectors))
	for i, vec := range vectors {
		score := cosineSimilarity(q1, vec)
		if len(q2) > 0 {
			if s2 := cosineSimilarity(q2, vec); s2 > score {
				score = s2
			}
		}
		cands[i] = candidate{row: i, score: score}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})
	if k > 0 && len(cands) > k {
		cands = cands[:k]
	}
	return cands
}
