package model

// Match method tags. Informational only, the ranking never branches on them.
const (
	MethodLiteral  = "Literal"
	MethodSemantic = "Semantic"
	MethodHybrid   = "Hybrid"
	MethodBrowse   = "Browse"
)

// ScoredCandidate is one ranked search result. SemanticScore and LexicalScore
// are in [0,1]; FinalScore is their weighted combination, capped at 1.0 when
// the phrase boost applies.
type ScoredCandidate struct {
	Record        *Record `json:"record"`
	FinalScore    float64 `json:"final_score"`
	SemanticScore float64 `json:"semantic_score"`
	LexicalScore  float64 `json:"lexical_score"`
	Method        string  `json:"method"`
}
