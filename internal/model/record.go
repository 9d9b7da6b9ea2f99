package model

// Record is one corpus entry from the remote sheet. The Clean* fields and the
// two derived texts are computed once when the snapshot is built; records are
// never mutated afterwards.
type Record struct {
	ID                 int    `json:"id"`
	Question           string `json:"question"`
	Answer             string `json:"answer"`
	TranslatedQuestion string `json:"translated_question"`
	TranslatedAnswer   string `json:"translated_answer"`

	CleanQuestion           string `json:"-"`
	CleanTranslatedQuestion string `json:"-"`
	CleanAnswer             string `json:"-"`

	// EmbedText is question-centric (clean question + clean translated
	// question); LexText additionally includes the clean answer.
	EmbedText string `json:"-"`
	LexText   string `json:"-"`
}
