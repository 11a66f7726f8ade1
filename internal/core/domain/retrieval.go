package domain

type RetrievedChunk struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
}

// AnswerMode records which generation path produced the answer.
type AnswerMode string

const (
	AnswerModeGrounded AnswerMode = "grounded"
	AnswerModeFallback AnswerMode = "fallback"
	AnswerModeError    AnswerMode = "error"
)

// AnswerResult is the outcome of one question; HasKnowledge reflects
// corpus non-emptiness at query time, not whether this particular
// question found relevant context.
type AnswerResult struct {
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	HasKnowledge bool       `json:"has_knowledge"`
	Mode         AnswerMode `json:"-"`
	SourceCount  int        `json:"-"`
}
