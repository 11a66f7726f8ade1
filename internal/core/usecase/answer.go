package usecase

import (
	"context"
	"log/slog"

	"github.com/dkrasnov/workdesk/internal/core/domain"
	"github.com/dkrasnov/workdesk/internal/core/ports"
)

const (
	defaultAnswerTopK = 3

	// Retrieved context shorter than this is treated as too sparse to
	// ground an answer. A crude proxy for relevance kept for
	// compatibility; chunk scores are available should a calibrated
	// cutoff replace it.
	defaultMinContextChars = 100

	apologyAnswer = "Sorry, I encountered an error processing your question."
)

type AnswerUseCase struct {
	embedder  ports.Embedder
	vectorDB  ports.VectorStore
	generator ports.AnswerGenerator

	topK            int
	minContextChars int
}

func NewAnswerUseCase(
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	generator ports.AnswerGenerator,
	topK int,
	minContextChars int,
) *AnswerUseCase {
	if topK <= 0 {
		topK = defaultAnswerTopK
	}
	if minContextChars <= 0 {
		minContextChars = defaultMinContextChars
	}
	return &AnswerUseCase{
		embedder:        embedder,
		vectorDB:        vectorDB,
		generator:       generator,
		topK:            topK,
		minContextChars: minContextChars,
	}
}

// Answer runs retrieval, applies the relevance gate and dispatches to
// exactly one generation path. Collaborator failures never propagate:
// they degrade into a fixed apology answer.
func (uc *AnswerUseCase) Answer(ctx context.Context, question string) domain.AnswerResult {
	result := domain.AnswerResult{Question: question}

	chunks, err := uc.retrieve(ctx, question)
	if err != nil {
		slog.Error("answer retrieval failed", "question", question, "error", err)
		result.Answer = apologyAnswer
		result.Mode = domain.AnswerModeError
		return result
	}
	result.SourceCount = len(chunks)

	var answer string
	if uc.shouldFallBack(chunks) {
		slog.Info("no relevant context, using fallback generation", "question", question, "retrieved", len(chunks))
		answer, err = uc.generator.GenerateFallback(ctx, question)
		result.Mode = domain.AnswerModeFallback
	} else {
		answer, err = uc.generator.GenerateGrounded(ctx, question, chunks)
		result.Mode = domain.AnswerModeGrounded
	}
	if err != nil {
		slog.Error("answer generation failed", "question", question, "mode", result.Mode, "error", err)
		result.Answer = apologyAnswer
		result.Mode = domain.AnswerModeError
		return result
	}
	result.Answer = answer

	count, err := uc.vectorDB.Count(ctx)
	if err != nil {
		slog.Warn("corpus count failed", "error", err)
	}
	result.HasKnowledge = count > 0
	return result
}

func (uc *AnswerUseCase) retrieve(ctx context.Context, question string) ([]domain.RetrievedChunk, error) {
	queryVector, err := uc.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "embed query", err)
	}
	chunks, err := uc.vectorDB.Search(ctx, queryVector, uc.topK)
	if err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "search vector db", err)
	}
	return chunks, nil
}

// shouldFallBack is the relevance gate: an empty retrieval or one whose
// chunks sum to fewer than minContextChars characters is not trusted to
// ground an answer.
func (uc *AnswerUseCase) shouldFallBack(chunks []domain.RetrievedChunk) bool {
	if len(chunks) == 0 {
		return true
	}
	total := 0
	for _, chunk := range chunks {
		total += len(chunk.Text)
	}
	return total < uc.minContextChars
}
