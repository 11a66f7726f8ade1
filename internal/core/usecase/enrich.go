package usecase

import (
	"context"
	"fmt"

	"github.com/dkrasnov/workdesk/internal/core/ports"
)

// EnrichUseCase classifies and summarizes an already indexed document.
// It runs in the worker, downstream of the document-indexed event.
type EnrichUseCase struct {
	repo       ports.DocumentRepository
	extractor  ports.TextExtractor
	classifier ports.DocumentClassifier
}

func NewEnrichUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	classifier ports.DocumentClassifier,
) *EnrichUseCase {
	return &EnrichUseCase{
		repo:       repo,
		extractor:  extractor,
		classifier: classifier,
	}
}

func (uc *EnrichUseCase) EnrichByID(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}

	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	classification, err := uc.classifier.Classify(ctx, text)
	if err != nil {
		return fmt.Errorf("classify document: %w", err)
	}

	if err := uc.repo.SaveClassification(ctx, doc.ID, classification); err != nil {
		return fmt.Errorf("save classification: %w", err)
	}
	return nil
}
