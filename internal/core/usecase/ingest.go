package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkrasnov/workdesk/internal/core/domain"
	"github.com/dkrasnov/workdesk/internal/core/ports"
)

type IngestUseCase struct {
	repo      ports.DocumentRepository
	storage   ports.ObjectStorage
	extractor ports.TextExtractor
	chunker   ports.Chunker
	embedder  ports.Embedder
	vectorDB  ports.VectorStore
	queue     ports.MessageQueue
}

func NewIngestUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	chunker ports.Chunker,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	queue ports.MessageQueue,
) *IngestUseCase {
	return &IngestUseCase{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		vectorDB:  vectorDB,
		queue:     queue,
	}
}

// IngestUpload stores the upload, then runs the extract/chunk/embed/index
// pipeline synchronously so the caller learns whether ingestion worked.
// Re-ingesting the same file is additive: chunks accumulate, no dedup.
func (uc *IngestUseCase) IngestUpload(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.Document, error) {
	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	doc := &domain.Document{
		ID:          id,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: storageKey,
		Status:      domain.StatusProcessing,
		Tags:        []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document metadata: %w", err)
	}

	chunkCount, err := uc.index(ctx, doc)
	if err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusFailed, 0, err.Error()); failErr != nil {
			slog.Error("mark document failed", "document_id", doc.ID, "error", failErr)
		}
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusReady, chunkCount, ""); err != nil {
		return nil, fmt.Errorf("set status=ready: %w", err)
	}
	doc.Status = domain.StatusReady
	doc.ChunkCount = chunkCount

	// Enrichment (classification/summary) runs out of band; a queue
	// outage must not fail an otherwise indexed upload.
	if err := uc.queue.PublishDocumentIndexed(ctx, doc.ID); err != nil {
		slog.Warn("publish document-indexed event", "document_id", doc.ID, "error", err)
	}

	slog.Info("document ingested", "document_id", doc.ID, "filename", filename, "chunks", chunkCount)
	return doc, nil
}

func (uc *IngestUseCase) index(ctx context.Context, doc *domain.Document) (int, error) {
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return 0, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return 0, domain.WrapError(domain.ErrInvalidInput, "extract text", errors.New("no extractable content"))
	}

	chunks := uc.chunker.Split(text)
	if len(chunks) == 0 {
		return 0, domain.WrapError(domain.ErrInvalidInput, "chunk document", errors.New("no extractable content"))
	}

	vectors, err := uc.embedder.Embed(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, domain.WrapError(
			domain.ErrInvalidInput,
			"embed chunks",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(chunks)),
		)
	}

	if err := uc.vectorDB.IndexChunks(ctx, doc, chunks, vectors); err != nil {
		return 0, fmt.Errorf("index chunks in vector db: %w", err)
	}
	return len(chunks), nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
