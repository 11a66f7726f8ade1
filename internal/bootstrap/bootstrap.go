package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dkrasnov/workdesk/internal/auth"
	"github.com/dkrasnov/workdesk/internal/config"
	"github.com/dkrasnov/workdesk/internal/core/ports"
	"github.com/dkrasnov/workdesk/internal/core/usecase"
	"github.com/dkrasnov/workdesk/internal/infrastructure/chunking"
	pdfextractor "github.com/dkrasnov/workdesk/internal/infrastructure/extractor/pdf"
	"github.com/dkrasnov/workdesk/internal/infrastructure/llm/ollama"
	"github.com/dkrasnov/workdesk/internal/infrastructure/queue/nats"
	"github.com/dkrasnov/workdesk/internal/infrastructure/repository/postgres"
	"github.com/dkrasnov/workdesk/internal/infrastructure/resilience"
	"github.com/dkrasnov/workdesk/internal/infrastructure/storage/localfs"
	"github.com/dkrasnov/workdesk/internal/infrastructure/vector/qdrant"
)

type App struct {
	Config config.Config

	Queue    ports.MessageQueue
	Tokens   ports.TokenManager
	IngestUC ports.DocumentIngestor
	AnswerUC ports.QuestionAnswerer
	EnrichUC ports.DocumentEnricher
	Accounts ports.AccountService
	Projects ports.ProjectTracker

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	docRepo := postgres.NewDocumentRepository(db)
	userRepo := postgres.NewUserRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	for _, ensure := range []func(context.Context) error{
		docRepo.EnsureSchema,
		userRepo.EnsureSchema,
		projectRepo.EnsureSchema,
	} {
		if err := ensure(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, executor)
	embedder := ollama.NewEmbedder(ollamaClient)
	generator := ollama.NewGenerator(ollamaClient)
	classifier := ollama.NewClassifier(ollamaClient)

	vectorDB := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)
	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	extractor := pdfextractor.NewExtractor(storage)

	hasher := auth.NewBcryptHasher()
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	ingestUC := usecase.NewIngestUseCase(docRepo, storage, extractor, chunker, embedder, vectorDB, queue)
	answerUC := usecase.NewAnswerUseCase(embedder, vectorDB, generator, cfg.RAGTopK, cfg.RAGMinContextChars)
	enrichUC := usecase.NewEnrichUseCase(docRepo, extractor, classifier)
	accounts := usecase.NewUserUseCase(userRepo, hasher, tokens)
	projects := usecase.NewProjectUseCase(projectRepo)

	return &App{
		Config: cfg,

		Queue:    queue,
		Tokens:   tokens,
		IngestUC: ingestUC,
		AnswerUC: answerUC,
		EnrichUC: enrichUC,
		Accounts: accounts,
		Projects: projects,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// SeedCorpus ingests the configured sample document so a fresh install can
// answer questions immediately. A missing file or failed ingestion is
// logged and ignored.
func (a *App) SeedCorpus(ctx context.Context) {
	path := a.Config.SeedDocument
	if path == "" {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		slog.Info("seed document not found, skipping", "path", path)
		return
	}
	defer f.Close()

	doc, err := a.IngestUC.IngestUpload(ctx, filepath.Base(path), "application/pdf", f)
	if err != nil {
		slog.Warn("seed ingestion failed", "path", path, "error", err)
		return
	}
	slog.Info("seed document ingested", "document_id", doc.ID, "filename", doc.Filename)
}
