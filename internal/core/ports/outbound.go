package ports

import (
	"context"
	"io"
	"time"

	"github.com/dkrasnov/workdesk/internal/core/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	Search(ctx context.Context, query string) ([]domain.User, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository persists projects with their nested team and task lists.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, id string, update domain.ProjectUpdate) error
	Delete(ctx context.Context, id string) error
	AddTeamMember(ctx context.Context, projectID string, member domain.TeamMember) error
	AppendTask(ctx context.Context, projectID string, task domain.ProjectTask) error
}

// DocumentRepository persists document metadata and processing state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, chunkCount int, errMessage string) error
	SaveClassification(ctx context.Context, id string, cls domain.Classification) error
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes document-indexed events.
type MessageQueue interface {
	PublishDocumentIndexed(ctx context.Context, documentID string) error
	SubscribeDocumentIndexed(ctx context.Context, handler func(ctx context.Context, documentID string, publishedAt time.Time) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// Chunker splits extracted text into retrievable segments.
type Chunker interface {
	Split(text string) []string
}

// Embedder builds vectors for chunks and query text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorStore indexes chunk vectors and performs semantic search.
type VectorStore interface {
	IndexChunks(ctx context.Context, doc *domain.Document, chunks []string, vectors [][]float32) error
	Search(ctx context.Context, queryVector []float32, limit int) ([]domain.RetrievedChunk, error)
	Count(ctx context.Context) (int, error)
}

// AnswerGenerator produces answer text with or without retrieved context.
type AnswerGenerator interface {
	GenerateGrounded(ctx context.Context, question string, chunks []domain.RetrievedChunk) (string, error)
	GenerateFallback(ctx context.Context, question string) (string, error)
}

// DocumentClassifier derives category/tags/summary from extracted text.
type DocumentClassifier interface {
	Classify(ctx context.Context, text string) (domain.Classification, error)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
	Verify(token string) (*domain.TokenClaims, error)
}
