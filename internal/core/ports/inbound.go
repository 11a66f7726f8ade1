package ports

import (
	"context"
	"io"

	"github.com/dkrasnov/workdesk/internal/core/domain"
)

// DocumentIngestor is the inbound contract for synchronous document ingestion.
type DocumentIngestor interface {
	IngestUpload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// QuestionAnswerer is the inbound contract for corpus question answering.
// Answer never fails: collaborator errors degrade into a fixed apology answer.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question string) domain.AnswerResult
}

// DocumentEnricher is the inbound contract for asynchronous post-index enrichment.
type DocumentEnricher interface {
	EnrichByID(ctx context.Context, documentID string) error
}

// AccountService is the inbound contract for user accounts and sessions.
type AccountService interface {
	Register(ctx context.Context, username, email, password string, role domain.Role, avatar string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.AuthSession, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	Search(ctx context.Context, query string) ([]domain.User, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// ProjectTracker is the inbound contract for project/task CRUD.
type ProjectTracker interface {
	Create(ctx context.Context, name, description, startDate, endDate, createdBy string) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, id string, update domain.ProjectUpdate) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	AddTeamMember(ctx context.Context, projectID string, member domain.TeamMember) (*domain.Project, error)
	AddTask(ctx context.Context, projectID, name, description, assignedTo string) (*domain.Project, error)
}
