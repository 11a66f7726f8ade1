package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkrasnov/workdesk/internal/core/domain"
	"github.com/dkrasnov/workdesk/internal/core/ports"
)

const projectDateLayout = "2006-01-02"

type ProjectUseCase struct {
	repo ports.ProjectRepository
}

func NewProjectUseCase(repo ports.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo}
}

func (uc *ProjectUseCase) Create(
	ctx context.Context,
	name, description, startDate, endDate, createdBy string,
) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(description) == "" || startDate == "" || endDate == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create project", errors.New("name, description, start_date and end_date are required"))
	}
	if err := validateProjectDate(startDate); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create project", err)
	}
	if err := validateProjectDate(endDate); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create project", err)
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedBy:   createdBy,
		Status:      domain.ProjectStatusPlanned,
		TeamMembers: []domain.TeamMember{},
		Tasks:       []domain.ProjectTask{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (uc *ProjectUseCase) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *ProjectUseCase) ListAll(ctx context.Context) ([]domain.Project, error) {
	return uc.repo.ListAll(ctx)
}

func (uc *ProjectUseCase) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	return uc.repo.ListByUser(ctx, userID)
}

func (uc *ProjectUseCase) Update(ctx context.Context, id string, update domain.ProjectUpdate) (*domain.Project, error) {
	if update.Empty() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update project", errors.New("no fields to update"))
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update project", fmt.Errorf("invalid status %q", *update.Status))
	}
	if update.StartDate != nil {
		if err := validateProjectDate(*update.StartDate); err != nil {
			return nil, domain.WrapError(domain.ErrInvalidInput, "update project", err)
		}
	}
	if update.EndDate != nil {
		if err := validateProjectDate(*update.EndDate); err != nil {
			return nil, domain.WrapError(domain.ErrInvalidInput, "update project", err)
		}
	}
	if err := uc.repo.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *ProjectUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ProjectUseCase) AddTeamMember(ctx context.Context, projectID string, member domain.TeamMember) (*domain.Project, error) {
	if strings.TrimSpace(member.UserID) == "" || strings.TrimSpace(member.Role) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add team member", errors.New("user_id and role are required"))
	}
	if err := uc.repo.AddTeamMember(ctx, projectID, member); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, projectID)
}

func (uc *ProjectUseCase) AddTask(ctx context.Context, projectID, name, description, assignedTo string) (*domain.Project, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add task", errors.New("task name and description are required"))
	}
	task := domain.ProjectTask{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		AssignedTo:  assignedTo,
		Status:      domain.ProjectTaskStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.AppendTask(ctx, projectID, task); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, projectID)
}

func validateProjectDate(value string) error {
	if _, err := time.Parse(projectDateLayout, value); err != nil {
		return fmt.Errorf("date %q is not in YYYY-MM-DD format", value)
	}
	return nil
}
