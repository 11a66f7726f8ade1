package httpadapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dkrasnov/workdesk/internal/core/domain"
)

type fakeIngestor struct {
	doc     *domain.Document
	err     error
	gotName string
}

func (f *fakeIngestor) IngestUpload(_ context.Context, filename, _ string, _ io.Reader) (*domain.Document, error) {
	f.gotName = filename
	if f.err != nil {
		return nil, f.err
	}
	if f.doc != nil {
		return f.doc, nil
	}
	return &domain.Document{ID: "doc-1", Filename: filename}, nil
}

type fakeAnswerer struct {
	result      domain.AnswerResult
	gotQuestion string
}

func (f *fakeAnswerer) Answer(_ context.Context, question string) domain.AnswerResult {
	f.gotQuestion = question
	return f.result
}

// fakeTokens accepts any token of the form "token:<user_id>:<role>".
type fakeTokens struct{}

func (fakeTokens) Issue(user *domain.User) (string, time.Time, error) {
	return fmt.Sprintf("token:%s:%s", user.ID, user.Role), time.Now().Add(time.Hour), nil
}

func (fakeTokens) Verify(token string) (*domain.TokenClaims, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != "token" {
		return nil, domain.WrapError(domain.ErrUnauthorized, "verify token", errors.New("malformed"))
	}
	return &domain.TokenClaims{UserID: parts[1], Username: parts[1], Role: domain.Role(parts[2])}, nil
}

type fakeAccounts struct {
	users     map[string]*domain.User
	loginErr  error
	lastQuery string
}

func newFakeAccounts(users ...*domain.User) *fakeAccounts {
	byID := make(map[string]*domain.User)
	for _, u := range users {
		byID[u.ID] = u
	}
	return &fakeAccounts{users: byID}
}

func (f *fakeAccounts) Register(_ context.Context, username, email, _ string, role domain.Role, avatar string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}
	user := &domain.User{ID: "u-new", Username: username, Email: email, Role: role, Avatar: avatar, IsActive: true}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeAccounts) Login(_ context.Context, email, _ string) (*domain.AuthSession, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return &domain.AuthSession{AccessToken: "token:" + u.ID + ":" + string(u.Role), User: u}, nil
		}
	}
	return nil, domain.WrapError(domain.ErrUnauthorized, "login", errors.New("invalid credentials"))
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get user", fmt.Errorf("id %s", id))
	}
	return user, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "get user by email", errors.New(email))
}

func (f *fakeAccounts) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "get user by username", errors.New(username))
}

func (f *fakeAccounts) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeAccounts) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	out := make([]domain.User, 0)
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeAccounts) Search(_ context.Context, query string) ([]domain.User, error) {
	f.lastQuery = query
	return nil, nil
}

func (f *fakeAccounts) Update(_ context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "update user", fmt.Errorf("id %s", id))
	}
	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}
	return user, nil
}

func (f *fakeAccounts) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "update role", fmt.Errorf("id %s", id))
	}
	user.Role = role
	return user, nil
}

func (f *fakeAccounts) UpdateAvatar(_ context.Context, id, avatarURL string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "update avatar", fmt.Errorf("id %s", id))
	}
	user.Avatar = avatarURL
	return user, nil
}

func (f *fakeAccounts) SetActive(_ context.Context, id string, active bool) error {
	user, ok := f.users[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "set active", fmt.Errorf("id %s", id))
	}
	user.IsActive = active
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return domain.WrapError(domain.ErrNotFound, "delete user", fmt.Errorf("id %s", id))
	}
	delete(f.users, id)
	return nil
}

type fakeProjects struct {
	projects map[string]*domain.Project
}

func newFakeProjects(projects ...*domain.Project) *fakeProjects {
	byID := make(map[string]*domain.Project)
	for _, p := range projects {
		byID[p.ID] = p
	}
	return &fakeProjects{projects: byID}
}

func (f *fakeProjects) Create(_ context.Context, name, description, startDate, endDate, createdBy string) (*domain.Project, error) {
	if name == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create project", errors.New("name is required"))
	}
	project := &domain.Project{
		ID: "p-new", Name: name, Description: description,
		StartDate: startDate, EndDate: endDate, CreatedBy: createdBy,
		Status: domain.ProjectStatusPlanned, TeamMembers: []domain.TeamMember{}, Tasks: []domain.ProjectTask{},
	}
	f.projects[project.ID] = project
	return project, nil
}

func (f *fakeProjects) GetByID(_ context.Context, id string) (*domain.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get project", fmt.Errorf("id %s", id))
	}
	return project, nil
}

func (f *fakeProjects) ListAll(_ context.Context) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProjects) ListByUser(_ context.Context, userID string) ([]domain.Project, error) {
	out := make([]domain.Project, 0)
	for _, p := range f.projects {
		if p.CreatedBy == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjects) Update(_ context.Context, id string, update domain.ProjectUpdate) (*domain.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "update project", fmt.Errorf("id %s", id))
	}
	if update.Status != nil {
		project.Status = *update.Status
	}
	return project, nil
}

func (f *fakeProjects) Delete(_ context.Context, id string) error {
	if _, ok := f.projects[id]; !ok {
		return domain.WrapError(domain.ErrNotFound, "delete project", fmt.Errorf("id %s", id))
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjects) AddTeamMember(_ context.Context, projectID string, member domain.TeamMember) (*domain.Project, error) {
	project, ok := f.projects[projectID]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "add team member", fmt.Errorf("id %s", projectID))
	}
	project.TeamMembers = append(project.TeamMembers, member)
	return project, nil
}

func (f *fakeProjects) AddTask(_ context.Context, projectID, name, description, assignedTo string) (*domain.Project, error) {
	project, ok := f.projects[projectID]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "add task", fmt.Errorf("id %s", projectID))
	}
	project.Tasks = append(project.Tasks, domain.ProjectTask{
		ID: "t-new", Name: name, Description: description, AssignedTo: assignedTo,
		Status: domain.ProjectTaskStatusPending,
	})
	return project, nil
}
