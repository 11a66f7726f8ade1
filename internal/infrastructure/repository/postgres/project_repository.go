package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkrasnov/workdesk/internal/core/domain"
)

// ProjectRepository keeps team membership and tasks as JSONB arrays on the
// project row, so a project always loads as one aggregate.
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082503)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	created_by TEXT NOT NULL,
	status TEXT NOT NULL,
	team_members JSONB NOT NULL DEFAULT '[]'::jsonb,
	tasks JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_created_by ON projects(created_by);
CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

const projectColumns = `id, name, description, start_date, end_date, created_by, status, team_members, tasks, created_at, updated_at`

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	membersJSON, err := json.Marshal(project.TeamMembers)
	if err != nil {
		return fmt.Errorf("marshal team members: %w", err)
	}
	tasksJSON, err := json.Marshal(project.Tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO projects (id, name, description, start_date, end_date, created_by, status, team_members, tasks, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`,
		project.ID, project.Name, project.Description, project.StartDate, project.EndDate,
		project.CreatedBy, string(project.Status), membersJSON, tasksJSON,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row, "get project")
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	// The containment object must carry only user_id: jsonb @> matches a
	// stored member exactly on every key present, and stored members
	// always have a non-empty role.
	membership, err := json.Marshal([]map[string]string{{"user_id": userID}})
	if err != nil {
		return nil, fmt.Errorf("marshal membership filter: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+projectColumns+` FROM projects
WHERE created_by = $1 OR team_members @> $2::jsonb
ORDER BY created_at DESC
`, userID, membership)
	if err != nil {
		return nil, fmt.Errorf("list projects by user: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (r *ProjectRepository) Update(ctx context.Context, id string, update domain.ProjectUpdate) error {
	sets := make([]string, 0, 6)
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		addSet("name", *update.Name)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.StartDate != nil {
		addSet("start_date", *update.StartDate)
	}
	if update.EndDate != nil {
		addSet("end_date", *update.EndDate)
	}
	if update.Status != nil {
		addSet("status", string(*update.Status))
	}
	if len(sets) == 0 {
		return nil
	}
	addSet("updated_at", time.Now().UTC())

	query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = $1`, strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.WrapError(domain.ErrNotFound, "update project", fmt.Errorf("id %s", id))
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete project", fmt.Errorf("id %s", id))
	}
	return nil
}

// AddTeamMember re-reads the member list under a row lock so concurrent
// additions cannot drop each other. Adding an existing user is a no-op.
func (r *ProjectRepository) AddTeamMember(ctx context.Context, projectID string, member domain.TeamMember) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add member tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var membersRaw []byte
	err = tx.QueryRowContext(ctx, `SELECT team_members FROM projects WHERE id = $1 FOR UPDATE`, projectID).Scan(&membersRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WrapError(domain.ErrNotFound, "add team member", fmt.Errorf("project %s", projectID))
		}
		return fmt.Errorf("lock project row: %w", err)
	}

	var members []domain.TeamMember
	if err := json.Unmarshal(membersRaw, &members); err != nil {
		return fmt.Errorf("unmarshal team members: %w", err)
	}
	for _, m := range members {
		if m.UserID == member.UserID {
			return nil
		}
	}
	members = append(members, member)

	membersJSON, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("marshal team members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
UPDATE projects SET team_members = $2, updated_at = $3 WHERE id = $1
`, projectID, membersJSON, time.Now().UTC()); err != nil {
		return fmt.Errorf("update team members: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add member tx: %w", err)
	}
	return nil
}

func (r *ProjectRepository) AppendTask(ctx context.Context, projectID string, task domain.ProjectTask) error {
	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE projects
SET tasks = tasks || $2::jsonb, updated_at = $3
WHERE id = $1
`, projectID, taskJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append task: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.WrapError(domain.ErrNotFound, "append task", fmt.Errorf("project %s", projectID))
	}
	return nil
}

func scanProject(row rowScanner, operation string) (*domain.Project, error) {
	var project domain.Project
	var status string
	var membersRaw, tasksRaw []byte

	err := row.Scan(
		&project.ID, &project.Name, &project.Description, &project.StartDate, &project.EndDate,
		&project.CreatedBy, &status, &membersRaw, &tasksRaw, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, operation, err)
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}

	if err := json.Unmarshal(membersRaw, &project.TeamMembers); err != nil {
		return nil, fmt.Errorf("unmarshal team members: %w", err)
	}
	if err := json.Unmarshal(tasksRaw, &project.Tasks); err != nil {
		return nil, fmt.Errorf("unmarshal tasks: %w", err)
	}
	project.Status = domain.ProjectStatus(status)
	return &project, nil
}

func collectProjects(rows *sql.Rows) ([]domain.Project, error) {
	projects := make([]domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows, "scan project row")
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}
