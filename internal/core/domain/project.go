package domain

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "planned"
	ProjectStatusOngoing   ProjectStatus = "ongoing"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusOngoing, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	default:
		return false
	}
}

type TeamMember struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type ProjectTaskStatus string

const (
	ProjectTaskStatusPending ProjectTaskStatus = "pending"
	ProjectTaskStatusDone    ProjectTaskStatus = "done"
)

type ProjectTask struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	AssignedTo  string            `json:"assigned_to,omitempty"`
	Status      ProjectTaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Project dates are kept as "YYYY-MM-DD" strings, matching the wire format.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	CreatedBy   string        `json:"created_by"`
	Status      ProjectStatus `json:"status"`
	TeamMembers []TeamMember  `json:"team_members"`
	Tasks       []ProjectTask `json:"tasks"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ProjectUpdate carries a partial project update; nil fields are untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	StartDate   *string
	EndDate     *string
	Status      *ProjectStatus
}

func (u ProjectUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.StartDate == nil && u.EndDate == nil && u.Status == nil
}
