package httpadapter

import (
	"net/http"

	"github.com/dkrasnov/workdesk/internal/core/domain"
)

func (rt *Router) createProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	claims := claimsFromContext(r.Context())
	project, err := rt.projects.Create(r.Context(), req.Name, req.Description, req.StartDate, req.EndDate, claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (rt *Router) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := rt.projects.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (rt *Router) listMyProjects(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	projects, err := rt.projects.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (rt *Router) getProject(w http.ResponseWriter, r *http.Request) {
	project, err := rt.projects.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (rt *Router) updateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		StartDate   *string `json:"start_date"`
		EndDate     *string `json:"end_date"`
		Status      *string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	update := domain.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		update.Status = &status
	}

	project, err := rt.projects.Update(r.Context(), r.PathValue("id"), update)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (rt *Router) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := rt.projects.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "project deleted"})
}

func (rt *Router) addTeamMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	project, err := rt.projects.AddTeamMember(r.Context(), r.PathValue("id"), domain.TeamMember{
		UserID: req.UserID,
		Role:   req.Role,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (rt *Router) addProjectTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		AssignedTo  string `json:"assigned_to"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	project, err := rt.projects.AddTask(r.Context(), r.PathValue("id"), req.Name, req.Description, req.AssignedTo)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}
