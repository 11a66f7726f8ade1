package httpadapter

import (
	"net/http"

	"github.com/dkrasnov/workdesk/internal/core/domain"
)

func (rt *Router) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Avatar   string `json:"avatar"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := rt.accounts.Register(r.Context(), req.Username, req.Email, req.Password, domain.Role(req.Role), req.Avatar)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (rt *Router) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := rt.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (rt *Router) listUsers(w http.ResponseWriter, r *http.Request) {
	if query := r.URL.Query().Get("q"); query != "" {
		users, err := rt.accounts.Search(r.Context(), query)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
		return
	}

	users, err := rt.accounts.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (rt *Router) listUsersByRole(w http.ResponseWriter, r *http.Request) {
	users, err := rt.accounts.ListByRole(r.Context(), domain.Role(r.PathValue("role")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (rt *Router) currentUser(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	user, err := rt.accounts.GetByID(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (rt *Router) updateCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	update, ok := decodeUserUpdate(w, r)
	if !ok {
		return
	}

	user, err := rt.accounts.Update(r.Context(), claims.UserID, update)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (rt *Router) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := rt.accounts.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (rt *Router) getUserByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := rt.accounts.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (rt *Router) getUserByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := rt.accounts.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// updateUser lets a user edit their own profile; admins can edit anyone.
// Role changes go through the dedicated role endpoint.
func (rt *Router) updateUser(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	id := r.PathValue("id")
	if claims.UserID != id && !claims.Role.IsAdmin() {
		writeError(w, http.StatusForbidden, "cannot modify another user")
		return
	}

	update, ok := decodeUserUpdate(w, r)
	if !ok {
		return
	}

	user, err := rt.accounts.Update(r.Context(), id, update)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (rt *Router) updateUserRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := rt.accounts.UpdateRole(r.Context(), r.PathValue("id"), domain.Role(req.Role))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (rt *Router) updateUserAvatar(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	id := r.PathValue("id")
	if claims.UserID != id {
		writeError(w, http.StatusForbidden, "can only update your own avatar")
		return
	}

	var req struct {
		Avatar string `json:"avatar"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Avatar == "" {
		writeError(w, http.StatusBadRequest, "avatar URL is required")
		return
	}

	user, err := rt.accounts.UpdateAvatar(r.Context(), id, req.Avatar)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (rt *Router) deactivateUser(w http.ResponseWriter, r *http.Request) {
	rt.setUserActive(w, r, false)
}

func (rt *Router) activateUser(w http.ResponseWriter, r *http.Request) {
	rt.setUserActive(w, r, true)
}

func (rt *Router) setUserActive(w http.ResponseWriter, r *http.Request, active bool) {
	if err := rt.accounts.SetActive(r.Context(), r.PathValue("id"), active); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_active": active})
}

func (rt *Router) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := rt.accounts.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// decodeUserUpdate parses a profile patch. Role changes are excluded here;
// they go through the dedicated admin endpoint.
func decodeUserUpdate(w http.ResponseWriter, r *http.Request) (domain.UserUpdate, bool) {
	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Avatar   *string `json:"avatar"`
	}
	if !decodeJSON(w, r, &req) {
		return domain.UserUpdate{}, false
	}

	return domain.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Avatar:   req.Avatar,
	}, true
}
