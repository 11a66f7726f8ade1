package httpadapter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dkrasnov/workdesk/internal/core/domain"
)

func authedRequest(method, target, body, userID string, role domain.Role) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token:"+userID+":"+string(role))
	return req
}

func TestProtectedEndpointRequiresToken(t *testing.T) {
	handler := newTestRouter(&fakeIngestor{}, &fakeAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.Code)
	}
}

func TestCurrentUserReturnsCallerProfile(t *testing.T) {
	accounts := newFakeAccounts(&domain.User{ID: "u-1", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser, IsActive: true})
	handler := NewRouter(&fakeIngestor{}, &fakeAnswerer{}, accounts, newFakeProjects(), fakeTokens{}).Handler()

	req := authedRequest(http.MethodGet, "/api/users/me", "", "u-1", domain.RoleUser)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", res.Code, res.Body.String())
	}
	var user domain.User
	if err := json.Unmarshal(res.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.ID != "u-1" || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserCannotUpdateAnotherUser(t *testing.T) {
	accounts := newFakeAccounts(
		&domain.User{ID: "u-1", Username: "alice", Role: domain.RoleUser},
		&domain.User{ID: "u-2", Username: "bob", Role: domain.RoleUser},
	)
	handler := NewRouter(&fakeIngestor{}, &fakeAnswerer{}, accounts, newFakeProjects(), fakeTokens{}).Handler()

	req := authedRequest(http.MethodPut, "/api/users/u-2", `{"username":"eve"}`, "u-1", domain.RoleUser)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}

func TestRoleUpdateRequiresAdmin(t *testing.T) {
	accounts := newFakeAccounts(&domain.User{ID: "u-1", Username: "alice", Role: domain.RoleUser})
	handler := NewRouter(&fakeIngestor{}, &fakeAnswerer{}, accounts, newFakeProjects(), fakeTokens{}).Handler()

	req := authedRequest(http.MethodPut, "/api/users/u-1/role", `{"role":"admin"}`, "u-1", domain.RoleUser)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.Code)
	}

	req = authedRequest(http.MethodPut, "/api/users/u-1/role", `{"role":"admin"}`, "u-9", domain.RoleSuperAdmin)
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 for super_admin, got %d body=%s", res.Code, res.Body.String())
	}

	var user domain.User
	if err := json.Unmarshal(res.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", user.Role)
	}
}

func TestAvatarUpdateIsSelfOnly(t *testing.T) {
	accounts := newFakeAccounts(
		&domain.User{ID: "u-1", Username: "alice", Role: domain.RoleUser},
		&domain.User{ID: "u-2", Username: "bob", Role: domain.RoleSuperAdmin},
	)
	handler := NewRouter(&fakeIngestor{}, &fakeAnswerer{}, accounts, newFakeProjects(), fakeTokens{}).Handler()

	req := authedRequest(http.MethodPut, "/api/users/u-1/avatar", `{"avatar":"https://cdn.example.com/a.png"}`, "u-2", domain.RoleSuperAdmin)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another user's avatar, got %d", res.Code)
	}

	req = authedRequest(http.MethodPut, "/api/users/u-1/avatar", `{"avatar":"https://cdn.example.com/a.png"}`, "u-1", domain.RoleUser)
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", res.Code, res.Body.String())
	}
	var user domain.User
	if err := json.Unmarshal(res.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Avatar != "https://cdn.example.com/a.png" {
		t.Fatalf("avatar not applied: %+v", user)
	}

	req = authedRequest(http.MethodPut, "/api/users/u-1/avatar", `{"avatar":""}`, "u-1", domain.RoleUser)
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty avatar, got %d", res.Code)
	}
}

func TestDeactivateUserRequiresAdmin(t *testing.T) {
	accounts := newFakeAccounts(&domain.User{ID: "u-1", Username: "alice", Role: domain.RoleUser, IsActive: true})
	handler := NewRouter(&fakeIngestor{}, &fakeAnswerer{}, accounts, newFakeProjects(), fakeTokens{}).Handler()

	req := authedRequest(http.MethodPut, "/api/users/u-1/deactivate", "", "u-2", domain.RoleAdmin)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if accounts.users["u-1"].IsActive {
		t.Fatal("expected user to be deactivated")
	}
}

func TestGetMissingUserIs404(t *testing.T) {
	handler := newTestRouter(&fakeIngestor{}, &fakeAnswerer{})

	req := authedRequest(http.MethodGet, "/api/users/ghost", "", "u-1", domain.RoleUser)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestListUsersSupportsSearchQuery(t *testing.T) {
	accounts := newFakeAccounts()
	handler := NewRouter(&fakeIngestor{}, &fakeAnswerer{}, accounts, newFakeProjects(), fakeTokens{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/users?q=ali", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if accounts.lastQuery != "ali" {
		t.Fatalf("expected search query to pass through, got %q", accounts.lastQuery)
	}
}

func TestCreateProjectUsesCallerAsOwner(t *testing.T) {
	projects := newFakeProjects()
	handler := NewRouter(&fakeIngestor{}, &fakeAnswerer{}, newFakeAccounts(), projects, fakeTokens{}).Handler()

	body := `{"name":"Launch","description":"ship it","start_date":"2026-01-01","end_date":"2026-06-30"}`
	req := authedRequest(http.MethodPost, "/api/projects", body, "u-1", domain.RoleUser)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", res.Code, res.Body.String())
	}
	var project domain.Project
	if err := json.Unmarshal(res.Body.Bytes(), &project); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if project.CreatedBy != "u-1" || project.Status != domain.ProjectStatusPlanned {
		t.Fatalf("unexpected project: %+v", project)
	}
}

func TestAddProjectTaskAppends(t *testing.T) {
	projects := newFakeProjects(&domain.Project{ID: "p-1", Name: "Launch", CreatedBy: "u-1"})
	handler := NewRouter(&fakeIngestor{}, &fakeAnswerer{}, newFakeAccounts(), projects, fakeTokens{}).Handler()

	body := `{"name":"review","description":"review the draft","assigned_to":"u-2"}`
	req := authedRequest(http.MethodPost, "/api/projects/p-1/tasks", body, "u-1", domain.RoleUser)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", res.Code, res.Body.String())
	}
	var project domain.Project
	if err := json.Unmarshal(res.Body.Bytes(), &project); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(project.Tasks) != 1 || project.Tasks[0].AssignedTo != "u-2" {
		t.Fatalf("unexpected tasks: %+v", project.Tasks)
	}
}
