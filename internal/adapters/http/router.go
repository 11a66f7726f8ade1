package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/dkrasnov/workdesk/internal/core/ports"
	"github.com/dkrasnov/workdesk/internal/observability/metrics"
)

type Router struct {
	ingestor ports.DocumentIngestor
	answerer ports.QuestionAnswerer
	accounts ports.AccountService
	projects ports.ProjectTracker
	tokens   ports.TokenManager

	service string
	metrics *metrics.HTTPServerMetrics
}

func NewRouter(
	ingestor ports.DocumentIngestor,
	answerer ports.QuestionAnswerer,
	accounts ports.AccountService,
	projects ports.ProjectTracker,
	tokens ports.TokenManager,
) *Router {
	return &Router{
		ingestor: ingestor,
		answerer: answerer,
		accounts: accounts,
		projects: projects,
		tokens:   tokens,
		service:  "api",
	}
}

// WithMetrics attaches the prometheus collectors to be exposed on /metrics
// and fed by the RAG handlers.
func (rt *Router) WithMetrics(m *metrics.HTTPServerMetrics) *Router {
	rt.metrics = m
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	mux.HandleFunc("POST /api/rag/query", rt.queryRAG)
	mux.HandleFunc("POST /api/rag/upload", rt.uploadDocument)

	mux.HandleFunc("POST /api/auth/register", rt.register)
	mux.HandleFunc("POST /api/auth/login", rt.login)

	mux.HandleFunc("GET /api/users", rt.listUsers)
	mux.HandleFunc("GET /api/users/me", requireAuth(rt.tokens, rt.currentUser))
	mux.HandleFunc("PUT /api/users/me", requireAuth(rt.tokens, rt.updateCurrentUser))
	mux.HandleFunc("GET /api/users/email/{email}", requireAuth(rt.tokens, rt.getUserByEmail))
	mux.HandleFunc("GET /api/users/username/{username}", requireAuth(rt.tokens, rt.getUserByUsername))
	mux.HandleFunc("GET /api/users/role/{role}", requireAuth(rt.tokens, rt.listUsersByRole))
	mux.HandleFunc("GET /api/users/{id}", requireAuth(rt.tokens, rt.getUser))
	mux.HandleFunc("PUT /api/users/{id}", requireAuth(rt.tokens, rt.updateUser))
	mux.HandleFunc("DELETE /api/users/{id}", requireAdmin(rt.tokens, rt.deleteUser))
	mux.HandleFunc("PUT /api/users/{id}/role", requireAdmin(rt.tokens, rt.updateUserRole))
	mux.HandleFunc("PUT /api/users/{id}/avatar", requireAuth(rt.tokens, rt.updateUserAvatar))
	mux.HandleFunc("PUT /api/users/{id}/deactivate", requireAdmin(rt.tokens, rt.deactivateUser))
	mux.HandleFunc("PUT /api/users/{id}/activate", requireAdmin(rt.tokens, rt.activateUser))

	mux.HandleFunc("POST /api/projects", requireAuth(rt.tokens, rt.createProject))
	mux.HandleFunc("GET /api/projects", requireAuth(rt.tokens, rt.listProjects))
	mux.HandleFunc("GET /api/my-projects", requireAuth(rt.tokens, rt.listMyProjects))
	mux.HandleFunc("GET /api/projects/{id}", requireAuth(rt.tokens, rt.getProject))
	mux.HandleFunc("PUT /api/projects/{id}", requireAuth(rt.tokens, rt.updateProject))
	mux.HandleFunc("DELETE /api/projects/{id}", requireAuth(rt.tokens, rt.deleteProject))
	mux.HandleFunc("POST /api/projects/{id}/team", requireAuth(rt.tokens, rt.addTeamMember))
	mux.HandleFunc("POST /api/projects/{id}/tasks", requireAuth(rt.tokens, rt.addProjectTask))

	return mux
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, mapErrorToHTTPStatus(err), err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
