package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dkrasnov/workdesk/internal/core/domain"
)

func newTestRouter(ingestor *fakeIngestor, answerer *fakeAnswerer) http.Handler {
	return NewRouter(ingestor, answerer, newFakeAccounts(), newFakeProjects(), fakeTokens{}).Handler()
}

func TestQueryRejectsBlankQuestion(t *testing.T) {
	handler := newTestRouter(&fakeIngestor{}, &fakeAnswerer{})

	for _, body := range []string{`{}`, `{"question":"   "}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/rag/query", strings.NewReader(body))
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		if res.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, res.Code)
		}
	}
}

func TestQueryReturnsAnswerJSON(t *testing.T) {
	answerer := &fakeAnswerer{result: domain.AnswerResult{
		Question:     "What is the roadmap?",
		Answer:       "The roadmap targets Q4.",
		HasKnowledge: true,
		Mode:         domain.AnswerModeGrounded,
		SourceCount:  3,
	}}
	handler := newTestRouter(&fakeIngestor{}, answerer)

	req := httptest.NewRequest(http.MethodPost, "/api/rag/query", strings.NewReader(`{"question":"What is the roadmap?"}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if answerer.gotQuestion != "What is the roadmap?" {
		t.Fatalf("unexpected question passed through: %q", answerer.gotQuestion)
	}

	var payload map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["answer"] != "The roadmap targets Q4." || payload["has_knowledge"] != true {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if _, leaked := payload["mode"]; leaked {
		t.Fatal("internal answer mode must not appear in the response body")
	}
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadRequiresFileField(t *testing.T) {
	handler := newTestRouter(&fakeIngestor{}, &fakeAnswerer{})

	body, contentType := multipartBody(t, "attachment", "report.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/api/rag/upload", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing file field, got %d", res.Code)
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	ingestor := &fakeIngestor{}
	handler := newTestRouter(ingestor, &fakeAnswerer{})

	body, contentType := multipartBody(t, "file", "notes.txt", "plain text")
	req := httptest.NewRequest(http.MethodPost, "/api/rag/upload", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-pdf upload, got %d", res.Code)
	}
	if ingestor.gotName != "" {
		t.Fatal("ingestion must not run for rejected files")
	}
}

func TestUploadSuccessReturnsFilename(t *testing.T) {
	ingestor := &fakeIngestor{}
	handler := newTestRouter(ingestor, &fakeAnswerer{})

	body, contentType := multipartBody(t, "file", "report.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/api/rag/upload", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", res.Code, res.Body.String())
	}

	var payload map[string]string
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["filename"] != "report.pdf" || payload["message"] == "" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if ingestor.gotName != "report.pdf" {
		t.Fatalf("ingestor got filename %q", ingestor.gotName)
	}
}

func TestUploadIngestionFailureIs500(t *testing.T) {
	ingestor := &fakeIngestor{err: errors.New("extraction failed")}
	handler := newTestRouter(ingestor, &fakeAnswerer{})

	body, contentType := multipartBody(t, "file", "report.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/api/rag/upload", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for failed ingestion, got %d", res.Code)
	}
}
