package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dkrasnov/workdesk/internal/core/domain"
)

func TestGeneratorGroundedPromptCarriesContext(t *testing.T) {
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedPrompt, _ = payload["prompt"].(string)
		_, _ = w.Write([]byte(`{"response":"ok"}`))
	}))
	defer server.Close()

	client := New(server.URL, "gen", "embed", nil)
	gen := NewGenerator(client)
	_, err := gen.GenerateGrounded(context.Background(), "question?", []domain.RetrievedChunk{
		{Filename: "a.pdf", Text: "chunk text", Score: 0.99},
	})
	if err != nil {
		t.Fatalf("GenerateGrounded() error = %v", err)
	}
	if !strings.Contains(capturedPrompt, "question?") || !strings.Contains(capturedPrompt, "chunk text") {
		t.Fatalf("unexpected prompt: %s", capturedPrompt)
	}
	if !strings.Contains(capturedPrompt, "I don't have information about that.") {
		t.Fatalf("expected no-information sentinel in prompt: %s", capturedPrompt)
	}
}

func TestGeneratorFallbackPromptOmitsContextInstruction(t *testing.T) {
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		capturedPrompt, _ = payload["prompt"].(string)
		_, _ = w.Write([]byte(`{"response":"general answer"}`))
	}))
	defer server.Close()

	client := New(server.URL, "gen", "embed", nil)
	gen := NewGenerator(client)
	answer, err := gen.GenerateFallback(context.Background(), "what is Go?")
	if err != nil {
		t.Fatalf("GenerateFallback() error = %v", err)
	}
	if answer != "general answer" {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if strings.Contains(capturedPrompt, "Context:") {
		t.Fatalf("fallback prompt should not carry retrieved context: %s", capturedPrompt)
	}
	if !strings.Contains(capturedPrompt, "general knowledge") {
		t.Fatalf("expected general-knowledge instruction: %s", capturedPrompt)
	}
}

func TestEmbedIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, "gen", "embed", nil)
	embedder := NewEmbedder(client)
	_, err := embedder.Embed(context.Background(), []string{"hello"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestRetryableStatusWrappedAsTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "gen", "embed", nil)
	embedder := NewEmbedder(client)
	_, err := embedder.Embed(context.Background(), []string{"hello"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary kind, got %v", err)
	}
}

func TestClassifierParsesWrappedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"noise {\"category\":\"process\",\"tags\":[\"agile\"],\"summary\":\"sprint guide\"} trailing"}`))
	}))
	defer server.Close()

	client := New(server.URL, "gen", "embed", nil)
	classifier := NewClassifier(client)
	cls, err := classifier.Classify(context.Background(), "document text")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if cls.Category != "process" || len(cls.Tags) != 1 || cls.Summary != "sprint guide" {
		t.Fatalf("unexpected classification: %+v", cls)
	}
}

func TestEmbedQueryReturnsFirstVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"embeddings":[[0.1,0.2,0.3]]}`))
	}))
	defer server.Close()

	client := New(server.URL, "gen", "embed", nil)
	embedder := NewEmbedder(client)
	vec, err := embedder.EmbedQuery(context.Background(), "hello")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}
	if len(vec) != 3 {
		t.Fatalf("expected 3-dim vector, got %d", len(vec))
	}
}
