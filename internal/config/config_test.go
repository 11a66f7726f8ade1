package config

import "testing"

func TestLoadRAGDefaults(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "")
	t.Setenv("CHUNK_OVERLAP", "")
	t.Setenv("RAG_TOP_K", "")
	t.Setenv("RAG_MIN_CONTEXT_CHARS", "")

	cfg := Load()
	if cfg.ChunkSize != 1000 {
		t.Fatalf("expected default chunk size 1000, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 200 {
		t.Fatalf("expected default chunk overlap 200, got %d", cfg.ChunkOverlap)
	}
	if cfg.RAGTopK != 3 {
		t.Fatalf("expected default top k 3, got %d", cfg.RAGTopK)
	}
	if cfg.RAGMinContextChars != 100 {
		t.Fatalf("expected default min context chars 100, got %d", cfg.RAGMinContextChars)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("RAG_TOP_K", "7")
	t.Setenv("JWT_TTL_MINUTES", "60")
	t.Setenv("API_RATE_LIMIT_RPS", "25")
	t.Setenv("NATS_SUBJECT", "documents.custom")

	cfg := Load()
	if cfg.RAGTopK != 7 {
		t.Fatalf("expected top k 7, got %d", cfg.RAGTopK)
	}
	if cfg.JWTTTLMinutes != 60 {
		t.Fatalf("expected jwt ttl 60, got %d", cfg.JWTTTLMinutes)
	}
	if cfg.APIRateLimitRPS != 25 {
		t.Fatalf("expected rate limit 25, got %d", cfg.APIRateLimitRPS)
	}
	if cfg.NATSSubject != "documents.custom" {
		t.Fatalf("expected subject override, got %q", cfg.NATSSubject)
	}
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "not-a-number")

	cfg := Load()
	if cfg.ChunkSize != 1000 {
		t.Fatalf("expected fallback chunk size 1000, got %d", cfg.ChunkSize)
	}
}
