package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOllamaExtractor_Extract_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Model != "llama3.1:8b" {
			t.Errorf("Expected model llama3.1:8b, got %s", req.Model)
		}
		if req.Format != "json" {
			t.Errorf("Expected JSON format constraint, got %q", req.Format)
		}
		if req.Stream {
			t.Error("Expected stream to be disabled")
		}

		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:    "llama3.1:8b",
			Response: sampleExtractionJSON,
			Done:     true,
		})
	}))
	defer server.Close()

	extractor, err := NewOllamaExtractor(Config{
		BaseURL: server.URL,
		Model:   "llama3.1:8b",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to create extractor: %v", err)
	}

	result, err := extractor.Extract(context.Background(), "Burst pipe flooded the kitchen ceiling")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.Error != "" {
		t.Errorf("Expected clean result, got error %q", result.Error)
	}
	if result.DamageType != "water" {
		t.Errorf("Expected damage_type water, got %s", result.DamageType)
	}
}

func TestOllamaExtractor_Extract_RequiresModel(t *testing.T) {
	extractor, err := NewOllamaExtractor(Config{BaseURL: "http://localhost:1"})
	if err != nil {
		t.Fatalf("Failed to create extractor: %v", err)
	}

	result, err := extractor.Extract(context.Background(), "water damage")
	if err != nil {
		t.Fatalf("Expected degraded result, not error: %v", err)
	}
	if result.Error == "" {
		t.Fatal("Expected Error field set without a model name")
	}
}

func TestOllamaExtractor_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"models": [{"name": "llama3.1:8b"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	extractor, err := NewOllamaExtractor(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create extractor: %v", err)
	}

	if !extractor.IsAvailable(context.Background()) {
		t.Error("Expected available to be true")
	}

	server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if extractor.IsAvailable(context.Background()) {
		t.Error("Expected available to be false on error")
	}
}
