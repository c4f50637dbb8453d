package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/adjustkit/claimlens/internal/model"
)

// OllamaExtractor runs field extraction through a local Ollama server.
// Useful for narratives that must not leave the machine.
type OllamaExtractor struct {
	baseURL    string
	httpClient *http.Client
	config     Config
}

// Ollama API structures
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"` // "json" constrains output to valid JSON
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"` // Max tokens
}

type ollamaResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

type ollamaError struct {
	Error string `json:"error"`
}

// NewOllamaExtractor creates a new Ollama-backed extractor
func NewOllamaExtractor(config Config) (*OllamaExtractor, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second // Local models can be slow
	}

	return &OllamaExtractor{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(config, timeout),
		config:     config,
	}, nil
}

// Name returns the extractor name
func (e *OllamaExtractor) Name() string {
	return "ollama"
}

// IsAvailable checks if an Ollama server is reachable
func (e *OllamaExtractor) IsAvailable(ctx context.Context) bool {
	url := fmt.Sprintf("%s/api/tags", e.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ollama availability check failed (request creation): %v\n", err)
		return false
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ollama availability check failed (connection to %s): %v\n", e.baseURL, err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Ollama availability check failed (HTTP %d from %s)\n", resp.StatusCode, e.baseURL)
		return false
	}

	return true
}

// Extract runs the extraction prompt against the configured local model
func (e *OllamaExtractor) Extract(ctx context.Context, narrative string) (*model.TextExtraction, error) {
	start := time.Now()
	prompt := buildExtractionPrompt(narrative)

	var lastErr error
	for attempt := 0; attempt <= e.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, retryDelay(attempt-1)); err != nil {
				return nil, err
			}
		}

		content, err := e.complete(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		result, err := parseExtraction(content)
		if err != nil {
			lastErr = err
			continue
		}
		result.ExtractionTimeMS = time.Since(start).Milliseconds()
		return result, nil
	}

	degraded := model.DefaultTextExtraction()
	degraded.Error = lastErr.Error()
	degraded.ExtractionTimeMS = time.Since(start).Milliseconds()
	return degraded, nil
}

// complete makes one generate call and returns the raw response text
func (e *OllamaExtractor) complete(ctx context.Context, prompt string) (string, error) {
	modelName := e.config.Model
	if modelName == "" {
		return "", fmt.Errorf("ollama model must be specified (e.g., llama3.1:8b, mistral)")
	}

	apiReq := ollamaRequest{
		Model:  modelName,
		Prompt: prompt,
		Stream: false,
		Format: "json",
		Options: ollamaOptions{
			Temperature: 0.1, // Extraction wants repeatable answers
			NumPredict:  extractionMaxTokens,
		},
	}

	resp, err := e.makeRequest(ctx, apiReq)
	if err != nil {
		return "", fmt.Errorf("ollama API error: %w", err)
	}
	return strings.TrimSpace(resp.Response), nil
}

// makeRequest makes an HTTP request to the Ollama API
func (e *OllamaExtractor) makeRequest(ctx context.Context, apiReq ollamaRequest) (*ollamaResponse, error) {
	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/generate", e.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr ollamaError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &resp, nil
}
