package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/adjustkit/claimlens/internal/model"
)

const (
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-3-5-sonnet-20241022"
)

// AnthropicExtractor runs field extraction through Anthropic's Messages
// API. The API surface is small enough that a hand-rolled client beats
// carrying an SDK dependency.
type AnthropicExtractor struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	config     Config
}

// Anthropic API structures
type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
	System    string             `json:"system,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model        string `json:"model"`
	StopReason   string `json:"stop_reason"`
	StopSequence string `json:"stop_sequence"`
	Usage        struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewAnthropicExtractor creates a new Anthropic-backed extractor
func NewAnthropicExtractor(config Config) (*AnthropicExtractor, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	return &AnthropicExtractor{
		apiKey:     config.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(config, config.timeout()),
		config:     config,
	}, nil
}

// Name returns the extractor name
func (e *AnthropicExtractor) Name() string {
	return "anthropic"
}

// IsAvailable checks if the provider is properly configured
func (e *AnthropicExtractor) IsAvailable(ctx context.Context) bool {
	// Minimal completion; surfaces key and connectivity problems
	req := anthropicRequest{
		Model:     "claude-3-5-haiku-20241022",
		MaxTokens: 10,
		Messages: []anthropicMessage{
			{Role: "user", Content: "Hi"},
		},
	}

	_, err := e.makeRequest(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Anthropic API check failed: %v\n", err)
		return false
	}
	return true
}

// Extract runs the extraction prompt against the configured model.
// Failures are retried with backoff; once retries are exhausted the
// extractor degrades to a default extraction with the Error field set.
func (e *AnthropicExtractor) Extract(ctx context.Context, narrative string) (*model.TextExtraction, error) {
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
			if errors.Is(err, ErrQuotaExceeded) {
				break
			}
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

// complete makes one Messages API call and returns the raw text
func (e *AnthropicExtractor) complete(ctx context.Context, prompt string) (string, error) {
	modelName := e.config.Model
	if modelName == "" {
		modelName = defaultAnthropicModel
	}

	apiReq := anthropicRequest{
		Model:     modelName,
		MaxTokens: extractionMaxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	resp, err := e.makeRequest(ctx, apiReq)
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no content in Anthropic response")
	}
	return strings.TrimSpace(resp.Content[0].Text), nil
}

// makeRequest makes an HTTP request to the Anthropic API
func (e *AnthropicExtractor) makeRequest(ctx context.Context, apiReq anthropicRequest) (*anthropicResponse, error) {
	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/messages", e.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", e.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	httpResp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("API error (%d): %w", httpResp.StatusCode, ErrQuotaExceeded)
	}
	if httpResp.StatusCode != http.StatusOK {
		var apiErr anthropicError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s - %s", httpResp.StatusCode, apiErr.Error.Type, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp anthropicResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &resp, nil
}
