package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/adjustkit/claimlens/internal/model"
)

// OpenAIExtractor runs field extraction through OpenAI's Chat
// Completions API
type OpenAIExtractor struct {
	client *openai.Client
	config Config
}

// NewOpenAIExtractor creates a new OpenAI-backed extractor
func NewOpenAIExtractor(config Config) (*OpenAIExtractor, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = newHTTPClient(config, config.timeout())

	return &OpenAIExtractor{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the extractor name
func (e *OpenAIExtractor) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (e *OpenAIExtractor) IsAvailable(ctx context.Context) bool {
	// Lightweight API call; surfaces key and connectivity problems
	_, err := e.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Extract runs the extraction prompt against the configured model.
// Transport failures and unparseable answers are retried with backoff;
// once retries are exhausted the extractor degrades to a default
// extraction with the Error field set rather than failing the claim.
func (e *OpenAIExtractor) Extract(ctx context.Context, narrative string) (*model.TextExtraction, error) {
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
			// A fresh sample may parse where this one did not
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

// complete makes one chat completion call and returns the raw content
func (e *OpenAIExtractor) complete(ctx context.Context, prompt string) (string, error) {
	modelName := e.config.Model
	if modelName == "" {
		modelName = openai.GPT4Turbo
	}

	callCtx, cancel := context.WithTimeout(ctx, e.config.timeout())
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: modelName,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: extractionMaxTokens,
	}

	resp, err := e.client.CreateChatCompletion(callCtx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("OpenAI API error: %v: %w", apiErr.Message, ErrQuotaExceeded)
		}
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
