package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/adjustkit/claimlens/internal/model"
)

// fraudMaxTokens bounds the fraud assessment response
const fraudMaxTokens = 500

const fraudSystemPrompt = `You are a fraud detection analyst for an insurance company.
Analyze the property damage claim data and identify potential fraud indicators.

Consider:
1. Timing anomalies (reported too late, vague dates)
2. Inconsistent details (damage type vs description mismatch)
3. Suspicious patterns (exaggerated damage, high repair estimates)
4. Red flags in the description (vague details, no witnesses)
5. Evidence gaps (no photos, no repair estimates)

Respond with JSON only:
{
    "fraud_score": 0.0-1.0 (higher = more suspicious),
    "indicators": ["list of specific concerns"],
    "reasoning": "brief explanation"
}

Be objective. Most claims are legitimate. Only flag genuine concerns.`

// FraudAnalyzer scores fraud risk with an LLM. A neutral assessment
// comes back when the API fails, so routing keeps working offline.
type FraudAnalyzer struct {
	client *openai.Client
	config Config
}

// NewFraudAnalyzer creates an OpenAI-backed fraud analyzer
func NewFraudAnalyzer(config Config) (*FraudAnalyzer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = newHTTPClient(config, config.timeout())

	return &FraudAnalyzer{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the analyst name
func (a *FraudAnalyzer) Name() string {
	return "openai"
}

// Assess scores one claim for fraud risk. API failures degrade to a
// neutral score of 0.3 with the failure recorded as an indicator;
// context cancellation is the only hard error.
func (a *FraudAnalyzer) Assess(ctx context.Context, claim *model.PropertyDamageClaim) (*model.FraudAssessment, error) {
	modelName := a.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	callCtx, cancel := context.WithTimeout(ctx, a.config.timeout())
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: modelName,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fraudSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildFraudPrompt(claim)},
		},
		MaxTokens: fraudMaxTokens,
	}

	resp, err := a.client.CreateChatCompletion(callCtx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return neutralAssessment(err), nil
	}
	if len(resp.Choices) == 0 {
		return neutralAssessment(fmt.Errorf("no response from OpenAI")), nil
	}

	var assessment model.FraudAssessment
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &assessment); err != nil {
		return neutralAssessment(fmt.Errorf("parse fraud JSON: %w", err)), nil
	}
	if assessment.Indicators == nil {
		assessment.Indicators = []string{}
	}

	return &assessment, nil
}

// neutralAssessment is the fallback when analysis cannot run
func neutralAssessment(cause error) *model.FraudAssessment {
	return &model.FraudAssessment{
		Score:      0.3,
		Indicators: []string{fmt.Sprintf("Analysis error: %v", cause)},
	}
}

// buildFraudPrompt renders the claim facts the analyst reasons over
func buildFraudPrompt(claim *model.PropertyDamageClaim) string {
	description := "not provided"
	if claim.Incident.Description != nil {
		description = *claim.Incident.Description
	}
	date := "not provided"
	if claim.Incident.Date != nil {
		date = claim.Incident.Date.Format(time.RFC3339)
	}
	location := "not provided"
	if claim.Incident.Location != nil {
		location = *claim.Incident.Location
	}
	repairCost := "not provided"
	if claim.PropertyDamage.EstimatedRepairCost != nil {
		repairCost = fmt.Sprintf("%.2f", *claim.PropertyDamage.EstimatedRepairCost)
	}

	return fmt.Sprintf(`Analyze this property damage claim for fraud risk:

Damage Type: %s
Description: %s
Date: %s
Location: %s
Property Type: %s
Severity: %s
Estimated Repair Cost: %s
Has Damage Photos: %t
Has Repair Estimate: %t
`,
		claim.Incident.DamageType,
		description,
		date,
		location,
		claim.PropertyDamage.PropertyType,
		claim.PropertyDamage.Severity,
		repairCost,
		claim.Evidence.HasDamagePhotos,
		claim.Evidence.HasRepairEstimate,
	)
}
