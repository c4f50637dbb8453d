package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/adjustkit/claimlens/internal/pipeline"
)

// Assessor runs the intake pipeline for one submission
type Assessor interface {
	Assess(ctx context.Context, sub pipeline.Submission) (*pipeline.Assessment, error)
}

// AssessJob is one claim assessment queued on the pool
type AssessJob struct {
	Submission pipeline.Submission
	Assessor   Assessor
	Limiter    *Limiter // nil means no throttling
	Provider   string   // Extractor provider, the limiter key
}

// Execute runs the assessment, waiting for rate-limit clearance first
// when the extractor calls a remote API
func (j *AssessJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil && remoteProvider(j.Provider) {
		if err := j.Limiter.Wait(ctx, j.Provider); err != nil {
			return &AssessResult{Label: j.Submission.Label(), Error: err}
		}
	}

	assessment, err := j.Assessor.Assess(ctx, j.Submission)
	if err != nil {
		return &AssessResult{
			Label: j.Submission.Label(),
			Error: err,
		}
	}
	return &AssessResult{
		Label:      j.Submission.Label(),
		Assessment: assessment,
	}
}

// AssessResult is the outcome of one assessment job
type AssessResult struct {
	Label      string
	Assessment *pipeline.Assessment
	Error      error
}

// GetError returns the error from the assessment
func (r *AssessResult) GetError() error {
	return r.Error
}

// remoteProvider reports whether the provider calls an API worth
// throttling. The heuristic extractor runs in-process.
func remoteProvider(name string) bool {
	switch strings.ToLower(name) {
	case "openai", "anthropic", "claude", "ollama":
		return true
	}
	return false
}

// BatchProcessor assesses many submissions concurrently
type BatchProcessor struct {
	assessor    Assessor
	concurrency int
	limiter     *Limiter
	provider    string
}

// NewBatchProcessor creates a batch processor. requestsPerSecond at or
// below zero disables throttling.
func NewBatchProcessor(assessor Assessor, concurrency int, requestsPerSecond float64, burst int, provider string) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}

	return &BatchProcessor{
		assessor:    assessor,
		concurrency: concurrency,
		limiter:     limiter,
		provider:    provider,
	}
}

// ProcessSubmissions assesses the submissions concurrently. Results
// arrive in completion order; per-claim failures ride inside their
// result.
func (b *BatchProcessor) ProcessSubmissions(ctx context.Context, subs []pipeline.Submission) []*AssessResult {
	if len(subs) == 0 {
		return []*AssessResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, sub := range subs {
		job := &AssessJob{
			Submission: sub,
			Assessor:   b.assessor,
			Limiter:    b.limiter,
			Provider:   b.provider,
		}
		pool.Submit(job)
	}

	results := pool.Wait()

	assessResults := make([]*AssessResult, len(results))
	for i, result := range results {
		assessResults[i] = result.(*AssessResult)
	}

	return assessResults
}

// ProcessManifest reads a batch manifest and assesses every claim in it
func (b *BatchProcessor) ProcessManifest(ctx context.Context, path string) ([]*AssessResult, error) {
	subs, err := pipeline.LoadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	return b.ProcessSubmissions(ctx, subs), nil
}
