package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adjustkit/claimlens/internal/cache"
	"github.com/adjustkit/claimlens/internal/check"
	"github.com/adjustkit/claimlens/internal/extract"
	"github.com/adjustkit/claimlens/internal/fusion"
	"github.com/adjustkit/claimlens/internal/imaging"
	"github.com/adjustkit/claimlens/internal/llm"
	"github.com/adjustkit/claimlens/internal/model"
	"github.com/adjustkit/claimlens/internal/routing"
)

// Pipeline runs the complete intake process for one submission:
// narrative extraction, attachment analysis, fusion into a canonical
// claim, the quality check, and optional routing.
type Pipeline struct {
	loader    *Loader
	extractor extract.TextExtractor
	analyzer  imaging.Analyzer
	fusion    *fusion.Engine
	checker   *check.Checker
	router    *routing.Engine // nil unless routing is enabled
	renderer  *Renderer
	config    *model.Config
}

// NewPipeline assembles a pipeline from configuration. It fails fast on
// anything that would make every run fail later: an extractor provider
// without credentials, an unknown analyzer, a fraud provider that
// cannot be built.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	extractor, err := llm.NewExtractor(llm.ConfigFromModel(cfg.Extractor))
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}
	if cfg.Cache.Enabled {
		store := cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		extractor = extract.NewCachedExtractor(extractor, store, cfg.Cache.TTL)
	}

	analyzer, err := imaging.NewAnalyzer(cfg.Imaging.Analyzer)
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}

	var router *routing.Engine
	if cfg.Routing.Enabled {
		analyst, err := fraudAnalyst(cfg.Routing)
		if err != nil {
			return nil, fmt.Errorf("build fraud analyst: %w", err)
		}
		router = routing.NewEngine(analyst)
	}

	return &Pipeline{
		loader:    NewLoader(0),
		extractor: extractor,
		analyzer:  analyzer,
		fusion:    fusion.NewEngine(cfg.Fusion, nil),
		checker:   check.NewChecker(nil),
		router:    router,
		renderer:  NewRenderer(cfg.Output.Pretty),
		config:    cfg,
	}, nil
}

// fraudAnalyst builds the configured fraud analyst. The heuristic one
// needs no credentials and is the default.
func fraudAnalyst(cfg model.RoutingConfig) (routing.FraudAnalyst, error) {
	switch strings.ToLower(cfg.FraudProvider) {
	case "", "heuristic":
		return routing.NewHeuristicAnalyst(), nil
	case "openai":
		return llm.NewFraudAnalyzer(llm.Config{
			Provider: "openai",
			Model:    cfg.FraudModel,
			APIKey:   cfg.APIKey,
		})
	default:
		return nil, fmt.Errorf("unknown fraud provider: %s (supported: heuristic, openai)", cfg.FraudProvider)
	}
}

// Assessment is the complete output for one submission: the canonical
// claim, its quality report, and the routing decision when routing ran.
type Assessment struct {
	Claim            *model.PropertyDamageClaim `json:"claim"`
	Report           *model.CheckReport         `json:"check_report"`
	Routing          *model.ProcessingResult    `json:"routing,omitempty"`
	GeneratedAt      time.Time                  `json:"generated_at"`
	ProcessingTimeMS int64                      `json:"processing_time_ms"`
}

// Assess runs the full pipeline for one submission. Degraded extraction
// (an LLM that answered garbage) still produces an assessment, with the
// gaps surfaced by the quality report; only unusable input, analyzer
// failures, and cancellation return errors.
func (p *Pipeline) Assess(ctx context.Context, sub Submission) (*Assessment, error) {
	started := time.Now()

	// 1. Load and normalize the narrative
	raw, err := p.loader.Load(sub)
	if err != nil {
		return nil, fmt.Errorf("load narrative: %w", err)
	}
	narrative := extract.NormalizeNarrative(raw)
	if narrative == "" {
		return nil, fmt.Errorf("submission %s: narrative has no readable text", sub.Label())
	}

	// 2. Extract structured fields from the text
	p.logf("Extracting fields from narrative (%d chars) via %s", len(narrative), p.extractor.Name())
	text, err := p.extractor.Extract(ctx, narrative)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if text.Error != "" {
		p.logf("Warning: extraction degraded: %s", text.Error)
	}

	// 3. Classify the attachments
	p.logf("Analyzing %d attachment(s)", len(sub.Images))
	images, err := p.analyzer.AnalyzeBatch(ctx, sub.Images)
	if err != nil {
		return nil, fmt.Errorf("analyze images: %w", err)
	}

	// 4. Fuse everything into one canonical claim
	claim, err := p.fusion.Fuse(text, images, sub.Claimant)
	if err != nil {
		return nil, fmt.Errorf("fuse: %w", err)
	}
	p.logf("Fused claim %s", claim.ClaimID)

	// 5. Quality check
	report := p.checker.Check(claim)
	p.logf("Completeness %.2f, %d contradiction(s), %d question(s)",
		report.CompletenessScore, len(report.Contradictions), len(report.RecommendedQuestions))

	assessment := &Assessment{
		Claim:  claim,
		Report: report,
	}

	// 6. Routing, when enabled
	if p.router != nil {
		routed, err := p.router.Process(ctx, claim, report)
		if err != nil {
			return nil, fmt.Errorf("route: %w", err)
		}
		assessment.Routing = routed
		p.logf("Routed %s to %s: %s", claim.ClaimID, routed.Decision, routed.RoutingReason)
	}

	assessment.GeneratedAt = time.Now().UTC()
	assessment.ProcessingTimeMS = time.Since(started).Milliseconds()
	return assessment, nil
}

// RenderAssessment writes the assessment to the requested outputs
func (p *Pipeline) RenderAssessment(a *Assessment, jsonPath string, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(a, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.logf("✓ Wrote JSON: %s", jsonPath)
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(a, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.logf("✓ Wrote Markdown: %s", mdPath)
	}

	return nil
}

// Renderer exposes the pipeline's renderer for stdout output
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// logf writes progress to stderr in verbose mode, keeping stdout clean
// for the assessment document
func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// ParseClaim runs the intake pipeline once with the default
// configuration and returns just the fused claim. One-call form for
// embedding; the CLI builds its own Pipeline
func ParseClaim(ctx context.Context, sub Submission) (*model.PropertyDamageClaim, error) {
	p, err := NewPipeline(model.DefaultConfig())
	if err != nil {
		return nil, err
	}
	assessment, err := p.Assess(ctx, sub)
	if err != nil {
		return nil, err
	}
	return assessment.Claim, nil
}
