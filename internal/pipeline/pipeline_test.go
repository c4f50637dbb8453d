package pipeline

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adjustkit/claimlens/internal/model"
)

// testNarrative trips the water/ceiling/kitchen rules and carries a
// dollar amount
const testNarrative = "Hi, my pipe burst in the ceiling three days ago and there is water " +
	"damage all over the kitchen. A contractor quoted $2,500 to repair it. " +
	"The damage looks moderate to me."

// writeTestImages drops attachment files the baseline analyzer will
// classify as damage photo, receipt, and report
func writeTestImages(t *testing.T, dir string) []string {
	t.Helper()
	paths := []string{
		filepath.Join(dir, "IMG_20260115_093012.jpg"),
		filepath.Join(dir, "repair_estimate.pdf"),
		filepath.Join(dir, "police_report.pdf"),
	}
	for _, path := range paths {
		if err := os.WriteFile(path, []byte("attachment"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return paths
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Extractor.Provider = "heuristic"
	cfg.Cache.Enabled = false
	cfg.Output.Verbose = false
	return cfg
}

func TestNewPipeline_Defaults(t *testing.T) {
	p, err := NewPipeline(nil)
	if err != nil {
		t.Fatalf("NewPipeline(nil) failed: %v", err)
	}
	if p.extractor == nil || p.analyzer == nil {
		t.Error("pipeline must wire an extractor and an analyzer")
	}
	if p.router != nil {
		t.Error("routing must stay off by default")
	}
}

func TestNewPipeline_UnknownAnalyzer(t *testing.T) {
	cfg := testConfig()
	cfg.Imaging.Analyzer = "xray"

	if _, err := NewPipeline(cfg); err == nil {
		t.Fatal("expected error for unknown analyzer")
	}
}

func TestNewPipeline_OpenAIWithoutKey(t *testing.T) {
	cfg := testConfig()
	cfg.Extractor.Provider = "openai"
	cfg.Extractor.APIKey = ""

	if _, err := NewPipeline(cfg); err == nil {
		t.Fatal("expected error for openai extractor without API key")
	}
}

func TestNewPipeline_UnknownFraudProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Routing.Enabled = true
	cfg.Routing.FraudProvider = "watson"

	if _, err := NewPipeline(cfg); err == nil {
		t.Fatal("expected error for unknown fraud provider")
	}
}

func TestPipeline_Assess_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	images := writeTestImages(t, dir)

	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	sub := Submission{
		ID:     "claim-001",
		Text:   testNarrative,
		Images: images,
		Claimant: model.ClaimantInfo{
			Name:         "Jane Smith",
			PolicyNumber: "POL-778901",
		},
	}

	assessment, err := p.Assess(context.Background(), sub)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	claim := assessment.Claim
	if claim == nil {
		t.Fatal("expected a fused claim")
	}
	if claim.ClaimID == "" {
		t.Error("claim must have an ID")
	}
	if claim.Claimant.Name != "Jane Smith" {
		t.Errorf("claimant not carried: %+v", claim.Claimant)
	}
	if claim.Incident.DamageType != model.DamageWater {
		t.Errorf("expected water damage, got %s", claim.Incident.DamageType)
	}
	if claim.PropertyDamage.PropertyType != model.PropertyCeiling {
		t.Errorf("expected ceiling, got %s", claim.PropertyDamage.PropertyType)
	}
	if claim.PropertyDamage.RoomLocation == nil || *claim.PropertyDamage.RoomLocation != "kitchen" {
		t.Errorf("expected kitchen room location, got %v", claim.PropertyDamage.RoomLocation)
	}
	if claim.PropertyDamage.EstimatedRepairCost == nil || *claim.PropertyDamage.EstimatedRepairCost != 2500 {
		t.Errorf("expected $2500 estimate, got %v", claim.PropertyDamage.EstimatedRepairCost)
	}
	if claim.PropertyDamage.Severity != model.SeverityModerate {
		t.Errorf("expected moderate severity, got %s", claim.PropertyDamage.Severity)
	}
	if !claim.Evidence.HasDamagePhotos || claim.Evidence.DamagePhotoCount != 1 {
		t.Errorf("expected 1 damage photo, got %+v", claim.Evidence)
	}
	if !claim.Evidence.HasRepairEstimate || !claim.Evidence.HasIncidentReport {
		t.Errorf("expected estimate and report to be recognized: %+v", claim.Evidence)
	}

	report := assessment.Report
	if report == nil {
		t.Fatal("expected a check report")
	}
	// Heuristic extraction finds no incident date or street address, and
	// one photo is not "multiple"
	if want := 46.0 / 60.0; math.Abs(report.CompletenessScore-want) > 1e-9 {
		t.Errorf("expected completeness %.4f, got %.4f", want, report.CompletenessScore)
	}
	if !report.Complete() {
		t.Error("claim should clear the completeness bar")
	}
	wantMissing := []string{"incident_location", "incident_date", "multiple_photos"}
	if len(report.MissingRequiredEvidence) != len(wantMissing) {
		t.Fatalf("expected missing %v, got %v", wantMissing, report.MissingRequiredEvidence)
	}
	for i, name := range wantMissing {
		if report.MissingRequiredEvidence[i] != name {
			t.Errorf("missing[%d]: expected %s, got %s", i, name, report.MissingRequiredEvidence[i])
		}
	}
	if len(report.Contradictions) != 0 {
		t.Errorf("expected no contradictions, got %v", report.Contradictions)
	}
	if len(report.RecommendedQuestions) != 2 {
		t.Errorf("expected questions about location and date, got %v", report.RecommendedQuestions)
	}

	if assessment.Routing != nil {
		t.Error("routing result must be absent when routing is disabled")
	}
	if assessment.GeneratedAt.IsZero() {
		t.Error("assessment must be timestamped")
	}
	if assessment.ProcessingTimeMS < 0 {
		t.Errorf("negative processing time: %d", assessment.ProcessingTimeMS)
	}
}

func TestPipeline_Assess_WithRouting(t *testing.T) {
	dir := t.TempDir()
	images := writeTestImages(t, dir)

	cfg := testConfig()
	cfg.Routing.Enabled = true
	cfg.Routing.FraudProvider = "heuristic"

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	sub := Submission{
		Text:   testNarrative,
		Images: images,
		Claimant: model.ClaimantInfo{
			Name:         "Jane Smith",
			PolicyNumber: "POL-778901",
			ContactPhone: "555-867-5309",
		},
	}

	assessment, err := p.Assess(context.Background(), sub)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	routed := assessment.Routing
	if routed == nil {
		t.Fatal("expected a routing result")
	}
	if routed.ClaimID != assessment.Claim.ClaimID {
		t.Errorf("routing must reference the fused claim, got %s", routed.ClaimID)
	}
	if !routed.IsComplete {
		t.Errorf("claim should be complete for routing: %+v", routed)
	}
	if len(routed.ValidationErrors) != 0 {
		t.Errorf("expected clean validation, got %v", routed.ValidationErrors)
	}
	// The only heuristic red flag is the absent incident date
	if math.Abs(routed.FraudScore-0.1) > 1e-9 {
		t.Errorf("expected fraud score 0.1, got %.2f", routed.FraudScore)
	}
	if routed.Priority != model.PriorityNormal {
		t.Errorf("expected normal priority, got %s", routed.Priority)
	}
	if routed.Decision != model.RouteStandardQueue {
		t.Errorf("expected standard queue, got %s", routed.Decision)
	}
	if routed.FinalStatus != "in_progress" {
		t.Errorf("expected in_progress, got %s", routed.FinalStatus)
	}
	if len(routed.NextActions) == 0 {
		t.Error("expected next actions")
	}
}

func TestPipeline_Assess_HTMLNarrative(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	sub := Submission{
		Text: "<html><body><p>Pipe burst in the <b>kitchen</b> ceiling.</p>" +
			"<script>var tracker = 1;</script></body></html>",
	}

	assessment, err := p.Assess(context.Background(), sub)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	claim := assessment.Claim
	if claim.PropertyDamage.RoomLocation == nil || *claim.PropertyDamage.RoomLocation != "kitchen" {
		t.Errorf("markup should not hide the room, got %v", claim.PropertyDamage.RoomLocation)
	}
	if claim.Incident.Description == nil {
		t.Fatal("expected a description")
	}
	if strings.Contains(*claim.Incident.Description, "var tracker") {
		t.Errorf("script content leaked into the description: %q", *claim.Incident.Description)
	}
}

func TestPipeline_Assess_NoNarrative(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	_, err = p.Assess(context.Background(), Submission{ID: "claim-009"})
	if err == nil {
		t.Fatal("expected error for submission without narrative")
	}
}

func TestPipeline_Assess_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	images := writeTestImages(t, dir)

	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Assess(ctx, Submission{Text: testNarrative, Images: images})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestParseClaim(t *testing.T) {
	claim, err := ParseClaim(context.Background(), Submission{Text: testNarrative})
	if err != nil {
		t.Fatalf("ParseClaim failed: %v", err)
	}
	if claim.Incident.DamageType != model.DamageWater {
		t.Errorf("expected water damage, got %s", claim.Incident.DamageType)
	}
	if claim.PropertyDamage.EstimatedRepairCost == nil || *claim.PropertyDamage.EstimatedRepairCost != 2500 {
		t.Errorf("expected $2500 estimate, got %v", claim.PropertyDamage.EstimatedRepairCost)
	}
	if err := claim.Validate(); err != nil {
		t.Errorf("fused claim must validate: %v", err)
	}
}
