package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/adjustkit/claimlens/internal/model"
)

// Renderer writes assessments as JSON documents, Markdown reports, and
// terminal summaries. The pretty flag selects the stdout format: a
// human-readable summary instead of the JSON document.
type Renderer struct {
	pretty bool
}

// NewRenderer creates a renderer
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// RenderStdout writes the assessment to stdout in the configured format
func (r *Renderer) RenderStdout(a *Assessment) error {
	if r.pretty {
		r.RenderSummary(a)
		return nil
	}
	return r.WriteJSON(os.Stdout, a)
}

// WriteJSON writes the assessment document as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, a *Assessment) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write assessment: %w", err)
	}
	return nil
}

// RenderJSON writes the assessment document to a file
func (r *Renderer) RenderJSON(a *Assessment, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()
	return r.WriteJSON(file, a)
}

// RenderMarkdown writes a human-readable report to a file
func (r *Renderer) RenderMarkdown(a *Assessment, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(a)), 0644)
}

// Markdown builds the full report document
func (r *Renderer) Markdown(a *Assessment) string {
	var b strings.Builder
	claim := a.Claim
	report := a.Report

	fmt.Fprintf(&b, "# Claim Assessment: %s\n\n", claim.ClaimID)
	fmt.Fprintf(&b, "Generated: %s · Schema %s\n\n", a.GeneratedAt.Format(time.RFC3339), claim.SchemaVersion)

	if claim.Claimant != (model.ClaimantInfo{}) {
		b.WriteString("## Claimant\n\n")
		writeField(&b, "Name", claim.Claimant.Name)
		writeField(&b, "Policy", claim.Claimant.PolicyNumber)
		writeField(&b, "Phone", claim.Claimant.ContactPhone)
		writeField(&b, "Email", claim.Claimant.ContactEmail)
		b.WriteString("\n")
	}

	b.WriteString("## Incident\n\n")
	if claim.Incident.Date != nil {
		writeProvenanced(&b, "Date", claim.Incident.Date.Format("2006-01-02"), claim.Incident.DateProvenance)
	}
	if claim.Incident.Location != nil {
		writeProvenanced(&b, "Location", *claim.Incident.Location, claim.Incident.LocationProvenance)
	}
	writeProvenanced(&b, "Damage type", string(claim.Incident.DamageType), claim.Incident.DamageTypeProvenance)
	if claim.Incident.Description != nil {
		writeProvenanced(&b, "Description", *claim.Incident.Description, claim.Incident.DescriptionProvenance)
	}
	b.WriteString("\n## Property Damage\n\n")
	writeProvenanced(&b, "Property type", string(claim.PropertyDamage.PropertyType), claim.PropertyDamage.PropertyTypeProvenance)
	if claim.PropertyDamage.RoomLocation != nil {
		writeProvenanced(&b, "Room", *claim.PropertyDamage.RoomLocation, claim.PropertyDamage.RoomLocationProvenance)
	}
	writeProvenanced(&b, "Severity", string(claim.PropertyDamage.Severity), claim.PropertyDamage.SeverityProvenance)
	if claim.PropertyDamage.EstimatedRepairCost != nil {
		writeProvenanced(&b, "Estimated repair cost",
			fmt.Sprintf("$%.2f", *claim.PropertyDamage.EstimatedRepairCost), claim.PropertyDamage.RepairCostProvenance)
	}

	b.WriteString("\n## Evidence\n\n")
	fmt.Fprintf(&b, "- Damage photos: %d\n", claim.Evidence.DamagePhotoCount)
	fmt.Fprintf(&b, "- Repair estimate: %s\n", yesNo(claim.Evidence.HasRepairEstimate))
	fmt.Fprintf(&b, "- Incident report: %s\n", yesNo(claim.Evidence.HasIncidentReport))
	if len(claim.Evidence.MissingEvidence) > 0 {
		fmt.Fprintf(&b, "- Still needed: %s\n", strings.Join(claim.Evidence.MissingEvidence, ", "))
	}
	if claim.Consistency.HasConflicts {
		b.WriteString("\n## Cross-Modal Conflicts\n\n")
		for _, detail := range claim.Consistency.ConflictDetails {
			fmt.Fprintf(&b, "- %s\n", detail)
		}
	}

	b.WriteString("\n## Quality Check\n\n")
	fmt.Fprintf(&b, "**Completeness: %.2f** (%s)\n\n", report.CompletenessScore, completeness(report))
	if len(report.MissingRequiredEvidence) > 0 {
		b.WriteString("Missing evidence:\n\n")
		for _, item := range report.MissingRequiredEvidence {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}
	if len(report.Contradictions) > 0 {
		b.WriteString("Contradictions:\n\n")
		for _, finding := range report.Contradictions {
			fmt.Fprintf(&b, "- ⚠️ %s\n", finding)
		}
		b.WriteString("\n")
	}
	if len(report.RecommendedQuestions) > 0 {
		b.WriteString("Recommended follow-up questions:\n\n")
		for i, q := range report.RecommendedQuestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
		b.WriteString("\n")
	}

	if a.Routing != nil {
		b.WriteString("## Routing\n\n")
		fmt.Fprintf(&b, "- Decision: **%s** (%s priority)\n", a.Routing.Decision, a.Routing.Priority)
		fmt.Fprintf(&b, "- Reason: %s\n", a.Routing.RoutingReason)
		fmt.Fprintf(&b, "- Status: %s\n", a.Routing.FinalStatus)
		fmt.Fprintf(&b, "- Fraud score: %.2f\n", a.Routing.FraudScore)
		for _, indicator := range a.Routing.FraudIndicators {
			fmt.Fprintf(&b, "  - %s\n", indicator)
		}
		if len(a.Routing.NextActions) > 0 {
			b.WriteString("\nNext actions:\n\n")
			for i, action := range a.Routing.NextActions {
				fmt.Fprintf(&b, "%d. %s\n", i+1, action)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderSummary prints a terminal summary of the assessment
func (r *Renderer) RenderSummary(a *Assessment) {
	claim := a.Claim
	report := a.Report

	fmt.Printf("\n")
	fmt.Printf("═══════════════════════════════════════════════════════════\n")
	fmt.Printf("  Claim %s\n", claim.ClaimID)
	fmt.Printf("═══════════════════════════════════════════════════════════\n")
	fmt.Printf("\n")

	if claim.Claimant.Name != "" {
		fmt.Printf("  Claimant:       %s", claim.Claimant.Name)
		if claim.Claimant.PolicyNumber != "" {
			fmt.Printf(" (%s)", claim.Claimant.PolicyNumber)
		}
		fmt.Printf("\n")
	}
	fmt.Printf("  Damage:         %s / %s (%s)\n",
		claim.Incident.DamageType, claim.PropertyDamage.PropertyType, claim.PropertyDamage.Severity)
	if claim.Incident.Date != nil || claim.Incident.Location != nil {
		fmt.Printf("  Incident:       %s%s\n", formatDate(claim.Incident.Date), formatLocation(claim.Incident.Location))
	}
	if claim.PropertyDamage.EstimatedRepairCost != nil {
		fmt.Printf("  Estimated cost: $%.2f\n", *claim.PropertyDamage.EstimatedRepairCost)
	}
	fmt.Printf("  Evidence:       %d photo(s), estimate: %s, report: %s\n",
		claim.Evidence.DamagePhotoCount, yesNo(claim.Evidence.HasRepairEstimate), yesNo(claim.Evidence.HasIncidentReport))
	fmt.Printf("\n")

	fmt.Printf("  Completeness:   %.2f — %s\n", report.CompletenessScore, strings.ToUpper(completeness(report)))
	if len(report.MissingRequiredEvidence) > 0 {
		fmt.Printf("  Missing:        %s\n", strings.Join(report.MissingRequiredEvidence, ", "))
	}
	if len(report.Contradictions) > 0 {
		fmt.Printf("  Contradictions:\n")
		for _, finding := range report.Contradictions {
			fmt.Printf("    ✗ %s\n", finding)
		}
	}
	if len(report.RecommendedQuestions) > 0 {
		fmt.Printf("  Ask the claimant:\n")
		for _, q := range report.RecommendedQuestions {
			fmt.Printf("    • %s\n", q)
		}
	}

	if a.Routing != nil {
		fmt.Printf("\n")
		fmt.Printf("  Routing:        %s (%s priority)\n", a.Routing.Decision, a.Routing.Priority)
		fmt.Printf("                  %s\n", a.Routing.RoutingReason)
		if a.Routing.FraudScore > 0 {
			fmt.Printf("  Fraud score:    %.2f\n", a.Routing.FraudScore)
		}
	}
	fmt.Printf("\n")
}

// writeField emits one markdown list entry, skipping empty values
func writeField(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "- %s: %s\n", label, value)
	}
}

// writeProvenanced emits a field with its extraction confidence
func writeProvenanced(b *strings.Builder, label, value string, prov *model.Provenance) {
	if prov != nil {
		fmt.Fprintf(b, "- %s: %s _(confidence %.2f)_\n", label, value, prov.Confidence)
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

func completeness(report *model.CheckReport) string {
	if report.Complete() {
		return "complete"
	}
	return "incomplete"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("2006-01-02")
}

func formatLocation(loc *string) string {
	if loc == nil {
		return ""
	}
	return " — " + *loc
}
