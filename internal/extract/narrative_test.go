package extract

import (
	"strings"
	"testing"
)

func TestNormalizeNarrative_PlainText(t *testing.T) {
	got := NormalizeNarrative("Pipe burst in the kitchen. Estimate $2,500.")
	if got != "Pipe burst in the kitchen. Estimate $2,500." {
		t.Errorf("expected plain text preserved, got %q", got)
	}
}

func TestNormalizeNarrative_HTML(t *testing.T) {
	raw := `<html><body><p>Water leak in the <b>bathroom</b>.</p><script>alert("x")</script><p>Cost around $900.</p></body></html>`
	got := NormalizeNarrative(raw)

	if strings.Contains(got, "alert") {
		t.Errorf("expected script content stripped, got %q", got)
	}
	if !strings.Contains(got, "bathroom") {
		t.Errorf("expected visible text kept, got %q", got)
	}
	if !strings.Contains(got, "$900") {
		t.Errorf("expected dollar amount kept, got %q", got)
	}
}

func TestNormalizeNarrative_CollapsesWhitespace(t *testing.T) {
	got := NormalizeNarrative("storm   damage\n\n  on the roof")
	if got != "storm damage on the roof" {
		t.Errorf("expected collapsed whitespace, got %q", got)
	}
}
