package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/structviz/pkg/errors"
)

func TestReportSample(t *testing.T) {
	c, out, logs := testCLI()
	if err := execute(t, c, "report"); err != nil {
		t.Fatalf("report error: %v", err)
	}
	got := out.String()

	headers := []string{"CLAUDE_FLOW ANALYSIS:", "SUPERCLAUDE ANALYSIS:", "BEST_AGENTS ANALYSIS:"}
	last := -1
	for _, h := range headers {
		i := strings.Index(got, h)
		if i < 0 {
			t.Fatalf("report missing %q:\n%s", h, got)
		}
		if i < last {
			t.Errorf("%q printed out of order", h)
		}
		last = i
	}
	if n := strings.Count(got, "  • "); n != 15 {
		t.Errorf("strength bullets = %d, want 15", n)
	}
	if !strings.Contains(logs.String(), "Reported 3 systems, 15 strengths") {
		t.Errorf("logs should summarise the report:\n%s", logs.String())
	}
}

func TestReportFromFile(t *testing.T) {
	path := writeFile(t, "analysis.json", `{"systems": [
		{"name": "mini", "strengths": ["small"], "structure": {"organization": "Flat"}}
	]}`)
	c, out, _ := testCLI()
	if err := execute(t, c, "report", "-i", path); err != nil {
		t.Fatalf("report error: %v", err)
	}
	want := "\nMINI ANALYSIS:\nStrengths:\n  • small\nOrganization: Flat\n"
	if out.String() != want {
		t.Errorf("report output = %q, want %q", out.String(), want)
	}
}

func TestReportMissingOrganization(t *testing.T) {
	path := writeFile(t, "analysis.json", `{"systems": [
		{"name": "ok", "strengths": ["a"], "structure": {"organization": "Flat"}},
		{"name": "broken", "strengths": ["b"], "structure": {}}
	]}`)
	c, out, _ := testCLI()
	err := execute(t, c, "report", "-i", path)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("report error = %v, want INVALID_INPUT", err)
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q should name the system", err)
	}
	if !strings.Contains(out.String(), "OK ANALYSIS:") {
		t.Error("systems before the failure should still be printed")
	}
}

func TestReportSystemFilter(t *testing.T) {
	c, out, _ := testCLI()
	if err := execute(t, c, "report", "-s", "best_agents", "-s", "claude_flow"); err != nil {
		t.Fatalf("report error: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "SUPERCLAUDE") {
		t.Error("filtered report should omit superclaude")
	}
	flow, best := strings.Index(got, "CLAUDE_FLOW ANALYSIS:"), strings.Index(got, "BEST_AGENTS ANALYSIS:")
	if flow < 0 || best < 0 || flow > best {
		t.Errorf("filtered report should keep file order:\n%s", got)
	}
}

func TestReportFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown system", []string{"report", "-s", "nope"}},
		{"pick with system", []string{"report", "--pick", "-s", "claude_flow"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := testCLI()
			if err := execute(t, c, tt.args...); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("report error = %v, want INVALID_INPUT", err)
			}
		})
	}
}
