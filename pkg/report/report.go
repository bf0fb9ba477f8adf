// Package report prints plain-text summaries of system analyses.
//
// Each [Analysis] becomes one block:
//
//	CLAUDE_FLOW ANALYSIS:
//	Strengths:
//	  • Multi-agent orchestration
//	Organization: Command-driven
//
// Blocks are separated by a blank line and written in input order.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingOrganization is returned by [Print] when an analysis has no
// string-valued "organization" entry in its structure.
var ErrMissingOrganization = errors.New("missing organization")

// ErrMissingStrengths is returned by [Print] when an analysis has no
// strengths list. An empty list is valid.
var ErrMissingStrengths = errors.New("missing strengths")

// OrganizationKey is the structure entry printed as the organization summary.
const OrganizationKey = "organization"

// Analysis describes one named system.
// A nil Strengths means the list was never given; an empty one is printed
// with no bullets.
type Analysis struct {
	Name      string         `toml:"name" json:"name" yaml:"name"`
	Strengths []string       `toml:"strengths" json:"strengths" yaml:"strengths"`
	Structure map[string]any `toml:"structure" json:"structure" yaml:"structure"`
}

// Organization returns the structure's organization summary.
func (a Analysis) Organization() (string, bool) {
	s, ok := a.Structure[OrganizationKey].(string)
	return s, ok
}

// Header returns the block heading, e.g. "CLAUDE_FLOW ANALYSIS:".
func (a Analysis) Header() string {
	return strings.ToUpper(a.Name) + " ANALYSIS:"
}

// Summary counts what a report covers.
type Summary struct {
	Systems   int
	Strengths int
}

// Summarize returns totals over analyses.
func Summarize(analyses []Analysis) Summary {
	s := Summary{Systems: len(analyses)}
	for _, a := range analyses {
		s.Strengths += len(a.Strengths)
	}
	return s
}

// Print writes one block per analysis to w.
//
// Lines are written in order until a field is found missing: an analysis
// without strengths fails with [ErrMissingStrengths] after its "Strengths:"
// line, one without an organization fails with [ErrMissingOrganization]
// after its bullets. Everything written up to that point is flushed;
// nothing after it is written.
func Print(w io.Writer, analyses []Analysis) error {
	bw := bufio.NewWriter(w)
	fail := func(a Analysis, err error) error {
		if ferr := bw.Flush(); ferr != nil {
			return ferr
		}
		return fmt.Errorf("%s: %w", a.Name, err)
	}

	for _, a := range analyses {
		fmt.Fprintf(bw, "\n%s\n", a.Header())
		fmt.Fprintln(bw, "Strengths:")
		if a.Strengths == nil {
			return fail(a, ErrMissingStrengths)
		}
		for _, s := range a.Strengths {
			fmt.Fprintf(bw, "  • %s\n", s)
		}
		org, ok := a.Organization()
		if !ok {
			return fail(a, ErrMissingOrganization)
		}
		fmt.Fprintf(bw, "Organization: %s\n", org)
	}
	return bw.Flush()
}
