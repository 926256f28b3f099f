// Package render turns an aggregated report into its display forms. All
// rendering is pure formatting over the report structure; nothing here
// feeds back into analysis.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/realitypatch/realitypatch/internal/model"
)

// Renderer writes reports as JSON, Markdown, and console summaries.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// WriteJSON writes the report as indented JSON.
func (r *Renderer) WriteJSON(w io.Writer, report *model.AggregatedReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// RenderJSON writes the report as JSON to a file.
func (r *Renderer) RenderJSON(report *model.AggregatedReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return r.WriteJSON(f, report)
}

// RenderMarkdown writes a Markdown report to a file.
func (r *Renderer) RenderMarkdown(report *model.AggregatedReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(r.Markdown(report)); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// Markdown builds the full Markdown report.
func (r *Renderer) Markdown(report *model.AggregatedReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# RealityPatch Report\n\n")
	fmt.Fprintf(&sb, "**Claim:** %s\n\n", report.ClaimText)
	fmt.Fprintf(&sb, "**Verdict:** %s (%.2f overall confidence)\n\n", report.Verdict, report.OverallConfidence)
	if report.InsufficientData {
		fmt.Fprintf(&sb, "> Insufficient data: every analysis failed.\n\n")
	}

	for _, name := range model.AllAgents {
		outcome, ok := report.Outcomes[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "## %s - %s\n\n", titleCase(string(name)), outcome.Status)
		if outcome.Reason != "" {
			fmt.Fprintf(&sb, "_%s_\n\n", outcome.Reason)
		}
		writePayload(&sb, outcome)
	}

	if len(report.Conflicts) > 0 {
		sb.WriteString("## Conflicts\n\n")
		for _, c := range report.Conflicts {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
		sb.WriteString("\n")
	}

	if len(report.Notices) > 0 {
		sb.WriteString("## Notices\n\n")
		for _, n := range report.Notices {
			fmt.Fprintf(&sb, "- %s\n", n)
		}
		sb.WriteString("\n")
	}

	if r.includeFooter {
		sb.WriteString("---\n\nGenerated by RealityPatch. Structural aggregation only; no guarantee of factual correctness.\n")
	}

	return sb.String()
}

func writePayload(sb *strings.Builder, outcome model.AgentOutcome) {
	switch {
	case outcome.Decomposition != nil:
		d := outcome.Decomposition
		fmt.Fprintf(sb, "| Part | Value | Confidence |\n|---|---|---|\n")
		writeField(sb, "Subject", d.Subject)
		writeField(sb, "Predicate", d.Predicate)
		writeField(sb, "Object", d.Object)
		writeField(sb, "Quantifier", d.Quantifier)
		writeField(sb, "Time", d.TimeReference)
		writeField(sb, "Location", d.Location)
		writeField(sb, "Source", d.Source)
		sb.WriteString("\n")

	case outcome.Evidence != nil:
		for i, e := range outcome.Evidence {
			fmt.Fprintf(sb, "%d. **%s** - %s", i+1, e.Title, e.Snippet)
			if e.SourceURL != "" {
				fmt.Fprintf(sb, " ([%s](%s))", displaySource(e), e.SourceURL)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")

	case outcome.Context != nil:
		c := outcome.Context
		fmt.Fprintf(sb, "%s\n\n", c.Background)
		if len(c.BiasIndicators) > 0 {
			fmt.Fprintf(sb, "Bias indicators: %s\n\n", strings.Join(c.BiasIndicators, ", "))
		}
		if c.Controversial {
			sb.WriteString("Flagged as controversial.\n\n")
		}

	case outcome.Media != nil:
		m := outcome.Media
		fmt.Fprintf(sb, "Authenticity score: %.2f\n\n%s\n\n", m.AuthenticityScore, m.Reasoning)
		if len(m.MatchedSources) > 0 {
			fmt.Fprintf(sb, "Matched sources: %s\n\n", strings.Join(m.MatchedSources, ", "))
		}
	}
}

func writeField(sb *strings.Builder, label string, f model.Field) {
	if f.Value == "" {
		return
	}
	fmt.Fprintf(sb, "| %s | %s | %.2f |\n", label, f.Value, f.Confidence)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func displaySource(e model.EvidenceItem) string {
	if e.Source != "" {
		return e.Source
	}
	return "source"
}

// RenderSummary prints a short console summary.
func (r *Renderer) RenderSummary(w io.Writer, report *model.AggregatedReport) {
	fmt.Fprintf(w, "Claim:   %s\n", report.ClaimText)
	fmt.Fprintf(w, "Verdict: %s (%.2f)\n", report.Verdict, report.OverallConfidence)
	for _, name := range model.AllAgents {
		outcome, ok := report.Outcomes[name]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %-11s %s", name, outcome.Status)
		if outcome.Reason != "" {
			line += " (" + outcome.Reason + ")"
		}
		fmt.Fprintln(w, line)
	}
	for _, n := range report.Notices {
		fmt.Fprintf(w, "  note: %s\n", n)
	}
}
