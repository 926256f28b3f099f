package render

import (
	"fmt"
	"strings"

	"github.com/realitypatch/realitypatch/internal/model"
)

// Persona-styled summaries are a presentation concern layered over the
// structured report. Styling never touches the payloads; it only phrases
// them.

type persona struct {
	Name  string
	Voice func(outcome model.AgentOutcome) string
}

var personas = map[model.AgentName]persona{
	model.AgentClarity: {
		Name: "Clarity",
		Voice: func(o model.AgentOutcome) string {
			if o.Decomposition == nil {
				return "I couldn't break this claim down."
			}
			d := o.Decomposition
			parts := []string{}
			if d.Subject.Value != "" {
				parts = append(parts, fmt.Sprintf("the subject is %q", d.Subject.Value))
			}
			if d.Predicate.Value != "" {
				parts = append(parts, fmt.Sprintf("the assertion is %q", d.Predicate.Value))
			}
			if d.Quantifier.Value != "" {
				parts = append(parts, fmt.Sprintf("it quantifies %q", d.Quantifier.Value))
			}
			if len(parts) == 0 {
				return "The claim has no extractable structure."
			}
			return "Structurally, " + strings.Join(parts, ", ") + "."
		},
	},
	model.AgentProof: {
		Name: "Proof",
		Voice: func(o model.AgentOutcome) string {
			n := 0
			for _, e := range o.Evidence {
				if e.SourceURL != "" {
					n++
				}
			}
			switch n {
			case 0:
				return "I found no usable evidence either way."
			case 1:
				return "I found one source worth reading."
			default:
				return fmt.Sprintf("I found %d sources worth reading.", n)
			}
		},
	},
	model.AgentContextNet: {
		Name: "ContextNet",
		Voice: func(o model.AgentOutcome) string {
			if o.Context == nil {
				return "No context available."
			}
			msg := "Here's the backdrop: " + o.Context.Background
			if o.Context.Controversial {
				msg += " This topic is contested."
			}
			return msg
		},
	},
	model.AgentMediaScan: {
		Name: "MediaScan",
		Voice: func(o model.AgentOutcome) string {
			if o.Media == nil {
				return "I couldn't examine the attachment."
			}
			score := o.Media.AuthenticityScore
			switch {
			case score >= 0.7:
				return fmt.Sprintf("The attachment looks authentic (%.2f).", score)
			case score >= 0.4:
				return fmt.Sprintf("The attachment is inconclusive (%.2f).", score)
			default:
				return fmt.Sprintf("The attachment shows signs of manipulation (%.2f).", score)
			}
		},
	},
}

// StyledSummary phrases each agent's outcome in its persona voice. Failed
// outcomes report their reason plainly; styling never hides a degradation.
func StyledSummary(report *model.AggregatedReport) string {
	var sb strings.Builder

	for _, name := range model.AllAgents {
		outcome, ok := report.Outcomes[name]
		if !ok {
			continue
		}
		p := personas[name]

		var line string
		if outcome.Status == model.StatusFailed {
			line = fmt.Sprintf("I hit a wall: %s.", outcome.Reason)
		} else {
			line = p.Voice(outcome)
			if outcome.Status == model.StatusDegraded {
				line += fmt.Sprintf(" (working without my usual tools: %s)", outcome.Reason)
			}
		}
		fmt.Fprintf(&sb, "%s: %s\n", p.Name, line)
	}

	fmt.Fprintf(&sb, "\nOverall: %s (%.2f)\n", report.Verdict, report.OverallConfidence)
	return sb.String()
}
