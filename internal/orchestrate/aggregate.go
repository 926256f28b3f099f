package orchestrate

import (
	"fmt"
	"sort"
	"time"

	"github.com/realitypatch/realitypatch/internal/model"
)

// defaultWeight applies to any agent missing from the configured weight
// table.
const defaultWeight = 0.25

// fallbackConfidence is the documented overall confidence when every
// outcome failed.
const fallbackConfidence = 0.0

// Aggregator merges per-agent outcomes into one report. Aggregation is
// structural composition: payloads pass through untouched, and the result
// is deterministic regardless of the order outcomes arrived in.
type Aggregator struct {
	weights map[model.AgentName]float64
}

// NewAggregator creates an aggregator with the given weight table.
func NewAggregator(weights map[model.AgentName]float64) *Aggregator {
	if weights == nil {
		weights = model.DefaultConfig().Agents.Weights
	}
	return &Aggregator{weights: weights}
}

// Aggregate composes the final report. Overall confidence is the weighted
// average of success and degraded outcome confidences; failed outcomes are
// excluded from both numerator and denominator, not counted as zero. When
// every outcome failed, confidence is the fallback constant and the
// insufficient-data flag is set.
func (a *Aggregator) Aggregate(claim model.Claim, outcomes map[model.AgentName]model.AgentOutcome) *model.AggregatedReport {
	report := &model.AggregatedReport{
		ClaimID:     claim.ID,
		ClaimText:   claim.Text,
		GeneratedAt: time.Now().UTC(),
		Outcomes:    outcomes,
		Weights:     a.weights,
	}

	var weightedSum, weightTotal float64
	for name, outcome := range outcomes {
		if !outcome.Resolved() {
			continue
		}
		w := a.weightFor(name)
		weightedSum += w * outcome.Confidence
		weightTotal += w
	}

	if weightTotal == 0 {
		report.OverallConfidence = fallbackConfidence
		report.InsufficientData = true
	} else {
		report.OverallConfidence = weightedSum / weightTotal
	}

	report.Notices = buildNotices(outcomes)
	report.Conflicts = detectConflicts(outcomes)

	switch {
	case len(report.Conflicts) > 0:
		report.Verdict = model.VerdictConflicting
	case report.InsufficientData:
		report.Verdict = model.VerdictInsufficient
	default:
		report.Verdict = model.VerdictForConfidence(report.OverallConfidence)
	}

	return report
}

func (a *Aggregator) weightFor(name model.AgentName) float64 {
	if w, ok := a.weights[name]; ok && w > 0 {
		return w
	}
	return defaultWeight
}

// buildNotices emits one human-readable note per degraded or failed
// outcome, preserving the adapter's reason verbatim. Sorted by agent name
// so the report is deterministic.
func buildNotices(outcomes map[model.AgentName]model.AgentOutcome) []string {
	names := make([]model.AgentName, 0, len(outcomes))
	for name := range outcomes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	notices := make([]string, 0, len(names))
	for _, name := range names {
		outcome := outcomes[name]
		switch outcome.Status {
		case model.StatusDegraded:
			notices = append(notices, fmt.Sprintf("%s degraded: %s", name, outcome.Reason))
		case model.StatusFailed:
			notices = append(notices, fmt.Sprintf("%s failed: %s", name, outcome.Reason))
		}
	}
	return notices
}

// detectConflicts flags evidence pulling in opposite directions: media
// judged likely manipulated while the claim's evidence verifies.
func detectConflicts(outcomes map[model.AgentName]model.AgentOutcome) []string {
	mediaOutcome, hasMedia := outcomes[model.AgentMediaScan]
	proofOutcome, hasProof := outcomes[model.AgentProof]

	if !hasMedia || !hasProof {
		return nil
	}
	if !mediaOutcome.Resolved() || !proofOutcome.Resolved() {
		return nil
	}
	if mediaOutcome.Media == nil {
		return nil
	}

	if mediaOutcome.Media.AuthenticityScore < 0.4 && proofOutcome.Confidence >= 0.6 {
		return []string{"media authenticity assessment conflicts with claim verifiability"}
	}
	return nil
}
