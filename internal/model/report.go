package model

import "time"

// AgentName identifies one of the analysis agents.
type AgentName string

const (
	AgentClarity    AgentName = "clarity"
	AgentProof      AgentName = "proof"
	AgentContextNet AgentName = "contextnet"
	AgentMediaScan  AgentName = "mediascan"
)

// AllAgents lists every agent in canonical order.
var AllAgents = []AgentName{AgentClarity, AgentProof, AgentContextNet, AgentMediaScan}

// OutcomeStatus tags how an adapter invocation resolved. Every invocation
// resolves to exactly one of these three.
type OutcomeStatus string

const (
	StatusSuccess  OutcomeStatus = "success"
	StatusDegraded OutcomeStatus = "degraded"
	StatusFailed   OutcomeStatus = "failed"
)

// ReasonMockMode marks a degraded outcome produced without the agent's
// external dependency (missing API key or unreachable service).
const ReasonMockMode = "mock_mode"

// ReasonTimeout marks a failed outcome caused by the per-agent deadline.
const ReasonTimeout = "timeout"

// AgentOutcome is the tagged result of one adapter invocation. Exactly one
// payload field is set, matching the agent that produced it; failed outcomes
// carry no payload.
type AgentOutcome struct {
	Agent      AgentName     `json:"agent"`
	Status     OutcomeStatus `json:"status"`
	Confidence float64       `json:"confidence"`       // [0,1]; 0 for failed
	Reason     string        `json:"reason,omitempty"` // Set for degraded and failed
	Elapsed    time.Duration `json:"elapsed_ms"`

	Decomposition *Decomposition `json:"decomposition,omitempty"` // clarity
	Evidence      []EvidenceItem `json:"evidence,omitempty"`      // proof
	Context       *ContextReport `json:"context,omitempty"`       // contextnet
	Media         *MediaVerdict  `json:"media,omitempty"`         // mediascan

	LinkChecks []LinkCheck `json:"link_checks,omitempty"` // proof, when validation enabled
}

// Resolved reports whether the outcome carries a usable payload
// (success or degraded).
func (o AgentOutcome) Resolved() bool {
	return o.Status == StatusSuccess || o.Status == StatusDegraded
}

// VerdictLevel is the coarse confidence band shown to the user.
type VerdictLevel string

const (
	VerdictHigh         VerdictLevel = "High Confidence"
	VerdictModerate     VerdictLevel = "Moderate Confidence"
	VerdictLow          VerdictLevel = "Low Confidence"
	VerdictInsufficient VerdictLevel = "Insufficient Data"
	VerdictConflicting  VerdictLevel = "Conflicting Evidence"
)

// VerdictForConfidence maps an overall confidence to its band.
// Thresholds: >= 0.8 high, >= 0.6 moderate, >= 0.4 low, else insufficient.
func VerdictForConfidence(confidence float64) VerdictLevel {
	switch {
	case confidence >= 0.8:
		return VerdictHigh
	case confidence >= 0.6:
		return VerdictModerate
	case confidence >= 0.4:
		return VerdictLow
	default:
		return VerdictInsufficient
	}
}

// AggregatedReport is the final merged verification result: one entry per
// requested agent, never silently dropped, plus a derived overall confidence
// and user-facing degradation notices.
type AggregatedReport struct {
	ClaimID     string    `json:"claim_id"`
	ClaimText   string    `json:"claim_text"`
	GeneratedAt time.Time `json:"generated_at"`

	Outcomes map[AgentName]AgentOutcome `json:"outcomes"`

	OverallConfidence float64               `json:"overall_confidence"` // [0,1]
	Verdict           VerdictLevel          `json:"verdict"`
	InsufficientData  bool                  `json:"insufficient_data"`
	Conflicts         []string              `json:"conflicts,omitempty"`
	Notices           []string              `json:"notices"` // One per degraded/failed outcome
	Weights           map[AgentName]float64 `json:"weights"`
}
