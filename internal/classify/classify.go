// Package classify decides which analysis agents apply to a submitted claim.
// Classification is a pure function of the claim: no I/O, never fails. An
// unrecognized input shape falls back to text-only classification.
package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/realitypatch/realitypatch/internal/model"
)

// ContextPolicy decides whether a claim warrants ContextNet analysis. The
// trigger condition is a replaceable policy, not a hard rule.
type ContextPolicy func(claim model.Claim) bool

// Classifier selects the agent subset for a claim. Clarity and Proof are
// always selected; ContextNet per policy; MediaScan iff media is attached.
type Classifier struct {
	contextPolicy ContextPolicy
}

// New creates a classifier using the default context policy from cfg:
// claims of at least MinContextLength runes, or containing any configured
// bias-trigger term, are context-worthy.
func New(cfg model.AgentsConfig) *Classifier {
	return &Classifier{
		contextPolicy: LengthOrTriggerPolicy(cfg.MinContextLength, cfg.BiasTriggerTerms),
	}
}

// NewWithPolicy creates a classifier with a custom ContextNet policy.
func NewWithPolicy(policy ContextPolicy) *Classifier {
	if policy == nil {
		policy = func(model.Claim) bool { return false }
	}
	return &Classifier{contextPolicy: policy}
}

// Classify returns the applicable agents in canonical order. The result is
// never empty: every claim needs decomposition and evidence search.
func (c *Classifier) Classify(claim model.Claim) []model.AgentName {
	selected := []model.AgentName{model.AgentClarity, model.AgentProof}

	if c.contextPolicy(claim) {
		selected = append(selected, model.AgentContextNet)
	}
	if claim.HasMedia() {
		selected = append(selected, model.AgentMediaScan)
	}

	return selected
}

// LengthOrTriggerPolicy returns the default ContextNet policy: rune length
// of at least minLength, or a case-insensitive match on any trigger term.
func LengthOrTriggerPolicy(minLength int, triggers []string) ContextPolicy {
	lowered := make([]string, len(triggers))
	for i, t := range triggers {
		lowered[i] = strings.ToLower(t)
	}

	return func(claim model.Claim) bool {
		if minLength > 0 && utf8.RuneCountInString(claim.Text) >= minLength {
			return true
		}
		text := strings.ToLower(claim.Text)
		for _, term := range lowered {
			if term != "" && strings.Contains(text, term) {
				return true
			}
		}
		return false
	}
}
