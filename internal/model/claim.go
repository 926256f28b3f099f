package model

import (
	"time"

	"github.com/google/uuid"
)

// Claim is the unit of analysis: a user-submitted statement, optionally
// accompanied by a media attachment. Immutable once submitted.
type Claim struct {
	ID          string    `json:"id"`                   // Unique claim identifier
	Text        string    `json:"text"`                 // The claim text itself
	MediaPath   string    `json:"media_path,omitempty"` // Path to attached media, if any
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewClaim creates a claim with a fresh ID and submission timestamp.
func NewClaim(text, mediaPath string) Claim {
	return Claim{
		ID:          uuid.NewString(),
		Text:        text,
		MediaPath:   mediaPath,
		SubmittedAt: time.Now().UTC(),
	}
}

// HasMedia reports whether the claim carries a media attachment.
func (c Claim) HasMedia() bool {
	return c.MediaPath != ""
}

// Field is a single decomposition element with its extraction confidence.
type Field struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"` // [0,1]
}

// Decomposition is the structured breakdown of a claim produced by the
// Clarity agent.
type Decomposition struct {
	Subject       Field `json:"subject"`
	Predicate     Field `json:"predicate"`
	Object        Field `json:"object"`
	Quantifier    Field `json:"quantifier"`
	TimeReference Field `json:"time_reference"`
	Location      Field `json:"location"`
	Source        Field `json:"source"`
}

// Specificity scores how well-formed the decomposition is: subject,
// predicate and object carry 0.3 each, quantifier 0.1.
func (d Decomposition) Specificity() float64 {
	score := 0.0
	if d.Subject.Value != "" {
		score += 0.3
	}
	if d.Predicate.Value != "" {
		score += 0.3
	}
	if d.Object.Value != "" {
		score += 0.3
	}
	if d.Quantifier.Value != "" {
		score += 0.1
	}
	return score
}
