package model

import "time"

// EvidenceItem is one piece of external evidence gathered by the Proof
// agent. Items are ordered by relevance rank; order carries no meaning
// beyond display.
type EvidenceItem struct {
	Title      string  `json:"title"`
	Snippet    string  `json:"snippet"`
	SourceURL  string  `json:"source_url"`
	Source     string  `json:"source,omitempty"` // Publisher name when known
	Confidence float64 `json:"confidence"`       // Relevance-derived, [0,1]
}

// ContextReport is the ContextNet agent payload: background and bias
// context around the claim's topic.
type ContextReport struct {
	Background     string   `json:"background"`
	BiasIndicators []string `json:"bias_indicators"`
	Controversial  bool     `json:"controversial"`
	Sources        []string `json:"sources,omitempty"`
}

// MediaVerdict is the MediaScan agent payload.
type MediaVerdict struct {
	AuthenticityScore float64  `json:"authenticity_score"` // [0,1]; 1 = likely authentic
	MatchedSources    []string `json:"matched_sources"`
	Reasoning         string   `json:"reasoning"`
}

// LinkCheck records the accessibility check of one evidence URL.
type LinkCheck struct {
	URL          string    `json:"url"`
	IsAccessible bool      `json:"is_accessible"`
	StatusCode   int       `json:"status_code,omitempty"`
	PageTitle    string    `json:"page_title,omitempty"`
	RedirectURL  string    `json:"redirect_url,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
	Error        string    `json:"error,omitempty"`
}
