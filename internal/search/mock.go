package search

import (
	"context"
	"strings"
)

// MockClient serves deterministic canned results so the degraded path can
// be exercised without network access. Results are keyed on topic keywords;
// unknown topics get a single "insufficient evidence" hit.
type MockClient struct{}

// NewMockClient creates a mock search client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Available always reports true: the mock needs no external dependency.
func (c *MockClient) Available() bool {
	return true
}

// mockResults maps topic keywords to canned evidence.
var mockResults = map[string][]Result{
	"earth": {
		{
			Title:   "NASA Confirms Earth's Shape",
			Snippet: "Scientific evidence from NASA and other space agencies confirms Earth is an oblate spheroid, not flat.",
			URL:     "https://www.nasa.gov/earth",
			Source:  "NASA",
		},
		{
			Title:   "Flat Earth Theory Debunked",
			Snippet: "Multiple scientific experiments and observations have disproven the flat Earth theory.",
			URL:     "https://www.scientificamerican.com",
			Source:  "Scientific American",
		},
	},
	"moon": {
		{
			Title:   "Apollo Mission Evidence",
			Snippet: "Extensive evidence from the Apollo missions, including moon rocks and photographs, confirms the moon landing.",
			URL:     "https://www.nasa.gov/moon",
			Source:  "NASA",
		},
		{
			Title:   "Moon Landing Conspiracy Debunked",
			Snippet: "Scientific analysis of moon landing footage and materials has verified their authenticity.",
			URL:     "https://www.smithsonianmag.com",
			Source:  "Smithsonian Magazine",
		},
	},
	"india": {
		{
			Title:   "Recent Border Developments",
			Snippet: "Recent reports indicate border tensions between India and Pakistan, with both sides making claims about ceasefire violations.",
			URL:     "https://www.reuters.com",
			Source:  "Reuters",
		},
	},
}

// mockKeywords fixes the lookup order so queries matching several topics
// resolve the same way every time.
var mockKeywords = []string{"earth", "moon", "india"}

// Search returns canned results matched by keyword, in a fixed order.
func (c *MockClient) Search(_ context.Context, query string) ([]Result, error) {
	lowered := strings.ToLower(query)
	for _, keyword := range mockKeywords {
		if strings.Contains(lowered, keyword) {
			results := mockResults[keyword]
			out := make([]Result, len(results))
			copy(out, results)
			return out, nil
		}
	}

	return []Result{
		{
			Title:   "Insufficient Evidence",
			Snippet: "No reliable evidence found to verify or refute this claim.",
			URL:     "",
			Source:  "RealityPatch",
		},
	}, nil
}
