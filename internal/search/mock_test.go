package search

import (
	"context"
	"testing"
)

func TestMockClient_Available(t *testing.T) {
	if !NewMockClient().Available() {
		t.Error("Mock client must always be available")
	}
}

func TestMockClient_KnownTopics(t *testing.T) {
	c := NewMockClient()

	tests := []struct {
		query     string
		wantCount int
		wantFirst string
	}{
		{"Is the Earth flat?", 2, "NASA Confirms Earth's Shape"},
		{"Did the MOON landing happen?", 2, "Apollo Mission Evidence"},
		{"India and Pakistan ceasefire", 1, "Recent Border Developments"},
	}

	for _, tt := range tests {
		results, err := c.Search(context.Background(), tt.query)
		if err != nil {
			t.Fatalf("Search(%q) failed: %v", tt.query, err)
		}
		if len(results) != tt.wantCount {
			t.Errorf("Search(%q): expected %d results, got %d", tt.query, tt.wantCount, len(results))
			continue
		}
		if results[0].Title != tt.wantFirst {
			t.Errorf("Search(%q): unexpected first title %q", tt.query, results[0].Title)
		}
		for _, r := range results {
			if r.URL == "" {
				t.Errorf("Search(%q): canned result missing URL", tt.query)
			}
		}
	}
}

func TestMockClient_UnknownTopic(t *testing.T) {
	c := NewMockClient()

	results, err := c.Search(context.Background(), "arbitrary unverifiable statement")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected single fallback result, got %d", len(results))
	}
	if results[0].URL != "" {
		t.Error("Fallback result must carry no URL")
	}
	if results[0].Title != "Insufficient Evidence" {
		t.Errorf("Unexpected fallback title: %q", results[0].Title)
	}
}

func TestMockClient_Deterministic(t *testing.T) {
	c := NewMockClient()

	// Query matching several topics resolves in fixed keyword order
	first, err := c.Search(context.Background(), "moon seen from earth over india")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, _ := c.Search(context.Background(), "moon seen from earth over india")
		if len(again) != len(first) || again[0].Title != first[0].Title {
			t.Fatal("Mock results changed across identical queries")
		}
	}
}
