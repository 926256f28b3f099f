// Package search wraps the Serper web-search API behind a small interface
// so agents can swap in the deterministic mock when no key is configured.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/realitypatch/realitypatch/internal/cache"
	"github.com/realitypatch/realitypatch/internal/model"
	"github.com/realitypatch/realitypatch/internal/util"
	"github.com/realitypatch/realitypatch/internal/worker"
)

// Result is one organic search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"link"`
	Source  string `json:"source,omitempty"`
}

// Client is the search contract used by the Proof and ContextNet agents.
type Client interface {
	// Search returns the top organic results for a query
	Search(ctx context.Context, query string) ([]Result, error)

	// Available reports whether the client can reach its backing service
	Available() bool
}

// SerperClient queries the Serper search API with rate limiting and
// response caching.
type SerperClient struct {
	apiKey      string
	baseURL     string
	resultCount int
	httpClient  *http.Client
	cache       cache.Cache
	limiter     *worker.Limiter
}

// NewSerperClient creates a search client from configuration.
func NewSerperClient(cfg model.SearchConfig, httpCfg model.HTTPConfig) *SerperClient {
	resultCount := cfg.ResultCount
	if resultCount <= 0 {
		resultCount = 3
	}

	return &SerperClient{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		resultCount: resultCount,
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
		cache:   cache.NewMemoryCache(cfg.CacheTTL, cfg.CacheTTL*2),
		limiter: worker.NewLimiter(cfg.RatePerSec, cfg.RateBurst),
	}
}

// Available reports whether a usable API key is configured. The literal
// "placeholder_key" is treated as absent, matching common sample configs.
func (c *SerperClient) Available() bool {
	return c.apiKey != "" && c.apiKey != "placeholder_key"
}

// serperRequest is the Serper /search request body.
type serperRequest struct {
	Query   string `json:"q"`
	Country string `json:"gl"`
	Lang    string `json:"hl"`
	Num     int    `json:"num"`
}

// serperResponse holds the fields we read from the Serper response.
type serperResponse struct {
	Organic []Result `json:"organic"`
}

// Search queries Serper for the top organic results. Responses are cached
// by query so repeated claims within the TTL cost no quota.
func (c *SerperClient) Search(ctx context.Context, query string) ([]Result, error) {
	if !c.Available() {
		return nil, fmt.Errorf("search API key not configured")
	}

	cacheKey := cache.Key("serper:" + query)
	if data, found := c.cache.Get(cacheKey); found {
		var cached []Result
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(serperRequest{
		Query:   query,
		Country: "us",
		Lang:    "en",
		Num:     c.resultCount,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed serperResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	results := parsed.Organic
	if len(results) > c.resultCount {
		results = results[:c.resultCount]
	}

	if data, err := json.Marshal(results); err == nil {
		_ = c.cache.Set(cacheKey, data, 0)
	}

	return results, nil
}
