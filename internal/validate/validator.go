// Package validate checks the accessibility of evidence URLs returned by
// the Proof agent. Checks run concurrently with retry on transient
// failures; accessible pages optionally get their title extracted for
// display, guarded by robots.txt.
package validate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/realitypatch/realitypatch/internal/model"
	"github.com/realitypatch/realitypatch/internal/util"
)

const maxRetries = 3

// sleepFunc is the sleep used between retries (injectable for tests).
var sleepFunc = time.Sleep

// Validator checks evidence links concurrently.
type Validator struct {
	httpClient *http.Client
	maxWorkers int
	userAgent  string
	robots     *util.RobotsChecker
	fetchTitle bool
}

// NewValidator creates a validator from configuration.
func NewValidator(httpCfg model.HTTPConfig, maxWorkers int) *Validator {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	return &Validator{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		maxWorkers: maxWorkers,
		userAgent:  httpCfg.UserAgent,
		robots:     util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout),
		fetchTitle: true,
	}
}

// CheckLinks validates all evidence URLs concurrently. Results keep the
// input order; items without a URL are skipped.
func (v *Validator) CheckLinks(ctx context.Context, evidence []model.EvidenceItem) []model.LinkCheck {
	if len(evidence) == 0 {
		return nil
	}

	results := make([]model.LinkCheck, len(evidence))
	var wg sync.WaitGroup

	// Semaphore bounds concurrent requests
	semaphore := make(chan struct{}, v.maxWorkers)

	for i, item := range evidence {
		if item.SourceURL == "" {
			results[i] = model.LinkCheck{CheckedAt: time.Now().UTC(), Error: "no URL"}
			continue
		}

		wg.Add(1)
		go func(idx int, url string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.LinkCheck{
					URL:       url,
					CheckedAt: time.Now().UTC(),
					Error:     "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.checkWithRetry(ctx, url)
		}(i, item.SourceURL)
	}

	wg.Wait()
	return results
}

// checkSingle performs one HEAD request against the URL.
func (v *Validator) checkSingle(ctx context.Context, url string) model.LinkCheck {
	result := model.LinkCheck{
		URL:       url,
		CheckedAt: time.Now().UTC(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.IsAccessible = true
	}
	if resp.Request.URL.String() != url {
		result.RedirectURL = resp.Request.URL.String()
	}

	if result.IsAccessible && v.fetchTitle {
		if title, err := v.pageTitle(ctx, url); err == nil {
			result.PageTitle = title
		}
	}

	return result
}

// checkWithRetry retries transient failures with exponential backoff.
func (v *Validator) checkWithRetry(ctx context.Context, url string) model.LinkCheck {
	var result model.LinkCheck
	for attempt := 0; attempt < maxRetries; attempt++ {
		result = v.checkSingle(ctx, url)
		if !isRetryable(result) {
			return result
		}
		if attempt < maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			sleepFunc(backoff)
		}
	}
	return result
}

// isRetryable returns true for results that indicate transient failures.
func isRetryable(result model.LinkCheck) bool {
	if result.StatusCode >= 500 && result.StatusCode < 600 {
		return true
	}
	if result.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if result.Error != "" {
		s := strings.ToLower(result.Error)
		return strings.Contains(s, "timeout") ||
			strings.Contains(s, "connection refused") ||
			strings.Contains(s, "connection reset")
	}
	return false
}

// pageTitle fetches the page and extracts its <title>, respecting
// robots.txt.
func (v *Validator) pageTitle(ctx context.Context, url string) (string, error) {
	allowed, err := v.robots.CanFetch(ctx, url)
	if err != nil || !allowed {
		return "", fmt.Errorf("fetch disallowed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", v.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	// Titles live in the head; 64 KiB is plenty
	return extractTitle(io.LimitReader(resp.Body, 64*1024))
}

// extractTitle parses HTML and returns the first <title> text.
func extractTitle(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if title == "" {
		return "", fmt.Errorf("no title found")
	}
	return title, nil
}
