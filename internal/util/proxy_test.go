package util

import (
	"net/http"
	"net/url"
	"testing"
)

func proxyFor(t *testing.T, fn func(*http.Request) (*url.URL, error), rawURL string) *url.URL {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	u, err := fn(req)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	fn := NewProxyFunc("http://proxy.local:3128", "http://sproxy.local:3128", "")

	u := proxyFor(t, fn, "https://google.serper.dev/search")
	if u == nil || u.Host != "sproxy.local:3128" {
		t.Errorf("https request got proxy %v, want sproxy.local:3128", u)
	}

	u = proxyFor(t, fn, "http://example.com/article")
	if u == nil || u.Host != "proxy.local:3128" {
		t.Errorf("http request got proxy %v, want proxy.local:3128", u)
	}
}

func TestNewProxyFunc_HTTPFallbackForHTTPS(t *testing.T) {
	fn := NewProxyFunc("http://proxy.local:3128", "", "")

	u := proxyFor(t, fn, "https://example.com/")
	if u == nil || u.Host != "proxy.local:3128" {
		t.Errorf("got proxy %v, want proxy.local:3128", u)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	fn := NewProxyFunc("http://proxy.local:3128", "", "localhost, .internal.example")

	if u := proxyFor(t, fn, "http://localhost:11434/api/generate"); u != nil {
		t.Errorf("localhost should connect direct, got proxy %v", u)
	}
	if u := proxyFor(t, fn, "http://api.internal.example/v1"); u != nil {
		t.Errorf("bypass domain suffix should connect direct, got proxy %v", u)
	}
	if u := proxyFor(t, fn, "http://example.com/"); u == nil {
		t.Error("unlisted host should still use the proxy")
	}
}

func TestHostBypassed(t *testing.T) {
	bypass := []string{"localhost", ".corp.example"}

	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"corp.example", true},
		{"search.corp.example", true},
		{"notcorp.example", false},
		{"example.com", false},
	}

	for _, tt := range tests {
		if got := hostBypassed(tt.host, bypass); got != tt.want {
			t.Errorf("hostBypassed(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}
