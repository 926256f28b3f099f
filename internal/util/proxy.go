package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds the proxy selector shared by the outbound HTTP
// clients: Serper search, evidence link validation, and hosted LLM calls.
// Explicit settings win over the environment so one config file controls
// egress. Hosts listed in noProxy always connect direct, which keeps a
// local Ollama endpoint reachable from behind a corporate proxy.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	bypass := splitHostList(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if hostBypassed(req.URL.Hostname(), bypass) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func splitHostList(list string) []string {
	var hosts []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			hosts = append(hosts, part)
		}
	}
	return hosts
}

// hostBypassed reports whether host matches a bypass entry exactly or as
// a domain suffix, so "internal.example" covers "api.internal.example".
func hostBypassed(host string, bypass []string) bool {
	host = strings.ToLower(host)
	for _, entry := range bypass {
		entry = strings.ToLower(strings.TrimPrefix(entry, "."))
		if host == entry || strings.HasSuffix(host, "."+entry) {
			return true
		}
	}
	return false
}
