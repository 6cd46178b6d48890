// Package validation provides input validation for the analyze endpoint.
package validation

import (
	"net/url"
	"strings"

	"github.com/yourorg/token-risk-api/internal/apperr"
)

// LaunchpadPolicy validates user-supplied launchpad page URLs. Only secure
// HTTP to the configured domain (or a subdomain of it) is accepted, and the
// path must carry exactly one non-empty segment so sub-pages are rejected.
type LaunchpadPolicy struct {
	Domain string
}

// ValidateURL parses raw and checks it against the policy. Every rejection
// is a validation error with a short caller-facing message.
func (p LaunchpadPolicy) ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, apperr.Validation("invalid URL")
	}

	if u.Scheme != "https" {
		return nil, apperr.Validation("only https:// launchpad URLs are accepted")
	}

	host := strings.ToLower(u.Hostname())
	domain := strings.ToLower(p.Domain)
	if host != domain && !strings.HasSuffix(host, "."+domain) {
		return nil, apperr.Validation("URL host must be %s", p.Domain)
	}

	if len(pathSegments(u.Path)) != 1 {
		return nil, apperr.Validation("launchpad URL must point at a single token page")
	}

	return u, nil
}

// IsWebURL reports whether raw looks like an HTTP(S) URL at all, which is
// how caller input is classified before any policy check.
func IsWebURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

func pathSegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
