package analyze

import (
	"errors"

	"github.com/yourorg/token-risk-api/internal/apperr"
)

// apperrOpen maps an open circuit to the upstream failure the caller would
// have seen anyway, just without burning a request on a known-bad upstream.
func apperrOpen(err error) error {
	return apperr.Upstream(err, "market data temporarily unavailable")
}

// isUpstream reports whether err counts against the circuit breaker. Only
// genuine upstream failures do; a token with no pairs is a healthy answer.
func isUpstream(err error) bool {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Kind == apperr.KindUpstream
}
