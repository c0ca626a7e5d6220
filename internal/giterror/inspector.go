package giterror

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v57/github"
)

// Inspector provides methods for analyzing GitHub API errors.
type Inspector interface {
	// IsAuthError returns true if the error represents an authentication or authorization failure.
	IsAuthError(err error) bool

	// IsNotFoundError returns true if the error represents a resource not found error.
	IsNotFoundError(err error) bool

	// IsRateLimitError returns true if the error represents a rate limit error.
	IsRateLimitError(err error) bool

	// IsNetworkError returns true if the error represents a network connectivity error.
	IsNetworkError(err error) bool
}

// RESTErrorInspector implements the Inspector interface for GitHub REST API errors.
// It checks the error chain for go-github's typed errors first, then falls back
// to string-based inspection for errors that never reached the API layer.
type RESTErrorInspector struct{}

// NewInspector creates a new RESTErrorInspector.
func NewInspector() Inspector {
	return &RESTErrorInspector{}
}

// IsAuthError checks if the error is an authentication or authorization error.
func (i *RESTErrorInspector) IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := responseStatus(err); ok {
		return code == http.StatusUnauthorized || code == http.StatusForbidden
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "401") ||
		strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "bad credentials")
}

// IsNotFoundError checks if the error is a not found error.
func (i *RESTErrorInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := responseStatus(err); ok {
		return code == http.StatusNotFound
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "404") ||
		strings.Contains(errStr, "not found")
}

// IsRateLimitError checks if the error is a rate limit error. GitHub reports
// primary rate limits as 403 with quota headers and secondary limits as a
// distinct abuse error; go-github surfaces both as typed errors.
func (i *RESTErrorInspector) IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429")
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *RESTErrorInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// A *url.Error wrapping an HTTP-level failure is not a connectivity
		// problem; only treat it as one when no response was produced.
		if _, ok := responseStatus(err); !ok {
			return true
		}
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}

// responseStatus extracts the HTTP status code from a go-github error response
// anywhere in the chain. Rate limit errors carry their own response and are
// classified separately, so they are excluded here.
func responseStatus(err error) (int, bool) {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return 0, false
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return 0, false
	}
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode, true
	}
	return 0, false
}
