package giterror

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v57/github"
)

// fakeTimeout satisfies net.Error for simulating transport timeouts.
type fakeTimeout struct{}

func (fakeTimeout) Error() string   { return "i/o timeout" }
func (fakeTimeout) Timeout() bool   { return true }
func (fakeTimeout) Temporary() bool { return true }

func apiResponse(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Request: &http.Request{
			Method: http.MethodGet,
			URL:    &url.URL{Scheme: "https", Host: "api.github.com", Path: "/repos/o/r/commits"},
		},
	}
}

func apiError(status int) *gh.ErrorResponse {
	return &gh.ErrorResponse{
		Response: apiResponse(status),
		Message:  http.StatusText(status),
	}
}

func rateLimitError() *gh.RateLimitError {
	return &gh.RateLimitError{
		Response: apiResponse(http.StatusForbidden),
		Message:  "API rate limit exceeded",
	}
}

func abuseRateLimitError() *gh.AbuseRateLimitError {
	return &gh.AbuseRateLimitError{
		Response: apiResponse(http.StatusForbidden),
		Message:  "You have exceeded a secondary rate limit",
	}
}

func TestIsAuthError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"401 response", apiError(http.StatusUnauthorized), true},
		{"403 response", apiError(http.StatusForbidden), true},
		{"wrapped 401 response", fmt.Errorf("fetch failed: %w", apiError(http.StatusUnauthorized)), true},
		{"404 response", apiError(http.StatusNotFound), false},
		{"bad credentials message", errors.New("GET https://api.github.com/user: bad credentials"), true},
		{"unrelated error", errors.New("something else"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"404 response", apiError(http.StatusNotFound), true},
		{"wrapped 404 response", fmt.Errorf("fetch failed: %w", apiError(http.StatusNotFound)), true},
		{"401 response", apiError(http.StatusUnauthorized), false},
		{"not found message", errors.New("repository not found"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNotFoundError(tt.err); got != tt.want {
				t.Errorf("IsNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRateLimitError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"typed rate limit error", rateLimitError(), true},
		{"typed abuse error", abuseRateLimitError(), true},
		{"wrapped rate limit error", fmt.Errorf("fetch failed: %w", rateLimitError()), true},
		{"rate limit message", errors.New("api rate limit exceeded for 1.2.3.4"), true},
		{"plain 403 response", apiError(http.StatusForbidden), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsRateLimitError(tt.err); got != tt.want {
				t.Errorf("IsRateLimitError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNetworkError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"net.Error timeout", fakeTimeout{}, true},
		{"wrapped net.Error", fmt.Errorf("fetch failed: %w", fakeTimeout{}), true},
		{"url error without response", &url.Error{Op: "Get", URL: "https://api.github.com", Err: errors.New("connection refused")}, true},
		{"connection refused message", errors.New("dial tcp 10.0.0.1:443: connection refused"), true},
		{"no such host message", errors.New("lookup api.github.com: no such host"), true},
		{"api error response", apiError(http.StatusInternalServerError), false},
		{"unrelated error", errors.New("invalid argument"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNetworkError(tt.err); got != tt.want {
				t.Errorf("IsNetworkError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
