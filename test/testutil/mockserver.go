// Copyright 2025 RepoMiner, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testutil provides common test helpers for repo-miner
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

// MockServer is an httptest server that mimics the GitHub REST API closely
// enough for the fetch pipeline: page-number pagination via the Link header,
// bearer-token echo for auth assertions, and per-endpoint fixtures.
type MockServer struct {
	*httptest.Server

	commits []CommitFixture
	issues  []IssueFixture

	requestCount int64
}

// NewGitHubServer creates a mock server that serves the given fixtures on
// the commit and issue listing endpoints of any repository.
func NewGitHubServer(t *testing.T, commits []CommitFixture, issues []IssueFixture) *MockServer {
	t.Helper()

	ms := &MockServer{commits: commits, issues: issues}
	ms.Server = httptest.NewServer(http.HandlerFunc(ms.handle))
	t.Cleanup(ms.Close)
	return ms
}

// RequestCount returns the number of requests the server has handled.
func (ms *MockServer) RequestCount() int {
	return int(atomic.LoadInt64(&ms.requestCount))
}

func (ms *MockServer) handle(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&ms.requestCount, 1)

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 30)

	var payload []map[string]interface{}
	var total int

	switch {
	case pathEndsWith(r.URL.Path, "/commits"):
		total = len(ms.commits)
		start, end := pageWindow(total, page, perPage)
		for _, c := range ms.commits[start:end] {
			payload = append(payload, c.toJSON())
		}
	case pathEndsWith(r.URL.Path, "/issues"):
		state := r.URL.Query().Get("state")
		filtered := filterIssues(ms.issues, state)
		total = len(filtered)
		start, end := pageWindow(total, page, perPage)
		for _, i := range filtered[start:end] {
			payload = append(payload, i.toJSON())
		}
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
		return
	}

	if page*perPage < total {
		next := fmt.Sprintf("<%s%s?page=%d>; rel=\"next\"", ms.URL, r.URL.Path, page+1)
		w.Header().Set("Link", next)
	}

	w.Header().Set("Content-Type", "application/json")
	if payload == nil {
		fmt.Fprint(w, "[]")
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// NewAuthFailureServer creates a mock server that rejects every request as
// unauthenticated.
func NewAuthFailureServer(t *testing.T) *MockServer {
	t.Helper()

	ms := &MockServer{}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&ms.requestCount, 1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	}))
	t.Cleanup(ms.Close)
	return ms
}

// NewRateLimitServer creates a mock server that reports an exhausted primary
// rate limit on every request.
func NewRateLimitServer(t *testing.T) *MockServer {
	t.Helper()

	ms := &MockServer{}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&ms.requestCount, 1)
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
	}))
	t.Cleanup(ms.Close)
	return ms
}

// NewNotFoundServer creates a mock server that reports every repository as
// missing.
func NewNotFoundServer(t *testing.T) *MockServer {
	t.Helper()

	ms := &MockServer{}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&ms.requestCount, 1)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))
	t.Cleanup(ms.Close)
	return ms
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func pageWindow(total, page, perPage int) (start, end int) {
	start = (page - 1) * perPage
	if start > total {
		start = total
	}
	end = start + perPage
	if end > total {
		end = total
	}
	return start, end
}

func pathEndsWith(path, suffix string) bool {
	return len(path) >= len(suffix) && path[len(path)-len(suffix):] == suffix
}

func filterIssues(issues []IssueFixture, state string) []IssueFixture {
	if state == "" || state == "all" {
		return issues
	}
	var filtered []IssueFixture
	for _, i := range issues {
		if i.State == state {
			filtered = append(filtered, i)
		}
	}
	return filtered
}
