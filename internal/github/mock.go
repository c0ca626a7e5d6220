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

package github

import (
	"context"
	"fmt"
	"time"

	minererrors "github.com/repominerhq/repo-miner/internal/errors"
)

// MockClient is a mock implementation of the GitHub Client interface for testing.
// It serves the configured records page by page using the same pagination
// contract as the REST client.
type MockClient struct {
	// Records to return
	Commits []Commit
	Issues  []Issue

	// Error to return
	Error error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNetwork  bool
	ShouldFailNotFound bool

	// Track calls for verification
	CallCount int
	LastOwner string
	LastRepo  string
	LastOpts  FetchOptions
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		Commits: generateTestCommits(),
	}
}

// FetchCommits implements the Client interface
func (m *MockClient) FetchCommits(ctx context.Context, owner, repo string, opts FetchOptions) (*CommitPage, error) {
	if err := m.observe(ctx, owner, repo, opts); err != nil {
		return nil, err
	}

	start, end, next := pageBounds(len(m.Commits), opts)
	return &CommitPage{
		Commits:  m.Commits[start:end],
		NextPage: next,
	}, nil
}

// FetchIssues implements the Client interface
func (m *MockClient) FetchIssues(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error) {
	if err := m.observe(ctx, owner, repo, opts); err != nil {
		return nil, err
	}

	start, end, next := pageBounds(len(m.Issues), opts)
	return &IssuePage{
		Issues:   m.Issues[start:end],
		NextPage: next,
	}, nil
}

// observe tracks the call and simulates the configured failure modes.
func (m *MockClient) observe(ctx context.Context, owner, repo string, opts FetchOptions) error {
	m.CallCount++
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastOpts = opts

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", minererrors.ErrInvalidToken)
	}

	if m.ShouldFailNetwork {
		return fmt.Errorf("network timeout: %w", minererrors.ErrNetworkFailure)
	}

	if m.ShouldFailNotFound || (owner == "nonexistent" && repo == "repo") {
		return fmt.Errorf("repository not found: %w", minererrors.ErrRepoNotFound)
	}

	return m.Error
}

// pageBounds computes the slice window for the requested page and the number
// of the page after it, zero when the window reaches the end of the records.
func pageBounds(total int, opts FetchOptions) (start, end, next int) {
	pageSize := normalizePageSize(opts.PageSize)
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	start = (page - 1) * pageSize
	if start > total {
		start = total
	}
	end = start + pageSize
	if end >= total {
		return start, total, 0
	}
	return start, end, page + 1
}

// generateTestCommits creates sample commit data for testing
func generateTestCommits() []Commit {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	return []Commit{
		{
			SHA:     "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0",
			Author:  "Alice Example",
			Email:   "alice@example.com",
			Date:    now,
			Message: "Add new feature for data processing\n\nIncludes parser changes.",
		},
		{
			SHA:     "b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1",
			Author:  "Bob Example",
			Email:   "bob@example.com",
			Date:    yesterday,
			Message: "Fix memory leak in parser",
		},
		{
			SHA:     "c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2",
			Author:  "Charlie Example",
			Email:   "charlie@example.com",
			Date:    lastWeek,
			Message: "Update documentation",
		},
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithCommits sets specific commits to return
func WithCommits(commits []Commit) MockClientOption {
	return func(m *MockClient) {
		m.Commits = commits
	}
}

// WithIssues sets specific issues to return
func WithIssues(issues []Issue) MockClientOption {
	return func(m *MockClient) {
		m.Issues = issues
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
