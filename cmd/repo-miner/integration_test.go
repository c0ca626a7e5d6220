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

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	minererrors "github.com/repominerhq/repo-miner/internal/errors"
	"github.com/repominerhq/repo-miner/test/testutil"
)

// pointCLIAt routes the commands at a mock server and clears ambient token
// state so tests are hermetic.
func pointCLIAt(t *testing.T, srv *testutil.MockServer) {
	t.Helper()
	t.Setenv("GITHUB_API_ENDPOINT", srv.URL)
	t.Setenv("GITHUB_TOKEN", "test-token")
}

func TestFetchCommitsEndToEnd(t *testing.T) {
	commits := testutil.GenerateCommitFixtures(5)
	srv := testutil.NewGitHubServer(t, commits, nil)
	pointCLIAt(t, srv)

	out := filepath.Join(t.TempDir(), "commits.csv")
	opts := fetchCommitsOptions{repo: "golang/go", out: out}

	if err := runFetchCommits(context.Background(), opts); err != nil {
		t.Fatalf("runFetchCommits: %v", err)
	}

	records := testutil.ReadCSVFile(t, out)
	if len(records) != 6 {
		t.Fatalf("expected header + 5 rows, got %d records", len(records))
	}
	wantHeader := []string{"sha", "author", "email", "date (ISO-8601)", "message (first line)"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}
	for i, c := range commits {
		row := records[i+1]
		if row[0] != c.SHA {
			t.Errorf("row %d sha = %q, want %q", i, row[0], c.SHA)
		}
		if row[1] != c.Author || row[2] != c.Email {
			t.Errorf("row %d author = %q/%q, want %q/%q", i, row[1], row[2], c.Author, c.Email)
		}
	}
}

func TestFetchCommitsPaginates(t *testing.T) {
	srv := testutil.NewGitHubServer(t, testutil.GenerateCommitFixtures(5), nil)
	pointCLIAt(t, srv)
	t.Setenv("REPOMINER_PAGE_SIZE", "2")

	out := filepath.Join(t.TempDir(), "commits.csv")
	opts := fetchCommitsOptions{repo: "golang/go", out: out}

	if err := runFetchCommits(context.Background(), opts); err != nil {
		t.Fatalf("runFetchCommits: %v", err)
	}

	if got := srv.RequestCount(); got != 3 {
		t.Errorf("expected 3 page requests, got %d", got)
	}
	if records := testutil.ReadCSVFile(t, out); len(records) != 6 {
		t.Errorf("expected header + 5 rows, got %d records", len(records))
	}
}

func TestFetchCommitsMaxCommits(t *testing.T) {
	srv := testutil.NewGitHubServer(t, testutil.GenerateCommitFixtures(10), nil)
	pointCLIAt(t, srv)

	out := filepath.Join(t.TempDir(), "commits.csv")
	opts := fetchCommitsOptions{repo: "golang/go", out: out, maxCommits: 3, maxSet: true}

	if err := runFetchCommits(context.Background(), opts); err != nil {
		t.Fatalf("runFetchCommits: %v", err)
	}

	if records := testutil.ReadCSVFile(t, out); len(records) != 4 {
		t.Errorf("expected header + 3 rows, got %d records", len(records))
	}
}

func TestFetchCommitsZeroMaxSkipsNetwork(t *testing.T) {
	srv := testutil.NewGitHubServer(t, testutil.GenerateCommitFixtures(10), nil)
	pointCLIAt(t, srv)

	out := filepath.Join(t.TempDir(), "commits.csv")
	opts := fetchCommitsOptions{repo: "golang/go", out: out, maxCommits: 0, maxSet: true}

	if err := runFetchCommits(context.Background(), opts); err != nil {
		t.Fatalf("runFetchCommits: %v", err)
	}

	if got := srv.RequestCount(); got != 0 {
		t.Errorf("expected no API requests, got %d", got)
	}
	if records := testutil.ReadCSVFile(t, out); len(records) != 1 {
		t.Errorf("expected header only, got %d records", len(records))
	}
}

func TestFetchCommitsAuthFailureWritesNoFile(t *testing.T) {
	srv := testutil.NewAuthFailureServer(t)
	pointCLIAt(t, srv)

	out := filepath.Join(t.TempDir(), "commits.csv")
	opts := fetchCommitsOptions{repo: "golang/go", out: out}

	err := runFetchCommits(context.Background(), opts)
	if !errors.Is(err, minererrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if got := mapErrorToExitCode(err); got != 2 {
		t.Errorf("exit code = %d, want 2", got)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output file should not exist after auth failure, stat: %v", statErr)
	}
}

func TestFetchCommitsRateLimit(t *testing.T) {
	srv := testutil.NewRateLimitServer(t)
	pointCLIAt(t, srv)

	out := filepath.Join(t.TempDir(), "commits.csv")
	opts := fetchCommitsOptions{repo: "golang/go", out: out}

	err := runFetchCommits(context.Background(), opts)
	if !errors.Is(err, minererrors.ErrRateLimit) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output file should not exist after rate limit rejection")
	}
}

func TestFetchCommitsRepoNotFound(t *testing.T) {
	srv := testutil.NewNotFoundServer(t)
	pointCLIAt(t, srv)

	out := filepath.Join(t.TempDir(), "commits.csv")
	opts := fetchCommitsOptions{repo: "golang/nosuchrepo", out: out}

	err := runFetchCommits(context.Background(), opts)
	if !errors.Is(err, minererrors.ErrRepoNotFound) {
		t.Fatalf("expected ErrRepoNotFound, got %v", err)
	}
}

func TestFetchCommitsDeterministicOutput(t *testing.T) {
	srv := testutil.NewGitHubServer(t, testutil.GenerateCommitFixtures(7), nil)
	pointCLIAt(t, srv)

	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")

	for _, out := range []string{first, second} {
		opts := fetchCommitsOptions{repo: "golang/go", out: out}
		if err := runFetchCommits(context.Background(), opts); err != nil {
			t.Fatalf("runFetchCommits to %s: %v", out, err)
		}
	}

	if !bytes.Equal(testutil.ReadFileBytes(t, first), testutil.ReadFileBytes(t, second)) {
		t.Error("identical fetches produced different file contents")
	}
}

func TestFetchIssuesEndToEnd(t *testing.T) {
	issues := testutil.GenerateIssueFixtures(4)
	issues = append(issues, testutil.IssueFixture{
		ID: 9999, Number: 99, Title: "A pull request", User: "bot",
		State: "open", PullRequest: true,
	})
	srv := testutil.NewGitHubServer(t, nil, issues)
	pointCLIAt(t, srv)

	out := filepath.Join(t.TempDir(), "issues.csv")
	opts := fetchIssuesOptions{repo: "golang/go", out: out, state: "all"}

	if err := runFetchIssues(context.Background(), opts); err != nil {
		t.Fatalf("runFetchIssues: %v", err)
	}

	records := testutil.ReadCSVFile(t, out)
	if len(records) != 5 {
		t.Fatalf("expected header + 4 issue rows (pull request dropped), got %d records", len(records))
	}
	for _, row := range records[1:] {
		if row[2] == "A pull request" {
			t.Error("pull request leaked into issues CSV")
		}
	}
	// Fixture issue 1 is closed one day after creation.
	if records[1][6] == "" {
		t.Error("closed issue should have closed_at populated")
	}
	if records[1][8] != "1.00" {
		t.Errorf("closed issue open_duration_days = %q, want %q", records[1][8], "1.00")
	}
}

func TestFetchIssuesInvalidState(t *testing.T) {
	srv := testutil.NewGitHubServer(t, nil, nil)
	pointCLIAt(t, srv)

	out := filepath.Join(t.TempDir(), "issues.csv")
	opts := fetchIssuesOptions{repo: "golang/go", out: out, state: "merged"}

	if err := runFetchIssues(context.Background(), opts); err == nil {
		t.Fatal("expected error for invalid state")
	}
	if got := srv.RequestCount(); got != 0 {
		t.Errorf("expected no API requests for invalid state, got %d", got)
	}
}
