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

package testutil

import (
	"fmt"
	"time"
)

// fixtureEpoch anchors generated timestamps so test output is stable across
// runs.
var fixtureEpoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// CommitFixture describes one commit served by the mock server.
type CommitFixture struct {
	SHA     string
	Author  string
	Email   string
	Date    time.Time
	Message string
}

func (c CommitFixture) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"sha": c.SHA,
		"commit": map[string]interface{}{
			"author": map[string]interface{}{
				"name":  c.Author,
				"email": c.Email,
				"date":  c.Date.Format(time.RFC3339),
			},
			"message": c.Message,
		},
	}
}

// GenerateCommitFixtures creates n commits in reverse chronological order,
// matching how the live API returns history.
func GenerateCommitFixtures(n int) []CommitFixture {
	commits := make([]CommitFixture, n)
	for i := 0; i < n; i++ {
		commits[i] = CommitFixture{
			SHA:     fmt.Sprintf("%040x", i+1),
			Author:  fmt.Sprintf("Author %d", i%3),
			Email:   fmt.Sprintf("author%d@example.com", i%3),
			Date:    fixtureEpoch.Add(-time.Duration(i) * time.Hour),
			Message: fmt.Sprintf("Commit message %d", i),
		}
	}
	return commits
}

// IssueFixture describes one issue served by the mock server. PullRequest
// marks entries the issues endpoint returns for pull requests, which the
// client must drop.
type IssueFixture struct {
	ID          int64
	Number      int
	Title       string
	User        string
	State       string
	CreatedAt   time.Time
	ClosedAt    *time.Time
	Comments    int
	PullRequest bool
}

func (i IssueFixture) toJSON() map[string]interface{} {
	out := map[string]interface{}{
		"id":         i.ID,
		"number":     i.Number,
		"title":      i.Title,
		"user":       map[string]interface{}{"login": i.User},
		"state":      i.State,
		"created_at": i.CreatedAt.Format(time.RFC3339),
		"comments":   i.Comments,
	}
	if i.ClosedAt != nil {
		out["closed_at"] = i.ClosedAt.Format(time.RFC3339)
	}
	if i.PullRequest {
		out["pull_request"] = map[string]interface{}{
			"url": fmt.Sprintf("https://api.github.com/repos/test/repo/pulls/%d", i.Number),
		}
	}
	return out
}

// GenerateIssueFixtures creates n issues with a mix of open and closed
// states. Even-numbered issues are closed one day after creation.
func GenerateIssueFixtures(n int) []IssueFixture {
	issues := make([]IssueFixture, n)
	for i := 0; i < n; i++ {
		f := IssueFixture{
			ID:        int64(1000 + i),
			Number:    i + 1,
			Title:     fmt.Sprintf("Issue %d", i+1),
			User:      fmt.Sprintf("user%d", i%2),
			State:     "open",
			CreatedAt: fixtureEpoch.Add(-time.Duration(i) * 24 * time.Hour),
			Comments:  i,
		}
		if i%2 == 0 {
			closed := f.CreatedAt.Add(24 * time.Hour)
			f.State = "closed"
			f.ClosedAt = &closed
		}
		issues[i] = f
	}
	return issues
}
