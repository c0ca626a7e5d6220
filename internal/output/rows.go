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

package output

import (
	"strconv"
	"strings"
	"time"

	"github.com/repominerhq/repo-miner/internal/github"
)

// CommitHeader is the fixed column set for commit CSV files. Column names are
// part of the output contract and must not change between releases.
var CommitHeader = []string{"sha", "author", "email", "date (ISO-8601)", "message (first line)"}

// IssueHeader is the fixed column set for issue CSV files.
var IssueHeader = []string{"id", "number", "title", "user", "state", "created_at", "closed_at", "comments", "open_duration_days"}

// CommitRow maps one commit record to its CSV row. The hash is passed through
// untouched, the date is rendered as ISO-8601 UTC, and the message is reduced
// to its first line so multi-line messages cannot smear across the table.
func CommitRow(c github.Commit) []string {
	return []string{
		c.SHA,
		c.Author,
		c.Email,
		c.Date.UTC().Format(time.RFC3339),
		firstLine(c.Message),
	}
}

// IssueRow maps one issue record to its CSV row. Open issues have an empty
// closed_at column and their open duration is measured against now, which the
// caller fixes once per run so every row uses the same reference point.
func IssueRow(i github.Issue, now time.Time) []string {
	closedAt := ""
	reference := now.UTC()
	if i.ClosedAt != nil {
		closedAt = i.ClosedAt.UTC().Format(time.RFC3339)
		reference = i.ClosedAt.UTC()
	}

	duration := reference.Sub(i.CreatedAt.UTC()).Hours() / 24
	if duration < 0 {
		duration = 0
	}

	return []string{
		strconv.FormatInt(i.ID, 10),
		strconv.Itoa(i.Number),
		i.Title,
		i.User,
		i.State,
		i.CreatedAt.UTC().Format(time.RFC3339),
		closedAt,
		strconv.Itoa(i.Comments),
		strconv.FormatFloat(duration, 'f', 2, 64),
	}
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimRight(line, "\r")
}
