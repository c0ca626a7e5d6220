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

// Package summary merges previously fetched commit and issue CSV files into
// a per-author activity report. It consumes the exact files fetch-commits
// and fetch-issues produce and performs no network access of its own.
package summary

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/repominerhq/repo-miner/internal/output"
)

// Header is the fixed column set for summary CSV files.
var Header = []string{"author", "commits", "first_commit", "last_commit", "issues_opened"}

// AuthorActivity aggregates one author's activity across the input files.
// Issues are joined to commits on the author column value: the commits file
// carries git author names and the issues file carries GitHub logins, so
// rows only merge when the two coincide; otherwise they appear as separate
// authors, which keeps the report lossless.
type AuthorActivity struct {
	Author       string
	Commits      int
	FirstCommit  time.Time
	LastCommit   time.Time
	IssuesOpened int
}

// Build reads the commits CSV at commitsPath and, when issuesPath is
// non-empty, the issues CSV at issuesPath, and returns per-author activity
// sorted by commit count descending, then author ascending, so the report
// is deterministic for a given pair of inputs.
func Build(commitsPath, issuesPath string) ([]AuthorActivity, error) {
	byAuthor := make(map[string]*AuthorActivity)

	if err := readCommits(commitsPath, byAuthor); err != nil {
		return nil, err
	}

	if issuesPath != "" {
		if err := readIssues(issuesPath, byAuthor); err != nil {
			return nil, err
		}
	}

	activities := make([]AuthorActivity, 0, len(byAuthor))
	for _, a := range byAuthor {
		activities = append(activities, *a)
	}

	sort.Slice(activities, func(i, j int) bool {
		if activities[i].Commits != activities[j].Commits {
			return activities[i].Commits > activities[j].Commits
		}
		return activities[i].Author < activities[j].Author
	})

	return activities, nil
}

// WriteCSV writes the activity report to path in Header column order.
func WriteCSV(activities []AuthorActivity, path string) error {
	writer, err := output.NewCSVFileWriter(path, Header)
	if err != nil {
		return err
	}
	defer writer.Close()

	for _, a := range activities {
		row := []string{
			a.Author,
			fmt.Sprintf("%d", a.Commits),
			formatTime(a.FirstCommit),
			formatTime(a.LastCommit),
			fmt.Sprintf("%d", a.IssuesOpened),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Close()
}

func readCommits(path string, byAuthor map[string]*AuthorActivity) error {
	rows, err := readCSVFile(path, output.CommitHeader)
	if err != nil {
		return err
	}

	for i, row := range rows {
		author := row[1]
		date, err := time.Parse(time.RFC3339, row[3])
		if err != nil {
			return fmt.Errorf("commits file %s row %d: invalid date %q: %w", path, i+1, row[3], err)
		}

		a := byAuthor[author]
		if a == nil {
			a = &AuthorActivity{Author: author, FirstCommit: date, LastCommit: date}
			byAuthor[author] = a
		}

		a.Commits++
		if date.Before(a.FirstCommit) {
			a.FirstCommit = date
		}
		if date.After(a.LastCommit) {
			a.LastCommit = date
		}
	}

	return nil
}

func readIssues(path string, byAuthor map[string]*AuthorActivity) error {
	rows, err := readCSVFile(path, output.IssueHeader)
	if err != nil {
		return err
	}

	for _, row := range rows {
		user := row[3]
		a := byAuthor[user]
		if a == nil {
			a = &AuthorActivity{Author: user}
			byAuthor[user] = a
		}
		a.IssuesOpened++
	}

	return nil
}

// readCSVFile reads a CSV file produced by this tool, validating that its
// header matches wantHeader, and returns the data rows.
func readCSVFile(path string, wantHeader []string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty, expected a header row", path)
	}

	header := records[0]
	if len(header) != len(wantHeader) {
		return nil, fmt.Errorf("%s has %d columns, want %d", path, len(header), len(wantHeader))
	}
	for i, name := range wantHeader {
		if header[i] != name {
			return nil, fmt.Errorf("%s column %d is %q, want %q", path, i, header[i], name)
		}
	}

	return records[1:], nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
