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

import "time"

// Commit represents one commit record as returned by the repository's
// commit-listing endpoint. Values are immutable once fetched; the CSV output
// is derived from them without further transformation.
type Commit struct {
	SHA     string
	Author  string
	Email   string
	Date    time.Time
	Message string
}

// CommitPage represents one page of commits. NextPage is the page number of
// the following page, or zero when this page is the last one. This keeps
// memory bounded: the caller streams each page to the output before
// requesting the next.
type CommitPage struct {
	Commits  []Commit
	NextPage int
}

// Issue represents one issue record. Pull requests, which share the issues
// endpoint on GitHub's side, are filtered out before an Issue is produced.
type Issue struct {
	ID        int64
	Number    int
	Title     string
	User      string
	State     string
	CreatedAt time.Time
	ClosedAt  *time.Time
	Comments  int
}

// IssuePage represents one page of issues with the same pagination contract
// as CommitPage.
type IssuePage struct {
	Issues   []Issue
	NextPage int
}

// FetchOptions configures a single page request.
type FetchOptions struct {
	// PageSize controls how many records to fetch per page.
	// Defaults to 100 if not specified. Maximum is 100 per GitHub's API limits.
	PageSize int

	// Page is the 1-based page number to fetch. Zero fetches the first page.
	Page int

	// State filters issues by state: "open", "closed", or "all".
	// Ignored for commit requests.
	State string
}

// Default values for fetch operations
const (
	defaultPageSize = 100
	maxPageSize     = 100
)
