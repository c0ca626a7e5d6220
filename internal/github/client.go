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

import "context"

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests.
type Client interface {
	// FetchCommits retrieves a page of commits from the specified repository,
	// newest first. Page-number pagination is driven through opts.Page; the
	// returned CommitPage carries the number of the next page to request.
	FetchCommits(ctx context.Context, owner, repo string, opts FetchOptions) (*CommitPage, error)

	// FetchIssues retrieves a page of issues from the specified repository
	// with pull requests filtered out. opts.State selects open, closed or all
	// issues.
	FetchIssues(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error)
}
