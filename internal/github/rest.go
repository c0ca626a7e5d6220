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
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	minererrors "github.com/repominerhq/repo-miner/internal/errors"
	"github.com/repominerhq/repo-miner/internal/giterror"
)

// RESTClient implements the Client interface using the GitHub REST API.
// With a token it authenticates every request through an oauth2 static token
// source; without one it issues anonymous requests, which GitHub serves under
// a much lower rate limit. That choice belongs to the caller and is not an
// error here.
type RESTClient struct {
	api       *gh.Client
	inspector giterror.Inspector
}

// NewRESTClient creates a new GitHub REST client. endpoint overrides the API
// base URL when non-empty, which supports GitHub Enterprise deployments and
// test servers. The underlying transport uses connection pooling tuned for
// a sequence of paginated calls to a single host.
func NewRESTClient(token, endpoint string) (*RESTClient, error) {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(
			context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Transport: transport}),
			ts,
		)
	} else {
		httpClient = &http.Client{Transport: transport}
	}

	api := gh.NewClient(httpClient)
	if endpoint != "" {
		base, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid api endpoint %q: %w", endpoint, err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		api.BaseURL = base
	}

	return &RESTClient{
		api:       api,
		inspector: giterror.NewInspector(),
	}, nil
}

// FetchCommits fetches a page of commits from the specified repository.
// Records arrive in the order the host returns them, reverse-chronological
// for GitHub, and are normalized into the domain Commit type.
func (c *RESTClient) FetchCommits(ctx context.Context, owner, repo string, opts FetchOptions) (*CommitPage, error) {
	listOpts := &gh.CommitsListOptions{
		ListOptions: gh.ListOptions{
			PerPage: normalizePageSize(opts.PageSize),
			Page:    opts.Page,
		},
	}

	commits, resp, err := c.api.Repositories.ListCommits(ctx, owner, repo, listOpts)
	if err != nil {
		return nil, c.mapError(err, owner, repo)
	}

	page := &CommitPage{
		Commits:  make([]Commit, 0, len(commits)),
		NextPage: resp.NextPage,
	}
	for _, rc := range commits {
		page.Commits = append(page.Commits, convertCommit(rc))
	}

	return page, nil
}

// FetchIssues fetches a page of issues from the specified repository.
// GitHub's issues endpoint also returns pull requests; those are dropped
// before conversion so only true issues reach the output.
func (c *RESTClient) FetchIssues(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error) {
	state := opts.State
	if state == "" {
		state = "all"
	}

	listOpts := &gh.IssueListByRepoOptions{
		State: state,
		ListOptions: gh.ListOptions{
			PerPage: normalizePageSize(opts.PageSize),
			Page:    opts.Page,
		},
	}

	issues, resp, err := c.api.Issues.ListByRepo(ctx, owner, repo, listOpts)
	if err != nil {
		return nil, c.mapError(err, owner, repo)
	}

	page := &IssuePage{
		Issues:   make([]Issue, 0, len(issues)),
		NextPage: resp.NextPage,
	}
	for _, ri := range issues {
		if ri.IsPullRequest() {
			continue
		}
		page.Issues = append(page.Issues, convertIssue(ri))
	}

	return page, nil
}

// mapError maps REST API errors to our domain errors with actionable messages.
// Rate limit is checked first: a 403 can be both an authorization rejection
// and a quota rejection, and the quota case must win.
func (c *RESTClient) mapError(err error, owner, repo string) error {
	if err == nil {
		return nil
	}

	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded. Authenticate or wait before retrying: %w", minererrors.ErrRateLimit)
	}

	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or the configured token environment variable: %w", minererrors.ErrInvalidToken)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("repository '%s/%s' not found. Please check the repository name and your access permissions: %w", owner, repo, minererrors.ErrRepoNotFound)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", minererrors.ErrNetworkFailure)
	}

	return fmt.Errorf("github api request failed: %w", err)
}

func normalizePageSize(size int) int {
	if size <= 0 || size > maxPageSize {
		return defaultPageSize
	}
	return size
}

// convertCommit normalizes a REST commit record into the domain model.
// Author fields come from the underlying git commit rather than the GitHub
// account, so commits pushed without a linked account still carry name and
// email.
func convertCommit(rc *gh.RepositoryCommit) Commit {
	c := Commit{SHA: rc.GetSHA()}

	commit := rc.GetCommit()
	if commit == nil {
		return c
	}

	c.Message = commit.GetMessage()
	if author := commit.GetAuthor(); author != nil {
		c.Author = author.GetName()
		c.Email = author.GetEmail()
		c.Date = author.GetDate().Time.UTC()
	}

	return c
}

func convertIssue(ri *gh.Issue) Issue {
	issue := Issue{
		ID:        ri.GetID(),
		Number:    ri.GetNumber(),
		Title:     ri.GetTitle(),
		User:      ri.GetUser().GetLogin(),
		State:     ri.GetState(),
		CreatedAt: ri.GetCreatedAt().Time.UTC(),
		Comments:  ri.GetComments(),
	}

	if ri.ClosedAt != nil {
		closed := ri.ClosedAt.Time.UTC()
		issue.ClosedAt = &closed
	}

	return issue
}
