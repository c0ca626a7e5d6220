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
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/repominerhq/repo-miner/internal/config"
	"github.com/repominerhq/repo-miner/internal/github"
	"github.com/repominerhq/repo-miner/internal/output"
	"github.com/repominerhq/repo-miner/pkg/logger"
)

// fetchIssuesOptions is the resolved run configuration for fetch-issues.
type fetchIssuesOptions struct {
	repo       string
	out        string
	state      string
	token      string
	configPath string
	maxIssues  int
	maxSet     bool
}

func newFetchIssuesCommand() *cobra.Command {
	var opts fetchIssuesOptions

	cmd := &cobra.Command{
		Use:   "fetch-issues",
		Short: "Fetch issues from a GitHub repository into a CSV file",
		Long: `Fetch issues from a GitHub repository and save them as CSV.

Pull requests are excluded even though GitHub's API reports them alongside
issues. Open issues have an empty closed_at column; open_duration_days is
measured to the close time for closed issues and to the fetch time for open
ones.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
			defer cancel()

			opts.maxSet = cmd.Flags().Changed("max-issues")
			return runFetchIssues(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.repo, "repo", "", "Repository in <owner>/<repo> format (required)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Path to the output issues CSV (required)")
	cmd.Flags().StringVar(&opts.state, "state", "all", "Issue state to fetch: open, closed or all")
	cmd.Flags().IntVar(&opts.maxIssues, "max-issues", 0, "Maximum number of issues to fetch (default: all)")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides the token environment variable)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")

	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// runFetchIssues executes the fetch-issues command
func runFetchIssues(ctx context.Context, opts fetchIssuesOptions) error {
	owner, repo, err := parseRepository(opts.repo)
	if err != nil {
		return err
	}

	if err := validateIssueState(opts.state); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	token := getToken(opts.token, cfg.GitHub.TokenEnv)
	if token == "" {
		logger.Warnf("%s not set; using unauthenticated requests, rate limits may apply", cfg.GitHub.TokenEnv)
	}

	if opts.maxSet && opts.maxIssues <= 0 {
		writer, wErr := output.NewCSVFileWriter(opts.out, output.IssueHeader)
		if wErr != nil {
			return wErr
		}
		if cErr := writer.Close(); cErr != nil {
			return cErr
		}
		logger.Infof("Saved 0 issues to %s", opts.out)
		return nil
	}

	client, err := github.NewRESTClient(token, cfg.GitHub.APIEndpoint)
	if err != nil {
		return err
	}

	logger.Infof("Fetching %s issues from %s/%s...", opts.state, owner, repo)

	fetchOpts := github.FetchOptions{PageSize: cfg.Defaults.PageSize, Page: 1, State: opts.state}
	page, err := client.FetchIssues(ctx, owner, repo, fetchOpts)
	if err != nil {
		return err
	}

	writer, err := output.NewCSVFileWriter(opts.out, output.IssueHeader)
	if err != nil {
		return err
	}
	defer writer.Close()

	// One reference point for every open issue's duration.
	fetchedAt := time.Now().UTC()

	total := 0
	for {
		for _, issue := range page.Issues {
			if opts.maxSet && total >= opts.maxIssues {
				break
			}
			if err := writer.Write(output.IssueRow(issue, fetchedAt)); err != nil {
				return fmt.Errorf("failed to write issue: %w", err)
			}
			total++
		}

		if page.NextPage == 0 || (opts.maxSet && total >= opts.maxIssues) {
			break
		}

		logger.Debugf("Fetched %d issues, requesting page %d", total, page.NextPage)

		fetchOpts.Page = page.NextPage
		page, err = client.FetchIssues(ctx, owner, repo, fetchOpts)
		if err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}

	logger.Infof("Saved %d issues to %s", total, opts.out)
	return nil
}

func validateIssueState(state string) error {
	switch state {
	case "open", "closed", "all":
		return nil
	default:
		return fmt.Errorf("invalid --state %q. Expected: open, closed or all", state)
	}
}
