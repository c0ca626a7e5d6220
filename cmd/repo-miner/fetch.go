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
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/repominerhq/repo-miner/internal/config"
	minererrors "github.com/repominerhq/repo-miner/internal/errors"
	"github.com/repominerhq/repo-miner/internal/github"
	"github.com/repominerhq/repo-miner/internal/output"
	"github.com/repominerhq/repo-miner/pkg/logger"
)

// fetchTimeout bounds a whole fetch run, not a single page request.
const fetchTimeout = 10 * time.Minute

// fetchCommitsOptions is the resolved run configuration for fetch-commits.
// Everything the fetch needs, including the token, is carried here
// explicitly so the pipeline never reads process state mid-run.
type fetchCommitsOptions struct {
	repo       string
	out        string
	token      string
	configPath string
	maxCommits int
	maxSet     bool
}

func newFetchCommitsCommand() *cobra.Command {
	var opts fetchCommitsOptions

	cmd := &cobra.Command{
		Use:   "fetch-commits",
		Short: "Fetch commit history from a GitHub repository into a CSV file",
		Long: `Fetch commit history from a GitHub repository and save it as CSV.

The repository must be specified in the format: <owner>/<repo>
For example: golang/go, kubernetes/kubernetes

Authentication is optional. A token is read from the --token flag or the
GITHUB_TOKEN environment variable; without one, requests are anonymous and
subject to GitHub's stricter unauthenticated rate limits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
			defer cancel()

			opts.maxSet = cmd.Flags().Changed("max-commits")
			return runFetchCommits(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.repo, "repo", "", "Repository in <owner>/<repo> format (required)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Path to the output commits CSV (required)")
	cmd.Flags().IntVar(&opts.maxCommits, "max-commits", 0, "Maximum number of commits to fetch (default: all)")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides the token environment variable)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")

	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// runFetchCommits executes the fetch-commits command
func runFetchCommits(ctx context.Context, opts fetchCommitsOptions) error {
	owner, repo, err := parseRepository(opts.repo)
	if err != nil {
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

	// An explicit non-positive cap means "fetch nothing": write the header
	// and stop before any network call.
	if opts.maxSet && opts.maxCommits <= 0 {
		writer, wErr := output.NewCSVFileWriter(opts.out, output.CommitHeader)
		if wErr != nil {
			return wErr
		}
		if cErr := writer.Close(); cErr != nil {
			return cErr
		}
		logger.Infof("Saved 0 commits to %s", opts.out)
		return nil
	}

	client, err := github.NewRESTClient(token, cfg.GitHub.APIEndpoint)
	if err != nil {
		return err
	}

	logger.Infof("Fetching commits from %s/%s...", owner, repo)

	// Fetch the first page before touching the output path, so an auth or
	// not-found rejection leaves no file behind.
	fetchOpts := github.FetchOptions{PageSize: cfg.Defaults.PageSize, Page: 1}
	page, err := client.FetchCommits(ctx, owner, repo, fetchOpts)
	if err != nil {
		return err
	}

	writer, err := output.NewCSVFileWriter(opts.out, output.CommitHeader)
	if err != nil {
		return err
	}
	defer writer.Close()

	total := 0
	for {
		for _, c := range page.Commits {
			if opts.maxSet && total >= opts.maxCommits {
				break
			}
			if err := writer.Write(output.CommitRow(c)); err != nil {
				return fmt.Errorf("failed to write commit: %w", err)
			}
			total++
		}

		if page.NextPage == 0 || (opts.maxSet && total >= opts.maxCommits) {
			break
		}

		logger.Debugf("Fetched %d commits, requesting page %d", total, page.NextPage)

		fetchOpts.Page = page.NextPage
		page, err = client.FetchCommits(ctx, owner, repo, fetchOpts)
		if err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}

	logger.Infof("Saved %d commits to %s", total, opts.out)
	return nil
}

// parseRepository parses an owner/repo string into owner and repo components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// getToken returns the GitHub token from the flag or the configured
// environment variable
func getToken(flagToken, envVar string) string {
	if flagToken != "" {
		return flagToken
	}
	return os.Getenv(envVar)
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, minererrors.ErrInvalidToken) ||
		errors.Is(err, minererrors.ErrRepoNotFound) ||
		errors.Is(err, minererrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, minererrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
