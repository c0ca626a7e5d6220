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
	"github.com/spf13/cobra"

	"github.com/repominerhq/repo-miner/internal/summary"
	"github.com/repominerhq/repo-miner/pkg/logger"
)

func newSummarizeCommand() *cobra.Command {
	var (
		commitsPath string
		issuesPath  string
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Merge fetched CSV files into a per-author activity summary",
		Long: `Merge previously fetched commit and issue CSV files into a per-author
activity summary CSV. The inputs must be files produced by fetch-commits and
fetch-issues; this command performs no network access.

Rows are joined on the author column: commit rows carry git author names and
issue rows carry GitHub logins, so the two only merge when they coincide.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			activities, err := summary.Build(commitsPath, issuesPath)
			if err != nil {
				return err
			}

			if err := summary.WriteCSV(activities, outPath); err != nil {
				return err
			}

			logger.Infof("Saved summary of %d authors to %s", len(activities), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&commitsPath, "commits", "", "Path to a commits CSV produced by fetch-commits (required)")
	cmd.Flags().StringVar(&issuesPath, "issues", "", "Path to an issues CSV produced by fetch-issues (optional)")
	cmd.Flags().StringVar(&outPath, "out", "", "Path to the output summary CSV (required)")

	_ = cmd.MarkFlagRequired("commits")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
