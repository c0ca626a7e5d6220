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
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/repominerhq/repo-miner/pkg/logger"
	"github.com/repominerhq/repo-miner/pkg/version"
)

func main() {
	// A .env file is optional; absence is not an error. Load it before the
	// logger so LOG_LEVEL from the file takes effect.
	_ = godotenv.Load()
	logger.Init()

	rootCmd := &cobra.Command{
		Use:   "repo-miner",
		Short: "Fetch GitHub commit and issue metadata into CSV files",
		Long: `repo-miner extracts commit and issue metadata from GitHub repositories
through the REST API and writes normalized CSV files. Each run is a single
pass: records are streamed page by page straight into the output file, so
repositories of any size can be mined without holding their history in
memory.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newFetchCommitsCommand())
	rootCmd.AddCommand(newFetchIssuesCommand())
	rootCmd.AddCommand(newSummarizeCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}
