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

// Package main implements the repo-miner command-line interface.
// This tool fetches commit and issue metadata from GitHub repositories
// and writes normalized CSV files for downstream analysis.
//
// The CLI supports:
//   - Fetching full commit history, or the newest N commits, as CSV
//   - Fetching issues with pull requests filtered out
//   - Merging fetched CSVs into a per-author activity summary
//   - Optional GitHub token authentication via flag or environment variable
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	repo-miner fetch-commits --repo <owner>/<repo> --out <path> [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	repo-miner fetch-commits --repo golang/go --out commits.csv --max-commits 500
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization/rate-limit error
//   - 3: Network error
package main
