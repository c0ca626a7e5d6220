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

// Package github provides the client for fetching commit and issue metadata
// from the GitHub REST API.
//
// The package exposes a small Client interface so commands can be tested
// against a mock, with RESTClient as the production implementation built on
// google/go-github. Fetching is page-at-a-time: each call returns one page of
// normalized records plus the number of the next page, and the caller drives
// the loop. Nothing is retried here; classified errors wrap the sentinels in
// internal/errors and abort the run at the command layer.
package github
