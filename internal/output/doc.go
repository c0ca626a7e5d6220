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

// Package output handles CSV serialization of fetched records.
//
// A writer is constructed with its header, which is emitted immediately so a
// run that yields zero records still produces a valid header-only file. Rows
// are written one at a time in arrival order and never rewritten, keeping the
// output a single forward pass regardless of repository size. Row mapping
// from domain records lives here too, so the column layout has exactly one
// owner.
package output
