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

package output

// RecordWriter defines the interface for writing tabular record data.
// This abstraction allows alternative output formats to be added without
// changing the fetch pipeline.
type RecordWriter interface {
	// Write appends a single row to the output in arrival order.
	Write(row []string) error

	// Close flushes buffered rows and releases the underlying resources.
	// This should be called when all writing is complete.
	Close() error
}
