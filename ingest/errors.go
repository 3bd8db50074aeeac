// Copyright 2025 The Resumatch Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingest

import "fmt"

// DataQualityError marks a source document that cannot be ingested, such
// as an empty file or one yielding no qualifying chunks. The document is
// skipped and the batch continues.
type DataQualityError struct {
	Filename string
	Reason   string
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("unusable document %s: %s", e.Filename, e.Reason)
}

// IndexError wraps a per-document failure against the embedding provider
// or the vector store.
type IndexError struct {
	Filename string
	Err      error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("failed to index %s: %v", e.Filename, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}
