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

package search

import "fmt"

// Error marks an infrastructure failure during a query. The query string
// is preserved so the caller can retry. A zero-result response is not an
// Error; it is a valid, successful empty result.
type Error struct {
	Query string
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("search failed for query %q at %s: %v", e.Query, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
