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

import "sync/atomic"

// Metrics counts per-document outcomes of one ingestion run. Safe for
// concurrent updates from the worker pool.
type Metrics struct {
	processed        atomic.Int64
	inserted         atomic.Int64
	skipped          atomic.Int64
	overwritten      atomic.Int64
	failed           atomic.Int64
	chunksConsidered atomic.Int64
	chunksSelected   atomic.Int64
}

// Summary is a point-in-time copy of the counters.
type Summary struct {
	Processed        int64
	Inserted         int64
	Skipped          int64
	Overwritten      int64
	Failed           int64
	ChunksConsidered int64
	ChunksSelected   int64
}

func (m *Metrics) addProcessed()   { m.processed.Add(1) }
func (m *Metrics) addInserted()    { m.inserted.Add(1) }
func (m *Metrics) addSkipped()     { m.skipped.Add(1) }
func (m *Metrics) addOverwritten() { m.overwritten.Add(1) }
func (m *Metrics) addFailed()      { m.failed.Add(1) }

func (m *Metrics) addChunks(considered, selected int) {
	m.chunksConsidered.Add(int64(considered))
	m.chunksSelected.Add(int64(selected))
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() Summary {
	return Summary{
		Processed:        m.processed.Load(),
		Inserted:         m.inserted.Load(),
		Skipped:          m.skipped.Load(),
		Overwritten:      m.overwritten.Load(),
		Failed:           m.failed.Load(),
		ChunksConsidered: m.chunksConsidered.Load(),
		ChunksSelected:   m.chunksSelected.Load(),
	}
}
