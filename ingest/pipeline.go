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

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/resumatch/resumatch/candidate"
	"github.com/resumatch/resumatch/config"
	"github.com/resumatch/resumatch/embedder"
	"github.com/resumatch/resumatch/extract"
)

// Pipeline ingests a directory of résumé files: extract, normalize, chunk,
// triage, embed, upsert. Documents are processed concurrently by a bounded
// worker pool; per-document failures are logged and never abort the batch.
type Pipeline struct {
	store    *candidate.Store
	embedder embedder.Embedder
	chunker  *Chunker
	triage   *Triage
	identity *Identity
	retryer  *Retryer
	metrics  *Metrics
	cfg      *config.IngestConfig
}

// NewPipeline assembles an ingestion pipeline. judge may be nil to select
// chunks in document order instead of by scored relevance.
func NewPipeline(store *candidate.Store, emb embedder.Embedder, judge RelevanceJudge, cfg *config.IngestConfig) (*Pipeline, error) {
	if store == nil {
		return nil, fmt.Errorf("candidate store is required")
	}
	if emb == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("ingest config is required")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ingest config: %w", err)
	}

	identity, err := NewIdentity(cfg.DedupMode)
	if err != nil {
		return nil, err
	}

	var counter TokenEstimator
	if cfg.MaxSelectedTokens > 0 {
		tc, err := NewTokenCounter(emb.Model())
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		counter = tc
	}

	return &Pipeline{
		store:    store,
		embedder: emb,
		chunker:  NewChunker(cfg.MaxChunkLen, cfg.MinChunkLen),
		triage:   NewTriage(judge, cfg.TopChunks, counter, cfg.MaxSelectedTokens),
		identity: identity,
		retryer:  NewRetryer(RetryConfig{}),
		metrics:  &Metrics{},
		cfg:      cfg,
	}, nil
}

// Run ingests every supported file under the configured source directory
// and returns the per-document outcome counts. The returned error covers
// setup failures only; per-document failures are counted, not propagated.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	entries, err := os.ReadDir(p.cfg.SourceDir)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read source directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && extract.Supported(e.Name()) {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		slog.Warn("No résumé files found", "dir", p.cfg.SourceDir)
		return p.metrics.Snapshot(), nil
	}

	slog.Info("Starting ingestion",
		"files", len(files),
		"workers", p.cfg.Workers,
		"dedup_mode", p.identity.Mode())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for _, filename := range files {
		g.Go(func() error {
			p.processFile(ctx, filename)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return p.metrics.Snapshot(), err
	}

	summary := p.metrics.Snapshot()
	slog.Info("Ingestion finished",
		"processed", summary.Processed,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
		"overwritten", summary.Overwritten,
		"failed", summary.Failed,
		"chunks_considered", summary.ChunksConsidered,
		"chunks_selected", summary.ChunksSelected)
	return summary, nil
}

// processFile runs one document through the pipeline. Every exit path is
// counted exactly once.
func (p *Pipeline) processFile(ctx context.Context, filename string) {
	p.metrics.addProcessed()

	text, err := extract.Text(ctx, filepath.Join(p.cfg.SourceDir, filename))
	if err != nil {
		slog.Warn("Skipping unreadable document", "file", filename, "error", err)
		p.metrics.addFailed()
		return
	}

	selected, err := p.selectText(ctx, text, filename)
	if err != nil {
		slog.Warn("Skipping document", "file", filename, "reason", err)
		p.metrics.addSkipped()
		return
	}

	id := p.identity.DocumentID(filename, selected)
	name, role := candidate.ParseFilename(filename)
	doc := candidate.Document{
		ID:          id,
		Filename:    filename,
		DisplayName: name,
		Role:        role,
		Content:     selected,
	}

	exists, err := p.store.Exists(ctx, id)
	if err != nil {
		slog.Error("Existence check failed", "file", filename, "error", err)
		p.metrics.addFailed()
		return
	}

	if exists {
		existing, err := p.store.Get(ctx, id)
		if err == nil && existing.Content == selected {
			slog.Info("Already indexed, skipping", "file", filename, "id", id)
			p.metrics.addSkipped()
			return
		}

		// Same name-stable id, different content: overwrite the record
		// but carry its notes forward.
		vec, err := p.embed(ctx, selected)
		if err != nil {
			slog.Error("Embedding failed", "file", filename, "error", &IndexError{Filename: filename, Err: err})
			p.metrics.addFailed()
			return
		}
		if err := p.store.Overwrite(ctx, doc, vec); err != nil {
			slog.Error("Overwrite failed", "file", filename, "error", err)
			p.metrics.addFailed()
			return
		}
		slog.Info("Re-indexed with new content", "file", filename, "id", id)
		p.metrics.addOverwritten()
		return
	}

	vec, err := p.embed(ctx, selected)
	if err != nil {
		slog.Error("Embedding failed", "file", filename, "error", &IndexError{Filename: filename, Err: err})
		p.metrics.addFailed()
		return
	}

	inserted, err := p.store.Insert(ctx, doc, vec)
	if err != nil {
		slog.Error("Insert failed", "file", filename, "error", err)
		p.metrics.addFailed()
		return
	}
	if !inserted {
		// Another worker won the race; the store copy is authoritative.
		slog.Info("Already indexed, skipping", "file", filename, "id", id)
		p.metrics.addSkipped()
		return
	}

	slog.Info("Indexed", "file", filename, "id", id)
	p.metrics.addInserted()
}

// selectText normalizes, chunks, and triages one document's text.
func (p *Pipeline) selectText(ctx context.Context, text, filename string) (string, error) {
	normalized := Normalize(text)
	if normalized == "" {
		return "", &DataQualityError{Filename: filename, Reason: "empty document"}
	}

	chunks := p.chunker.Split(normalized)
	if len(chunks) == 0 {
		return "", &DataQualityError{Filename: filename, Reason: "no qualifying chunks"}
	}

	selected, kept := p.triage.Select(ctx, p.cfg.TargetRole, chunks)
	p.metrics.addChunks(len(chunks), kept)
	if selected == "" {
		return "", &DataQualityError{Filename: filename, Reason: "no chunks selected"}
	}
	return selected, nil
}

// embed retries transient provider failures and applies the fixed
// inter-call delay that rate-limits the embedding provider.
func (p *Pipeline) embed(ctx context.Context, text string) ([]float32, error) {
	var vec []float32
	err := p.retryer.Do(ctx, "embed", func() error {
		var embedErr error
		vec, embedErr = p.embedder.Embed(ctx, text)
		return embedErr
	})
	if err != nil {
		return nil, err
	}

	if p.cfg.EmbedDelayMs > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(p.cfg.EmbedDelayMs) * time.Millisecond):
		}
	}
	return vec, nil
}
