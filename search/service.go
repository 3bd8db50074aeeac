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

// Package search answers job-role queries with a hybrid-ranked candidate
// list.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resumatch/resumatch/candidate"
	"github.com/resumatch/resumatch/config"
	"github.com/resumatch/resumatch/embedder"
	"github.com/resumatch/resumatch/profile"
	"github.com/resumatch/resumatch/ranking"
)

// Response is the result of one ranking query.
type Response struct {
	Query string `json:"query"`
	Count int    `json:"count"`

	// Profile describes the keyword profile that matched the query. Nil
	// means no profile matched and ranking degraded to vector and
	// quality signals.
	Profile *ProfileSummary `json:"profile,omitempty"`

	ElapsedMs  int64                     `json:"elapsed_ms"`
	Candidates []ranking.RankedCandidate `json:"candidates"`
}

// ProfileSummary reports how many required and bonus terms the matched
// profile configures.
type ProfileSummary struct {
	Required int `json:"required"`
	Bonus    int `json:"bonus"`
}

// Service wires the query path: embed the query, retrieve nearest
// neighbors, rank, respond.
type Service struct {
	store    *candidate.Store
	embedder embedder.Embedder
	profiles *profile.Registry
	engine   *ranking.Engine
	cfg      *config.SearchConfig
	target   string
}

// NewService assembles a search service. The embedder should be wrapped
// with embedder.NewCached so repeated queries skip the provider. profiles
// may be empty but not nil.
func NewService(store *candidate.Store, emb embedder.Embedder, profiles *profile.Registry, cfg *config.SearchConfig, targetVector string) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("candidate store is required")
	}
	if emb == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if profiles == nil {
		profiles = profile.Empty()
	}
	if cfg == nil {
		return nil, fmt.Errorf("search config is required")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}

	engine, err := ranking.NewEngine(cfg.Weights, cfg.SummaryLength)
	if err != nil {
		return nil, err
	}

	return &Service{
		store:    store,
		embedder: emb,
		profiles: profiles,
		engine:   engine,
		cfg:      cfg,
		target:   targetVector,
	}, nil
}

// Search ranks stored candidates against a free-text role query.
//
// Zero matching candidates is a successful empty response. An *Error is
// returned only when the embedding provider or vector store is
// unreachable; the query is preserved inside it for caller-side retry.
func (s *Service) Search(ctx context.Context, query string) (*Response, error) {
	start := time.Now()

	if s.cfg.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	slog.Info("Processing query", "query", query)

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &Error{Query: query, Stage: "embed", Err: err}
	}

	docs, distances, err := s.store.Search(ctx, vec, s.cfg.TopK, s.target)
	if err != nil {
		return nil, &Error{Query: query, Stage: "retrieve", Err: err}
	}

	prof := s.profiles.Lookup(query)
	var profSummary *ProfileSummary
	if prof == nil {
		slog.Debug("No keyword profile for query, ranking by vector and quality only", "query", query)
	} else {
		profSummary = &ProfileSummary{Required: len(prof.Required), Bonus: len(prof.Bonus)}
	}

	ranked := s.engine.Rank(docs, distances, prof)

	elapsed := time.Since(start).Milliseconds()
	slog.Info("Query finished",
		"query", query,
		"results", len(ranked),
		"elapsed_ms", elapsed)

	return &Response{
		Query:      query,
		Count:      len(ranked),
		Profile:    profSummary,
		ElapsedMs:  elapsed,
		Candidates: ranked,
	}, nil
}
