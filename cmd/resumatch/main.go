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

// Command resumatch ingests résumés into a vector store and ranks
// candidates against job-role queries.
//
// Usage:
//
//	resumatch index --config config.yaml --dir data/resumes
//	resumatch search --config config.yaml "光学工程师"
//	resumatch note --config config.yaml <filename> "电话沟通了，很合适"
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/resumatch/resumatch/candidate"
	"github.com/resumatch/resumatch/config"
	"github.com/resumatch/resumatch/embedder"
	"github.com/resumatch/resumatch/ingest"
	"github.com/resumatch/resumatch/profile"
	"github.com/resumatch/resumatch/search"
	"github.com/resumatch/resumatch/vector"
)

// CLI defines the command-line interface.
type CLI struct {
	Version VersionCmd `cmd:"" help:"Show version information."`
	Index   IndexCmd   `cmd:"" help:"Ingest résumé files into the vector store."`
	Search  SearchCmd  `cmd:"" help:"Rank candidates against a job-role query."`
	Note    NoteCmd    `cmd:"" help:"Append a note to a candidate's communication log."`
	Get     GetCmd     `cmd:"" help:"Show one stored candidate."`
	Schema  SchemaCmd  `cmd:"" help:"Create the vector store collection."`

	Config    string `short:"c" help:"Path to config file." type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFile   string `help:"Log file path (empty = stderr)."`
	LogFormat string `help:"Log format (text or json)." default:"text"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("resumatch version %s\n", version)
	return nil
}

// IndexCmd ingests a directory of résumé files.
type IndexCmd struct {
	Dir       string `help:"Source directory (overrides config)." type:"path"`
	Role      string `help:"Target role for chunk relevance scoring (overrides config)."`
	DedupMode string `name:"dedup-mode" help:"Identifier mode: name or content (overrides config)."`
}

func (c *IndexCmd) Run(cli *CLI) error {
	ctx, cancel := shutdownContext()
	defer cancel()

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	if c.Dir != "" {
		cfg.Ingest.SourceDir = c.Dir
	}
	if c.Role != "" {
		cfg.Ingest.TargetRole = c.Role
	}
	if c.DedupMode != "" {
		cfg.Ingest.DedupMode = c.DedupMode
	}

	provider, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	emb, err := embedder.NewFromConfig(&cfg.Embedder)
	if err != nil {
		return err
	}
	defer emb.Close()

	if err := store.EnsureSchema(ctx, emb.Dimension()); err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}

	var judge ingest.RelevanceJudge
	if cfg.Ingest.Judge != nil && cfg.Ingest.Judge.APIKey != "" {
		judge, err = ingest.NewChatJudge(cfg.Ingest.Judge)
		if err != nil {
			return err
		}
	} else {
		slog.Warn("No relevance judge configured, selecting chunks in document order")
	}

	pipeline, err := ingest.NewPipeline(store, emb, judge, &cfg.Ingest)
	if err != nil {
		return err
	}

	summary, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d files: %d inserted, %d skipped, %d overwritten, %d failed\n",
		summary.Processed, summary.Inserted, summary.Skipped, summary.Overwritten, summary.Failed)
	return nil
}

// SearchCmd ranks candidates against a query.
type SearchCmd struct {
	Query string `arg:"" help:"Job-role query, e.g. 光学工程师."`
	TopK  int    `name:"top-k" help:"Result count (overrides config)."`
}

func (c *SearchCmd) Run(cli *CLI) error {
	ctx, cancel := shutdownContext()
	defer cancel()

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	if c.TopK > 0 {
		cfg.Search.TopK = c.TopK
	}

	provider, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	emb, err := embedder.NewFromConfig(&cfg.Embedder)
	if err != nil {
		return err
	}
	defer emb.Close()

	cached, err := embedder.NewCached(emb, cfg.Embedder.CacheSize)
	if err != nil {
		return err
	}

	profiles := profile.Empty()
	if cfg.Profiles != "" {
		profiles, err = profile.Load(cfg.Profiles)
		if err != nil {
			return err
		}
	}

	svc, err := search.NewService(store, cached, profiles, &cfg.Search, cfg.VectorStore.TargetVector)
	if err != nil {
		return err
	}

	resp, err := svc.Search(ctx, c.Query)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

// NoteCmd appends a communication-log entry.
type NoteCmd struct {
	Filename string `arg:"" help:"Candidate résumé filename (or a raw id with --id)."`
	Note     string `arg:"" help:"Note text."`
	ID       bool   `help:"Treat the first argument as a store id instead of a filename."`
}

func (c *NoteCmd) Run(cli *CLI) error {
	ctx, cancel := shutdownContext()
	defer cancel()

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	provider, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	id := c.Filename
	if !c.ID {
		id = ingest.NameID(c.Filename)
	}

	err = store.AppendNote(ctx, id, candidate.Note{Timestamp: time.Now(), Content: c.Note})
	if errors.Is(err, vector.ErrNotFound) {
		return fmt.Errorf("no candidate found for %q", c.Filename)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Note added to %s\n", c.Filename)
	return nil
}

// GetCmd shows one stored candidate.
type GetCmd struct {
	Filename string `arg:"" help:"Candidate résumé filename (or a raw id with --id)."`
	ID       bool   `help:"Treat the argument as a store id instead of a filename."`
}

func (c *GetCmd) Run(cli *CLI) error {
	ctx, cancel := shutdownContext()
	defer cancel()

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	provider, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	id := c.Filename
	if !c.ID {
		id = ingest.NameID(c.Filename)
	}

	doc, err := store.Get(ctx, id)
	if errors.Is(err, vector.ErrNotFound) {
		return fmt.Errorf("no candidate found for %q", c.Filename)
	}
	if err != nil {
		return err
	}

	return printJSON(map[string]any{
		"id":           doc.ID,
		"filename":     doc.Filename,
		"display_name": doc.DisplayName,
		"role":         doc.Role,
		"content":      doc.Content,
		"notes":        doc.Notes,
	})
}

// SchemaCmd creates the vector store collection.
type SchemaCmd struct{}

func (c *SchemaCmd) Run(cli *CLI) error {
	ctx, cancel := shutdownContext()
	defer cancel()

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	provider, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	if err := store.EnsureSchema(ctx, cfg.Embedder.Dimension); err != nil {
		return err
	}

	fmt.Printf("Collection %s ready on %s\n", cfg.VectorStore.Collection, provider.Name())
	return nil
}

func loadConfig(cli *CLI) (*config.Config, error) {
	if err := config.LoadDotEnvForConfig(cli.Config); err != nil {
		slog.Warn("Failed to load .env", "error", err)
	}

	if cli.Config == "" {
		return config.Default(), nil
	}
	return config.Load(cli.Config)
}

func openStore(cfg *config.Config) (vector.Provider, *candidate.Store, error) {
	provider, err := vector.NewFromConfig(&cfg.VectorStore)
	if err != nil {
		return nil, nil, err
	}
	return provider, candidate.NewStore(provider, cfg.VectorStore.Collection), nil
}

func shutdownContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
	}()

	return ctx, cancel
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("resumatch"),
		kong.Description("Hybrid résumé search: vector similarity blended with keyword coverage and quality heuristics."),
		kong.UsageOnError(),
	)

	if err := initLogging(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
