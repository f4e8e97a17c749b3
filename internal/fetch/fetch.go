// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves feed documents from every configured source and
// parses them into raw entries. Each source kind (RSS/Atom, SSRN scrape)
// implements the Parser interface per the Strategy pattern; fetches against
// distinct sources run concurrently and fail independently.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/groundwork/econ-digest/internal/httputil"
	"github.com/groundwork/econ-digest/pkg/types"
)

// Parser interprets one feed dialect into raw entries.
type Parser interface {
	Kind() types.ParserKind
	Parse(r io.Reader, src types.Source) ([]types.RawEntry, error)
}

// Fetcher downloads and parses feed documents.
type Fetcher struct {
	client  *http.Client
	parsers map[types.ParserKind]Parser
}

// New returns a Fetcher with the builtin parser strategies registered.
// A nil client gets a default with a 15 s timeout.
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	f := &Fetcher{
		client:  client,
		parsers: make(map[types.ParserKind]Parser),
	}
	f.Register(&RSSParser{})
	f.Register(&SSRNParser{})
	return f
}

// Register adds a parser strategy, replacing any previous one of the same kind.
func (f *Fetcher) Register(p Parser) {
	f.parsers[p.Kind()] = p
}

// Result holds the outcome of one run of FetchAll.
type Result struct {
	Entries  []types.RawEntry
	Failures []types.SourceFailure
}

// FetchAll fetches every source concurrently and collects the raw entries
// in registry order. Each source gets exactly one result slot, written once
// by its own goroutine, so one source's timeout or error cannot affect
// another's outcome. Failures are collected, reported to w as warnings,
// and never abort the run.
func (f *Fetcher) FetchAll(ctx context.Context, sources []types.Source, cfg types.FetchConfig, w io.Writer) Result {
	entries := make([][]types.RawEntry, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		if i > 0 && cfg.InterSourceDelay > 0 {
			time.Sleep(cfg.InterSourceDelay)
		}
		wg.Add(1)
		go func(i int, src types.Source) {
			defer wg.Done()
			entries[i], errs[i] = f.FetchSource(ctx, src, cfg)
		}(i, src)
	}
	wg.Wait()

	var res Result
	for i, src := range sources {
		if errs[i] != nil {
			res.Failures = append(res.Failures, types.SourceFailure{
				SourceID: src.ID,
				Reason:   errs[i].Error(),
			})
			fmt.Fprintf(w, "warning: source %s failed: %v\n", src.ID, errs[i])
			continue
		}
		res.Entries = append(res.Entries, entries[i]...)
	}
	return res
}

// FetchSource downloads one source's document and parses it. A single
// attempt with a bounded timeout; only HTTP 429 is retried, inside
// httputil.DoWithRetry.
func (f *Fetcher) FetchSource(ctx context.Context, src types.Source, cfg types.FetchConfig) ([]types.RawEntry, error) {
	p, ok := f.parsers[src.Parser]
	if !ok {
		return nil, fmt.Errorf("no parser registered for kind %q", src.Parser)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned HTTP %d", src.Endpoint, resp.StatusCode)
	}

	raw, err := p.Parse(resp.Body, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s document: %w", src.Parser, err)
	}

	if cfg.MaxEntries > 0 && len(raw) > cfg.MaxEntries {
		raw = raw[:cfg.MaxEntries]
	}
	return raw, nil
}
