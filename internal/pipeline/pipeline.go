// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one digest run: validate configuration,
// fetch all sources, normalize, score, deduplicate, and assemble the
// digest. Everything downstream of fetch is a pure, single-threaded
// transformation over already-collected data.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/groundwork/econ-digest/internal/dedup"
	"github.com/groundwork/econ-digest/internal/digest"
	"github.com/groundwork/econ-digest/internal/fetch"
	"github.com/groundwork/econ-digest/internal/normalize"
	"github.com/groundwork/econ-digest/internal/registry"
	"github.com/groundwork/econ-digest/internal/score"
	"github.com/groundwork/econ-digest/pkg/types"
)

// Options bundles the inputs of one run. Sources and Keywords are
// immutable for the run; passing them explicitly keeps the pipeline
// testable with substitute registries and keyword sets.
type Options struct {
	Sources  []types.Source
	Keywords score.Set
	Config   types.PipelineConfig

	// Fetcher performs the network stage. Nil gets a default fetcher.
	Fetcher *fetch.Fetcher

	// Logger receives run diagnostics. Nil gets slog.Default().
	Logger *slog.Logger

	// Now supplies the clock; tests substitute a fixed time for
	// byte-identical output. Nil gets time.Now.
	Now func() time.Time
}

// Run executes the pipeline and returns the digest. Configuration errors
// (no sources, malformed keyword set) are fatal and reported before any
// fetch. Per-source fetch failures are not errors: the run degrades and
// the digest lists the failed sources. Warnings are written to w as they
// happen.
func Run(ctx context.Context, opts Options, w io.Writer) (types.Digest, error) {
	if err := registry.Validate(opts.Sources); err != nil {
		return types.Digest{}, fmt.Errorf("invalid source registry: %w", err)
	}
	if err := opts.Keywords.Validate(); err != nil {
		return types.Digest{}, fmt.Errorf("invalid keyword set: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		var client *http.Client
		if opts.Config.Fetch.Timeout > 0 {
			client = &http.Client{Timeout: opts.Config.Fetch.Timeout}
		}
		fetcher = fetch.New(client)
	}

	var cutoff time.Time
	windowDays := opts.Config.Digest.WindowDays
	if windowDays > 0 {
		cutoff = now().AddDate(0, 0, -windowDays)
	}

	logger.Info("fetching sources", "count", len(opts.Sources), "window_days", windowDays)
	fetched := fetcher.FetchAll(ctx, opts.Sources, opts.Config.Fetch, w)
	logger.Info("fetch complete",
		"entries", len(fetched.Entries), "failed_sources", len(fetched.Failures))

	var records []types.Record
	var skipped int
	for _, raw := range fetched.Entries {
		rec, err := normalize.Entry(raw, cutoff)
		switch {
		case errors.Is(err, normalize.ErrMissingLink):
			skipped++
			logger.Debug("skipping entry without link", "source", raw.SourceID, "title", raw.Title)
		case errors.Is(err, normalize.ErrOutsideWindow):
			// Windowed out, not malformed; no tally.
		case err == nil:
			records = append(records, rec)
		}
	}

	matched, considered := opts.Keywords.ApplyAll(records, opts.Config.Digest.MinScore)

	order := make(map[string]int, len(opts.Sources))
	for i, src := range opts.Sources {
		order[src.ID] = i
	}
	deduped, removed := dedup.Collapse(matched, order)

	d := digest.Build(deduped, now(), considered, len(matched), removed, skipped, windowDays, fetched.Failures)
	logger.Info("digest assembled",
		"considered", d.TotalConsidered, "matched", d.TotalMatched,
		"entries", len(d.Entries), "dups_removed", d.DupsRemoved, "skipped", d.Skipped)
	return d, nil
}
