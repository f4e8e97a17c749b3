// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest assembles and renders the final digest: deterministic
// ranking of the surviving records plus pure render functions over the
// digest value. Rendering performs no fetching, scoring, or mutation.
package digest

import (
	"sort"
	"strings"
	"time"

	"github.com/groundwork/econ-digest/pkg/types"
)

// Build assembles the digest value from deduplicated records and run
// counters. Entries are ranked: score descending, publication time
// descending (records without one last), then title ascending
// case-insensitively so repeated runs over identical input render
// byte-identical output.
func Build(recs []types.Record, now time.Time, considered, matched, dupsRemoved, skipped, windowDays int, failures []types.SourceFailure) types.Digest {
	entries := make([]types.Record, len(recs))
	copy(entries, recs)
	Rank(entries)

	return types.Digest{
		GeneratedAt:     now,
		Entries:         entries,
		TotalConsidered: considered,
		TotalMatched:    matched,
		DupsRemoved:     dupsRemoved,
		Skipped:         skipped,
		WindowDays:      windowDays,
		SourceFailures:  failures,
	}
}

// Rank sorts records in final digest order, in place.
func Rank(recs []types.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		switch {
		case a.PublishedAt.IsZero() && !b.PublishedAt.IsZero():
			return false
		case !a.PublishedAt.IsZero() && b.PublishedAt.IsZero():
			return true
		case !a.PublishedAt.Equal(b.PublishedAt):
			return a.PublishedAt.After(b.PublishedAt)
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}

// keywordCount pairs a matched term with the number of digest entries
// matching it.
type keywordCount struct {
	term  string
	count int
}

// topKeywords tallies matched keywords across entries and returns the most
// frequent, ties broken alphabetically for deterministic output.
func topKeywords(entries []types.Record, limit int) []keywordCount {
	counts := make(map[string]int)
	for _, rec := range entries {
		for _, kw := range rec.MatchedKeywords {
			counts[kw]++
		}
	}

	out := make([]keywordCount, 0, len(counts))
	for term, count := range counts {
		out = append(out, keywordCount{term: term, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].term < out[j].term
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// truncate cuts s to at most max bytes with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// formatAuthors renders an author list compactly.
func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	case 2:
		return authors[0] + ", " + authors[1]
	default:
		return authors[0] + " et al."
	}
}
