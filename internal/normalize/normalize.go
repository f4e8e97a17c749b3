// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts raw feed entries into canonical records.
// Normalization is pure: no network access, no scoring.
package normalize

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/groundwork/econ-digest/pkg/types"
)

// summaryLimit caps the summary length in runes, matching what the digest
// renders. Truncation happens at a word boundary when possible.
const summaryLimit = 500

// ErrMissingLink marks an entry dropped for lacking a valid absolute URL.
var ErrMissingLink = errors.New("missing or invalid link")

// ErrOutsideWindow marks an entry published before the recency cutoff.
var ErrOutsideWindow = errors.New("published before window cutoff")

// Entry produces the canonical record for one raw entry, or an error
// naming why the entry is dropped. Drops are skips, not failures: the
// caller tallies them and moves on.
//
// A zero cutoff disables the recency window. Entries without a parseable
// timestamp pass the window check; ranking treats them as oldest instead.
func Entry(e types.RawEntry, cutoff time.Time) (types.Record, error) {
	link := strings.TrimSpace(e.Link)
	if !validLink(link) {
		return types.Record{}, ErrMissingLink
	}

	if !cutoff.IsZero() && !e.PublishedAt.IsZero() && e.PublishedAt.Before(cutoff) {
		return types.Record{}, ErrOutsideWindow
	}

	rec := types.Record{
		Title:       collapseSpace(e.Title),
		Link:        link,
		Summary:     truncate(collapseSpace(stripHTML(e.Summary)), summaryLimit),
		Authors:     e.Authors,
		PublishedAt: e.PublishedAt,
		SourceID:    e.SourceID,
	}
	return rec, nil
}

// validLink reports whether s parses as an absolute http(s) URL with a host.
func validLink(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// collapseSpace trims s and collapses internal whitespace runs to single
// spaces, giving stable text for comparison and matching.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripHTML extracts the text content of an HTML fragment. Feed summaries
// routinely arrive as markup. Plain text passes through unchanged.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// truncate cuts s to at most limit runes, backing up to the last word
// boundary and appending an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := string(runes[:limit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
