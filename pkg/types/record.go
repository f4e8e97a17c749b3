// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the econ-digest pipeline.
package types

import "time"

// ParserKind selects the parsing strategy used to interpret a source's
// feed document.
type ParserKind string

const (
	// ParserRSS parses RSS and Atom syndication feeds.
	ParserRSS ParserKind = "rss"

	// ParserSSRN scrapes the SSRN journal browse page, which has no
	// usable syndication feed.
	ParserSSRN ParserKind = "ssrn"
)

// Source describes one feed endpoint. Sources are loaded once per run and
// never mutated; their declared order is the deterministic tie-break order
// for deduplication.
type Source struct {
	// ID is a short stable identifier (e.g. "voxeu").
	ID string `json:"id" yaml:"id"`

	// Label is the human-readable source name shown in the digest.
	Label string `json:"label" yaml:"label"`

	// Endpoint is the feed or page URL to fetch.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Parser selects the strategy that interprets the fetched document.
	Parser ParserKind `json:"parser" yaml:"parser"`

	// FocusTags are free-form topic tags for the source (informational).
	FocusTags []string `json:"focus_tags,omitempty" yaml:"focus_tags,omitempty"`
}

// RawEntry is one item as returned by a source, before normalization.
// It is created per fetch and discarded once normalized.
type RawEntry struct {
	// Title is the item title, unmodified.
	Title string

	// Link is the item URL, unmodified. May be empty or malformed;
	// normalization drops such entries.
	Link string

	// Summary is the item summary or description, possibly HTML.
	Summary string

	// Authors lists author names when the source provides them.
	Authors []string

	// PublishedAt is the publication time when the parser could
	// determine one; zero otherwise.
	PublishedAt time.Time

	// SourceID identifies the source the entry came from.
	SourceID string
}

// Record is the canonical, pipeline-internal representation of one
// candidate item. Score and MatchedKeywords are populated exactly once by
// the scorer and never mutated afterward; deduplication only discards
// losing records, it does not alter the winner.
type Record struct {
	// Title is the whitespace-normalized item title.
	Title string `json:"title" yaml:"title"`

	// Link is the validated absolute item URL.
	Link string `json:"link" yaml:"link"`

	// Summary is the whitespace-normalized, tag-stripped item summary.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Authors lists author names in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// PublishedAt is the publication time; zero when the source gave
	// none or it could not be parsed. Ranking treats zero as oldest.
	PublishedAt time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`

	// SourceID identifies the source, copied from its descriptor.
	SourceID string `json:"source_id" yaml:"source_id"`

	// Score is the summed weight of all matched keywords.
	Score int `json:"score" yaml:"score"`

	// MatchedKeywords lists matched terms in the order they matched.
	MatchedKeywords []string `json:"matched_keywords,omitempty" yaml:"matched_keywords,omitempty"`
}

// Keyword is one relevance term with an optional weight.
type Keyword struct {
	// Term is the lowercase keyword or phrase to match.
	Term string `json:"term" yaml:"term"`

	// Weight is the score contribution of a match (default 1).
	Weight int `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// SourceFailure records one source that contributed nothing to a run.
type SourceFailure struct {
	// SourceID identifies the failed source.
	SourceID string `json:"source_id" yaml:"source_id"`

	// Reason is the fetch or parse error message.
	Reason string `json:"reason" yaml:"reason"`
}

// Digest is the final artifact of one run: the ranked, deduplicated entry
// list plus run metadata. It is created once per run and never mutated
// after rendering.
type Digest struct {
	// GeneratedAt is the time the digest was assembled.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Entries holds the surviving records in final digest order.
	Entries []Record `json:"entries" yaml:"entries"`

	// TotalConsidered counts all records that reached the scorer.
	TotalConsidered int `json:"total_considered" yaml:"total_considered"`

	// TotalMatched counts records with a nonzero score, before dedup.
	TotalMatched int `json:"total_matched" yaml:"total_matched"`

	// DupsRemoved counts records discarded as cross-source duplicates.
	DupsRemoved int `json:"dups_removed" yaml:"dups_removed"`

	// Skipped counts raw entries dropped at normalization.
	Skipped int `json:"skipped" yaml:"skipped"`

	// WindowDays is the recency window the run used (0 = unbounded).
	WindowDays int `json:"window_days,omitempty" yaml:"window_days,omitempty"`

	// SourceFailures lists sources that failed this run.
	SourceFailures []SourceFailure `json:"source_failures,omitempty" yaml:"source_failures,omitempty"`
}
