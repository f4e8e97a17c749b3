// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes keyword relevance for canonical records. Matching
// is a case-insensitive substring test against title and summary together;
// fields are not weighted differently, and each keyword counts at most
// once per record no matter how often it appears in the text.
package score

import (
	"fmt"
	"strings"

	"github.com/groundwork/econ-digest/pkg/types"
)

// Set is the ordered, immutable keyword set for a run. Matched keywords
// are reported in set order.
type Set struct {
	Keywords []types.Keyword
}

// IsEmpty reports whether the set contains no keywords. An empty set is a
// valid, degenerate configuration: every record scores zero and the digest
// comes out empty.
func (s Set) IsEmpty() bool { return len(s.Keywords) == 0 }

// Validate checks the set for configuration errors: blank terms, weights
// below 1, or duplicate terms. A validation failure is fatal for the run.
func (s Set) Validate() error {
	seen := make(map[string]bool, len(s.Keywords))
	for i, kw := range s.Keywords {
		term := strings.ToLower(strings.TrimSpace(kw.Term))
		if term == "" {
			return fmt.Errorf("keyword %d: empty term", i)
		}
		if kw.Weight < 0 {
			return fmt.Errorf("keyword %q: negative weight %d", kw.Term, kw.Weight)
		}
		if seen[term] {
			return fmt.Errorf("keyword %q: duplicate term", kw.Term)
		}
		seen[term] = true
	}
	return nil
}

// Apply returns rec with Score and MatchedKeywords populated. This is the
// only place those fields are written; the input record must have them
// empty. Records the set does not match come back with Score 0 and are
// filtered out of the digest by the caller.
func (s Set) Apply(rec types.Record) types.Record {
	text := strings.ToLower(rec.Title + " " + rec.Summary)

	for _, kw := range s.Keywords {
		term := strings.ToLower(strings.TrimSpace(kw.Term))
		if term == "" || !strings.Contains(text, term) {
			continue
		}
		weight := kw.Weight
		if weight == 0 {
			weight = 1
		}
		rec.Score += weight
		rec.MatchedKeywords = append(rec.MatchedKeywords, term)
	}
	return rec
}

// ApplyAll scores every record and partitions out those above the floor.
// minScore values below 1 are treated as 1: zero-score records never enter
// a digest.
func (s Set) ApplyAll(recs []types.Record, minScore int) (matched []types.Record, considered int) {
	if minScore < 1 {
		minScore = 1
	}
	for _, rec := range recs {
		scored := s.Apply(rec)
		considered++
		if scored.Score >= minScore {
			matched = append(matched, scored)
		}
	}
	return matched, considered
}
