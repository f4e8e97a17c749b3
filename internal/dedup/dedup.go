// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup collapses records that refer to the same underlying item
// across sources. Two records are duplicates when their canonicalized
// links match or their normalized titles match; the relation is closed
// transitively, so chains collapse into one winner regardless of input
// order.
package dedup

import (
	"net/url"
	"strings"

	"github.com/groundwork/econ-digest/pkg/types"
)

// trackingParams lists query parameters stripped during link
// canonicalization. These vary per click, not per item.
var trackingParams = map[string]bool{
	"fbclid": true,
	"gclid":  true,
	"mc_cid": true,
	"mc_eid": true,
	"ref":    true,
}

// Collapse deduplicates scored records. sourceOrder maps source id to its
// registry position; it breaks ties deterministically so repeated runs
// over identical input produce identical output. The winner of each
// duplicate group keeps its fields untouched; losers are discarded.
//
// Winner selection: highest score, then most recent publication time
// (records without one lose), then earliest registry position, then
// earliest input position.
func Collapse(recs []types.Record, sourceOrder map[string]int) ([]types.Record, int) {
	n := len(recs)
	if n == 0 {
		return nil, 0
	}

	// Union-find over record indexes, grouped by link and title keys.
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	byKey := make(map[string]int, 2*n)
	for i, rec := range recs {
		for _, key := range recordKeys(rec) {
			if j, ok := byKey[key]; ok {
				union(j, i)
			} else {
				byKey[key] = i
			}
		}
	}

	// Pick each group's winner, keeping first-seen group order.
	winner := make(map[int]int, n)
	var groups []int
	for i := range recs {
		root := find(i)
		w, ok := winner[root]
		if !ok {
			winner[root] = i
			groups = append(groups, root)
			continue
		}
		if beats(recs[i], recs[w], sourceOrder) {
			winner[root] = i
		}
	}

	deduped := make([]types.Record, 0, len(groups))
	for _, root := range groups {
		deduped = append(deduped, recs[winner[root]])
	}
	return deduped, n - len(deduped)
}

// recordKeys returns the dedup keys for a record: canonical link and
// normalized title, when present.
func recordKeys(rec types.Record) []string {
	var keys []string
	if link := CanonicalLink(rec.Link); link != "" {
		keys = append(keys, "link:"+link)
	}
	if title := normalizeTitle(rec.Title); title != "" {
		keys = append(keys, "title:"+title)
	}
	return keys
}

// beats reports whether record a wins against record b. Lower input index
// is the final tie-break, which holds because a always comes later: the
// caller scans in input order, so a only wins by strict preference.
func beats(a, b types.Record, sourceOrder map[string]int) bool {
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
	return sourcePos(a.SourceID, sourceOrder) < sourcePos(b.SourceID, sourceOrder)
}

func sourcePos(id string, order map[string]int) int {
	if pos, ok := order[id]; ok {
		return pos
	}
	return len(order)
}

// CanonicalLink normalizes a URL for duplicate comparison: scheme and host
// lowercased, default ports and trailing slash removed, tracking query
// parameters (utm_* and common click ids) stripped, remaining query keys
// sorted, fragment dropped. Unparseable input canonicalizes to itself
// lowercased.
func CanonicalLink(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	switch {
	case u.Scheme == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Path = strings.TrimSuffix(u.Path, "/")

	q := u.Query()
	for key := range q {
		if trackingParams[key] || strings.HasPrefix(strings.ToLower(key), "utm_") {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode() // Encode sorts keys.

	return u.String()
}

// normalizeTitle lowercases a title and collapses whitespace for
// comparison across sources.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
