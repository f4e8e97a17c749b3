// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry holds the source registry: the ordered set of feed
// endpoints a digest run fetches from. The registry is immutable for the
// run and its declared order is the deterministic tie-break order used by
// deduplication.
package registry

import (
	"fmt"
	"net/url"

	"github.com/groundwork/econ-digest/pkg/types"
)

// Builtin returns the default source registry: the economics research
// outlets the digest tracks when no sources file is supplied.
func Builtin() []types.Source {
	return []types.Source{
		{
			ID:        "voxeu",
			Label:     "VoxEU/CEPR",
			Endpoint:  "https://cepr.org/rss/voxeu/columns.xml",
			Parser:    types.ParserRSS,
			FocusTags: []string{"policy", "macro"},
		},
		{
			ID:        "equitable-growth",
			Label:     "Equitable Growth",
			Endpoint:  "https://equitablegrowth.org/feed/",
			Parser:    types.ParserRSS,
			FocusTags: []string{"inequality", "labor"},
		},
		{
			ID:        "epi",
			Label:     "EPI",
			Endpoint:  "https://www.epi.org/feed/",
			Parser:    types.ParserRSS,
			FocusTags: []string{"labor", "wages"},
		},
		{
			ID:        "fed-board",
			Label:     "Fed Board Working Papers",
			Endpoint:  "https://www.federalreserve.gov/feeds/feds.xml",
			Parser:    types.ParserRSS,
			FocusTags: []string{"macro", "finance"},
		},
		{
			ID:        "ny-fed",
			Label:     "NY Fed Research",
			Endpoint:  "https://libertystreeteconomics.newyorkfed.org/feed/",
			Parser:    types.ParserRSS,
			FocusTags: []string{"macro", "household"},
		},
		{
			ID:        "sf-fed",
			Label:     "SF Fed Economic Letters",
			Endpoint:  "https://www.frbsf.org/research-and-insights/publications/economic-letter/rss-feed/",
			Parser:    types.ParserRSS,
			FocusTags: []string{"macro"},
		},
		{
			ID:        "brookings",
			Label:     "Brookings Economics",
			Endpoint:  "https://www.brookings.edu/feed/?topic=economy",
			Parser:    types.ParserRSS,
			FocusTags: []string{"policy"},
		},
		{
			ID:        "ssrn-econ",
			Label:     "SSRN Economics",
			Endpoint:  "https://papers.ssrn.com/sol3/Jeljour_results.cfm?form_name=journalBrowse&journal_id=918&Network=no&lim=false&npage=1",
			Parser:    types.ParserSSRN,
			FocusTags: []string{"working-papers"},
		},
	}
}

// Validate checks a registry for configuration errors: it must be
// non-empty, ids must be unique and non-empty, endpoints must parse as
// absolute http(s) URLs, and every parser kind must be known. A validation
// failure is fatal for the run.
func Validate(sources []types.Source) error {
	if len(sources) == 0 {
		return fmt.Errorf("no sources configured")
	}

	seen := make(map[string]bool, len(sources))
	for i, s := range sources {
		if s.ID == "" {
			return fmt.Errorf("source %d: missing id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("source %q: duplicate id", s.ID)
		}
		seen[s.ID] = true

		u, err := url.Parse(s.Endpoint)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("source %q: invalid endpoint %q", s.ID, s.Endpoint)
		}

		switch s.Parser {
		case types.ParserRSS, types.ParserSSRN:
		default:
			return fmt.Errorf("source %q: unknown parser kind %q", s.ID, s.Parser)
		}
	}
	return nil
}

// Position returns the registry index of the given source id, or the
// registry length when the id is unknown. Used for deterministic ordering.
func Position(sources []types.Source, id string) int {
	for i, s := range sources {
		if s.ID == id {
			return i
		}
	}
	return len(sources)
}

// Lookup returns the source with the given id.
func Lookup(sources []types.Source, id string) (types.Source, bool) {
	for _, s := range sources {
		if s.ID == id {
			return s, true
		}
	}
	return types.Source{}, false
}

// Labels returns an id to label map for rendering.
func Labels(sources []types.Source) map[string]string {
	labels := make(map[string]string, len(sources))
	for _, s := range sources {
		labels[s.ID] = s.Label
	}
	return labels
}
