// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"io"

	"github.com/mmcdole/gofeed"

	"github.com/groundwork/econ-digest/pkg/types"
)

// RSSParser parses RSS and Atom documents. gofeed detects the dialect, so
// one strategy covers both.
type RSSParser struct{}

// Kind returns the parser identifier.
func (p *RSSParser) Kind() types.ParserKind { return types.ParserRSS }

// Parse reads a syndication document and returns its items as raw entries.
func (p *RSSParser) Parse(r io.Reader, src types.Source) ([]types.RawEntry, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	entries := make([]types.RawEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		e := types.RawEntry{
			Title:    item.Title,
			Link:     item.Link,
			Summary:  item.Description,
			SourceID: src.ID,
		}
		if e.Summary == "" {
			e.Summary = item.Content
		}
		if item.PublishedParsed != nil {
			e.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			e.PublishedAt = *item.UpdatedParsed
		}
		for _, a := range item.Authors {
			if a != nil && a.Name != "" {
				e.Authors = append(e.Authors, a.Name)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
