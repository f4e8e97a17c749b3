// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/groundwork/econ-digest/pkg/types"
)

// ssrnBase prefixes relative paper links on the browse page.
const ssrnBase = "https://papers.ssrn.com"

// ssrnMaxItems bounds the best-effort scrape; the browse page repeats
// entries far down the listing.
const ssrnMaxItems = 20

// SSRNParser scrapes the SSRN journal browse page. SSRN publishes no
// usable syndication feed, so this is a best-effort HTML parse whose
// selectors track the page markup.
type SSRNParser struct{}

// Kind returns the parser identifier.
func (p *SSRNParser) Kind() types.ParserKind { return types.ParserSSRN }

// Parse extracts paper entries from the browse page HTML. Items without a
// title link are skipped; relative links get the SSRN host prepended.
// SSRN does not expose publication dates on the listing, so entries carry
// no timestamp.
func (p *SSRNParser) Parse(r io.Reader, src types.Source) ([]types.RawEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing SSRN page: %w", err)
	}

	var entries []types.RawEntry
	doc.Find(".paper-result, .result-item").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		titleEl := item.Find(".title a, h3 a").First()
		if titleEl.Length() == 0 {
			return true
		}

		link, _ := titleEl.Attr("href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = ssrnBase + link
		}

		e := types.RawEntry{
			Title:    strings.TrimSpace(titleEl.Text()),
			Link:     link,
			Summary:  strings.TrimSpace(item.Find(".abstract, .description").First().Text()),
			SourceID: src.ID,
		}
		if authors := strings.TrimSpace(item.Find(".authors, .author").First().Text()); authors != "" {
			e.Authors = splitAuthors(authors)
		}

		entries = append(entries, e)
		return len(entries) < ssrnMaxItems
	})

	return entries, nil
}

// splitAuthors breaks a comma-separated author line into names.
func splitAuthors(s string) []string {
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}
