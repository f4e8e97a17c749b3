// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/groundwork/econ-digest/pkg/types"
)

// Relevance tier boundaries for the markdown rendering.
const (
	highTier   = 5 // score >= highTier is high priority
	mediumTier = 2 // score >= mediumTier is worth reading
	tierCap    = 10
)

// RenderMarkdown renders the digest as the markdown document handed to
// delivery. labels maps source ids to display names; unknown ids render
// as-is. The function is pure: same digest, same bytes.
func RenderMarkdown(d types.Digest, labels map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Economics Research Digest\n")
	fmt.Fprintf(&b, "**%s**", d.GeneratedAt.Format("January 2, 2006"))
	if d.WindowDays > 0 {
		fmt.Fprintf(&b, " | Papers from last %d days", d.WindowDays)
	}
	b.WriteString("\n\n---\n\n## Top Papers by Relevance\n\n")

	if len(d.Entries) == 0 {
		b.WriteString("*No relevant papers found this period. Consider expanding keywords or timeframe.*\n")
		writeSummary(&b, d)
		return b.String()
	}

	var high, medium, low []types.Record
	for _, rec := range d.Entries {
		switch {
		case rec.Score >= highTier:
			high = append(high, rec)
		case rec.Score >= mediumTier:
			medium = append(medium, rec)
		default:
			low = append(low, rec)
		}
	}

	writeTier(&b, "High Priority", high, labels)
	writeTier(&b, "Worth Reading", medium, labels)
	writeTier(&b, "Also Relevant", low, labels)

	writeSummary(&b, d)

	if kws := topKeywords(d.Entries, 15); len(kws) > 0 {
		b.WriteString("\n### Keywords Matched\n\n")
		for _, kc := range kws {
			fmt.Fprintf(&b, "- %s: %d\n", kc.term, kc.count)
		}
	}

	return b.String()
}

func writeTier(b *strings.Builder, heading string, recs []types.Record, labels map[string]string) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", heading)
	if len(recs) > tierCap {
		recs = recs[:tierCap]
	}
	for _, rec := range recs {
		writeEntry(b, rec, labels)
	}
	b.WriteString("\n")
}

func writeEntry(b *strings.Builder, rec types.Record, labels map[string]string) {
	fmt.Fprintf(b, "**[%s](%s)**\n", rec.Title, rec.Link)

	meta := []string{"*" + sourceLabel(rec.SourceID, labels) + "*"}
	if authors := formatAuthors(rec.Authors); authors != "" {
		meta = append(meta, truncate(authors, 60))
	}
	if !rec.PublishedAt.IsZero() {
		meta = append(meta, rec.PublishedAt.Format("Jan 2"))
	}
	b.WriteString(strings.Join(meta, " | "))
	b.WriteString("\n")

	if rec.Summary != "" {
		fmt.Fprintf(b, "> %s\n", truncate(rec.Summary, 300))
	}
	if len(rec.MatchedKeywords) > 0 {
		kws := rec.MatchedKeywords
		if len(kws) > 5 {
			kws = kws[:5]
		}
		fmt.Fprintf(b, "**Keywords:** %s (score %d)\n", strings.Join(kws, ", "), rec.Score)
	}
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, d types.Digest) {
	b.WriteString("---\n\n## Summary\n\n")
	fmt.Fprintf(b, "- **Entries considered:** %d\n", d.TotalConsidered)
	fmt.Fprintf(b, "- **Relevant entries:** %d\n", d.TotalMatched)
	fmt.Fprintf(b, "- **In digest after dedup:** %d\n", len(d.Entries))
	if d.Skipped > 0 {
		fmt.Fprintf(b, "- **Skipped at normalization:** %d\n", d.Skipped)
	}
	if len(d.SourceFailures) > 0 {
		b.WriteString("\n### Source Failures\n\n")
		for _, f := range d.SourceFailures {
			fmt.Fprintf(b, "- %s: %s\n", f.SourceID, f.Reason)
		}
	}
}

func sourceLabel(id string, labels map[string]string) string {
	if label, ok := labels[id]; ok {
		return label
	}
	return id
}

// RenderJSON writes the digest as indented JSON to w.
func RenderJSON(d types.Digest, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// FormatTable writes digest entries as a human-readable table to w.
func FormatTable(d types.Digest, w io.Writer) {
	if len(d.Entries) == 0 {
		fmt.Fprintln(w, "No entries in digest.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-18s  %-5s  %s\n",
		"Rank", "Title", "Source", "Score", "Keywords")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, rec := range d.Entries {
		kws := strings.Join(rec.MatchedKeywords, ",")
		fmt.Fprintf(w, "%-4d  %-60s  %-18s  %-5d  %s\n",
			i+1, truncate(rec.Title, 60), truncate(rec.SourceID, 18), rec.Score, truncate(kws, 40))
	}

	fmt.Fprintf(w, "\n%d entries", len(d.Entries))
	if d.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", d.DupsRemoved)
	}
	fmt.Fprintln(w)
}
