// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/groundwork/econ-digest/pkg/types"
)

// Terminal preview styles.
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0969DA")).
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2DA44E")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#39D353")).
			Bold(true)

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA657"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F778BA")).
			Bold(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#58A6FF")).
			Underline(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E7681"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D29922"))
)

// RenderPreview renders a styled terminal view of the digest for
// interactive use. The delivered document is the markdown rendering; this
// is a convenience for checking a run before sending it.
func RenderPreview(d types.Digest, labels map[string]string) string {
	var b strings.Builder

	header := fmt.Sprintf("Economics Research Digest — %s", d.GeneratedAt.Format("Jan 2, 2006"))
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	if len(d.Entries) == 0 {
		b.WriteString(dimStyle.Render("No relevant entries this run."))
		b.WriteString("\n")
	}

	for i, rec := range d.Entries {
		fmt.Fprintf(&b, "%s %s\n", scoreStyle.Render(fmt.Sprintf("[%d]", rec.Score)), titleStyle.Render(rec.Title))
		fmt.Fprintf(&b, "    %s", sourceStyle.Render(sourceLabel(rec.SourceID, labels)))
		if !rec.PublishedAt.IsZero() {
			fmt.Fprintf(&b, " %s", dimStyle.Render(rec.PublishedAt.Format("2006-01-02")))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "    %s\n", linkStyle.Render(rec.Link))
		if len(rec.MatchedKeywords) > 0 {
			fmt.Fprintf(&b, "    %s\n", dimStyle.Render(strings.Join(rec.MatchedKeywords, ", ")))
		}
		if i < len(d.Entries)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	counts := fmt.Sprintf("%d considered, %d matched, %d in digest", d.TotalConsidered, d.TotalMatched, len(d.Entries))
	b.WriteString(dimStyle.Render(counts))
	b.WriteString("\n")

	for _, f := range d.SourceFailures {
		b.WriteString(warnStyle.Render(fmt.Sprintf("warning: %s failed: %s", f.SourceID, f.Reason)))
		b.WriteString("\n")
	}

	return b.String()
}
