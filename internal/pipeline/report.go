// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/groundwork/econ-digest/pkg/types"
)

// ReportFile is the on-disk YAML record of one run: configuration,
// counters, and failures, without the rendered document. It exists so a
// scheduled run leaves an inspectable trace of what it did.
type ReportFile struct {
	Generated time.Time     `yaml:"generated"`
	Config    ReportConfig  `yaml:"config"`
	Summary   ReportSummary `yaml:"summary"`
}

// ReportConfig stores the settings that produced the run.
type ReportConfig struct {
	WindowDays int      `yaml:"window_days"`
	MinScore   int      `yaml:"min_score"`
	Sources    []string `yaml:"sources"`
}

// ReportSummary stores the run counters.
type ReportSummary struct {
	Considered     int                   `yaml:"considered"`
	Matched        int                   `yaml:"matched"`
	InDigest       int                   `yaml:"in_digest"`
	DupsRemoved    int                   `yaml:"dups_removed"`
	Skipped        int                   `yaml:"skipped"`
	SourceFailures []types.SourceFailure `yaml:"source_failures,omitempty"`
}

// WriteReport saves the run report as YAML.
func WriteReport(path string, opts Options, d types.Digest) error {
	ids := make([]string, 0, len(opts.Sources))
	for _, src := range opts.Sources {
		ids = append(ids, src.ID)
	}

	rf := ReportFile{
		Generated: d.GeneratedAt,
		Config: ReportConfig{
			WindowDays: d.WindowDays,
			MinScore:   opts.Config.Digest.MinScore,
			Sources:    ids,
		},
		Summary: ReportSummary{
			Considered:     d.TotalConsidered,
			Matched:        d.TotalMatched,
			InDigest:       len(d.Entries),
			DupsRemoved:    d.DupsRemoved,
			Skipped:        d.Skipped,
			SourceFailures: d.SourceFailures,
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report: %w", err)
	}
	return nil
}
