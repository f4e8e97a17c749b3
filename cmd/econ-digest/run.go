// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groundwork/econ-digest/internal/deliver"
	"github.com/groundwork/econ-digest/internal/digest"
	"github.com/groundwork/econ-digest/internal/logging"
	"github.com/groundwork/econ-digest/internal/pipeline"
	"github.com/groundwork/econ-digest/internal/registry"
	"github.com/groundwork/econ-digest/internal/score"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the digest pipeline once",
	Long: `Run fetches every configured source, scores entries against the keyword
set, deduplicates across sources, and writes the ranked digest as markdown.

A source that fails to fetch degrades the run instead of aborting it; the
digest lists which sources were missing. The command exits non-zero only on
configuration errors (no sources, malformed keyword set, delivery requested
without credentials) or a failed requested delivery.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		sourcesFile, _ := flags.GetString("sources")
		keywordsFile, _ := flags.GetString("keywords")
		days, _ := flags.GetInt("days")
		minScore, _ := flags.GetInt("min-score")
		outPath, _ := flags.GetString("output")
		reportPath, _ := flags.GetString("report")
		asJSON, _ := flags.GetBool("json")
		preview, _ := flags.GetBool("preview")
		send, _ := flags.GetBool("send")
		logLevel, _ := cmd.Root().PersistentFlags().GetString("log-level")

		sources := registry.Builtin()
		if sourcesFile != "" {
			loaded, err := registry.LoadFile(sourcesFile)
			if err != nil {
				return err
			}
			sources = loaded
		}

		keywords := score.Default()
		if keywordsFile != "" {
			loaded, err := score.LoadFile(keywordsFile)
			if err != nil {
				return err
			}
			keywords = loaded
		}

		cfg := pipelineConfig()
		if flags.Changed("days") {
			cfg.Digest.WindowDays = days
		}
		if flags.Changed("min-score") {
			cfg.Digest.MinScore = minScore
		}

		// Validate delivery before fetching: asking for a send the
		// configuration cannot perform is a fatal config error.
		var sender deliver.Sender
		if send {
			s, err := deliver.NewSMTP(cfg.Delivery)
			if err != nil {
				return err
			}
			sender = s
		}

		opts := pipeline.Options{
			Sources:  sources,
			Keywords: keywords,
			Config:   cfg,
			Logger:   logging.New(os.Stderr, logLevel),
		}

		d, err := pipeline.Run(cmd.Context(), opts, os.Stderr)
		if err != nil {
			return err
		}

		labels := registry.Labels(sources)
		doc := digest.RenderMarkdown(d, labels)

		if asJSON {
			if err := digest.RenderJSON(d, os.Stdout); err != nil {
				return fmt.Errorf("writing JSON digest: %w", err)
			}
		} else if preview {
			fmt.Fprintln(os.Stdout, digest.RenderPreview(d, labels))
		} else {
			digest.FormatTable(d, os.Stdout)
		}

		if outPath == "" {
			outPath = fmt.Sprintf("econ_digest_%s.md", d.GeneratedAt.Format("20060102"))
		}
		if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("writing digest file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Digest saved to %s\n", outPath)

		if reportPath != "" {
			if err := pipeline.WriteReport(reportPath, opts, d); err != nil {
				return err
			}
		}

		if sender != nil {
			subject := fmt.Sprintf("Economics Research Digest — %s", d.GeneratedAt.Format("Jan 2, 2006"))
			if err := sender.Send(cmd.Context(), subject, doc); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Digest delivered to %v\n", cfg.Delivery.To)
		}

		return nil
	},
}

func init() {
	runCmd.Flags().Int("days", 7, "recency window in days (0 disables)")
	runCmd.Flags().Int("min-score", 1, "minimum relevance score to include an entry")
	runCmd.Flags().String("output", "", "digest markdown path (default: econ_digest_YYYYMMDD.md)")
	runCmd.Flags().String("report", "", "also write a YAML run report to this path")
	runCmd.Flags().String("sources", "", "YAML file overriding the builtin source registry")
	runCmd.Flags().String("keywords", "", "YAML file overriding the builtin keyword set")
	runCmd.Flags().Bool("json", false, "print the digest as JSON instead of a table")
	runCmd.Flags().Bool("preview", false, "print a styled terminal preview instead of a table")
	runCmd.Flags().Bool("send", false, "deliver the digest via SMTP after rendering")

	rootCmd.AddCommand(runCmd)
}
