// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groundwork/econ-digest/internal/registry"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the source registry",
	Long: `Sources prints the feed registry a run would use, in declared order.
The declared order is also the deterministic tie-break order for
deduplication.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sourcesFile, _ := cmd.Flags().GetString("sources")

		sources := registry.Builtin()
		if sourcesFile != "" {
			loaded, err := registry.LoadFile(sourcesFile)
			if err != nil {
				return err
			}
			sources = loaded
		}

		fmt.Fprintf(os.Stdout, "%-18s  %-26s  %-5s  %s\n", "ID", "Label", "Kind", "Endpoint")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
		for _, s := range sources {
			fmt.Fprintf(os.Stdout, "%-18s  %-26s  %-5s  %s\n", s.ID, s.Label, s.Parser, s.Endpoint)
		}
		fmt.Fprintf(os.Stdout, "\n%d sources\n", len(sources))
		return nil
	},
}

func init() {
	sourcesCmd.Flags().String("sources", "", "YAML file overriding the builtin source registry")

	rootCmd.AddCommand(sourcesCmd)
}
