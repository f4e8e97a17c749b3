// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groundwork/econ-digest/internal/score"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List the keyword set",
	RunE: func(cmd *cobra.Command, args []string) error {
		keywordsFile, _ := cmd.Flags().GetString("keywords")

		set := score.Default()
		if keywordsFile != "" {
			loaded, err := score.LoadFile(keywordsFile)
			if err != nil {
				return err
			}
			set = loaded
		}

		for _, kw := range set.Keywords {
			if kw.Weight > 1 {
				fmt.Fprintf(os.Stdout, "%s (weight %d)\n", kw.Term, kw.Weight)
				continue
			}
			fmt.Fprintln(os.Stdout, kw.Term)
		}
		fmt.Fprintf(os.Stdout, "\n%d keywords\n", len(set.Keywords))
		return nil
	},
}

func init() {
	keywordsCmd.Flags().String("keywords", "", "YAML file overriding the builtin keyword set")

	rootCmd.AddCommand(keywordsCmd)
}
