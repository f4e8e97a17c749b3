// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the econ-digest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/groundwork/econ-digest/internal/secrets"
	"github.com/groundwork/econ-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds delivery credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, then the loaded secret for key,
// then empty.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the econ-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "econ-digest",
	Short: "Aggregate and rank economics research announcements",
	Long: `econ-digest fetches working-paper and research announcements from a set of
economics feeds, scores them against a curated keyword list, deduplicates
them across sources, and renders a ranked digest for delivery.

A run is a single pass: fetch, normalize, score, dedup, rank, render. The
scheduler (cron or manual invocation) lives outside the binary.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Best-effort .env for local development; real deployments use
		// the environment or the .secrets/ directory.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./econ-digest.yaml or ~/.config/econ-digest/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("econ-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "econ-digest"))
		}
	}

	viper.SetEnvPrefix("ECON_DIGEST")
	viper.AutomaticEnv()

	viper.SetDefault("fetch.timeout", 15*time.Second)
	viper.SetDefault("fetch.user_agent", "econ-digest/"+version)
	viper.SetDefault("fetch.max_entries", 50)
	viper.SetDefault("fetch.inter_source_delay", 500*time.Millisecond)
	viper.SetDefault("digest.window_days", 7)
	viper.SetDefault("digest.min_score", 1)
	viper.SetDefault("delivery.port", 587)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the run configuration from viper with secret
// fallbacks for delivery credentials.
func pipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			MaxEntries:       viper.GetInt("fetch.max_entries"),
			InterSourceDelay: viper.GetDuration("fetch.inter_source_delay"),
		},
		Digest: types.DigestConfig{
			WindowDays: viper.GetInt("digest.window_days"),
			MinScore:   viper.GetInt("digest.min_score"),
		},
		Delivery: types.DeliveryConfig{
			Host:     secretDefault("smtp-host", viper.GetString("delivery.host")),
			Port:     viper.GetInt("delivery.port"),
			Username: secretDefault("smtp-username", viper.GetString("delivery.username")),
			Password: secretDefault("smtp-password", viper.GetString("delivery.password")),
			From:     secretDefault("digest-from", viper.GetString("delivery.from")),
			To:       viper.GetStringSlice("delivery.to"),
		},
	}
	if len(cfg.Delivery.To) == 0 {
		if to := secretDefault("digest-to", ""); to != "" {
			cfg.Delivery.To = []string{to}
		}
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
