// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "econ-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxEntries caps the number of entries taken per source (default 50).
	MaxEntries int `json:"max_entries" yaml:"max_entries"`

	// InterSourceDelay is the delay between launching fetches against
	// different sources (default 500ms), to stay polite to publishers.
	InterSourceDelay time.Duration `json:"inter_source_delay" yaml:"inter_source_delay"`
}

// DigestConfig holds settings for scoring, filtering and ranking.
type DigestConfig struct {
	// WindowDays limits the digest to entries published within the last
	// N days (default 7; 0 disables the window). Entries without a
	// parseable date are kept regardless.
	WindowDays int `json:"window_days" yaml:"window_days"`

	// MinScore is the minimum score a record needs to appear in the
	// digest (default 1; records scoring 0 are always excluded).
	MinScore int `json:"min_score" yaml:"min_score"`
}

// DeliveryConfig holds SMTP settings for digest delivery. Credentials are
// normally supplied via the .secrets/ directory rather than the config file.
type DeliveryConfig struct {
	// Host is the SMTP server hostname.
	Host string `json:"host" yaml:"host"`

	// Port is the SMTP server port (default 587).
	Port int `json:"port" yaml:"port"`

	// Username authenticates against the SMTP server.
	Username string `json:"username,omitempty" yaml:"username,omitempty"`

	// Password authenticates against the SMTP server.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// From is the sender address.
	From string `json:"from" yaml:"from"`

	// To lists the recipient addresses.
	To []string `json:"to" yaml:"to"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Digest   DigestConfig   `json:"digest" yaml:"digest"`
	Delivery DeliveryConfig `json:"delivery" yaml:"delivery"`
}
