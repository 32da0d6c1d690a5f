// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// EnforceCapacity rejects signups once a roster reaches max_participants.
	EnforceCapacity bool `koanf:"enforce_capacity"`

	// CatalogFile optionally points at a YAML activity catalog. Empty uses the built-in table.
	CatalogFile string `koanf:"catalog_file"`

	// EventQueueSize bounds the in-memory roster event queue.
	EventQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of roster event workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the number of event IDs remembered for deduplication.
	DedupeSize int `koanf:"dedupe_size"`

	// HistorySize bounds the roster events kept per activity.
	HistorySize int `koanf:"history_size"`

	// KafkaBrokers is a comma-separated broker list. Empty disables publishing.
	KafkaBrokers string `koanf:"kafka_brokers"`

	// KafkaTopic receives roster events when publishing is enabled.
	KafkaTopic string `koanf:"kafka_topic"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":8000",
		EnforceCapacity: true,
		EventQueueSize:  10_000,
		WorkerCount:     2,
		DedupeSize:      50_000,
		HistorySize:     100,
		KafkaTopic:      "activity-roster-events",
	}
}

// Brokers splits KafkaBrokers, dropping blanks.
func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// PublishingEnabled reports whether roster events should go to Kafka.
func (c *Config) PublishingEnabled() bool {
	return len(c.Brokers()) > 0
}
