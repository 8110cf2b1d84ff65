// Package metrics defines the observability contract of the analysis
// engine. Implementations live under infra/metrics.
package metrics

import (
	"time"

	"github.com/kilianp07/berthwatch/core/model"
)

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":2112"
	}
}

// SnapshotEvent captures one port-wide occupancy evaluation.
type SnapshotEvent struct {
	Result model.SnapshotResult
	Time   time.Time
}

// AnalysisEvent captures one arrival analysis.
type AnalysisEvent struct {
	Result  model.AnalysisResult
	Elapsed time.Duration
	Time    time.Time
}

// Sink records analysis activity for observability purposes.
type Sink interface {
	RecordSnapshot(ev SnapshotEvent) error
	RecordAnalysis(ev AnalysisEvent) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordSnapshot(SnapshotEvent) error { return nil }
func (NopSink) RecordAnalysis(AnalysisEvent) error { return nil }
