package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/berthwatch/core/analysis"
	coremetrics "github.com/kilianp07/berthwatch/core/metrics"
	"github.com/kilianp07/berthwatch/core/timeline"
	"github.com/kilianp07/berthwatch/infra/mqtt"
)

// Config is the root configuration of the service.
type Config struct {
	// Ports lists the port codes to analyze (KEL, KHH, TXG, TPE).
	Ports    []string           `json:"ports"`
	Store    StoreConfig        `json:"store"`
	Timeline timeline.Config    `json:"timeline"`
	Analysis analysis.Config    `json:"analysis"`
	Metrics  coremetrics.Config `json:"metrics"`
	MQTT     mqtt.Config        `json:"mqtt"`
	Service  ServiceConfig      `json:"service"`
}

// StoreConfig locates the local movement database.
type StoreConfig struct {
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *StoreConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "berthwatch.db"
	}
}

// ServiceConfig tunes the periodic snapshot loop.
type ServiceConfig struct {
	SnapshotIntervalSeconds int `json:"snapshot_interval_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ServiceConfig) SetDefaults() {
	if c.SnapshotIntervalSeconds == 0 {
		c.SnapshotIntervalSeconds = 300
	}
}

// Load reads configuration from a YAML or JSON file, then applies
// environment overrides with the BW_ prefix (BW_STORE__PATH maps to
// store.path).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("BW_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "bw_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills every section's defaults.
func (c *Config) ApplyDefaults() {
	if len(c.Ports) == 0 {
		c.Ports = []string{"KEL"}
	}
	c.Store.SetDefaults()
	c.Timeline.SetDefaults()
	c.Analysis.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
	c.Service.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Timeline.Validate(); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := c.MQTT.Validate(); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	return nil
}
