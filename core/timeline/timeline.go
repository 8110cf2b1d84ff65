// Package timeline builds the temporal occupancy model of a port: one
// sorted event lane per berth plus a flat, time-sorted list of every known
// vessel movement. A Timeline is an immutable snapshot rebuilt from source
// rows on every query; nothing in it survives across rebuilds.
package timeline

import (
	"fmt"
	"time"

	"github.com/kilianp07/berthwatch/core/model"
)

// Config holds the scheduling knobs the builder needs. Values come from the
// configuration layer, never from package state.
type Config struct {
	// SafetyBufferM is the clearance required on each side of a moored
	// vessel, in meters.
	SafetyBufferM float64 `json:"safety_buffer_m"`
	// DefaultBerthDurationHours substitutes a missing departure time.
	DefaultBerthDurationHours int `json:"default_berth_duration_hours"`
	// Timezone is the IANA zone scraped timestamps are expressed in.
	Timezone string `json:"timezone"`
}

// SetDefaults applies the port authority's customary values.
func (c *Config) SetDefaults() {
	if c.SafetyBufferM == 0 {
		c.SafetyBufferM = 15
	}
	if c.DefaultBerthDurationHours == 0 {
		c.DefaultBerthDurationHours = 12
	}
	if c.Timezone == "" {
		c.Timezone = "Asia/Taipei"
	}
}

// Validate checks the knobs are usable.
func (c Config) Validate() error {
	if c.SafetyBufferM < 0 {
		return fmt.Errorf("safety_buffer_m must not be negative")
	}
	if c.DefaultBerthDurationHours <= 0 {
		return fmt.Errorf("default_berth_duration_hours must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Duration returns the default berth stay as a time.Duration.
func (c Config) Duration() time.Duration {
	return time.Duration(c.DefaultBerthDurationHours) * time.Hour
}

// Lane is one berth together with its occupancy events, sorted ascending
// by start time.
type Lane struct {
	Berth  model.Berth
	Events []model.OccupancyEvent
}

// Timeline is the assembled temporal model for one port.
type Timeline struct {
	PortCode     string
	PortName     string
	SafetyBuffer float64
	Location     *time.Location

	// Lanes are sorted by berth ID so every iteration order is
	// deterministic. byID indexes into Lanes.
	Lanes []*Lane
	byID  map[string]*Lane

	// Vessels is the global movement list, berth-assigned or not, sorted
	// ascending by start time.
	Vessels []model.OccupancyEvent

	// Unscheduled counts events excluded from the lanes because their
	// timestamps could not be parsed.
	Unscheduled int
}

// Lane returns the lane for a berth ID, if the registry knows it.
func (t *Timeline) Lane(berthID string) (*Lane, bool) {
	l, ok := t.byID[berthID]
	return l, ok
}

// Empty reports whether the timeline carries no berths at all.
func (t *Timeline) Empty() bool { return t == nil || len(t.Lanes) == 0 }
