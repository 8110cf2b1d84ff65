package model

import "time"

// FeedSource identifies which portal report a movement row came from.
type FeedSource string

const (
	// SourceBerthed rows describe vessels currently alongside (actuals).
	SourceBerthed FeedSource = "berthed"
	// SourceArrival rows are inbound forecasts, usually without a berth
	// assignment yet.
	SourceArrival FeedSource = "arrival"
	// SourceDeparture rows are outbound forecasts.
	SourceDeparture FeedSource = "departure"
)

// RawMovement is one scraped row exactly as the ingestion layer hands it
// over: every field is text and any of them may be blank or carry a
// "[no data]" placeholder. The normalizer owns all coercion.
type RawMovement struct {
	VesselNo     string
	VesselName   string
	VesselNameCN string
	CallSign     string
	IMO          string
	LOAMeters    string
	GrossTonnage string
	ShipType     string
	BerthID      string
	// ActualStart is the observed berthing time (ATA). PlannedStart and
	// PlannedEnd are the forecast berthing and departure times (ETA/ETD).
	ActualStart  string
	PlannedStart string
	PlannedEnd   string
	Source       FeedSource
	Agent        string
	PrevPort     string
	NextPort     string
}

// OccupancyEvent is one vessel's time-bounded claim on berth capacity.
// A zero Start means the row's timestamps could not be parsed; such events
// are kept for bookkeeping but never scheduled.
type OccupancyEvent struct {
	VesselNo     string
	VesselName   string
	CallSign     string
	IMO          string
	LOA          float64
	OccupiedLen  float64 // LOA + 2×safety buffer
	GrossTonnage int
	ShipType     string
	BerthID      string // empty: forecast arrival not yet berth-assigned
	Start        time.Time
	End          time.Time
	Forecast     bool // true when times come from a forecast, not actuals
	Source       FeedSource
	Agent        string
	PrevPort     string
	NextPort     string
}

// Scheduled reports whether the event carries usable timing information.
func (e OccupancyEvent) Scheduled() bool { return !e.Start.IsZero() }

// Covers reports whether the closed interval [Start, End] contains t.
func (e OccupancyEvent) Covers(t time.Time) bool {
	if !e.Scheduled() {
		return false
	}
	return !t.Before(e.Start) && !t.After(e.End)
}
