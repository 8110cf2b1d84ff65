// Package normalize turns raw scraped movement rows into canonical
// occupancy events. Rows repeat across ingestion cycles; the normalizer
// reconciles them by natural business key with last-writer-wins semantics
// so downstream computations never double-count a vessel.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/kilianp07/berthwatch/core/model"
)

// Result is the outcome of a normalization pass. Normalization never
// fails with an error: a completely unusable input yields zero events and
// the counters tell the caller what happened.
type Result struct {
	Events []model.OccupancyEvent
	// Total is the number of raw rows seen.
	Total int
	// Duplicates counts rows superseded by a later observation of the
	// same natural key.
	Duplicates int
	// Unscheduled counts events kept without usable timing fields.
	Unscheduled int
}

// Rows reconciles raw movement rows into canonical events. The natural key
// is (berth or none, vessel identity, nominal timestamp); the most recently
// observed row wins. Timestamps that cannot be parsed drop the timing
// fields rather than the whole record, and a missing LOA coerces to zero.
func Rows(rows []model.RawMovement, loc *time.Location) Result {
	if loc == nil {
		loc = time.UTC
	}
	res := Result{Total: len(rows)}
	index := make(map[string]int, len(rows))
	for _, row := range rows {
		ev := event(row, loc)
		key := naturalKey(row)
		if at, seen := index[key]; seen {
			res.Events[at] = ev
			res.Duplicates++
			continue
		}
		index[key] = len(res.Events)
		res.Events = append(res.Events, ev)
	}
	for _, ev := range res.Events {
		if !ev.Scheduled() {
			res.Unscheduled++
		}
	}
	return res
}

func naturalKey(row model.RawMovement) string {
	identity := Str(row.VesselName)
	if identity == "" {
		identity = Str(row.VesselNo)
	}
	nominal := Str(row.PlannedStart)
	if row.Source == model.SourceDeparture {
		nominal = Str(row.PlannedEnd)
	}
	return fmt.Sprintf("%s|%s|%s|%s",
		row.Source, Str(row.BerthID), strings.ToUpper(identity), nominal)
}

func event(row model.RawMovement, loc *time.Location) model.OccupancyEvent {
	ev := model.OccupancyEvent{
		VesselNo:     Str(row.VesselNo),
		VesselName:   vesselName(row),
		CallSign:     Str(row.CallSign),
		IMO:          Str(row.IMO),
		LOA:          Float(row.LOAMeters, 0),
		GrossTonnage: Int(row.GrossTonnage, 0),
		ShipType:     Str(row.ShipType),
		BerthID:      Str(row.BerthID),
		Source:       row.Source,
		Agent:        Str(row.Agent),
		PrevPort:     Str(row.PrevPort),
		NextPort:     Str(row.NextPort),
	}
	if ev.VesselName == "" {
		ev.VesselName = "unknown"
	}

	actual := Time(row.ActualStart, loc)
	planned := Time(row.PlannedStart, loc)
	end := Time(row.PlannedEnd, loc)
	switch row.Source {
	case model.SourceDeparture:
		// Outbound forecasts only pin down the departure time; they are
		// reconciled against berthed events, never scheduled on their own.
		ev.End = end
		ev.Forecast = true
	default:
		if !actual.IsZero() {
			ev.Start = actual
		} else {
			ev.Start = planned
			ev.Forecast = true
		}
		ev.End = end
	}
	return ev
}

func vesselName(row model.RawMovement) string {
	if n := Str(row.VesselNameCN); n != "" {
		return n
	}
	return Str(row.VesselName)
}
