package timeline

import (
	"sort"
	"strings"
	"time"

	"github.com/kilianp07/berthwatch/core/model"
	"github.com/kilianp07/berthwatch/core/normalize"
)

// Feeds carries the three raw movement feeds for one port, straight from
// the store. The builder normalizes them itself so that every rebuild
// applies the same dedup discipline.
type Feeds struct {
	Berthed    []model.RawMovement
	Arrivals   []model.RawMovement
	Departures []model.RawMovement
}

// Build assembles a fresh Timeline from the berth registry and the three
// feeds. Rebuilding from identical rows, in any order and with any amount
// of ingestion duplication, yields an identical timeline.
func Build(port string, berths []model.Berth, feeds Feeds, cfg Config) *Timeline {
	cfg.SetDefaults()
	loc := cfg.Location()

	tl := &Timeline{
		PortCode:     port,
		SafetyBuffer: cfg.SafetyBufferM,
		Location:     loc,
		byID:         make(map[string]*Lane, len(berths)),
	}
	for _, b := range berths {
		if tl.PortName == "" {
			tl.PortName = b.PortName
		}
		lane := &Lane{Berth: b}
		tl.Lanes = append(tl.Lanes, lane)
		tl.byID[b.ID] = lane
	}
	sort.Slice(tl.Lanes, func(i, j int) bool { return tl.Lanes[i].Berth.ID < tl.Lanes[j].Berth.ID })

	berthed := normalize.Rows(feeds.Berthed, loc)
	arrivals := normalize.Rows(feeds.Arrivals, loc)
	departures := normalize.Rows(feeds.Departures, loc)

	etds := departureIndex(departures.Events)

	for _, ev := range berthed.Events {
		if !ev.Scheduled() {
			tl.Unscheduled++
			continue
		}
		ev.OccupiedLen = ev.LOA + 2*cfg.SafetyBufferM
		if ev.End.IsZero() {
			if etd, ok := etds[vesselKey(ev)]; ok && etd.After(ev.Start) {
				ev.End = etd
			} else {
				ev.End = ev.Start.Add(cfg.Duration())
			}
		}
		if lane, ok := tl.byID[ev.BerthID]; ok {
			lane.Events = append(lane.Events, ev)
		}
		tl.Vessels = append(tl.Vessels, ev)
	}

	for _, ev := range arrivals.Events {
		if !ev.Scheduled() {
			tl.Unscheduled++
			continue
		}
		ev.OccupiedLen = ev.LOA + 2*cfg.SafetyBufferM
		if ev.End.IsZero() {
			ev.End = ev.Start.Add(cfg.Duration())
		}
		// Inbound forecasts without a berth assignment join the global
		// list only; they compete for arrival slots but never count
		// toward a berth's occupied length.
		if lane, ok := tl.byID[ev.BerthID]; ok && ev.BerthID != "" {
			lane.Events = append(lane.Events, ev)
		}
		tl.Vessels = append(tl.Vessels, ev)
	}

	for _, lane := range tl.Lanes {
		sortEvents(lane.Events)
	}
	sortEvents(tl.Vessels)
	return tl
}

// departureIndex maps vessel identity to its forecast departure time, so a
// berthed row lacking an ETD can borrow it from the outbound feed.
func departureIndex(events []model.OccupancyEvent) map[string]time.Time {
	idx := make(map[string]time.Time, len(events))
	for _, ev := range events {
		if ev.End.IsZero() {
			continue
		}
		key := vesselKey(ev)
		if cur, ok := idx[key]; !ok || ev.End.Before(cur) {
			idx[key] = ev.End
		}
	}
	return idx
}

func vesselKey(ev model.OccupancyEvent) string {
	if ev.VesselNo != "" {
		return "no:" + ev.VesselNo
	}
	return "name:" + strings.ToUpper(ev.VesselName)
}

func sortEvents(events []model.OccupancyEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		if events[i].VesselName != events[j].VesselName {
			return events[i].VesselName < events[j].VesselName
		}
		return events[i].VesselNo < events[j].VesselNo
	})
}
