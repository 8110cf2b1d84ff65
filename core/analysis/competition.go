package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/kilianp07/berthwatch/core/model"
	"github.com/kilianp07/berthwatch/core/normalize"
	"github.com/kilianp07/berthwatch/core/timeline"
)

// Competition detects other arrivals clustered around the target ETA. Every
// event in the global list counts, berth-assigned or not: an unassigned
// inbound forecast still contends for pilotage and quay space.
func Competition(tl *timeline.Timeline, etaStr string, cfg Config) model.CompetitionResult {
	cfg.SetDefaults()

	loc := time.UTC
	if tl != nil && tl.Location != nil {
		loc = tl.Location
	}
	eta := normalize.Time(etaStr, loc)
	if eta.IsZero() {
		return model.CompetitionResult{
			Level:  model.CompetitionUnknown,
			Reason: fmt.Sprintf("cannot parse ETA %q", etaStr),
		}
	}

	window := time.Duration(cfg.CompetitionWindowMinutes) * time.Minute
	windowStart := eta.Add(-window)
	windowEnd := eta.Add(window)

	var competing []model.CompetingVessel
	if tl != nil {
		for _, ev := range tl.Vessels {
			if !ev.Scheduled() || ev.Start.Before(windowStart) || ev.Start.After(windowEnd) {
				continue
			}
			competing = append(competing, model.CompetingVessel{
				VesselName:  ev.VesselName,
				VesselNo:    ev.VesselNo,
				ETA:         ev.Start,
				DiffMinutes: round1(ev.Start.Sub(eta).Minutes()),
				LOA:         ev.LOA,
				GrossTon:    ev.GrossTonnage,
				BerthID:     ev.BerthID,
				Agent:       ev.Agent,
			})
		}
	}
	sort.SliceStable(competing, func(i, j int) bool {
		return math.Abs(competing[i].DiffMinutes) < math.Abs(competing[j].DiffMinutes)
	})

	res := model.CompetitionResult{
		Count:          len(competing),
		Competing:      competing,
		RecommendedETA: eta,
	}
	switch {
	case res.Count == 0:
		res.Level = model.CompetitionLow
		res.Reason = "no competing arrivals, keep the planned ETA"
	case res.Count <= cfg.MediumCompetitionMax:
		res.Level = model.CompetitionMedium
		res.Reason = fmt.Sprintf("%d vessel(s) arriving in the same window, plan ahead", res.Count)
	default:
		res.Level = model.CompetitionHigh
		res.Reason = fmt.Sprintf("%d vessels arriving in the same window, consider adjusting ETA", res.Count)
	}

	if res.Count > 0 {
		earliest := competing[0].ETA
		for _, c := range competing[1:] {
			if c.ETA.Before(earliest) {
				earliest = c.ETA
			}
		}
		if earliest.Before(eta) {
			res.ShouldAccelerate = true
			res.RecommendedETA = earliest.Add(-time.Duration(cfg.LeadMarginMinutes) * time.Minute)
		}
	}
	res.Adjustment = res.RecommendedETA.Sub(eta)
	return res
}
