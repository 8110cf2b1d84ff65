// Package analysis evaluates berth timelines: point-in-time occupancy,
// arrival feasibility, arrival competition and the merged docking
// recommendation. Every public operation returns a uniformly shaped result
// that encodes failure as data; none of them panic or return an error.
package analysis

import (
	"math"
	"time"

	"github.com/kilianp07/berthwatch/core/model"
	"github.com/kilianp07/berthwatch/core/timeline"
)

// occupiedAt sums the occupied length of a lane's events covering t and
// returns the matching events. When at least one vessel matches, one
// trailing safety buffer is subtracted: the clearance behind the last
// vessel is not charged against the open end of the berth. This is a
// lump-sum capacity model, not a longitudinal packing of the quay.
func occupiedAt(lane *timeline.Lane, t time.Time, buffer float64) (float64, []model.OccupancyEvent) {
	var occupied float64
	var matched []model.OccupancyEvent
	for _, ev := range lane.Events {
		if ev.Covers(t) {
			occupied += ev.OccupiedLen
			matched = append(matched, ev)
		}
	}
	if len(matched) > 0 {
		occupied -= buffer
	}
	return occupied, matched
}

// remaining clamps available length at zero.
func remaining(total, occupied float64) float64 {
	return math.Max(0, total-occupied)
}

// rate is the occupancy percentage, zero for a zero-length berth.
func rate(occupied, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return occupied / total * 100
}

// round1 keeps one decimal, matching the precision the portal reports.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
