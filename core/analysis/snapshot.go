package analysis

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/berthwatch/core/model"
	"github.com/kilianp07/berthwatch/core/timeline"
)

// Snapshot computes every berth's occupancy state at the query instant.
// A zero instant means "now".
func Snapshot(tl *timeline.Timeline, at time.Time) model.SnapshotResult {
	if tl.Empty() {
		return model.SnapshotResult{Reason: "no berth data for port"}
	}
	if at.IsZero() {
		at = time.Now().In(tl.Location)
	}

	res := model.SnapshotResult{
		OK:           true,
		PortCode:     tl.PortCode,
		PortName:     tl.PortName,
		CheckTime:    at,
		SafetyBuffer: tl.SafetyBuffer,
	}

	rates := make([]float64, 0, len(tl.Lanes))
	for _, lane := range tl.Lanes {
		occupied, vessels := occupiedAt(lane, at, tl.SafetyBuffer)
		total := lane.Berth.LengthM
		occRate := rate(occupied, total)
		rates = append(rates, occRate)

		if len(vessels) == 0 {
			res.Summary.AvailableBerths++
		} else {
			res.Summary.OccupiedBerths++
		}
		res.Summary.TotalVessels += len(vessels)

		res.Berths = append(res.Berths, model.BerthSnapshot{
			BerthID:      lane.Berth.ID,
			BerthName:    lane.Berth.Name,
			TotalLength:  total,
			DepthM:       lane.Berth.DepthM,
			CargoType:    lane.Berth.CargoType,
			IsContainer:  lane.Berth.IsContainer,
			OccupiedLen:  round1(occupied),
			RemainingLen: round1(remaining(total, occupied)),
			Occupancy:    round1(occRate),
			VesselCount:  len(vessels),
			Vessels:      vessels,
		})
	}
	res.Summary.TotalBerths = len(tl.Lanes)
	res.Summary.AvgOccupancy = round1(stat.Mean(rates, nil))
	return res
}
