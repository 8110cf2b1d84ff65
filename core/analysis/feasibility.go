package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kilianp07/berthwatch/core/model"
	"github.com/kilianp07/berthwatch/core/normalize"
	"github.com/kilianp07/berthwatch/core/timeline"
)

// EvalRequest describes the hypothetical arrival to evaluate.
type EvalRequest struct {
	ETA        string
	ShipName   string
	ShipLength float64
	// SafetyBufferM overrides the timeline's buffer when positive.
	SafetyBufferM float64
}

// Evaluate determines which berths can take a ship of the requested length
// at the requested ETA and ranks them. Bad input never raises: the result
// keeps its shape with CanBerth false and the reason spelled out, so
// callers branch on the flag alone.
func Evaluate(tl *timeline.Timeline, req EvalRequest) model.EvaluationResult {
	res := model.EvaluationResult{
		ShipName:   req.ShipName,
		ShipLength: req.ShipLength,
	}
	if res.ShipName == "" {
		res.ShipName = "unnamed vessel"
	}

	if tl.Empty() {
		return evalFailure(res, "no berth data available")
	}
	if req.ShipLength <= 0 {
		return evalFailure(res, fmt.Sprintf("ship length must be positive, got %.1f", req.ShipLength))
	}
	eta := normalize.Time(req.ETA, tl.Location)
	if eta.IsZero() {
		return evalFailure(res, fmt.Sprintf("cannot parse ETA %q", req.ETA))
	}
	res.ETA = eta

	buffer := tl.SafetyBuffer
	if req.SafetyBufferM > 0 {
		buffer = req.SafetyBufferM
	}
	res.SafetyBuffer = buffer
	res.RequiredLength = req.ShipLength + 2*buffer

	for _, lane := range tl.Lanes {
		total := lane.Berth.LengthM
		if total < res.RequiredLength {
			res.Reasons = append(res.Reasons, fmt.Sprintf(
				"%s: berth too short (%.0fm < %.0fm)", lane.Berth.ID, total, res.RequiredLength))
			continue
		}
		occupied, _ := occupiedAt(lane, eta, buffer)
		rem := remaining(total, occupied)
		if rem < res.RequiredLength {
			res.Reasons = append(res.Reasons, fmt.Sprintf(
				"%s (%s): insufficient remaining length (%.0fm < %.0fm)",
				lane.Berth.ID, lane.Berth.Name, rem, res.RequiredLength))
			continue
		}
		res.Candidates = append(res.Candidates, model.CandidateBerth{
			BerthID:      lane.Berth.ID,
			BerthName:    lane.Berth.Name,
			TotalLength:  total,
			OccupiedLen:  round1(occupied),
			RemainingLen: round1(rem),
			Occupancy:    round1(rate(occupied, total)),
			DepthM:       lane.Berth.DepthM,
			CargoType:    lane.Berth.CargoType,
			IsContainer:  lane.Berth.IsContainer,
			Suitability:  round1(rem / res.RequiredLength * 100),
			Reason: fmt.Sprintf("%.0fm remaining, fits required %.0fm",
				rem, res.RequiredLength),
		})
	}

	rankCandidates(res.Candidates)
	res.CanBerth = len(res.Candidates) > 0
	if res.CanBerth {
		best := res.Candidates[0]
		res.Best = &best
		res.Recommendation = fmt.Sprintf(
			"berth at %s (%s): %.0fm remaining, %.1f%% occupied, depth %.1fm",
			best.BerthName, best.BerthID, best.RemainingLen, best.Occupancy, best.DepthM)
	} else {
		res.Recommendation = rejectionSummary(res.Reasons)
	}
	return res
}

// rankCandidates orders by suitability descending, breaking ties on lower
// occupancy and finally berth ID so equal inputs always rank identically.
func rankCandidates(c []model.CandidateBerth) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Suitability != c[j].Suitability {
			return c[i].Suitability > c[j].Suitability
		}
		if c[i].Occupancy != c[j].Occupancy {
			return c[i].Occupancy < c[j].Occupancy
		}
		return c[i].BerthID < c[j].BerthID
	})
}

func rejectionSummary(reasons []string) string {
	msg := "no berth has enough clear length"
	if len(reasons) == 0 {
		return msg
	}
	n := len(reasons)
	if n > 3 {
		n = 3
	}
	return msg + ": " + strings.Join(reasons[:n], "; ")
}

func evalFailure(res model.EvaluationResult, reason string) model.EvaluationResult {
	res.CanBerth = false
	res.Reasons = append(res.Reasons, reason)
	res.Recommendation = reason
	return res
}
