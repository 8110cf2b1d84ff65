package analysis

import (
	"fmt"

	"github.com/kilianp07/berthwatch/core/model"
)

// Aggregate merges a feasibility evaluation and a competition analysis into
// one decision. Pure and deterministic: same inputs, same advice.
func Aggregate(eval model.EvaluationResult, comp model.CompetitionResult) model.Recommendation {
	if !eval.CanBerth {
		return model.Recommendation{
			Action:   model.ActionDelay,
			Priority: model.PriorityHigh,
			Message:  eval.Recommendation,
		}
	}

	if comp.Level == model.CompetitionHigh {
		if comp.ShouldAccelerate {
			return model.Recommendation{
				Action:   model.ActionAccelerate,
				Priority: model.PriorityHigh,
				Message: fmt.Sprintf("heavy competition, accelerate to arrive by %s",
					comp.RecommendedETA.Format("2006-01-02 15:04")),
			}
		}
		return model.Recommendation{
			Action:   model.ActionMonitor,
			Priority: model.PriorityMedium,
			Message:  "heavy competition, monitor berth status closely",
		}
	}

	msg := "keep the planned ETA"
	if eval.Best != nil {
		msg = fmt.Sprintf("keep the planned ETA, berth at %s", eval.Best.BerthName)
	}
	return model.Recommendation{
		Action:   model.ActionProceed,
		Priority: model.PriorityLow,
		Message:  msg,
	}
}
