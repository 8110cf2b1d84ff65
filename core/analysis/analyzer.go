package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/berthwatch/core/logger"
	"github.com/kilianp07/berthwatch/core/model"
	"github.com/kilianp07/berthwatch/core/timeline"
)

// Analyzer is the public face of the evaluation engine. It owns no state
// beyond configuration: every call works on the timeline it is handed and
// leaves nothing behind. Each operation carries a recovery boundary so an
// unexpected fault surfaces as a structured failure result, never a panic.
type Analyzer struct {
	cfg Config
	log logger.Logger
}

// NewAnalyzer builds an Analyzer with the given policy configuration.
func NewAnalyzer(cfg Config, log logger.Logger) *Analyzer {
	cfg.SetDefaults()
	if log == nil {
		log = nopLogger{}
	}
	return &Analyzer{cfg: cfg, log: log}
}

// ArrivalRequest describes one ship's planned arrival.
type ArrivalRequest struct {
	ShipName   string
	ShipType   string
	ShipLength float64
	ETA        string
	// SafetyBufferM overrides the timeline's buffer when positive.
	SafetyBufferM float64
}

// Snapshot evaluates port-wide occupancy at the given instant.
func (a *Analyzer) Snapshot(tl *timeline.Timeline, at time.Time) (res model.SnapshotResult) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorf("snapshot evaluation fault: %v", r)
			res = model.SnapshotResult{Reason: fmt.Sprintf("internal evaluation fault: %v", r)}
		}
	}()
	return Snapshot(tl, at)
}

// EvaluateArrival checks feasibility of one arrival against the timeline.
func (a *Analyzer) EvaluateArrival(tl *timeline.Timeline, req ArrivalRequest) (res model.EvaluationResult) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorf("feasibility evaluation fault: %v", r)
			res = evalFailure(model.EvaluationResult{ShipName: req.ShipName, ShipLength: req.ShipLength},
				fmt.Sprintf("internal evaluation fault: %v", r))
		}
	}()
	return Evaluate(tl, EvalRequest{
		ETA:           req.ETA,
		ShipName:      req.ShipName,
		ShipLength:    req.ShipLength,
		SafetyBufferM: req.SafetyBufferM,
	})
}

// AnalyzeCompetition grades contention around the requested ETA.
func (a *Analyzer) AnalyzeCompetition(tl *timeline.Timeline, etaStr string) (res model.CompetitionResult) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorf("competition analysis fault: %v", r)
			res = model.CompetitionResult{
				Level:  model.CompetitionUnknown,
				Reason: fmt.Sprintf("internal evaluation fault: %v", r),
			}
		}
	}()
	return Competition(tl, etaStr, a.cfg)
}

// Analyze runs the full pipeline for one arrival: feasibility, competition
// and the merged recommendation.
func (a *Analyzer) Analyze(tl *timeline.Timeline, req ArrivalRequest) model.AnalysisResult {
	eval := a.EvaluateArrival(tl, req)
	comp := a.AnalyzeCompetition(tl, req.ETA)
	res := model.AnalysisResult{
		AnalysisID:  uuid.NewString(),
		ShipName:    eval.ShipName,
		ShipType:    req.ShipType,
		ShipLength:  req.ShipLength,
		ETA:         eval.ETA,
		CanBerth:    eval.CanBerth,
		Evaluation:  eval,
		Competition: comp,
		Final:       Aggregate(eval, comp),
	}
	a.log.Debugw("arrival analyzed", map[string]any{
		"analysis_id": res.AnalysisID,
		"ship":        res.ShipName,
		"can_berth":   res.CanBerth,
		"action":      res.Final.Action,
	})
	return res
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
