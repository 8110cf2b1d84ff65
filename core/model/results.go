package model

import "time"

// BerthSnapshot is one berth's occupancy state at a query instant.
type BerthSnapshot struct {
	BerthID      string           `json:"berth_id"`
	BerthName    string           `json:"berth_name"`
	TotalLength  float64          `json:"total_length_m"`
	DepthM       float64          `json:"depth_m"`
	CargoType    string           `json:"cargo_type"`
	IsContainer  bool             `json:"is_container"`
	OccupiedLen  float64          `json:"occupied_length_m"`
	RemainingLen float64          `json:"remaining_length_m"`
	Occupancy    float64          `json:"occupancy_rate"`
	VesselCount  int              `json:"vessel_count"`
	Vessels      []OccupancyEvent `json:"vessels"`
}

// SnapshotSummary aggregates a SnapshotResult.
type SnapshotSummary struct {
	TotalBerths     int     `json:"total_berths"`
	AvailableBerths int     `json:"available_berths"`
	OccupiedBerths  int     `json:"occupied_berths"`
	TotalVessels    int     `json:"total_vessels"`
	AvgOccupancy    float64 `json:"avg_occupancy_rate"`
}

// SnapshotResult is the port-wide occupancy state at a query instant. The
// shape is identical on success and failure; OK distinguishes the two.
type SnapshotResult struct {
	OK           bool            `json:"ok"`
	Reason       string          `json:"reason,omitempty"`
	PortCode     string          `json:"port_code"`
	PortName     string          `json:"port_name"`
	CheckTime    time.Time       `json:"check_time"`
	SafetyBuffer float64         `json:"safety_buffer_m"`
	Berths       []BerthSnapshot `json:"berths"`
	Summary      SnapshotSummary `json:"summary"`
}

// CandidateBerth is a berth judged able to take the hypothetical ship.
type CandidateBerth struct {
	BerthID      string  `json:"berth_id"`
	BerthName    string  `json:"berth_name"`
	TotalLength  float64 `json:"total_length_m"`
	OccupiedLen  float64 `json:"occupied_length_m"`
	RemainingLen float64 `json:"remaining_length_m"`
	Occupancy    float64 `json:"occupancy_rate"`
	DepthM       float64 `json:"depth_m"`
	CargoType    string  `json:"cargo_type"`
	IsContainer  bool    `json:"is_container"`
	Suitability  float64 `json:"suitability_score"`
	Reason       string  `json:"reason"`
}

// EvaluationResult reports whether a ship of a given length can berth at a
// given ETA. Failure paths return the same shape with CanBerth false and at
// least one entry in Reasons.
type EvaluationResult struct {
	CanBerth       bool             `json:"can_berth"`
	Recommendation string           `json:"recommendation"`
	Candidates     []CandidateBerth `json:"candidate_berths"`
	Best           *CandidateBerth  `json:"recommended_berth,omitempty"`
	Reasons        []string         `json:"reasons"`
	ETA            time.Time        `json:"eta"`
	ShipName       string           `json:"ship_name"`
	ShipLength     float64          `json:"ship_length_m"`
	RequiredLength float64          `json:"required_length_m"`
	SafetyBuffer   float64          `json:"safety_buffer_m"`
}

// CompetitionLevel grades how contested an arrival window is.
type CompetitionLevel string

const (
	CompetitionLow     CompetitionLevel = "low"
	CompetitionMedium  CompetitionLevel = "medium"
	CompetitionHigh    CompetitionLevel = "high"
	CompetitionUnknown CompetitionLevel = "unknown"
)

// CompetingVessel is another arrival inside the competition window.
type CompetingVessel struct {
	VesselName  string    `json:"vessel_name"`
	VesselNo    string    `json:"vessel_no"`
	ETA         time.Time `json:"eta"`
	DiffMinutes float64   `json:"time_diff_minutes"`
	LOA         float64   `json:"loa_m"`
	GrossTon    int       `json:"gt"`
	BerthID     string    `json:"berth_id,omitempty"`
	Agent       string    `json:"agent,omitempty"`
}

// CompetitionResult describes contention around a target ETA.
type CompetitionResult struct {
	Level            CompetitionLevel  `json:"competition_level"`
	Count            int               `json:"competition_count"`
	Competing        []CompetingVessel `json:"competing_vessels"`
	Reason           string            `json:"reason"`
	ShouldAccelerate bool              `json:"should_accelerate"`
	RecommendedETA   time.Time         `json:"recommended_eta"`
	Adjustment       time.Duration     `json:"time_adjustment"`
}

// Action is the aggregated advice for an arrival.
type Action string

const (
	ActionProceed    Action = "proceed"
	ActionMonitor    Action = "monitor"
	ActionAccelerate Action = "accelerate"
	ActionDelay      Action = "delay"
)

// Priority grades how urgently the advice should be acted on.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is the final merged decision.
type Recommendation struct {
	Action   Action   `json:"action"`
	Priority Priority `json:"priority"`
	Message  string   `json:"message"`
}

// AnalysisResult bundles a full arrival analysis for one ship.
type AnalysisResult struct {
	AnalysisID  string            `json:"analysis_id"`
	ShipName    string            `json:"ship_name"`
	ShipType    string            `json:"ship_type"`
	ShipLength  float64           `json:"ship_length_m"`
	ETA         time.Time         `json:"eta"`
	CanBerth    bool              `json:"can_berth"`
	Evaluation  EvaluationResult  `json:"berth_evaluation"`
	Competition CompetitionResult `json:"competition_analysis"`
	Final       Recommendation    `json:"final_recommendation"`
}
