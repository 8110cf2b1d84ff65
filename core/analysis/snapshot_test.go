package analysis

import (
	"testing"
	"time"

	"github.com/kilianp07/berthwatch/core/model"
	"github.com/kilianp07/berthwatch/core/timeline"
)

func testConfig() timeline.Config {
	return timeline.Config{SafetyBufferM: 15, DefaultBerthDurationHours: 12, Timezone: "UTC"}
}

var t0 = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

// occupiedTimeline has one 300m vessel on W01 (350m) from t0 to t0+10h.
func occupiedTimeline() *timeline.Timeline {
	berths := []model.Berth{
		{ID: "W01", Name: "East Quay 1", PortCode: "KEL", PortName: "Keelung", LengthM: 350, DepthM: 14},
		{ID: "W02", Name: "East Quay 2", PortCode: "KEL", PortName: "Keelung", LengthM: 300, DepthM: 12},
	}
	feeds := timeline.Feeds{
		Berthed: []model.RawMovement{
			{
				Source: model.SourceBerthed, BerthID: "W01", VesselName: "EVER ACE",
				LOAMeters: "300", ActualStart: "2025-03-01 08:00", PlannedEnd: "2025-03-01 18:00",
			},
		},
	}
	return timeline.Build("KEL", berths, feeds, testConfig())
}

func TestSnapshotOccupiedBerth(t *testing.T) {
	res := Snapshot(occupiedTimeline(), t0.Add(2*time.Hour))
	if !res.OK {
		t.Fatalf("snapshot failed: %s", res.Reason)
	}
	b, ok := BerthDetail(res, "W01")
	if !ok {
		t.Fatalf("W01 missing")
	}
	// 300 + 2*15 - one trailing buffer = 315
	if b.OccupiedLen != 315 {
		t.Errorf("occupied = %v, want 315", b.OccupiedLen)
	}
	if b.RemainingLen != 35 {
		t.Errorf("remaining = %v, want 35", b.RemainingLen)
	}
	if b.Occupancy != 90 {
		t.Errorf("occupancy = %v, want 90", b.Occupancy)
	}
	if b.VesselCount != 1 {
		t.Errorf("vessel count = %d, want 1", b.VesselCount)
	}
}

func TestSnapshotEmptyBerth(t *testing.T) {
	res := Snapshot(occupiedTimeline(), t0.Add(2*time.Hour))
	b, _ := BerthDetail(res, "W02")
	if b.OccupiedLen != 0 || b.RemainingLen != 300 {
		t.Errorf("empty berth: occupied %v remaining %v, want 0/300", b.OccupiedLen, b.RemainingLen)
	}
}

func TestSnapshotIntervalIsClosed(t *testing.T) {
	tl := occupiedTimeline()
	for _, at := range []time.Time{t0, t0.Add(10 * time.Hour)} {
		res := Snapshot(tl, at)
		b, _ := BerthDetail(res, "W01")
		if b.VesselCount != 1 {
			t.Errorf("at %v: vessel must still count (closed interval)", at)
		}
	}
	res := Snapshot(tl, t0.Add(10*time.Hour+time.Minute))
	b, _ := BerthDetail(res, "W01")
	if b.VesselCount != 0 {
		t.Errorf("after departure the berth must be clear")
	}
}

func TestSnapshotSummary(t *testing.T) {
	res := Snapshot(occupiedTimeline(), t0.Add(time.Hour))
	s := res.Summary
	if s.TotalBerths != 2 || s.OccupiedBerths != 1 || s.AvailableBerths != 1 {
		t.Errorf("summary counts wrong: %+v", s)
	}
	if s.TotalVessels != 1 {
		t.Errorf("total vessels = %d, want 1", s.TotalVessels)
	}
	// mean of 90% and 0%
	if s.AvgOccupancy != 45 {
		t.Errorf("avg occupancy = %v, want 45", s.AvgOccupancy)
	}
}

func TestSnapshotRemainingNeverNegative(t *testing.T) {
	berths := []model.Berth{{ID: "W09", Name: "Short Quay", LengthM: 100}}
	feeds := timeline.Feeds{
		Berthed: []model.RawMovement{
			{Source: model.SourceBerthed, BerthID: "W09", VesselName: "TOO BIG", LOAMeters: "200", ActualStart: "2025-03-01 08:00"},
		},
	}
	tl := timeline.Build("KEL", berths, feeds, testConfig())
	res := Snapshot(tl, t0.Add(time.Hour))
	b, _ := BerthDetail(res, "W09")
	if b.RemainingLen != 0 {
		t.Errorf("remaining = %v, must clamp at 0", b.RemainingLen)
	}
}

func TestSnapshotZeroLengthBerthRate(t *testing.T) {
	berths := []model.Berth{{ID: "W00", Name: "Degenerate", LengthM: 0}}
	feeds := timeline.Feeds{
		Berthed: []model.RawMovement{
			{Source: model.SourceBerthed, BerthID: "W00", VesselName: "SHIP", LOAMeters: "50", ActualStart: "2025-03-01 08:00"},
		},
	}
	tl := timeline.Build("KEL", berths, feeds, testConfig())
	res := Snapshot(tl, t0.Add(time.Hour))
	b, _ := BerthDetail(res, "W00")
	if b.Occupancy != 0 {
		t.Errorf("zero-length berth must report 0%% occupancy, got %v", b.Occupancy)
	}
}

func TestSnapshotBufferMonotonicity(t *testing.T) {
	berths := []model.Berth{{ID: "W01", Name: "Quay", LengthM: 400}}
	feeds := timeline.Feeds{
		Berthed: []model.RawMovement{
			{Source: model.SourceBerthed, BerthID: "W01", VesselName: "SHIP", LOAMeters: "200", ActualStart: "2025-03-01 08:00"},
		},
	}
	prev := -1.0
	for _, buffer := range []float64{0, 5, 10, 15, 20, 30} {
		cfg := testConfig()
		cfg.SafetyBufferM = buffer
		tl := timeline.Build("KEL", berths, feeds, cfg)
		res := Snapshot(tl, t0.Add(time.Hour))
		b, _ := BerthDetail(res, "W01")
		if b.OccupiedLen < prev {
			t.Fatalf("occupied length decreased when buffer grew to %v", buffer)
		}
		prev = b.OccupiedLen
	}
}

func TestSnapshotEmptyTimeline(t *testing.T) {
	res := Snapshot(nil, t0)
	if res.OK {
		t.Fatalf("nil timeline must fail as data")
	}
	if res.Reason == "" {
		t.Errorf("failure must carry a reason")
	}
}

func TestFindVessel(t *testing.T) {
	res := Snapshot(occupiedTimeline(), t0.Add(time.Hour))
	found := FindVessel(res, "ever")
	if len(found) != 1 || found[0].BerthID != "W01" {
		t.Fatalf("expected EVER ACE on W01, got %+v", found)
	}
	if len(FindVessel(res, "nonexistent")) != 0 {
		t.Errorf("no match expected")
	}
	if len(FindVessel(res, "  ")) != 0 {
		t.Errorf("blank query returns nothing")
	}
}
