package timeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/kilianp07/berthwatch/core/model"
)

func testConfig() Config {
	return Config{SafetyBufferM: 15, DefaultBerthDurationHours: 12, Timezone: "UTC"}
}

func testBerths() []model.Berth {
	return []model.Berth{
		{ID: "W01", Name: "East Quay 1", PortCode: "KEL", LengthM: 350, DepthM: 14},
		{ID: "W02", Name: "East Quay 2", PortCode: "KEL", LengthM: 300, DepthM: 12},
	}
}

func TestBuildOccupiedLengthAndDefaultEnd(t *testing.T) {
	feeds := Feeds{
		Berthed: []model.RawMovement{
			{Source: model.SourceBerthed, BerthID: "W01", VesselName: "EVER ACE", LOAMeters: "300", ActualStart: "2025-03-01 08:00"},
		},
	}
	tl := Build("KEL", testBerths(), feeds, testConfig())
	lane, ok := tl.Lane("W01")
	if !ok || len(lane.Events) != 1 {
		t.Fatalf("expected one event on W01")
	}
	ev := lane.Events[0]
	if ev.OccupiedLen != 330 {
		t.Errorf("occupied = %v, want 300+2*15", ev.OccupiedLen)
	}
	wantEnd := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	if !ev.End.Equal(wantEnd) {
		t.Errorf("end = %v, want start+12h %v", ev.End, wantEnd)
	}
}

func TestBuildUnassignedArrivalGlobalOnly(t *testing.T) {
	feeds := Feeds{
		Arrivals: []model.RawMovement{
			{Source: model.SourceArrival, VesselName: "WAN HAI 315", LOAMeters: "200", PlannedStart: "2025-03-01 10:00"},
		},
	}
	tl := Build("KEL", testBerths(), feeds, testConfig())
	for _, lane := range tl.Lanes {
		if len(lane.Events) != 0 {
			t.Fatalf("unassigned arrival must not occupy a berth lane")
		}
	}
	if len(tl.Vessels) != 1 {
		t.Fatalf("global list must carry the arrival")
	}
	if !tl.Vessels[0].Forecast {
		t.Errorf("arrival must be marked forecast")
	}
}

func TestBuildSortedByStart(t *testing.T) {
	feeds := Feeds{
		Berthed: []model.RawMovement{
			{Source: model.SourceBerthed, BerthID: "W01", VesselName: "LATE SHIP", ActualStart: "2025-03-01 12:00"},
			{Source: model.SourceBerthed, BerthID: "W01", VesselName: "EARLY SHIP", ActualStart: "2025-03-01 06:00"},
		},
	}
	tl := Build("KEL", testBerths(), feeds, testConfig())
	lane, _ := tl.Lane("W01")
	if lane.Events[0].VesselName != "EARLY SHIP" {
		t.Errorf("events must be sorted ascending by start")
	}
	if tl.Vessels[0].VesselName != "EARLY SHIP" {
		t.Errorf("global list must be sorted ascending by start")
	}
}

func TestBuildDepartureReconciliation(t *testing.T) {
	feeds := Feeds{
		Berthed: []model.RawMovement{
			{Source: model.SourceBerthed, BerthID: "W01", VesselNo: "V100", VesselName: "YM MOBILITY", ActualStart: "2025-03-01 08:00"},
		},
		Departures: []model.RawMovement{
			{Source: model.SourceDeparture, VesselNo: "V100", VesselName: "YM MOBILITY", PlannedEnd: "2025-03-01 16:30"},
		},
	}
	tl := Build("KEL", testBerths(), feeds, testConfig())
	lane, _ := tl.Lane("W01")
	want := time.Date(2025, 3, 1, 16, 30, 0, 0, time.UTC)
	if !lane.Events[0].End.Equal(want) {
		t.Errorf("end = %v, want outbound forecast %v", lane.Events[0].End, want)
	}
}

func TestBuildExplicitETDWins(t *testing.T) {
	feeds := Feeds{
		Berthed: []model.RawMovement{
			{
				Source: model.SourceBerthed, BerthID: "W01", VesselNo: "V100", VesselName: "YM MOBILITY",
				ActualStart: "2025-03-01 08:00", PlannedEnd: "2025-03-01 14:00",
			},
		},
		Departures: []model.RawMovement{
			{Source: model.SourceDeparture, VesselNo: "V100", VesselName: "YM MOBILITY", PlannedEnd: "2025-03-01 16:30"},
		},
	}
	tl := Build("KEL", testBerths(), feeds, testConfig())
	lane, _ := tl.Lane("W01")
	want := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	if !lane.Events[0].End.Equal(want) {
		t.Errorf("end = %v, the berthed feed's own ETD must win", lane.Events[0].End)
	}
}

func TestBuildUnknownBerthStaysGlobal(t *testing.T) {
	feeds := Feeds{
		Berthed: []model.RawMovement{
			{Source: model.SourceBerthed, BerthID: "W99", VesselName: "GHOST", ActualStart: "2025-03-01 08:00"},
		},
	}
	tl := Build("KEL", testBerths(), feeds, testConfig())
	for _, lane := range tl.Lanes {
		if len(lane.Events) != 0 {
			t.Fatalf("unknown berth must not land in any lane")
		}
	}
	if len(tl.Vessels) != 1 {
		t.Fatalf("unknown-berth event still belongs to the global list")
	}
}

func TestBuildIdempotentOnDuplicatedShuffledInput(t *testing.T) {
	a := model.RawMovement{Source: model.SourceBerthed, BerthID: "W01", VesselName: "EVER ACE", LOAMeters: "300", ActualStart: "2025-03-01 08:00", PlannedStart: "2025-03-01 08:00"}
	b := model.RawMovement{Source: model.SourceBerthed, BerthID: "W02", VesselName: "WAN HAI 315", LOAMeters: "200", ActualStart: "2025-03-01 09:00", PlannedStart: "2025-03-01 09:00"}

	first := Build("KEL", testBerths(), Feeds{Berthed: []model.RawMovement{a, b, a}}, testConfig())
	second := Build("KEL", testBerths(), Feeds{Berthed: []model.RawMovement{b, a, a, b}}, testConfig())

	for _, id := range []string{"W01", "W02"} {
		l1, _ := first.Lane(id)
		l2, _ := second.Lane(id)
		if !reflect.DeepEqual(l1.Events, l2.Events) {
			t.Errorf("lane %s differs across rebuilds", id)
		}
	}
	if !reflect.DeepEqual(first.Vessels, second.Vessels) {
		t.Errorf("global lists differ across rebuilds")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := testConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	bad := Config{SafetyBufferM: -1, DefaultBerthDurationHours: 12, Timezone: "UTC"}
	if err := bad.Validate(); err == nil {
		t.Errorf("negative buffer must be rejected")
	}
	bad = Config{SafetyBufferM: 15, DefaultBerthDurationHours: 12, Timezone: "Mars/Olympus"}
	if err := bad.Validate(); err == nil {
		t.Errorf("unknown timezone must be rejected")
	}
}
