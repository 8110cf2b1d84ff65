package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/berthwatch/core/metrics"
	"github.com/kilianp07/berthwatch/core/model"
)

func TestInfluxSink_RecordSnapshot(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(coremetrics.Config{
		InfluxURL: srv.URL, InfluxToken: "tok", InfluxOrg: "org", InfluxBucket: "bucket",
	})
	defer sink.Close()

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ev := coremetrics.SnapshotEvent{
		Result: model.SnapshotResult{
			OK:        true,
			PortCode:  "KEL",
			CheckTime: at,
			Berths: []model.BerthSnapshot{
				{BerthID: "W01", OccupiedLen: 315, RemainingLen: 35, Occupancy: 90, VesselCount: 1},
			},
		},
	}
	if err := sink.RecordSnapshot(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	p := write.NewPointWithMeasurement("berth_snapshot").
		AddTag("port", "KEL").
		AddTag("berth_id", "W01").
		AddField("occupied_m", 315.0).
		AddField("remaining_m", 35.0).
		AddField("occupancy_rate", 90.0).
		AddField("vessel_count", 1).
		SetTime(at)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestInfluxSink_SkipsFailedSnapshots(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(coremetrics.Config{InfluxURL: srv.URL})
	defer sink.Close()

	ev := coremetrics.SnapshotEvent{Result: model.SnapshotResult{Reason: "no berth data"}}
	if err := sink.RecordSnapshot(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if called {
		t.Errorf("failed snapshots must not be written")
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(coremetrics.Config{
		InfluxURL: srv.URL, InfluxToken: "tok", InfluxOrg: "org", InfluxBucket: "bucket",
	})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
