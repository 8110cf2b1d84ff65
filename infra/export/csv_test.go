package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/berthwatch/core/model"
)

func sampleSnapshot() model.SnapshotResult {
	start := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return model.SnapshotResult{
		OK:        true,
		PortCode:  "KEL",
		PortName:  "Keelung",
		CheckTime: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Berths: []model.BerthSnapshot{
			{
				BerthID: "W01", BerthName: "East Quay 1", TotalLength: 350, DepthM: 14,
				CargoType: "container", IsContainer: true,
				OccupiedLen: 315, RemainingLen: 35, Occupancy: 90, VesselCount: 1,
				Vessels: []model.OccupancyEvent{
					{
						VesselName: "EVER ACE", VesselNo: "V100", CallSign: "BKAA",
						LOA: 300, GrossTonnage: 120000, ShipType: "container",
						Start: start, End: start.Add(10 * time.Hour),
						Agent: "Evergreen",
					},
				},
			},
			{BerthID: "W02", TotalLength: 300, DepthM: 12, RemainingLen: 300},
		},
	}
}

func TestWriteBerthCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBerthCSV(&buf, sampleSnapshot()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "berth_id", rows[0][1])

	w01 := rows[1]
	assert.Equal(t, "KEL", w01[0])
	assert.Equal(t, "W01", w01[1])
	assert.Equal(t, "350.0", w01[3])
	assert.Equal(t, "true", w01[6])
	assert.Equal(t, "315.0", w01[7])
	assert.Equal(t, "90.0", w01[9])
	assert.Equal(t, "2025-03-01 10:00", w01[11])

	// Missing text fields fall back to the portal placeholder.
	assert.Equal(t, "[no data]", rows[2][2])
}

func TestWriteVesselCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVesselCSV(&buf, sampleSnapshot()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	v := rows[1]
	assert.Equal(t, "W01", v[1])
	assert.Equal(t, "EVER ACE", v[2])
	assert.Equal(t, "300.0", v[6])
	assert.Equal(t, "120000", v[7])
	assert.Equal(t, "2025-03-01 08:00", v[9])
	assert.Equal(t, "2025-03-01 18:00", v[10])
	assert.Equal(t, "[no data]", v[12])
}

func TestWriteVesselCSVUnscheduled(t *testing.T) {
	snap := model.SnapshotResult{
		PortCode: "KEL",
		Berths: []model.BerthSnapshot{
			{BerthID: "W01", Vessels: []model.OccupancyEvent{{VesselName: "DRIFTER"}}},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteVesselCSV(&buf, snap))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "[no data]", rows[1][9])
	assert.Equal(t, "[no data]", rows[1][10])
}
