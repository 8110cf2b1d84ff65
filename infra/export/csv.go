// Package export serializes analysis results to CSV and XML files for
// downstream consumption. Empty fields are written as the portal's
// "[no data]" placeholder so re-imports round-trip cleanly.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/berthwatch/core/model"
)

const noData = "[no data]"

const timeLayout = "2006-01-02 15:04"

// WriteBerthCSV writes one row per berth of a snapshot.
func WriteBerthCSV(w io.Writer, snap model.SnapshotResult) error {
	cw := csv.NewWriter(w)
	header := []string{
		"port_code", "berth_id", "berth_name", "total_length_m", "depth_m",
		"cargo_type", "is_container", "occupied_length_m", "remaining_length_m",
		"occupancy_rate", "vessel_count", "check_time",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, b := range snap.Berths {
		row := []string{
			snap.PortCode,
			b.BerthID,
			orNoData(b.BerthName),
			formatFloat(b.TotalLength),
			formatFloat(b.DepthM),
			orNoData(b.CargoType),
			strconv.FormatBool(b.IsContainer),
			formatFloat(b.OccupiedLen),
			formatFloat(b.RemainingLen),
			formatFloat(b.Occupancy),
			strconv.Itoa(b.VesselCount),
			snap.CheckTime.Format(timeLayout),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteVesselCSV writes one row per vessel alongside in a snapshot.
func WriteVesselCSV(w io.Writer, snap model.SnapshotResult) error {
	cw := csv.NewWriter(w)
	header := []string{
		"port_code", "berth_id", "vessel_name", "vessel_no", "call_sign", "imo",
		"loa_m", "gt", "ship_type", "start_time", "end_time", "agent",
		"prev_port", "next_port",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, b := range snap.Berths {
		for _, v := range b.Vessels {
			row := []string{
				snap.PortCode,
				b.BerthID,
				orNoData(v.VesselName),
				orNoData(v.VesselNo),
				orNoData(v.CallSign),
				orNoData(v.IMO),
				formatFloat(v.LOA),
				strconv.Itoa(v.GrossTonnage),
				orNoData(v.ShipType),
				formatTime(v.Start),
				formatTime(v.End),
				orNoData(v.Agent),
				orNoData(v.PrevPort),
				orNoData(v.NextPort),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func orNoData(s string) string {
	if s == "" {
		return noData
	}
	return s
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.1f", f)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return noData
	}
	return t.Format(timeLayout)
}
