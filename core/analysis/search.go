package analysis

import (
	"strings"

	"github.com/kilianp07/berthwatch/core/model"
)

// VesselLocation ties a found vessel to the berth it occupies.
type VesselLocation struct {
	BerthID   string               `json:"berth_id"`
	BerthName string               `json:"berth_name"`
	Vessel    model.OccupancyEvent `json:"vessel"`
}

// FindVessel searches a snapshot for vessels whose name, number or call
// sign contains the query, case-insensitively.
func FindVessel(snap model.SnapshotResult, query string) []VesselLocation {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var found []VesselLocation
	for _, b := range snap.Berths {
		for _, v := range b.Vessels {
			if strings.Contains(strings.ToLower(v.VesselName), q) ||
				strings.Contains(strings.ToLower(v.VesselNo), q) ||
				strings.Contains(strings.ToLower(v.CallSign), q) {
				found = append(found, VesselLocation{
					BerthID:   b.BerthID,
					BerthName: b.BerthName,
					Vessel:    v,
				})
			}
		}
	}
	return found
}

// BerthDetail picks one berth out of a snapshot.
func BerthDetail(snap model.SnapshotResult, berthID string) (model.BerthSnapshot, bool) {
	for _, b := range snap.Berths {
		if b.BerthID == berthID {
			return b, true
		}
	}
	return model.BerthSnapshot{}, false
}
