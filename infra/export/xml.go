package export

import (
	"encoding/xml"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/berthwatch/core/model"
)

type xmlReport struct {
	XMLName   xml.Name   `xml:"Report"`
	Type      string     `xml:"type,attr"`
	Port      string     `xml:"port,attr"`
	PortCode  string     `xml:"port_code,attr"`
	CreatedAt string     `xml:"created_at,attr"`
	Berths    []xmlBerth `xml:"Berth"`
}

type xmlBerth struct {
	ID           string      `xml:"id,attr"`
	Name         string      `xml:"Name"`
	TotalLength  string      `xml:"TotalLengthM"`
	Depth        string      `xml:"DepthM"`
	CargoType    string      `xml:"CargoType"`
	OccupiedLen  string      `xml:"OccupiedLengthM"`
	RemainingLen string      `xml:"RemainingLengthM"`
	Occupancy    string      `xml:"OccupancyRate"`
	Vessels      []xmlVessel `xml:"Ship"`
}

type xmlVessel struct {
	Name     string `xml:"Name"`
	VesselNo string `xml:"VesselNo"`
	CallSign string `xml:"CallSign"`
	IMO      string `xml:"IMO"`
	LOA      string `xml:"LOAM"`
	GT       string `xml:"GT"`
	ShipType string `xml:"ShipType"`
	Start    string `xml:"StartTime"`
	End      string `xml:"EndTime"`
	Agent    string `xml:"Agent"`
	PrevPort string `xml:"PrevPort"`
	NextPort string `xml:"NextPort"`
}

// WriteSnapshotXML writes a snapshot as an indented XML report document.
func WriteSnapshotXML(w io.Writer, snap model.SnapshotResult) error {
	rep := xmlReport{
		Type:      "berth_snapshot",
		Port:      snap.PortName,
		PortCode:  snap.PortCode,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	for _, b := range snap.Berths {
		xb := xmlBerth{
			ID:           b.BerthID,
			Name:         orNoData(b.BerthName),
			TotalLength:  formatFloat(b.TotalLength),
			Depth:        formatFloat(b.DepthM),
			CargoType:    orNoData(b.CargoType),
			OccupiedLen:  formatFloat(b.OccupiedLen),
			RemainingLen: formatFloat(b.RemainingLen),
			Occupancy:    formatFloat(b.Occupancy),
		}
		for _, v := range b.Vessels {
			xb.Vessels = append(xb.Vessels, xmlVessel{
				Name:     orNoData(v.VesselName),
				VesselNo: orNoData(v.VesselNo),
				CallSign: orNoData(v.CallSign),
				IMO:      orNoData(v.IMO),
				LOA:      formatFloat(v.LOA),
				GT:       orNoData(intString(v.GrossTonnage)),
				ShipType: orNoData(v.ShipType),
				Start:    formatTime(v.Start),
				End:      formatTime(v.End),
				Agent:    orNoData(v.Agent),
				PrevPort: orNoData(v.PrevPort),
				NextPort: orNoData(v.NextPort),
			})
		}
		rep.Berths = append(rep.Berths, xb)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func intString(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
