package model

// Berth describes a linear quay segment of a port. Registry data is
// read-only for the lifetime of an analysis session.
type Berth struct {
	ID          string
	Name        string
	PortCode    string
	PortName    string
	LengthM     float64 // usable quay length in meters
	DepthM      float64
	CargoType   string
	IsContainer bool
	Area        string
}
