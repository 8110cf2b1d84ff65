package metrics

import coremetrics "github.com/kilianp07/berthwatch/core/metrics"

// MultiSink fans analysis events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSnapshot forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSnapshot(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordAnalysis forwards the event to all sinks.
func (m *MultiSink) RecordAnalysis(ev coremetrics.AnalysisEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordAnalysis(ev); err != nil {
			return err
		}
	}
	return nil
}
