package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/berthwatch/core/metrics"
)

// PromSink records analysis activity in Prometheus metrics.
type PromSink struct {
	occupancy *prometheus.GaugeVec
	remaining *prometheus.GaugeVec
	vessels   *prometheus.GaugeVec
	analyses  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// NewPromSink registers analysis metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	occupancy := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "berth_occupancy_rate",
		Help: "Occupancy rate of a berth in percent at the last snapshot",
	}, []string{"port", "berth_id"})
	remaining := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "berth_remaining_length_meters",
		Help: "Remaining quay length of a berth at the last snapshot",
	}, []string{"port", "berth_id"})
	vessels := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "port_vessels_total",
		Help: "Number of vessels alongside at the last snapshot",
	}, []string{"port"})
	analyses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arrival_analyses_total",
		Help: "Total number of arrival analyses",
	}, []string{"action", "can_berth"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "arrival_analysis_duration_seconds",
		Help:    "Time spent computing one arrival analysis",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})

	collectors := []prometheus.Collector{occupancy, remaining, vessels, analyses, latency}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			collectors[i] = are.ExistingCollector
		}
	}
	return &PromSink{
		occupancy: collectors[0].(*prometheus.GaugeVec),
		remaining: collectors[1].(*prometheus.GaugeVec),
		vessels:   collectors[2].(*prometheus.GaugeVec),
		analyses:  collectors[3].(*prometheus.CounterVec),
		latency:   collectors[4].(*prometheus.HistogramVec),
	}, nil
}

// RecordSnapshot sets the per-berth gauges from a snapshot result.
func (s *PromSink) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	res := ev.Result
	if !res.OK {
		return nil
	}
	for _, b := range res.Berths {
		s.occupancy.WithLabelValues(res.PortCode, b.BerthID).Set(b.Occupancy)
		s.remaining.WithLabelValues(res.PortCode, b.BerthID).Set(b.RemainingLen)
	}
	s.vessels.WithLabelValues(res.PortCode).Set(float64(res.Summary.TotalVessels))
	return nil
}

// RecordAnalysis counts the analysis and observes its latency.
func (s *PromSink) RecordAnalysis(ev coremetrics.AnalysisEvent) error {
	action := string(ev.Result.Final.Action)
	s.analyses.WithLabelValues(action, strconv.FormatBool(ev.Result.CanBerth)).Inc()
	s.latency.WithLabelValues(action).Observe(ev.Elapsed.Seconds())
	return nil
}
