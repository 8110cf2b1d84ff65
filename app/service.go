// Package app wires the analysis engine to its collaborators: the local
// movement store, metrics sinks, the optional MQTT publisher and the
// periodic snapshot loop.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/berthwatch/config"
	"github.com/kilianp07/berthwatch/core/analysis"
	coremetrics "github.com/kilianp07/berthwatch/core/metrics"
	"github.com/kilianp07/berthwatch/core/model"
	"github.com/kilianp07/berthwatch/core/timeline"
	"github.com/kilianp07/berthwatch/infra/logger"
	"github.com/kilianp07/berthwatch/infra/metrics"
	"github.com/kilianp07/berthwatch/infra/mqtt"
	"github.com/kilianp07/berthwatch/infra/store"
)

// Service orchestrates timeline construction and analysis for the
// configured ports.
type Service struct {
	cfg       *config.Config
	store     *store.Store
	analyzer  *analysis.Analyzer
	sink      coremetrics.Sink
	publisher mqtt.Publisher
	log       logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var publisher mqtt.Publisher = mqtt.NopPublisher{}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		publisher = pub
	}

	return &Service{
		cfg:       cfg,
		store:     st,
		analyzer:  analysis.NewAnalyzer(cfg.Analysis, logg),
		sink:      sink,
		publisher: publisher,
		log:       logg,
	}, nil
}

// Timeline rebuilds the occupancy timeline for one port from the store.
func (s *Service) Timeline(ctx context.Context, port string) (*timeline.Timeline, error) {
	berths, err := s.store.LoadBerths(ctx, port)
	if err != nil {
		return nil, fmt.Errorf("load berths for %s: %w", port, err)
	}
	feeds, err := s.store.LoadFeeds(ctx, port)
	if err != nil {
		return nil, fmt.Errorf("load feeds for %s: %w", port, err)
	}
	tl := timeline.Build(port, berths, feeds, s.cfg.Timeline)
	if tl.Unscheduled > 0 {
		s.log.Warnf("port %s: %d movement rows lack usable timestamps", port, tl.Unscheduled)
	}
	return tl, nil
}

// Snapshot evaluates a port's occupancy at the given instant and records it.
func (s *Service) Snapshot(ctx context.Context, port string, at time.Time) (model.SnapshotResult, error) {
	tl, err := s.Timeline(ctx, port)
	if err != nil {
		return model.SnapshotResult{Reason: err.Error()}, err
	}
	res := s.analyzer.Snapshot(tl, at)
	if err := s.sink.RecordSnapshot(coremetrics.SnapshotEvent{Result: res, Time: time.Now()}); err != nil {
		s.log.Errorf("record snapshot: %v", err)
	}
	return res, nil
}

// Analyze runs the full arrival analysis for one ship against a port and
// publishes the outcome.
func (s *Service) Analyze(ctx context.Context, port string, req analysis.ArrivalRequest) (model.AnalysisResult, error) {
	tl, err := s.Timeline(ctx, port)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	start := time.Now()
	res := s.analyzer.Analyze(tl, req)
	elapsed := time.Since(start)

	if err := s.sink.RecordAnalysis(coremetrics.AnalysisEvent{Result: res, Elapsed: elapsed, Time: start}); err != nil {
		s.log.Errorf("record analysis: %v", err)
	}
	if err := s.publisher.PublishAnalysis(res); err != nil {
		s.log.Errorf("publish analysis: %v", err)
	}
	return res, nil
}

// Run starts the periodic snapshot loop and blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	interval := time.Duration(s.cfg.Service.SnapshotIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.snapshotAll(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.snapshotAll(ctx)
		}
	}
}

func (s *Service) snapshotAll(ctx context.Context) {
	for _, port := range s.cfg.Ports {
		res, err := s.Snapshot(ctx, port, time.Time{})
		if err != nil {
			s.log.Errorf("snapshot %s: %v", port, err)
			continue
		}
		s.log.Infof("port %s: %d/%d berths occupied, avg occupancy %.1f%%",
			port, res.Summary.OccupiedBerths, res.Summary.TotalBerths, res.Summary.AvgOccupancy)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.publisher.Close()
	return s.store.Close()
}
