package scheduler

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/gridcast/internal/engine"
	"github.com/tejusbharadwaj/gridcast/internal/models"
)

// DefaultSchedule rebuilds the live view at every sample boundary.
const DefaultSchedule = "*/5 * * * *"

type liveMetrics struct {
	load          prometheus.Gauge
	solar         prometheus.Gauge
	forecastPeak  prometheus.Gauge
	overloadCount prometheus.Gauge
	refreshes     prometheus.Counter
}

func newLiveMetrics(reg prometheus.Registerer) (*liveMetrics, error) {
	m := &liveMetrics{
		load: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gridcast",
			Name:      "live_load_mw",
			Help:      "Load of the most recent sample in the live view.",
		}),
		solar: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gridcast",
			Name:      "live_solar_mw",
			Help:      "Solar generation of the most recent sample in the live view.",
		}),
		forecastPeak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gridcast",
			Name:      "forecast_peak_mw",
			Help:      "Highest predicted load in the live forecast.",
		}),
		overloadCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gridcast",
			Name:      "forecast_overload_points",
			Help:      "Number of predicted points above the overload threshold.",
		}),
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gridcast",
			Name:      "live_refresh_total",
			Help:      "Number of live view rebuilds.",
		}),
	}

	for _, c := range []prometheus.Collector{m.load, m.solar, m.forecastPeak, m.overloadCount, m.refreshes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Scheduler periodically rebuilds the short-term view and keeps the latest
// one as the live snapshot.
type Scheduler struct {
	ctx      context.Context
	engine   *engine.Engine
	logger   *logrus.Logger
	cron     *cron.Cron
	schedule string
	metrics  *liveMetrics
	onReady  func()

	mu    sync.RWMutex
	view  models.ShortTermView
	ready bool
}

func NewScheduler(
	ctx context.Context,
	eng *engine.Engine,
	logger *logrus.Logger,
	schedule string,
	reg prometheus.Registerer,
) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	metrics, err := newLiveMetrics(reg)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		ctx:      ctx,
		engine:   eng,
		logger:   logger,
		cron:     cron.New(),
		schedule: schedule,
		metrics:  metrics,
	}, nil
}

// OnReady registers fn to run once, after the first snapshot is stored.
func (s *Scheduler) OnReady(fn func()) {
	s.onReady = fn
}

// Start builds the first snapshot and then rebuilds it on the schedule until
// the scheduler context is canceled.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.Refresh); err != nil {
		return err
	}

	s.Refresh()
	s.cron.Start()

	go func() {
		<-s.ctx.Done()
		s.Stop()
	}()
	return nil
}

// Refresh rebuilds the live view at the engine's current time.
func (s *Scheduler) Refresh() {
	view := s.engine.ShortTerm(s.engine.Now())

	s.mu.Lock()
	s.view = view
	firstSnapshot := !s.ready
	s.ready = true
	s.mu.Unlock()

	s.record(view)

	if firstSnapshot && s.onReady != nil {
		s.onReady()
	}
}

// Snapshot returns the latest live view and whether one has been built.
func (s *Scheduler) Snapshot() (models.ShortTermView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view, s.ready
}

// Stop the scheduler and wait for a running refresh to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) record(view models.ShortTermView) {
	s.metrics.refreshes.Inc()

	if n := len(view.History); n > 0 {
		last := view.History[n-1]
		s.metrics.load.Set(last.Load)
		s.metrics.solar.Set(last.Solar)
	}

	var peak models.PredictedSample
	overloads := 0
	for _, p := range view.Predictions {
		if p.Load > peak.Load {
			peak = p
		}
		if p.IsOverload {
			overloads++
		}
	}
	s.metrics.forecastPeak.Set(peak.Load)
	s.metrics.overloadCount.Set(float64(overloads))

	fields := logrus.Fields{
		"history":     len(view.History),
		"predictions": len(view.Predictions),
		"peak_load":   peak.Load,
	}
	if overloads > 0 {
		fields["peak_at"] = peak.Timestamp
		fields["overload_points"] = overloads
		s.logger.WithFields(fields).Warn("Forecast exceeds overload threshold")
		return
	}
	s.logger.WithFields(fields).Debug("Live view refreshed")
}
