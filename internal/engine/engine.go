// Package engine synthesizes, aggregates and forecasts grid load profiles.
//
// The engine is made of three stateless transforms:
//   - Generate: a fixed-cadence load/solar series shaped like a duck curve
//   - Aggregate: daily or monthly rollups of a generated series
//   - Forecast: a short horizon of predicted load following a last sample
//
// Every method is safe for concurrent use. The only inputs that are not
// explicit arguments are the clock (used to derive a default seed and the
// short-term "now") and the uniform source used for forecast uncertainty;
// both can be replaced with options for reproducible tests.
//
// Example usage:
//
//	eng := engine.New(engine.DefaultParams())
//	samples := eng.Generate(start, end, eng.DefaultSeed())
//	daily, err := eng.Aggregate(samples, models.GranularityDaily)
//	next := eng.Forecast(samples[len(samples)-1], 24)
package engine

import (
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Params holds the tunable constants of the engine.
type Params struct {
	OverloadThreshold float64        // MW above which a sample or bucket is flagged
	Cadence           time.Duration  // spacing between samples
	ForecastHorizon   time.Duration  // default forecast length
	HistoryWindow     time.Duration  // history shown ahead of a short-term forecast
	Location          *time.Location // calendar for hour-of-day and bucket keys
}

// DefaultParams returns the parameters the chart was designed around.
func DefaultParams() Params {
	return Params{
		OverloadThreshold: 15000,
		Cadence:           5 * time.Minute,
		ForecastHorizon:   24 * time.Hour,
		HistoryWindow:     6 * time.Hour,
		Location:          time.UTC,
	}
}

// Engine runs the generate/aggregate/forecast pipeline.
type Engine struct {
	params  Params
	clock   func() time.Time
	uniform func() float64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithUniform replaces the [0,1) source used for forecast uncertainty.
func WithUniform(uniform func() float64) Option {
	return func(e *Engine) { e.uniform = uniform }
}

// New creates an engine. Zero-valued params fall back to DefaultParams.
func New(params Params, opts ...Option) *Engine {
	defaults := DefaultParams()
	if params.OverloadThreshold <= 0 {
		params.OverloadThreshold = defaults.OverloadThreshold
	}
	if params.Cadence <= 0 {
		params.Cadence = defaults.Cadence
	}
	if params.ForecastHorizon <= 0 {
		params.ForecastHorizon = defaults.ForecastHorizon
	}
	if params.HistoryWindow <= 0 {
		params.HistoryWindow = defaults.HistoryWindow
	}
	if params.Location == nil {
		params.Location = defaults.Location
	}

	e := &Engine{
		params:  params,
		clock:   time.Now,
		uniform: distuv.Uniform{Min: 0, Max: 1}.Rand,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Params returns the parameters the engine was built with.
func (e *Engine) Params() Params {
	return e.params
}

// Now returns the current instant according to the engine clock.
func (e *Engine) Now() time.Time {
	return e.clock()
}

// DefaultSeed derives a seed from the current instant.
func (e *Engine) DefaultSeed() int64 {
	return e.clock().UnixMilli()
}

func (e *Engine) overload(load float64) bool {
	return load > e.params.OverloadThreshold
}

func (e *Engine) hour(t time.Time) int {
	return t.In(e.params.Location).Hour()
}
