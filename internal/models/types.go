package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidGranularity is returned when a view asks for a resolution the
// aggregator does not know.
var ErrInvalidGranularity = errors.New("invalid granularity")

// Sample represents a single fixed-interval load/solar reading
type Sample struct {
	Timestamp  time.Time `json:"timestamp"`
	Load       float64   `json:"load"`
	Solar      float64   `json:"solar"`
	IsOverload bool      `json:"isOverload"`
}

// AggregatedRecord is the rollup of every sample that fell into one bucket
type AggregatedRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Load       float64   `json:"load"`
	Solar      float64   `json:"solar"`
	MaxLoad    float64   `json:"maxLoad"`
	MinLoad    float64   `json:"minLoad"`
	Count      int       `json:"count"`
	IsOverload bool      `json:"isOverload"`
}

// PredictedSample is a synthetic future sample. Uncertainty holds the
// absolute magnitude of the noise injected into Load.
type PredictedSample struct {
	Sample
	IsPrediction bool    `json:"isPrediction"`
	Uncertainty  float64 `json:"uncertainty"`
}

// Granularity selects the reporting resolution of a historical view.
type Granularity string

const (
	GranularityFine    Granularity = "fine"
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
)

// Granularities lists the supported resolutions in display order.
var Granularities = []Granularity{GranularityFine, GranularityDaily, GranularityMonthly}

// ParseGranularity maps a request value onto a Granularity. "5min" is kept as
// an alias for fine because older chart clients still send it.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fine", "5min":
		return GranularityFine, nil
	case "daily":
		return GranularityDaily, nil
	case "monthly":
		return GranularityMonthly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
}

// Valid reports whether g is one of the known resolutions.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityFine, GranularityDaily, GranularityMonthly:
		return true
	}
	return false
}

// Label is the text shown on the view-selection control.
func (g Granularity) Label() string {
	switch g {
	case GranularityFine:
		return "fine interval"
	case GranularityDaily:
		return "daily"
	case GranularityMonthly:
		return "monthly"
	}
	return string(g)
}

// Series is the output of an aggregation. Samples is set for the fine
// resolution, Records for every other one.
type Series struct {
	Granularity Granularity        `json:"granularity"`
	Samples     []Sample           `json:"samples,omitempty"`
	Records     []AggregatedRecord `json:"records,omitempty"`
}

// Len returns the number of chart points in the series.
func (s Series) Len() int {
	if s.Granularity == GranularityFine {
		return len(s.Samples)
	}
	return len(s.Records)
}

// ShortTermView is recent history followed by a forecast continuing it.
type ShortTermView struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	History     []Sample          `json:"history"`
	Predictions []PredictedSample `json:"predictions"`
}

// Points concatenates history and forecast into a single chart series.
func (v ShortTermView) Points() []PredictedSample {
	points := make([]PredictedSample, 0, len(v.History)+len(v.Predictions))
	for _, s := range v.History {
		points = append(points, PredictedSample{Sample: s})
	}
	return append(points, v.Predictions...)
}
