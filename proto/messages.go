// Package proto defines the wire contract of the gridcast.v1 load profile
// service: request and response messages, the service descriptor and a
// typed client. Messages are encoded with the JSON codec registered in this
// package.
package proto

import (
	"encoding/json"
	"time"

	"github.com/tejusbharadwaj/gridcast/internal/models"
)

type ProfileRequest struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Granularity string    `json:"granularity"`
	Seed        *int64    `json:"seed,omitempty"`
}

// Cacheable reports whether the response is reproducible. Without an
// explicit seed the series depends on the current instant.
func (r *ProfileRequest) Cacheable() bool {
	return r.Seed != nil
}

type ProfileResponse struct {
	Granularity string                    `json:"granularity"`
	Seed        int64                     `json:"seed"`
	Samples     []models.Sample           `json:"samples,omitempty"`
	Records     []models.AggregatedRecord `json:"records,omitempty"`
}

// ForecastRequest asks for a forecast following Last. When Last is nil the
// server builds the short-term view ending at its current time. A zero
// HorizonHours selects the configured default.
type ForecastRequest struct {
	Last         *models.Sample `json:"last,omitempty"`
	HorizonHours float64        `json:"horizonHours,omitempty"`
}

type ForecastResponse struct {
	GeneratedAt time.Time                `json:"generatedAt"`
	History     []models.Sample          `json:"history"`
	Predictions []models.PredictedSample `json:"predictions"`
}

type LiveViewRequest struct{}

type PredictRequest struct {
	Input string `json:"input"`
}

type PredictResponse struct {
	Prediction json.RawMessage `json:"prediction"`
}
