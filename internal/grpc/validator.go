package server

import (
	"fmt"
	"time"

	"github.com/tejusbharadwaj/gridcast/internal/models"
)

const (
	defaultMaxRange   = 2 * 365 * 24 * time.Hour
	defaultMaxHorizon = 7 * 24.0
)

type RequestValidator struct {
	maxRange   time.Duration
	maxHorizon float64
}

func NewRequestValidator(maxRange time.Duration, maxHorizonHours float64) *RequestValidator {
	if maxRange <= 0 {
		maxRange = defaultMaxRange
	}
	if maxHorizonHours <= 0 {
		maxHorizonHours = defaultMaxHorizon
	}
	return &RequestValidator{
		maxRange:   maxRange,
		maxHorizon: maxHorizonHours,
	}
}

// ValidateProfile checks the parameters of a historical view and returns
// the requested granularity. An empty range is valid.
func (v *RequestValidator) ValidateProfile(start, end time.Time, granularity string) (models.Granularity, error) {
	// Validate timestamps are present
	if start.IsZero() || end.IsZero() || start.Equal(time.Unix(0, 0)) || end.Equal(time.Unix(0, 0)) {
		return "", fmt.Errorf("missing timestamp")
	}

	// Validate time range
	if start.After(end) {
		return "", fmt.Errorf("start time must be before end time")
	}

	// Validate maximum time range
	if end.Sub(start) > v.maxRange {
		return "", fmt.Errorf("time range exceeds maximum allowed")
	}

	// Validate granularity
	if granularity == "" {
		return "", fmt.Errorf("invalid granularity: ")
	}
	g, err := models.ParseGranularity(granularity)
	if err != nil {
		return "", fmt.Errorf("invalid granularity: %s", granularity)
	}

	return g, nil
}

// ValidateForecast checks the optional last sample and the horizon of a
// forecast request. Negative horizons are left to the engine, which
// returns no points for them.
func (v *RequestValidator) ValidateForecast(last *models.Sample, horizonHours float64) error {
	if horizonHours > v.maxHorizon {
		return fmt.Errorf("horizon exceeds maximum of %g hours", v.maxHorizon)
	}
	if last == nil {
		return nil
	}
	if last.Timestamp.IsZero() {
		return fmt.Errorf("missing timestamp")
	}
	if last.Load < 0 {
		return fmt.Errorf("load must not be negative")
	}
	return nil
}
