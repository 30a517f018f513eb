package engine

import (
	"math"
	"time"

	"github.com/tejusbharadwaj/gridcast/internal/models"
)

// uncertaintyBand is the full width of the symmetric noise, as a fraction of
// the predicted load.
const uncertaintyBand = 0.1

// loadMultiplier is the time-of-day factor applied to the last observed load.
func loadMultiplier(h int) float64 {
	switch {
	case h >= 6 && h < 10: // morning ramp
		return 1.2
	case h >= 10 && h < 16: // midday solar dip
		return 0.85
	case h >= 16 && h < 20: // evening peak
		return 1.3
	default:
		return 0.7
	}
}

// Forecast projects load forward from last for horizonHours. Points start
// one cadence after last and are spaced by the cadence. A negative or
// non-finite horizon yields no points.
func (e *Engine) Forecast(last models.Sample, horizonHours float64) []models.PredictedSample {
	if math.IsNaN(horizonHours) || math.IsInf(horizonHours, 0) || horizonHours <= 0 {
		return []models.PredictedSample{}
	}

	points := int(math.Floor(horizonHours * float64(time.Hour) / float64(e.params.Cadence)))
	predictions := make([]models.PredictedSample, 0, points)
	for i := 1; i <= points; i++ {
		ts := last.Timestamp.Add(time.Duration(i) * e.params.Cadence)
		predicted := last.Load * loadMultiplier(e.hour(ts))

		n := (e.uniform() - 0.5) * uncertaintyBand * predicted
		load := math.Round(predicted + n)

		predictions = append(predictions, models.PredictedSample{
			Sample: models.Sample{
				Timestamp:  ts,
				Load:       load,
				IsOverload: e.overload(load),
			},
			IsPrediction: true,
			Uncertainty:  math.Abs(n),
		})
	}
	return predictions
}

// ShortTerm builds the recent-history-plus-forecast view ending at now.
// History covers the configured window and is seeded from the clock; the
// forecast continues from the last history sample.
func (e *Engine) ShortTerm(now time.Time) models.ShortTermView {
	return e.ShortTermWithHorizon(now, e.params.ForecastHorizon.Hours())
}

// ShortTermWithHorizon is ShortTerm with an explicit forecast horizon.
func (e *Engine) ShortTermWithHorizon(now time.Time, horizonHours float64) models.ShortTermView {
	history := e.Generate(now.Add(-e.params.HistoryWindow), now, now.UnixMilli())
	view := models.ShortTermView{
		GeneratedAt: now,
		History:     history,
		Predictions: []models.PredictedSample{},
	}
	if len(history) > 0 {
		view.Predictions = e.Forecast(history[len(history)-1], horizonHours)
	}
	return view
}
