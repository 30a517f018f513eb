package engine

import (
	"math"
	"time"

	"github.com/tejusbharadwaj/gridcast/internal/models"
)

// solarSeedOffset decorrelates the solar noise from the load noise of the
// same sample.
const solarSeedOffset = 24

// noise maps (seed, index) onto [lo, hi). It only has to be repeatable,
// not uniform.
func noise(lo, hi float64, key int64) float64 {
	x := math.Sin(float64(key)) * 10000
	return (x-math.Floor(x))*(hi-lo) + lo
}

// Generate returns the samples in [start, end) at the configured cadence.
// A range where end is not after start yields an empty slice.
func (e *Engine) Generate(start, end time.Time, seed int64) []models.Sample {
	if !end.After(start) {
		return []models.Sample{}
	}

	intervals := int(end.Sub(start) / e.params.Cadence)
	samples := make([]models.Sample, intervals)
	for i := 0; i < intervals; i++ {
		ts := start.Add(time.Duration(i) * e.params.Cadence)
		key := seed + int64(i)
		h := e.hour(ts)

		load := math.Round(baseLoad(h, key))
		solar := math.Round(solarOutput(h, key+solarSeedOffset))

		samples[i] = models.Sample{
			Timestamp:  ts,
			Load:       load,
			Solar:      solar,
			IsOverload: e.overload(load),
		}
	}
	return samples
}

// baseLoad is the duck-curve demand for hour h.
func baseLoad(h int, key int64) float64 {
	hour := float64(h)
	switch {
	case h < 4:
		return 10000 + noise(-500, 500, key)
	case h < 7:
		return 10000 + (hour-4)*1500 + noise(-300, 300, key)
	case h < 16:
		return 14500 - 3000*math.Sin((hour-7)*math.Pi/9) + noise(-500, 500, key)
	case h < 20:
		return 14000 + 3000*((hour-16)/4) + noise(-300, 300, key)
	default:
		return 17000 - 7000*((hour-20)/4) + noise(-500, 500, key)
	}
}

// solarOutput is zero outside 06:00-18:59.
func solarOutput(h int, key int64) float64 {
	if h < 6 || h > 18 {
		return 0
	}
	peak := math.Sin(float64(h-6) * math.Pi / 12)
	return math.Max(0, 6000*peak*noise(0.8, 1.2, key))
}
