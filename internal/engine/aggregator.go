package engine

import (
	"fmt"
	"math"

	"github.com/tejusbharadwaj/gridcast/internal/models"
)

// bucket accumulates the samples of one calendar key.
type bucket struct {
	record   models.AggregatedRecord
	loadSum  float64
	solarSum float64
}

// Aggregate folds samples into daily or monthly buckets. The fine
// granularity returns the input slice unchanged.
func (e *Engine) Aggregate(samples []models.Sample, granularity models.Granularity) (models.Series, error) {
	layout, err := bucketLayout(granularity)
	if err != nil {
		return models.Series{}, err
	}
	if granularity == models.GranularityFine {
		return models.Series{Granularity: granularity, Samples: samples}, nil
	}

	index := make(map[string]int)
	buckets := make([]*bucket, 0)
	for _, s := range samples {
		key := s.Timestamp.In(e.params.Location).Format(layout)
		i, ok := index[key]
		if !ok {
			index[key] = len(buckets)
			buckets = append(buckets, &bucket{
				record: models.AggregatedRecord{
					Timestamp: s.Timestamp,
					MaxLoad:   s.Load,
					MinLoad:   s.Load,
				},
			})
			i = len(buckets) - 1
		}

		b := buckets[i]
		b.loadSum += s.Load
		b.solarSum += s.Solar
		b.record.Count++
		b.record.MaxLoad = math.Max(b.record.MaxLoad, s.Load)
		b.record.MinLoad = math.Min(b.record.MinLoad, s.Load)
	}

	records := make([]models.AggregatedRecord, len(buckets))
	for i, b := range buckets {
		r := b.record
		r.Load = math.Round(b.loadSum / float64(r.Count))
		r.Solar = math.Round(b.solarSum / float64(r.Count))
		r.IsOverload = e.overload(r.MaxLoad)
		records[i] = r
	}
	return models.Series{Granularity: granularity, Records: records}, nil
}

// bucketLayout returns the time layout whose formatted value is the bucket key.
func bucketLayout(g models.Granularity) (string, error) {
	switch g {
	case models.GranularityFine:
		return "", nil
	case models.GranularityDaily:
		return "2006-01-02", nil
	case models.GranularityMonthly:
		return "2006-01", nil
	}
	return "", fmt.Errorf("%w: %q", models.ErrInvalidGranularity, g)
}
