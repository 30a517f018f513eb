package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/gridcast/internal/models"
)

func TestAggregate_DailyTwoDays(t *testing.T) {
	eng := New(DefaultParams())
	start := mustParse(t, "2024-01-01T00:00:00Z")
	samples := eng.Generate(start, start.Add(48*time.Hour), 42)
	require.Len(t, samples, 576)

	series, err := eng.Aggregate(samples, models.GranularityDaily)
	require.NoError(t, err)

	require.Len(t, series.Records, 2)
	assert.Nil(t, series.Samples)
	assert.Equal(t, models.GranularityDaily, series.Granularity)
	for i, r := range series.Records {
		assert.Equal(t, 288, r.Count)
		assert.Equal(t, start.Add(time.Duration(i)*24*time.Hour), r.Timestamp)
	}
}

func TestAggregate_Monthly(t *testing.T) {
	eng := New(DefaultParams())
	start := mustParse(t, "2024-01-30T00:00:00Z")
	samples := eng.Generate(start, start.Add(72*time.Hour), 5)

	series, err := eng.Aggregate(samples, models.GranularityMonthly)
	require.NoError(t, err)

	require.Len(t, series.Records, 2)
	assert.Equal(t, 576, series.Records[0].Count)
	assert.Equal(t, 288, series.Records[1].Count)
	assert.Equal(t, mustParse(t, "2024-02-01T00:00:00Z"), series.Records[1].Timestamp)
}

func TestAggregate_PartitionLaw(t *testing.T) {
	eng := New(DefaultParams())
	start := mustParse(t, "2023-12-28T13:35:00Z")

	for _, g := range []models.Granularity{models.GranularityDaily, models.GranularityMonthly} {
		for _, hours := range []int{1, 23, 25, 24 * 9, 24 * 40} {
			samples := eng.Generate(start, start.Add(time.Duration(hours)*time.Hour), int64(hours))

			series, err := eng.Aggregate(samples, g)
			require.NoError(t, err)

			total := 0
			for _, r := range series.Records {
				assert.GreaterOrEqual(t, r.Count, 1)
				assert.Equal(t, r.MaxLoad > 15000, r.IsOverload)
				assert.LessOrEqual(t, r.MinLoad, r.Load)
				assert.GreaterOrEqual(t, r.MaxLoad, r.Load)
				total += r.Count
			}
			assert.Equal(t, len(samples), total, "granularity %s, %d hours", g, hours)
		}
	}
}

func TestAggregate_FineIsIdentity(t *testing.T) {
	eng := New(DefaultParams())
	start := mustParse(t, "2024-01-01T00:00:00Z")
	samples := eng.Generate(start, start.Add(3*time.Hour), 11)

	series, err := eng.Aggregate(samples, models.GranularityFine)
	require.NoError(t, err)

	assert.Equal(t, samples, series.Samples)
	assert.Nil(t, series.Records)
	assert.Equal(t, len(samples), series.Len())
}

func TestAggregate_EdgeCases(t *testing.T) {
	eng := New(DefaultParams())
	ts := mustParse(t, "2024-05-05T10:00:00Z")

	t.Run("empty input", func(t *testing.T) {
		series, err := eng.Aggregate(nil, models.GranularityDaily)
		require.NoError(t, err)
		assert.Empty(t, series.Records)
		assert.Zero(t, series.Len())
	})

	t.Run("single sample bucket", func(t *testing.T) {
		sample := models.Sample{Timestamp: ts, Load: 15500, Solar: 3200, IsOverload: true}

		series, err := eng.Aggregate([]models.Sample{sample}, models.GranularityMonthly)
		require.NoError(t, err)

		require.Len(t, series.Records, 1)
		assert.Equal(t, models.AggregatedRecord{
			Timestamp:  ts,
			Load:       15500,
			Solar:      3200,
			MaxLoad:    15500,
			MinLoad:    15500,
			Count:      1,
			IsOverload: true,
		}, series.Records[0])
	})

	t.Run("mean is rounded", func(t *testing.T) {
		samples := []models.Sample{
			{Timestamp: ts, Load: 10000, Solar: 1},
			{Timestamp: ts.Add(5 * time.Minute), Load: 10001, Solar: 2},
		}

		series, err := eng.Aggregate(samples, models.GranularityDaily)
		require.NoError(t, err)

		require.Len(t, series.Records, 1)
		assert.Equal(t, 10001.0, series.Records[0].Load)
		assert.Equal(t, 2.0, series.Records[0].Solar)
		assert.Equal(t, 10000.0, series.Records[0].MinLoad)
		assert.Equal(t, 10001.0, series.Records[0].MaxLoad)
	})

	t.Run("first seen order", func(t *testing.T) {
		later := ts.Add(48 * time.Hour)
		samples := []models.Sample{
			{Timestamp: later, Load: 1},
			{Timestamp: ts, Load: 2},
			{Timestamp: later.Add(time.Hour), Load: 3},
		}

		series, err := eng.Aggregate(samples, models.GranularityDaily)
		require.NoError(t, err)

		require.Len(t, series.Records, 2)
		assert.Equal(t, later, series.Records[0].Timestamp)
		assert.Equal(t, 2, series.Records[0].Count)
		assert.Equal(t, ts, series.Records[1].Timestamp)
	})

	t.Run("unknown granularity", func(t *testing.T) {
		_, err := eng.Aggregate([]models.Sample{{Timestamp: ts}}, models.Granularity("weekly"))
		assert.ErrorIs(t, err, models.ErrInvalidGranularity)
	})
}

func TestAggregate_BucketsInConfiguredLocation(t *testing.T) {
	params := DefaultParams()
	params.Location = time.FixedZone("UTC+2", 2*60*60)
	eng := New(params)
	start := mustParse(t, "2024-01-01T00:00:00Z")
	samples := eng.Generate(start, start.Add(48*time.Hour), 42)

	series, err := eng.Aggregate(samples, models.GranularityDaily)
	require.NoError(t, err)

	require.Len(t, series.Records, 3)
	assert.Equal(t, 264, series.Records[0].Count)
	assert.Equal(t, 288, series.Records[1].Count)
	assert.Equal(t, 24, series.Records[2].Count)
}
