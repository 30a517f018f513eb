package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestGenerate_FirstHourScenario(t *testing.T) {
	eng := New(DefaultParams())
	start := mustParse(t, "2024-01-01T00:00:00Z")
	end := mustParse(t, "2024-01-01T01:00:00Z")

	samples := eng.Generate(start, end, 42)

	require.Len(t, samples, 12)
	for _, s := range samples {
		assert.Equal(t, 0, s.Timestamp.Hour())
		assert.InDelta(t, 10000, s.Load, 500)
		assert.Zero(t, s.Solar)
		assert.False(t, s.IsOverload)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	eng := New(DefaultParams())
	start := mustParse(t, "2024-06-01T00:00:00Z")
	end := start.Add(48 * time.Hour)

	first := eng.Generate(start, end, 1717200000000)
	second := eng.Generate(start, end, 1717200000000)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, eng.Generate(start, end, 7))
}

func TestGenerate_LengthLaw(t *testing.T) {
	eng := New(DefaultParams())
	start := mustParse(t, "2024-03-10T00:00:00Z")

	tests := []struct {
		name     string
		duration time.Duration
		want     int
	}{
		{name: "one interval", duration: 5 * time.Minute, want: 1},
		{name: "partial interval", duration: 4 * time.Minute, want: 0},
		{name: "uneven range", duration: 62 * time.Minute, want: 12},
		{name: "one day", duration: 24 * time.Hour, want: 288},
		{name: "one week", duration: 7 * 24 * time.Hour, want: 2016},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := eng.Generate(start, start.Add(tt.duration), 3)
			assert.Len(t, samples, tt.want)
		})
	}
}

func TestGenerate_EmptyRange(t *testing.T) {
	eng := New(DefaultParams())
	start := mustParse(t, "2024-01-01T00:00:00Z")

	equal := eng.Generate(start, start, 1)
	assert.NotNil(t, equal)
	assert.Empty(t, equal)

	reversed := eng.Generate(start, start.Add(-time.Hour), 1)
	assert.NotNil(t, reversed)
	assert.Empty(t, reversed)
}

func TestGenerate_Cadence(t *testing.T) {
	eng := New(DefaultParams())
	start := mustParse(t, "2024-01-01T00:00:00Z")

	samples := eng.Generate(start, start.Add(72*time.Hour), 99)

	require.NotEmpty(t, samples)
	assert.Equal(t, start, samples[0].Timestamp)
	for i := 1; i < len(samples); i++ {
		assert.Equal(t, 5*time.Minute, samples[i].Timestamp.Sub(samples[i-1].Timestamp))
	}
}

func TestGenerate_ProfileShape(t *testing.T) {
	eng := New(DefaultParams())
	start := mustParse(t, "2024-07-01T00:00:00Z")

	samples := eng.Generate(start, start.Add(24*time.Hour), 2024)
	require.Len(t, samples, 288)

	for _, s := range samples {
		h := s.Timestamp.Hour()

		assert.GreaterOrEqual(t, s.Load, 0.0)
		assert.GreaterOrEqual(t, s.Solar, 0.0)
		assert.Equal(t, s.Load > 15000, s.IsOverload, "overload flag at %s", s.Timestamp)

		if h < 6 || h > 18 {
			assert.Zero(t, s.Solar, "solar at %s", s.Timestamp)
		}
		if h == 12 {
			assert.InDelta(t, 6000, s.Solar, 1200)
		}
		if h == 20 {
			// evening peak sits well above the threshold
			assert.True(t, s.IsOverload)
		}
	}
}

func TestGenerate_UsesConfiguredLocation(t *testing.T) {
	params := DefaultParams()
	params.Location = time.FixedZone("UTC+2", 2*60*60)
	eng := New(params)

	// 22:00 UTC is midnight in UTC+2, so the night branch applies.
	start := mustParse(t, "2024-01-01T22:00:00Z")
	samples := eng.Generate(start, start.Add(time.Hour), 42)

	require.Len(t, samples, 12)
	for _, s := range samples {
		assert.InDelta(t, 10000, s.Load, 500)
	}
}

func TestNoise_Bounds(t *testing.T) {
	for key := int64(0); key < 10000; key++ {
		v := noise(-300, 300, key)
		assert.GreaterOrEqual(t, v, -300.0)
		assert.Less(t, v, 300.0)
	}
	assert.Equal(t, noise(0.8, 1.2, 17), noise(0.8, 1.2, 17))
}

func TestDefaultSeed_UsesClock(t *testing.T) {
	now := mustParse(t, "2024-01-01T12:00:00Z")
	eng := New(DefaultParams(), WithClock(func() time.Time { return now }))

	assert.Equal(t, now.UnixMilli(), eng.DefaultSeed())
	assert.Equal(t, now, eng.Now())
}
