package scheduler

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/gridcast/internal/engine"
)

func newTestScheduler(t *testing.T, now time.Time, uniform float64) (*Scheduler, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)

	eng := engine.New(
		engine.DefaultParams(),
		engine.WithClock(func() time.Time { return now }),
		engine.WithUniform(func() float64 { return uniform }),
	)

	s, err := NewScheduler(context.Background(), eng, logger, "", prometheus.NewRegistry())
	require.NoError(t, err)
	return s, hook
}

func TestSnapshot_EmptyBeforeRefresh(t *testing.T) {
	s, _ := newTestScheduler(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), 0.5)

	_, ok := s.Snapshot()
	assert.False(t, ok)
}

func TestRefresh(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s, hook := newTestScheduler(t, now, 0.5)

	readyCalls := 0
	s.OnReady(func() { readyCalls++ })

	s.Refresh()
	s.Refresh()

	view, ok := s.Snapshot()
	require.True(t, ok)
	assert.Equal(t, now, view.GeneratedAt)
	assert.Len(t, view.History, 72)
	assert.Len(t, view.Predictions, 288)
	assert.Equal(t, 1, readyCalls)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.refreshes))
	assert.Equal(t, view.History[71].Load, testutil.ToFloat64(s.metrics.load))
	assert.Greater(t, testutil.ToFloat64(s.metrics.forecastPeak), 0.0)

	// Overloaded forecasts are logged as warnings.
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	if testutil.ToFloat64(s.metrics.overloadCount) > 0 {
		assert.Equal(t, logrus.WarnLevel, entry.Level)
	} else {
		assert.Equal(t, logrus.DebugLevel, entry.Level)
	}
}

func TestStart_InvalidSchedule(t *testing.T) {
	s, _ := newTestScheduler(t, time.Now(), 0.5)
	s.schedule = "not a schedule"

	assert.Error(t, s.Start())
}

func TestStart_StopsWithContext(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	ctx, cancel := context.WithCancel(context.Background())

	s, err := NewScheduler(ctx, engine.New(engine.DefaultParams()), logger, DefaultSchedule, prometheus.NewRegistry())
	require.NoError(t, err)

	require.NoError(t, s.Start())
	_, ok := s.Snapshot()
	assert.True(t, ok, "Start builds the first snapshot immediately")

	cancel()
}

func TestNewScheduler_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	logger := logrus.New()
	eng := engine.New(engine.DefaultParams())

	_, err := NewScheduler(context.Background(), eng, logger, "", reg)
	require.NoError(t, err)

	_, err = NewScheduler(context.Background(), eng, logger, "", reg)
	assert.Error(t, err)
}
