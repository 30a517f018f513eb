package middleware

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/gridcast.v1.LoadProfileService/GetProfile"}

func okHandler(ctx context.Context, req interface{}) (interface{}, error) {
	return "ok", nil
}

func TestContextMiddleware(t *testing.T) {
	var seen string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = RequestIDFromContext(ctx)
		return nil, nil
	}

	_, err := ContextMiddleware(context.Background(), nil, testInfo, handler)
	require.NoError(t, err)
	assert.Len(t, seen, 36, "expected a generated uuid")

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "abc-123"))
	_, err = ContextMiddleware(ctx, nil, testInfo, handler)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", seen)
}

func TestRateLimitingInterceptor(t *testing.T) {
	interceptor := NewRateLimitingInterceptor(0.0001, 2)

	for i := 0; i < 2; i++ {
		resp, err := interceptor(context.Background(), nil, testInfo, okHandler)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
	}

	resp, err := interceptor(context.Background(), nil, testInfo, okHandler)
	assert.Nil(t, resp)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	interceptor := m.Interceptor()
	_, _ = interceptor(context.Background(), nil, testInfo, okHandler)
	_, _ = interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.InvalidArgument, "bad")
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GetProfile", "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GetProfile", "InvalidArgument")))

	// Registering twice on the same registry fails
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestLoggingInterceptor(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetOutput(io.Discard)
	interceptor := NewLoggingInterceptor(logger)

	ctx := WithRequestID(context.Background(), "req-1")
	_, err := interceptor(ctx, nil, testInfo, okHandler)
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, testInfo.FullMethod, entry.Data["method"])

	_, err = interceptor(ctx, nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
