package server

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/tejusbharadwaj/gridcast/internal/api"
	"github.com/tejusbharadwaj/gridcast/internal/engine"
	middleware "github.com/tejusbharadwaj/gridcast/internal/grpc/middlewares"
	"github.com/tejusbharadwaj/gridcast/internal/models"
	pb "github.com/tejusbharadwaj/gridcast/proto"
)

// ServiceName is the name the service is registered under, including with
// the health checker.
const ServiceName = "gridcast.v1.LoadProfileService"

// ServerConfig holds configuration options for the gRPC server
type ServerConfig struct {
	CacheSize       int           // Size of the LRU cache
	RateLimit       float64       // Requests per second
	RateLimitBurst  int           // Maximum burst size for rate limiting
	MaxRange        time.Duration // Longest historical range a request may ask for
	MaxHorizonHours float64       // Longest forecast a request may ask for
}

// DefaultServerConfig returns a ServerConfig with sensible defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		CacheSize:       1000,
		RateLimit:       5.0, // 5 requests per second
		RateLimitBurst:  10,  // Burst of 10 requests
		MaxRange:        defaultMaxRange,
		MaxHorizonHours: defaultMaxHorizon,
	}
}

func (c ServerConfig) withDefaults() ServerConfig {
	d := DefaultServerConfig()
	if c.CacheSize == 0 {
		c.CacheSize = d.CacheSize
	}
	if c.RateLimit == 0 {
		c.RateLimit = d.RateLimit
	}
	if c.RateLimitBurst == 0 {
		c.RateLimitBurst = d.RateLimitBurst
	}
	return c
}

// LiveViewSource provides the most recent short-term view.
type LiveViewSource interface {
	Snapshot() (models.ShortTermView, bool)
}

// LoadProfileService encapsulates business logic
type LoadProfileService struct {
	pb.UnimplementedLoadProfileServiceServer
	engine    *engine.Engine
	live      LiveViewSource
	predictor api.Predictor
	validator *RequestValidator
}

// NewLoadProfileService creates a new service instance. live and predictor
// may be nil, in which case the matching methods report Unavailable.
func NewLoadProfileService(
	eng *engine.Engine,
	live LiveViewSource,
	predictor api.Predictor,
	config ServerConfig,
) *LoadProfileService {
	return &LoadProfileService{
		engine:    eng,
		live:      live,
		predictor: predictor,
		validator: NewRequestValidator(config.MaxRange, config.MaxHorizonHours),
	}
}

// GetProfile generates the raw series for the requested range and rolls it
// up to the requested granularity.
func (s *LoadProfileService) GetProfile(
	ctx context.Context,
	req *pb.ProfileRequest,
) (*pb.ProfileResponse, error) {
	// Validate request
	granularity, err := s.validator.ValidateProfile(req.Start, req.End, req.Granularity)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	seed := s.engine.DefaultSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	samples := s.engine.Generate(req.Start, req.End, seed)
	series, err := s.engine.Aggregate(samples, granularity)
	if err != nil {
		if errors.Is(err, models.ErrInvalidGranularity) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "aggregation failed: %v", err)
	}

	return &pb.ProfileResponse{
		Granularity: string(series.Granularity),
		Seed:        seed,
		Samples:     series.Samples,
		Records:     series.Records,
	}, nil
}

// Forecast projects load from the supplied last sample, or builds the
// short-term view at the current time when none is supplied.
func (s *LoadProfileService) Forecast(
	ctx context.Context,
	req *pb.ForecastRequest,
) (*pb.ForecastResponse, error) {
	horizon := req.HorizonHours
	if horizon == 0 {
		horizon = s.engine.Params().ForecastHorizon.Hours()
	}

	if err := s.validator.ValidateForecast(req.Last, horizon); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if req.Last != nil {
		return &pb.ForecastResponse{
			GeneratedAt: s.engine.Now(),
			History:     []models.Sample{},
			Predictions: s.engine.Forecast(*req.Last, horizon),
		}, nil
	}

	return viewResponse(s.engine.ShortTermWithHorizon(s.engine.Now(), horizon)), nil
}

// GetLiveView returns the latest snapshot built by the scheduler.
func (s *LoadProfileService) GetLiveView(
	ctx context.Context,
	req *pb.LiveViewRequest,
) (*pb.ForecastResponse, error) {
	if s.live == nil {
		return nil, status.Error(codes.Unavailable, "live view is disabled")
	}
	view, ok := s.live.Snapshot()
	if !ok {
		return nil, status.Error(codes.Unavailable, "live view not ready")
	}
	return viewResponse(view), nil
}

// Predict forwards the input to the external model service. Failures there
// are reported to the caller and never affect the engine.
func (s *LoadProfileService) Predict(
	ctx context.Context,
	req *pb.PredictRequest,
) (*pb.PredictResponse, error) {
	if s.predictor == nil {
		return nil, status.Error(codes.Unavailable, "prediction service is not configured")
	}
	if req.Input == "" {
		return nil, status.Error(codes.InvalidArgument, "no input data provided")
	}

	prediction, err := s.predictor.Predict(ctx, req.Input)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "failed to get prediction: %v", err)
	}

	raw, err := protojson.Marshal(prediction)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode prediction: %v", err)
	}
	return &pb.PredictResponse{Prediction: raw}, nil
}

func viewResponse(view models.ShortTermView) *pb.ForecastResponse {
	return &pb.ForecastResponse{
		GeneratedAt: view.GeneratedAt,
		History:     view.History,
		Predictions: view.Predictions,
	}
}

// gRPC Server Configuration without the middleware (for development and debug only)
func ConfigureGRPCServer(
	svc *LoadProfileService,
	opts ...grpc.ServerOption,
) *grpc.Server {
	// Create gRPC server with optional configurations
	srv := grpc.NewServer(opts...)

	// Register service
	pb.RegisterLoadProfileServiceServer(srv, svc)

	return srv
}

// SetupServer initializes and configures the gRPC server with all middleware.
// Collectors are registered with reg. When health is non-nil it is
// registered as the gRPC health service and the load profile service is
// marked as serving.
func SetupServer(
	svc *LoadProfileService,
	config ServerConfig,
	logger *logrus.Logger,
	health *HealthChecker,
	reg prometheus.Registerer,
) (*grpc.Server, error) {
	config = config.withDefaults()

	// Initialize the cache
	caching, err := middleware.NewCachingInterceptor(config.CacheSize)
	if err != nil {
		return nil, err
	}

	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	rateLimiter := middleware.NewRateLimitingInterceptor(config.RateLimit, config.RateLimitBurst)

	// Create server with chained interceptors
	server := grpc.NewServer(
		grpc.UnaryInterceptor(
			chainUnaryInterceptors(
				middleware.ContextMiddleware,             // Add request ID first
				rateLimiter,                              // Rate limit early
				middleware.NewLoggingInterceptor(logger), // Log all requests (with request ID)
				metrics.Interceptor(),                    // Collect metrics
				caching,                                  // Cache last to avoid caching errors
			),
		),
	)

	// Register the load profile service
	pb.RegisterLoadProfileServiceServer(server, svc)
	if health != nil {
		health.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
		grpc_health_v1.RegisterHealthServer(server, health)
	}

	return server, nil
}

// chainUnaryInterceptors creates a single interceptor from multiple interceptors
func chainUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		chain := handler
		for i := len(interceptors) - 1; i >= 0; i-- {
			interceptor := interceptors[i]
			chainedInterceptor := chain
			chain = func(currentCtx context.Context, currentReq interface{}) (interface{}, error) {
				return interceptor(currentCtx, currentReq, info, chainedInterceptor)
			}
		}
		return chain(ctx, req)
	}
}
