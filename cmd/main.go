package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/tejusbharadwaj/gridcast/internal/api"
	"github.com/tejusbharadwaj/gridcast/internal/config"
	"github.com/tejusbharadwaj/gridcast/internal/engine"
	server "github.com/tejusbharadwaj/gridcast/internal/grpc"
	"github.com/tejusbharadwaj/gridcast/internal/httpapi"
	"github.com/tejusbharadwaj/gridcast/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

// Command gridcast serves synthetic grid load profiles and short-term load
// forecasts over gRPC and a JSON gateway.
//
// The service supports:
//   - Deterministic duck-curve load and solar profiles for any time range
//   - Fine, daily and monthly roll-ups
//   - Heuristic forecasts with per-point uncertainty
//   - A live short-term view refreshed on a cron schedule
//   - Forwarding of free-form inputs to an external prediction model
//
// Usage:
//
//	gridcast [flags]
//
// The flags are:
//
//	-config string
//	      path to config file (defaults and GRIDCAST_* env when empty)
//	-cache-size int
//	      override the LRU cache size
//	-rate-limit float
//	      override the rate limit in requests per second
//	-rate-limit-burst int
//	      override the rate limit burst
//	-print-config
//	      print the effective configuration and exit
func main() {
	// Parse command line flags
	flags := parseFlags()

	// Load configuration
	appConfig, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	flags.apply(appConfig)

	if flags.PrintConfig {
		out, err := appConfig.YAML()
		if err != nil {
			log.Fatalf("Failed to encode configuration: %v", err)
		}
		fmt.Print(string(out))
		return
	}

	logger, err := config.NewLogger(appConfig.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	params, err := appConfig.Engine.Params()
	if err != nil {
		logger.Fatalf("Invalid engine configuration: %v", err)
	}
	eng := engine.New(params)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Create a context that will be canceled on shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	health := server.NewHealthChecker()

	var live server.LiveViewSource
	var sched *scheduler.Scheduler
	if appConfig.Scheduler.Enabled {
		sched, err = scheduler.NewScheduler(ctx, eng, logger, appConfig.Scheduler.Schedule, registry)
		if err != nil {
			logger.Fatalf("Failed to create scheduler: %v", err)
		}
		sched.OnReady(func() {
			health.SetServingStatus(server.LiveViewServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
		})
		live = sched
	}

	var predictor api.Predictor
	if appConfig.Predictor.URL != "" {
		predictor = api.NewPredictionClient(appConfig.Predictor.URL, appConfig.Predictor.Timeout, logger)
	}

	serverConfig := server.ServerConfig{
		CacheSize:      appConfig.Server.CacheSize,
		RateLimit:      appConfig.Server.RateLimit,
		RateLimitBurst: appConfig.Server.RateLimitBurst,
		MaxRange:       appConfig.Server.MaxRange,
	}
	svc := server.NewLoadProfileService(eng, live, predictor, serverConfig)

	srv, err := server.SetupServer(svc, serverConfig, logger, health, registry)
	if err != nil {
		logger.Fatalf("Failed to setup server: %v", err)
	}

	// Start listening
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.Port))
	if err != nil {
		logger.Fatalf("Failed to listen: %v", err)
	}

	errChan := make(chan error, 2)

	if sched != nil {
		if err := sched.Start(); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	var httpServer *http.Server
	if appConfig.HTTP.Enabled {
		router := httpapi.NewRouter(svc, logger, httpapi.Options{
			RateLimit:      appConfig.Server.RateLimit,
			RateLimitBurst: appConfig.Server.RateLimitBurst,
			Gatherer:       registry,
		})
		httpServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.HTTP.Port),
			Handler:           httpapi.WithCORS(router, appConfig.HTTP.AllowedOrigins),
			ReadHeaderTimeout: 5 * time.Second,
		}

		logger.WithFields(logrus.Fields{
			"port": appConfig.HTTP.Port,
		}).Info("Starting HTTP gateway")

		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("http server error: %w", err)
			}
		}()
	}

	// Handle shutdown gracefully
	go handleShutdown(ctx, cancel, srv, httpServer, health, logger)

	logger.WithFields(logrus.Fields{
		"port": appConfig.Server.Port,
	}).Info("Starting gRPC server")

	go func() {
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
			return
		}
		errChan <- nil
	}()

	// Wait for the gRPC server to stop or a background error
	if err := <-errChan; err != nil {
		logger.Fatalf("Service error: %v", err)
	}
	logger.Info("Server stopped")
}

type Flags struct {
	ConfigPath     string
	CacheSize      int
	RateLimit      float64
	RateLimitBurst int
	PrintConfig    bool
}

func parseFlags() *Flags {
	f := &Flags{}

	flag.StringVar(&f.ConfigPath, "config", "", "Path to the YAML config file")
	flag.IntVar(&f.CacheSize, "cache-size", 0, "Size of the LRU cache (overrides config)")
	flag.Float64Var(&f.RateLimit, "rate-limit", 0, "Rate limit in requests per second (overrides config)")
	flag.IntVar(&f.RateLimitBurst, "rate-limit-burst", 0, "Maximum burst size for rate limiting (overrides config)")
	flag.BoolVar(&f.PrintConfig, "print-config", false, "Print the effective configuration and exit")

	flag.Parse()

	return f
}

// apply copies explicitly set flags over the loaded configuration.
func (f *Flags) apply(c *config.Config) {
	if f.CacheSize > 0 {
		c.Server.CacheSize = f.CacheSize
	}
	if f.RateLimit > 0 {
		c.Server.RateLimit = f.RateLimit
	}
	if f.RateLimitBurst > 0 {
		c.Server.RateLimitBurst = f.RateLimitBurst
	}
}

// Handle graceful shutdown
func handleShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	srv *grpc.Server,
	httpServer *http.Server,
	health *server.HealthChecker,
	logger *logrus.Logger,
) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		logger.Info("Context canceled, initiating shutdown")
	case sig := <-sigChan:
		logger.Infof("Received signal %v, initiating shutdown", sig)
	}

	// Watchers see NOT_SERVING before connections drain
	health.Shutdown()

	// Stops the scheduler
	cancel()

	if httpServer != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("HTTP gateway did not shut down cleanly")
		}
	}

	logger.Info("Gracefully stopping server...")
	srv.GracefulStop()
}
