// Package gridcast implements a synthetic grid load profile and short-term
// forecasting service.
//
// # Architecture
//
// The service is structured into several key packages:
//   - engine: Duck-curve generator, calendar aggregator and heuristic forecaster
//   - models: Shared data structures
//   - grpc: gRPC service implementation, middleware and health checks
//   - httpapi: JSON gateway for chart front ends
//   - api: Client for the external prediction model
//   - scheduler: Periodic rebuild of the live short-term view
//   - config: YAML and environment configuration, logger setup
//
// Key Features
//
//   - Profiles:
//     Load and solar output at a fixed cadence for any time range.
//     A seed makes a profile reproducible; without one the current
//     instant is used.
//
//   - Roll-ups:
//     Fine series are returned as-is. Daily and monthly views carry
//     mean, max and min load per calendar bucket.
//
//   - Forecasts:
//     Time-of-day multipliers applied to the last known load, with a
//     bounded random perturbation reported as the point's uncertainty.
//
// Example Usage
//
//	client := pb.NewLoadProfileServiceClient(conn)
//	seed := int64(42)
//	resp, err := client.GetProfile(ctx, &pb.ProfileRequest{
//	    Start:       start,
//	    End:         start.Add(24 * time.Hour),
//	    Granularity: "daily",
//	    Seed:        &seed,
//	})
//
// For more information about specific packages, see their respective
// documentation.
package gridcast
