// Package internal holds the sleepchart service.
//
// # Architecture
//
//   - timeline: smoothing, stage merge and axis helpers; pure functions
//   - models: shared data structures
//   - api: upstream health API client and historical backfill
//   - database: TimescaleDB storage
//   - chart: builds renderer-ready charts from stored data
//   - grpc: gRPC service, interceptors and health checks
//   - httpapi: JSON endpoints, /healthz and /metrics
//   - scheduler: periodic fetches
//
// # Charts
//
// The sleep chart uses the heart-rate samples as its time axis. Each point
// carries the smoothed heart rate, the night's resting heart rate and, when
// an interval covers it, the sleep stage level and color. Time ticks fall on
// quarter hours of the configured timezone.
//
// Example Usage
//
//	client := pb.NewSleepChartServiceClient(conn)
//	resp, err := client.GetSleepChart(ctx, &pb.SleepChartRequest{
//	    Start:           timestamppb.New(start),
//	    End:             timestamppb.New(end),
//	    SmoothingWindow: 9,
//	})
package internal
