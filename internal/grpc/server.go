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
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/tejusbharadwaj/sleepchart/internal/chart"
	middleware "github.com/tejusbharadwaj/sleepchart/internal/grpc/middlewares"
	"github.com/tejusbharadwaj/sleepchart/internal/models"
	pb "github.com/tejusbharadwaj/sleepchart/proto"
)

// ServerConfig holds configuration options for the gRPC server
type ServerConfig struct {
	CacheSize      int           // Size of the LRU cache
	CacheTTL       time.Duration // Age after which cached responses are refreshed
	RateLimit      float64       // Requests per second
	RateLimitBurst int           // Maximum burst size for rate limiting

	Logger     *logrus.Logger
	Registerer prometheus.Registerer
	Health     *HealthChecker
}

// DefaultServerConfig returns a ServerConfig with sensible defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		CacheSize:      1000,
		CacheTTL:       5 * time.Minute,
		RateLimit:      5.0, // 5 requests per second
		RateLimitBurst: 10,  // Burst of 10 requests
		Logger:         logrus.StandardLogger(),
		Registerer:     prometheus.DefaultRegisterer,
	}
}

// ChartService builds charts from stored data.
type ChartService interface {
	SleepChart(ctx context.Context, start, end time.Time, window int) (*models.SleepChart, error)
	RestingHeartRate(ctx context.Context, start, end time.Time) (*models.RestingHistory, error)
}

// SleepChartService exposes ChartService over gRPC.
type SleepChartService struct {
	pb.UnimplementedSleepChartServiceServer
	charts ChartService
}

func NewSleepChartService(charts ChartService) *SleepChartService {
	return &SleepChartService{charts: charts}
}

func (s *SleepChartService) GetSleepChart(
	ctx context.Context,
	req *pb.SleepChartRequest,
) (*pb.SleepChartResponse, error) {
	c, err := s.charts.SleepChart(ctx, req.Start.AsTime(), req.End.AsTime(), int(req.SmoothingWindow))
	if err != nil {
		return nil, toStatus(err)
	}
	return toSleepChartResponse(c), nil
}

func (s *SleepChartService) GetRestingHeartRate(
	ctx context.Context,
	req *pb.RestingHeartRateRequest,
) (*pb.RestingHeartRateResponse, error) {
	history, err := s.charts.RestingHeartRate(ctx, req.Start.AsTime(), req.End.AsTime())
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.RestingHeartRateResponse{
		Points: make([]*pb.RestingPoint, len(history.Points)),
		Domain: &pb.AxisDomain{Min: history.Domain.Min, Max: history.Domain.Max},
	}
	for i, p := range history.Points {
		resp.Points[i] = &pb.RestingPoint{Date: p.Date, RestingHeartRate: p.RestingHeartRate}
	}
	return resp, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, chart.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Errorf(codes.Internal, "query failed: %v", err)
	}
}

func toSleepChartResponse(c *models.SleepChart) *pb.SleepChartResponse {
	resp := &pb.SleepChartResponse{
		Points:           make([]*pb.ChartPoint, len(c.Points)),
		HeartRateDomain:  &pb.AxisDomain{Min: c.HeartRateDomain.Min, Max: c.HeartRateDomain.Max},
		Ticks:            c.Ticks,
		Stages:           make([]*pb.StageLegend, len(c.Stages)),
		RestingHeartRate: c.RestingHeartRate,
		Metadata: &pb.SleepMetadata{
			TotalAwakeTimeMinutes: int32(c.Metadata.TotalAwakeTimeMinutes),
		},
	}
	if !c.Metadata.StartTime.IsZero() {
		resp.Metadata.Start = timestamppb.New(c.Metadata.StartTime)
	}
	if !c.Metadata.EndTime.IsZero() {
		resp.Metadata.End = timestamppb.New(c.Metadata.EndTime)
	}

	for i, p := range c.Points {
		point := &pb.ChartPoint{
			Time:             p.Time,
			HeartRate:        p.HeartRate,
			RestingHeartRate: p.RestingHeartRate,
			SleepColor:       p.SleepColor,
		}
		if p.SleepStage != nil {
			level := int32(*p.SleepStage)
			point.SleepStage = &level
		}
		resp.Points[i] = point
	}
	for i, s := range c.Stages {
		resp.Stages[i] = &pb.StageLegend{Name: s.Name, Level: int32(s.Level), Color: s.Color}
	}
	return resp
}

// ConfigureGRPCServer registers the chart service on a bare server, without
// the interceptor chain or health service. Used for debugging and tests.
func ConfigureGRPCServer(
	charts ChartService,
	opts ...grpc.ServerOption,
) *grpc.Server {
	srv := grpc.NewServer(opts...)
	pb.RegisterSleepChartServiceServer(srv, NewSleepChartService(charts))
	return srv
}

// SetupServer initializes and configures the gRPC server with all middleware
func SetupServer(charts ChartService, config ServerConfig) (*grpc.Server, error) {
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}
	if config.Registerer == nil {
		config.Registerer = prometheus.DefaultRegisterer
	}

	cache, err := middleware.NewResponseCache(config.CacheSize, config.CacheTTL)
	if err != nil {
		return nil, err
	}

	metrics, err := middleware.NewMetrics(config.Registerer)
	if err != nil {
		return nil, err
	}

	server := grpc.NewServer(
		grpc.UnaryInterceptor(
			chainUnaryInterceptors(
				middleware.ContextMiddleware, // Add request ID first
				middleware.NewRateLimitingInterceptor(config.RateLimit, config.RateLimitBurst), // Rate limit early
				middleware.NewLoggingInterceptor(config.Logger), // Log all requests (with request ID)
				middleware.NewMetricsInterceptor(metrics),       // Collect metrics
				cache.Interceptor( // Cache last to avoid caching errors
					pb.SleepChartService_GetSleepChart_FullMethodName,
					pb.SleepChartService_GetRestingHeartRate_FullMethodName,
				),
			),
		),
	)

	pb.RegisterSleepChartServiceServer(server, NewSleepChartService(charts))

	health := config.Health
	if health == nil {
		health = NewHealthChecker()
	}
	health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	health.SetServingStatus(pb.SleepChartService_ServiceDesc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(server, health)

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
