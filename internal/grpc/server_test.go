package server_test

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/tejusbharadwaj/sleepchart/internal/chart"
	"github.com/tejusbharadwaj/sleepchart/internal/database/mocks"
	server "github.com/tejusbharadwaj/sleepchart/internal/grpc"
	"github.com/tejusbharadwaj/sleepchart/internal/models"
	pb "github.com/tejusbharadwaj/sleepchart/proto"
)

var night = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newChartService(repo chart.Repository) *chart.Service {
	opts := chart.DefaultOptions()
	opts.Location = time.UTC
	return chart.NewService(repo, chart.NewBuilder(opts, quietLogger()))
}

func f(v float64) *float64 { return &v }

func TestGetSleepChart(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockHealthRepository(ctrl)
	svc := server.NewSleepChartService(newChartService(mockRepo))

	tests := []struct {
		name          string
		request       *pb.SleepChartRequest
		setupMock     func()
		expectedCode  codes.Code
		expectedError string
	}{
		{
			name: "Success case",
			request: &pb.SleepChartRequest{
				Start:           timestamppb.New(night),
				End:             timestamppb.New(night.Add(8 * time.Hour)),
				SmoothingWindow: 1,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					QuerySleepData(gomock.Any(), night, night.Add(8*time.Hour)).
					Return(&models.SleepData{
						HeartRate: []models.HeartRatePoint{
							{Time: night, Value: f(58)},
							{Time: night.Add(5 * time.Minute), Value: f(60)},
						},
						SleepStages: []models.SleepStage{
							{Level: "rem", StartTime: night, EndTime: night.Add(5 * time.Minute)},
						},
						RestingHeartRate: f(51),
					}, nil)
			},
			expectedCode: codes.OK,
		},
		{
			name: "Missing timestamps",
			request: &pb.SleepChartRequest{
				End: timestamppb.New(night),
			},
			setupMock:     func() {},
			expectedCode:  codes.InvalidArgument,
			expectedError: "missing timestamp",
		},
		{
			name: "Invalid window",
			request: &pb.SleepChartRequest{
				Start:           timestamppb.New(night),
				End:             timestamppb.New(night.Add(time.Hour)),
				SmoothingWindow: 100,
			},
			setupMock:     func() {},
			expectedCode:  codes.InvalidArgument,
			expectedError: "invalid window: 100",
		},
		{
			name: "Invalid time range",
			request: &pb.SleepChartRequest{
				Start: timestamppb.New(night.Add(time.Hour)),
				End:   timestamppb.New(night),
			},
			setupMock:     func() {},
			expectedCode:  codes.InvalidArgument,
			expectedError: "start time must be before end time",
		},
		{
			name: "Repository failure",
			request: &pb.SleepChartRequest{
				Start: timestamppb.New(night),
				End:   timestamppb.New(night.Add(time.Hour)),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					QuerySleepData(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			expectedCode:  codes.Internal,
			expectedError: "query failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			resp, err := svc.GetSleepChart(context.Background(), tt.request)

			if tt.expectedCode != codes.OK {
				require.Error(t, err)
				st, ok := status.FromError(err)
				require.True(t, ok)
				assert.Equal(t, tt.expectedCode, st.Code())
				assert.Contains(t, st.Message(), tt.expectedError)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.Len(t, resp.Points, 2)
			assert.Equal(t, night.UnixMilli(), resp.Points[0].Time)
			assert.Equal(t, 58.0, *resp.Points[0].HeartRate)
			assert.Equal(t, int32(2), *resp.Points[0].SleepStage)
			assert.Equal(t, "#7c3aed", *resp.Points[0].SleepColor)
			assert.Nil(t, resp.Points[1].SleepStage)
			assert.Equal(t, 51.0, *resp.Points[1].RestingHeartRate)
			assert.Equal(t, &pb.AxisDomain{Min: 45, Max: 65}, resp.HeartRateDomain)
			assert.Equal(t, []int64{night.UnixMilli()}, resp.Ticks)
			assert.Len(t, resp.Stages, 4)
		})
	}
}

func TestGetRestingHeartRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockHealthRepository(ctrl)
	svc := server.NewSleepChartService(newChartService(mockRepo))

	mockRepo.EXPECT().
		QueryRestingHeartRate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.RestingHeartRate{
			{Date: night, Value: 54},
			{Date: night.AddDate(0, 0, -1), Value: 56},
		}, nil)

	resp, err := svc.GetRestingHeartRate(context.Background(), &pb.RestingHeartRateRequest{
		Start: timestamppb.New(night.AddDate(0, 0, -7)),
		End:   timestamppb.New(night),
	})
	require.NoError(t, err)
	require.Len(t, resp.Points, 2)
	assert.Equal(t, 56.0, resp.Points[0].RestingHeartRate)
	assert.Equal(t, &pb.AxisDomain{Min: 52, Max: 58}, resp.Domain)

	_, err = svc.GetRestingHeartRate(context.Background(), &pb.RestingHeartRateRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSetupServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockHealthRepository(ctrl)

	config := server.DefaultServerConfig()
	config.Logger = quietLogger()
	config.Registerer = prometheus.NewRegistry()

	srv, err := server.SetupServer(newChartService(mockRepo), config)
	require.NoError(t, err)
	require.NotNil(t, srv)

	// Test with invalid config
	invalidConfig := server.ServerConfig{
		CacheSize:  -1,
		Registerer: prometheus.NewRegistry(),
	}
	srv, err = server.SetupServer(newChartService(mockRepo), invalidConfig)
	require.Error(t, err)
	require.Nil(t, srv)
}

func TestServerOverBufconn(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockHealthRepository(ctrl)

	health := server.NewHealthChecker()
	config := server.DefaultServerConfig()
	config.Logger = quietLogger()
	config.Registerer = prometheus.NewRegistry()
	config.Health = health

	srv, err := server.SetupServer(newChartService(mockRepo), config)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// A repeated request is answered from the cache, so the repository is
	// queried once.
	mockRepo.EXPECT().
		QuerySleepData(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.SleepData{
			HeartRate: []models.HeartRatePoint{{Time: night, Value: f(62)}},
		}, nil).
		Times(1)

	client := pb.NewSleepChartServiceClient(conn)
	req := &pb.SleepChartRequest{
		Start: timestamppb.New(night),
		End:   timestamppb.New(night.Add(time.Hour)),
	}
	for i := 0; i < 2; i++ {
		resp, err := client.GetSleepChart(ctx, req)
		require.NoError(t, err)
		require.Len(t, resp.Points, 1)
		assert.Equal(t, 62.0, *resp.Points[0].HeartRate)
	}

	_, err = client.GetSleepChart(ctx, &pb.SleepChartRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	healthClient := grpc_health_v1.NewHealthClient(conn)
	hr, err := healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: pb.SleepChartService_ServiceDesc.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, hr.Status)

	health.Shutdown()
	hr, err = healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, hr.Status)
}

func TestHealthChecker(t *testing.T) {
	h := server.NewHealthChecker()

	_, err := h.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.False(t, h.Serving("missing"))

	h.SetServingStatus("svc", grpc_health_v1.HealthCheckResponse_SERVING)
	assert.True(t, h.Serving("svc"))

	h.Shutdown()
	assert.False(t, h.Serving("svc"))
}

func TestConfigureGRPCServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockHealthRepository(ctrl)

	srv := server.ConfigureGRPCServer(newChartService(mockRepo))
	lis := bufconn.Listen(1 << 20)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Without the cache interceptor every call reaches the repository.
	mockRepo.EXPECT().
		QuerySleepData(gomock.Any(), night, night.Add(time.Hour)).
		Return(&models.SleepData{
			HeartRate: []models.HeartRatePoint{
				{Time: night, Value: f(57)},
				{Time: night.Add(5 * time.Minute), Value: nil},
			},
		}, nil).
		Times(2)

	client := pb.NewSleepChartServiceClient(conn)
	req := &pb.SleepChartRequest{
		Start:           timestamppb.New(night),
		End:             timestamppb.New(night.Add(time.Hour)),
		SmoothingWindow: 1,
	}
	for i := 0; i < 2; i++ {
		resp, err := client.GetSleepChart(ctx, req)
		require.NoError(t, err)
		require.Len(t, resp.Points, 2)
		assert.Equal(t, 57.0, *resp.Points[0].HeartRate)
		assert.Nil(t, resp.Points[1].HeartRate, "gap survives the JSON codec")
		assert.Equal(t, &pb.AxisDomain{Min: 45, Max: 62}, resp.HeartRateDomain)
	}

	// No health service is registered on the bare server.
	_, err = grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}
