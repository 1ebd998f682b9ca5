package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SleepChartService_GetSleepChart_FullMethodName       = "/sleepchart.v1.SleepChartService/GetSleepChart"
	SleepChartService_GetRestingHeartRate_FullMethodName = "/sleepchart.v1.SleepChartService/GetRestingHeartRate"
)

// SleepChartServiceClient is the client API for SleepChartService.
type SleepChartServiceClient interface {
	GetSleepChart(ctx context.Context, in *SleepChartRequest, opts ...grpc.CallOption) (*SleepChartResponse, error)
	GetRestingHeartRate(ctx context.Context, in *RestingHeartRateRequest, opts ...grpc.CallOption) (*RestingHeartRateResponse, error)
}

type sleepChartServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSleepChartServiceClient(cc grpc.ClientConnInterface) SleepChartServiceClient {
	return &sleepChartServiceClient{cc}
}

func (c *sleepChartServiceClient) GetSleepChart(ctx context.Context, in *SleepChartRequest, opts ...grpc.CallOption) (*SleepChartResponse, error) {
	out := new(SleepChartResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, SleepChartService_GetSleepChart_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sleepChartServiceClient) GetRestingHeartRate(ctx context.Context, in *RestingHeartRateRequest, opts ...grpc.CallOption) (*RestingHeartRateResponse, error) {
	out := new(RestingHeartRateResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, SleepChartService_GetRestingHeartRate_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SleepChartServiceServer is the server API for SleepChartService.
type SleepChartServiceServer interface {
	GetSleepChart(context.Context, *SleepChartRequest) (*SleepChartResponse, error)
	GetRestingHeartRate(context.Context, *RestingHeartRateRequest) (*RestingHeartRateResponse, error)
}

// UnimplementedSleepChartServiceServer can be embedded to have forward
// compatible implementations.
type UnimplementedSleepChartServiceServer struct{}

func (UnimplementedSleepChartServiceServer) GetSleepChart(context.Context, *SleepChartRequest) (*SleepChartResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSleepChart not implemented")
}

func (UnimplementedSleepChartServiceServer) GetRestingHeartRate(context.Context, *RestingHeartRateRequest) (*RestingHeartRateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRestingHeartRate not implemented")
}

func RegisterSleepChartServiceServer(s grpc.ServiceRegistrar, srv SleepChartServiceServer) {
	s.RegisterService(&SleepChartService_ServiceDesc, srv)
}

func _SleepChartService_GetSleepChart_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SleepChartRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SleepChartServiceServer).GetSleepChart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SleepChartService_GetSleepChart_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SleepChartServiceServer).GetSleepChart(ctx, req.(*SleepChartRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SleepChartService_GetRestingHeartRate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RestingHeartRateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SleepChartServiceServer).GetRestingHeartRate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SleepChartService_GetRestingHeartRate_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SleepChartServiceServer).GetRestingHeartRate(ctx, req.(*RestingHeartRateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SleepChartService_ServiceDesc is the grpc.ServiceDesc for SleepChartService.
var SleepChartService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "sleepchart.v1.SleepChartService",
	HandlerType: (*SleepChartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSleepChart",
			Handler:    _SleepChartService_GetSleepChart_Handler,
		},
		{
			MethodName: "GetRestingHeartRate",
			Handler:    _SleepChartService_GetRestingHeartRate_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sleepchart/v1/sleepchart.proto",
}
