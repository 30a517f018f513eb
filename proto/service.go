package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	LoadProfileService_GetProfile_FullMethodName  = "/gridcast.v1.LoadProfileService/GetProfile"
	LoadProfileService_Forecast_FullMethodName    = "/gridcast.v1.LoadProfileService/Forecast"
	LoadProfileService_GetLiveView_FullMethodName = "/gridcast.v1.LoadProfileService/GetLiveView"
	LoadProfileService_Predict_FullMethodName     = "/gridcast.v1.LoadProfileService/Predict"
)

// LoadProfileServiceClient is the client API for LoadProfileService.
type LoadProfileServiceClient interface {
	GetProfile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	Forecast(ctx context.Context, in *ForecastRequest, opts ...grpc.CallOption) (*ForecastResponse, error)
	GetLiveView(ctx context.Context, in *LiveViewRequest, opts ...grpc.CallOption) (*ForecastResponse, error)
	Predict(ctx context.Context, in *PredictRequest, opts ...grpc.CallOption) (*PredictResponse, error)
}

type loadProfileServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLoadProfileServiceClient(cc grpc.ClientConnInterface) LoadProfileServiceClient {
	return &loadProfileServiceClient{cc}
}

func (c *loadProfileServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *loadProfileServiceClient) GetProfile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	out := new(ProfileResponse)
	if err := c.invoke(ctx, LoadProfileService_GetProfile_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *loadProfileServiceClient) Forecast(ctx context.Context, in *ForecastRequest, opts ...grpc.CallOption) (*ForecastResponse, error) {
	out := new(ForecastResponse)
	if err := c.invoke(ctx, LoadProfileService_Forecast_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *loadProfileServiceClient) GetLiveView(ctx context.Context, in *LiveViewRequest, opts ...grpc.CallOption) (*ForecastResponse, error) {
	out := new(ForecastResponse)
	if err := c.invoke(ctx, LoadProfileService_GetLiveView_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *loadProfileServiceClient) Predict(ctx context.Context, in *PredictRequest, opts ...grpc.CallOption) (*PredictResponse, error) {
	out := new(PredictResponse)
	if err := c.invoke(ctx, LoadProfileService_Predict_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadProfileServiceServer is the server API for LoadProfileService.
// Implementations must embed UnimplementedLoadProfileServiceServer.
type LoadProfileServiceServer interface {
	GetProfile(context.Context, *ProfileRequest) (*ProfileResponse, error)
	Forecast(context.Context, *ForecastRequest) (*ForecastResponse, error)
	GetLiveView(context.Context, *LiveViewRequest) (*ForecastResponse, error)
	Predict(context.Context, *PredictRequest) (*PredictResponse, error)
	mustEmbedUnimplementedLoadProfileServiceServer()
}

// UnimplementedLoadProfileServiceServer must be embedded to have forward
// compatible implementations.
type UnimplementedLoadProfileServiceServer struct{}

func (UnimplementedLoadProfileServiceServer) GetProfile(context.Context, *ProfileRequest) (*ProfileResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedLoadProfileServiceServer) Forecast(context.Context, *ForecastRequest) (*ForecastResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Forecast not implemented")
}
func (UnimplementedLoadProfileServiceServer) GetLiveView(context.Context, *LiveViewRequest) (*ForecastResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLiveView not implemented")
}
func (UnimplementedLoadProfileServiceServer) Predict(context.Context, *PredictRequest) (*PredictResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Predict not implemented")
}
func (UnimplementedLoadProfileServiceServer) mustEmbedUnimplementedLoadProfileServiceServer() {}

func RegisterLoadProfileServiceServer(s grpc.ServiceRegistrar, srv LoadProfileServiceServer) {
	s.RegisterService(&LoadProfileService_ServiceDesc, srv)
}

func _LoadProfileService_GetProfile_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ProfileRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoadProfileServiceServer).GetProfile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LoadProfileService_GetProfile_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoadProfileServiceServer).GetProfile(ctx, req.(*ProfileRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LoadProfileService_Forecast_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ForecastRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoadProfileServiceServer).Forecast(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LoadProfileService_Forecast_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoadProfileServiceServer).Forecast(ctx, req.(*ForecastRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LoadProfileService_GetLiveView_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LiveViewRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoadProfileServiceServer).GetLiveView(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LoadProfileService_GetLiveView_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoadProfileServiceServer).GetLiveView(ctx, req.(*LiveViewRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LoadProfileService_Predict_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PredictRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoadProfileServiceServer).Predict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LoadProfileService_Predict_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoadProfileServiceServer).Predict(ctx, req.(*PredictRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// LoadProfileService_ServiceDesc is the grpc.ServiceDesc for LoadProfileService.
var LoadProfileService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "gridcast.v1.LoadProfileService",
	HandlerType: (*LoadProfileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProfile",
			Handler:    _LoadProfileService_GetProfile_Handler,
		},
		{
			MethodName: "Forecast",
			Handler:    _LoadProfileService_Forecast_Handler,
		},
		{
			MethodName: "GetLiveView",
			Handler:    _LoadProfileService_GetLiveView_Handler,
		},
		{
			MethodName: "Predict",
			Handler:    _LoadProfileService_Predict_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gridcast/v1/load_profile",
}
