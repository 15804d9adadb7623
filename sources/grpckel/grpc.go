// Package grpckel exposes key event log streams over gRPC: a server that
// serves raw CESR bytes by AID and a client that doubles as a remote byte
// source for the decoder.
package grpckel

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// KELServer is the server API for the KEL gRPC service.
//
// We intentionally use protobuf well-known wrapper types so this package
// does not require a protoc/codegen toolchain.
//
// Proto definition: kel.proto.
type KELServer interface {
	// Fetch returns the raw CESR stream for an AID.
	Fetch(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	// Has reports whether a stream exists for an AID.
	Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	// CID returns the CIDv1 of the stream bytes for an AID.
	CID(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	// List returns the AIDs this server can serve.
	List(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
}

// UnimplementedKELServer can be embedded to have forward compatible
// implementations.
type UnimplementedKELServer struct{}

func (UnimplementedKELServer) Fetch(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Fetch not implemented")
}
func (UnimplementedKELServer) Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Has not implemented")
}
func (UnimplementedKELServer) CID(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method CID not implemented")
}
func (UnimplementedKELServer) List(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method List not implemented")
}

// RegisterKELServer registers the KEL service on a gRPC server.
func RegisterKELServer(s grpc.ServiceRegistrar, srv KELServer) {
	s.RegisterService(&KEL_ServiceDesc, srv)
}

// KELClient is the client API for the KEL gRPC service.
type KELClient interface {
	Fetch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	CID(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	List(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type kelClient struct{ cc grpc.ClientConnInterface }

// NewKELClient returns a KELClient over cc.
func NewKELClient(cc grpc.ClientConnInterface) KELClient { return &kelClient{cc: cc} }

func (c *kelClient) Fetch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/kelp.sources.grpckel.v1.KEL/Fetch", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kelClient) Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, "/kelp.sources.grpckel.v1.KEL/Has", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kelClient) CID(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, "/kelp.sources.grpckel.v1.KEL/CID", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kelClient) List(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, "/kelp.sources.grpckel.v1.KEL/List", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _KEL_Fetch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KELServer).Fetch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/kelp.sources.grpckel.v1.KEL/Fetch"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KELServer).Fetch(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _KEL_Has_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KELServer).Has(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/kelp.sources.grpckel.v1.KEL/Has"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KELServer).Has(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _KEL_CID_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KELServer).CID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/kelp.sources.grpckel.v1.KEL/CID"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KELServer).CID(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _KEL_List_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KELServer).List(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/kelp.sources.grpckel.v1.KEL/List"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KELServer).List(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// KEL_ServiceDesc is the grpc.ServiceDesc for the KEL service.
var KEL_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "kelp.sources.grpckel.v1.KEL",
	HandlerType: (*KELServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Fetch", Handler: _KEL_Fetch_Handler},
		{MethodName: "Has", Handler: _KEL_Has_Handler},
		{MethodName: "CID", Handler: _KEL_CID_Handler},
		{MethodName: "List", Handler: _KEL_List_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kel.proto",
}
