package grpckel

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"kelp.dev/kelp/cidutil"
	"kelp.dev/kelp/sources"
)

// Server exposes a Provider over the KEL gRPC service.
type Server struct {
	UnimplementedKELServer
	Provider Provider
}

func (s *Server) Fetch(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Provider == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing provider")
	}
	data, err := s.Provider.Stream(in.GetValue())
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bytes(data), nil
}

func (s *Server) Has(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if s == nil || s.Provider == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing provider")
	}
	_, err := s.Provider.Stream(in.GetValue())
	if sources.IsNotFound(err) {
		return wrapperspb.Bool(false), nil
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bool(true), nil
}

func (s *Server) CID(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if s == nil || s.Provider == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing provider")
	}
	data, err := s.Provider.Stream(in.GetValue())
	if err != nil {
		return nil, mapErr(err)
	}
	id, err := cidutil.StreamCID(data)
	if err != nil {
		return nil, status.Error(codes.Internal, "cid computation failed")
	}
	return wrapperspb.String(id.String()), nil
}

func (s *Server) List(ctx context.Context, in *emptypb.Empty) (*structpb.ListValue, error) {
	_ = ctx
	_ = in
	if s == nil || s.Provider == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing provider")
	}
	aids, err := s.Provider.AIDs()
	if err != nil {
		return nil, mapErr(err)
	}
	vals := make([]any, len(aids))
	for i, aid := range aids {
		vals[i] = aid
	}
	lv, err := structpb.NewList(vals)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return lv, nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if sources.IsNotFound(err) {
		return status.Error(codes.NotFound, sources.ErrNotFound.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
