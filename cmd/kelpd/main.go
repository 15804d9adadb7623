// kelpd serves key event log streams over gRPC from a directory of
// <aid>.cesr files.
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"kelp.dev/kelp/sources/grpckel"
)

func main() {
	fs := flag.NewFlagSet("kelpd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7788", "listen address")
	dir := fs.String("dir", ".", "directory of <aid>.cesr stream files")
	pretty := fs.Bool("pretty", false, "human-readable log output")

	_ = fs.Parse(os.Args[1:])

	logger := newLogger(*pretty)

	provider, err := grpckel.NewDirProvider(*dir)
	if err != nil {
		logger.Fatal().Err(err).Msg("open stream directory")
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		logger.Fatal().Err(err).Msg("listen")
	}
	defer lis.Close()

	s := grpc.NewServer(grpc.UnaryInterceptor(logUnary(logger)))
	grpckel.RegisterKELServer(s, &grpckel.Server{Provider: provider})

	logger.Info().
		Str("addr", lis.Addr().String()).
		Str("dir", *dir).
		Msg("kelpd listening")
	if err := s.Serve(lis); err != nil {
		logger.Fatal().Err(err).Msg("serve")
	}
}

func newLogger(pretty bool) zerolog.Logger {
	if pretty {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Str("app", "kelpd").Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Str("app", "kelpd").Logger()
}

// logUnary logs one line per RPC with the requested AID when the request
// carries one.
func logUnary(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		ev := logger.Info()
		if err != nil {
			ev = logger.Warn().Err(err)
		}
		if sv, ok := req.(*wrapperspb.StringValue); ok {
			ev = ev.Str("aid", sv.GetValue())
		}
		ev.Str("method", info.FullMethod).
			Dur("took", time.Since(start)).
			Msg("rpc")
		return resp, err
	}
}
