package grpckel

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"kelp.dev/kelp/kel"
	"kelp.dev/kelp/sources"
)

// StreamSource adapts a Client into a sources.Source by decoding the
// fetched bytes locally.
type StreamSource struct {
	client *Client
	target string
	parser *kel.Parser
}

// NewStreamSource wraps an existing client.
func NewStreamSource(client *Client, target string) *StreamSource {
	return &StreamSource{client: client, target: target, parser: kel.NewParser()}
}

func (s *StreamSource) Description() string {
	return fmt.Sprintf("gRPC: %s", s.target)
}

func (s *StreamSource) FetchEvents(ctx context.Context, aid string) ([]kel.Event, error) {
	data, err := s.client.Fetch(ctx, aid)
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(data), nil
}

func (s *StreamSource) Close() error { return s.client.Close() }

var (
	flagTarget      string
	flagDialTimeout time.Duration
	flagTimeout     time.Duration
	flagMaxMsgBytes int
)

func init() {
	sources.MustRegister(sources.Factory{
		Name:        "grpc",
		Description: "Fetch a KEL from a KEL gRPC daemon (e.g. kelpd)",
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagTarget, "grpc-target", "", "gRPC target host:port (for --source=grpc)")
			fs.DurationVar(&flagDialTimeout, "grpc-dial-timeout", 5*time.Second, "Dial timeout (for --source=grpc)")
			fs.DurationVar(&flagTimeout, "grpc-timeout", 0, "Per-RPC timeout (for --source=grpc)")
			fs.IntVar(&flagMaxMsgBytes, "grpc-max-msg-bytes", 0, "Max gRPC message size in bytes (send+recv); 0 uses grpc defaults")
		},
		Open: func() (sources.Source, error) {
			target := strings.TrimSpace(flagTarget)
			if target == "" {
				return nil, fmt.Errorf("missing --grpc-target")
			}
			client, err := Dial(target, DialOptions{Timeout: flagDialTimeout, MaxMsgBytes: flagMaxMsgBytes})
			if err != nil {
				return nil, err
			}
			client.Timeout = flagTimeout
			return NewStreamSource(client, target), nil
		},
	})
}
