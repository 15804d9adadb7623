package grpckel

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client fetches KEL streams from a KEL gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client KELClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewKELClient(cc), Timeout: 0}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Fetch returns the raw CESR stream for aid.
func (c *Client) Fetch(ctx context.Context, aid string) ([]byte, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.Fetch(ctx, wrapperspb.String(aid))
	if err != nil {
		return nil, mapRPC(err)
	}
	return reply.GetValue(), nil
}

// Has reports whether the service holds a stream for aid.
func (c *Client) Has(ctx context.Context, aid string) bool {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.Has(ctx, wrapperspb.String(aid))
	if err != nil {
		return false
	}
	return reply.GetValue()
}

// CID returns the CIDv1 string of the stream bytes for aid.
func (c *Client) CID(ctx context.Context, aid string) (string, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.CID(ctx, wrapperspb.String(aid))
	if err != nil {
		return "", mapRPC(err)
	}
	return reply.GetValue(), nil
}

// List returns the AIDs the service can serve.
func (c *Client) List(ctx context.Context) ([]string, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.List(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, mapRPC(err)
	}
	aids := make([]string, 0, len(reply.GetValues()))
	for _, v := range reply.GetValues() {
		aids = append(aids, v.GetStringValue())
	}
	return aids, nil
}

func (c *Client) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if c.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.Timeout)
}
