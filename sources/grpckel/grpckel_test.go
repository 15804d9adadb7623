package grpckel

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"kelp.dev/kelp/cidutil"
	"kelp.dev/kelp/sources"
	"kelp.dev/kelp/testkit"
)

func newTestClient(t *testing.T, provider Provider) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterKELServer(srv, &Server{Provider: provider})

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewKELClient(cc), Timeout: 2 * time.Second}
}

func TestGRPCKEL_DirProvider_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	aid := testkit.AID(0xA1)
	stream := testkit.Stream(
		testkit.MustKeyEvent(testkit.EventOpts{Type: "icp", AID: aid, SN: 0}),
		testkit.ControllerSigs(2),
	)
	if err := os.WriteFile(filepath.Join(dir, aid+".cesr"), stream, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	provider, err := NewDirProvider(dir)
	if err != nil {
		t.Fatalf("NewDirProvider: %v", err)
	}
	client := newTestClient(t, provider)

	ctx := context.Background()
	got, err := client.Fetch(ctx, aid)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(got) != string(stream) {
		t.Fatalf("stream mismatch")
	}
	if !client.Has(ctx, aid) {
		t.Fatalf("Has: expected true")
	}

	wantCID, err := cidutil.StreamCID(stream)
	if err != nil {
		t.Fatalf("StreamCID: %v", err)
	}
	gotCID, err := client.CID(ctx, aid)
	if err != nil {
		t.Fatalf("CID: %v", err)
	}
	if gotCID != wantCID.String() {
		t.Fatalf("CID mismatch: got %s want %s", gotCID, wantCID)
	}

	aids, err := client.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(aids) != 1 || aids[0] != aid {
		t.Fatalf("List: got %v", aids)
	}
}

func TestGRPCKEL_NotFound(t *testing.T) {
	provider, err := NewDirProvider(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirProvider: %v", err)
	}
	client := newTestClient(t, provider)

	ctx := context.Background()
	missing := testkit.AID(0xB2)
	if _, err := client.Fetch(ctx, missing); !sources.IsNotFound(err) {
		t.Fatalf("Fetch missing: got err=%v want ErrNotFound", err)
	}
	if client.Has(ctx, missing) {
		t.Fatalf("Has: expected false for missing AID")
	}
}

func TestGRPCKEL_StreamSource_Decodes(t *testing.T) {
	dir := t.TempDir()
	aid := testkit.AID(0xC3)
	icp := testkit.MustKeyEvent(testkit.EventOpts{Type: "icp", AID: aid, SN: 0})
	stream := testkit.Stream(icp, testkit.ControllerSigs(1), testkit.ReceiptCouples(1))
	if err := os.WriteFile(filepath.Join(dir, aid+".cesr"), stream, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	provider, err := NewDirProvider(dir)
	if err != nil {
		t.Fatalf("NewDirProvider: %v", err)
	}
	src := NewStreamSource(newTestClient(t, provider), "bufnet")

	events, err := src.FetchEvents(context.Background(), aid)
	if err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Identifier() != aid {
		t.Fatalf("identifier mismatch: got %s", ev.Identifier())
	}
	if len(ev.Attachments) != 2 {
		t.Fatalf("got %d attachments, want 2", len(ev.Attachments))
	}
}

func TestDirProvider_RejectsBadAID(t *testing.T) {
	provider, err := NewDirProvider(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirProvider: %v", err)
	}
	for _, aid := range []string{"", "short", "../../etc/passwd", testkit.AID(0xD4) + "/x"} {
		if _, err := provider.Stream(aid); err == nil {
			t.Fatalf("Stream(%q): expected error", aid)
		}
	}
}
