package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kelp.dev/kelp/testkit"
)

func TestOOBIFetchEvents(t *testing.T) {
	aid := testkit.AID(0x31)
	stream := testkit.Stream(
		testkit.MustKeyEvent(testkit.EventOpts{Type: "icp", AID: aid, SN: 0}),
		testkit.ControllerSigs(1),
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(stream)
	}))
	defer srv.Close()

	src := NewOOBI(srv.URL+"/oobi/"+aid, 5*time.Second)
	defer src.Close()

	if src.Identifier() != aid {
		t.Fatalf("Identifier: got %q", src.Identifier())
	}
	events, err := src.FetchEvents(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}
	if len(events) != 1 || events[0].Identifier() != aid {
		t.Fatalf("got %d events", len(events))
	}
	if len(events[0].Attachments) != 1 {
		t.Fatalf("attachments: got %d", len(events[0].Attachments))
	}
}

func TestOOBIHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such aid", http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewOOBI(srv.URL+"/oobi/"+testkit.AID(0x32), 5*time.Second)
	defer src.Close()

	if _, err := src.FetchEvents(context.Background(), ""); !errors.Is(err, ErrFetch) {
		t.Fatalf("got err=%v want ErrFetch", err)
	}
}

func TestOOBIUnreachable(t *testing.T) {
	src := NewOOBI("http://127.0.0.1:1/oobi/"+testkit.AID(0x33), 500*time.Millisecond)
	defer src.Close()
	if _, err := src.FetchEvents(context.Background(), ""); !errors.Is(err, ErrFetch) {
		t.Fatalf("got err=%v want ErrFetch", err)
	}
}

func TestOOBIIdentifierExtraction(t *testing.T) {
	aid := testkit.AID(0x34)
	cases := map[string]string{
		"http://w.example/oobi/" + aid:              aid,
		"http://w.example/oobi/" + aid + "/witness": aid,
		"http://w.example/kel":                      "",
		"http://w.example/oobi/short":               "",
	}
	for url, want := range cases {
		src := NewOOBI(url, 0)
		if got := src.Identifier(); got != want {
			t.Fatalf("Identifier(%q): got %q want %q", url, got, want)
		}
		_ = src.Close()
	}
}

func TestOOBIDescription(t *testing.T) {
	aid := testkit.AID(0x35)
	src := NewOOBI("http://witness.example:5642/oobi/"+aid, 0)
	defer src.Close()
	desc := src.Description()
	if !strings.Contains(desc, "witness.example:5642") {
		t.Fatalf("description missing host: %q", desc)
	}
	if !strings.Contains(desc, aid[:16]) {
		t.Fatalf("description missing aid: %q", desc)
	}
}
