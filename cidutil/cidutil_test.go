package cidutil

import (
	"strings"
	"testing"
)

func TestStreamCID(t *testing.T) {
	data := []byte(`{"v":"KERI10JSON000020_"}`)
	id, err := StreamCID(data)
	if err != nil {
		t.Fatalf("StreamCID: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("expected defined CID")
	}
	// CIDv1, raw codec, sha2-256 in base32 always starts with bafkrei.
	if !strings.HasPrefix(id.String(), "bafkrei") {
		t.Fatalf("unexpected CID form: %s", id)
	}

	again, err := StreamCID(data)
	if err != nil {
		t.Fatalf("StreamCID: %v", err)
	}
	if again != id {
		t.Fatalf("CID not deterministic")
	}

	other, err := StreamCID(append(data, ' '))
	if err != nil {
		t.Fatalf("StreamCID: %v", err)
	}
	if other == id {
		t.Fatalf("CID must depend on exact bytes")
	}
}

func TestEventCIDMatchesStreamCID(t *testing.T) {
	data := []byte("event bytes")
	id, err := StreamCID(data)
	if err != nil {
		t.Fatalf("StreamCID: %v", err)
	}
	if EventCID(data) != id.String() {
		t.Fatalf("EventCID diverged from StreamCID")
	}
}
