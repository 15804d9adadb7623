package kel

import (
	"reflect"
	"strings"
	"testing"

	"kelp.dev/kelp/testkit"
)

func icpEvent(t *testing.T, fill byte) []byte {
	t.Helper()
	return testkit.MustKeyEvent(testkit.EventOpts{Type: "icp", AID: testkit.AID(fill), SN: 0})
}

func TestParseSingleEvent(t *testing.T) {
	ev := icpEvent(t, 0x11)
	events := Parse(ev)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Raw != string(ev) {
		t.Fatalf("raw span must cover the whole buffer")
	}
	if events[0].Type() != "icp" {
		t.Fatalf("type: got %q", events[0].Type())
	}
	if len(events[0].Attachments) != 0 {
		t.Fatalf("unexpected attachments: %d", len(events[0].Attachments))
	}
}

func TestParseIndexedSigGroup(t *testing.T) {
	stream := testkit.Stream(icpEvent(t, 0x12), testkit.ControllerSigs(2))
	events := Parse(stream)
	if len(events) != 1 {
		t.Fatalf("got %d events", len(events))
	}
	atts := events[0].Attachments
	if len(atts) != 1 {
		t.Fatalf("got %d attachments", len(atts))
	}
	att := atts[0]
	if att.Code != "-A" || att.Count != 2 || att.Name != "Controller Indexed Sigs" {
		t.Fatalf("attachment: %+v", att)
	}
	if len(att.Materials) != 2 {
		t.Fatalf("materials: got %d", len(att.Materials))
	}
	for i, m := range att.Materials {
		if m["type"] != "indexed_sig" || m["index"] != i {
			t.Fatalf("material %d: %v", i, m)
		}
		// code A mirrors index into ondex
		if m["ondex"] != i {
			t.Fatalf("material %d ondex: %v", i, m["ondex"])
		}
	}
}

func TestParseReceiptCouples(t *testing.T) {
	stream := testkit.Stream(icpEvent(t, 0x13), testkit.ReceiptCouples(2))
	events := Parse(stream)
	att := events[0].Attachments[0]
	if att.Code != "-C" || len(att.Materials) != 2 {
		t.Fatalf("attachment: %+v", att)
	}
	for _, m := range att.Materials {
		if m["type"] != "receipt_couple" {
			t.Fatalf("material: %v", m)
		}
		prefix := m["prefix"].(string)
		sig := m["signature"].(string)
		if !strings.HasPrefix(prefix, "B") || len(prefix) != 44 {
			t.Fatalf("prefix: %q", prefix)
		}
		if !strings.HasPrefix(sig, "0B") || len(sig) != 88 {
			t.Fatalf("signature: %q", sig)
		}
	}
}

func TestParseSealSourceCouples(t *testing.T) {
	stream := testkit.Stream(icpEvent(t, 0x14), testkit.SealSourceCouples(2))
	att := Parse(stream)[0].Attachments[0]
	if att.Code != "-G" || len(att.Materials) != 2 {
		t.Fatalf("attachment: %+v", att)
	}
	for i, m := range att.Materials {
		if m["type"] != "seal_source" || m["sn"] != uint64(i) {
			t.Fatalf("material %d: %v", i, m)
		}
		if said := m["said"].(string); !strings.HasPrefix(said, "E") {
			t.Fatalf("said: %q", said)
		}
	}
}

func TestParseReplayCouples(t *testing.T) {
	stream := testkit.Stream(icpEvent(t, 0x15), testkit.ReplayCouples(1))
	att := Parse(stream)[0].Attachments[0]
	if att.Code != "-E" || att.Name != "First Seen Replay Couples" {
		t.Fatalf("attachment: %+v", att)
	}
	m := att.Materials[0]
	if m["type"] != "first_seen" || m["sn"] != uint64(0) {
		t.Fatalf("material: %v", m)
	}
	if dt := m["datetime"].(string); !strings.HasPrefix(dt, "1AAG") {
		t.Fatalf("datetime: %q", dt)
	}
}

func TestParseMultipleEventsWithWhitespace(t *testing.T) {
	stream := testkit.Stream(
		icpEvent(t, 0x16), testkit.ControllerSigs(1), []byte("\n\n"),
		testkit.MustKeyEvent(testkit.EventOpts{Type: "rot", AID: testkit.AID(0x16), SN: 1}),
		[]byte("  \t"), testkit.WitnessSigs(1),
	)
	events := Parse(stream)
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].Type() != "icp" || events[1].Type() != "rot" {
		t.Fatalf("types: %q %q", events[0].Type(), events[1].Type())
	}
	if len(events[1].Attachments) != 1 || events[1].Attachments[0].Code != "-B" {
		t.Fatalf("rot attachments: %+v", events[1].Attachments)
	}
}

func TestParseSkipsNoise(t *testing.T) {
	stream := testkit.Stream(
		[]byte("garbage!!{not json}"),
		icpEvent(t, 0x17),
		[]byte("%%%"),
		testkit.MustKeyEvent(testkit.EventOpts{Type: "ixn", AID: testkit.AID(0x17), SN: 1}),
	)
	events := Parse(stream)
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
}

func TestParseNeverErrorsOnArbitraryBytes(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("   "),
		[]byte("{{{{"),
		[]byte(`{"v":"KERI10JSON ffffff_"}`),
		[]byte(strings.Repeat("-", 100)),
		{0x00, 0xff, 0x80, '{', '}'},
	}
	for _, in := range inputs {
		if got := Parse(in); len(got) != 0 {
			t.Fatalf("Parse(%q): got %d events", in, len(got))
		}
	}
}

func TestParserReusable(t *testing.T) {
	stream := testkit.Stream(icpEvent(t, 0x18), testkit.ControllerSigs(1))
	p := NewParser()
	first := p.Parse(stream)
	second := p.Parse(stream)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reused parser diverged")
	}
	if len(second) != 1 {
		t.Fatalf("results accumulated across calls: %d", len(second))
	}
}

func TestParseTruncatedGroupAbsorbsTail(t *testing.T) {
	full := testkit.ControllerSigs(2)
	cut := full[:len(full)-30] // buffer ends inside the second signature
	stream := testkit.Stream(icpEvent(t, 0x19), cut)
	events := Parse(stream)
	if len(events) != 1 {
		t.Fatalf("got %d events", len(events))
	}
	att := events[0].Attachments[0]
	if att.Count != 2 || len(att.Materials) != 1 {
		t.Fatalf("partial group: count=%d materials=%d", att.Count, len(att.Materials))
	}
	if att.Raw != string(cut) {
		t.Fatalf("truncated raw span must extend to the buffer end")
	}
}

func TestParseBadUnitStopsAtUnitStart(t *testing.T) {
	sigs := testkit.ControllerSigs(1)
	// Declare two units but follow the first with undecodable text.
	bad := append([]byte("-AAC"), sigs[4:]...)
	bad = append(bad, []byte("****")...)
	stream := testkit.Stream(icpEvent(t, 0x1A), bad)
	events := Parse(stream)
	if len(events) != 1 {
		t.Fatalf("got %d events", len(events))
	}
	att := events[0].Attachments[0]
	if len(att.Materials) != 1 {
		t.Fatalf("materials: got %d", len(att.Materials))
	}
	if strings.Contains(att.Raw, "*") {
		t.Fatalf("raw span must stop at the failed unit")
	}
}

func TestParseUnknownCounterLabel(t *testing.T) {
	digest := testkit.AID(0x1B) // any fixed-size primitive works for a generic group
	stream := testkit.Stream(icpEvent(t, 0x1B), []byte("-XAB"+digest))
	att := Parse(stream)[0].Attachments[0]
	if att.Code != "-X" || att.Name != "Counter -X" {
		t.Fatalf("attachment: %+v", att)
	}
	if len(att.Materials) != 1 || att.Materials[0]["type"] != "matter" {
		t.Fatalf("materials: %v", att.Materials)
	}
}

func TestParseBarePrimitiveBecomesRaw(t *testing.T) {
	digest := testkit.AID(0x1C)
	stream := testkit.Stream(icpEvent(t, 0x1C), []byte(digest))
	att := Parse(stream)[0].Attachments[0]
	if att.Code != RawMaterialCode || att.Count != 0 {
		t.Fatalf("attachment: %+v", att)
	}
	if att.Raw != digest {
		t.Fatalf("raw: got %q", att.Raw)
	}
	if att.Materials != nil {
		t.Fatalf("RAW attachments carry no materials")
	}
}

func TestParseAttachmentsBindToPrecedingEvent(t *testing.T) {
	stream := testkit.Stream(
		icpEvent(t, 0x1D), testkit.ControllerSigs(1),
		testkit.MustKeyEvent(testkit.EventOpts{Type: "rot", AID: testkit.AID(0x1D), SN: 1}),
		testkit.SealSourceCouples(1),
	)
	events := Parse(stream)
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].Attachments[0].Code != "-A" {
		t.Fatalf("event 0 attachments: %+v", events[0].Attachments)
	}
	if events[1].Attachments[0].Code != "-G" {
		t.Fatalf("event 1 attachments: %+v", events[1].Attachments)
	}
}
