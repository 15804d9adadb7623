package cesr

import (
	"math"
	"strings"
	"testing"
)

func TestSeqnerZero(t *testing.T) {
	s := NewSeqner(0)
	want := "0A" + strings.Repeat("A", 22)
	if s.QB64 != want {
		t.Fatalf("got %q want %q", s.QB64, want)
	}
	if s.SN() != 0 {
		t.Fatalf("SN: got %d", s.SN())
	}
	if s.SNHex() != "0" {
		t.Fatalf("SNHex: got %q", s.SNHex())
	}
}

func TestSeqnerRoundTrip(t *testing.T) {
	for _, sn := range []uint64{1, 26, 0xdeadbeef, math.MaxUint64} {
		s := NewSeqner(sn)
		got, err := DecodeSeqner([]byte(s.QB64), 0)
		if err != nil {
			t.Fatalf("DecodeSeqner(%d): %v", sn, err)
		}
		if got.SN() != sn {
			t.Fatalf("SN: got %d want %d", got.SN(), sn)
		}
	}
	if NewSeqner(26).SNHex() != "1a" {
		t.Fatalf("SNHex(26): got %q", NewSeqner(26).SNHex())
	}
}

func TestSeqnerSaturates(t *testing.T) {
	// High 8 raw bytes nonzero: value exceeds uint64.
	raw := make([]byte, 16)
	raw[0] = 1
	m, err := NewMatter(CodeSalt128, raw)
	if err != nil {
		t.Fatalf("NewMatter: %v", err)
	}
	s, err := DecodeSeqner([]byte(m.QB64), 0)
	if err != nil {
		t.Fatalf("DecodeSeqner: %v", err)
	}
	if s.SN() != math.MaxUint64 {
		t.Fatalf("SN: got %d want saturation", s.SN())
	}
}

func TestSeqnerRejectsOtherCodes(t *testing.T) {
	m, err := NewMatter(CodeBlake3_256, make([]byte, 32))
	if err != nil {
		t.Fatalf("NewMatter: %v", err)
	}
	if _, err := DecodeSeqner([]byte(m.QB64), 0); RuleID(err) != RuleMatterCode {
		t.Fatalf("got rule %s err %v", RuleID(err), err)
	}
}
