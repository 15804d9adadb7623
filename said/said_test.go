package said

import (
	"crypto/sha256"
	"testing"

	"kelp.dev/kelp/cesr"
)

func TestDeriveSizes(t *testing.T) {
	data := []byte("key event body")
	cases := map[string]int{
		Blake3_256:  44,
		Blake2b_256: 44,
		SHA3_256:    44,
		SHA2_256:    44,
		Blake3_512:  88,
		Blake2b_512: 88,
		SHA3_512:    88,
		SHA2_512:    88,
	}
	for code, want := range cases {
		qb64, err := Derive(data, code)
		if err != nil {
			t.Fatalf("Derive(%q): %v", code, err)
		}
		if len(qb64) != want {
			t.Fatalf("Derive(%q): len %d want %d", code, len(qb64), want)
		}
		m, err := cesr.DecodeMatter([]byte(qb64), 0)
		if err != nil {
			t.Fatalf("DecodeMatter(%q): %v", code, err)
		}
		if m.Code != code {
			t.Fatalf("code: got %q want %q", m.Code, code)
		}
	}
}

func TestDeriveSHA256Agrees(t *testing.T) {
	data := []byte("abc")
	sum := sha256.Sum256(data)
	want, err := cesr.NewMatter(SHA2_256, sum[:])
	if err != nil {
		t.Fatalf("NewMatter: %v", err)
	}
	got, err := Derive(data, SHA2_256)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if got != want.QB64 {
		t.Fatalf("got %q want %q", got, want.QB64)
	}
}

func TestMatches(t *testing.T) {
	data := []byte("inception event")
	qb64, err := Derive(data, Blake3_256)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !Matches(data, qb64) {
		t.Fatalf("Matches must hold for a derived digest")
	}
	if Matches(append(data, '!'), qb64) {
		t.Fatalf("Matches must fail on tampered data")
	}
	if Matches(data, qb64[:43]) {
		t.Fatalf("Matches must fail on a truncated digest")
	}
	if Matches(data, "") {
		t.Fatalf("Matches must fail on empty input")
	}
}

func TestDeriveUnknownCode(t *testing.T) {
	if _, err := Derive([]byte("x"), "Z"); err == nil {
		t.Fatalf("expected error for unknown code")
	}
	// Key codes are valid matter but not digests.
	if _, err := Derive([]byte("x"), "D"); err == nil {
		t.Fatalf("expected error for non-digest code")
	}
}
