// Package testkit builds synthetic CESR streams: deterministic key events
// with correct version sizes and SAIDs, plus attachment groups assembled from
// real primitives. Tests and the vector generator share these builders.
package testkit

import (
	"encoding/json"
	"fmt"
	"strings"

	"kelp.dev/kelp/cesr"
	"kelp.dev/kelp/said"
)

// dummyDigest occupies the SAID field while the event is sized and digested,
// exactly 44 chars so substitution never changes the length.
const dummyDigest = "############################################"

// EventOpts describes one synthetic key event. Zero-value fields are omitted
// from the JSON.
type EventOpts struct {
	Type    string // ilk: icp, rot, ixn, dip, drt, rct, ...
	AID     string
	Prior   string // SAID of the prior event, for rot/ixn/drt
	SN      uint64
	Keys    []string
	Anchors []map[string]any
}

// keyEvent fixes the KERI field order; encoding/json emits struct fields in
// declaration order.
type keyEvent struct {
	V string           `json:"v"`
	T string           `json:"t"`
	D string           `json:"d"`
	I string           `json:"i"`
	S string           `json:"s"`
	P string           `json:"p,omitempty"`
	K []string         `json:"k,omitempty"`
	A []map[string]any `json:"a,omitempty"`
}

// KeyEvent renders opts as a KERI JSON event with a correct version size
// field and a Blake3-256 SAID derived over the dummy-filled body.
func KeyEvent(opts EventOpts) ([]byte, error) {
	ev := keyEvent{
		V: "KERI10JSON000000_",
		T: opts.Type,
		D: dummyDigest,
		I: opts.AID,
		S: fmt.Sprintf("%x", opts.SN),
		P: opts.Prior,
		K: opts.Keys,
		A: opts.Anchors,
	}
	sized, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	// Size and SAID substitutions preserve length, so one sizing pass is enough.
	ev.V = fmt.Sprintf("KERI10JSON%06x_", len(sized))
	sized, err = json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	digest, err := said.Derive(sized, cesr.CodeBlake3_256)
	if err != nil {
		return nil, err
	}
	return []byte(strings.Replace(string(sized), dummyDigest, digest, 1)), nil
}

// MustKeyEvent is KeyEvent for fixed inputs that cannot fail.
func MustKeyEvent(opts EventOpts) []byte {
	b, err := KeyEvent(opts)
	if err != nil {
		panic(err)
	}
	return b
}

// AID returns a deterministic transferable identifier prefix (code D) whose
// raw key bytes are all fill.
func AID(fill byte) string {
	return mustMatter(cesr.CodeEd25519, rawBytes(32, fill)).QB64
}

// WitnessAID returns a deterministic nontransferable prefix (code B).
func WitnessAID(fill byte) string {
	return mustMatter(cesr.CodeEd25519N, rawBytes(32, fill)).QB64
}

// ControllerSigs builds a "-A" group of n Ed25519 indexed signatures with
// indexes 0..n-1.
func ControllerSigs(n int) []byte { return indexedSigs(cesr.CtrControllerIdxSigs, n) }

// WitnessSigs builds a "-B" group of n Ed25519 indexed signatures.
func WitnessSigs(n int) []byte { return indexedSigs(cesr.CtrWitnessIdxSigs, n) }

func indexedSigs(ctrCode string, n int) []byte {
	var b strings.Builder
	b.WriteString(mustCounter(ctrCode, n).QB64)
	for i := 0; i < n; i++ {
		sig, err := cesr.NewIndexer("A", i, i, rawBytes(64, byte(0x10+i)))
		if err != nil {
			panic(err)
		}
		b.WriteString(sig.QB64)
	}
	return []byte(b.String())
}

// ReceiptCouples builds a "-C" group of n nontransferable receipt couples.
func ReceiptCouples(n int) []byte {
	var b strings.Builder
	b.WriteString(mustCounter(cesr.CtrNonTransReceiptCouples, n).QB64)
	for i := 0; i < n; i++ {
		b.WriteString(mustMatter(cesr.CodeEd25519N, rawBytes(32, byte(0x20+i))).QB64)
		b.WriteString(mustMatter(cesr.CodeEd25519Sig, rawBytes(64, byte(0x30+i))).QB64)
	}
	return []byte(b.String())
}

// SealSourceCouples builds a "-G" group of n seal source couples with
// sequence numbers 0..n-1.
func SealSourceCouples(n int) []byte {
	var b strings.Builder
	b.WriteString(mustCounter(cesr.CtrSealSourceCouples, n).QB64)
	for i := 0; i < n; i++ {
		b.WriteString(cesr.NewSeqner(uint64(i)).QB64)
		b.WriteString(mustMatter(cesr.CodeBlake3_256, rawBytes(32, byte(0x40+i))).QB64)
	}
	return []byte(b.String())
}

// ReplayCouples builds a "-E" group of n first-seen replay couples.
func ReplayCouples(n int) []byte {
	var b strings.Builder
	b.WriteString(mustCounter(cesr.CtrFirstSeenReplayCouples, n).QB64)
	for i := 0; i < n; i++ {
		b.WriteString(cesr.NewSeqner(uint64(i)).QB64)
		b.WriteString(mustMatter(cesr.CodeDateTime, rawBytes(24, byte(0x50+i))).QB64)
	}
	return []byte(b.String())
}

// Stream concatenates parts into one buffer.
func Stream(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func rawBytes(n int, fill byte) []byte {
	raw := make([]byte, n)
	for i := range raw {
		raw[i] = fill
	}
	return raw
}

func mustMatter(code string, raw []byte) cesr.Matter {
	m, err := cesr.NewMatter(code, raw)
	if err != nil {
		panic(err)
	}
	return m
}

func mustCounter(code string, count int) cesr.Counter {
	c, err := cesr.NewCounter(code, count)
	if err != nil {
		panic(err)
	}
	return c
}
