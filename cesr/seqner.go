package cesr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Seqner is a sequence-number primitive: code "0A" over a 16-byte big-endian
// unsigned value.
type Seqner struct {
	Matter
}

// SN returns the sequence number. Values above math.MaxUint64 saturate;
// real key event logs never approach that bound.
func (s Seqner) SN() uint64 {
	if len(s.Raw) != 16 {
		return 0
	}
	for _, b := range s.Raw[:8] {
		if b != 0 {
			return math.MaxUint64
		}
	}
	return binary.BigEndian.Uint64(s.Raw[8:])
}

// SNHex returns the sequence number as lowercase hex without leading zeros.
func (s Seqner) SNHex() string {
	return fmt.Sprintf("%x", s.SN())
}

// DecodeSeqner decodes the sequence-number primitive starting at data[offset].
func DecodeSeqner(data []byte, offset int) (Seqner, error) {
	m, err := DecodeMatter(data, offset)
	if err != nil {
		return Seqner{}, err
	}
	if m.Code != CodeSalt128 {
		return Seqner{}, newError(KindMalformedPrimitive, RuleMatterCode,
			fmt.Sprintf("expected sequence-number code %q, got %q", CodeSalt128, m.Code))
	}
	return Seqner{Matter: m}, nil
}

// NewSeqner builds a sequence-number primitive for sn.
func NewSeqner(sn uint64) Seqner {
	raw := make([]byte, 16)
	binary.BigEndian.PutUint64(raw[8:], sn)
	m, err := NewMatter(CodeSalt128, raw)
	if err != nil {
		// 16 bytes always fits code 0A
		panic(err)
	}
	return Seqner{Matter: m}
}
