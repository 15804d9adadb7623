package cesr

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Matter is one decoded fixed-size CESR text primitive.
type Matter struct {
	Code string // derivation code
	QB64 string // full textual form, code included
	Raw  []byte // decoded payload bytes
}

// Size returns the primitive's total textual length.
func (m Matter) Size() int { return len(m.QB64) }

// hardSize returns the stable code length implied by the first code char,
// or 0 for code classes this package does not support (variable size,
// count codes, op codes).
func hardSize(c byte) int {
	switch {
	case isLetter(c):
		return 1
	case c == '0':
		return 2
	case c == '1':
		return 4
	default:
		return 0
	}
}

// DecodeMatter decodes the primitive starting at data[offset]. It fails with
// KindMalformedPrimitive when the prefix matches no known code or the buffer
// is shorter than the code's declared full size.
func DecodeMatter(data []byte, offset int) (Matter, error) {
	if offset >= len(data) {
		return Matter{}, newError(KindMalformedPrimitive, RuleMatterShort, "empty primitive")
	}
	hs := hardSize(data[offset])
	if hs == 0 {
		return Matter{}, newError(KindMalformedPrimitive, RuleMatterClass,
			fmt.Sprintf("unsupported primitive code class %q", data[offset]))
	}
	if offset+hs > len(data) {
		return Matter{}, newError(KindMalformedPrimitive, RuleMatterShort, "buffer too short for primitive code")
	}
	code := string(data[offset : offset+hs])
	sz, ok := matterSizes[code]
	if !ok {
		return Matter{}, newError(KindMalformedPrimitive, RuleMatterCode,
			fmt.Sprintf("unknown primitive code %q", code))
	}
	if offset+sz.Fs > len(data) {
		return Matter{}, newError(KindMalformedPrimitive, RuleMatterShort,
			fmt.Sprintf("buffer too short for primitive %q: need %d chars", code, sz.Fs))
	}
	qb64 := string(data[offset : offset+sz.Fs])
	raw, err := decodeBody(qb64, sz.Hs+sz.Ss)
	if err != nil {
		return Matter{}, newError(KindMalformedPrimitive, RuleMatterB64,
			fmt.Sprintf("invalid primitive body for code %q: %v", code, err))
	}
	return Matter{Code: code, QB64: qb64, Raw: raw}, nil
}

// NewMatter builds a primitive from a derivation code and its raw payload.
func NewMatter(code string, raw []byte) (Matter, error) {
	sz, ok := matterSizes[code]
	if !ok {
		return Matter{}, newError(KindMalformedPrimitive, RuleMatterCode,
			fmt.Sprintf("unknown primitive code %q", code))
	}
	want := rawSize(sz.Fs, sz.Hs+sz.Ss)
	if len(raw) != want {
		return Matter{}, newError(KindMalformedPrimitive, RuleMatterRaw,
			fmt.Sprintf("code %q needs %d raw bytes, got %d", code, want, len(raw)))
	}
	return Matter{Code: code, QB64: code + encodeBody(raw, sz.Hs+sz.Ss), Raw: append([]byte(nil), raw...)}, nil
}

// decodeBody converts the post-code portion of a qb64 primitive to raw bytes.
// The code prefix occupies cs chars; pre-padding with 'A' realigns the body
// to the Base64 3-byte boundary.
func decodeBody(qb64 string, cs int) ([]byte, error) {
	ps := cs % 4
	body := qb64[cs:]
	if ps == 0 {
		return base64.RawURLEncoding.DecodeString(body)
	}
	paw, err := base64.RawURLEncoding.DecodeString(strings.Repeat("A", ps) + body)
	if err != nil {
		return nil, err
	}
	return paw[ps:], nil
}

// encodeBody is the inverse of decodeBody: zero lead bytes stand in for the
// code prefix during encoding, then the aligned chars are stripped.
func encodeBody(raw []byte, cs int) string {
	ps := cs % 4
	if ps == 0 {
		return base64.RawURLEncoding.EncodeToString(raw)
	}
	padded := make([]byte, ps+len(raw))
	copy(padded[ps:], raw)
	return base64.RawURLEncoding.EncodeToString(padded)[ps:]
}

// rawSize derives the payload byte count from a code's textual layout.
func rawSize(fs, cs int) int {
	ps := cs % 4
	return (fs-cs+ps)*3/4 - ps
}
