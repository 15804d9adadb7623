package kel

import (
	"encoding/json"
	"strconv"
	"strings"

	"kelp.dev/kelp/cidutil"
)

// Material is one decoded unit of attachment cryptographic material. Its
// keys depend on the group kind (see the group decoders in parser.go).
type Material = map[string]any

// Attachment is one counter-prefixed group that trailed an event in the
// stream, or a pseudo-attachment of bare primitive text (Code "RAW").
type Attachment struct {
	Code      string     `json:"code"`      // counter code, e.g. "-A", or "RAW"
	Count     int        `json:"count"`     // declared unit count; 0 for RAW
	Name      string     `json:"name"`      // human-readable group name
	Raw       string     `json:"raw"`       // exact textual span, counter included
	Materials []Material `json:"materials"` // decoded units, possibly partial
}

// TypeLabel returns the human-readable label for the attachment kind.
func (a Attachment) TypeLabel() string { return a.Name }

// Event is one parsed key event. It is created once per successful scan step
// and never mutated afterwards; all semantic accessors are pure projections
// of Data.
type Event struct {
	Raw         string         // event body exactly as it appeared in the stream
	Data        map[string]any // parsed JSON fields
	Attachments []Attachment
}

func (e Event) str(key string) string {
	if v, ok := e.Data[key].(string); ok {
		return v
	}
	return ""
}

// Version returns the event's version field, e.g. "KERI10JSON0001a3_".
func (e Event) Version() string { return e.str("v") }

// Type returns the event ilk (icp, rot, ixn, ...).
func (e Event) Type() string { return e.str("t") }

// Digest returns the event SAID.
func (e Event) Digest() string { return e.str("d") }

// Identifier returns the AID this event belongs to.
func (e Event) Identifier() string { return e.str("i") }

// Prior returns the prior event digest.
func (e Event) Prior() string { return e.str("p") }

// Sequence returns the sequence number as an integer. KERI serializes it as
// a hex string; native JSON integers are honored too. Unparseable values
// normalize to zero rather than failing.
func (e Event) Sequence() uint64 {
	switch s := e.Data["s"].(type) {
	case json.Number:
		if n, err := strconv.ParseUint(s.String(), 10, 64); err == nil {
			return n
		}
	case string:
		if n, err := strconv.ParseUint(s, 16, 64); err == nil {
			return n
		}
	}
	return 0
}

// SequenceHex returns the sequence number as a hex string, preserving the
// source representation when it already was a string.
func (e Event) SequenceHex() string {
	switch s := e.Data["s"].(type) {
	case json.Number:
		if n, err := strconv.ParseUint(s.String(), 10, 64); err == nil {
			return strconv.FormatUint(n, 16)
		}
		return s.String()
	case string:
		return s
	}
	return "0"
}

// Anchors returns the event's anchor seal list, if any.
func (e Event) Anchors() []any {
	if a, ok := e.Data["a"].([]any); ok {
		return a
	}
	return nil
}

var typeLabels = map[string]string{
	"icp": "Inception",
	"rot": "Rotation",
	"ixn": "Interaction",
	"dip": "Delegated Inception",
	"drt": "Delegated Rotation",
	"rct": "Receipt",
	"qry": "Query",
	"rpy": "Reply",
	"exn": "Exchange",
	"vcp": "VC Registry Inception",
	"vrt": "VC Registry Rotation",
	"iss": "VC Issuance",
	"rev": "VC Revocation",
	"bis": "Backer VC Issuance",
	"brv": "Backer VC Revocation",
}

// TypeLabel returns a human-readable label for the event ilk, falling back
// to the uppercased raw code.
func (e Event) TypeLabel() string {
	if l, ok := typeLabels[e.Type()]; ok {
		return l
	}
	return strings.ToUpper(e.Type())
}

// Protocol returns the protocol tag from the version field ("KERI", "ACDC").
func (e Event) Protocol() string {
	v := e.Version()
	if len(v) < 4 {
		return ""
	}
	return v[:4]
}

// CESRVersion returns the CESR version as "major.minor", read from the two
// single digits following the protocol tag.
func (e Event) CESRVersion() string {
	v := e.Version()
	if len(v) < 6 {
		return ""
	}
	return v[4:5] + "." + v[5:6]
}

// CESRMajorVersion returns the major CESR version digit, 0 when absent.
func (e Event) CESRMajorVersion() int {
	v := e.Version()
	if len(v) < 5 {
		return 0
	}
	n, err := strconv.ParseInt(v[4:5], 16, 8)
	if err != nil {
		return 0
	}
	return int(n)
}

// Serialization returns the serialization-format tag at the fixed version
// field offsets 6-10.
func (e Event) Serialization() string {
	v := e.Version()
	if len(v) < 11 {
		return ""
	}
	return v[6:11]
}

// ShortDigest returns a truncated SAID for display.
func (e Event) ShortDigest() string {
	d := e.Digest()
	if len(d) > 12 {
		return d[:12] + "..."
	}
	return d
}

// ShortIdentifier returns a truncated AID for display.
func (e Event) ShortIdentifier() string {
	i := e.Identifier()
	if len(i) > 16 {
		return i[:16] + "..."
	}
	return i
}

// CID returns a CIDv1 (raw + sha2-256) content identifier for the event's
// exact body bytes.
func (e Event) CID() string {
	return cidutil.EventCID([]byte(e.Raw))
}
