package kel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"kelp.dev/kelp/cesr"
)

// versionPattern matches a CESR 1.x version field: protocol, two hex version
// digits, a four-char serialization kind, and the total event size as six
// hex chars, terminated by "_".
var versionPattern = regexp.MustCompile(`(KERI|ACDC)([0-9a-f])([0-9a-f])([A-Z]{4})([0-9a-f]{6})_`)

// versionSniffWindow bounds how far into a candidate body the version field
// may sit. Canonical events place it in the leading "v" field.
const versionSniffWindow = 32

type versionInfo struct {
	proto string
	major int
	minor int
	kind  string
	size  int
}

func newEventError(ruleID, msg string) error {
	return &cesr.Error{Kind: cesr.KindIncompleteEvent, RuleID: ruleID, Message: msg}
}

// sniffVersion locates and decodes the version field near the start of an
// event body.
func sniffVersion(data []byte) (versionInfo, error) {
	window := data
	if len(window) > versionSniffWindow {
		window = window[:versionSniffWindow]
	}
	m := versionPattern.FindSubmatch(window)
	if m == nil {
		return versionInfo{}, newEventError(cesr.RuleEventVersion, "no version field in event head")
	}
	major, _ := strconv.ParseInt(string(m[2]), 16, 8)
	minor, _ := strconv.ParseInt(string(m[3]), 16, 8)
	size, err := strconv.ParseInt(string(m[5]), 16, 32)
	if err != nil || size <= 0 {
		return versionInfo{}, newEventError(cesr.RuleEventVersion, "invalid event size field")
	}
	return versionInfo{
		proto: string(m[1]),
		major: int(major),
		minor: int(minor),
		kind:  string(m[4]),
		size:  int(size),
	}, nil
}

// extractEvent deserializes the complete event body starting at data[offset].
// The body's exact byte length comes from the size embedded in its version
// field; no external delimiter is consulted. The returned raw slice aliases
// data.
func extractEvent(data []byte, offset int) ([]byte, map[string]any, error) {
	info, err := sniffVersion(data[offset:])
	if err != nil {
		return nil, nil, err
	}
	if info.kind != "JSON" {
		return nil, nil, newEventError(cesr.RuleEventKind,
			fmt.Sprintf("unsupported serialization kind %q", info.kind))
	}
	if offset+info.size > len(data) {
		return nil, nil, newEventError(cesr.RuleEventShort,
			fmt.Sprintf("event declares %d bytes, only %d remain", info.size, len(data)-offset))
	}

	raw := data[offset : offset+info.size]
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, nil, newEventError(cesr.RuleEventBody, fmt.Sprintf("event body is not valid JSON: %v", err))
	}
	// A size field that overshoots the real body pulls trailing attachment
	// text into the JSON decode and fails above; undershooting leaves an
	// unterminated object, which also fails. Reject leftover tokens for the
	// exact-size case.
	if dec.More() {
		return nil, nil, newEventError(cesr.RuleEventBody, "trailing bytes inside declared event span")
	}
	return raw, fields, nil
}
