package cesr

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
// Error() strings are human-readable and may evolve.
type Kind string

const (
	// KindMalformedPrimitive covers unrecognized primitive code prefixes,
	// invalid Base64 body text, and buffers too short for a declared length.
	KindMalformedPrimitive Kind = "MalformedPrimitive"

	// KindMalformedCounter covers unrecognized counter prefixes and buffers
	// too short to hold the counter's fixed size.
	KindMalformedCounter Kind = "MalformedCounter"

	// KindIncompleteEvent covers event bodies whose embedded version field
	// is absent, unsupported, or declares more bytes than the buffer holds.
	KindIncompleteEvent Kind = "IncompleteEvent"
)

// Rule IDs name the violated framing invariant. The -010 rules mark
// truncation: the prefix was plausible but the buffer ended inside the
// primitive's declared span.
const (
	RuleMatterClass  = "CESR-MAT-001"
	RuleMatterCode   = "CESR-MAT-002"
	RuleMatterB64    = "CESR-MAT-003"
	RuleMatterRaw    = "CESR-MAT-004"
	RuleMatterShort  = "CESR-MAT-010"
	RuleCounterCode  = "CESR-CTR-001"
	RuleCounterCount = "CESR-CTR-002"
	RuleCounterShort = "CESR-CTR-010"
	RuleIndexerClass = "CESR-IDX-001"
	RuleIndexerCode  = "CESR-IDX-002"
	RuleIndexerSoft  = "CESR-IDX-003"
	RuleIndexerShort = "CESR-IDX-010"
	RuleEventVersion = "CESR-EVT-001"
	RuleEventKind    = "CESR-EVT-002"
	RuleEventBody    = "CESR-EVT-003"
	RuleEventShort   = "CESR-EVT-010"
)

// Error is the structured error type for framing failures.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}

var truncationRules = map[string]bool{
	RuleMatterShort:  true,
	RuleCounterShort: true,
	RuleIndexerShort: true,
	RuleEventShort:   true,
}

// IsTruncated reports whether err means the buffer ended inside a primitive
// or event whose prefix was otherwise plausible.
func IsTruncated(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return truncationRules[e.RuleID]
}
