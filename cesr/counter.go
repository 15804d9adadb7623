package cesr

import "fmt"

// Counter is a group-introducing primitive: its code names a group kind and
// its count is the number of repeated units that follow, never a byte length.
type Counter struct {
	Code  string // group code, "-X" or "-0X"
	Count int
	QB64  string
}

// Size returns the counter's total textual length, fixed by its code family:
// 4 chars for small counters, 8 for big ones.
func (c Counter) Size() int { return len(c.QB64) }

// DecodeCounter decodes the counter starting at data[offset]. Genus/version
// counters ("--") and any other prefix outside the small/big families fail
// with KindMalformedCounter.
func DecodeCounter(data []byte, offset int) (Counter, error) {
	if offset+2 > len(data) {
		return Counter{}, newError(KindMalformedCounter, RuleCounterShort, "buffer too short for counter code")
	}
	if data[offset] != '-' {
		return Counter{}, newError(KindMalformedCounter, RuleCounterCode,
			fmt.Sprintf("counter must begin with '-', got %q", data[offset]))
	}

	hs := 2
	fs := 4
	if data[offset+1] == '0' {
		hs, fs = 3, 8
		if offset+hs > len(data) {
			return Counter{}, newError(KindMalformedCounter, RuleCounterShort, "buffer too short for big counter code")
		}
		if !isLetter(data[offset+2]) {
			return Counter{}, newError(KindMalformedCounter, RuleCounterCode,
				fmt.Sprintf("unknown big counter code %q", string(data[offset:offset+hs])))
		}
	} else if !isLetter(data[offset+1]) {
		return Counter{}, newError(KindMalformedCounter, RuleCounterCode,
			fmt.Sprintf("unknown counter code %q", string(data[offset:offset+2])))
	}
	if offset+fs > len(data) {
		return Counter{}, newError(KindMalformedCounter, RuleCounterShort,
			fmt.Sprintf("buffer too short for counter: need %d chars", fs))
	}

	qb64 := string(data[offset : offset+fs])
	count, err := b64ToInt(qb64[hs:])
	if err != nil {
		return Counter{}, newError(KindMalformedCounter, RuleCounterCount,
			fmt.Sprintf("invalid counter count chars: %v", err))
	}
	return Counter{Code: qb64[:hs], Count: count, QB64: qb64}, nil
}

// NewCounter builds a counter from a group code and unit count.
func NewCounter(code string, count int) (Counter, error) {
	var ss int
	switch {
	case len(code) == 2 && code[0] == '-' && isLetter(code[1]):
		ss = 2
	case len(code) == 3 && code[0] == '-' && code[1] == '0' && isLetter(code[2]):
		ss = 5
	default:
		return Counter{}, newError(KindMalformedCounter, RuleCounterCode,
			fmt.Sprintf("unknown counter code %q", code))
	}
	max := 1<<(6*ss) - 1
	if count < 0 || count > max {
		return Counter{}, newError(KindMalformedCounter, RuleCounterCount,
			fmt.Sprintf("count %d out of range for code %q", count, code))
	}
	return Counter{Code: code, Count: count, QB64: code + intToB64(count, ss)}, nil
}
