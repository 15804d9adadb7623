package cesr

import "fmt"

// Indexer is a decoded indexed-signature primitive. Index is the position of
// the signing key in the current key list. Ondex, when present, is the
// position in the prior next-key list; current-only codes never carry one,
// and dual codes without soft space for it reuse Index.
type Indexer struct {
	Code     string
	Index    int
	Ondex    int
	HasOndex bool
	QB64     string
	Raw      []byte
}

// Size returns the primitive's total textual length.
func (x Indexer) Size() int { return len(x.QB64) }

func indexerHardSize(c byte) int {
	switch {
	case isLetter(c):
		return 1
	case c >= '0' && c <= '4':
		return 2
	default:
		return 0
	}
}

// DecodeIndexer decodes the indexed-signature primitive starting at
// data[offset].
func DecodeIndexer(data []byte, offset int) (Indexer, error) {
	if offset >= len(data) {
		return Indexer{}, newError(KindMalformedPrimitive, RuleIndexerShort, "empty indexed primitive")
	}
	hs := indexerHardSize(data[offset])
	if hs == 0 {
		return Indexer{}, newError(KindMalformedPrimitive, RuleIndexerClass,
			fmt.Sprintf("unsupported indexed code class %q", data[offset]))
	}
	if offset+hs > len(data) {
		return Indexer{}, newError(KindMalformedPrimitive, RuleIndexerShort, "buffer too short for indexed code")
	}
	code := string(data[offset : offset+hs])
	sz, ok := indexerSizes[code]
	if !ok {
		return Indexer{}, newError(KindMalformedPrimitive, RuleIndexerCode,
			fmt.Sprintf("unknown indexed code %q", code))
	}
	if offset+sz.Fs > len(data) {
		return Indexer{}, newError(KindMalformedPrimitive, RuleIndexerShort,
			fmt.Sprintf("buffer too short for indexed primitive %q: need %d chars", code, sz.Fs))
	}

	qb64 := string(data[offset : offset+sz.Fs])
	soft := qb64[sz.Hs : sz.Hs+sz.Ss]
	index, err := b64ToInt(soft[:sz.Ss-sz.Os])
	if err != nil {
		return Indexer{}, newError(KindMalformedPrimitive, RuleIndexerSoft,
			fmt.Sprintf("invalid index chars for code %q: %v", code, err))
	}

	x := Indexer{Code: code, Index: index, QB64: qb64}
	switch {
	case currentOnlyIndexCodes[code]:
		// no other index by definition
	case sz.Os > 0:
		ondex, oerr := b64ToInt(soft[sz.Ss-sz.Os:])
		if oerr != nil {
			return Indexer{}, newError(KindMalformedPrimitive, RuleIndexerSoft,
				fmt.Sprintf("invalid other-index chars for code %q: %v", code, oerr))
		}
		x.Ondex, x.HasOndex = ondex, true
	default:
		// dual code with no soft space for a distinct other index
		x.Ondex, x.HasOndex = index, true
	}

	raw, err := decodeBody(qb64, sz.Hs+sz.Ss)
	if err != nil {
		return Indexer{}, newError(KindMalformedPrimitive, RuleMatterB64,
			fmt.Sprintf("invalid indexed body for code %q: %v", code, err))
	}
	x.Raw = raw
	return x, nil
}

// NewIndexer builds an indexed-signature primitive. For dual codes with no
// dedicated other-index space, ondex must equal index; for current-only
// codes it is ignored.
func NewIndexer(code string, index, ondex int, raw []byte) (Indexer, error) {
	sz, ok := indexerSizes[code]
	if !ok {
		return Indexer{}, newError(KindMalformedPrimitive, RuleIndexerCode,
			fmt.Sprintf("unknown indexed code %q", code))
	}
	want := rawSize(sz.Fs, sz.Hs+sz.Ss)
	if len(raw) != want {
		return Indexer{}, newError(KindMalformedPrimitive, RuleMatterRaw,
			fmt.Sprintf("indexed code %q needs %d raw bytes, got %d", code, want, len(raw)))
	}
	is := sz.Ss - sz.Os
	if index < 0 || index >= 1<<(6*is) {
		return Indexer{}, newError(KindMalformedPrimitive, RuleIndexerSoft,
			fmt.Sprintf("index %d out of range for code %q", index, code))
	}

	soft := intToB64(index, is)
	x := Indexer{Code: code, Index: index}
	switch {
	case currentOnlyIndexCodes[code]:
		if sz.Os > 0 {
			soft += intToB64(0, sz.Os)
		}
	case sz.Os > 0:
		if ondex < 0 || ondex >= 1<<(6*sz.Os) {
			return Indexer{}, newError(KindMalformedPrimitive, RuleIndexerSoft,
				fmt.Sprintf("other index %d out of range for code %q", ondex, code))
		}
		soft += intToB64(ondex, sz.Os)
		x.Ondex, x.HasOndex = ondex, true
	default:
		if ondex != index {
			return Indexer{}, newError(KindMalformedPrimitive, RuleIndexerSoft,
				fmt.Sprintf("code %q cannot encode other index %d distinct from index %d", code, ondex, index))
		}
		x.Ondex, x.HasOndex = index, true
	}

	x.QB64 = code + soft + encodeBody(raw, sz.Hs+sz.Ss)
	x.Raw = append([]byte(nil), raw...)
	return x, nil
}
