package kel

import (
	"bytes"
	"fmt"

	"kelp.dev/kelp/cesr"
)

// groupNames maps CESR 1.0 counter codes to display names. Codes outside the
// table still decode; they get a generic "Counter <code>" label and the
// fallback material decode.
var groupNames = map[string]string{
	cesr.CtrControllerIdxSigs:      "Controller Indexed Sigs",
	cesr.CtrWitnessIdxSigs:         "Witness Indexed Sigs",
	cesr.CtrNonTransReceiptCouples: "Nontransferable Receipt Couples",
	cesr.CtrTransReceiptQuadruples: "Transferable Receipt Quadruples",
	cesr.CtrFirstSeenReplayCouples: "First Seen Replay Couples",
	cesr.CtrTransIdxSigGroups:      "Trans Indexed Sig Groups",
	cesr.CtrSealSourceCouples:      "Seal Source Couples",
	cesr.CtrTransLastIdxSigGroups:  "Trans Last Indexed Sig Groups",
	cesr.CtrSealSourceTriples:      "Seal Source Triples",
	cesr.CtrSadPathSigGroups:       "SAD Path Sig Groups",
	cesr.CtrRootSadPathSigGroups:   "Root SAD Path Sig Groups",
	cesr.CtrPathedMaterialGroup:    "Pathed Material Group",
	cesr.CtrAttachmentGroup:        "Attachment Group",
	cesr.CtrGenericGroup:           "Generic Group",
	cesr.CtrESSRPayloadGroup:       "ESSR Payload Group",
}

func groupName(code string) string {
	if n, ok := groupNames[code]; ok {
		return n
	}
	return fmt.Sprintf("Counter %s", code)
}

// RawMaterialCode marks pseudo-attachments of bare primitive text that was
// not introduced by any counter.
const RawMaterialCode = "RAW"

type scanState int

const (
	seekingEvent scanState = iota
	inAttachments
	scanDone
)

// Parser scans CESR streams for key events and their trailing attachments.
//
// A Parser holds no state across calls beyond its result list, which is
// reset at the start of each Parse, so one instance may be reused
// sequentially. It is not safe for concurrent use.
type Parser struct {
	events []Event
}

// NewParser returns a reusable stream parser.
func NewParser() *Parser { return &Parser{} }

// Parse decodes every key event in data, in stream order, each with exactly
// the attachments that lay contiguously between it and the next event. It is
// total over arbitrary bytes: malformed spans are skipped byte by byte and
// never surface as errors.
func Parse(data []byte) []Event { return NewParser().Parse(data) }

// Parse implements the scan as an explicit state machine over a single
// advancing cursor; worst case work is one decode attempt per byte.
func (p *Parser) Parse(data []byte) []Event {
	p.events = nil
	offset := 0
	state := seekingEvent

	for state != scanDone {
		switch state {
		case seekingEvent:
			offset = skipSpace(data, offset)
			if offset >= len(data) {
				state = scanDone
				break
			}
			if data[offset] != '{' {
				// noise byte; resynchronize
				offset++
				break
			}
			raw, fields, err := extractEvent(data, offset)
			if err != nil {
				offset++
				break
			}
			p.events = append(p.events, Event{Raw: string(raw), Data: fields})
			offset += len(raw)
			state = inAttachments

		case inAttachments:
			offset = skipSpace(data, offset)
			if offset >= len(data) {
				state = scanDone
				break
			}
			c := data[offset]
			if c == '{' {
				state = seekingEvent
				break
			}
			ev := &p.events[len(p.events)-1]
			switch {
			case c == '-':
				ctr, err := cesr.DecodeCounter(data, offset)
				if err != nil {
					offset++
					break
				}
				materials, end := decodeGroup(data, offset+ctr.Size(), ctr.Code, ctr.Count)
				ev.Attachments = append(ev.Attachments, Attachment{
					Code:      ctr.Code,
					Count:     ctr.Count,
					Name:      groupName(ctr.Code),
					Raw:       string(data[offset:end]),
					Materials: materials,
				})
				offset = end
			case isPrimitiveText(c):
				// bare CESR material with no introducing counter: consume up
				// to the next event opener or the next decodable counter
				start := offset
				for offset < len(data) {
					if data[offset] == '{' {
						break
					}
					if data[offset] == '-' {
						if _, err := cesr.DecodeCounter(data, offset); err == nil {
							break
						}
					}
					offset++
				}
				span := data[start:offset]
				if len(bytes.TrimSpace(span)) > 0 {
					ev.Attachments = append(ev.Attachments, Attachment{
						Code:      RawMaterialCode,
						Count:     0,
						Name:      "Raw CESR Material",
						Raw:       string(span),
						Materials: nil,
					})
				}
			default:
				// anything else ends the attachment scan for this event
				state = seekingEvent
			}
		}
	}
	return p.events
}

func skipSpace(data []byte, offset int) int {
	for offset < len(data) {
		switch data[offset] {
		case ' ', '\t', '\n', '\r':
			offset++
		default:
			return offset
		}
	}
	return offset
}

func isPrimitiveText(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') || c == '-' || c == '_'
}

// decodeGroup decodes exactly count units of the group introduced by code,
// starting just past the counter. It stops early on buffer exhaustion or a
// unit that fails to decode, keeping whatever was decoded so far. When the
// failure is truncation the reported end extends to the buffer end, so the
// attachment's raw span absorbs the partial tail; otherwise it stops at the
// failed unit's start so the scanner can resynchronize there.
func decodeGroup(data []byte, offset int, code string, count int) ([]Material, int) {
	switch code {
	case cesr.CtrControllerIdxSigs, cesr.CtrWitnessIdxSigs:
		return decodeIndexedSigs(data, offset, count)
	case cesr.CtrNonTransReceiptCouples:
		return decodeReceiptCouples(data, offset, count)
	case cesr.CtrSealSourceCouples:
		return decodeSealSourceCouples(data, offset, count)
	case cesr.CtrFirstSeenReplayCouples:
		return decodeReplayCouples(data, offset, count)
	default:
		return decodeGenericGroup(data, offset, count)
	}
}

func failEnd(data []byte, unitStart int, err error) int {
	if cesr.IsTruncated(err) {
		return len(data)
	}
	return unitStart
}

func decodeIndexedSigs(data []byte, offset int, count int) ([]Material, int) {
	var materials []Material
	for i := 0; i < count; i++ {
		if offset >= len(data) {
			break
		}
		sig, err := cesr.DecodeIndexer(data, offset)
		if err != nil {
			return materials, failEnd(data, offset, err)
		}
		m := Material{
			"type":  "indexed_sig",
			"index": sig.Index,
			"ondex": nil,
			"code":  sig.Code,
			"qb64":  sig.QB64,
		}
		if sig.HasOndex {
			m["ondex"] = sig.Ondex
		}
		materials = append(materials, m)
		offset += sig.Size()
	}
	return materials, offset
}

func decodeReceiptCouples(data []byte, offset int, count int) ([]Material, int) {
	var materials []Material
	for i := 0; i < count; i++ {
		if offset >= len(data) {
			break
		}
		unitStart := offset
		prefixer, err := cesr.DecodeMatter(data, offset)
		if err != nil {
			return materials, failEnd(data, unitStart, err)
		}
		offset += prefixer.Size()
		cigar, err := cesr.DecodeMatter(data, offset)
		if err != nil {
			return materials, failEnd(data, unitStart, err)
		}
		offset += cigar.Size()
		materials = append(materials, Material{
			"type":      "receipt_couple",
			"prefix":    prefixer.QB64,
			"signature": cigar.QB64,
		})
	}
	return materials, offset
}

func decodeSealSourceCouples(data []byte, offset int, count int) ([]Material, int) {
	var materials []Material
	for i := 0; i < count; i++ {
		if offset >= len(data) {
			break
		}
		unitStart := offset
		seqner, err := cesr.DecodeSeqner(data, offset)
		if err != nil {
			return materials, failEnd(data, unitStart, err)
		}
		offset += seqner.Size()
		saider, err := cesr.DecodeMatter(data, offset)
		if err != nil {
			return materials, failEnd(data, unitStart, err)
		}
		offset += saider.Size()
		materials = append(materials, Material{
			"type": "seal_source",
			"sn":   seqner.SN(),
			"said": saider.QB64,
		})
	}
	return materials, offset
}

func decodeReplayCouples(data []byte, offset int, count int) ([]Material, int) {
	var materials []Material
	for i := 0; i < count; i++ {
		if offset >= len(data) {
			break
		}
		unitStart := offset
		seqner, err := cesr.DecodeSeqner(data, offset)
		if err != nil {
			return materials, failEnd(data, unitStart, err)
		}
		offset += seqner.Size()
		dater, err := cesr.DecodeMatter(data, offset)
		if err != nil {
			return materials, failEnd(data, unitStart, err)
		}
		offset += dater.Size()
		materials = append(materials, Material{
			"type":     "first_seen",
			"sn":       seqner.SN(),
			"datetime": dater.QB64,
		})
	}
	return materials, offset
}

func decodeGenericGroup(data []byte, offset int, count int) ([]Material, int) {
	var materials []Material
	for i := 0; i < count; i++ {
		if offset >= len(data) {
			break
		}
		m, err := cesr.DecodeMatter(data, offset)
		if err != nil {
			return materials, failEnd(data, offset, err)
		}
		materials = append(materials, Material{
			"type": "matter",
			"code": m.Code,
			"qb64": m.QB64,
		})
		offset += m.Size()
	}
	return materials, offset
}
