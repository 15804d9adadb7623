// Package cesr implements encoding and decoding of fixed-size CESR 1.0 text
// primitives: ordinary material (Matter), group counters (Counter), indexed
// signatures (Indexer) and sequence numbers (Seqner).
//
// Every primitive is self-framing: its total textual length is a pure
// function of its derivation code, so decoding never needs external length
// information. This package covers the fixed-size code families a key event
// log browser needs; variable-size classes are rejected as malformed.
package cesr
