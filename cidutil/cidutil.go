// Package cidutil derives IPFS-compatible content identifiers for raw key
// event bodies and whole CESR streams. A CID names the exact bytes, so two
// fetches of the same KEL span can be compared without re-parsing.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// EventCID returns a CIDv1 string (raw multicodec + sha2-256 multihash) for
// an event's exact body bytes.
func EventCID(raw []byte) string {
	id, err := StreamCID(raw)
	if err != nil {
		// multihash.Sum with SHA2_256 and default length cannot fail on any
		// input; keep the display path total anyway.
		return ""
	}
	return id.String()
}

// StreamCID returns the CIDv1 (raw + sha2-256) of an arbitrary byte span,
// typically a fetched CESR stream.
func StreamCID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
