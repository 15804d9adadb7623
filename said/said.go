// Package said derives CESR digest primitives (self-addressing identifiers)
// from raw bytes. It covers the fixed-size digest codes a log browser can
// display; it performs no signature operations.
package said

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"

	"kelp.dev/kelp/cesr"
)

// Digest codes supported by Derive.
const (
	Blake3_256  = "E"
	Blake2b_256 = "F"
	SHA3_256    = "H"
	SHA2_256    = "I"
	Blake3_512  = "0D"
	Blake2b_512 = "0E"
	SHA3_512    = "0F"
	SHA2_512    = "0G"
)

// Derive returns the qb64 digest primitive of data under the given CESR
// digest code.
func Derive(data []byte, code string) (string, error) {
	sum, err := sumFor(data, code)
	if err != nil {
		return "", err
	}
	m, err := cesr.NewMatter(code, sum)
	if err != nil {
		return "", err
	}
	return m.QB64, nil
}

// Matches reports whether qb64 is the digest of data under qb64's own code.
// Unknown or non-digest codes report false.
func Matches(data []byte, qb64 string) bool {
	m, err := cesr.DecodeMatter([]byte(qb64), 0)
	if err != nil || m.Size() != len(qb64) {
		return false
	}
	derived, err := Derive(data, m.Code)
	if err != nil {
		return false
	}
	return derived == qb64
}

func sumFor(data []byte, code string) ([]byte, error) {
	switch code {
	case Blake3_256:
		sum := blake3.Sum256(data)
		return sum[:], nil
	case Blake2b_256:
		sum := blake2b.Sum256(data)
		return sum[:], nil
	case SHA3_256:
		sum := sha3.Sum256(data)
		return sum[:], nil
	case SHA2_256:
		sum := sha256.Sum256(data)
		return sum[:], nil
	case Blake3_512:
		sum := blake3.Sum512(data)
		return sum[:], nil
	case Blake2b_512:
		sum := blake2b.Sum512(data)
		return sum[:], nil
	case SHA3_512:
		sum := sha3.Sum512(data)
		return sum[:], nil
	case SHA2_512:
		sum := sha512.Sum512(data)
		return sum[:], nil
	default:
		return nil, fmt.Errorf("said: unsupported digest code %q", code)
	}
}
