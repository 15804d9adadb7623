package cesr

import "fmt"

// Sizage holds the fixed textual layout of a Matter code: hard (stable) code
// chars, soft (value) chars, and the full primitive size. Fs is always a
// multiple of four.
type Sizage struct {
	Hs int
	Ss int
	Fs int
}

// Xizage extends Sizage for indexed codes with Os, the trailing portion of
// the soft part holding the "other" (prior-rotation) index.
type Xizage struct {
	Hs int
	Ss int
	Os int
	Fs int
}

// Matter derivation codes used by the group decoders. The full table below
// carries every fixed-size code so generic scans stay total.
const (
	CodeEd25519N   = "B"    // nontransferable prefix public key
	CodeEd25519    = "D"    // transferable prefix public key
	CodeBlake3_256 = "E"    // primary SAID digest
	CodeSalt128    = "0A"   // 128-bit value; sequence numbers use this code
	CodeEd25519Sig = "0B"   // unindexed signature (cigar)
	CodeDateTime   = "1AAG" // ISO-8601 datetime with CESR substitutions
)

// matterSizes is the CESR 1.0 fixed-size Matter table. Soft size is zero for
// every entry: these codes carry no embedded index.
var matterSizes = map[string]Sizage{
	"A":    {Hs: 1, Ss: 0, Fs: 44},  // Ed25519 seed
	"B":    {Hs: 1, Ss: 0, Fs: 44},  // Ed25519 nontransferable prefix
	"C":    {Hs: 1, Ss: 0, Fs: 44},  // X25519 public encryption key
	"D":    {Hs: 1, Ss: 0, Fs: 44},  // Ed25519 public verification key
	"E":    {Hs: 1, Ss: 0, Fs: 44},  // Blake3-256 digest
	"F":    {Hs: 1, Ss: 0, Fs: 44},  // Blake2b-256 digest
	"G":    {Hs: 1, Ss: 0, Fs: 44},  // Blake2s-256 digest
	"H":    {Hs: 1, Ss: 0, Fs: 44},  // SHA3-256 digest
	"I":    {Hs: 1, Ss: 0, Fs: 44},  // SHA2-256 digest
	"J":    {Hs: 1, Ss: 0, Fs: 44},  // ECDSA secp256k1 seed
	"K":    {Hs: 1, Ss: 0, Fs: 76},  // Ed448 seed
	"L":    {Hs: 1, Ss: 0, Fs: 76},  // X448 public encryption key
	"M":    {Hs: 1, Ss: 0, Fs: 4},   // short number, 2 bytes
	"N":    {Hs: 1, Ss: 0, Fs: 12},  // big number, 8 bytes
	"O":    {Hs: 1, Ss: 0, Fs: 44},  // X25519 private decryption key
	"P":    {Hs: 1, Ss: 0, Fs: 124}, // X25519 sealed cipher of a seed
	"0A":   {Hs: 2, Ss: 0, Fs: 24},  // 128-bit salt / sequence number
	"0B":   {Hs: 2, Ss: 0, Fs: 88},  // Ed25519 signature
	"0C":   {Hs: 2, Ss: 0, Fs: 88},  // ECDSA secp256k1 signature
	"0D":   {Hs: 2, Ss: 0, Fs: 88},  // Blake3-512 digest
	"0E":   {Hs: 2, Ss: 0, Fs: 88},  // Blake2b-512 digest
	"0F":   {Hs: 2, Ss: 0, Fs: 88},  // SHA3-512 digest
	"0G":   {Hs: 2, Ss: 0, Fs: 88},  // SHA2-512 digest
	"0H":   {Hs: 2, Ss: 0, Fs: 8},   // long number, 4 bytes
	"1AAA": {Hs: 4, Ss: 0, Fs: 48},  // ECDSA secp256k1 nontransferable prefix
	"1AAB": {Hs: 4, Ss: 0, Fs: 48},  // ECDSA secp256k1 public verification key
	"1AAC": {Hs: 4, Ss: 0, Fs: 80},  // Ed448 nontransferable prefix
	"1AAD": {Hs: 4, Ss: 0, Fs: 80},  // Ed448 public verification key
	"1AAE": {Hs: 4, Ss: 0, Fs: 156}, // Ed448 signature
	"1AAF": {Hs: 4, Ss: 0, Fs: 8},   // 3-byte ternary tag
	"1AAG": {Hs: 4, Ss: 0, Fs: 36},  // ISO-8601 datetime
	"1AAH": {Hs: 4, Ss: 0, Fs: 100}, // X25519 sealed cipher of a salt
}

// indexerSizes is the CESR 1.0 indexed-signature table. The "crt" (current
// only) codes carry no other index even when Os is nonzero.
var indexerSizes = map[string]Xizage{
	"A":  {Hs: 1, Ss: 1, Os: 0, Fs: 88},  // Ed25519 dual-indexed
	"B":  {Hs: 1, Ss: 1, Os: 0, Fs: 88},  // Ed25519 current only
	"C":  {Hs: 1, Ss: 1, Os: 0, Fs: 88},  // ECDSA secp256k1 dual-indexed
	"D":  {Hs: 1, Ss: 1, Os: 0, Fs: 88},  // ECDSA secp256k1 current only
	"0A": {Hs: 2, Ss: 2, Os: 1, Fs: 156}, // Ed448 dual-indexed
	"0B": {Hs: 2, Ss: 2, Os: 1, Fs: 156}, // Ed448 current only
	"2A": {Hs: 2, Ss: 4, Os: 2, Fs: 92},  // Ed25519 big dual-indexed
	"2B": {Hs: 2, Ss: 4, Os: 2, Fs: 92},  // Ed25519 big current only
	"2C": {Hs: 2, Ss: 4, Os: 2, Fs: 92},  // ECDSA secp256k1 big dual-indexed
	"2D": {Hs: 2, Ss: 4, Os: 2, Fs: 92},  // ECDSA secp256k1 big current only
	"3A": {Hs: 2, Ss: 6, Os: 3, Fs: 160}, // Ed448 big dual-indexed
	"3B": {Hs: 2, Ss: 6, Os: 3, Fs: 160}, // Ed448 big current only
}

// currentOnlyIndexCodes marks indexed codes whose signatures attach only to
// the current key list; they never carry an other index.
var currentOnlyIndexCodes = map[string]bool{
	"B": true, "D": true, "0B": true, "2B": true, "2D": true, "3B": true,
}

// Counter group codes (CESR 1.0).
const (
	CtrControllerIdxSigs      = "-A"
	CtrWitnessIdxSigs         = "-B"
	CtrNonTransReceiptCouples = "-C"
	CtrTransReceiptQuadruples = "-D"
	CtrFirstSeenReplayCouples = "-E"
	CtrTransIdxSigGroups      = "-F"
	CtrSealSourceCouples      = "-G"
	CtrTransLastIdxSigGroups  = "-H"
	CtrSealSourceTriples      = "-I"
	CtrSadPathSigGroups       = "-J"
	CtrRootSadPathSigGroups   = "-K"
	CtrPathedMaterialGroup    = "-L"
	CtrAttachmentGroup        = "-V"
	CtrGenericGroup           = "-W"
	CtrESSRPayloadGroup       = "-Z"
)

const b64Runes = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

var b64Values [128]int8

func init() {
	for i := range b64Values {
		b64Values[i] = -1
	}
	for i := 0; i < len(b64Runes); i++ {
		b64Values[b64Runes[i]] = int8(i)
	}
}

func isB64(c byte) bool {
	return c < 128 && b64Values[c] >= 0
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// b64ToInt decodes a run of Base64URL characters as a big-endian integer.
func b64ToInt(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty base64 run")
	}
	v := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 128 || b64Values[c] < 0 {
			return 0, fmt.Errorf("invalid base64 char %q", c)
		}
		v = v<<6 | int(b64Values[c])
	}
	return v, nil
}

// intToB64 encodes v as exactly n Base64URL characters, most significant first.
func intToB64(v, n int) string {
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = b64Runes[v&0x3F]
		v >>= 6
	}
	return string(out)
}
