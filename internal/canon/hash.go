package canon

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Domain prefixes for content hashes. The version suffix leaves room for
// an algorithm change without colliding with existing digests.
const (
	DomainSave  = "idlecore/save/v1"
	DomainBlob  = "idlecore/blob/v1"
	DomainTrace = "idlecore/trace/v1"
)

// Sum computes BLAKE3-256 over domain + 0x00 + data.
// The null separator prevents domain/data boundary ambiguity.
func Sum(domain string, data []byte) [32]byte {
	h := blake3.New(32, nil)
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// SumHex is Sum rendered as lowercase hex.
func SumHex(domain string, data []byte) string {
	sum := Sum(domain, data)
	return hex.EncodeToString(sum[:])
}

// TraceDigest hashes the canonical form of v. Two values with the same
// digest are observationally identical on the boundary.
func TraceDigest(v any) (string, error) {
	b, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return SumHex(DomainTrace, b), nil
}
