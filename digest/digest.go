// Package digest implements the domain-separated SHA-256 primitives shared
// by the binary and sparse Merkle tree engines.
package digest

import "crypto/sha256"

// Size is the length in bytes of a Digest.
const Size = sha256.Size

const (
	leafPrefix     = byte(0x00)
	internalPrefix = byte(0x01)
)

// Digest is an opaque 32-byte SHA-256 output.
type Digest [Size]byte

// Bytes returns d as a newly allocated byte slice.
func (d Digest) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, d[:])
	return b
}

// IsZero reports whether d is the all-zeros placeholder digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// FromBytes copies b into a Digest. It panics if len(b) != Size; callers at
// the storage boundary are expected to validate length before calling this.
func FromBytes(b []byte) Digest {
	if len(b) != Size {
		panic("digest: FromBytes requires exactly Size bytes")
	}
	var d Digest
	copy(d[:], b)
	return d
}

// HashLeaf computes SHA-256(0x00 || payload).
func HashLeaf(payload []byte) Digest {
	h := sha256.New()
	h.Write([]byte{leafPrefix})
	h.Write(payload)
	return FromBytes(h.Sum(nil))
}

// HashNode computes SHA-256(0x01 || left || right).
func HashNode(left, right Digest) Digest {
	h := sha256.New()
	h.Write([]byte{internalPrefix})
	h.Write(left[:])
	h.Write(right[:])
	return FromBytes(h.Sum(nil))
}

// Hash computes the plain SHA-256 of data, with no domain prefix. Used for
// the SMT's key-hashing (bit-path derivation), which is not itself a leaf
// or node digest.
func Hash(data []byte) Digest {
	return FromBytes(sha256Sum(data))
}

func sha256Sum(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

var emptySum = Hash(nil)

// EmptySum returns the cached SHA-256 of the empty byte string, used as the
// BMT root when no leaves have been appended.
func EmptySum() Digest {
	return emptySum
}

// ZeroSum returns the all-zeros 32-byte placeholder digest, used as the SMT
// root of any empty subtree.
func ZeroSum() Digest {
	return Digest{}
}
