package smt

import (
	"github.com/pkg/errors"

	"github.com/FuelLabs/fuel-merkle/digest"
	"github.com/FuelLabs/fuel-merkle/store"
)

// kind tags the three node variants spec.md's data model distinguishes.
// Placeholder has no stored form; it is represented purely by the zero
// digest and is never constructed as a kind value.
type kind byte

const (
	kindLeaf     kind = 0x00
	kindInternal kind = 0x01
)

// node is the tagged union {Leaf, Internal} read from and written to
// storage. Placeholder is represented out-of-band: any digest equal to
// digest.ZeroSum() denotes an empty subtree and is never looked up.
//
// This mirrors the byte layout the tree hasher in this package's reference
// implementation used directly on raw []byte buffers (a single prefix byte
// followed by fixed- or variable-length fields); here it is given an
// explicit Go type so that engine.go can reason about Leaf/Internal/
// Placeholder as a closed set rather than re-deriving the tag from raw
// bytes at every call site.
type node struct {
	kind kind

	// Leaf fields.
	leafKey   digest.Digest // SHA-256(user key); the node's bit-path.
	leafValue []byte

	// Internal fields.
	left, right digest.Digest
}

func newLeaf(leafKey digest.Digest, value []byte) node {
	return node{kind: kindLeaf, leafKey: leafKey, leafValue: append([]byte(nil), value...)}
}

func newInternal(left, right digest.Digest) node {
	return node{kind: kindInternal, left: left, right: right}
}

func (n node) isLeaf() bool {
	return n.kind == kindLeaf
}

// digest computes the node's own content-addressed digest: SHA-256(0x00 ||
// leafKey || SHA-256(value)) for a leaf, SHA-256(0x01 || left || right) for
// an internal node. The value is hashed before being folded into the leaf
// digest, matching the teacher's treehasher (digestLeaf is always called
// with a pre-hashed value, never the raw bytes) so that leaf digests stay
// bounded-size regardless of value length.
func (n node) digest() digest.Digest {
	if n.isLeaf() {
		valueHash := digest.Hash(n.leafValue)
		payload := make([]byte, 0, digest.Size+digest.Size)
		payload = append(payload, n.leafKey[:]...)
		payload = append(payload, valueHash[:]...)
		return digest.HashLeaf(payload)
	}
	return digest.HashNode(n.left, n.right)
}

// encode serializes n to its wire form (spec.md §6):
//
//	Leaf:     0x00 || leaf_key (32B) || leaf_value (variable)
//	Internal: 0x01 || left_digest (32B) || right_digest (32B)
func (n node) encode() store.NodePayload {
	if n.isLeaf() {
		p := make(store.NodePayload, 1+digest.Size+len(n.leafValue))
		p[0] = byte(kindLeaf)
		copy(p[1:1+digest.Size], n.leafKey[:])
		copy(p[1+digest.Size:], n.leafValue)
		return p
	}
	p := make(store.NodePayload, 1+digest.Size+digest.Size)
	p[0] = byte(kindInternal)
	copy(p[1:1+digest.Size], n.left[:])
	copy(p[1+digest.Size:], n.right[:])
	return p
}

// ErrDeserialization is returned when a node payload read from storage
// cannot be parsed.
var ErrDeserialization = errors.New("smt: cannot decode node payload")

func decodeNode(p store.NodePayload) (node, error) {
	if len(p) < 1 {
		return node{}, ErrDeserialization
	}
	switch kind(p[0]) {
	case kindLeaf:
		if len(p) < 1+digest.Size {
			return node{}, ErrDeserialization
		}
		return node{
			kind:      kindLeaf,
			leafKey:   digest.FromBytes(p[1 : 1+digest.Size]),
			leafValue: append([]byte(nil), p[1+digest.Size:]...),
		}, nil
	case kindInternal:
		if len(p) != 1+2*digest.Size {
			return node{}, ErrDeserialization
		}
		return node{
			kind:  kindInternal,
			left:  digest.FromBytes(p[1 : 1+digest.Size]),
			right: digest.FromBytes(p[1+digest.Size:]),
		}, nil
	default:
		return node{}, ErrDeserialization
	}
}
