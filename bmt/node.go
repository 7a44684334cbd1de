package bmt

import (
	"github.com/FuelLabs/fuel-merkle/digest"
	"github.com/FuelLabs/fuel-merkle/store"
)

// Node payloads are stored content-addressed (key = the node's own digest),
// the same convention the sparse Merkle tree uses (spec §4.2): a leaf payload
// is tagged 0x00 and carries the caller's raw leaf data; an internal payload
// is tagged 0x01 and carries its two child digests. Writing every node
// through to the Store (rather than only the peaks) keeps the tree's full
// structure recoverable from storage alone, matching the SMT's wire format
// even though Engine itself answers Prove from its in-memory position index.
const (
	tagLeaf     = byte(0x00)
	tagInternal = byte(0x01)
)

func encodeLeafPayload(leafData []byte) store.NodePayload {
	p := make(store.NodePayload, 1+len(leafData))
	p[0] = tagLeaf
	copy(p[1:], leafData)
	return p
}

func encodeInternalPayload(left, right digest.Digest) store.NodePayload {
	p := make(store.NodePayload, 1+digest.Size+digest.Size)
	p[0] = tagInternal
	copy(p[1:1+digest.Size], left[:])
	copy(p[1+digest.Size:1+2*digest.Size], right[:])
	return p
}
