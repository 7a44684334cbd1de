package bmt

import "math/bits"

// Position indexes a node in the implicit perfect binary tree underlying a
// BMT, numbered in-order starting from zero: leaf 0 is position 0, the
// parent of leaves 0 and 1 is position 1, leaf 1 is position 2, and so on.
//
// This numbering (rather than a (level, index) pair) lets every node in the
// tree be addressed by a single integer, which is how the peaks bagging
// rule in Engine.Root and the append-time merging in Engine.Push are able
// to treat "the node above these two peaks" uniformly with "a leaf". The
// scheme mirrors the peak/merge bookkeeping in a Merkle mountain range,
// generalized here to in-order position numbers per the stated contract.
type Position uint64

// Height returns the height of the subtree rooted at p: 0 for a leaf,
// increasing by one for each level toward the root of a filled subtree.
// It is the number of trailing one-bits in p, i.e. the number of trailing
// zero-bits in (p+1).
func (p Position) Height() uint {
	return uint(bits.TrailingZeros64(uint64(p) + 1))
}

// IsLeaf reports whether p addresses a leaf (height 0).
func (p Position) IsLeaf() bool {
	return p.Height() == 0
}

// LeavesCount returns 2^Height(p), the number of leaves covered by the
// subtree rooted at p.
func (p Position) LeavesCount() uint64 {
	return uint64(1) << p.Height()
}

// isRightChild reports whether p sits to the right of its parent at its own
// height, used to derive Parent/Sibling/children below.
func (p Position) isRightChild() bool {
	h := p.Height()
	return (uint64(p)>>(h+1))&1 == 1
}

// Parent returns the position of p's parent in the implicit tree.
func (p Position) Parent() Position {
	lc := p.LeavesCount()
	if p.isRightChild() {
		return Position(uint64(p) - lc)
	}
	return Position(uint64(p) + lc)
}

// Sibling returns the position of p's sibling (the other child of Parent(p)).
func (p Position) Sibling() Position {
	h := p.Height()
	if p.isRightChild() {
		return Position(uint64(p) - (uint64(2) << h))
	}
	return Position(uint64(p) + (uint64(2) << h))
}

// LeftChild returns the position of p's left child. p must not be a leaf.
func (p Position) LeftChild() Position {
	return Position(uint64(p) - (uint64(1) << (p.Height() - 1)))
}

// RightChild returns the position of p's right child. p must not be a leaf.
func (p Position) RightChild() Position {
	return Position(uint64(p) + (uint64(1) << (p.Height() - 1)))
}

// leafIndexToPosition returns the position of the i'th leaf (0-indexed) in
// the in-order numbering.
func leafIndexToPosition(i uint64) Position {
	return Position(2 * i)
}
