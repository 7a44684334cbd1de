// Package bmt implements the Binary Merkle Tree engine: an append-only
// ordered sequence of leaves following RFC 6962 (Certificate Transparency)
// Merkle tree rules, including its "fill left subtree first" balancing for
// non-power-of-two sizes.
//
// The engine keeps, in memory, only the stack of peaks (the roots of the
// maximal filled left-aligned subtrees not yet combined into a larger one)
// plus a position-to-digest index built as nodes are produced; every node it
// computes is also written through to the supplied store.Store, content
// addressed by its own digest. Prove answers from the in-memory position
// index alone and does not read the store.
package bmt

import (
	"github.com/FuelLabs/fuel-merkle/digest"
	"github.com/FuelLabs/fuel-merkle/store"
)

type peak struct {
	pos Position
	d   digest.Digest
}

// Engine is a Binary Merkle Tree. The zero value is not usable; construct
// one with New.
type Engine struct {
	store     store.Store
	peaks     []peak
	leafCount uint64
	index     map[Position]digest.Digest
}

// New returns an empty BMT engine backed by s.
func New(s store.Store) *Engine {
	return &Engine{
		store: s,
		index: make(map[Position]digest.Digest),
	}
}

// LeafCount returns the number of leaves appended so far.
func (e *Engine) LeafCount() uint64 {
	return e.leafCount
}

// Push appends a new leaf holding leafData, updating the peaks stack per
// the RFC 6962 fill-left-subtree-first rule: while the top two peaks share
// the same height, they are combined into their parent, repeatedly.
func (e *Engine) Push(leafData []byte) error {
	d := digest.HashLeaf(leafData)
	pos := leafIndexToPosition(e.leafCount)

	if err := e.store.Insert(d, encodeLeafPayload(leafData)); err != nil {
		return store.WrapStorageErr(err, "bmt: insert leaf")
	}
	e.index[pos] = d
	e.peaks = append(e.peaks, peak{pos: pos, d: d})

	for len(e.peaks) >= 2 {
		n := len(e.peaks)
		top, second := e.peaks[n-1], e.peaks[n-2]
		if top.pos.Height() != second.pos.Height() {
			break
		}
		parentPos := second.pos.Parent()
		parentDigest := digest.HashNode(second.d, top.d)
		if err := e.store.Insert(parentDigest, encodeInternalPayload(second.d, top.d)); err != nil {
			return store.WrapStorageErr(err, "bmt: insert internal node")
		}
		e.index[parentPos] = parentDigest
		e.peaks = e.peaks[:n-2]
		e.peaks = append(e.peaks, peak{pos: parentPos, d: parentDigest})
	}

	e.leafCount++
	return nil
}

// Root returns the current root digest: the empty sum if no leaves have
// been pushed, or the peaks folded from the right otherwise (the rightmost
// peak is the smaller subtree, per RFC 6962's handling of unbalanced trees).
func (e *Engine) Root() digest.Digest {
	if len(e.peaks) == 0 {
		return digest.EmptySum()
	}
	acc := e.peaks[len(e.peaks)-1].d
	for i := len(e.peaks) - 2; i >= 0; i-- {
		acc = digest.HashNode(e.peaks[i].d, acc)
	}
	return acc
}

// Prove returns the current root and the ordered list of sibling digests
// (from the leaf toward the root) proving that the leaf at index was
// appended to this tree. It fails with ErrInvalidProofIndex if index is out
// of range.
func (e *Engine) Prove(index uint64) (digest.Digest, []digest.Digest, error) {
	if index >= e.leafCount {
		return digest.Digest{}, nil, ErrInvalidProofIndex
	}

	pos := leafIndexToPosition(index)
	var siblings []digest.Digest

	peakIdx := e.peakIndexAt(pos)
	for peakIdx < 0 {
		sib := pos.Sibling()
		sd, ok := e.index[sib]
		if !ok {
			// Internal invariant: every sibling on the path to a peak was
			// recorded when its node was created.
			return digest.Digest{}, nil, errMissingSibling
		}
		siblings = append(siblings, sd)
		pos = pos.Parent()
		peakIdx = e.peakIndexAt(pos)
	}

	// Bag the peaks to the right of peakIdx into one combined digest (Root
	// folds strictly from the right), then add each peak to the left in turn.
	if peakIdx < len(e.peaks)-1 {
		rightFold := e.peaks[len(e.peaks)-1].d
		for i := len(e.peaks) - 2; i > peakIdx; i-- {
			rightFold = digest.HashNode(e.peaks[i].d, rightFold)
		}
		siblings = append(siblings, rightFold)
	}
	for i := peakIdx - 1; i >= 0; i-- {
		siblings = append(siblings, e.peaks[i].d)
	}

	return e.Root(), siblings, nil
}

func (e *Engine) peakIndexAt(pos Position) int {
	for i, pk := range e.peaks {
		if pk.pos == pos {
			return i
		}
	}
	return -1
}
