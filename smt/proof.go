package smt

import (
	"github.com/FuelLabs/fuel-merkle/digest"
)

// Proof is a non-compact Sparse Merkle Tree proof: the digest of each
// sibling subtree along the bit-path from the root down to the depth at
// which the path's fate is decided, in root-to-leaf order. Index i always
// corresponds to tree depth i, whether that sibling came from a live
// internal node, a placeholder filler, or (for a non-membership proof
// whose path collides with an unrelated stored leaf) the colliding leaf
// itself. spec.md's Open Question on compact encoding is resolved in
// SPEC_FULL.md §9: this package only implements the non-compact form.
type Proof struct {
	Siblings []digest.Digest
}

// Prove returns the value bound to key (nil if absent), whether key is
// currently present, and a Proof that Verify can check against a root
// produced by this engine.
func (e *Engine) Prove(key []byte) (value []byte, included bool, proof Proof, err error) {
	path := digest.Hash(key)
	frames, terminal, isPlaceholder, err := e.descend(path)
	if err != nil {
		return nil, false, Proof{}, err
	}

	siblings := make([]digest.Digest, len(frames))
	for i, f := range frames {
		siblings[i] = f.siblingDigest
	}

	if isPlaceholder {
		return nil, false, Proof{Siblings: siblings}, nil
	}
	if terminal.leafKey == path {
		return append([]byte(nil), terminal.leafValue...), true, Proof{Siblings: siblings}, nil
	}

	// Non-membership by collision: pad with placeholders down to the
	// first bit at which key's path and the stored leaf's path diverge,
	// then record that leaf's own digest as the final sibling.
	firstDiff := commonPrefixLen(path, terminal.leafKey)
	for d := len(frames); d < firstDiff; d++ {
		siblings = append(siblings, digest.ZeroSum())
	}
	siblings = append(siblings, terminal.digest())
	return nil, false, Proof{Siblings: siblings}, nil
}

// Verify reports whether proof demonstrates, against root, that key is
// bound to value (included == true) or that key is absent (included ==
// false, value ignored). It performs no storage access: it is a pure
// function of its arguments, matching the standalone BMT Verify in
// bmt/verify.go.
func Verify(root digest.Digest, key, value []byte, included bool, proof Proof) bool {
	path := digest.Hash(key)

	var current digest.Digest
	if included {
		current = newLeaf(path, value).digest()
	} else {
		current = digest.ZeroSum()
	}

	for i := len(proof.Siblings) - 1; i >= 0; i-- {
		sibling := proof.Siblings[i]
		if bitAt(path, i) == 1 {
			current = digest.HashNode(sibling, current)
		} else {
			current = digest.HashNode(current, sibling)
		}
	}
	return current == root
}
