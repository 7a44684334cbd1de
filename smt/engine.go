// Package smt implements the Sparse Merkle Tree engine described by
// spec.md §4.5-4.8: a conceptual height-256 tree addressed by
// SHA-256(user key), with empty subtrees collapsed to the placeholder
// digest and single-leaf subtrees collapsed to that leaf directly.
//
// The recursive descent, the ancestor path bookkeeping, and the collapse
// rule on delete are ported from this repository's treehasher/smt
// reference implementation's side-node algorithm, restructured around an
// explicit smt.node tagged union and an ancestorFrame stack per spec.md §9's
// design note, instead of raw byte buffers and parallel side-node slices.
package smt

import (
	"github.com/FuelLabs/fuel-merkle/digest"
	"github.com/FuelLabs/fuel-merkle/store"
)

// ancestorFrame records one step of the descent from the root toward a
// leaf's bit-path: the digest of the internal node at that step (so it can
// be removed once it's rebuilt), which side the path continued on, and the
// digest of the sibling not taken.
type ancestorFrame struct {
	oldDigest     digest.Digest
	siblingDigest digest.Digest
	wentRight     bool
}

// Engine is a Sparse Merkle Tree. The zero value is not usable; construct
// one with New or Load.
type Engine struct {
	store store.Store
	root  digest.Digest
}

// New returns an empty SMT engine backed by s.
func New(s store.Store) *Engine {
	return &Engine{store: s, root: digest.ZeroSum()}
}

// Load restores an Engine from storage at a previously computed root. It
// fails with *LoadError if root is neither the placeholder nor a digest
// present in s.
func Load(s store.Store, root digest.Digest) (*Engine, error) {
	if !root.IsZero() {
		_, ok, err := s.Get(root)
		if err != nil {
			return nil, store.WrapStorageErr(err, "smt: load")
		}
		if !ok {
			return nil, &LoadError{Root: root}
		}
	}
	return &Engine{store: s, root: root}, nil
}

// Root returns the digest of the current root node: the placeholder for an
// empty tree.
func (e *Engine) Root() digest.Digest {
	return e.root
}

// SetRoot replaces the engine's current root, without touching storage.
// Used to move between roots already materialized in the backing store
// (e.g. after Load, or to revisit a historical root).
func (e *Engine) SetRoot(root digest.Digest) {
	e.root = root
}

func (e *Engine) putNode(n node) error {
	if err := e.store.Insert(n.digest(), n.encode()); err != nil {
		return store.WrapStorageErr(err, "smt: insert node")
	}
	return nil
}

// descend walks from the current root along path's bit-path, accumulating
// one ancestorFrame per internal node traversed. It stops at a placeholder
// subtree or a leaf node, whichever comes first.
func (e *Engine) descend(path digest.Digest) (frames []ancestorFrame, terminal node, isPlaceholder bool, err error) {
	if e.root.IsZero() {
		return nil, node{}, true, nil
	}

	payload, ok, err := e.store.Get(e.root)
	if err != nil {
		return nil, node{}, false, store.WrapStorageErr(err, "smt: get root")
	}
	if !ok {
		return nil, node{}, false, ErrDeserialization
	}
	n, err := decodeNode(payload)
	if err != nil {
		return nil, node{}, false, err
	}
	if n.isLeaf() {
		return nil, n, false, nil
	}

	for depthIdx := 0; ; depthIdx++ {
		wentRight := bitAt(path, depthIdx) == 1
		var childDigest, siblingDigest digest.Digest
		if wentRight {
			childDigest, siblingDigest = n.right, n.left
		} else {
			childDigest, siblingDigest = n.left, n.right
		}
		frames = append(frames, ancestorFrame{
			oldDigest:     n.digest(),
			siblingDigest: siblingDigest,
			wentRight:     wentRight,
		})

		if childDigest.IsZero() {
			return frames, node{}, true, nil
		}
		childPayload, ok, err := e.store.Get(childDigest)
		if err != nil {
			return nil, node{}, false, store.WrapStorageErr(err, "smt: get node")
		}
		if !ok {
			return nil, node{}, false, ErrDeserialization
		}
		child, err := decodeNode(childPayload)
		if err != nil {
			return nil, node{}, false, err
		}
		if child.isLeaf() {
			return frames, child, false, nil
		}
		n = child
	}
}

// Update inserts or replaces the binding key -> value and returns the new
// root. An empty value is equivalent to Delete (spec.md §4.6).
func (e *Engine) Update(key, value []byte) (digest.Digest, error) {
	if len(value) == 0 {
		return e.Delete(key)
	}

	path := digest.Hash(key)
	frames, terminal, isPlaceholder, err := e.descend(path)
	if err != nil {
		return digest.Digest{}, err
	}

	newLeafNode := newLeaf(path, value)
	if err := e.putNode(newLeafNode); err != nil {
		return digest.Digest{}, err
	}
	newLeafDigest := newLeafNode.digest()

	var pendingRemovals []digest.Digest
	var current digest.Digest

	switch {
	case isPlaceholder:
		current = newLeafDigest

	case terminal.leafKey == path:
		// Same key: the new leaf simply replaces the old one in place.
		pendingRemovals = append(pendingRemovals, terminal.digest())
		current = newLeafDigest

	default:
		// Different key sharing a path prefix: build the subtree that
		// holds both leaves, from their first differing bit back up to
		// the depth at which descent stopped. The old leaf is re-parented,
		// not replaced, so it is not queued for removal.
		oldLeafDigest := terminal.digest()
		firstDiff := commonPrefixLen(path, terminal.leafKey)

		var combined node
		if bitAt(path, firstDiff) == 1 {
			combined = newInternal(oldLeafDigest, newLeafDigest)
		} else {
			combined = newInternal(newLeafDigest, oldLeafDigest)
		}
		if err := e.putNode(combined); err != nil {
			return digest.Digest{}, err
		}
		current = combined.digest()

		for d := firstDiff - 1; d >= len(frames); d-- {
			var n node
			if bitAt(path, d) == 1 {
				n = newInternal(digest.ZeroSum(), current)
			} else {
				n = newInternal(current, digest.ZeroSum())
			}
			if err := e.putNode(n); err != nil {
				return digest.Digest{}, err
			}
			current = n.digest()
		}
	}

	// Rewind the ancestor stack, rebuilding each level from its updated
	// child and its unchanged sibling digest; old ancestors are queued for
	// removal but not removed until every new node has been inserted.
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		var n node
		if f.wentRight {
			n = newInternal(f.siblingDigest, current)
		} else {
			n = newInternal(current, f.siblingDigest)
		}
		if err := e.putNode(n); err != nil {
			return digest.Digest{}, err
		}
		pendingRemovals = append(pendingRemovals, f.oldDigest)
		current = n.digest()
	}

	if err := e.removeAll(pendingRemovals); err != nil {
		return digest.Digest{}, err
	}

	e.root = current
	return e.root, nil
}

// Delete removes key's binding, if any, and returns the new root. Deleting
// an absent key is a no-op: it returns the unchanged root and raises no
// error (spec.md §4.6, invariant in §3).
func (e *Engine) Delete(key []byte) (digest.Digest, error) {
	path := digest.Hash(key)
	frames, terminal, isPlaceholder, err := e.descend(path)
	if err != nil {
		return digest.Digest{}, err
	}
	if isPlaceholder || terminal.leafKey != path {
		return e.root, nil
	}

	pendingRemovals := []digest.Digest{terminal.digest()}
	var current digest.Digest
	haveCurrent := false
	nonPlaceholderReached := false

	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		pendingRemovals = append(pendingRemovals, f.oldDigest)

		if !haveCurrent {
			haveCurrent = true
			siblingPayload, ok, err := e.store.Get(f.siblingDigest)
			if err != nil {
				return digest.Digest{}, store.WrapStorageErr(err, "smt: get sibling")
			}
			if !ok {
				return digest.Digest{}, ErrDeserialization
			}
			siblingNode, err := decodeNode(siblingPayload)
			if err != nil {
				return digest.Digest{}, err
			}
			if siblingNode.isLeaf() {
				// The deleted leaf's sibling bubbles up directly: this
				// ancestor collapses away entirely (spec.md §9).
				current = f.siblingDigest
				continue
			}
			current = digest.ZeroSum()
			nonPlaceholderReached = true
		} else if !nonPlaceholderReached {
			if f.siblingDigest.IsZero() {
				continue
			}
			nonPlaceholderReached = true
		}

		var n node
		if f.wentRight {
			n = newInternal(f.siblingDigest, current)
		} else {
			n = newInternal(current, f.siblingDigest)
		}
		if err := e.putNode(n); err != nil {
			return digest.Digest{}, err
		}
		current = n.digest()
	}

	if !haveCurrent {
		current = digest.ZeroSum()
	}

	if err := e.removeAll(pendingRemovals); err != nil {
		return digest.Digest{}, err
	}

	e.root = current
	return e.root, nil
}

func (e *Engine) removeAll(digests []digest.Digest) error {
	for _, d := range digests {
		if d.IsZero() {
			continue
		}
		if err := e.store.Remove(d); err != nil {
			return store.WrapStorageErr(err, "smt: remove node")
		}
	}
	return nil
}
