package bmt

import "github.com/pkg/errors"

// ErrInvalidProofIndex is returned by Engine.Prove when the requested leaf
// index is not less than the current leaf count.
var ErrInvalidProofIndex = errors.New("bmt: invalid proof index")

// errMissingSibling indicates an internal bookkeeping invariant was
// violated: a sibling position on the path from a leaf to a peak was not
// recorded when its node was created. It should never surface in practice.
var errMissingSibling = errors.New("bmt: missing sibling digest for recorded position")
