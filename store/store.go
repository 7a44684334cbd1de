// Package store defines the abstract node storage contract consumed by the
// bmt and smt engines, and the closed error taxonomy they and their backends
// raise.
package store

import (
	"github.com/pkg/errors"

	"github.com/FuelLabs/fuel-merkle/digest"
)

// NodePayload is the serialized, on-disk form of a tree node. Its shape is
// engine-specific (see bmt and smt's encoding); the storage layer treats it
// as an opaque byte string keyed by digest.
type NodePayload []byte

// Store is the key-value mapping from a node's own digest to its serialized
// payload. Implementations are not required to be safe for concurrent use by
// multiple engine instances backed by the same Store.
type Store interface {
	// Get returns the payload stored under key. The second return value is
	// false when key is absent; that is not an error.
	Get(key digest.Digest) (NodePayload, bool, error)
	// Insert stores payload under key. The implementations in this
	// repository reference-count keys: inserting a key already present adds
	// a reference rather than acting as an idempotent overwrite, so a key
	// inserted twice stays present until it has been removed twice.
	Insert(key digest.Digest, payload NodePayload) error
	// Remove drops one reference to key, deleting it once no references
	// remain. Removing an absent key is a no-op.
	Remove(key digest.Digest) error
}

// ErrStorage wraps a failure originating in a Store implementation's
// underlying medium (e.g. disk I/O). Engines propagate it verbatim; they
// never retry.
var ErrStorage = errors.New("store: underlying storage failure")

// WrapStorageErr wraps cause as an ErrStorage failure, unless cause is nil.
func WrapStorageErr(cause error, msg string) error {
	if cause == nil {
		return nil
	}
	return errors.Wrap(storageErr{cause}, msg)
}

// storageErr adapts an arbitrary cause so that errors.Is(err, ErrStorage)
// holds while errors.Unwrap(err) still reaches the original cause.
type storageErr struct{ cause error }

func (e storageErr) Error() string { return ErrStorage.Error() + ": " + e.cause.Error() }
func (e storageErr) Is(target error) bool {
	return target == ErrStorage
}
func (e storageErr) Unwrap() error { return e.cause }
