// Package storemem implements store.Store over a plain in-memory map.
//
// It is adapted from the reference counted SimpleMap used throughout the
// sparse Merkle tree test suite this repository's SMT engine was grounded
// on: Put/Get/Delete against a map[string]value, with a reference count so
// that re-inserting an identical payload under a key already present (which
// happens routinely during SMT rebalancing, where a rebuilt ancestor can
// collide with one already reachable via another path) doesn't require the
// caller to track liveness itself.
package storemem

import (
	"sync"

	"github.com/FuelLabs/fuel-merkle/digest"
	"github.com/FuelLabs/fuel-merkle/store"
)

type entry struct {
	payload store.NodePayload
	count   uint32
}

// Store is a reference-counted, in-memory store.Store.
type Store struct {
	mu sync.Mutex
	m  map[digest.Digest]entry
}

// New returns an empty in-memory Store.
func New() *Store {
	return &Store{m: make(map[digest.Digest]entry)}
}

// Get implements store.Store.
func (s *Store) Get(key digest.Digest) (store.NodePayload, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return e.payload, true, nil
}

// Insert implements store.Store. Inserting the same key twice bumps its
// reference count rather than overwriting; Remove decrements it and only
// evicts the entry once the count reaches zero.
func (s *Store) Insert(key digest.Digest, payload store.NodePayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.m[key]; ok {
		e.count++
		s.m[key] = e
		return nil
	}
	cp := make(store.NodePayload, len(payload))
	copy(cp, payload)
	s.m[key] = entry{payload: cp, count: 1}
	return nil
}

// Remove implements store.Store.
func (s *Store) Remove(key digest.Digest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[key]
	if !ok {
		return nil
	}
	e.count--
	if e.count == 0 {
		delete(s.m, key)
		return nil
	}
	s.m[key] = e
	return nil
}

// Len reports the number of distinct keys currently stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
