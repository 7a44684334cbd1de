// Package storeleveldb implements store.Store over a LevelDB database via
// github.com/syndtr/goleveldb, the embedded KV engine used throughout the
// wider chain-node example pack (go-ethereum, neo-go, and others all vendor
// it for exactly this role: a single-process, ordered, on-disk key-value
// store backing a Merkle-ized state trie).
//
// Both engines routinely re-insert a digest that is already live (a
// rebuilt ancestor can collide with one reachable via another path) and
// then, in the same mutation, Remove a superseded digest that can equal
// one just re-inserted (e.g. smt.Engine.Update replacing a key with its
// own value re-inserts the unchanged leaf and then queues the old leaf's
// identical digest for removal). A literal Put/Delete pair would evict the
// still-live node out from under the tree. So, like storemem, this backend
// keeps a reference count per key in memory alongside the on-disk payload:
// Insert bumps the count (writing through to LevelDB only the first time),
// and Remove decrements it, only issuing the underlying Delete once the
// count reaches zero.
package storeleveldb

import (
	"sync"

	"github.com/golang/glog"
	goleveldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/FuelLabs/fuel-merkle/digest"
	"github.com/FuelLabs/fuel-merkle/store"
)

// Store is a store.Store backed by an on-disk LevelDB database opened at a
// filesystem path (see Open), reference-counted
// the same way storemem.Store is. Reference counts live only in memory: a
// fresh Open starts every key's count at zero, so a process that reopens a
// database mid-lifetime must not issue more Removes for a key than the
// Inserts it performed since that reopen.
type Store struct {
	db *goleveldb.DB

	mu     sync.Mutex
	counts map[digest.Digest]uint32
}

// Open opens (creating if necessary) a LevelDB database at path.
func Open(path string) (*Store, error) {
	db, err := goleveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, store.WrapStorageErr(err, "open leveldb")
	}
	glog.V(1).Infof("storeleveldb: opened %s", path)
	return &Store{db: db, counts: make(map[digest.Digest]uint32)}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	glog.V(1).Info("storeleveldb: closing")
	return store.WrapStorageErr(s.db.Close(), "close leveldb")
}

// Get implements store.Store.
func (s *Store) Get(key digest.Digest) (store.NodePayload, bool, error) {
	v, err := s.db.Get(key[:], nil)
	if err == goleveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, store.WrapStorageErr(err, "get")
	}
	return store.NodePayload(v), true, nil
}

// Insert implements store.Store. Inserting a key already present only
// bumps its reference count; the underlying Put happens once, on the
// key's first insertion.
func (s *Store) Insert(key digest.Digest, payload store.NodePayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if count := s.counts[key]; count > 0 {
		s.counts[key] = count + 1
		return nil
	}

	if err := s.db.Put(key[:], payload, nil); err != nil {
		return store.WrapStorageErr(err, "insert")
	}
	s.counts[key] = 1
	glog.V(2).Infof("storeleveldb: inserted %x (%d bytes)", key, len(payload))
	return nil
}

// Remove implements store.Store. Deleting an absent key is a no-op. A key
// with more than one reference has its count decremented instead of being
// deleted, so a node still reachable via another path is never evicted.
func (s *Store) Remove(key digest.Digest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, ok := s.counts[key]
	if !ok {
		return nil
	}
	if count > 1 {
		s.counts[key] = count - 1
		return nil
	}

	if err := s.db.Delete(key[:], nil); err != nil {
		return store.WrapStorageErr(err, "remove")
	}
	delete(s.counts, key)
	glog.V(2).Infof("storeleveldb: removed %x", key)
	return nil
}
