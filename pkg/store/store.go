// Package store provides persistent storage for saved logic engine buffers
// using BadgerDB.
//
// A store maps slot names to serialized logic files (the buffers produced
// by wyrd.Engine.SaveToBuffer). Slots are opaque to the store; validation
// happens when a buffer is loaded back into an engine.
//
// Example Usage:
//
//	st, err := store.Open(store.Options{DataDir: "./data"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer st.Close()
//
//	data, _ := engine.SaveToBuffer()
//	if err := st.Save("level-intro", data); err != nil {
//		log.Fatal(err)
//	}
//
//	buf, err := st.Load("level-intro")
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes for storage organization. Single-byte prefixes keep keys
// compact.
const (
	prefixSlot = byte(0x01) // slot:name -> logic buffer
)

// Store errors.
var (
	ErrSlotNotFound = errors.New("slot not found")
	ErrStoreClosed  = errors.New("store closed")
	ErrEmptySlot    = errors.New("slot name must not be empty")
)

// Options configures the store.
type Options struct {
	// DataDir is the directory for the BadgerDB files. Required unless
	// InMemory is set.
	DataDir string

	// InMemory runs BadgerDB in memory-only mode. Useful for testing;
	// data is not persisted.
	InMemory bool

	// SyncWrites forces fsync after each write. Slower but more durable.
	SyncWrites bool

	// Logger for BadgerDB internal logging. If nil, badger logging is
	// silenced.
	Logger badger.Logger
}

// Store persists serialized logic buffers in BadgerDB, keyed by slot name.
// All operations are safe for concurrent use.
type Store struct {
	db     *badger.DB
	mu     sync.RWMutex
	closed bool
}

// Open creates or opens a store.
func Open(opts Options) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.DataDir)
	badgerOpts = badgerOpts.WithInMemory(opts.InMemory)
	badgerOpts = badgerOpts.WithSyncWrites(opts.SyncWrites)
	if opts.Logger != nil {
		badgerOpts = badgerOpts.WithLogger(opts.Logger)
	} else {
		badgerOpts = badgerOpts.WithLogger(nil)
	}
	if opts.InMemory {
		badgerOpts = badgerOpts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database. Further operations fail with
// ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func slotKey(slot string) []byte {
	key := make([]byte, 0, len(slot)+1)
	key = append(key, prefixSlot)
	return append(key, slot...)
}

// Save stores a buffer under the slot name, overwriting any previous
// content.
func (s *Store) Save(slot string, data []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	if slot == "" {
		return ErrEmptySlot
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(slotKey(slot), data)
	})
}

// Load returns the buffer stored under the slot name.
func (s *Store) Load(slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slotKey(slot))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("slot '%s': %w", slot, ErrSlotNotFound)
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// List returns all slot names in key order.
func (s *Store) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	var slots []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte{prefixSlot}
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			slots = append(slots, string(key[1:]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// Delete removes a slot. Deleting a missing slot fails with
// ErrSlotNotFound.
func (s *Store) Delete(slot string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(slotKey(slot)); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("slot '%s': %w", slot, ErrSlotNotFound)
		} else if err != nil {
			return err
		}
		return txn.Delete(slotKey(slot))
	})
}
