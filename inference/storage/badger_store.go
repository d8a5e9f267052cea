package storage

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/orrollo/NxBRE/inference"
)

// BadgerFactStore implements FactStore using BadgerDB.
type BadgerFactStore struct {
	db *badger.DB
}

// NewBadgerFactStore opens (or creates) a BadgerDB-backed store at path.
func NewBadgerFactStore(path string) (*BadgerFactStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable BadgerDB logs

	// Snapshots are small and write-heavy; keep the tables modest and
	// store values inline in the LSM tree.
	opts.MemTableSize = 16 << 20
	opts.ValueThreshold = 1 << 10
	opts.DetectConflicts = false

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &BadgerFactStore{db: db}, nil
}

// Snapshot replaces the stored fact set with the given one.
func (s *BadgerFactStore) Snapshot(facts []*inference.Atom) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := deleteRange(txn, keyPrefix); err != nil {
			return err
		}
		for _, fact := range facts {
			value, err := encodeFact(fact)
			if err != nil {
				return err
			}
			if err := txn.Set(encodeKey(fact), value); err != nil {
				return fmt.Errorf("failed to write %s: %w", fact, err)
			}
		}
		return nil
	})
}

// Restore loads every stored fact, ordered by key (signature, then hash).
func (s *BadgerFactStore) Restore() ([]*inference.Atom, error) {
	return s.scan(keyPrefix)
}

// FactsBySignature loads the stored facts in one signature group.
func (s *BadgerFactStore) FactsBySignature(signature string) ([]*inference.Atom, error) {
	return s.scan(signaturePrefix(signature))
}

func (s *BadgerFactStore) scan(prefix []byte) ([]*inference.Atom, error) {
	var facts []*inference.Atom

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				fact, err := decodeFact(val)
				if err != nil {
					return fmt.Errorf("corrupt fact at %q: %w", it.Item().Key(), err)
				}
				facts = append(facts, fact)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return facts, nil
}

func (s *BadgerFactStore) Close() error {
	return s.db.Close()
}

// deleteRange drops every key under prefix within the transaction.
func deleteRange(txn *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("failed to delete %q: %w", key, err)
		}
	}
	return nil
}
