// Package storage persists working-memory snapshots. Only ground facts
// are stored: Function members must be resolved before a snapshot, and
// Formula members are flattened to their literal values, so a restored
// memory holds plain literal facts.
package storage

import "github.com/orrollo/NxBRE/inference"

// FactStore persists ground facts between engine runs.
type FactStore interface {
	// Snapshot writes the given facts, replacing any previous snapshot.
	Snapshot(facts []*inference.Atom) error

	// Restore loads every stored fact.
	Restore() ([]*inference.Atom, error)

	// FactsBySignature loads the stored facts in one signature group.
	FactsBySignature(signature string) ([]*inference.Atom, error)

	Close() error
}
