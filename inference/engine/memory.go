package engine

import (
	"fmt"
	"sort"

	"github.com/orrollo/NxBRE/inference"
)

// WorkingMemory holds the asserted facts. Deduplication rides on the Atom
// hash-equality contract: the primary index is keyed by the combined
// 64-bit hash, with a secondary signature index for candidate lookup
// during rule evaluation.
//
// WorkingMemory is not synchronized; the engine owns it for the duration
// of a run.
type WorkingMemory struct {
	byHash      map[uint64]*inference.Atom
	bySignature map[string][]*inference.Atom
}

func NewWorkingMemory() *WorkingMemory {
	return &WorkingMemory{
		byHash:      make(map[uint64]*inference.Atom),
		bySignature: make(map[string][]*inference.Atom),
	}
}

// Assert adds a ground fact. Re-asserting an equal fact is a no-op and
// returns false. Asserting a non-ground atom is a programming error.
func (wm *WorkingMemory) Assert(fact *inference.Atom) (bool, error) {
	if !fact.IsFact() {
		return false, fmt.Errorf("cannot assert non-ground atom: %s", fact)
	}
	hash := fact.LongHashCode()
	if _, ok := wm.byHash[hash]; ok {
		return false, nil
	}
	wm.byHash[hash] = fact
	sig := fact.Signature()
	wm.bySignature[sig] = append(wm.bySignature[sig], fact)
	return true, nil
}

// Retract removes the fact equal to the given atom. Returns false when no
// such fact was present.
func (wm *WorkingMemory) Retract(fact *inference.Atom) bool {
	hash := fact.LongHashCode()
	stored, ok := wm.byHash[hash]
	if !ok {
		return false
	}
	delete(wm.byHash, hash)

	sig := stored.Signature()
	group := wm.bySignature[sig]
	for i, f := range group {
		if f.LongHashCode() == hash {
			wm.bySignature[sig] = append(group[:i], group[i+1:]...)
			break
		}
	}
	if len(wm.bySignature[sig]) == 0 {
		delete(wm.bySignature, sig)
	}
	return true
}

// Contains reports whether an equal fact is present.
func (wm *WorkingMemory) Contains(fact *inference.Atom) bool {
	_, ok := wm.byHash[fact.LongHashCode()]
	return ok
}

// Count returns the number of facts.
func (wm *WorkingMemory) Count() int {
	return len(wm.byHash)
}

// Facts returns every fact, grouped by signature in sorted order and in
// assertion order within a group.
func (wm *WorkingMemory) Facts() []*inference.Atom {
	signatures := make([]string, 0, len(wm.bySignature))
	for sig := range wm.bySignature {
		signatures = append(signatures, sig)
	}
	sort.Strings(signatures)

	out := make([]*inference.Atom, 0, len(wm.byHash))
	for _, sig := range signatures {
		out = append(out, wm.bySignature[sig]...)
	}
	return out
}

// FactsMatching returns the facts compatible with the pattern under the
// Matches tier, in assertion order. Only the pattern's signature group is
// scanned.
func (wm *WorkingMemory) FactsMatching(pattern *inference.Atom) []*inference.Atom {
	var out []*inference.Atom
	for _, fact := range wm.bySignature[pattern.Signature()] {
		if inference.Matches(pattern, fact) {
			out = append(out, fact)
		}
	}
	return out
}
