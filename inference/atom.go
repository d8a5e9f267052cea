package inference

import (
	"fmt"
	"strconv"
	"strings"
)

// Atom is an immutable, ordered, typed tuple of predicates. It represents
// either a fact (fully ground) or a rule pattern (contains at least one
// Variable); there is no third state. Position is significant: members are
// never reordered, and the combined hash folds them in order.
//
// Equality between atoms is hash equality, not a field-by-field structural
// comparison. The 64-bit hash already folds in the relation type and every
// member value in order and is trusted to have negligible collision
// probability for the engine's usage; working-memory deduplication depends
// on this exact contract.
type Atom struct {
	negative  bool
	kind      string
	members   []Predicate
	slotNames []string

	hasSlot       bool
	isFact        bool
	hasFunction   bool
	hasFormula    bool
	hasIndividual bool

	longHash  uint64
	hash      uint32
	signature string
}

// NewAtom builds a positive atom of the given relation type. Members may be
// bare predicates or Slots; Slots are unwrapped, their names recorded in
// the parallel slot-name table.
func NewAtom(kind string, members ...Predicate) *Atom {
	return newAtom(false, kind, members)
}

// NewNegativeAtom builds a negation-as-failure atom.
func NewNegativeAtom(kind string, members ...Predicate) *Atom {
	return newAtom(true, kind, members)
}

func newAtom(negative bool, kind string, members []Predicate) *Atom {
	a := &Atom{
		negative:  negative,
		kind:      kind,
		members:   make([]Predicate, len(members)),
		slotNames: make([]string, len(members)),
		isFact:    true,
	}

	for i, m := range members {
		if slot, ok := m.(Slot); ok {
			a.hasSlot = true
			a.slotNames[i] = slot.Name()
			m = slot.Predicate()
		}
		a.members[i] = m
	}

	// Fold the type hash into both halves, then shift-xor each member in
	// order. The shift makes the fold position-sensitive: permuting two
	// distinct members changes the result.
	kindHash := uint64(uint32(hashValue("type", kind)))
	a.longHash = (kindHash << 32) ^ kindHash
	for _, m := range a.members {
		a.longHash = (a.longHash << 1) ^ m.LongHashCode()
		switch m.(type) {
		case Variable:
			a.isFact = false
		case Function:
			a.hasFunction = true
		case Formula:
			a.hasFormula = true
		case Individual:
			a.hasIndividual = true
		}
	}
	a.hash = uint32(a.longHash) ^ uint32(a.longHash>>32)
	a.signature = kind + strconv.Itoa(len(a.members))
	return a
}

// IsNegative reports whether this is a negation-as-failure atom.
func (a *Atom) IsNegative() bool { return a.negative }

// Type returns the relation type name.
func (a *Atom) Type() string { return a.kind }

// Arity returns the member count.
func (a *Atom) Arity() int { return len(a.members) }

// Signature returns the coarse grouping key: type concatenated with the
// member count. It is an indexing key, not an identity.
func (a *Atom) Signature() string { return a.signature }

func (a *Atom) HasSlot() bool       { return a.hasSlot }
func (a *Atom) HasFunction() bool   { return a.hasFunction }
func (a *Atom) HasFormula() bool    { return a.hasFormula }
func (a *Atom) HasIndividual() bool { return a.hasIndividual }

// IsFact reports whether the atom is fully ground (no Variable members).
func (a *Atom) IsFact() bool { return a.isFact }

// HasVariable is the complement of IsFact.
func (a *Atom) HasVariable() bool { return !a.isFact }

// LongHashCode returns the combined 64-bit hash computed at construction.
func (a *Atom) LongHashCode() uint64 { return a.longHash }

// HashCode returns the 32-bit reduction of the combined hash. It is
// consistent with Equals: equal atoms always share it.
func (a *Atom) HashCode() uint32 { return a.hash }

// Member returns the predicate at the given position. An out-of-range
// index is a programming error and panics.
func (a *Atom) Member(index int) Predicate {
	if index < 0 || index >= len(a.members) {
		panic(fmt.Sprintf("inference: member index %d out of range for %s", index, a.signature))
	}
	return a.members[index]
}

// PredicateValue returns the payload of the member at the given position.
// An out-of-range index is a programming error and panics.
func (a *Atom) PredicateValue(index int) interface{} {
	return a.Member(index).Value()
}

// SlotName returns the slot name at the given position, empty when the
// position carries no name.
func (a *Atom) SlotName(index int) string {
	if index < 0 || index >= len(a.slotNames) {
		panic(fmt.Sprintf("inference: member index %d out of range for %s", index, a.signature))
	}
	return a.slotNames[index]
}

// PredicateBySlot returns the predicate whose slot name matches. An empty
// name argument is a hard error; a valid name with no matching slot is a
// soft miss and returns (nil, nil).
func (a *Atom) PredicateBySlot(name string) (Predicate, error) {
	if name == "" {
		return nil, ErrEmptySlotName
	}
	for i, sn := range a.slotNames {
		if sn == name {
			return a.members[i], nil
		}
	}
	return nil, nil
}

// ValueBySlot returns the payload of the predicate whose slot name matches.
// Unlike PredicateBySlot, a miss is escalated to an error.
func (a *Atom) ValueBySlot(name string) (interface{}, error) {
	p, err := a.PredicateBySlot(name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchSlot, name)
	}
	return p.Value(), nil
}

// PredicateValues materializes every member's payload in order. It
// allocates on every call; not for hot paths.
func (a *Atom) PredicateValues() []interface{} {
	values := make([]interface{}, len(a.members))
	for i, m := range a.members {
		values[i] = m.Value()
	}
	return values
}

// Clone returns an identity-preserving structural copy. The slot-name
// table is shared with the source, which is safe because it is never
// mutated after construction; the member slice is freshly allocated.
func (a *Atom) Clone() *Atom {
	return a.cloneWithMembers(a.members)
}

// cloneWithMembers rebuilds the atom around a substituted member sequence,
// recomputing the hash and flags and sharing the slot-name table.
func (a *Atom) cloneWithMembers(members []Predicate) *Atom {
	clone := newAtom(a.negative, a.kind, members)
	clone.slotNames = a.slotNames
	clone.hasSlot = a.hasSlot
	return clone
}

// Equals reports whether other is an *Atom with the same combined 64-bit
// hash. Passing any other type is a programming error and fails with
// ErrTypeMismatch; the error names the offending type.
func (a *Atom) Equals(other interface{}) (bool, error) {
	b, ok := other.(*Atom)
	if !ok {
		return false, fmt.Errorf("%w: %T", ErrTypeMismatch, other)
	}
	return a.longHash == b.longHash, nil
}

// String renders the atom as [!]type{[slot=]member,...} in member order.
func (a *Atom) String() string {
	var b strings.Builder
	if a.negative {
		b.WriteByte('!')
	}
	b.WriteString(a.kind)
	b.WriteByte('{')
	for i, m := range a.members {
		if i > 0 {
			b.WriteByte(',')
		}
		if a.slotNames[i] != "" {
			b.WriteString(a.slotNames[i])
			b.WriteByte('=')
		}
		b.WriteString(m.String())
	}
	b.WriteByte('}')
	return b.String()
}
