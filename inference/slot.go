package inference

// Slot pairs a non-empty name with a predicate. Slots exist only at Atom
// construction time: the atom records the name in its slot-name table and
// stores the wrapped predicate directly, so a Slot is never found among an
// atom's members. Slot implements Predicate by delegation, which lets
// callers mix named and unnamed members in a single constructor call.
type Slot struct {
	name      string
	predicate Predicate
}

// NewSlot wraps a predicate with a slot name. The name must be non-empty;
// an empty name marks the "no slot" case and is reserved.
func NewSlot(name string, predicate Predicate) Slot {
	if name == "" {
		panic("inference: slot name must not be empty")
	}
	return Slot{name: name, predicate: predicate}
}

func (s Slot) Name() string         { return s.name }
func (s Slot) Predicate() Predicate { return s.predicate }

func (s Slot) Value() interface{}   { return s.predicate.Value() }
func (s Slot) LongHashCode() uint64 { return s.predicate.LongHashCode() }

func (s Slot) String() string {
	return s.name + "=" + s.predicate.String()
}
