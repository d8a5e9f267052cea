// Package inference implements the fact and pattern representation used by
// the forward-chaining rule engine: typed tuples of predicates (Atoms),
// position-sensitive 64-bit hashing, and the three matching tiers the
// surrounding rule-firing machinery is built on.
//
// Everything in this package is immutable after construction. Atoms and
// predicates may be shared freely across goroutines; cloning and the
// transform helpers always allocate new instances.
package inference

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"time"
)

// Predicate is a single typed value slot inside an Atom. The closed set of
// member kinds is Individual, Variable, Function and Formula; Slot is a
// construction-time wrapper that delegates to the predicate it carries.
type Predicate interface {
	// Value returns the semantic payload used for display and equality.
	Value() interface{}

	// LongHashCode returns a deterministic 64-bit hash of the value,
	// stable across instances holding equal values.
	LongHashCode() uint64

	String() string
}

// Kind classifies a predicate for introspection and for the kind-identity
// check performed by IsIntersecting.
type Kind int

const (
	KindIndividual Kind = iota
	KindVariable
	KindFunction
	KindFormula
)

func (k Kind) String() string {
	switch k {
	case KindIndividual:
		return "individual"
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindFormula:
		return "formula"
	default:
		return "unknown"
	}
}

// KindOf returns the member kind of a predicate. Slots report the kind of
// the predicate they wrap.
func KindOf(p Predicate) Kind {
	switch v := p.(type) {
	case Individual:
		return KindIndividual
	case Variable:
		return KindVariable
	case Function:
		return KindFunction
	case Formula:
		return KindFormula
	case Slot:
		return KindOf(v.Predicate())
	default:
		return Kind(-1)
	}
}

// hashValue derives the 64-bit hash for a predicate payload: SHA-1 over a
// kind-tagged rendering, first 8 bytes big-endian. The kind tag keeps
// Individual("x"), Variable("x") and Function "x()" from colliding; the
// value tag inside renderValue keeps Individual("30") and Individual(30)
// distinct, which is what makes weak typing observable through the hash.
func hashValue(kind string, value interface{}) uint64 {
	h := sha1.Sum([]byte(kind + ":" + renderValue(value)))
	return binary.BigEndian.Uint64(h[:8])
}

// renderValue produces the canonical type-tagged textual form of a payload.
func renderValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case int64:
		return fmt.Sprintf("i:%d", val)
	case float64:
		return fmt.Sprintf("f:%g", val)
	case bool:
		return fmt.Sprintf("b:%t", val)
	case time.Time:
		return "t:" + val.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("v:%v", v)
	}
}

// Individual is a concrete literal value: string, int64, float64, bool,
// time.Time or any other comparable payload. A string-valued Individual may
// be weakly typed (it originated as text); during matching it is resolved
// against the concrete type of its counterpart.
type Individual struct {
	value interface{}
	hash  uint64
}

// NewIndividual creates a literal predicate. Plain ints normalize to int64
// so that in-memory and decoded-from-storage literals hash identically.
func NewIndividual(value interface{}) Individual {
	if n, ok := value.(int); ok {
		value = int64(n)
	}
	return Individual{value: value, hash: hashValue("ind", value)}
}

func (i Individual) Value() interface{}   { return i.value }
func (i Individual) LongHashCode() uint64 { return i.hash }

func (i Individual) String() string {
	if t, ok := i.value.(time.Time); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", i.value)
}

// Variable is a named placeholder bound during matching. Two Variables are
// equal iff their names are equal.
type Variable struct {
	name string
	hash uint64
}

func NewVariable(name string) Variable {
	return Variable{name: name, hash: hashValue("var", name)}
}

func (v Variable) Value() interface{}   { return v.name }
func (v Variable) Name() string         { return v.name }
func (v Variable) LongHashCode() uint64 { return v.hash }
func (v Variable) String() string       { return "?" + v.name }

// Equal reports name equality.
func (v Variable) Equal(other Variable) bool {
	return v.name == other.name
}

// Formula is a derived value, computed once before the atom was built. It
// compares like a concrete literal but is classified separately so callers
// can tell computed results from asserted ones.
type Formula struct {
	expression string
	value      interface{}
	hash       uint64
}

// NewFormula creates a formula predicate holding the already-evaluated
// result of the given expression.
func NewFormula(expression string, value interface{}) Formula {
	if n, ok := value.(int); ok {
		value = int64(n)
	}
	return Formula{expression: expression, value: value, hash: hashValue("fml", value)}
}

func (f Formula) Value() interface{}   { return f.value }
func (f Formula) Expression() string   { return f.expression }
func (f Formula) LongHashCode() uint64 { return f.hash }
func (f Formula) String() string       { return fmt.Sprintf("%v", f.value) }
