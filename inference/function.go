package inference

import "strings"

// Evaluator decides whether a concrete value satisfies a named test.
// Implementations are typically backed by a binder operation supplied by
// the surrounding engine; the matching core only ever asks for a verdict.
type Evaluator func(value interface{}) bool

// Function is a named, evaluable test over a single value position, e.g.
// GreaterThan(10). Two Functions are equal when their definitions (name
// plus operands) are equal; the attached evaluator takes no part in
// equality or hashing, so the same rule loaded twice compares equal even
// when its evaluators are distinct closures.
type Function struct {
	name      string
	operands  []string
	signature string
	evaluator Evaluator
	hash      uint64
}

// NewFunction creates a function predicate from its definition and the
// evaluator that implements it. A nil evaluator is allowed and satisfies
// nothing.
func NewFunction(name string, evaluator Evaluator, operands ...string) Function {
	signature := name + "(" + strings.Join(operands, ",") + ")"
	return Function{
		name:      name,
		operands:  operands,
		signature: signature,
		evaluator: evaluator,
		hash:      hashValue("fun", signature),
	}
}

// Value returns the rendered definition. The definition is the function's
// payload: it is what ResolveFunctions materializes into an Individual.
func (f Function) Value() interface{} { return f.signature }

func (f Function) Name() string { return f.name }

// Operands returns the operand list as written in the definition.
func (f Function) Operands() []string {
	out := make([]string, len(f.operands))
	copy(out, f.operands)
	return out
}

func (f Function) LongHashCode() uint64 { return f.hash }
func (f Function) String() string       { return f.signature }

// Equal reports definition equality: same name, same operands in order.
func (f Function) Equal(other Function) bool {
	return f.signature == other.signature
}

// Evaluate reports whether the value satisfies this test.
func (f Function) Evaluate(value interface{}) bool {
	if f.evaluator == nil {
		return false
	}
	return f.evaluator(value)
}
