// Package engine drives naive forward chaining over the matching core:
// working memory, a priority agenda of implications, and the binder
// capability that rule functions are computed through.
package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/orrollo/NxBRE/inference"
)

// ErrUnsupportedOperation reports a binder call with an operation name the
// binder does not recognize.
var ErrUnsupportedOperation = errors.New("unsupported binder operation")

// Binder computes externally defined operations referenced by rule
// functions. It is a capability consumed by the engine; implementations
// live with the host application.
type Binder interface {
	// Compute evaluates the named operation against the given arguments.
	// Unrecognized operation names fail with ErrUnsupportedOperation.
	Compute(operation string, args map[string]interface{}) (interface{}, error)
}

// Operation computes a single binder operation.
type Operation func(args map[string]interface{}) (interface{}, error)

// MapBinder is a registry-backed Binder. Registration is expected to
// happen up front, before the engine runs; the registry itself is not
// synchronized.
type MapBinder struct {
	ops map[string]Operation
}

func NewMapBinder() *MapBinder {
	return &MapBinder{ops: make(map[string]Operation)}
}

// Register adds or replaces an operation.
func (b *MapBinder) Register(name string, op Operation) {
	b.ops[name] = op
}

func (b *MapBinder) Compute(operation string, args map[string]interface{}) (interface{}, error) {
	op, ok := b.ops[operation]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperation, operation)
	}
	return op(args)
}

// BinderFunction builds a Function predicate whose evaluator routes
// through a binder operation. The candidate value is passed under "value",
// the function's own operands under "arg0", "arg1", ... in order. A failed
// or non-boolean computation rejects the candidate.
func BinderFunction(binder Binder, operation string, operands ...string) inference.Function {
	evaluator := func(value interface{}) bool {
		args := make(map[string]interface{}, len(operands)+1)
		args["value"] = value
		for i, operand := range operands {
			args["arg"+strconv.Itoa(i)] = operand
		}
		result, err := binder.Compute(operation, args)
		if err != nil {
			return false
		}
		verdict, ok := result.(bool)
		return ok && verdict
	}
	return inference.NewFunction(operation, evaluator, operands...)
}
