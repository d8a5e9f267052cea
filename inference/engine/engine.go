package engine

import (
	"fmt"
	"time"

	"github.com/orrollo/NxBRE/inference"
	"github.com/orrollo/NxBRE/inference/trace"
)

// DefaultMaxCycles bounds a Run when Options.MaxCycles is unset. Rule
// bases that retract facts can oscillate; the bound turns an endless run
// into an error.
const DefaultMaxCycles = 1000

// Options configures an Engine.
type Options struct {
	// MaxCycles bounds the number of full agenda passes; 0 applies
	// DefaultMaxCycles.
	MaxCycles int

	// Handler receives trace events; nil disables tracing.
	Handler trace.Handler
}

// Engine drives naive forward chaining: every scheduled implication is
// evaluated against working memory, derived facts are re-asserted, and
// the loop repeats until a cycle produces no change.
//
// This is deliberately not a propagation network: no RETE memories, no
// incremental join state. Rule evaluation cost is paid in full each cycle.
type Engine struct {
	memory *WorkingMemory
	rules  []*Implication
	opts   Options
}

func NewEngine(opts Options) *Engine {
	return &Engine{
		memory: NewWorkingMemory(),
		opts:   opts,
	}
}

// Memory returns the engine's working memory.
func (e *Engine) Memory() *WorkingMemory {
	return e.memory
}

// AddImplication registers a rule for evaluation on the next Run.
func (e *Engine) AddImplication(imp *Implication) {
	e.rules = append(e.rules, imp)
}

// Assert adds a fact to working memory, resolving Function members first.
// Re-asserting an equal fact is a no-op and returns false.
func (e *Engine) Assert(fact *inference.Atom) (bool, error) {
	start := time.Now()
	resolved := inference.ResolveFunctions(fact)
	added, err := e.memory.Assert(resolved)
	if err != nil {
		return false, err
	}
	if added {
		trace.Emit(e.opts.Handler, trace.FactAsserted, start, map[string]interface{}{
			"fact": resolved.String(),
		})
	}
	return added, nil
}

// Run fires rules until a fixpoint is reached and returns the number of
// working-memory changes (assertions plus retractions). It fails when the
// cycle bound is exhausted before the fixpoint.
func (e *Engine) Run() (int, error) {
	start := time.Now()
	trace.Emit(e.opts.Handler, trace.EngineRunBegin, start, map[string]interface{}{
		"rules.count": len(e.rules),
		"facts.count": e.memory.Count(),
	})

	maxCycles := e.opts.MaxCycles
	if maxCycles <= 0 {
		maxCycles = DefaultMaxCycles
	}

	total := 0
	for cycle := 1; ; cycle++ {
		if cycle > maxCycles {
			return total, fmt.Errorf("no fixpoint after %d cycles", maxCycles)
		}

		cycleStart := time.Now()
		agenda := NewAgenda()
		agenda.ScheduleAll(e.rules)

		changes := 0
		for !agenda.IsEmpty() {
			imp := agenda.Next()
			ruleStart := time.Now()
			n := e.evaluate(imp)
			trace.Emit(e.opts.Handler, trace.RuleEvaluated, ruleStart, map[string]interface{}{
				"label":         imp.Label,
				"derived.count": n,
			})
			changes += n
		}

		trace.Emit(e.opts.Handler, trace.EngineCycle, cycleStart, map[string]interface{}{
			"cycle":         cycle,
			"derived.count": changes,
		})
		total += changes

		if changes == 0 {
			trace.Emit(e.opts.Handler, trace.EngineFixpoint, start, map[string]interface{}{
				"cycles":      cycle,
				"facts.count": e.memory.Count(),
			})
			return total, nil
		}
	}
}

// evaluate fires one implication against the current working memory and
// returns the number of changes it caused.
func (e *Engine) evaluate(imp *Implication) int {
	positives := imp.positives()
	negatives := imp.negatives()

	candidates := make([][]*inference.Atom, len(positives))
	for i, ant := range positives {
		candidates[i] = e.memory.FactsMatching(ant)
		if len(candidates[i]) == 0 {
			return 0
		}
	}

	changes := 0
	combo := make([]*inference.Atom, len(positives))

	var walk func(depth int, bindings map[string]uint64)
	walk = func(depth int, bindings map[string]uint64) {
		if depth == len(positives) {
			if !e.negativesSatisfied(negatives, positives, combo) {
				return
			}
			changes += e.deduce(imp, positives, combo)
			return
		}
		ant := positives[depth]
		for _, fact := range candidates[depth] {
			next, ok := extendBindings(bindings, ant, fact)
			if !ok {
				continue
			}
			combo[depth] = fact
			walk(depth+1, next)
		}
	}
	walk(0, map[string]uint64{})
	return changes
}

// negativesSatisfied checks every negation-as-failure antecedent after
// projecting the combo's bindings into it: satisfied iff no fact matches.
func (e *Engine) negativesSatisfied(negatives, positives []*inference.Atom, combo []*inference.Atom) bool {
	for _, neg := range negatives {
		pattern := neg
		for j, ant := range positives {
			pattern = inference.TranslateVariables(combo[j], ant, pattern)
		}
		if len(e.memory.FactsMatching(pattern)) > 0 {
			return false
		}
	}
	return true
}

// deduce materializes the implication's deduction for one antecedent/fact
// combination. Unbound deductions are dropped; a negative deduction
// retracts instead of asserting.
func (e *Engine) deduce(imp *Implication, positives, combo []*inference.Atom) int {
	derived := imp.Deduction
	for j, ant := range positives {
		derived = inference.TranslateVariables(combo[j], ant, derived)
	}
	resolved := inference.ResolveFunctions(derived)
	if !resolved.IsFact() {
		return 0
	}

	start := time.Now()
	if imp.Deduction.IsNegative() {
		if e.memory.Retract(resolved) {
			trace.Emit(e.opts.Handler, trace.FactRetracted, start, map[string]interface{}{
				"fact": resolved.String(),
			})
			return 1
		}
		return 0
	}

	added, err := e.memory.Assert(resolved)
	if err != nil || !added {
		return 0
	}
	trace.Emit(e.opts.Handler, trace.FactAsserted, start, map[string]interface{}{
		"fact": resolved.String(),
	})
	return 1
}

// extendBindings checks a fact against the variable bindings accumulated
// from earlier antecedents and returns the extended set. Bindings hold the
// bound member's hash, per the hash-equality contract; a conflicting
// rebind rejects the fact.
func extendBindings(bindings map[string]uint64, antecedent, fact *inference.Atom) (map[string]uint64, bool) {
	next := bindings
	copied := false
	for i := 0; i < antecedent.Arity(); i++ {
		v, ok := antecedent.Member(i).(inference.Variable)
		if !ok {
			continue
		}
		hash := fact.Member(i).LongHashCode()
		if existing, bound := next[v.Name()]; bound {
			if existing != hash {
				return nil, false
			}
			continue
		}
		if !copied {
			extended := make(map[string]uint64, len(next)+1)
			for k, h := range next {
				extended[k] = h
			}
			next = extended
			copied = true
		}
		next[v.Name()] = hash
	}
	return next, true
}
