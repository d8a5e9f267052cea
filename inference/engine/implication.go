package engine

import (
	"fmt"

	"github.com/orrollo/NxBRE/inference"
)

// Implication is a forward-chaining rule: when working-memory facts
// satisfy every antecedent, the deduction is derived with the matched
// facts' bindings and asserted. A negative antecedent is satisfied by the
// absence of any matching fact (negation as failure); a negative deduction
// retracts the derived fact instead of asserting it.
type Implication struct {
	Label       string
	Priority    int
	Antecedents []*inference.Atom
	Deduction   *inference.Atom
}

// NewImplication builds a rule. At least one antecedent and a deduction
// are required.
func NewImplication(label string, priority int, deduction *inference.Atom, antecedents ...*inference.Atom) (*Implication, error) {
	if len(antecedents) == 0 {
		return nil, fmt.Errorf("implication %q has no antecedents", label)
	}
	if deduction == nil {
		return nil, fmt.Errorf("implication %q has no deduction", label)
	}
	return &Implication{
		Label:       label,
		Priority:    priority,
		Antecedents: antecedents,
		Deduction:   deduction,
	}, nil
}

func (imp *Implication) String() string {
	return fmt.Sprintf("%s[%d]", imp.Label, imp.Priority)
}

// positives returns the non-negative antecedents in order.
func (imp *Implication) positives() []*inference.Atom {
	out := make([]*inference.Atom, 0, len(imp.Antecedents))
	for _, ant := range imp.Antecedents {
		if !ant.IsNegative() {
			out = append(out, ant)
		}
	}
	return out
}

// negatives returns the negation-as-failure antecedents in order.
func (imp *Implication) negatives() []*inference.Atom {
	var out []*inference.Atom
	for _, ant := range imp.Antecedents {
		if ant.IsNegative() {
			out = append(out, ant)
		}
	}
	return out
}
