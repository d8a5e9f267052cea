package inference

import (
	"testing"
	"time"
)

func TestIndividualHashStability(t *testing.T) {
	a := NewIndividual("Alice")
	b := NewIndividual("Alice")
	if a.LongHashCode() != b.LongHashCode() {
		t.Error("equal values should hash identically")
	}

	// A text-origin "30" and a strongly typed 30 are different values.
	if NewIndividual("30").LongHashCode() == NewIndividual(int64(30)).LongHashCode() {
		t.Error("weakly and strongly typed values should hash differently")
	}
}

func TestIndividualIntNormalization(t *testing.T) {
	if NewIndividual(30).LongHashCode() != NewIndividual(int64(30)).LongHashCode() {
		t.Error("int and int64 literals should hash identically")
	}
	if NewIndividual(30).Value() != int64(30) {
		t.Error("plain ints should normalize to int64")
	}
}

func TestPredicateKindsHashApart(t *testing.T) {
	ind := NewIndividual("X")
	v := NewVariable("X")
	if ind.LongHashCode() == v.LongHashCode() {
		t.Error("an individual and a variable with the same text should hash differently")
	}

	fml := NewFormula("const", "X")
	if fml.LongHashCode() == ind.LongHashCode() {
		t.Error("a formula and an individual with the same value should hash differently")
	}
}

func TestVariableEquality(t *testing.T) {
	x1 := NewVariable("X")
	x2 := NewVariable("X")
	y := NewVariable("Y")

	if !x1.Equal(x2) {
		t.Error("variables with the same name should be equal")
	}
	if x1.Equal(y) {
		t.Error("variables with different names should not be equal")
	}
	if x1.String() != "?X" {
		t.Errorf("unexpected rendering: %s", x1.String())
	}
}

func TestFunctionDefinitionEquality(t *testing.T) {
	always := func(interface{}) bool { return true }
	never := func(interface{}) bool { return false }

	f1 := NewFunction("GreaterThan", always, "5")
	f2 := NewFunction("GreaterThan", never, "5")
	f3 := NewFunction("GreaterThan", always, "6")

	if !f1.Equal(f2) {
		t.Error("same definition should be equal regardless of evaluator")
	}
	if f1.LongHashCode() != f2.LongHashCode() {
		t.Error("same definition should hash identically regardless of evaluator")
	}
	if f1.Equal(f3) {
		t.Error("different operands should not be equal")
	}
	if f1.String() != "GreaterThan(5)" {
		t.Errorf("unexpected rendering: %s", f1.String())
	}
}

func TestFunctionEvaluate(t *testing.T) {
	over18 := NewFunction("Over18", func(v interface{}) bool {
		n, ok := v.(int64)
		return ok && n >= 18
	})

	if !over18.Evaluate(int64(30)) {
		t.Error("30 should satisfy Over18")
	}
	if over18.Evaluate(int64(10)) {
		t.Error("10 should not satisfy Over18")
	}

	// A function without an evaluator satisfies nothing.
	if NewFunction("Unknown", nil).Evaluate(int64(30)) {
		t.Error("nil evaluator should reject everything")
	}
}

func TestSlotDelegation(t *testing.T) {
	inner := NewIndividual("Alice")
	slot := NewSlot("name", inner)

	if slot.Value() != inner.Value() {
		t.Error("slot should delegate Value to its predicate")
	}
	if slot.LongHashCode() != inner.LongHashCode() {
		t.Error("slot should delegate the hash to its predicate")
	}
	if slot.String() != "name=Alice" {
		t.Errorf("unexpected rendering: %s", slot.String())
	}

	defer func() {
		if recover() == nil {
			t.Error("empty slot name should panic")
		}
	}()
	NewSlot("", inner)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		p    Predicate
		want Kind
	}{
		{"individual", NewIndividual("x"), KindIndividual},
		{"variable", NewVariable("x"), KindVariable},
		{"function", NewFunction("f", nil), KindFunction},
		{"formula", NewFormula("e", int64(1)), KindFormula},
		{"slot", NewSlot("s", NewVariable("x")), KindVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.p); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTimeValueRendering(t *testing.T) {
	when := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewIndividual(when)

	if p.String() != "2024-06-01T12:00:00Z" {
		t.Errorf("unexpected rendering: %s", p.String())
	}
	if p.LongHashCode() != NewIndividual(when).LongHashCode() {
		t.Error("equal times should hash identically")
	}
}
