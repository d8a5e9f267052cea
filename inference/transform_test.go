package inference

import "testing"

func TestResolveFunctionsReplacesFunctions(t *testing.T) {
	fortyTwo := NewFunction("FortyTwo", nil)
	atom := NewAtom("answer", NewIndividual("deep thought"), fortyTwo)

	resolved := ResolveFunctions(atom)

	if resolved.HasFunction() {
		t.Error("resolved atom should have no function members")
	}
	member, ok := resolved.Member(1).(Individual)
	if !ok {
		t.Fatalf("expected Individual, got %T", resolved.Member(1))
	}
	if member.Value() != "FortyTwo()" {
		t.Errorf("expected the function's rendering, got %v", member.Value())
	}
	if resolved.Member(0).Value() != "deep thought" {
		t.Error("non-function members should pass through unchanged")
	}
	if resolved.Type() != "answer" || resolved.IsNegative() {
		t.Error("type and negation should carry over")
	}
}

func TestResolveFunctionsFixpoint(t *testing.T) {
	atom := NewAtom("likes", NewIndividual("Alice"), NewIndividual("Bob"))

	resolved := ResolveFunctions(atom)

	if resolved == atom {
		t.Error("result should be a distinct instance")
	}
	eq, err := atom.Equals(resolved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eq {
		t.Error("resolving a function-free atom should yield an equal atom")
	}
}

func TestTranslateVariablesSubstitution(t *testing.T) {
	// Rule: parent(?X, ?Y) => descendant(?Y, ?X)
	antecedent := NewAtom("parent", NewVariable("X"), NewVariable("Y"))
	fact := NewAtom("parent", NewIndividual("Homer"), NewIndividual("Bart"))
	deduction := NewAtom("descendant", NewVariable("Y"), NewVariable("X"))

	derived := TranslateVariables(fact, antecedent, deduction)

	if derived.Type() != "descendant" {
		t.Errorf("expected target type, got %s", derived.Type())
	}
	if derived.Member(0).Value() != "Bart" || derived.Member(1).Value() != "Homer" {
		t.Errorf("unexpected substitution: %s", derived)
	}
	if !derived.IsFact() {
		t.Error("fully substituted deduction should be a fact")
	}
}

func TestTranslateVariablesUnboundPassThrough(t *testing.T) {
	antecedent := NewAtom("parent", NewVariable("X"), NewVariable("Y"))
	fact := NewAtom("parent", NewIndividual("Homer"), NewIndividual("Bart"))
	target := NewAtom("related", NewVariable("X"), NewVariable("Z"), NewIndividual("blood"))

	derived := TranslateVariables(fact, antecedent, target)

	if derived.Member(0).Value() != "Homer" {
		t.Error("bound variable should be substituted")
	}
	if v, ok := derived.Member(1).(Variable); !ok || v.Name() != "Z" {
		t.Error("unbound variable should pass through unchanged")
	}
	if derived.Member(2).Value() != "blood" {
		t.Error("non-variable positions should pass through unchanged")
	}
}

func TestTranslateVariablesIdentity(t *testing.T) {
	template := NewNegativeAtom("parent", NewVariable("X"), NewVariable("Y"))
	source := NewAtom("parent", NewVariable("X"), NewVariable("Y"))
	target := NewAtom("sibling", NewIndividual("Bart"), NewIndividual("Lisa"))

	derived := TranslateVariables(template, source, target)

	// No variables in target: same members, template's negation.
	if !derived.IsNegative() {
		t.Error("result should carry the template's negation")
	}
	positive := NewAtom("sibling", NewIndividual("Bart"), NewIndividual("Lisa"))
	eq, err := derived.Equals(positive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eq {
		t.Error("members and type should be unchanged")
	}
}

func TestTranslateVariablesKeepsSlotNames(t *testing.T) {
	antecedent := NewAtom("person", NewVariable("N"))
	fact := NewAtom("person", NewIndividual("Alice"))
	target := NewAtom("greeting", NewSlot("who", NewVariable("N")))

	derived := TranslateVariables(fact, antecedent, target)

	if derived.SlotName(0) != "who" {
		t.Error("slot names should come from the target")
	}
	if derived.Member(0).Value() != "Alice" {
		t.Error("variable should be substituted")
	}
}
