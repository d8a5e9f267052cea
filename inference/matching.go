package inference

// BasicMatches reports signature compatibility: same relation type and the
// same arity. Member content is ignored entirely, so the comparison is
// symmetric by construction.
func BasicMatches(a, b *Atom) bool {
	return a.kind == b.kind && len(a.members) == len(b.members)
}

// Matches reports whether two signature-compatible atoms agree at every
// position. Individuals compare by value after strong-type resolution,
// Functions evaluate against their concrete counterpart or compare by
// definition against each other, and any position involving a Variable is
// left unchecked — variable binding consistency is the caller's concern,
// not this tier's. A single failing position fails the whole pair.
func Matches(a, b *Atom) bool {
	if !BasicMatches(a, b) {
		return false
	}
	for i := range a.members {
		if !membersMatch(a.members[i], b.members[i]) {
			return false
		}
	}
	return true
}

// membersMatch compares one position. Formulas pair with Individuals and
// Functions the way Individuals would; every other pairing, including
// anything touching a Variable, falls through as matching.
func membersMatch(left, right Predicate) bool {
	switch l := left.(type) {
	case Individual:
		switch r := right.(type) {
		case Individual:
			return valuesMatch(l.Value(), r.Value())
		case Function:
			return r.Evaluate(l.Value())
		case Formula:
			return valuesMatch(l.Value(), r.Value())
		}
	case Function:
		switch r := right.(type) {
		case Individual:
			return l.Evaluate(r.Value())
		case Function:
			return l.Equal(r)
		case Formula:
			return l.Evaluate(r.Value())
		}
	case Formula:
		switch r := right.(type) {
		case Individual:
			return valuesMatch(l.Value(), r.Value())
		case Function:
			return r.Evaluate(l.Value())
		}
	}
	return true
}

// IsIntersecting reports whether two atoms can stand for the same fact. It
// requires Matches, then the identical predicate kind at every position. A
// fully ground left atom intersects with anything it matches. Otherwise
// variable positions are compared by name and the mismatches counted; the
// atoms intersect iff the mismatch count stays below the full member
// count. The denominator is deliberately the total arity, not the number
// of variable positions, so every non-variable position counts as
// non-mismatching.
func IsIntersecting(a, b *Atom) bool {
	if !Matches(a, b) {
		return false
	}
	for i := range a.members {
		if KindOf(a.members[i]) != KindOf(b.members[i]) {
			return false
		}
	}
	if !a.HasVariable() {
		return true
	}
	mismatches := 0
	for i := range a.members {
		if v, ok := a.members[i].(Variable); ok {
			w, ok := b.members[i].(Variable)
			if !ok || !v.Equal(w) {
				mismatches++
			}
		}
	}
	return mismatches < len(a.members)
}
