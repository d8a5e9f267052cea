package inference

// Stateless transforms that derive new atoms. Both always allocate; the
// input atoms are never touched.

// ResolveFunctions returns an atom with every Function member replaced by
// an Individual holding the function's rendered definition. An atom
// without Function members comes back as a plain structural clone — equal
// by hash, but a distinct instance.
func ResolveFunctions(a *Atom) *Atom {
	if !a.hasFunction {
		return a.Clone()
	}
	members := make([]Predicate, len(a.members))
	for i, m := range a.members {
		if f, ok := m.(Function); ok {
			members[i] = NewIndividual(f.String())
		} else {
			members[i] = m
		}
	}
	return a.cloneWithMembers(members)
}

// TranslateVariables projects bindings from a template atom into a target
// atom. For every Variable position in target, source is scanned for a
// member equal to that Variable; when one is found at position j, the
// template member at j is substituted in. Variables with no counterpart in
// source, and all non-Variable positions, pass through unchanged. The
// result carries template's negation and target's type.
//
// template and source must share the same shape; behavior is unspecified
// otherwise.
func TranslateVariables(template, source, target *Atom) *Atom {
	members := make([]Predicate, len(target.members))
	for i, m := range target.members {
		members[i] = m
		v, ok := m.(Variable)
		if !ok {
			continue
		}
		for j, s := range source.members {
			if w, ok := s.(Variable); ok && v.Equal(w) {
				members[i] = template.members[j]
				break
			}
		}
	}
	result := newAtom(template.negative, target.kind, members)
	result.slotNames = target.slotNames
	result.hasSlot = target.hasSlot
	return result
}
