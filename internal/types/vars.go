package types

// FreshGeneralVar mints a unification variable that may unify with
// anything (I-2). Each call produces a distinct Tag (I-1), so the
// returned TypeID is never deduplicated against a prior variable even if
// every other field matches.
func (in *Interner) FreshGeneralVar() TypeID {
	in.nextVarTag++
	return in.internRaw(Type{Kind: KindGeneralVar, Tag: in.nextVarTag})
}

// FreshIntegralVar mints a unification variable that may only unify with
// a concrete integer type or another integral/general variable (I-2).
func (in *Interner) FreshIntegralVar() TypeID {
	in.nextVarTag++
	return in.internRaw(Type{Kind: KindIntegralVar, Tag: in.nextVarTag})
}

// IsConcrete reports whether id's head contains no unification variable
// at the top level (its subterms may still contain variables).
func (in *Interner) IsConcrete(id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && !t.Kind.IsVariable()
}

// VariableIDs returns every general or integral unification variable
// minted so far, in ascending TypeID order. Used by the inferencer's
// end-of-module defaulting pass to find every integral variable still
// unbound once ordinary inference is done.
func (in *Interner) VariableIDs() []TypeID {
	var out []TypeID
	for id := TypeID(1); int(id) < len(in.types); id++ {
		if in.types[id].Kind.IsVariable() {
			out = append(out, id)
		}
	}
	return out
}
