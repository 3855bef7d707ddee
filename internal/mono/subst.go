// Package mono implements template-application at use sites: turning a
// parameterized definition's type into the concrete type a particular
// reference sees, per invariant I-3 ("a parameterized type is only ever
// the toplevel type of a definition" — it must be specialized before it
// can appear as a subterm of anything else).
package mono

import "glint/internal/types"

// Subst replaces a fixed set of parameter TypeIDs with replacement
// TypeIDs wherever they occur structurally inside a type, memoizing by
// input TypeID for the lifetime of one substitution.
//
// Grounded on vovakirdan-surge/internal/mono/subst_type.go's Subst.Type,
// simplified for this interner's flatter type-kind set: that package's
// named GenericParam/owner-matching lookup doesn't apply here, since a
// template parameter in this design already *is* the unification
// variable TypeID it was minted as (no separate "generic param" type
// kind), so Args maps straight from parameter TypeID to argument TypeID.
type Subst struct {
	Types *types.Interner
	Args  map[types.TypeID]types.TypeID
	cache map[types.TypeID]types.TypeID
}

// NewSubst builds a substitution mapping params[i] to args[i]. Extra
// params beyond len(args) are left unmapped (Type leaves them as-is).
func NewSubst(interner *types.Interner, params, args []types.TypeID) *Subst {
	m := make(map[types.TypeID]types.TypeID, len(params))
	for i, p := range params {
		if i < len(args) {
			m[p] = args[i]
		}
	}
	return &Subst{Types: interner, Args: m}
}

// Type returns id with every occurrence of a mapped parameter replaced.
func (s *Subst) Type(id types.TypeID) types.TypeID {
	if s == nil || id == types.NoTypeID {
		return id
	}
	if s.cache == nil {
		s.cache = make(map[types.TypeID]types.TypeID, 16)
	} else if cached, ok := s.cache[id]; ok {
		return cached
	}
	out := s.substNoCache(id)
	s.cache[id] = out
	return out
}

func (s *Subst) substNoCache(id types.TypeID) types.TypeID {
	if repl, ok := s.Args[id]; ok {
		return repl
	}
	t, ok := s.Types.Lookup(id)
	if !ok {
		return id
	}
	switch t.Kind {
	case types.KindArray:
		info, ok := s.Types.ArrayInfo(id)
		if !ok {
			return id
		}
		elem := s.Type(info.Elem)
		if elem == info.Elem {
			return id
		}
		return s.Types.RegisterArray(elem, info.Length)

	case types.KindSlice:
		elem := s.Type(t.Elem)
		if elem == t.Elem {
			return id
		}
		return s.Types.RegisterSlice(elem)

	case types.KindReference:
		elem := s.Type(t.Elem)
		if elem == t.Elem {
			return id
		}
		return s.Types.RegisterReference(elem, t.Mutable)

	case types.KindTuple:
		info, ok := s.Types.TupleInfo(id)
		if !ok {
			return id
		}
		elems := make([]types.TypeID, len(info.Elems))
		changed := false
		for i, e := range info.Elems {
			elems[i] = s.Type(e)
			changed = changed || elems[i] != e
		}
		if !changed {
			return id
		}
		return s.Types.RegisterTuple(elems)

	case types.KindFunction:
		info, ok := s.Types.FunctionInfo(id)
		if !ok {
			return id
		}
		params := make([]types.TypeID, len(info.Params))
		changed := false
		for i, p := range info.Params {
			params[i] = s.Type(p)
			changed = changed || params[i] != p
		}
		result := s.Type(info.Result)
		changed = changed || result != info.Result
		if !changed {
			return id
		}
		return s.Types.RegisterFunction(params, result)

	default:
		// Primitives, structures, enumerations, and unification
		// variables not named directly in Args pass through unchanged.
		// A generic struct/enum's own declared field types are never
		// instantiated per use site in this design (see DESIGN.md):
		// field access yields the declared field type, which might
		// itself be a template parameter, and ordinary unification
		// resolves it at the access site rather than eager
		// substitution reaching inside the structure's side-table.
		return id
	}
}
