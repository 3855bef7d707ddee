package mono

import (
	"fmt"

	"glint/internal/diag"
	"glint/internal/source"
	"glint/internal/types"
)

// Specialize turns a (possibly parameterized) definition type into the
// concrete type a particular reference to it sees. If defType isn't
// parameterized, explicitArgs must be empty (template arguments applied
// to a non-generic definition is an arity mismatch) and defType is
// returned unchanged.
//
// When explicitArgs is nil, one fresh variable is minted per parameter
// — matching integral-vs-general kind — so the call's actual argument
// types drive unification (spec §4.7's implicit-instantiation path,
// paired with internal/hir's implicit-template-parameter synthesis at
// the definition site).
//
// Grounded on vovakirdan-surge/internal/mono/instantiation.go's
// signature-instantiation entry point, reduced to this interner's
// single Parameterized/Body shape (no separate monomorphization pass:
// specialization happens once, at the reference, not by cloning a
// definition's whole body per instantiation).
func Specialize(interner *types.Interner, sink *diag.Sink, span source.Span, defType types.TypeID, explicitArgs []types.TypeID) types.TypeID {
	t, ok := interner.Lookup(defType)
	if !ok || t.Kind != types.KindParameterized {
		if len(explicitArgs) > 0 {
			sink.Error(diag.CodeArityMismatch, span, "this definition takes no type arguments")
		}
		return defType
	}

	info, ok := interner.ParameterizedInfo(defType)
	if !ok {
		return defType
	}

	args := explicitArgs
	if args == nil {
		args = make([]types.TypeID, len(info.Params))
		for i, p := range info.Params {
			args[i] = freshLike(interner, p)
		}
	} else if len(args) != len(info.Params) {
		sink.Error(diag.CodeArityMismatch, span,
			fmt.Sprintf("expected %d type argument(s), got %d", len(info.Params), len(args)))
		return defType
	}

	subst := NewSubst(interner, info.Params, args)
	return subst.Type(info.Body)
}

func freshLike(interner *types.Interner, param types.TypeID) types.TypeID {
	if t, ok := interner.Lookup(param); ok && t.Kind == types.KindIntegralVar {
		return interner.FreshIntegralVar()
	}
	return interner.FreshGeneralVar()
}
