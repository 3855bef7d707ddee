package infer

import (
	"glint/internal/arena"
	"glint/internal/hir"
	"glint/internal/mono"
	"glint/internal/namespace"
	"glint/internal/types"
)

// ResolveType lowers a HIR type expression to a types.TypeID, in the
// namespace ns (the definition's own scope, for relative qualified-name
// resolution). Grounded on type_resolution.cpp's Type_resolution_visitor:
// one case per ast::type variant, recursing into subterms and building
// the corresponding ir::Type.
func (c *Context) ResolveType(ns *namespace.Namespace, t hir.TypeExpr) types.TypeID {
	switch t.Kind {
	case hir.TypeNamed:
		return c.resolveNamedType(ns, t)
	case hir.TypeTuple:
		data := t.Data.(hir.TupleTypeData)
		elems := make([]types.TypeID, len(data.Elements))
		for i, e := range data.Elements {
			elems[i] = c.ResolveType(ns, e)
		}
		return c.Interner.RegisterTuple(elems)
	case hir.TypeArray:
		data := t.Data.(hir.ArrayTypeData)
		elem := c.ResolveType(ns, *data.Element)
		length := c.evalArrayLength(ns, data.Length)
		return c.Interner.RegisterArray(elem, length)
	case hir.TypeSlice:
		data := t.Data.(hir.SliceTypeData)
		return c.Interner.RegisterSlice(c.ResolveType(ns, *data.Element))
	case hir.TypeFunction:
		data := t.Data.(hir.FunctionTypeData)
		params := make([]types.TypeID, len(data.Params))
		for i, p := range data.Params {
			params[i] = c.ResolveType(ns, p)
		}
		result := c.Interner.Builtins().Unit
		if data.Return != nil {
			result = c.ResolveType(ns, *data.Return)
		}
		return c.Interner.RegisterFunction(params, result)
	case hir.TypeReference:
		data := t.Data.(hir.ReferenceTypeData)
		return c.Interner.RegisterReference(c.ResolveType(ns, *data.Referee), data.Mutable)
	case hir.TypeApplied:
		return c.resolveAppliedType(ns, t)
	case hir.TypeHole:
		return c.Interner.FreshGeneralVar()
	default:
		c.Sink.Internal(t.Span, "infer: unhandled type expression kind")
		return types.NoTypeID
	}
}

func (c *Context) resolveNamedType(ns *namespace.Namespace, t hir.TypeExpr) types.TypeID {
	data := t.Data.(hir.NamedTypeData)
	name := data.Name

	// An unqualified name matching the definition's own in-scope template
	// parameter refers to that parameter's type variable, never a
	// namespace lookup (type_resolution.cpp has no equivalent case
	// because its source language has no first-class generic parameters
	// in this position; this mirrors how a Go generic function's type
	// parameter shadows any outer name).
	if len(name.MiddleQualifiers) == 0 && name.Root != hir.RootGlobal {
		if tv, ok := c.typeParamEnv[name.PrimaryName.Identifier]; ok {
			return tv
		}
	}

	info := c.Resolver.FindType(ns, name)
	if info == nil {
		return types.NoTypeID
	}
	return c.definitionTypeID(info)
}

func (c *Context) resolveAppliedType(ns *namespace.Namespace, t hir.TypeExpr) types.TypeID {
	data := t.Data.(hir.AppliedTypeData)
	headName := hir.QualifiedName{Root: hir.RootCurrent, PrimaryName: data.Head}
	info := c.Resolver.FindType(ns, headName)
	if info == nil {
		return types.NoTypeID
	}
	headType := c.definitionTypeID(info)

	args := make([]types.TypeID, len(data.Args))
	for i, a := range data.Args {
		args[i] = c.ResolveType(ns, a)
	}
	return mono.Specialize(c.Interner, c.Sink, t.Span, headType, args)
}

// evalArrayLength resolves an array type's length expression. Only a
// literal integer is supported (matching type_resolution.cpp's own
// Array case: "do meta evaluation later, the length shouldn't be
// restricted to a literal" — a deliberately deferred restriction this
// design keeps too); anything else is an unresolved dependent length,
// per ArrayLength's own doc comment, left for the reentrant type_of path
// a future const-generic pass would add.
func (c *Context) evalArrayLength(ns *namespace.Namespace, length arena.Handle[hir.Expr]) types.ArrayLength {
	_ = ns
	e := c.expr(length)
	if e.Kind == hir.ExprLiteral {
		lit := e.Data.(hir.LiteralData)
		if lit.Kind == hir.LiteralInt && lit.Int >= 0 {
			return types.ArrayLength{Known: true, Value: uint64(lit.Int)}
		}
	}
	return types.ArrayLength{Known: false}
}
