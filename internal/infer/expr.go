package infer

import (
	"glint/internal/arena"
	"glint/internal/diag"
	"glint/internal/hir"
	"glint/internal/ident"
	"glint/internal/mono"
	"glint/internal/namespace"
	"glint/internal/scope"
	"glint/internal/source"
	"glint/internal/types"
)

// InferExpr annotates the expression at h (and every expression and
// pattern it contains) with a types.TypeID, resolving names against ns
// and locals against sc. Grounded on expression_resolution.cpp's
// Expression_resolution_visitor: one case per HIR expression kind,
// recursing and unifying eagerly rather than deferring to a second pass.
func (c *Context) InferExpr(ns *namespace.Namespace, sc *scope.Scope, h arena.Handle[hir.Expr]) types.TypeID {
	return c.inferExprIn(ns, sc, h)
}

func (c *Context) inferExprIn(ns *namespace.Namespace, sc *scope.Scope, h arena.Handle[hir.Expr]) types.TypeID {
	e := c.expr(h)
	t := c.inferExprKind(ns, sc, e)
	e.Type = t
	return t
}

func (c *Context) inferExprKind(ns *namespace.Namespace, sc *scope.Scope, e *hir.Expr) types.TypeID {
	switch e.Kind {
	case hir.ExprLiteral:
		return c.inferLiteral(e.Data.(hir.LiteralData))
	case hir.ExprArrayLit:
		return c.inferArrayLit(ns, sc, e.Data.(hir.ArrayLitData))
	case hir.ExprVarRef:
		return c.inferVarRef(ns, sc, e.Span, e.Data.(hir.VarRefData))
	case hir.ExprTupleLit:
		return c.inferTupleLit(ns, sc, e.Data.(hir.TupleLitData))
	case hir.ExprLoop:
		return c.inferLoop(ns, sc, e.Span, e.Data.(hir.LoopData))
	case hir.ExprBreak:
		return c.inferBreak(ns, sc, e.Span, e.Data.(hir.BreakData))
	case hir.ExprContinue:
		return c.inferContinue(e.Span)
	case hir.ExprBlock:
		return c.inferBlock(ns, sc, e.Data.(hir.BlockData))
	case hir.ExprCall:
		return c.inferCall(ns, sc, e.Data.(hir.CallData))
	case hir.ExprStructLit:
		return c.inferStructLit(ns, sc, e.Span, e.Data.(hir.StructLitData))
	case hir.ExprBinaryOp:
		return c.inferBinaryOp(ns, sc, e.Span, e.Data.(hir.BinaryOpData))
	case hir.ExprFieldAccess:
		return c.inferFieldAccess(ns, sc, e.Span, e.Data.(hir.FieldAccessData))
	case hir.ExprMethodCall:
		return c.inferMethodCall(ns, sc, e.Span, e.Data.(hir.MethodCallData))
	case hir.ExprMatch:
		return c.inferMatch(ns, sc, e.Data.(hir.MatchData))
	case hir.ExprDeref:
		return c.inferDeref(ns, sc, e.Span, e.Data.(hir.DerefData))
	case hir.ExprTemplateApply:
		return c.inferTemplateApply(ns, sc, e.Span, e.Data.(hir.TemplateApplyData))
	case hir.ExprCast:
		return c.inferCast(ns, sc, e.Span, e.Data.(hir.CastData))
	case hir.ExprLet:
		return c.inferLet(ns, sc, e.Data.(hir.LetData))
	case hir.ExprLocalAlias:
		return c.inferLocalAlias(ns, e.Data.(hir.LocalAliasData))
	case hir.ExprReturn:
		return c.inferReturn(ns, sc, e.Span, e.Data.(hir.ReturnData))
	case hir.ExprSizeOf:
		return c.inferSizeOf(ns, e.Data.(hir.SizeOfData))
	case hir.ExprTakeRef:
		return c.inferTakeRef(ns, sc, e.Data.(hir.TakeRefData))
	case hir.ExprPlacementInit:
		return c.inferPlacementInit(ns, sc, e.Span, e.Data.(hir.PlacementInitData))
	case hir.ExprMeta:
		return c.inferExprIn(ns, sc, e.Data.(hir.MetaData).Quoted)
	case hir.ExprHole:
		return c.Interner.FreshGeneralVar()
	default:
		c.Sink.Internal(e.Span, "infer: unhandled expression kind "+e.Kind.String())
		return types.NoTypeID
	}
}

func (c *Context) inferLiteral(data hir.LiteralData) types.TypeID {
	switch data.Kind {
	case hir.LiteralInt:
		return c.freshForLiteral(hir.LiteralInt)
	case hir.LiteralFloat:
		return c.freshForLiteral(hir.LiteralFloat)
	case hir.LiteralChar:
		return c.Interner.Builtins().Char
	case hir.LiteralBool:
		return c.Interner.Builtins().Bool
	case hir.LiteralString:
		return c.Interner.Builtins().String
	default:
		return types.NoTypeID
	}
}

func (c *Context) inferArrayLit(ns *namespace.Namespace, sc *scope.Scope, data hir.ArrayLitData) types.TypeID {
	elemVar := c.Interner.FreshGeneralVar()
	for _, h := range data.Elements {
		elemType := c.inferExprIn(ns, sc, h)
		c.Set.Equate(c.expr(h).Span, elemVar, elemType)
	}
	length := types.ArrayLength{Known: true, Value: uint64(len(data.Elements))}
	return c.Interner.RegisterArray(c.Solver.Resolve(elemVar), length)
}

func (c *Context) inferVarRef(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.VarRefData) types.TypeID {
	name := data.Name
	if name.Root != hir.RootGlobal && len(name.MiddleQualifiers) == 0 {
		if b := sc.Find(name.PrimaryName.Identifier); b != nil {
			return b.Type
		}
	}
	info := c.Resolver.FindFunction(ns, name)
	if info == nil {
		return types.NoTypeID
	}
	sig := c.FunctionType(ns, info)
	return mono.Specialize(c.Interner, c.Sink, span, sig, nil)
}

func (c *Context) inferTupleLit(ns *namespace.Namespace, sc *scope.Scope, data hir.TupleLitData) types.TypeID {
	elems := make([]types.TypeID, len(data.Elements))
	for i, h := range data.Elements {
		elems[i] = c.inferExprIn(ns, sc, h)
	}
	return c.Interner.RegisterTuple(elems)
}

func (c *Context) inferLoop(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.LoopData) types.TypeID {
	c.loopDepth++
	bodyType := c.inferExprIn(ns, sc, data.Body)
	c.loopDepth--
	unit := c.Interner.Builtins().Unit
	if c.Solver.Resolve(bodyType) != unit {
		c.Sink.Error(diag.CodeNonUnitLoopBody, span, "a loop body must have unit type")
	}
	return unit
}

func (c *Context) inferBreak(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.BreakData) types.TypeID {
	if c.loopDepth == 0 {
		c.Sink.Internal(span, "infer: break outside any loop")
	}
	if data.HasValue {
		c.inferExprIn(ns, sc, data.Value)
	}
	return c.Interner.Builtins().Unit
}

func (c *Context) inferContinue(span source.Span) types.TypeID {
	if c.loopDepth == 0 {
		c.Sink.Internal(span, "infer: continue outside any loop")
	}
	return c.Interner.Builtins().Unit
}

func (c *Context) inferBlock(ns *namespace.Namespace, sc *scope.Scope, data hir.BlockData) types.TypeID {
	child := sc.Child()
	result := c.Interner.Builtins().Unit
	for _, h := range data.Exprs {
		result = c.inferExprIn(ns, child, h)
	}
	child.Close()
	return result
}

func (c *Context) inferCall(ns *namespace.Namespace, sc *scope.Scope, data hir.CallData) types.TypeID {
	calleeType := c.inferExprIn(ns, sc, data.Callee)
	argTypes := make([]types.TypeID, len(data.Args))
	for i, h := range data.Args {
		argTypes[i] = c.inferExprIn(ns, sc, h)
	}
	result := c.Interner.FreshGeneralVar()
	fnType := c.Interner.RegisterFunction(argTypes, result)
	c.Set.Equate(c.expr(data.Callee).Span, calleeType, fnType)
	return c.Solver.Resolve(result)
}

func (c *Context) inferStructLit(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.StructLitData) types.TypeID {
	info := c.Resolver.FindType(ns, data.TypeName)
	if info == nil {
		return types.NoTypeID
	}
	structType := c.Solver.Resolve(mono.Specialize(c.Interner, c.Sink, span, c.definitionTypeID(info), nil))
	sinfo, ok := c.Interner.StructureInfo(structType)
	if !ok {
		c.Sink.Error(diag.CodeCannotUnify, span, "struct-literal syntax used on a non-structure type")
		return structType
	}
	for _, field := range data.Fields {
		valType := c.inferExprIn(ns, sc, field.Value)
		var declared types.TypeID
		found := false
		for _, f := range sinfo.Fields {
			if f.Name == field.Name.Identifier {
				declared, found = f.Type, true
				break
			}
		}
		if !found {
			c.Sink.Error(diag.CodeNoSuchName, field.Name.Span,
				"'"+field.Name.Identifier.View()+"' is not a field of this structure")
			continue
		}
		c.Set.Equate(field.Name.Span, declared, valType)
	}
	return structType
}

func isComparisonOp(op hir.BinaryOp) bool {
	switch op {
	case hir.BinEq, hir.BinNotEq, hir.BinLess, hir.BinLessEq, hir.BinGreater, hir.BinGreaterEq:
		return true
	default:
		return false
	}
}

func isLogicalOp(op hir.BinaryOp) bool {
	return op == hir.BinLogicalAnd || op == hir.BinLogicalOr
}

func (c *Context) inferBinaryOp(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.BinaryOpData) types.TypeID {
	left := c.inferExprIn(ns, sc, data.Left)
	right := c.inferExprIn(ns, sc, data.Right)
	boolType := c.Interner.Builtins().Bool

	switch {
	case isLogicalOp(data.Op):
		c.Set.Equate(span, left, boolType)
		c.Set.Equate(span, right, boolType)
		return boolType
	case isComparisonOp(data.Op):
		c.Set.Equate(span, left, right)
		return boolType
	default:
		c.Set.Equate(span, left, right)
		return c.Solver.Resolve(left)
	}
}

func (c *Context) inferFieldAccess(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.FieldAccessData) types.TypeID {
	baseType := c.Solver.Resolve(c.inferExprIn(ns, sc, data.Base))
	baseType = c.derefIfReference(baseType)

	sinfo, ok := c.Interner.StructureInfo(baseType)
	if !ok {
		t, lookedUp := c.Interner.Lookup(baseType)
		if lookedUp && t.Kind.IsVariable() {
			// The base's type is still a unification variable (e.g. a
			// generic function body accessing a field on a type-parameter-
			// typed value): spec §4.8 defers this rather than rejecting it
			// outright, since the eventual instantiation may well be a
			// structure with this field. There is no concrete field type
			// to return yet, so a fresh variable stands in for it.
			return c.Interner.FreshGeneralVar()
		}
		c.Sink.Error(diag.CodeNoSuchName, span, "field access on a type with no fields")
		return types.NoTypeID
	}
	for _, f := range sinfo.Fields {
		if f.Name == data.Field.Identifier {
			return f.Type
		}
	}
	c.Sink.Error(diag.CodeNoSuchName, data.Field.Span,
		"'"+data.Field.Identifier.View()+"' is not a field of this structure")
	return types.NoTypeID
}

func (c *Context) derefIfReference(id types.TypeID) types.TypeID {
	t, ok := c.Interner.Lookup(id)
	if ok && t.Kind == types.KindReference {
		return c.Solver.Resolve(t.Elem)
	}
	return id
}

// inferMethodCall resolves the inherent member function named by
// data.Method in the base expression's type's associated namespace
// (spec §4.5's "associated namespace" of a struct/enum), passing the
// base expression as an implicit first argument — the spec's grammar
// has no distinguished receiver-parameter convention of its own, so this
// is the simplest rule matching ordinary function application.
func (c *Context) inferMethodCall(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.MethodCallData) types.TypeID {
	baseType := c.Solver.Resolve(c.inferExprIn(ns, sc, data.Base))
	unrefed := c.derefIfReference(baseType)

	var owner ident.Identifier
	switch t, ok := c.Interner.Lookup(unrefed); {
	case ok && t.Kind == types.KindStructure:
		info, _ := c.Interner.StructureInfo(unrefed)
		owner = info.Name
	case ok && t.Kind == types.KindEnumeration:
		info, _ := c.Interner.EnumerationInfo(unrefed)
		owner = info.Name
	default:
		c.Sink.Error(diag.CodeNoSuchName, span, "method call on a type with no associated namespace")
		return types.NoTypeID
	}

	qualifier := hir.MiddleQualifier{Name: hir.Name{Identifier: owner, IsUpper: true}}
	qname := hir.QualifiedName{
		Root:             hir.RootGlobal,
		MiddleQualifiers: []hir.MiddleQualifier{qualifier},
		PrimaryName:      data.Method,
	}
	info := c.Resolver.FindFunction(c.Global, qname)
	if info == nil {
		return types.NoTypeID
	}
	sig := c.FunctionType(c.Global, info)

	var explicitArgs []types.TypeID
	if len(data.TemplateArgs) > 0 {
		explicitArgs = make([]types.TypeID, len(data.TemplateArgs))
		for i, a := range data.TemplateArgs {
			explicitArgs[i] = c.ResolveType(ns, a)
		}
	}
	specialized := mono.Specialize(c.Interner, c.Sink, span, sig, explicitArgs)

	argTypes := make([]types.TypeID, 0, len(data.Args)+1)
	argTypes = append(argTypes, baseType)
	for _, h := range data.Args {
		argTypes = append(argTypes, c.inferExprIn(ns, sc, h))
	}
	result := c.Interner.FreshGeneralVar()
	c.Set.Equate(span, specialized, c.Interner.RegisterFunction(argTypes, result))
	return c.Solver.Resolve(result)
}

func (c *Context) inferMatch(ns *namespace.Namespace, sc *scope.Scope, data hir.MatchData) types.TypeID {
	scrutType := c.Solver.Resolve(c.inferExprIn(ns, sc, data.Scrutinee))
	result := c.Interner.FreshGeneralVar()
	for _, arm := range data.Arms {
		armScope := sc.Child()
		p := c.pattern(arm.Pattern)
		p.Type = scrutType
		if p.Kind == hir.PatternLiteral {
			// The desugarer's synthesized true/false arms (if/while's
			// condition) are the only literal patterns this design has;
			// Binder itself binds nothing for them, so without this the
			// scrutinee's type is never checked against Bool and a
			// non-boolean condition (spec §7 taxon 4) would silently pass.
			c.Set.Equate(p.Span, scrutType, c.Interner.Builtins().Bool)
		}
		c.Binder.Bind(armScope, *p, scrutType)
		armType := c.inferExprIn(ns, armScope, arm.Body)
		c.Set.Equate(c.expr(arm.Body).Span, result, armType)
		armScope.Close()
	}
	return c.Solver.Resolve(result)
}

func (c *Context) inferDeref(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.DerefData) types.TypeID {
	targetType := c.Solver.Resolve(c.inferExprIn(ns, sc, data.Target))
	t, ok := c.Interner.Lookup(targetType)
	if !ok || t.Kind != types.KindReference {
		c.Sink.Error(diag.CodeCannotUnify, span, "cannot dereference a non-reference type")
		return types.NoTypeID
	}
	return c.Solver.Resolve(t.Elem)
}

// inferTemplateApply handles explicit template arguments applied to a
// direct function reference (`name<T, U>`). Any other base expression
// (one already concrete, e.g. the result of a call) has no use for
// explicit type arguments in this design and is inferred as if the
// wrapper weren't there — there is no syntax in this spec for applying
// template arguments to something other than a named reference.
func (c *Context) inferTemplateApply(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.TemplateApplyData) types.TypeID {
	base := c.expr(data.Base)
	if base.Kind == hir.ExprVarRef {
		vr := base.Data.(hir.VarRefData)
		if info := c.Resolver.FindFunction(ns, vr.Name); info != nil {
			sig := c.FunctionType(ns, info)
			args := make([]types.TypeID, len(data.Args))
			for i, a := range data.Args {
				args[i] = c.ResolveType(ns, a)
			}
			specialized := mono.Specialize(c.Interner, c.Sink, span, sig, args)
			base.Type = specialized
			return specialized
		}
	}
	return c.inferExprIn(ns, sc, data.Base)
}

// convertibleClassName is the conventional typeclass name a conversion cast
// checks membership against (spec §4.8's "convertible-to" instance
// obligation). Interned with Intern, not InternNew, so a user's own
// `typeclass Convertible { ... }` declaration and every cast's obligation
// refer to the very same identifier.
const convertibleClassName = "Convertible"

func (c *Context) inferCast(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.CastData) types.TypeID {
	srcType := c.Solver.Resolve(c.inferExprIn(ns, sc, data.Target))
	destType := c.Solver.Resolve(c.ResolveType(ns, data.Type))
	if data.Kind == hir.CastAscription {
		c.Set.Equate(span, srcType, destType)
		return destType
	}
	// A conversion cast (`as`) between two primitive types stays
	// unconditionally permissive, matching this design's "no separate
	// numeric-conversion grammar" choice. Once either side names a
	// nominal (structure/enumeration) type, the cast is only valid if the
	// source type implements Convertible — spec §4.8's deferred instance
	// constraint, resolved by constraint.Set.SolveInstances once the
	// enclosing definition's equalities are exhausted.
	if c.isNominal(srcType) || c.isNominal(destType) {
		c.Set.RequireInstance(span, srcType, []ident.Identifier{c.pool.Intern(convertibleClassName)})
	}
	return destType
}

func (c *Context) isNominal(id types.TypeID) bool {
	t, ok := c.Interner.Lookup(id)
	return ok && (t.Kind == types.KindStructure || t.Kind == types.KindEnumeration)
}

func (c *Context) inferLet(ns *namespace.Namespace, sc *scope.Scope, data hir.LetData) types.TypeID {
	initType := c.Solver.Resolve(c.inferExprIn(ns, sc, data.Initializer))
	if data.TypeAnnotation != nil {
		annType := c.ResolveType(ns, *data.TypeAnnotation)
		c.Set.Equate(c.expr(data.Initializer).Span, annType, initType)
	}
	p := c.pattern(data.Pattern)
	p.Type = initType
	c.Binder.Bind(sc, *p, initType)
	return c.Interner.Builtins().Unit
}

// inferLocalAlias resolves a local `type X = ...;` and makes X visible
// to subsequent NamedTypeData lookups for the rest of the enclosing
// definition (reusing typeParamEnv, since both are simply "an identifier
// that resolves straight to a TypeID" within the current definition;
// unlike a template parameter, a local alias is never removed once
// bound — this design doesn't track block-exit to unbind it).
func (c *Context) inferLocalAlias(ns *namespace.Namespace, data hir.LocalAliasData) types.TypeID {
	c.typeParamEnv[data.Name.Identifier] = c.ResolveType(ns, data.Aliased)
	return c.Interner.Builtins().Unit
}

func (c *Context) inferReturn(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.ReturnData) types.TypeID {
	if data.HasValue {
		valType := c.inferExprIn(ns, sc, data.Value)
		if c.currentReturnType != types.NoTypeID {
			c.Set.Equate(span, c.currentReturnType, valType)
		}
	} else if c.currentReturnType != types.NoTypeID {
		c.Set.Equate(span, c.currentReturnType, c.Interner.Builtins().Unit)
	}
	return c.Interner.Builtins().Unit
}

func (c *Context) inferSizeOf(ns *namespace.Namespace, data hir.SizeOfData) types.TypeID {
	c.ResolveType(ns, data.Type)
	return c.Interner.Builtins().Int
}

func (c *Context) inferTakeRef(ns *namespace.Namespace, sc *scope.Scope, data hir.TakeRefData) types.TypeID {
	targetType := c.inferExprIn(ns, sc, data.Target)
	return c.Interner.RegisterReference(targetType, data.Mutable)
}

func (c *Context) inferPlacementInit(ns *namespace.Namespace, sc *scope.Scope, span source.Span, data hir.PlacementInitData) types.TypeID {
	locType := c.inferExprIn(ns, sc, data.Location)
	destType := c.ResolveType(ns, data.Type)
	c.Set.Equate(span, locType, c.Interner.RegisterReference(destType, true))
	for _, h := range data.Args {
		c.inferExprIn(ns, sc, h)
	}
	return c.Interner.Builtins().Unit
}
