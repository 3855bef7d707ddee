// Package infer ties the type resolver (spec §4.7), constraint
// collector (§4.8), and unifier (§4.9) together into one recursive walk
// over a HIR definition: Context.ResolveType lowers a HIR type
// expression to a concrete types.TypeID, and Context.InferExpr annotates
// a HIR expression (and everything it contains) with a types.TypeID,
// solving each equality the moment it arises.
//
// Grounded on original_source/src/resolution/expression_resolution.cpp
// and type_resolution.cpp: both are single eager recursive visitors that
// resolve-and-check a node's type on the way down, not a collect-all-
// constraints-then-solve two-phase pass. Context.InferExpr follows that
// same shape; internal/constraint.Set's immediate-solve Equate exists
// precisely so this eager style still satisfies the spec's own
// "equality queue" vocabulary (§3, §5).
package infer

import (
	"glint/internal/arena"
	"glint/internal/constraint"
	"glint/internal/diag"
	"glint/internal/hir"
	"glint/internal/ident"
	"glint/internal/namespace"
	"glint/internal/resolve"
	"glint/internal/scope"
	"glint/internal/source"
	"glint/internal/types"
	"glint/internal/unify"
)

// Context holds everything one pipeline run's inference needs: the type
// interner definitions resolve into, the namespace graph names resolve
// against, and the unifier/constraint machinery solving as it goes.
type Context struct {
	Interner *types.Interner
	Global   *namespace.Namespace
	Resolver *resolve.Resolver
	Sink     *diag.Sink
	Solver   *unify.Solver
	Set      *constraint.Set
	Binder   *scope.Binder

	// pool interns conventional, user-declarable identifiers the
	// inferencer itself needs to refer to (e.g. the "Convertible"
	// typeclass a conversion cast checks membership against), so that a
	// user's own declaration of the same name is the very same
	// identifier rather than a look-alike.
	pool *ident.Pool

	exprs    *arena.Arena[hir.Expr]
	patterns *arena.Arena[hir.Pattern]

	// typeParamEnv maps a function's own (explicit or implicit) template
	// parameter identifiers to the fresh TypeID minted for each, while
	// that function's signature or body is being resolved. Spec §5's
	// single-pipeline-object model means only one definition is ever
	// being resolved at a time, so a single flat map (rather than a
	// stack of scopes) is enough; withTypeParams adds a definition's
	// parameters before resolving its signature or body and deletes them
	// afterwards.
	typeParamEnv map[ident.Identifier]types.TypeID

	// signatureTypes caches a function definition's resolved type
	// (plain Function, or Parameterized wrapping one) so re-referencing
	// the same definition from multiple call sites resolves its
	// signature exactly once, matching the "eagerly resolved, once"
	// half of the resolution state machine (spec §4.6).
	signatureTypes map[*namespace.DefinitionInfo]types.TypeID

	// loopDepth tracks nesting inside ExprLoop so Break/Continue outside
	// any loop can be flagged as an internal error — Break/Continue are
	// HIR-only control transfers the surface grammar restricts to loop
	// bodies, so reaching one at depth zero means the surface grammar's
	// own invariant was violated upstream.
	loopDepth int

	// currentReturnType is the enclosing function's declared result type
	// while its body is being walked, so a Return expression's value (or
	// its absence) can be equated against it. types.NoTypeID outside any
	// function body, in which case Return performs no equation.
	currentReturnType types.TypeID
}

// NewContext constructs a Context over mod's arenas, resolving names
// against global and reporting diagnostics to sink. pool is the
// identifier pool names in mod were interned against, needed so the
// inferencer can mint its own conventional identifiers into the same
// namespace a user's declarations use.
func NewContext(mod *hir.Module, global *namespace.Namespace, interner *types.Interner, sink *diag.Sink, pool *ident.Pool) *Context {
	solver := unify.NewSolver(interner, sink)
	return &Context{
		Interner:       interner,
		Global:         global,
		Resolver:       resolve.NewResolver(global, sink),
		Sink:           sink,
		Solver:         solver,
		Set:            constraint.NewSet(solver, sink),
		Binder:         scope.NewBinder(mod.Patterns, interner, sink),
		pool:           pool,
		exprs:          mod.Exprs,
		patterns:       mod.Patterns,
		typeParamEnv:   make(map[ident.Identifier]types.TypeID),
		signatureTypes: make(map[*namespace.DefinitionInfo]types.TypeID),
	}
}

func (c *Context) expr(h arena.Handle[hir.Expr]) *hir.Expr       { return c.exprs.Deref(h) }
func (c *Context) pattern(h arena.Handle[hir.Pattern]) *hir.Pattern { return c.patterns.Deref(h) }

// freshForLiteral mints the fresh variable kind spec §4.8 assigns by
// expression shape: integral for an integer literal, general for
// everything else (floating-point literals get a general variable too —
// this design has no separate "floating variable" kind, unlike the
// reference implementation's three-way split; unification still pins a
// general variable unified against a concrete Float to that Float).
func (c *Context) freshForLiteral(kind hir.LiteralKind) types.TypeID {
	if kind == hir.LiteralInt {
		return c.Interner.FreshIntegralVar()
	}
	return c.Interner.FreshGeneralVar()
}

// DefaultIntegralVars binds every integral variable left unresolved once
// ordinary inference and instance solving are done to the canonical
// signed integer (spec §8: "an integral variable defaults to the
// canonical signed 64-bit integer"). Its width comes from the sink's
// policy (config.Config's default_int_width), falling back to 64 when
// unset. Must run after SolveInstances, since resolving an instance
// constraint can itself pin down integral variables that would otherwise
// be defaulted here.
func (c *Context) DefaultIntegralVars() {
	width := types.Width(c.Sink.Policy().DefaultIntWidth)
	switch width {
	case types.Width8, types.Width16, types.Width32, types.Width64:
	default:
		width = types.Width64
	}
	target := c.Interner.Intern(types.Type{Kind: types.KindInt, Width: width, Signed: true})

	for _, id := range c.Interner.VariableIDs() {
		resolved := c.Solver.Resolve(id)
		t, ok := c.Interner.Lookup(resolved)
		if !ok || t.Kind != types.KindIntegralVar {
			continue
		}
		c.Solver.Unify(source.Zero, resolved, target)
	}
}
