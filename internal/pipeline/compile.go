// Package pipeline drives the full semantic core over one module: Surface
// AST -> Desugarer -> HIR -> Resolver -> annotated HIR -> Inferencer -> MIR
// (spec §1's pipeline, §2's pipeline-with-shared-context composition).
package pipeline

import (
	"fmt"

	"glint/internal/ast"
	"glint/internal/constraint"
	"glint/internal/diag"
	"glint/internal/hir"
	"glint/internal/ident"
	"glint/internal/infer"
	"glint/internal/mir"
	"glint/internal/namespace"
	"glint/internal/source"
	"glint/internal/types"
)

// Compile runs desugaring, namespace construction, name resolution, and
// type inference over mod in that order, reporting diagnostics to sink
// and returning the fully-typed MIR module spec §6 names as this
// system's external output. A nil result with a non-nil error means
// compilation did not produce a usable module; sink still holds every
// diagnostic collected up to the point of failure.
//
// Grounded on original_source/src/resolution/resolution.cpp's top-level
// resolve() driver, which runs the same stages over the same kind of
// shared, single-pipeline state spec §5 describes.
func Compile(mod *ast.Module, sink *diag.Sink) (*mir.Module, error) {
	return CompileWithEvents(mod, sink, nil)
}

// CompileWithEvents runs the same stages as Compile, additionally sending
// a Working Event to events at the start of each stage and a Done or
// Error Event at its end when events is non-nil; it never sends Queued. internal/ui's progress readout is
// the intended consumer; Compile itself passes a nil channel, so ordinary
// callers pay nothing for this.
//
// Category-6 invariant violations (diag.CodeInvariantViolation, raised
// through Sink.Internal) are recorded as an ordinary diagnostic and never
// panic — the stage-boundary sink.HasErrors() checks below are what halt
// the pipeline for those. The recover here exists for the other kind of
// fatal failure spec §9 calls out:
// a stray Go panic, namely the safecast-checked index overflow every
// arena/interner append path (internal/arena, internal/ident,
// internal/types, internal/source) raises if a module pushes past a
// uint32 slot count. That is this pipeline's one true "abort, do not
// continue" condition, so it gets the one recover boundary, converted to
// a diagnostic plus a returned error rather than crashing whatever
// process embeds this package (e.g. cmd/glintc compiling several modules
// concurrently, where one module's overflow must not take the others
// down with it).
func CompileWithEvents(mod *ast.Module, sink *diag.Sink, events chan<- Event) (result *mir.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			sink.Internal(source.Zero, fmt.Sprintf("pipeline: recovered from a fatal error: %v", r))
			result, err = nil, fmt.Errorf("pipeline: fatal error: %v", r)
		}
	}()

	if mod == nil {
		return nil, fmt.Errorf("pipeline: nil module")
	}
	name := mod.Name

	emit(events, name, StageDesugar, StatusWorking)
	idents := ident.NewPool()
	hirMod := hir.NewDesugarer(idents, sink).Desugar(mod)
	if sink.HasErrors() {
		emit(events, name, StageDesugar, StatusError)
		return nil, fmt.Errorf("pipeline: desugaring reported errors")
	}
	emit(events, name, StageDesugar, StatusDone)

	emit(events, name, StageNamespace, StatusWorking)
	root := namespace.New(hirMod.Name, nil)
	namespace.NewBuilder(sink).Build(hirMod, root)
	if sink.HasErrors() {
		emit(events, name, StageNamespace, StatusError)
		return nil, fmt.Errorf("pipeline: namespace construction reported errors")
	}
	emit(events, name, StageNamespace, StatusDone)

	interner := types.NewInterner()
	ctx := infer.NewContext(hirMod, root, interner, sink, idents)

	emit(events, name, StageSignatures, StatusWorking)
	resolveSignatures(ctx, root)
	emit(events, name, StageSignatures, StatusDone)

	emit(events, name, StageBodies, StatusWorking)
	resolveBodies(ctx, root)
	if sink.HasErrors() {
		emit(events, name, StageBodies, StatusError)
		return nil, fmt.Errorf("pipeline: type resolution reported errors")
	}
	ctx.Set.SolveInstances(buildInstancesOf(ctx, root))
	if sink.HasErrors() {
		emit(events, name, StageBodies, StatusError)
		return nil, fmt.Errorf("pipeline: instance resolution reported errors")
	}
	ctx.DefaultIntegralVars()
	emit(events, name, StageBodies, StatusDone)

	emit(events, name, StageLowering, StatusWorking)
	defs := lowerDefinitions(ctx, root)
	emit(events, name, StageLowering, StatusDone)

	return &mir.Module{
		Name:        hirMod.Name,
		Definitions: defs,
		SourceFile:  hirMod.SourceFile,
		Exprs:       hirMod.Exprs,
		Patterns:    hirMod.Patterns,
	}, nil
}

// resolveSignatures forces every definition's own type to resolve,
// before any body is inferred, matching spec §4.6's eager-signature
// rule; this also guarantees an unreferenced cyclic type is still
// reported rather than only surfacing when something happens to need
// it. Declaration order is preserved by walking DeclarationOrder (set
// once per namespace by internal/namespace) rather than ranging over the
// unordered per-kind tables directly.
func resolveSignatures(ctx *infer.Context, ns *namespace.Namespace) {
	for _, info := range ns.DeclarationOrder {
		switch info.HIR.Kind {
		case hir.DefFunction:
			ctx.FunctionType(ns, info)
		case hir.DefStruct, hir.DefEnum, hir.DefAlias:
			ctx.ResolveDefinitionType(info)
		case hir.DefTypeclass:
			resolveTypeclassMethodTypes(ctx, info)
		}
		if info.Assoc != nil {
			resolveSignatures(ctx, info.Assoc)
			for _, sub := range info.Assoc.Children {
				resolveSignatures(ctx, sub)
			}
		}
	}
}

func resolveTypeclassMethodTypes(ctx *infer.Context, info *namespace.DefinitionInfo) {
	data := info.HIR.Data.(hir.TypeclassData)
	for _, m := range data.Methods {
		for _, p := range m.Params {
			ctx.ResolveType(info.Assoc, p.TypeAnnotation)
		}
		if m.ReturnType != nil {
			ctx.ResolveType(info.Assoc, *m.ReturnType)
		}
	}
}

// resolveBodies infers every function's body against its own already-
// resolved signature (spec §4.6's lazy-body half), in declaration order.
func resolveBodies(ctx *infer.Context, ns *namespace.Namespace) {
	for _, info := range ns.DeclarationOrder {
		if info.HIR.Kind == hir.DefFunction {
			ctx.ResolveBody(ns, info)
		}
		if info.Assoc != nil {
			resolveBodies(ctx, info.Assoc)
			for _, sub := range info.Assoc.Children {
				resolveBodies(ctx, sub)
			}
		}
	}
}

// buildInstancesOf walks ns's declaration graph collecting every struct's
// or enum's recorded instantiations (namespace.Namespace.Instantiations,
// populated by the namespace builder when it sees an `instance Class for
// Target` block) into a constraint.InstancesOf lookup, so the instance
// constraints a definition's body emits (spec §4.8's "convertible-to"
// obligation, among others) can actually be solved against the instances
// the module declares.
func buildInstancesOf(ctx *infer.Context, ns *namespace.Namespace) constraint.InstancesOf {
	table := make(map[ident.Identifier][]constraint.InstanceCandidate)
	collectInstances(ctx, ns, table)
	return func(class ident.Identifier) []constraint.InstanceCandidate {
		return table[class]
	}
}

func collectInstances(ctx *infer.Context, ns *namespace.Namespace, table map[ident.Identifier][]constraint.InstanceCandidate) {
	for _, info := range ns.DeclarationOrder {
		if info.Assoc == nil {
			continue
		}
		if info.HIR.Kind == hir.DefStruct || info.HIR.Kind == hir.DefEnum {
			target := ctx.ResolveDefinitionType(info)
			for class := range info.Assoc.Instantiations {
				table[class] = append(table[class], constraint.InstanceCandidate{Target: target})
			}
		}
		collectInstances(ctx, info.Assoc, table)
	}
}

// lowerDefinitions walks ns's declarations (and, recursively, every
// struct/enum/typeclass's associated namespace) producing one
// mir.Definition per declaration in the same order they were declared.
// An `impl`/instance block's member functions were already flattened
// into their target's associated namespace by internal/namespace, so
// each surfaces here as an ordinary DefFunction definition alongside the
// struct's own declared members — there is no separate block-level
// mir.Definition to build.
func lowerDefinitions(ctx *infer.Context, ns *namespace.Namespace) []mir.Definition {
	var out []mir.Definition
	for _, info := range ns.DeclarationOrder {
		if def, ok := lowerOne(ctx, ns, info); ok {
			out = append(out, def)
		}
		if info.Assoc != nil {
			out = append(out, lowerDefinitions(ctx, info.Assoc)...)
			for _, sub := range info.Assoc.Children {
				out = append(out, lowerDefinitions(ctx, sub)...)
			}
		}
	}
	return out
}

func lowerOne(ctx *infer.Context, ns *namespace.Namespace, info *namespace.DefinitionInfo) (mir.Definition, bool) {
	switch data := info.HIR.Data.(type) {
	case hir.FunctionData:
		sig := ctx.FunctionType(ns, info)
		return mir.Definition{
			Kind: mir.DefFunction,
			Name: info.HIR.Name,
			Span: info.HIR.Span,
			Type: sig,
			Data: lowerFunctionData(ctx, data, sig),
		}, true
	case hir.StructData:
		typeID := ctx.ResolveDefinitionType(info)
		sinfo, _ := ctx.Interner.StructureInfo(underlyingBody(ctx, typeID))
		fields := make([]mir.StructField, 0, len(data.Fields))
		for i, f := range data.Fields {
			fieldType := types.NoTypeID
			if sinfo != nil && i < len(sinfo.Fields) {
				fieldType = sinfo.Fields[i].Type
			}
			fields = append(fields, mir.StructField{Name: f.Name, Type: fieldType})
		}
		return mir.Definition{
			Kind: mir.DefStruct,
			Name: info.HIR.Name,
			Span: info.HIR.Span,
			Type: typeID,
			Data: mir.StructData{Fields: fields},
		}, true
	case hir.EnumData:
		typeID := ctx.ResolveDefinitionType(info)
		einfo, _ := ctx.Interner.EnumerationInfo(underlyingBody(ctx, typeID))
		variants := make([]mir.EnumVariant, 0, len(data.Variants))
		for i, v := range data.Variants {
			payload := types.NoTypeID
			if einfo != nil && i < len(einfo.Variants) {
				payload = einfo.Variants[i].PayloadType
			}
			variants = append(variants, mir.EnumVariant{Name: v.Name, PayloadType: payload})
		}
		return mir.Definition{
			Kind: mir.DefEnum,
			Name: info.HIR.Name,
			Span: info.HIR.Span,
			Type: typeID,
			Data: mir.EnumData{Variants: variants},
		}, true
	case hir.AliasData:
		return mir.Definition{
			Kind: mir.DefAlias,
			Name: info.HIR.Name,
			Span: info.HIR.Span,
			Type: ctx.ResolveDefinitionType(info),
			Data: mir.AliasData{Aliased: ctx.ResolveDefinitionType(info)},
		}, true
	case hir.TypeclassData:
		methods := make([]mir.TypeclassMethod, 0, len(data.Methods))
		for _, m := range data.Methods {
			methods = append(methods, mir.TypeclassMethod{
				Name:       m.Name,
				Params:     lowerParams(ctx, info.Assoc, m.Params),
				ReturnType: lowerReturnType(ctx, info.Assoc, m.ReturnType),
			})
		}
		return mir.Definition{
			Kind: mir.DefTypeclass,
			Name: info.HIR.Name,
			Span: info.HIR.Span,
			Type: types.NoTypeID,
			Data: mir.TypeclassData{Methods: methods},
		}, true
	default:
		return mir.Definition{}, false
	}
}

// lowerFunctionData reads a function's parameter and return types back
// out of its already-resolved signature type (unwrapping Parameterized
// if generic), rather than re-resolving the HIR type annotations a
// second time — so a call site's and a definition's own view of the
// signature always agree on the exact TypeID, fresh variables included.
func lowerFunctionData(ctx *infer.Context, data hir.FunctionData, sig types.TypeID) mir.FunctionData {
	body := sig
	if t, ok := ctx.Interner.Lookup(sig); ok && t.Kind == types.KindParameterized {
		if pinfo, ok := ctx.Interner.ParameterizedInfo(sig); ok {
			body = pinfo.Body
		}
	}
	fninfo, ok := ctx.Interner.FunctionInfo(body)
	if !ok {
		return mir.FunctionData{Body: data.Body}
	}
	params := make([]mir.Param, len(data.Params))
	for i, p := range data.Params {
		paramType := types.NoTypeID
		if i < len(fninfo.Params) {
			paramType = fninfo.Params[i]
		}
		params[i] = mir.Param{Name: p.Name, Type: paramType}
	}
	return mir.FunctionData{Params: params, ReturnType: fninfo.Result, Body: data.Body}
}

func lowerParams(ctx *infer.Context, ns *namespace.Namespace, params []hir.Param) []mir.Param {
	out := make([]mir.Param, len(params))
	for i, p := range params {
		out[i] = mir.Param{Name: p.Name, Type: ctx.ResolveType(ns, p.TypeAnnotation)}
	}
	return out
}

func lowerReturnType(ctx *infer.Context, ns *namespace.Namespace, t *hir.TypeExpr) types.TypeID {
	if t == nil {
		return ctx.Interner.Builtins().Unit
	}
	return ctx.ResolveType(ns, *t)
}

// underlyingBody unwraps a Parameterized type to its body, so a generic
// struct/enum's field/variant metadata (attached to the unspecialized
// body, never the wrapper) can still be read back for lowering.
func underlyingBody(ctx *infer.Context, id types.TypeID) types.TypeID {
	t, ok := ctx.Interner.Lookup(id)
	if !ok || t.Kind != types.KindParameterized {
		return id
	}
	info, ok := ctx.Interner.ParameterizedInfo(id)
	if !ok {
		return id
	}
	return info.Body
}
