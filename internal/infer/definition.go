package infer

import (
	"glint/internal/diag"
	"glint/internal/hir"
	"glint/internal/namespace"
	"glint/internal/scope"
	"glint/internal/types"
)

// definitionTypeID returns info's MIR TypeID, resolving it if this is the
// first reference: struct/enum fields are resolved eagerly, re-entering a
// definition already in progress is a cyclic-definition error (so a
// struct/enum whose fields refer back to itself, directly or through
// another type, is reported as cyclic), and an alias resolves to its
// aliased type directly
// (aliases are transparent, never their own Structure/Enumeration kind).
func (c *Context) definitionTypeID(info *namespace.DefinitionInfo) types.TypeID {
	switch info.State {
	case namespace.StateResolved:
		if id, ok := c.signatureTypes[info]; ok {
			return id
		}
		return types.NoTypeID
	case namespace.StateInProgress:
		c.Sink.Error(diag.CodeCyclicDefinition, info.HIR.Span,
			"'"+info.HIR.Name.Identifier.View()+"' is defined in terms of itself")
		return types.NoTypeID
	}

	info.State = namespace.StateInProgress
	var id types.TypeID
	switch data := info.HIR.Data.(type) {
	case hir.StructData:
		id = c.resolveStruct(info, data)
	case hir.EnumData:
		id = c.resolveEnum(info, data)
	case hir.AliasData:
		id = c.resolveAlias(info, data)
	default:
		c.Sink.Internal(info.HIR.Span, "infer: definitionTypeID called on a non-type definition")
	}
	info.State = namespace.StateResolved
	c.signatureTypes[info] = id
	return id
}

// ResolveDefinitionType forces eager resolution of a struct/enum/alias
// definition's own type, same as a reference to it from elsewhere would.
// internal/pipeline calls this once per such definition in declaration
// order so an otherwise-unreferenced cyclic definition is still caught,
// rather than only surfacing when something happens to need it.
func (c *Context) ResolveDefinitionType(info *namespace.DefinitionInfo) types.TypeID {
	return c.definitionTypeID(info)
}

// withTypeParams mints one fresh general variable per template
// parameter, makes each visible under its own identifier in
// typeParamEnv for the duration of body, then removes it again. Spec §5
// runs one pipeline (and so one definition) at a time, so a flat map
// doesn't need a save/restore stack — a definition's own template
// parameters are never themselves in scope while resolving another
// definition's signature.
func (c *Context) withTypeParams(params []hir.TemplateParam, body func() types.TypeID) ([]types.TypeID, types.TypeID) {
	ids := make([]types.TypeID, len(params))
	for i, p := range params {
		ids[i] = c.Interner.FreshGeneralVar()
		c.typeParamEnv[p.Name.Identifier] = ids[i]
	}
	result := body()
	for _, p := range params {
		delete(c.typeParamEnv, p.Name.Identifier)
	}
	return ids, result
}

func (c *Context) resolveStruct(info *namespace.DefinitionInfo, data hir.StructData) types.TypeID {
	base := c.Interner.RegisterStructure(info.HIR.Name.Identifier, info.HIR.Span)

	typeParamIDs, _ := c.withTypeParams(data.TemplateParams, func() types.TypeID {
		fields := make([]types.StructureField, len(data.Fields))
		for i, f := range data.Fields {
			fields[i] = types.StructureField{
				Name: f.Name.Identifier,
				Type: c.ResolveType(info.Assoc, f.Type),
			}
		}
		c.Interner.SetStructureFields(base, fields)
		return base
	})

	if len(typeParamIDs) == 0 {
		return base
	}
	return c.Interner.RegisterParameterized(typeParamIDs, base)
}

func (c *Context) resolveEnum(info *namespace.DefinitionInfo, data hir.EnumData) types.TypeID {
	base := c.Interner.RegisterEnumeration(info.HIR.Name.Identifier, info.HIR.Span)

	typeParamIDs, _ := c.withTypeParams(data.TemplateParams, func() types.TypeID {
		variants := make([]types.EnumerationVariant, len(data.Variants))
		for i, v := range data.Variants {
			payload := types.NoTypeID
			if v.PayloadType != nil {
				payload = c.ResolveType(info.Assoc, *v.PayloadType)
			}
			variants[i] = types.EnumerationVariant{Name: v.Name.Identifier, PayloadType: payload}
		}
		c.Interner.SetEnumerationVariants(base, variants)
		return base
	})

	if len(typeParamIDs) == 0 {
		return base
	}
	return c.Interner.RegisterParameterized(typeParamIDs, base)
}

func (c *Context) resolveAlias(info *namespace.DefinitionInfo, data hir.AliasData) types.TypeID {
	var aliased types.TypeID
	typeParamIDs, _ := c.withTypeParams(data.TemplateParams, func() types.TypeID {
		aliased = c.ResolveType(info.Assoc, data.Aliased)
		return aliased
	})
	if len(typeParamIDs) == 0 {
		return aliased
	}
	return c.Interner.RegisterParameterized(typeParamIDs, aliased)
}

// FunctionType resolves (and caches) a function definition's own type:
// a plain Function(params, result), or that wrapped in Parameterized
// when the function carries explicit or implicit template parameters.
// Signatures resolve eagerly and independently of body resolution so
// mutually recursive functions can reference each other (spec §4.6).
func (c *Context) FunctionType(ns *namespace.Namespace, info *namespace.DefinitionInfo) types.TypeID {
	if id, ok := c.signatureTypes[info]; ok {
		return id
	}
	data := info.HIR.Data.(hir.FunctionData)

	allParams := make([]hir.TemplateParam, 0, len(data.ExplicitTemplateParams)+len(data.ImplicitTemplateParams))
	allParams = append(allParams, data.ExplicitTemplateParams...)
	for _, ip := range data.ImplicitTemplateParams {
		allParams = append(allParams, hir.TemplateParam{Name: ip.Name})
	}

	typeParamIDs, fnType := c.withTypeParams(allParams, func() types.TypeID {
		params := make([]types.TypeID, len(data.Params))
		for i, p := range data.Params {
			params[i] = c.ResolveType(ns, p.TypeAnnotation)
		}
		result := c.Interner.Builtins().Unit
		if data.ReturnType != nil {
			result = c.ResolveType(ns, *data.ReturnType)
		}
		return c.Interner.RegisterFunction(params, result)
	})

	out := fnType
	if len(typeParamIDs) > 0 {
		out = c.Interner.RegisterParameterized(typeParamIDs, fnType)
	}
	c.signatureTypes[info] = out
	return out
}

// ResolveBody infers info's body against its own (unspecialized)
// parameter and return types — never against a caller's instantiation,
// so a generic function's body is checked exactly once regardless of
// how many call sites specialize it, matching the "signature resolved
// eagerly, body resolved lazily, once" split of spec §4.6.
func (c *Context) ResolveBody(ns *namespace.Namespace, info *namespace.DefinitionInfo) {
	data := info.HIR.Data.(hir.FunctionData)
	if !data.Body.Valid() {
		return
	}

	allParams := make([]hir.TemplateParam, 0, len(data.ExplicitTemplateParams)+len(data.ImplicitTemplateParams))
	allParams = append(allParams, data.ExplicitTemplateParams...)
	for _, ip := range data.ImplicitTemplateParams {
		allParams = append(allParams, hir.TemplateParam{Name: ip.Name})
	}

	_, _ = c.withTypeParams(allParams, func() types.TypeID {
		root := scope.NewRoot(c.Sink, c.Interner)
		paramTypes := make([]types.TypeID, len(data.Params))
		for i, p := range data.Params {
			paramTypes[i] = c.ResolveType(ns, p.TypeAnnotation)
			root.Bind(p.Name, paramTypes[i], false)
		}
		result := c.Interner.Builtins().Unit
		if data.ReturnType != nil {
			result = c.ResolveType(ns, *data.ReturnType)
		}

		savedReturn := c.currentReturnType
		c.currentReturnType = result
		bodyType := c.inferExprIn(ns, root, data.Body)
		c.Set.Equate(info.HIR.Span, result, bodyType)
		c.currentReturnType = savedReturn
		root.Close()
		return result
	})
}
