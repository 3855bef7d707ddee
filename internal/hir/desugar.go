package hir

import (
	"fmt"

	"glint/internal/arena"
	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/ident"
	"glint/internal/source"
)

// Desugarer lowers a surface ast.Module into an HIR Module, applying the
// six rewrites of spec §4.4 and synthesizing implicit type parameters for
// untyped function parameters. One Desugarer lowers exactly one module;
// it is not safe for concurrent use (it shares the pipeline's identifier
// pool and diagnostic sink, per spec §5).
type Desugarer struct {
	idents *ident.Pool
	sink   *diag.Sink

	src *ast.Module
	dst *Module

	implicitSeq int
}

// NewDesugarer constructs a Desugarer writing fresh identifiers into
// idents and diagnostics into sink.
func NewDesugarer(idents *ident.Pool, sink *diag.Sink) *Desugarer {
	return &Desugarer{idents: idents, sink: sink}
}

// Desugar lowers mod into a new HIR Module.
func (d *Desugarer) Desugar(mod *ast.Module) *Module {
	d.src = mod
	d.dst = NewModule(mod.Name, mod.SourceFile)
	for _, def := range mod.Definitions {
		d.dst.Definitions = append(d.dst.Definitions, d.lowerDefinition(def))
	}
	return d.dst
}

// --- definitions ---

func (d *Desugarer) lowerDefinition(def ast.Definition) Definition {
	out := Definition{Kind: DefinitionKind(def.Kind), Name: def.Name, Span: def.Span}
	switch data := def.Data.(type) {
	case ast.FunctionData:
		out.Data = d.lowerFunction(data)
	case ast.StructData:
		out.Data = StructData{
			TemplateParams: lowerTemplateParams(data.TemplateParams),
			Fields:         d.lowerStructFields(data.Fields),
		}
	case ast.EnumData:
		out.Data = EnumData{
			TemplateParams: lowerTemplateParams(data.TemplateParams),
			Variants:       d.lowerEnumVariants(data.Variants),
		}
	case ast.AliasData:
		out.Data = AliasData{
			TemplateParams: lowerTemplateParams(data.TemplateParams),
			Aliased:        d.lowerType(data.Aliased),
		}
	case ast.TypeclassData:
		out.Data = TypeclassData{
			SelfParam: TemplateParam(data.SelfParam),
			Methods:   d.lowerTypeclassMethods(data.Methods),
		}
	case ast.ImplementationData:
		out.Data = ImplementationData{
			Target:  d.lowerType(data.Target),
			Members: d.lowerDefinitions(data.Members),
		}
	case ast.InstantiationData:
		out.Data = InstantiationData{
			Typeclass: d.lowerQualifiedName(data.Typeclass),
			Target:    d.lowerType(data.Target),
			Members:   d.lowerDefinitions(data.Members),
		}
	default:
		d.sink.Internal(def.Span, fmt.Sprintf("hir: unhandled definition payload %T", def.Data))
	}
	return out
}

func (d *Desugarer) lowerDefinitions(defs []ast.Definition) []Definition {
	if len(defs) == 0 {
		return nil
	}
	out := make([]Definition, len(defs))
	for i, def := range defs {
		out[i] = d.lowerDefinition(def)
	}
	return out
}

func lowerTemplateParams(params []ast.TemplateParam) []TemplateParam {
	if len(params) == 0 {
		return nil
	}
	out := make([]TemplateParam, len(params))
	for i, p := range params {
		out[i] = TemplateParam{Name: p.Name, Span: p.Span}
	}
	return out
}

// lowerFunction lowers a function's template parameters and body,
// synthesizing a fresh implicit type parameter for every parameter that
// carries no explicit type annotation (spec §4.4).
func (d *Desugarer) lowerFunction(data ast.FunctionData) FunctionData {
	out := FunctionData{
		ExplicitTemplateParams: lowerTemplateParams(data.TemplateParams),
		Params:                 make([]Param, len(data.Params)),
	}
	for i, p := range data.Params {
		if p.TypeAnnotation != nil {
			out.Params[i] = Param{Name: p.Name, TypeAnnotation: d.lowerType(*p.TypeAnnotation), Span: p.Span}
			continue
		}
		implicitName := d.freshImplicitName(p.Span)
		out.ImplicitTemplateParams = append(out.ImplicitTemplateParams, ImplicitTemplateParam{Name: implicitName})
		out.Params[i] = Param{
			Name: p.Name,
			TypeAnnotation: TypeExpr{
				Kind: TypeNamed,
				Span: p.Span,
				Data: NamedTypeData{Name: QualifiedName{Root: RootCurrent, PrimaryName: implicitName}},
			},
			Span: p.Span,
		}
	}
	if data.ReturnType != nil {
		rt := d.lowerType(*data.ReturnType)
		out.ReturnType = &rt
	}
	if data.Body.Valid() {
		out.Body = d.lowerExpr(data.Body)
	}
	return out
}

// freshImplicitName synthesizes a type-parameter name guaranteed not to
// collide with user-written text (ident.Pool.InternNew skips the
// dedup lookup).
func (d *Desugarer) freshImplicitName(span source.Span) Name {
	d.implicitSeq++
	text := fmt.Sprintf("$T%d", d.implicitSeq)
	return ast.NewName(d.idents.InternNew(text), text, span)
}

func (d *Desugarer) lowerStructFields(fields []ast.StructField) []StructField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]StructField, len(fields))
	for i, f := range fields {
		out[i] = StructField{Name: f.Name, Type: d.lowerType(f.Type), Span: f.Span}
	}
	return out
}

func (d *Desugarer) lowerEnumVariants(variants []ast.EnumVariant) []EnumVariant {
	if len(variants) == 0 {
		return nil
	}
	out := make([]EnumVariant, len(variants))
	for i, v := range variants {
		ev := EnumVariant{Name: v.Name, Span: v.Span}
		if v.PayloadType != nil {
			pt := d.lowerType(*v.PayloadType)
			ev.PayloadType = &pt
		}
		out[i] = ev
	}
	return out
}

func (d *Desugarer) lowerTypeclassMethods(methods []ast.TypeclassMethod) []TypeclassMethod {
	if len(methods) == 0 {
		return nil
	}
	out := make([]TypeclassMethod, len(methods))
	for i, m := range methods {
		tm := TypeclassMethod{Name: m.Name, Span: m.Span, Params: d.lowerParams(m.Params)}
		if m.ReturnType != nil {
			rt := d.lowerType(*m.ReturnType)
			tm.ReturnType = &rt
		}
		out[i] = tm
	}
	return out
}

func (d *Desugarer) lowerParams(params []ast.Param) []Param {
	if len(params) == 0 {
		return nil
	}
	out := make([]Param, len(params))
	for i, p := range params {
		if p.TypeAnnotation == nil {
			implicitName := d.freshImplicitName(p.Span)
			out[i] = Param{
				Name: p.Name,
				TypeAnnotation: TypeExpr{
					Kind: TypeNamed,
					Span: p.Span,
					Data: NamedTypeData{Name: QualifiedName{Root: RootCurrent, PrimaryName: implicitName}},
				},
				Span: p.Span,
			}
			continue
		}
		out[i] = Param{Name: p.Name, TypeAnnotation: d.lowerType(*p.TypeAnnotation), Span: p.Span}
	}
	return out
}

// --- names and types ---

func (d *Desugarer) lowerQualifiedName(q ast.QualifiedName) QualifiedName {
	out := QualifiedName{Root: q.Root, PrimaryName: q.PrimaryName}
	if q.Root == ast.RootAssociated {
		out.AssociatedType = d.lowerType(q.AssociatedType)
	}
	if len(q.MiddleQualifiers) > 0 {
		out.MiddleQualifiers = make([]MiddleQualifier, len(q.MiddleQualifiers))
		for i, mq := range q.MiddleQualifiers {
			out.MiddleQualifiers[i] = MiddleQualifier{
				Name:            mq.Name,
				TemplateArgs:    d.lowerTypes(mq.TemplateArgs),
				HasTemplateArgs: mq.HasTemplateArgs,
			}
		}
	}
	return out
}

func (d *Desugarer) lowerTypes(ts []ast.TypeExpr) []TypeExpr {
	if len(ts) == 0 {
		return nil
	}
	out := make([]TypeExpr, len(ts))
	for i, t := range ts {
		out[i] = d.lowerType(t)
	}
	return out
}

func (d *Desugarer) lowerType(t ast.TypeExpr) TypeExpr {
	out := TypeExpr{Kind: TypeKind(t.Kind), Span: t.Span}
	switch data := t.Data.(type) {
	case ast.NamedTypeData:
		out.Data = NamedTypeData{Name: d.lowerQualifiedName(data.Name)}
	case ast.TupleTypeData:
		out.Data = TupleTypeData{Elements: d.lowerTypes(data.Elements)}
	case ast.ArrayTypeData:
		element := d.lowerType(*data.Element)
		out.Data = ArrayTypeData{Element: &element, Length: d.lowerExpr(data.Length)}
	case ast.SliceTypeData:
		elem := d.lowerType(*data.Element)
		out.Data = SliceTypeData{Element: &elem}
	case ast.FunctionTypeData:
		fd := FunctionTypeData{Params: d.lowerTypes(data.Params)}
		if data.Return != nil {
			rt := d.lowerType(*data.Return)
			fd.Return = &rt
		}
		out.Data = fd
	case ast.ReferenceTypeData:
		referee := d.lowerType(*data.Referee)
		out.Data = ReferenceTypeData{Mutable: data.Mutable, Referee: &referee}
	case ast.AppliedTypeData:
		out.Data = AppliedTypeData{Head: data.Head, Args: d.lowerTypes(data.Args)}
	case ast.HoleTypeData:
		out.Data = HoleTypeData{}
	default:
		d.sink.Internal(t.Span, fmt.Sprintf("hir: unhandled type payload %T", t.Data))
	}
	return out
}

// --- patterns ---

func (d *Desugarer) lowerPattern(h arena.Handle[ast.Pattern]) arena.Handle[Pattern] {
	if !h.Valid() {
		return arena.Handle[Pattern]{}
	}
	p := d.src.Patterns.Deref(h)
	out := Pattern{Kind: PatternKind(p.Kind), Span: p.Span}
	switch data := p.Data.(type) {
	case ast.WildcardPatternData:
		out.Data = WildcardPatternData{}
	case ast.NamePatternData:
		out.Data = NamePatternData{Name: data.Name, Mutable: data.Mutable}
	case ast.TuplePatternData:
		out.Data = TuplePatternData{Elements: d.lowerPatterns(data.Elements)}
	case ast.ConstructorPatternData:
		out.Data = ConstructorPatternData{Constructor: d.lowerQualifiedName(data.Constructor), Payload: d.lowerPattern(data.Payload)}
	case ast.AsPatternData:
		out.Data = AsPatternData{Inner: d.lowerPattern(data.Inner), Alias: data.Alias}
	case ast.GuardedPatternData:
		out.Data = GuardedPatternData{Inner: d.lowerPattern(data.Inner), Guard: d.lowerExpr(data.Guard)}
	default:
		d.sink.Internal(p.Span, fmt.Sprintf("hir: unhandled pattern payload %T", p.Data))
	}
	return d.dst.Patterns.Alloc(out)
}

func (d *Desugarer) lowerPatterns(hs []arena.Handle[ast.Pattern]) []arena.Handle[Pattern] {
	if len(hs) == 0 {
		return nil
	}
	out := make([]arena.Handle[Pattern], len(hs))
	for i, h := range hs {
		out[i] = d.lowerPattern(h)
	}
	return out
}

func (d *Desugarer) wildcardPattern(span source.Span) arena.Handle[Pattern] {
	return d.dst.Patterns.Alloc(Pattern{Kind: PatternWildcard, Span: span, Data: WildcardPatternData{}})
}

func (d *Desugarer) literalBoolPattern(span source.Span, value bool) arena.Handle[Pattern] {
	return d.dst.Patterns.Alloc(Pattern{Kind: PatternLiteral, Span: span, Data: LiteralPatternData{Bool: value}})
}

// --- expressions ---

func (d *Desugarer) lowerExprs(hs []arena.Handle[ast.Expr]) []arena.Handle[Expr] {
	if len(hs) == 0 {
		return nil
	}
	out := make([]arena.Handle[Expr], len(hs))
	for i, h := range hs {
		out[i] = d.lowerExpr(h)
	}
	return out
}

func (d *Desugarer) breakExpr(span source.Span) arena.Handle[Expr] {
	return d.dst.Exprs.Alloc(Expr{Kind: ExprBreak, Span: span, Data: BreakData{}})
}

func (d *Desugarer) unitExpr(span source.Span) arena.Handle[Expr] {
	return d.dst.Exprs.Alloc(Expr{Kind: ExprTupleLit, Span: span, Data: TupleLitData{}})
}

// lowerExpr lowers one surface expression to HIR, applying the §4.4
// rewrites for the sugar kinds.
func (d *Desugarer) lowerExpr(h arena.Handle[ast.Expr]) arena.Handle[Expr] {
	if !h.Valid() {
		return arena.Handle[Expr]{}
	}
	e := d.src.Exprs.Deref(h)

	switch e.Kind {
	case ast.ExprWhile:
		return d.lowerWhile(e)
	case ast.ExprWhileLet:
		return d.lowerWhileLet(e)
	case ast.ExprIf:
		return d.lowerIf(e)
	case ast.ExprIfLet:
		return d.lowerIfLet(e)
	case ast.ExprFor:
		d.sink.Error(diag.CodeForNotImplemented, e.Span, "'for' loop lowering is reserved; rewrite using 'loop' and an explicit iterator")
		return d.dst.Exprs.Alloc(Expr{Kind: ExprHole, Span: e.Span, Data: HoleData{}})
	}

	out := Expr{Kind: ExprKind(e.Kind), Span: e.Span}
	switch data := e.Data.(type) {
	case ast.LiteralData:
		out.Data = LiteralData{Kind: LiteralKind(data.Kind), Text: data.Text, Int: data.Int, Float: data.Float, Char: data.Char, Bool: data.Bool, String: data.String}
	case ast.ArrayLitData:
		out.Data = ArrayLitData{Elements: d.lowerExprs(data.Elements)}
	case ast.VarRefData:
		out.Data = VarRefData{Name: d.lowerQualifiedName(data.Name)}
	case ast.TupleLitData:
		out.Data = TupleLitData{Elements: d.lowerExprs(data.Elements)}
	case ast.LoopData:
		out.Data = LoopData{Body: d.lowerExpr(data.Body)}
	case ast.BreakData:
		bd := BreakData{HasValue: data.HasValue}
		if data.HasValue {
			bd.Value = d.lowerExpr(data.Value)
		}
		out.Data = bd
	case ast.ContinueData:
		out.Data = ContinueData{}
	case ast.BlockData:
		out.Data = BlockData{Exprs: d.lowerExprs(data.Exprs)}
	case ast.CallData:
		out.Data = CallData{Callee: d.lowerExpr(data.Callee), Args: d.lowerExprs(data.Args)}
	case ast.StructLitData:
		out.Data = StructLitData{TypeName: d.lowerQualifiedName(data.TypeName), Fields: d.lowerStructFieldInits(data.Fields)}
	case ast.BinaryOpData:
		out.Data = BinaryOpData{Op: BinaryOp(data.Op), Left: d.lowerExpr(data.Left), Right: d.lowerExpr(data.Right)}
	case ast.FieldAccessData:
		out.Data = FieldAccessData{Base: d.lowerExpr(data.Base), Field: data.Field}
	case ast.MethodCallData:
		out.Data = MethodCallData{Base: d.lowerExpr(data.Base), Method: data.Method, TemplateArgs: d.lowerTypes(data.TemplateArgs), Args: d.lowerExprs(data.Args)}
	case ast.MatchData:
		out.Data = MatchData{Scrutinee: d.lowerExpr(data.Scrutinee), Arms: d.lowerMatchArms(data.Arms)}
	case ast.DerefData:
		out.Data = DerefData{Target: d.lowerExpr(data.Target)}
	case ast.TemplateApplyData:
		out.Data = TemplateApplyData{Base: d.lowerExpr(data.Base), Args: d.lowerTypes(data.Args)}
	case ast.CastData:
		out.Data = CastData{Kind: CastKind(data.Kind), Target: d.lowerExpr(data.Target), Type: d.lowerType(data.Type)}
	case ast.LetData:
		ld := LetData{Pattern: d.lowerPattern(data.Pattern), Initializer: d.lowerExpr(data.Initializer)}
		if data.TypeAnnotation != nil {
			t := d.lowerType(*data.TypeAnnotation)
			ld.TypeAnnotation = &t
		}
		out.Data = ld
	case ast.LocalAliasData:
		out.Data = LocalAliasData{Name: data.Name, Aliased: d.lowerType(data.Aliased)}
	case ast.ReturnData:
		rd := ReturnData{HasValue: data.HasValue}
		if data.HasValue {
			rd.Value = d.lowerExpr(data.Value)
		}
		out.Data = rd
	case ast.SizeOfData:
		out.Data = SizeOfData{Type: d.lowerType(data.Type)}
	case ast.TakeRefData:
		out.Data = TakeRefData{Mutable: data.Mutable, Target: d.lowerExpr(data.Target)}
	case ast.PlacementInitData:
		out.Data = PlacementInitData{Location: d.lowerExpr(data.Location), Type: d.lowerType(data.Type), Args: d.lowerExprs(data.Args)}
	case ast.MetaData:
		out.Data = MetaData{Quoted: d.lowerExpr(data.Quoted)}
	case ast.HoleData:
		out.Data = HoleData{}
	default:
		d.sink.Internal(e.Span, fmt.Sprintf("hir: unhandled expression payload %T", e.Data))
	}
	return d.dst.Exprs.Alloc(out)
}

func (d *Desugarer) lowerStructFieldInits(fields []ast.StructFieldInit) []StructFieldInit {
	if len(fields) == 0 {
		return nil
	}
	out := make([]StructFieldInit, len(fields))
	for i, f := range fields {
		out[i] = StructFieldInit{Name: f.Name, Value: d.lowerExpr(f.Value)}
	}
	return out
}

func (d *Desugarer) lowerMatchArms(arms []ast.MatchArm) []MatchArm {
	if len(arms) == 0 {
		return nil
	}
	out := make([]MatchArm, len(arms))
	for i, a := range arms {
		out[i] = MatchArm{Pattern: d.lowerPattern(a.Pattern), Body: d.lowerExpr(a.Body)}
	}
	return out
}

// lowerWhile implements `while C { B }` -> `loop { match C { true -> B;
// false -> break } }`, emitting a note when C is the literal `true` (spec
// §8 Scenario D).
func (d *Desugarer) lowerWhile(e *ast.Expr) arena.Handle[Expr] {
	data := e.Data.(ast.WhileData)
	condNode := d.src.Exprs.Deref(data.Cond)
	if lit, ok := condNode.Data.(ast.LiteralData); ok && lit.Kind == ast.LiteralBool && lit.Bool {
		d.sink.Note(diag.CodePreferLoop, e.Span, "consider using 'loop' instead of 'while true'")
	}

	cond := d.lowerExpr(data.Cond)
	body := d.lowerExpr(data.Body)
	match := d.dst.Exprs.Alloc(Expr{
		Kind: ExprMatch,
		Span: e.Span,
		Data: MatchData{
			Scrutinee: cond,
			Arms: []MatchArm{
				{Pattern: d.literalBoolPattern(source.Zero, true), Body: body},
				{Pattern: d.literalBoolPattern(source.Zero, false), Body: d.breakExpr(source.Zero)},
			},
		},
	})
	return d.dst.Exprs.Alloc(Expr{Kind: ExprLoop, Span: e.Span, Data: LoopData{Body: match}})
}

// lowerWhileLet implements `while let P = E { B }` -> `loop { match E { P
// -> B; _ -> break } }`.
func (d *Desugarer) lowerWhileLet(e *ast.Expr) arena.Handle[Expr] {
	data := e.Data.(ast.WhileLetData)
	pattern := d.lowerPattern(data.Pattern)
	init := d.lowerExpr(data.Init)
	body := d.lowerExpr(data.Body)
	match := d.dst.Exprs.Alloc(Expr{
		Kind: ExprMatch,
		Span: e.Span,
		Data: MatchData{
			Scrutinee: init,
			Arms: []MatchArm{
				{Pattern: pattern, Body: body},
				{Pattern: d.wildcardPattern(source.Zero), Body: d.breakExpr(source.Zero)},
			},
		},
	})
	return d.dst.Exprs.Alloc(Expr{Kind: ExprLoop, Span: e.Span, Data: LoopData{Body: match}})
}

// lowerIf implements `if C { T } else { F }` -> `match C { true -> T;
// false -> F }`, synthesizing `else { () }` when F is omitted.
func (d *Desugarer) lowerIf(e *ast.Expr) arena.Handle[Expr] {
	data := e.Data.(ast.IfData)
	cond := d.lowerExpr(data.Cond)
	then := d.lowerExpr(data.Then)
	var elseBranch arena.Handle[Expr]
	if data.HasElse {
		elseBranch = d.lowerExpr(data.Else)
	} else {
		elseBranch = d.unitExpr(source.Zero)
	}
	return d.dst.Exprs.Alloc(Expr{
		Kind: ExprMatch,
		Span: e.Span,
		Data: MatchData{
			Scrutinee: cond,
			Arms: []MatchArm{
				{Pattern: d.literalBoolPattern(source.Zero, true), Body: then},
				{Pattern: d.literalBoolPattern(source.Zero, false), Body: elseBranch},
			},
		},
	})
}

// lowerIfLet implements `if let P = E { T } else { F }` -> `match E { P ->
// T; _ -> F }`, synthesizing `else { () }` when F is omitted. Left-
// associative `elif` chains arrive here as nested ExprIf/ExprIfLet values
// reached through Else, so no separate handling is needed.
func (d *Desugarer) lowerIfLet(e *ast.Expr) arena.Handle[Expr] {
	data := e.Data.(ast.IfLetData)
	pattern := d.lowerPattern(data.Pattern)
	init := d.lowerExpr(data.Init)
	then := d.lowerExpr(data.Then)
	var elseBranch arena.Handle[Expr]
	if data.HasElse {
		elseBranch = d.lowerExpr(data.Else)
	} else {
		elseBranch = d.unitExpr(source.Zero)
	}
	return d.dst.Exprs.Alloc(Expr{
		Kind: ExprMatch,
		Span: e.Span,
		Data: MatchData{
			Scrutinee: init,
			Arms: []MatchArm{
				{Pattern: pattern, Body: then},
				{Pattern: d.wildcardPattern(source.Zero), Body: elseBranch},
			},
		},
	})
}
