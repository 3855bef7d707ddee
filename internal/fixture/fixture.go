// Package fixture decodes a small JSON program description into an
// ast.Module. The semantic core takes a surface AST as its input (spec §1
// treats lexing and parsing as an external collaborator); this module
// carries no lexer or parser of its own, so fixture is the stand-in
// frontend cmd/glintc uses to get a real ast.Module onto the pipeline
// without inventing one more compiler stage inside the core.
package fixture

import (
	"encoding/json"
	"fmt"

	"glint/internal/arena"
	"glint/internal/ast"
	"glint/internal/ident"
	"glint/internal/source"
)

// Program is the on-disk shape of a fixture file.
type Program struct {
	Module      string       `json:"module"`
	Definitions []definition `json:"definitions"`
}

type definition struct {
	Kind           string        `json:"kind"` // function|struct|enum
	Name           string        `json:"name"`
	TemplateParams []string      `json:"templateParams"`
	Params         []paramJSON   `json:"params"`
	ReturnType     *typeExprJSON `json:"returnType"`
	Body           *exprJSON     `json:"body"`
	Fields         []fieldJSON   `json:"fields"`
	Variants       []variantJSON `json:"variants"`
}

type paramJSON struct {
	Name string        `json:"name"`
	Type *typeExprJSON `json:"type"`
}

type fieldJSON struct {
	Name string       `json:"name"`
	Type typeExprJSON `json:"type"`
}

type variantJSON struct {
	Name    string        `json:"name"`
	Payload *typeExprJSON `json:"payload"`
}

type typeExprJSON struct {
	Kind string         `json:"kind"` // named|hole|applied
	Name string         `json:"name"`
	Args []typeExprJSON `json:"args"`
}

type exprJSON struct {
	Kind string `json:"kind"`

	// literal
	Value json.RawMessage `json:"value"`

	// var / struct type name / call callee-as-name shorthand
	Name string `json:"name"`

	// binary
	Op    string    `json:"op"`
	Left  *exprJSON `json:"left"`
	Right *exprJSON `json:"right"`

	// call
	Callee *exprJSON  `json:"callee"`
	Args   []exprJSON `json:"args"`

	// block
	Exprs []exprJSON `json:"exprs"`

	// let
	Type   *typeExprJSON `json:"type"`
	Value2 *exprJSON     `json:"init"`

	// if
	Cond *exprJSON `json:"cond"`
	Then *exprJSON `json:"then"`
	Else *exprJSON `json:"else"`

	// struct literal
	TypeName string            `json:"typeName"`
	Fields   []structFieldJSON `json:"fields"`

	// return
	ReturnValue *exprJSON `json:"returnValue"`
}

type structFieldJSON struct {
	Name  string   `json:"name"`
	Value exprJSON `json:"value"`
}

// Decode parses raw program JSON into an ast.Module, interning every
// identifier it encounters through pool. The returned module's
// SourceFile is file, recorded so diagnostics can point back at the
// fixture that produced a definition even though no byte-offset
// information exists for fixture-sourced spans.
func Decode(raw []byte, pool *ident.Pool, file source.FileID) (*ast.Module, error) {
	var prog Program
	if err := json.Unmarshal(raw, &prog); err != nil {
		return nil, fmt.Errorf("fixture: decode: %w", err)
	}
	if prog.Module == "" {
		return nil, fmt.Errorf("fixture: missing module name")
	}

	mod := ast.NewModule(prog.Module, file)
	b := &builder{pool: pool, mod: mod}

	for _, d := range prog.Definitions {
		def, err := b.definition(d)
		if err != nil {
			return nil, err
		}
		mod.Definitions = append(mod.Definitions, def)
	}
	return mod, nil
}

type builder struct {
	pool *ident.Pool
	mod  *ast.Module
}

func (b *builder) name(text string) ast.Name {
	return ast.NewName(b.pool.Intern(text), text, source.Zero)
}

func (b *builder) qualified(text string) ast.QualifiedName {
	return ast.QualifiedName{Root: ast.RootCurrent, PrimaryName: b.name(text)}
}

func (b *builder) definition(d definition) (ast.Definition, error) {
	switch d.Kind {
	case "function":
		return b.function(d)
	case "struct":
		return b.structDef(d)
	case "enum":
		return b.enumDef(d)
	default:
		return ast.Definition{}, fmt.Errorf("fixture: unknown definition kind %q", d.Kind)
	}
}

func (b *builder) function(d definition) (ast.Definition, error) {
	if d.Body == nil {
		return ast.Definition{}, fmt.Errorf("fixture: function %q has no body", d.Name)
	}
	body, err := b.expr(*d.Body)
	if err != nil {
		return ast.Definition{}, fmt.Errorf("fixture: function %q: %w", d.Name, err)
	}

	tparams := make([]ast.TemplateParam, 0, len(d.TemplateParams))
	for _, t := range d.TemplateParams {
		tparams = append(tparams, ast.TemplateParam{Name: b.name(t)})
	}

	params := make([]ast.Param, 0, len(d.Params))
	for _, p := range d.Params {
		param := ast.Param{Name: b.name(p.Name)}
		if p.Type != nil {
			te, err := b.typeExpr(*p.Type)
			if err != nil {
				return ast.Definition{}, fmt.Errorf("fixture: function %q param %q: %w", d.Name, p.Name, err)
			}
			param.TypeAnnotation = &te
		}
		params = append(params, param)
	}

	var returnType *ast.TypeExpr
	if d.ReturnType != nil {
		te, err := b.typeExpr(*d.ReturnType)
		if err != nil {
			return ast.Definition{}, fmt.Errorf("fixture: function %q return type: %w", d.Name, err)
		}
		returnType = &te
	}

	return ast.Definition{
		Kind: ast.DefFunction,
		Name: b.name(d.Name),
		Data: ast.FunctionData{
			TemplateParams: tparams,
			Params:         params,
			ReturnType:     returnType,
			Body:           body,
		},
	}, nil
}

func (b *builder) structDef(d definition) (ast.Definition, error) {
	fields := make([]ast.StructField, 0, len(d.Fields))
	for _, f := range d.Fields {
		te, err := b.typeExpr(f.Type)
		if err != nil {
			return ast.Definition{}, fmt.Errorf("fixture: struct %q field %q: %w", d.Name, f.Name, err)
		}
		fields = append(fields, ast.StructField{Name: b.name(f.Name), Type: te})
	}
	tparams := make([]ast.TemplateParam, 0, len(d.TemplateParams))
	for _, t := range d.TemplateParams {
		tparams = append(tparams, ast.TemplateParam{Name: b.name(t)})
	}
	return ast.Definition{
		Kind: ast.DefStruct,
		Name: b.name(d.Name),
		Data: ast.StructData{TemplateParams: tparams, Fields: fields},
	}, nil
}

func (b *builder) enumDef(d definition) (ast.Definition, error) {
	variants := make([]ast.EnumVariant, 0, len(d.Variants))
	for _, v := range d.Variants {
		variant := ast.EnumVariant{Name: b.name(v.Name)}
		if v.Payload != nil {
			te, err := b.typeExpr(*v.Payload)
			if err != nil {
				return ast.Definition{}, fmt.Errorf("fixture: enum %q variant %q: %w", d.Name, v.Name, err)
			}
			variant.PayloadType = &te
		}
		variants = append(variants, variant)
	}
	tparams := make([]ast.TemplateParam, 0, len(d.TemplateParams))
	for _, t := range d.TemplateParams {
		tparams = append(tparams, ast.TemplateParam{Name: b.name(t)})
	}
	return ast.Definition{
		Kind: ast.DefEnum,
		Name: b.name(d.Name),
		Data: ast.EnumData{TemplateParams: tparams, Variants: variants},
	}, nil
}

func (b *builder) typeExpr(t typeExprJSON) (ast.TypeExpr, error) {
	switch t.Kind {
	case "named", "":
		if t.Name == "" {
			return ast.TypeExpr{}, fmt.Errorf("fixture: named type missing a name")
		}
		return ast.TypeExpr{Kind: ast.TypeNamed, Data: ast.NamedTypeData{Name: b.qualified(t.Name)}}, nil
	case "hole":
		return ast.TypeExpr{Kind: ast.TypeHole, Data: ast.HoleTypeData{}}, nil
	case "applied":
		args := make([]ast.TypeExpr, 0, len(t.Args))
		for _, a := range t.Args {
			te, err := b.typeExpr(a)
			if err != nil {
				return ast.TypeExpr{}, err
			}
			args = append(args, te)
		}
		return ast.TypeExpr{Kind: ast.TypeApplied, Data: ast.AppliedTypeData{Head: b.name(t.Name), Args: args}}, nil
	default:
		return ast.TypeExpr{}, fmt.Errorf("fixture: unknown type kind %q", t.Kind)
	}
}

func (b *builder) expr(e exprJSON) (arena.Handle[ast.Expr], error) {
	switch e.Kind {
	case "int":
		var v int64
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return arena.Handle[ast.Expr]{}, fmt.Errorf("fixture: int literal: %w", err)
		}
		return b.alloc(ast.ExprLiteral, ast.LiteralData{Kind: ast.LiteralInt, Int: v, Text: fmt.Sprint(v)}), nil
	case "float":
		var v float64
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return arena.Handle[ast.Expr]{}, fmt.Errorf("fixture: float literal: %w", err)
		}
		return b.alloc(ast.ExprLiteral, ast.LiteralData{Kind: ast.LiteralFloat, Float: v, Text: fmt.Sprint(v)}), nil
	case "bool":
		var v bool
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return arena.Handle[ast.Expr]{}, fmt.Errorf("fixture: bool literal: %w", err)
		}
		return b.alloc(ast.ExprLiteral, ast.LiteralData{Kind: ast.LiteralBool, Bool: v, Text: fmt.Sprint(v)}), nil
	case "string":
		var v string
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return arena.Handle[ast.Expr]{}, fmt.Errorf("fixture: string literal: %w", err)
		}
		return b.alloc(ast.ExprLiteral, ast.LiteralData{Kind: ast.LiteralString, String: v, Text: v}), nil
	case "var":
		if e.Name == "" {
			return arena.Handle[ast.Expr]{}, fmt.Errorf("fixture: var expression missing a name")
		}
		return b.alloc(ast.ExprVarRef, ast.VarRefData{Name: b.qualified(e.Name)}), nil
	case "binary":
		op, err := binaryOp(e.Op)
		if err != nil {
			return arena.Handle[ast.Expr]{}, err
		}
		if e.Left == nil || e.Right == nil {
			return arena.Handle[ast.Expr]{}, fmt.Errorf("fixture: binary %q needs left and right", e.Op)
		}
		left, err := b.expr(*e.Left)
		if err != nil {
			return arena.Handle[ast.Expr]{}, err
		}
		right, err := b.expr(*e.Right)
		if err != nil {
			return arena.Handle[ast.Expr]{}, err
		}
		return b.alloc(ast.ExprBinaryOp, ast.BinaryOpData{Op: op, Left: left, Right: right}), nil
	case "call":
		var callee arena.Handle[ast.Expr]
		var err error
		switch {
		case e.Callee != nil:
			callee, err = b.expr(*e.Callee)
		case e.Name != "":
			callee = b.alloc(ast.ExprVarRef, ast.VarRefData{Name: b.qualified(e.Name)})
		default:
			err = fmt.Errorf("fixture: call needs a callee or a name")
		}
		if err != nil {
			return arena.Handle[ast.Expr]{}, err
		}
		args := make([]arena.Handle[ast.Expr], 0, len(e.Args))
		for _, a := range e.Args {
			h, err := b.expr(a)
			if err != nil {
				return arena.Handle[ast.Expr]{}, err
			}
			args = append(args, h)
		}
		return b.alloc(ast.ExprCall, ast.CallData{Callee: callee, Args: args}), nil
	case "block":
		exprs := make([]arena.Handle[ast.Expr], 0, len(e.Exprs))
		for _, sub := range e.Exprs {
			h, err := b.expr(sub)
			if err != nil {
				return arena.Handle[ast.Expr]{}, err
			}
			exprs = append(exprs, h)
		}
		return b.alloc(ast.ExprBlock, ast.BlockData{Exprs: exprs}), nil
	case "let":
		if e.Value2 == nil {
			return arena.Handle[ast.Expr]{}, fmt.Errorf("fixture: let %q needs an init expression", e.Name)
		}
		init, err := b.expr(*e.Value2)
		if err != nil {
			return arena.Handle[ast.Expr]{}, err
		}
		pat := b.mod.Patterns.Alloc(ast.Pattern{
			Kind: ast.PatternName,
			Data: ast.NamePatternData{Name: b.name(e.Name)},
		})
		var annotation *ast.TypeExpr
		if e.Type != nil {
			te, err := b.typeExpr(*e.Type)
			if err != nil {
				return arena.Handle[ast.Expr]{}, err
			}
			annotation = &te
		}
		return b.alloc(ast.ExprLet, ast.LetData{Pattern: pat, TypeAnnotation: annotation, Initializer: init}), nil
	case "if":
		if e.Cond == nil || e.Then == nil {
			return arena.Handle[ast.Expr]{}, fmt.Errorf("fixture: if needs a cond and a then branch")
		}
		cond, err := b.expr(*e.Cond)
		if err != nil {
			return arena.Handle[ast.Expr]{}, err
		}
		then, err := b.expr(*e.Then)
		if err != nil {
			return arena.Handle[ast.Expr]{}, err
		}
		data := ast.IfData{Cond: cond, Then: then}
		if e.Else != nil {
			els, err := b.expr(*e.Else)
			if err != nil {
				return arena.Handle[ast.Expr]{}, err
			}
			data.Else = els
			data.HasElse = true
		}
		return b.alloc(ast.ExprIf, data), nil
	case "struct":
		fields := make([]ast.StructFieldInit, 0, len(e.Fields))
		for _, f := range e.Fields {
			h, err := b.expr(f.Value)
			if err != nil {
				return arena.Handle[ast.Expr]{}, err
			}
			fields = append(fields, ast.StructFieldInit{Name: b.name(f.Name), Value: h})
		}
		return b.alloc(ast.ExprStructLit, ast.StructLitData{TypeName: b.qualified(e.TypeName), Fields: fields}), nil
	case "return":
		data := ast.ReturnData{}
		if e.ReturnValue != nil {
			h, err := b.expr(*e.ReturnValue)
			if err != nil {
				return arena.Handle[ast.Expr]{}, err
			}
			data.Value = h
			data.HasValue = true
		}
		return b.alloc(ast.ExprReturn, data), nil
	default:
		return arena.Handle[ast.Expr]{}, fmt.Errorf("fixture: unknown expression kind %q", e.Kind)
	}
}

func (b *builder) alloc(kind ast.ExprKind, data ast.ExprData) arena.Handle[ast.Expr] {
	return b.mod.Exprs.Alloc(ast.Expr{Kind: kind, Span: source.Zero, Data: data})
}

func binaryOp(op string) (ast.BinaryOp, error) {
	switch op {
	case "+":
		return ast.BinAdd, nil
	case "-":
		return ast.BinSub, nil
	case "*":
		return ast.BinMul, nil
	case "/":
		return ast.BinDiv, nil
	case "%":
		return ast.BinMod, nil
	case "==":
		return ast.BinEq, nil
	case "!=":
		return ast.BinNotEq, nil
	case "<":
		return ast.BinLess, nil
	case "<=":
		return ast.BinLessEq, nil
	case ">":
		return ast.BinGreater, nil
	case ">=":
		return ast.BinGreaterEq, nil
	case "&&":
		return ast.BinLogicalAnd, nil
	case "||":
		return ast.BinLogicalOr, nil
	case "&":
		return ast.BinBitAnd, nil
	case "|":
		return ast.BinBitOr, nil
	case "^":
		return ast.BinBitXor, nil
	case "<<":
		return ast.BinShiftLeft, nil
	case ">>":
		return ast.BinShiftRight, nil
	default:
		return 0, fmt.Errorf("fixture: unknown binary operator %q", op)
	}
}
