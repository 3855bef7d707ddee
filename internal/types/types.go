// Package types is the MIR type interner: every concrete and variable
// type the resolver and inferencer produce is structurally hash-consed
// into a stable TypeID, so equal descriptors always compare equal by
// identity rather than by deep comparison.
package types

import (
	"fmt"

	"fortio.org/safecast"
)

// TypeID is a stable handle into an Interner.
type TypeID uint32

// NoTypeID marks the absence of a type (an unresolved slot).
const NoTypeID TypeID = 0

// Kind tags the MIR type variants of spec §3.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindChar
	KindBool
	KindString
	KindTuple
	KindArray
	KindSlice
	KindFunction
	KindReference
	KindParameterized
	KindStructure
	KindEnumeration
	KindGeneralVar
	KindIntegralVar
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindTuple:
		return "tuple"
	case KindArray:
		return "array"
	case KindSlice:
		return "slice"
	case KindFunction:
		return "function"
	case KindReference:
		return "reference"
	case KindParameterized:
		return "parameterized"
	case KindStructure:
		return "structure"
	case KindEnumeration:
		return "enumeration"
	case KindGeneralVar:
		return "general-var"
	case KindIntegralVar:
		return "integral-var"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsVariable reports whether k is one of the two unification-variable
// kinds (I-2: a general variable unifies with anything; an integral
// variable unifies only with integers or other integral/general
// variables).
func (k Kind) IsVariable() bool { return k == KindGeneralVar || k == KindIntegralVar }

// Width is the bit width of an integer or floating type. WidthDefault
// means "the canonical width for this kind" (signed 64-bit integer,
// 64-bit float).
type Width uint8

const (
	WidthDefault Width = 0
	Width8       Width = 8
	Width16      Width = 16
	Width32      Width = 32
	Width64      Width = 64
)

// Type is the compact structural descriptor every TypeID resolves to.
// Variable-length data (tuple elements, function parameters, struct
// fields...) lives in a side table indexed by Payload, keeping Type
// itself fixed-size and cheap to hash.
type Type struct {
	Kind    Kind
	Elem    TypeID // array/slice/reference/parameterized-body element
	Width   Width   // int/float
	Signed  bool    // int only
	Mutable bool    // reference only
	Payload uint32  // index into a Kind-specific side table; 0 when unused
	Tag     uint32  // unique per-pipeline tag for variable kinds
}

// typeKey is Type reduced to a comparable, hashable value for the
// structural-equality index.
type typeKey = Type

// Interner owns every Type descriptor produced during one pipeline run.
// Per spec §5 it is logically single-writer; running two pipelines
// concurrently requires one Interner each.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins

	tuples         []TupleInfo
	arrays         []ArrayInfo
	functions      []FunctionInfo
	parameterized  []ParameterizedInfo
	structures     []StructureInfo
	enumerations   []EnumerationInfo

	nextVarTag uint32
}

// Builtins holds the TypeIDs seeded at construction for primitive types
// referenced throughout the pipeline without re-interning.
type Builtins struct {
	Unit    TypeID
	Bool    TypeID
	Char    TypeID
	String  TypeID
	Int     TypeID // canonical signed 64-bit integer, the literal default
	Float   TypeID // canonical 64-bit float
}

// NewInterner constructs an Interner seeded with builtin primitive types.
// Unit is modeled as the zero-arity tuple, matching spec §8's "an empty
// block expression compiles to the unit value of unit type".
func NewInterner() *Interner {
	in := &Interner{index: make(map[typeKey]TypeID, 64)}
	in.types = append(in.types, Type{Kind: KindInvalid}) // reserve 0 for NoTypeID
	// Reserve side-table slot 0 in every table as an invalid sentinel.
	in.tuples = append(in.tuples, TupleInfo{})
	in.arrays = append(in.arrays, ArrayInfo{})
	in.functions = append(in.functions, FunctionInfo{})
	in.parameterized = append(in.parameterized, ParameterizedInfo{})
	in.structures = append(in.structures, StructureInfo{})
	in.enumerations = append(in.enumerations, EnumerationInfo{})

	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Int = in.Intern(Type{Kind: KindInt, Width: Width64, Signed: true})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat, Width: Width64})
	in.builtins.Unit = in.RegisterTuple(nil)
	return in
}

// Builtins returns the TypeIDs of the seeded primitive types.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Intern returns the stable TypeID for t, reusing an existing entry when
// an identical descriptor (including Payload) was already interned.
// Variable kinds are never deduplicated by callers of Intern directly;
// use FreshGeneralVar/FreshIntegralVar, which mint a unique Tag first.
func (in *Interner) Intern(t Type) TypeID {
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	idx, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	id := TypeID(idx)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics on an invalid TypeID; used where the caller has
// already established id came from this Interner.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}
