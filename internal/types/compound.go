package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

func cloneTypeIDs(ids []TypeID) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	return append([]TypeID(nil), ids...)
}

// TupleInfo stores a tuple type's element types in order. The zero-arity
// tuple is the unit type.
type TupleInfo struct {
	Elems []TypeID
}

// RegisterTuple interns a tuple type, reusing an existing entry with the
// same element sequence.
func (in *Interner) RegisterTuple(elems []TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		t := in.types[id]
		if t.Kind != KindTuple {
			continue
		}
		if slices.Equal(in.tuples[t.Payload].Elems, elems) {
			return id
		}
	}
	slot := in.appendTupleInfo(TupleInfo{Elems: cloneTypeIDs(elems)})
	return in.internRaw(Type{Kind: KindTuple, Payload: slot})
}

// TupleInfo returns the element types of a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTuple {
		return nil, false
	}
	return &in.tuples[t.Payload], true
}

func (in *Interner) appendTupleInfo(info TupleInfo) uint32 {
	slot, err := safecast.Conv[uint32](len(in.tuples))
	if err != nil {
		panic(fmt.Errorf("types: tuple info overflow: %w", err))
	}
	in.tuples = append(in.tuples, info)
	return slot
}

// ArrayLength is an array type's compile-time length. Known is false for
// a length that is itself an unevaluated expression (a dependent const
// parameter); the type resolver evaluates only integer-literal lengths,
// so such a length stays unknown.
type ArrayLength struct {
	Known bool
	Value uint64
}

// ArrayInfo stores an array type's element type and length.
type ArrayInfo struct {
	Elem   TypeID
	Length ArrayLength
}

// RegisterArray interns `[Elem; Length]`.
func (in *Interner) RegisterArray(elem TypeID, length ArrayLength) TypeID {
	slot := in.appendArrayInfo(ArrayInfo{Elem: elem, Length: length})
	return in.internRaw(Type{Kind: KindArray, Elem: elem, Payload: slot})
}

// ArrayInfo returns the element type and length of an array TypeID.
func (in *Interner) ArrayInfo(id TypeID) (*ArrayInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindArray {
		return nil, false
	}
	return &in.arrays[t.Payload], true
}

func (in *Interner) appendArrayInfo(info ArrayInfo) uint32 {
	slot, err := safecast.Conv[uint32](len(in.arrays))
	if err != nil {
		panic(fmt.Errorf("types: array info overflow: %w", err))
	}
	in.arrays = append(in.arrays, info)
	return slot
}

// RegisterSlice interns `[Elem]`, a length-erased array.
func (in *Interner) RegisterSlice(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindSlice, Elem: elem})
}

// RegisterReference interns `&Elem` or `&mut Elem`.
func (in *Interner) RegisterReference(elem TypeID, mutable bool) TypeID {
	return in.Intern(Type{Kind: KindReference, Elem: elem, Mutable: mutable})
}

// FunctionInfo stores a function type's parameter and return types.
type FunctionInfo struct {
	Params []TypeID
	Result TypeID
}

// RegisterFunction interns `function(Params) -> Result`.
func (in *Interner) RegisterFunction(params []TypeID, result TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		t := in.types[id]
		if t.Kind != KindFunction {
			continue
		}
		info := in.functions[t.Payload]
		if info.Result == result && slices.Equal(info.Params, params) {
			return id
		}
	}
	slot := in.appendFunctionInfo(FunctionInfo{Params: cloneTypeIDs(params), Result: result})
	return in.internRaw(Type{Kind: KindFunction, Payload: slot})
}

// FunctionInfo returns the parameter and return types of a function TypeID.
func (in *Interner) FunctionInfo(id TypeID) (*FunctionInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFunction {
		return nil, false
	}
	return &in.functions[t.Payload], true
}

func (in *Interner) appendFunctionInfo(info FunctionInfo) uint32 {
	slot, err := safecast.Conv[uint32](len(in.functions))
	if err != nil {
		panic(fmt.Errorf("types: function info overflow: %w", err))
	}
	in.functions = append(in.functions, info)
	return slot
}

// ParameterizedInfo stores a generic definition's own type parameters and
// the body type they appear free in. A parameterized type is only ever
// the toplevel type of a definition — it must never be nested as a
// subterm of another type.
type ParameterizedInfo struct {
	Params []TypeID // the parameter types themselves (general/integral vars)
	Body   TypeID
}

// RegisterParameterized interns a parameterized (generic) definition type.
func (in *Interner) RegisterParameterized(params []TypeID, body TypeID) TypeID {
	slot := in.appendParameterizedInfo(ParameterizedInfo{Params: cloneTypeIDs(params), Body: body})
	return in.internRaw(Type{Kind: KindParameterized, Payload: slot})
}

// ParameterizedInfo returns the parameters and body of a parameterized TypeID.
func (in *Interner) ParameterizedInfo(id TypeID) (*ParameterizedInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindParameterized {
		return nil, false
	}
	return &in.parameterized[t.Payload], true
}

func (in *Interner) appendParameterizedInfo(info ParameterizedInfo) uint32 {
	slot, err := safecast.Conv[uint32](len(in.parameterized))
	if err != nil {
		panic(fmt.Errorf("types: parameterized info overflow: %w", err))
	}
	in.parameterized = append(in.parameterized, info)
	return slot
}
