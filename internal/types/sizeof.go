package types

import (
	"fmt"
	"math"

	"fortio.org/safecast"
)

// pointerSize is the byte size this compiler's target uses for a
// reference, a slice's data/length pair collapses to, and the fallback
// for a type whose size cannot be determined (an unresolved variable, or
// a recursive nominal type caught mid-computation).
const pointerSize uint32 = 8

// SizeOf returns id's byte size in the frame layout scope bindings use
// (spec §4.10's "the scope's offset advances by the type's size").
// Structural kinds recurse into their element/field types; a Structure
// sums its fields, and an Enumeration is an 8-byte discriminant tag plus
// its widest variant payload. A kind with no meaningful standalone size
// (a function, an unresolved variable, an invalid entry) falls back to
// pointerSize so frame layout still advances monotonically. An array
// whose total size does not fit in a uint32 panics.
func SizeOf(in *Interner, id TypeID) uint32 {
	return sizeOf(in, id, make(map[TypeID]bool))
}

func sizeOf(in *Interner, id TypeID, visiting map[TypeID]bool) uint32 {
	t, ok := in.Lookup(id)
	if !ok {
		return pointerSize
	}

	switch t.Kind {
	case KindBool:
		return 1
	case KindChar:
		return 4
	case KindInt, KindFloat:
		w := t.Width
		if w == WidthDefault {
			w = Width64
		}
		return uint32(w) / 8
	case KindString, KindSlice, KindReference, KindFunction:
		return pointerSize
	case KindTuple:
		info, ok := in.TupleInfo(id)
		if !ok {
			return pointerSize
		}
		var total uint32
		for _, elem := range info.Elems {
			total += sizeOf(in, elem, visiting)
		}
		return total
	case KindArray:
		info, ok := in.ArrayInfo(id)
		if !ok || !info.Length.Known {
			return pointerSize
		}
		n, err := safecast.Conv[uint32](info.Length.Value)
		elem := sizeOf(in, info.Elem, visiting)
		if err != nil || (elem != 0 && n > math.MaxUint32/elem) {
			panic(fmt.Errorf("types: array size overflow: %d elements of size %d", info.Length.Value, elem))
		}
		return n * elem
	case KindStructure:
		if visiting[id] {
			return pointerSize
		}
		visiting[id] = true
		defer delete(visiting, id)
		info, ok := in.StructureInfo(id)
		if !ok {
			return pointerSize
		}
		var total uint32
		for _, f := range info.Fields {
			total += sizeOf(in, f.Type, visiting)
		}
		return total
	case KindEnumeration:
		if visiting[id] {
			return pointerSize
		}
		visiting[id] = true
		defer delete(visiting, id)
		info, ok := in.EnumerationInfo(id)
		if !ok {
			return pointerSize
		}
		var largest uint32
		for _, v := range info.Variants {
			if v.PayloadType == NoTypeID {
				continue
			}
			if s := sizeOf(in, v.PayloadType, visiting); s > largest {
				largest = s
			}
		}
		return 8 + largest // an 8-byte discriminant tag plus the widest payload
	default:
		// KindInvalid, KindParameterized, KindGeneralVar, KindIntegralVar:
		// none of these denote a concrete storable value.
		return pointerSize
	}
}
