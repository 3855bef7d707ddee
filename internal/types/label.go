package types

import "fmt"

// Label returns a short human-readable rendering of a TypeID, used in
// diagnostic messages ("cannot unify Int with Char"). Grounded on
// vovakirdan-surge/internal/types/label.go's depth-bounded recursive
// labeler, reduced to this interner's flatter kind set.
func Label(in *Interner, id TypeID) string {
	return labelDepth(in, id, 0)
}

func labelDepth(in *Interner, id TypeID, depth int) string {
	if id == NoTypeID || in == nil {
		return "?"
	}
	if depth > 8 {
		return "..."
	}
	t, ok := in.Lookup(id)
	if !ok {
		return "?"
	}
	switch t.Kind {
	case KindBool:
		return "Bool"
	case KindChar:
		return "Char"
	case KindString:
		return "String"
	case KindInt:
		return formatIntLabel(t.Width, t.Signed)
	case KindFloat:
		return formatFloatLabel(t.Width)
	case KindGeneralVar:
		return fmt.Sprintf("?%d", t.Tag)
	case KindIntegralVar:
		return fmt.Sprintf("?int%d", t.Tag)
	case KindReference:
		if t.Mutable {
			return "&mut " + labelDepth(in, t.Elem, depth+1)
		}
		return "&" + labelDepth(in, t.Elem, depth+1)
	case KindSlice:
		return "[" + labelDepth(in, t.Elem, depth+1) + "]"
	case KindArray:
		info, ok := in.ArrayInfo(id)
		if !ok {
			return "[?]"
		}
		if info.Length.Known {
			return fmt.Sprintf("[%s; %d]", labelDepth(in, info.Elem, depth+1), info.Length.Value)
		}
		return fmt.Sprintf("[%s; ?]", labelDepth(in, info.Elem, depth+1))
	case KindTuple:
		info, ok := in.TupleInfo(id)
		if !ok || len(info.Elems) == 0 {
			return "()"
		}
		out := "("
		for i, e := range info.Elems {
			if i > 0 {
				out += ", "
			}
			out += labelDepth(in, e, depth+1)
		}
		return out + ")"
	case KindFunction:
		info, ok := in.FunctionInfo(id)
		if !ok {
			return "function(?)"
		}
		out := "function("
		for i, p := range info.Params {
			if i > 0 {
				out += ", "
			}
			out += labelDepth(in, p, depth+1)
		}
		return out + ") -> " + labelDepth(in, info.Result, depth+1)
	case KindParameterized:
		info, ok := in.ParameterizedInfo(id)
		if !ok {
			return "<parameterized>"
		}
		out := "<"
		for i, p := range info.Params {
			if i > 0 {
				out += ", "
			}
			out += labelDepth(in, p, depth+1)
		}
		return out + "> " + labelDepth(in, info.Body, depth+1)
	case KindStructure:
		info, ok := in.StructureInfo(id)
		if !ok {
			return "<structure>"
		}
		return info.Name.View()
	case KindEnumeration:
		info, ok := in.EnumerationInfo(id)
		if !ok {
			return "<enumeration>"
		}
		return info.Name.View()
	default:
		return "<invalid>"
	}
}

func formatIntLabel(width Width, signed bool) string {
	prefix := "Int"
	if !signed {
		prefix = "UInt"
	}
	if width == WidthDefault {
		return prefix
	}
	return fmt.Sprintf("%s%d", prefix, width)
}

func formatFloatLabel(width Width) string {
	if width == WidthDefault {
		return "Float"
	}
	return fmt.Sprintf("Float%d", width)
}
