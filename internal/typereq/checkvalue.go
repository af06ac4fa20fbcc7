package typereq

import (
	"github.com/marl-lang/marl/internal/diag"
	"github.com/marl-lang/marl/internal/pprint"
	"github.com/marl-lang/marl/internal/runtime"
	"github.com/marl-lang/marl/internal/types"
)

// CheckValue dynamically checks that the given value fits the required
// type. This is the runtime half of the check: it runs when the static
// check had to defer because the type was not known. On failure the
// diagnostic's path pinpoints where inside a compound value the violation
// sits; on success there are no side effects.
func CheckValue(req TypeReq, at diag.Span, v runtime.Value) error {
	shape := req.ReqShape()
	if shape == nil {
		return nil
	}
	if d, failed := checkValue(shape, at, v); failed {
		return d
	}
	return nil
}

func checkValue(shape ReqType, at diag.Span, v runtime.Value) (diag.Diagnostic, bool) {
	switch s := shape.(type) {
	case *ReqAtom:
		switch s.Kind {
		case types.Null:
			if _, ok := v.(runtime.NullValue); ok {
				return diag.Diagnostic{}, false
			}
		case types.Bool:
			if _, ok := v.(runtime.BoolValue); ok {
				return diag.Diagnostic{}, false
			}
		case types.Int:
			if _, ok := v.(runtime.IntValue); ok {
				return diag.Diagnostic{}, false
			}
		case types.String:
			if _, ok := v.(runtime.StringValue); ok {
				return diag.Diagnostic{}, false
			}
		}

	case *ReqList:
		if elems, ok := v.(runtime.ListValue); ok {
			for i, elem := range elems {
				if d, failed := checkValue(s.Elem, at, elem); failed {
					return d.WithPathElement(diag.PathIndex(i)), true
				}
			}
			return diag.Diagnostic{}, false
		}

	case *ReqSet:
		if elems, ok := v.(runtime.SetValue); ok {
			for i, elem := range elems {
				if d, failed := checkValue(s.Elem, at, elem); failed {
					// Sets carry no semantic order, but an index
					// still localizes the nested error.
					return d.WithPathElement(diag.PathIndex(i)), true
				}
			}
			return diag.Diagnostic{}, false
		}

	case *ReqDict:
		if entries, ok := v.(runtime.DictValue); ok {
			for _, entry := range entries {
				key := diag.PathKey(runtime.Render(entry.Key))
				if d, failed := checkValue(s.Key, at, entry.Key); failed {
					return d.WithPathElement(key), true
				}
				if d, failed := checkValue(s.Value, at, entry.Value); failed {
					return d.WithPathElement(key), true
				}
			}
			return diag.Diagnostic{}, false
		}

	case *ReqFunc:
		if _, ok := v.(*runtime.BuiltinValue); ok {
			// Function values are not structurally checked at runtime
			// yet; they pass unchecked rather than failing spuriously.
			return diag.Diagnostic{}, false
		}

	default:
		panic("typereq: unknown ReqType variant")
	}

	d := diag.Error(at, diag.StageEval, diag.CodeValueMismatch, "Type mismatch.").
		WithBody(pprint.Concat(
			pprint.Text("Expected a value that fits this type:"),
			pprint.HardBreak(),
			pprint.HardBreak(),
			pprint.Indent(types.Format(shape.ToType())),
			pprint.HardBreak(),
			pprint.HardBreak(),
			pprint.Text("But got this value:"),
			pprint.HardBreak(),
			pprint.HardBreak(),
			pprint.Indent(runtime.Format(v)),
		))
	return d, true
}
