package typereq

import (
	"fmt"

	"github.com/marl-lang/marl/internal/diag"
	"github.com/marl-lang/marl/internal/types"
)

// argCompat decides whether an actual function argument type is compatible
// with the required argument type. To be properly generic the arguments
// would have to be contravariant: the requirement has to be a subtype of the
// actual argument, not the other way around. We have no way to express that
// yet, so the default is strict equality of the projected shapes. That may
// reject some correct programs but it cannot wrongly accept one. The rule is
// a package variable so it can be replaced in one place later without
// touching the call sites.
var argCompat = func(required ReqType, actual types.Type) bool {
	return types.Equal(required.ToType(), actual)
}

// checkShape statically checks that the actual type satisfies the shape.
// req is the originating requirement; it travels through the recursion
// unchanged so nested errors keep the reason the type was expected. The
// function is total and deterministic.
func checkShape(req TypeReq, shape ReqType, actual types.Type) TypeDiff {
	// If there is some requirement but we don't know the type, the check
	// has to be deferred to runtime.
	if _, ok := actual.(*types.Dynamic); ok {
		return DiffDefer{Type: shape.ToType()}
	}

	switch s := shape.(type) {
	case *ReqAtom:
		if a, ok := actual.(*types.Atom); ok && a.Kind == s.Kind {
			return DiffOk{Type: actual}
		}

	case *ReqList:
		if l, ok := actual.(*types.List); ok {
			switch elem := checkShape(req, s.Elem, l.Elem).(type) {
			case DiffOk:
				return DiffOk{Type: actual}
			case DiffDefer:
				return DiffDefer{Type: &types.List{Elem: elem.Type}}
			default:
				return DiffList{Elem: elem}
			}
		}

	case *ReqSet:
		if st, ok := actual.(*types.Set); ok {
			switch elem := checkShape(req, s.Elem, st.Elem).(type) {
			case DiffOk:
				return DiffOk{Type: actual}
			case DiffDefer:
				return DiffDefer{Type: &types.Set{Elem: elem.Type}}
			default:
				return DiffSet{Elem: elem}
			}
		}

	case *ReqDict:
		if d, ok := actual.(*types.Dict); ok {
			kDiff := checkShape(req, s.Key, d.Key)
			vDiff := checkShape(req, s.Value, d.Value)
			kType, kOk := resolvedType(kDiff)
			vType, vOk := resolvedType(vDiff)
			switch {
			case isOk(kDiff) && isOk(vDiff):
				return DiffOk{Type: actual}
			case kOk && vOk:
				// Neither branch is an outright mismatch, but at
				// least one is deferred, so the whole dict is.
				return DiffDefer{Type: &types.Dict{Key: kType, Value: vType}}
			default:
				return DiffDict{Key: kDiff, Value: vDiff}
			}
		}

	case *ReqFunc:
		if f, ok := actual.(*types.Func); ok {
			if len(s.Args) != len(f.Args) {
				// An argument count mismatch cannot be broken down
				// further, and it can never be fixed at runtime.
				return DiffError{Req: req, Shape: shape, Actual: actual}
			}

			argDiffs := make([]TypeDiff, len(s.Args))
			argsOk := true
			for i, argReq := range s.Args {
				if argCompat(argReq, f.Args[i]) {
					argDiffs[i] = DiffOk{Type: f.Args[i]}
				} else {
					argDiffs[i] = DiffError{Req: req, Shape: argReq, Actual: f.Args[i]}
					argsOk = false
				}
			}

			result := checkShape(req, s.Result, f.Result)
			if argsOk {
				switch res := result.(type) {
				case DiffOk:
					return DiffOk{Type: actual}
				case DiffDefer:
					return DiffDefer{Type: &types.Func{Args: f.Args, Result: res.Type}}
				}
			}
			return DiffFunc{Args: argDiffs, Result: result}
		}

	default:
		panic("typereq: unknown ReqType variant")
	}

	// Nothing matched, so this is a type error.
	return DiffError{Req: req, Shape: shape, Actual: actual}
}

func isOk(d TypeDiff) bool {
	_, ok := d.(DiffOk)
	return ok
}

// resolvedType extracts the concrete type a branch resolved to, when the
// branch is Ok or Defer.
func resolvedType(d TypeDiff) (types.Type, bool) {
	switch t := d.(type) {
	case DiffOk:
		return t.Type, true
	case DiffDefer:
		return t.Type, true
	default:
		return nil, false
	}
}

// checkTypeImpl statically checks that the given type satisfies the
// requirement, producing the raw diff.
func checkTypeImpl(req TypeReq, actual types.Type) TypeDiff {
	shape := req.ReqShape()
	if shape == nil {
		return DiffOk{Type: actual}
	}
	return checkShape(req, shape, actual)
}

// addContext explains why the type error is caused, keyed on the reason the
// requirement exists. It must only be called for requirements that can
// produce errors; reaching it with no requirement is a defect in the caller.
func addContext(req TypeReq, d diag.Diagnostic) diag.Diagnostic {
	switch r := req.(type) {
	case ReqNone:
		panic("typereq: if no type was expected, it wouldn't cause an error")
	case ReqAnnotation:
		return d.WithNote(r.At, "The expected type is specified here.")
	case ReqCondition:
		return d.WithHelp("There is no implicit conversion, conditions must be boolean.")
	case ReqOperator:
		t := r.Shape.ToType()
		if !types.IsAtom(t) {
			panic("typereq: we don't have operators with non-atomic types")
		}
		return d.WithNote(r.At, fmt.Sprintf("Expected %s due to this operator.", t))
	case ReqIndexList:
		return d.WithHelp("List indices must be integers.")
	default:
		panic("typereq: unknown TypeReq variant")
	}
}

// Check statically checks that the given type satisfies the requirement.
// The span anchors any reported mismatch at the expression being checked.
// It returns either the resolved outcome or a single diagnostic; there is no
// partial success.
func Check(req TypeReq, at diag.Span, actual types.Type) (Typed, error) {
	switch diff := checkTypeImpl(req, actual).(type) {
	case DiffOk:
		return TypedType{Type: diff.Type}, nil
	case DiffDefer:
		return TypedDefer{Type: diff.Type}, nil
	case DiffError:
		// A top-level type error, reported with a simple message.
		d := diag.Error(at, diag.StageTypeCheck, diag.CodeTypeMismatch, "Type mismatch.").
			WithBody(types.ReportMismatch(ToType(diff.Req), diff.Actual))
		return nil, addContext(req, d)
	case DiffList, DiffSet, DiffDict, DiffFunc:
		// The error is nested somewhere inside a type. Render the full
		// required type and point out each failing position.
		d := diag.Error(at, diag.StageTypeCheck, diag.CodeTypeMismatchInType, "Type mismatch inside type.").
			WithBody(renderNestedDiff(req.ReqShape(), diff))
		return nil, addContext(req, d)
	default:
		panic("typereq: unknown TypeDiff variant")
	}
}
