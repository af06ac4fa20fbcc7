// Package typereq implements type requirements, a central building block of
// typechecking.
//
// A types.Type is a type that the typechecker inferred. A TypeReq is a
// requirement that the typechecker needs to fulfill. Type requirements
// correspond to types, but carry additional context about why that type was
// expected in a particular location (because it was part of a type annotation
// at this span, or because conditions should be booleans). Requirements can
// be fulfilled by subtypes of the required type.
package typereq

import (
	"strings"

	"github.com/marl-lang/marl/internal/diag"
	"github.com/marl-lang/marl/internal/types"
)

// ReqType is a type that can occur in type requirements. Unlike types.Type
// it never contains Dynamic: requirements are always fully concrete.
type ReqType interface {
	// ToType returns the type of a value when this requirement is
	// satisfied. It does a deep traversal of the requirement.
	ToType() types.Type
	// IsReqType is a marker method to ensure type safety.
	IsReqType()
}

// ReqAtom requires one of the atomic types.
type ReqAtom struct {
	Kind types.AtomKind
}

func (r *ReqAtom) ToType() types.Type {
	switch r.Kind {
	case types.Null:
		return types.TypeNull
	case types.Bool:
		return types.TypeBool
	case types.Int:
		return types.TypeInt
	case types.String:
		return types.TypeString
	default:
		panic("typereq: unknown atom kind")
	}
}
func (r *ReqAtom) IsReqType() {}

// Common atom requirement instances
var (
	ReqNull   = &ReqAtom{Kind: types.Null}
	ReqBool   = &ReqAtom{Kind: types.Bool}
	ReqInt    = &ReqAtom{Kind: types.Int}
	ReqString = &ReqAtom{Kind: types.String}
)

// ReqList requires a list whose elements satisfy the element requirement.
type ReqList struct {
	Elem ReqType
}

func (r *ReqList) ToType() types.Type { return &types.List{Elem: r.Elem.ToType()} }
func (r *ReqList) IsReqType()         {}

// ReqSet requires a set whose elements satisfy the element requirement.
type ReqSet struct {
	Elem ReqType
}

func (r *ReqSet) ToType() types.Type { return &types.Set{Elem: r.Elem.ToType()} }
func (r *ReqSet) IsReqType()         {}

// ReqDict holds the type parameter requirements for the Dict type.
type ReqDict struct {
	Key   ReqType
	Value ReqType
}

func (r *ReqDict) ToType() types.Type {
	return &types.Dict{Key: r.Key.ToType(), Value: r.Value.ToType()}
}
func (r *ReqDict) IsReqType() {}

// ReqFunc is a function type requirement.
type ReqFunc struct {
	Args   []ReqType
	Result ReqType
}

func (r *ReqFunc) ToType() types.Type {
	args := make([]types.Type, len(r.Args))
	for i, arg := range r.Args {
		args[i] = arg.ToType()
	}
	return &types.Func{Args: args, Result: r.Result.ToType()}
}
func (r *ReqFunc) IsReqType() {}

// TypeReq is a type requirement: either no requirement at all, or a required
// shape tagged with the reason it is required.
type TypeReq interface {
	// ReqShape returns the shape required by this requirement, or nil when
	// anything is acceptable.
	ReqShape() ReqType
	// IsTypeReq is a marker method to ensure type safety.
	IsTypeReq()
}

// ReqNone means there is no requirement on the type, any value is allowed.
type ReqNone struct{}

func (ReqNone) ReqShape() ReqType { return nil }
func (ReqNone) IsTypeReq()        {}

// None is the shared no-requirement instance.
var None = ReqNone{}

// ReqAnnotation is a type required due to a type annotation.
type ReqAnnotation struct {
	At    diag.Span
	Shape ReqType
}

func (r ReqAnnotation) ReqShape() ReqType { return r.Shape }
func (r ReqAnnotation) IsTypeReq()        {}

// ReqCondition requires a boolean because the expression is used as a
// condition.
type ReqCondition struct{}

func (ReqCondition) ReqShape() ReqType { return ReqBool }
func (ReqCondition) IsTypeReq()        {}

// ReqOperator is a type required due to an operator.
type ReqOperator struct {
	At    diag.Span
	Shape ReqType
}

func (r ReqOperator) ReqShape() ReqType { return r.Shape }
func (r ReqOperator) IsTypeReq()        {}

// ReqIndexList requires an integer because it is used to index into a list.
type ReqIndexList struct{}

func (ReqIndexList) ReqShape() ReqType { return ReqInt }
func (ReqIndexList) IsTypeReq()        {}

// ToType returns the most precise type that describes any value that
// satisfies the requirement.
func ToType(req TypeReq) types.Type {
	shape := req.ReqShape()
	if shape == nil {
		return types.TypeDynamic
	}
	return shape.ToType()
}

// Shape ordering, variant-tag-first then field-by-field. It exists to give
// requirements a deterministic placement in ordered containers.
func shapeRank(r ReqType) int {
	switch r.(type) {
	case *ReqAtom:
		return 0
	case *ReqList:
		return 1
	case *ReqSet:
		return 2
	case *ReqDict:
		return 3
	case *ReqFunc:
		return 4
	default:
		panic("typereq: unknown ReqType variant")
	}
}

// Compare imposes a total order over requirement shapes. It returns a
// negative number when a sorts before b, zero when the two are structurally
// equal, and a positive number otherwise.
func Compare(a, b ReqType) int {
	if ra, rb := shapeRank(a), shapeRank(b); ra != rb {
		return ra - rb
	}
	switch at := a.(type) {
	case *ReqAtom:
		return strings.Compare(string(at.Kind), string(b.(*ReqAtom).Kind))
	case *ReqList:
		return Compare(at.Elem, b.(*ReqList).Elem)
	case *ReqSet:
		return Compare(at.Elem, b.(*ReqSet).Elem)
	case *ReqDict:
		bd := b.(*ReqDict)
		if c := Compare(at.Key, bd.Key); c != 0 {
			return c
		}
		return Compare(at.Value, bd.Value)
	case *ReqFunc:
		bf := b.(*ReqFunc)
		if c := len(at.Args) - len(bf.Args); c != 0 {
			return c
		}
		for i := range at.Args {
			if c := Compare(at.Args[i], bf.Args[i]); c != 0 {
				return c
			}
		}
		return Compare(at.Result, bf.Result)
	default:
		panic("typereq: unknown ReqType variant")
	}
}
