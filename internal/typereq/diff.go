package typereq

import "github.com/marl-lang/marl/internal/types"

// TypeDiff is the result of a static typecheck.
//
// A diff can represent type errors, nested type errors, no error, or a
// signal that the check could not be performed statically and needs to be
// deferred to runtime. Every consumer switches exhaustively over the
// variants; the default branches panic so a missed variant is a defect, not
// a silent fallthrough.
type TypeDiff interface {
	// IsTypeDiff is a marker method to ensure type safety.
	IsTypeDiff()
}

// DiffOk means no error: the actual type matches the expected type.
type DiffOk struct {
	Type types.Type
}

func (DiffOk) IsTypeDiff() {}

// DiffDefer means the check could not be performed statically, a runtime
// check is needed.
type DiffDefer struct {
	Type types.Type
}

func (DiffDefer) IsTypeDiff() {}

// DiffError is a static type mismatch that cannot be broken down further.
//
// Req records the originating requirement (the reason the type was
// expected), Shape the exact required shape at the failing position, and
// Actual the type that was encountered there.
type DiffError struct {
	Req    TypeReq
	Shape  ReqType
	Actual types.Type
}

func (DiffError) IsTypeDiff() {}

// DiffList is a type mismatch in the element type of a list.
type DiffList struct {
	Elem TypeDiff
}

func (DiffList) IsTypeDiff() {}

// DiffSet is a type mismatch in the element type of a set.
type DiffSet struct {
	Elem TypeDiff
}

func (DiffSet) IsTypeDiff() {}

// DiffDict is a type mismatch somewhere in the dict type. Both branch diffs
// are carried, even the non-failing one, so the renderer can show where in
// the pair the error is.
type DiffDict struct {
	Key   TypeDiff
	Value TypeDiff
}

func (DiffDict) IsTypeDiff() {}

// DiffFunc is a type mismatch somewhere in a function type.
type DiffFunc struct {
	Args   []TypeDiff
	Result TypeDiff
}

func (DiffFunc) IsTypeDiff() {}

// Typed is the outcome of a static typecheck surfaced to callers.
type Typed interface {
	// IsTyped is a marker method to ensure type safety.
	IsTyped()
}

// TypedType means the type is known statically, and this is the most
// specific type we infer.
type TypedType struct {
	Type types.Type
}

func (TypedType) IsTyped() {}

// TypedDefer means the check could not be performed statically and a runtime
// check is needed. If the runtime check passes, the value fits the carried
// type.
type TypedDefer struct {
	Type types.Type
}

func (TypedDefer) IsTyped() {}
