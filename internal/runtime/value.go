// Package runtime defines the values that marl evaluation produces. The
// typechecker consumes them only for structural matching during deferred
// runtime checks.
package runtime

// Value represents a runtime value.
type Value interface {
	// IsValue is a marker method to ensure value safety.
	IsValue()
}

// NullValue is the null value.
type NullValue struct{}

func (NullValue) IsValue() {}

// Null is the shared null instance.
var Null = NullValue{}

// BoolValue is a boolean value.
type BoolValue bool

func (BoolValue) IsValue() {}

// IntValue is an integer value.
type IntValue int64

func (IntValue) IsValue() {}

// StringValue is a string value.
type StringValue string

func (StringValue) IsValue() {}

// ListValue is an ordered sequence of values.
type ListValue []Value

func (ListValue) IsValue() {}

// SetValue holds the elements of a set. The element order carries no
// semantic meaning; it is whatever order the elements were produced in.
type SetValue []Value

func (SetValue) IsValue() {}

// Entry is a single dictionary key-value pair.
type Entry struct {
	Key   Value
	Value Value
}

// DictValue is a dictionary, stored as a sequence of entries so the document
// order is preserved.
type DictValue []Entry

func (DictValue) IsValue() {}

// BuiltinValue is a function implemented by the toolchain itself. The
// declared type of a builtin lives in the stdlib registry.
type BuiltinValue struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (*BuiltinValue) IsValue() {}
