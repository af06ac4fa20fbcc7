// Package types defines the types that the marl typechecker infers for
// expressions, including the Any marker for types that are only known at
// runtime.
package types

import "strings"

// Type represents a type in the marl type system.
type Type interface {
	String() string
	// IsType is a marker method to ensure type safety.
	IsType()
}

// AtomKind represents the kind of an atomic type.
type AtomKind string

const (
	Null   AtomKind = "Null"
	Bool   AtomKind = "Bool"
	Int    AtomKind = "Int"
	String AtomKind = "String"
)

// Atom represents an atomic type.
type Atom struct {
	Kind AtomKind
}

func (a *Atom) String() string { return string(a.Kind) }
func (a *Atom) IsType()        {}

// Common atom instances
var (
	TypeNull   = &Atom{Kind: Null}
	TypeBool   = &Atom{Kind: Bool}
	TypeInt    = &Atom{Kind: Int}
	TypeString = &Atom{Kind: String}
)

// Dynamic is the type of expressions whose type is not known statically.
// A check against Dynamic cannot be decided at typecheck time and has to be
// deferred to runtime.
type Dynamic struct{}

func (d *Dynamic) String() string { return "Any" }
func (d *Dynamic) IsType()        {}

// TypeDynamic is the shared Dynamic instance.
var TypeDynamic = &Dynamic{}

// List represents the type of lists with the given element type.
type List struct {
	Elem Type
}

func (l *List) String() string { return "List[" + l.Elem.String() + "]" }
func (l *List) IsType()        {}

// Set represents the type of sets with the given element type.
type Set struct {
	Elem Type
}

func (s *Set) String() string { return "Set[" + s.Elem.String() + "]" }
func (s *Set) IsType()        {}

// Dict represents the type of dictionaries with the given key and value
// types.
type Dict struct {
	Key   Type
	Value Type
}

func (d *Dict) String() string {
	return "Dict[" + d.Key.String() + ", " + d.Value.String() + "]"
}
func (d *Dict) IsType() {}

// Func represents a function type.
type Func struct {
	Args   []Type
	Result Type
}

func (f *Func) String() string {
	var args []string
	for _, a := range f.Args {
		args = append(args, a.String())
	}
	return "(" + strings.Join(args, ", ") + ") -> " + f.Result.String()
}
func (f *Func) IsType() {}

// IsAtom reports whether t is one of the atomic types.
func IsAtom(t Type) bool {
	_, ok := t.(*Atom)
	return ok
}
