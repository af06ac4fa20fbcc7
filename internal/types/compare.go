package types

import "strings"

// Tag ranks give every variant a fixed position in the total order. The
// order is variant-tag-first, then field-by-field, so types sort
// deterministically in ordered containers.
func tagRank(t Type) int {
	switch t.(type) {
	case *Atom:
		return 0
	case *Dynamic:
		return 1
	case *List:
		return 2
	case *Set:
		return 3
	case *Dict:
		return 4
	case *Func:
		return 5
	default:
		panic("types: unknown Type variant")
	}
}

// Compare imposes a total order over types. It returns a negative number
// when a sorts before b, zero when the two are structurally equal, and a
// positive number otherwise.
func Compare(a, b Type) int {
	if ra, rb := tagRank(a), tagRank(b); ra != rb {
		return ra - rb
	}
	switch at := a.(type) {
	case *Atom:
		return strings.Compare(string(at.Kind), string(b.(*Atom).Kind))
	case *Dynamic:
		return 0
	case *List:
		return Compare(at.Elem, b.(*List).Elem)
	case *Set:
		return Compare(at.Elem, b.(*Set).Elem)
	case *Dict:
		bd := b.(*Dict)
		if c := Compare(at.Key, bd.Key); c != 0 {
			return c
		}
		return Compare(at.Value, bd.Value)
	case *Func:
		bf := b.(*Func)
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
		panic("types: unknown Type variant")
	}
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Type) bool {
	return Compare(a, b) == 0
}
