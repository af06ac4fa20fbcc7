package typereq

import (
	"fmt"
	"strings"

	"github.com/marl-lang/marl/internal/pprint"
	"github.com/marl-lang/marl/internal/types"
)

// nestedLeaf is one irreducible mismatch inside a compound type, together
// with the chain of positions that leads to it from the top of the required
// type.
type nestedLeaf struct {
	positions []string
	shape     ReqType
	actual    types.Type
}

// collectLeaves walks a nested diff and gathers every irreducible mismatch.
// Ok and Defer branches are skipped; they are only present because dict and
// function diffs carry all their branches.
func collectLeaves(diff TypeDiff, positions []string, out *[]nestedLeaf) {
	switch d := diff.(type) {
	case DiffOk, DiffDefer:
		// Not a failure, nothing to report.
	case DiffError:
		leaf := nestedLeaf{
			positions: append([]string(nil), positions...),
			shape:     d.Shape,
			actual:    d.Actual,
		}
		*out = append(*out, leaf)
	case DiffList:
		collectLeaves(d.Elem, append(positions, "the element type of the list"), out)
	case DiffSet:
		collectLeaves(d.Elem, append(positions, "the element type of the set"), out)
	case DiffDict:
		collectLeaves(d.Key, append(positions, "the key type of the dict"), out)
		collectLeaves(d.Value, append(positions, "the value type of the dict"), out)
	case DiffFunc:
		for i, arg := range d.Args {
			collectLeaves(arg, append(positions, fmt.Sprintf("argument %d", i+1)), out)
		}
		collectLeaves(d.Result, append(positions, "the result type of the function"), out)
	default:
		panic("typereq: unknown TypeDiff variant")
	}
}

// renderNestedDiff builds the body of a mismatch that sits somewhere inside
// a compound type: the full required type first, then one line per failing
// position.
func renderNestedDiff(shape ReqType, diff TypeDiff) pprint.Doc {
	var leaves []nestedLeaf
	collectLeaves(diff, nil, &leaves)

	parts := []pprint.Doc{
		pprint.Text("Expected this type:"),
		pprint.HardBreak(),
		pprint.HardBreak(),
		pprint.Indent(types.Format(shape.ToType())),
		pprint.HardBreak(),
		pprint.HardBreak(),
		pprint.Text("But the actual type does not match:"),
	}
	for _, leaf := range leaves {
		line := fmt.Sprintf(
			"in %s: expected %s, but found %s",
			strings.Join(leaf.positions, ", in "),
			leaf.shape.ToType(),
			leaf.actual,
		)
		parts = append(parts,
			pprint.HardBreak(),
			pprint.HardBreak(),
			pprint.Indent(pprint.Text(line)),
		)
	}
	return pprint.Concat(parts...)
}
