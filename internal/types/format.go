package types

import "github.com/marl-lang/marl/internal/pprint"

// Format renders a type as a document for embedding in diagnostic bodies.
func Format(t Type) pprint.Doc {
	return pprint.Text(t.String())
}

// ReportMismatch builds the two-part body of a type mismatch diagnostic:
// the expected type, then the conflicting actual type.
func ReportMismatch(expected, actual Type) pprint.Doc {
	return pprint.Concat(
		pprint.Text("Expected this type:"),
		pprint.HardBreak(),
		pprint.HardBreak(),
		pprint.Indent(Format(expected)),
		pprint.HardBreak(),
		pprint.HardBreak(),
		pprint.Text("But got this type:"),
		pprint.HardBreak(),
		pprint.HardBreak(),
		pprint.Indent(Format(actual)),
	)
}
