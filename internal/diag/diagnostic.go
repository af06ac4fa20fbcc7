package diag

import (
	"fmt"
	"strings"

	"github.com/marl-lang/marl/internal/pprint"
)

// Stage identifies which toolchain phase produced the diagnostic.
type Stage string

const (
	StageParse     Stage = "parse"
	StageTypeCheck Stage = "typecheck"
	StageEval      Stage = "eval"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Type expression parser errors
	CodeParseIllegalRune     Code = "PARSE_ILLEGAL_RUNE"
	CodeParseUnexpectedToken Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseTrailingInput   Code = "PARSE_TRAILING_INPUT"

	// Type checker errors
	CodeTypeMismatch       Code = "TYPE_MISMATCH"
	CodeTypeMismatchInType Code = "TYPE_MISMATCH_IN_TYPE"
	CodeValueMismatch      Code = "VALUE_MISMATCH"

	// Document decoding errors
	CodeDecodeError Code = "DECODE_ERROR"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Note is an auxiliary remark, optionally anchored at a second source location.
type Note struct {
	Span Span // Zero value means the note has no location.
	Text string
}

// PathElement localizes a failure inside a compound value: either a list
// index or a rendered dictionary key.
type PathElement struct {
	key   string
	index int
	isKey bool
}

// PathIndex returns a path element for the list or set element at index i.
func PathIndex(i int) PathElement {
	return PathElement{index: i}
}

// PathKey returns a path element for the dictionary entry under the rendered
// key k.
func PathKey(k string) PathElement {
	return PathElement{key: k, isKey: true}
}

func (e PathElement) String() string {
	if e.isKey {
		return "[" + e.key + "]"
	}
	return fmt.Sprintf("[%d]", e.index)
}

// Diagnostic is a toolchain diagnostic surfaced to end-users. It implements
// error so checks can return it through ordinary error channels.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span       // Primary location the diagnostic points at.
	Body     pprint.Doc // Optional rendered body (e.g. expected vs. actual).
	Notes    []Note
	Help     string
	// Path localizes the failure inside a compound value. Elements are
	// accumulated innermost-first as the error propagates outward; render
	// in reverse for a root-to-leaf path.
	Path []PathElement
}

// Error makes Diagnostic usable as an error value.
func (d Diagnostic) Error() string {
	if p := d.PathString(); p != "" {
		return fmt.Sprintf("%s: at %s in value path %s", d.Message, d.Span.String(), p)
	}
	return fmt.Sprintf("%s: at %s", d.Message, d.Span.String())
}

// PathString renders the accumulated value path root-to-leaf, or "" when the
// failure is not inside a compound value.
func (d Diagnostic) PathString() string {
	if len(d.Path) == 0 {
		return ""
	}
	var b strings.Builder
	for i := len(d.Path) - 1; i >= 0; i-- {
		b.WriteString(d.Path[i].String())
	}
	return b.String()
}

// WithBody returns a new diagnostic with the given body document.
func (d Diagnostic) WithBody(body pprint.Doc) Diagnostic {
	d.Body = body
	return d
}

// WithNote adds a note anchored at the given span.
func (d Diagnostic) WithNote(span Span, text string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: span, Text: text})
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// WithPathElement records that the failure sits inside the compound value
// element identified by elem. Innermost elements are added first.
func (d Diagnostic) WithPathElement(elem PathElement) Diagnostic {
	d.Path = append(d.Path, elem)
	return d
}

// Error constructs an error-severity diagnostic anchored at the span.
func Error(at Span, stage Stage, code Code, message string) Diagnostic {
	return Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Span:     at,
	}
}
