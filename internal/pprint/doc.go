// Package pprint holds the document fragments that diagnostics embed in
// their bodies. It is a deliberately small surface: text, concatenation,
// indentation, and hard line breaks.
package pprint

import "strings"

type docKind int

const (
	kindText docKind = iota
	kindConcat
	kindIndent
	kindHardBreak
)

// Doc is a displayable document fragment.
type Doc struct {
	kind  docKind
	text  string
	parts []Doc
}

// Text returns a document containing the literal string s. The string must
// not contain newlines; use HardBreak for line breaks.
func Text(s string) Doc {
	return Doc{kind: kindText, text: s}
}

// Concat joins the given documents in order.
func Concat(docs ...Doc) Doc {
	return Doc{kind: kindConcat, parts: docs}
}

// Indent renders the inner document one level (two spaces) deeper.
func Indent(d Doc) Doc {
	return Doc{kind: kindIndent, parts: []Doc{d}}
}

// HardBreak is an unconditional line break.
func HardBreak() Doc {
	return Doc{kind: kindHardBreak}
}

// Lines joins the given documents with hard breaks between them.
func Lines(docs ...Doc) Doc {
	joined := make([]Doc, 0, len(docs)*2)
	for i, d := range docs {
		if i > 0 {
			joined = append(joined, HardBreak())
		}
		joined = append(joined, d)
	}
	return Concat(joined...)
}

// String renders the document with two spaces per indentation level.
func (d Doc) String() string {
	var b strings.Builder
	d.render(&b, 0)
	return b.String()
}

// IsEmpty reports whether the document renders to the empty string.
func (d Doc) IsEmpty() bool {
	switch d.kind {
	case kindText:
		return d.text == ""
	case kindConcat, kindIndent:
		for _, p := range d.parts {
			if !p.IsEmpty() {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (d Doc) render(b *strings.Builder, indent int) {
	switch d.kind {
	case kindText:
		b.WriteString(d.text)
	case kindConcat:
		for _, p := range d.parts {
			p.render(b, indent)
		}
	case kindIndent:
		b.WriteString("  ")
		for _, p := range d.parts {
			p.render(b, indent+1)
		}
	case kindHardBreak:
		b.WriteByte('\n')
		for i := 0; i < indent; i++ {
			b.WriteString("  ")
		}
	}
}
