package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter formats diagnostics in a Rust-style format with source code
// snippets.
type Formatter struct {
	out         io.Writer
	sourceCache map[string]string // Cache of source files by filename.
}

// NewFormatter creates a new diagnostic formatter writing to stderr.
func NewFormatter() *Formatter {
	return NewFormatterTo(os.Stderr)
}

// NewFormatterTo creates a formatter writing to the given writer.
func NewFormatterTo(out io.Writer) *Formatter {
	return &Formatter{
		out:         out,
		sourceCache: make(map[string]string),
	}
}

// SetSource pre-populates the source cache, for inputs that never touch the
// filesystem (REPL lines, command-line type expressions).
func (f *Formatter) SetSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format formats and prints a diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)
	f.printSnippet(d.Span, "")
	if p := d.PathString(); p != "" {
		fmt.Fprintf(f.out, "  inside value at %s\n", p)
	}
	if !d.Body.IsEmpty() {
		fmt.Fprintf(f.out, "\n")
		for _, line := range strings.Split(d.Body.String(), "\n") {
			fmt.Fprintf(f.out, "  %s\n", line)
		}
	}
	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "\n  = note: %s\n", note.Text)
		f.printSnippet(note.Span, "  ")
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "\nhelp: %s\n", d.Help)
	}
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}
	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
}

// printSnippet prints the source line the span points at, with a caret
// underline. Falls back to just the location when the source is unavailable.
func (f *Formatter) printSnippet(span Span, indent string) {
	if !span.IsValid() {
		return
	}
	src, err := f.LoadSource(span.Filename)
	if err != nil || src == "" {
		fmt.Fprintf(f.out, "%s  --> %s\n", indent, span.String())
		return
	}
	lines := strings.Split(src, "\n")
	if span.Line > len(lines) {
		fmt.Fprintf(f.out, "%s  --> %s\n", indent, span.String())
		return
	}
	lineContent := lines[span.Line-1]
	lineNum := fmt.Sprintf("%d", span.Line)
	pad := strings.Repeat(" ", len(lineNum))

	fmt.Fprintf(f.out, "%s  --> %s\n", indent, span.String())
	fmt.Fprintf(f.out, "%s   %s |\n", indent, pad)
	fmt.Fprintf(f.out, "%s   %s | %s\n", indent, lineNum, lineContent)
	fmt.Fprintf(f.out, "%s   %s | %s\n", indent, pad, underline(lineContent, span))
	fmt.Fprintf(f.out, "%s   %s |\n", indent, pad)
}

// underline builds the caret marker line for a span within lineContent.
func underline(lineContent string, span Span) string {
	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	start := span.Column - 1
	if start < 0 {
		start = 0
	}
	if start > len(lineContent) {
		start = len(lineContent)
	}
	if start+width > len(lineContent)+1 {
		width = len(lineContent) + 1 - start
		if width < 1 {
			width = 1
		}
	}
	return strings.Repeat(" ", start) + strings.Repeat("^", width)
}
