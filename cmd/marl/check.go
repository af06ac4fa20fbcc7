package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/marl-lang/marl/internal/diag"
	"github.com/marl-lang/marl/internal/runtime"
	"github.com/marl-lang/marl/internal/typeparse"
	"github.com/marl-lang/marl/internal/typereq"
	"github.com/marl-lang/marl/internal/types"
)

const typeSourceName = "<type>"

func runCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	typeExpr := fs.String("type", "", "type expression the document must satisfy")
	format := fs.String("format", "", "document format: json or yaml (default: by file extension)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: marl check -type <type> [-format json|yaml] <file>\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if *typeExpr == "" || fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	filename := fs.Arg(0)

	formatter := diag.NewFormatter()
	formatter.SetSource(typeSourceName, *typeExpr)

	req, err := typeparse.Parse(typeSourceName, *typeExpr)
	if err != nil {
		reportError(formatter, err)
		os.Exit(1)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marl: %v\n", err)
		os.Exit(1)
	}

	value, err := decodeDocument(filename, *format, data)
	if err != nil {
		formatter.Format(diag.Diagnostic{
			Stage:    diag.StageEval,
			Severity: diag.SeverityError,
			Code:     diag.CodeDecodeError,
			Message:  fmt.Sprintf("Cannot decode %s: %v.", filename, err),
		})
		os.Exit(1)
	}

	if err := checkDocument(req, value); err != nil {
		reportError(formatter, err)
		os.Exit(1)
	}

	fmt.Printf("ok: %s satisfies %s\n", filename, *typeExpr)
}

// checkDocument runs the two-phase check: the static phase first, then the
// runtime phase when the static phase had to defer. The document's type is
// never known statically, so a concrete requirement always defers.
func checkDocument(req typereq.TypeReq, value runtime.Value) error {
	at := requirementSpan(req)
	outcome, err := typereq.Check(req, at, types.TypeDynamic)
	if err != nil {
		return err
	}
	switch outcome.(type) {
	case typereq.TypedType:
		return nil
	case typereq.TypedDefer:
		return typereq.CheckValue(req, at, value)
	default:
		panic("marl: unknown Typed variant")
	}
}

// requirementSpan anchors diagnostics at the type expression when there is
// one.
func requirementSpan(req typereq.TypeReq) diag.Span {
	if ann, ok := req.(typereq.ReqAnnotation); ok {
		return ann.At
	}
	return diag.Span{}
}

func decodeDocument(filename, format string, data []byte) (runtime.Value, error) {
	switch format {
	case "json":
		return runtime.DecodeJSON(data)
	case "yaml":
		return runtime.DecodeYAML(data)
	case "":
		if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
			return runtime.DecodeYAML(data)
		}
		return runtime.DecodeJSON(data)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func reportError(formatter *diag.Formatter, err error) {
	if d, ok := err.(diag.Diagnostic); ok {
		formatter.Format(d)
		return
	}
	fmt.Fprintf(os.Stderr, "marl: %v\n", err)
}
