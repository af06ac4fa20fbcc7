package typeparse

import (
	"strings"
	"testing"

	"github.com/marl-lang/marl/internal/diag"
	"github.com/marl-lang/marl/internal/typereq"
)

func parseShape(t *testing.T, src string) typereq.ReqType {
	t.Helper()
	req, err := Parse("test.marl", src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	ann, ok := req.(typereq.ReqAnnotation)
	if !ok {
		t.Fatalf("parse %q: expected an annotation requirement, got %T", src, req)
	}
	return ann.Shape
}

func TestParse_RoundTripsThroughProjection(t *testing.T) {
	// The projected type of the parsed requirement renders back to the
	// normalized form of the input.
	cases := []struct {
		input string
		want  string
	}{
		{"Int", "Int"},
		{"Null", "Null"},
		{" Bool ", "Bool"},
		{"List[Int]", "List[Int]"},
		{"Set[List[String]]", "Set[List[String]]"},
		{"Dict[String,Int]", "Dict[String, Int]"},
		{"Dict[String, List[Int]]", "Dict[String, List[Int]]"},
		{"() -> Null", "() -> Null"},
		{"(Int) -> Bool", "(Int) -> Bool"},
		{"(Int,String)->Bool", "(Int, String) -> Bool"},
		{"(List[Int]) -> Dict[String, Bool]", "(List[Int]) -> Dict[String, Bool]"},
	}
	for _, c := range cases {
		shape := parseShape(t, c.input)
		if got := shape.ToType().String(); got != c.want {
			t.Errorf("parse %q: expected %s, got %s", c.input, c.want, got)
		}
	}
}

func TestParse_TopLevelAnyIsNoRequirement(t *testing.T) {
	req, err := Parse("test.marl", "Any")
	if err != nil {
		t.Fatalf("parse Any: %v", err)
	}
	if _, ok := req.(typereq.ReqNone); !ok {
		t.Errorf("a bare Any is no requirement at all, got %T", req)
	}
}

func TestParse_NestedAnyIsRejected(t *testing.T) {
	for _, src := range []string{"List[Any]", "Dict[Any, Int]", "(Any) -> Int"} {
		_, err := Parse("test.marl", src)
		if err == nil {
			t.Errorf("parse %q: nested Any must be rejected", src)
			continue
		}
		d := err.(diag.Diagnostic)
		if !strings.Contains(d.Message, "Any") {
			t.Errorf("parse %q: the error should name Any, got %q", src, d.Message)
		}
	}
}

func TestParse_AnnotationSpanCoversExpression(t *testing.T) {
	req, err := Parse("test.marl", "Dict[String, Int]")
	if err != nil {
		t.Fatal(err)
	}
	ann := req.(typereq.ReqAnnotation)
	if ann.At.Filename != "test.marl" {
		t.Errorf("expected filename test.marl, got %q", ann.At.Filename)
	}
	if ann.At.Start != 0 || ann.At.End != len("Dict[String, Int]") {
		t.Errorf("expected span over the whole expression, got %d..%d", ann.At.Start, ann.At.End)
	}
	if ann.At.Line != 1 || ann.At.Column != 1 {
		t.Errorf("expected position 1:1, got %d:%d", ann.At.Line, ann.At.Column)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		input string
		code  diag.Code
	}{
		{"", diag.CodeParseUnexpectedToken},
		{"Float", diag.CodeParseUnexpectedToken},
		{"List", diag.CodeParseUnexpectedToken},
		{"List[Int", diag.CodeParseUnexpectedToken},
		{"Dict[Int]", diag.CodeParseUnexpectedToken},
		{"(Int) Bool", diag.CodeParseUnexpectedToken},
		{"Int Int", diag.CodeParseTrailingInput},
		{"Int]", diag.CodeParseTrailingInput},
		{"Li$t", diag.CodeParseUnexpectedToken}, // "Li" is an unknown type
		{"$", diag.CodeParseIllegalRune},
	}
	for _, c := range cases {
		_, err := Parse("test.marl", c.input)
		if err == nil {
			t.Errorf("parse %q: expected an error", c.input)
			continue
		}
		d, ok := err.(diag.Diagnostic)
		if !ok {
			t.Errorf("parse %q: expected a diagnostic, got %T", c.input, err)
			continue
		}
		if d.Code != c.code {
			t.Errorf("parse %q: expected code %s, got %s (%s)", c.input, c.code, d.Code, d.Message)
		}
		if d.Stage != diag.StageParse {
			t.Errorf("parse %q: expected the parse stage, got %s", c.input, d.Stage)
		}
	}
}

func TestLexer_Tokens(t *testing.T) {
	toks := NewLexer("test.marl", "Dict[String, Int] -> ()").Tokens()
	want := []TokenType{IDENT, LBRACKET, IDENT, COMMA, IDENT, RBRACKET, ARROW, LPAREN, RPAREN, EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("token %d: expected %s, got %s (%q)", i, want[i], tok.Type, tok.Raw)
		}
	}
	if toks[2].Raw != "String" {
		t.Errorf("expected raw String, got %q", toks[2].Raw)
	}
	if toks[2].Span.Column != 6 {
		t.Errorf("expected String at column 6, got %d", toks[2].Span.Column)
	}
}

func TestLexer_TracksLines(t *testing.T) {
	toks := NewLexer("test.marl", "List[\n  Int\n]").Tokens()
	// List [ Int ] EOF
	if toks[2].Span.Line != 2 || toks[2].Span.Column != 3 {
		t.Errorf("expected Int at 2:3, got %d:%d", toks[2].Span.Line, toks[2].Span.Column)
	}
	if toks[3].Span.Line != 3 {
		t.Errorf("expected ] on line 3, got %d", toks[3].Span.Line)
	}
}
