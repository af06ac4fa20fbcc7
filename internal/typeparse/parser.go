package typeparse

import (
	"fmt"

	"github.com/marl-lang/marl/internal/diag"
	"github.com/marl-lang/marl/internal/typereq"
)

// Parser parses a type expression from a token stream.
type Parser struct {
	toks []Token
	pos  int
}

// Parse parses a type expression and returns the requirement it denotes: an
// annotation requirement spanning the expression, or no requirement at all
// when the expression is exactly Any. Inside a compound type Any is
// rejected; requirements are always fully concrete.
func Parse(filename, src string) (typereq.TypeReq, error) {
	p := &Parser{toks: NewLexer(filename, src).Tokens()}

	// A bare Any puts no requirement on the type at all.
	if p.current().Type == IDENT && p.current().Raw == "Any" && p.toks[p.pos+1].Type == EOF {
		return typereq.None, nil
	}

	first := p.current()
	shape, err := p.parseType()
	if err != nil {
		return nil, err
	}
	last := p.toks[p.pos-1]
	if tok := p.current(); tok.Type != EOF {
		return nil, p.errorAt(tok, diag.CodeParseTrailingInput,
			fmt.Sprintf("Unexpected %s after the type expression.", describe(tok)))
	}

	at := diag.Span{
		Filename: filename,
		Line:     first.Span.Line,
		Column:   first.Span.Column,
		Start:    first.Span.Start,
		End:      last.Span.End,
	}
	return typereq.ReqAnnotation{At: at, Shape: shape}, nil
}

func (p *Parser) current() Token {
	return p.toks[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return Token{}, p.errorAt(tok, diag.CodeParseUnexpectedToken,
			fmt.Sprintf("Expected %s, but found %s.", tt, describe(tok)))
	}
	return p.advance(), nil
}

func (p *Parser) errorAt(tok Token, code diag.Code, msg string) error {
	return diag.Error(tok.Span, diag.StageParse, code, msg)
}

func describe(tok Token) string {
	switch tok.Type {
	case EOF:
		return "the end of the input"
	case IDENT:
		return fmt.Sprintf("'%s'", tok.Raw)
	default:
		return tok.Type.String()
	}
}

// parseType parses one type expression.
//
//	Type := "Null" | "Bool" | "Int" | "String"
//	      | "List" "[" Type "]"
//	      | "Set" "[" Type "]"
//	      | "Dict" "[" Type "," Type "]"
//	      | "(" [ Type { "," Type } ] ")" "->" Type
func (p *Parser) parseType() (typereq.ReqType, error) {
	tok := p.current()
	switch tok.Type {
	case IDENT:
		p.advance()
		switch tok.Raw {
		case "Null":
			return typereq.ReqNull, nil
		case "Bool":
			return typereq.ReqBool, nil
		case "Int":
			return typereq.ReqInt, nil
		case "String":
			return typereq.ReqString, nil
		case "List":
			elem, err := p.parseBracketed1()
			if err != nil {
				return nil, err
			}
			return &typereq.ReqList{Elem: elem}, nil
		case "Set":
			elem, err := p.parseBracketed1()
			if err != nil {
				return nil, err
			}
			return &typereq.ReqSet{Elem: elem}, nil
		case "Dict":
			key, value, err := p.parseBracketed2()
			if err != nil {
				return nil, err
			}
			return &typereq.ReqDict{Key: key, Value: value}, nil
		case "Any":
			return nil, p.errorAt(tok, diag.CodeParseUnexpectedToken,
				"Any is not allowed inside a type; a requirement must be fully concrete.")
		default:
			return nil, p.errorAt(tok, diag.CodeParseUnexpectedToken,
				fmt.Sprintf("Unknown type '%s'.", tok.Raw))
		}

	case LPAREN:
		return p.parseFunc()

	case ILLEGAL:
		return nil, p.errorAt(tok, diag.CodeParseIllegalRune,
			fmt.Sprintf("Unexpected character '%s' in type expression.", tok.Raw))

	default:
		return nil, p.errorAt(tok, diag.CodeParseUnexpectedToken,
			fmt.Sprintf("Expected a type, but found %s.", describe(tok)))
	}
}

// parseBracketed1 parses "[" Type "]".
func (p *Parser) parseBracketed1() (typereq.ReqType, error) {
	if _, err := p.expect(LBRACKET); err != nil {
		return nil, err
	}
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RBRACKET); err != nil {
		return nil, err
	}
	return elem, nil
}

// parseBracketed2 parses "[" Type "," Type "]".
func (p *Parser) parseBracketed2() (typereq.ReqType, typereq.ReqType, error) {
	if _, err := p.expect(LBRACKET); err != nil {
		return nil, nil, err
	}
	key, err := p.parseType()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(COMMA); err != nil {
		return nil, nil, err
	}
	value, err := p.parseType()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(RBRACKET); err != nil {
		return nil, nil, err
	}
	return key, value, nil
}

// parseFunc parses "(" [ Type { "," Type } ] ")" "->" Type.
func (p *Parser) parseFunc() (typereq.ReqType, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	var args []typereq.ReqType
	if p.current().Type != RPAREN {
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.current().Type != COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(ARROW); err != nil {
		return nil, err
	}
	result, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &typereq.ReqFunc{Args: args, Result: result}, nil
}
