// Package typeparse parses type expressions like Dict[String, Int] into
// type requirements, so annotations carry genuine source spans.
package typeparse

import "github.com/marl-lang/marl/internal/diag"

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	EOF TokenType = iota
	ILLEGAL
	IDENT    // Int, List, Dict, Any, ...
	LBRACKET // [
	RBRACKET // ]
	LPAREN   // (
	RPAREN   // )
	COMMA    // ,
	ARROW    // ->
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "end of input"
	case ILLEGAL:
		return "illegal token"
	case IDENT:
		return "identifier"
	case LBRACKET:
		return "'['"
	case RBRACKET:
		return "']'"
	case LPAREN:
		return "'('"
	case RPAREN:
		return "')'"
	case COMMA:
		return "','"
	case ARROW:
		return "'->'"
	default:
		return "unknown token"
	}
}

// Token represents a lexical token.
type Token struct {
	Type TokenType
	Raw  string // exact runes from source
	Span diag.Span
}
