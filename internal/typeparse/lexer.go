package typeparse

import (
	"unicode"

	"github.com/marl-lang/marl/internal/diag"
)

// Lexer represents the lexer state.
type Lexer struct {
	filename string
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    []rune(input),
		pos:      -1, // start before first rune
		line:     1,
		column:   0, // will be 1 after first read()
	}
	l.read()
	return l
}

// read advances the lexer to the next character.
func (l *Lexer) read() {
	prev := l.pos
	l.pos++
	if prev >= 0 && prev < len(l.input) && l.input[prev] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) span(start, startLine, startColumn int) diag.Span {
	return diag.Span{
		Filename: l.filename,
		Line:     startLine,
		Column:   startColumn,
		Start:    start,
		End:      l.pos,
	}
}

// Next returns the next token in the input.
func (l *Lexer) Next() Token {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}

	start, startLine, startColumn := l.pos, l.line, l.column

	switch {
	case l.ch == 0:
		return Token{Type: EOF, Span: l.span(start, startLine, startColumn)}
	case l.ch == '[':
		l.read()
		return Token{Type: LBRACKET, Raw: "[", Span: l.span(start, startLine, startColumn)}
	case l.ch == ']':
		l.read()
		return Token{Type: RBRACKET, Raw: "]", Span: l.span(start, startLine, startColumn)}
	case l.ch == '(':
		l.read()
		return Token{Type: LPAREN, Raw: "(", Span: l.span(start, startLine, startColumn)}
	case l.ch == ')':
		l.read()
		return Token{Type: RPAREN, Raw: ")", Span: l.span(start, startLine, startColumn)}
	case l.ch == ',':
		l.read()
		return Token{Type: COMMA, Raw: ",", Span: l.span(start, startLine, startColumn)}
	case l.ch == '-' && l.peek() == '>':
		l.read()
		l.read()
		return Token{Type: ARROW, Raw: "->", Span: l.span(start, startLine, startColumn)}
	case unicode.IsLetter(l.ch):
		for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' {
			l.read()
		}
		raw := string(l.input[start:l.pos])
		return Token{Type: IDENT, Raw: raw, Span: l.span(start, startLine, startColumn)}
	default:
		raw := string(l.ch)
		l.read()
		return Token{Type: ILLEGAL, Raw: raw, Span: l.span(start, startLine, startColumn)}
	}
}

// Tokens lexes the entire input, ending with an EOF token.
func (l *Lexer) Tokens() []Token {
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}
