package surql

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer splits SurrealQL source into tokens. Comments (--, //, # and /* */)
// and whitespace are discarded.
type Lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// NewLexer creates a lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Tokenize returns every token of the input followed by a TokenEOF. It stops at
// the first lexical error.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)

		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])

	return r
}

func (l *Lexer) peekAt(offset int) rune {
	p := l.pos
	for i := 0; i < offset; i++ {
		if p >= len(l.input) {
			return 0
		}

		_, size := utf8.DecodeRuneInString(l.input[p:])
		p += size
	}

	if p >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[p:])

	return r
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

func (l *Lexer) errorf(line, col, pos int, format string, args ...any) *ParseError {
	return newParseErrorf(Token{Line: line, Col: col, Pos: pos}, format, args...)
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for l.pos < len(l.input) {
		switch {
		case unicode.IsSpace(l.peek()):
			l.advance()
		case l.hasPrefix("--"), l.hasPrefix("//"), l.peek() == '#':
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		case l.hasPrefix("/*"):
			line, col, pos := l.line, l.col, l.pos
			l.advance()
			l.advance()

			for !l.hasPrefix("*/") {
				if l.pos >= len(l.input) {
					return l.errorf(line, col, pos, "unterminated block comment")
				}

				l.advance()
			}

			l.advance()
			l.advance()
		default:
			return nil
		}
	}

	return nil
}

func (l *Lexer) next() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}

	start, line, col := l.pos, l.line, l.col
	tok := Token{Pos: start, Line: line, Col: col}

	if l.pos >= len(l.input) {
		tok.Type = TokenEOF
		tok.End = l.pos

		return tok, nil
	}

	r := l.peek()

	switch {
	case r == '$':
		l.advance()

		for isIdentPart(l.peek()) {
			l.advance()
		}

		if l.pos == start+1 {
			return Token{}, l.errorf(line, col, start, "expected parameter name after '$'")
		}

		tok.Type = TokenParam
		tok.Literal = l.input[start+1 : l.pos]
	case r == '"' || r == '\'':
		return l.scanString(tok, TokenString)
	case r == '`':
		return l.scanQuotedIdent(tok, '`')
	case r == '⟨':
		return l.scanQuotedIdent(tok, '⟩')
	case r >= '0' && r <= '9':
		l.scanNumber(&tok)
	case isIdentStart(r):
		return l.scanIdent(tok)
	default:
		if op := l.matchOperator(); op != "" {
			for range op {
				l.pos++
				l.col++
			}

			tok.Type = TokenOperator
			tok.Literal = op

			break
		}

		l.advance()

		tok.Literal = string(r)

		switch r {
		case '(':
			tok.Type = TokenLParen
		case ')':
			tok.Type = TokenRParen
		case '[':
			tok.Type = TokenLBracket
		case ']':
			tok.Type = TokenRBracket
		case '{':
			tok.Type = TokenLBrace
		case '}':
			tok.Type = TokenRBrace
		case ',':
			tok.Type = TokenComma
		case ';':
			tok.Type = TokenSemicolon
		case ':':
			tok.Type = TokenColon
		case '.':
			tok.Type = TokenDot
		case '<':
			tok.Type = TokenLt
		case '>':
			tok.Type = TokenGt
		default:
			if strings.ContainsRune(singleCharOperators, r) {
				tok.Type = TokenOperator

				break
			}

			return Token{}, l.errorf(line, col, start, "unexpected character %q", r)
		}
	}

	tok.End = l.pos

	return tok, nil
}

func (l *Lexer) matchOperator() string {
	for _, op := range multiCharOperators {
		if l.hasPrefix(op) {
			return op
		}
	}

	return ""
}

var escapes = map[rune]rune{
	'n': '\n', 't': '\t', 'r': '\r', 'b': '\b', 'f': '\f', '0': 0,
	'\\': '\\', '"': '"', '\'': '\'', '`': '`', '/': '/',
}

func (l *Lexer) scanString(tok Token, typ TokenType) (Token, error) {
	quote := l.advance()

	var sb strings.Builder

	for {
		if l.pos >= len(l.input) {
			return Token{}, l.errorf(tok.Line, tok.Col, tok.Pos, "unterminated string")
		}

		r := l.advance()
		if r == quote {
			break
		}

		if r == '\\' {
			esc := l.advance()
			if mapped, ok := escapes[esc]; ok {
				sb.WriteRune(mapped)
			} else {
				sb.WriteRune('\\')
				sb.WriteRune(esc)
			}

			continue
		}

		sb.WriteRune(r)
	}

	tok.Type = typ
	tok.Literal = sb.String()
	tok.End = l.pos

	return tok, nil
}

func (l *Lexer) scanQuotedIdent(tok Token, closing rune) (Token, error) {
	l.advance()

	contentStart := l.pos

	for l.peek() != closing {
		if l.pos >= len(l.input) {
			return Token{}, l.errorf(tok.Line, tok.Col, tok.Pos, "unterminated quoted identifier")
		}

		l.advance()
	}

	tok.Type = TokenIdent
	tok.Literal = l.input[contentStart:l.pos]

	l.advance()

	tok.End = l.pos

	return tok, nil
}

// scanNumber reads integers, decimals, exponents and durations such as 1h30m.
// A digit run followed by other identifier characters is an identifier, which
// covers record id parts like post:8a2b.
func (l *Lexer) scanNumber(tok *Token) {
	l.digits()

	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		l.digits()
	}

	if (l.peek() == 'e' || l.peek() == 'E') &&
		(isDigit(l.peekAt(1)) || ((l.peekAt(1) == '-' || l.peekAt(1) == '+') && isDigit(l.peekAt(2)))) {
		l.advance()
		l.advance()
		l.digits()
	}

	tok.Type = TokenNumber

	if isIdentStart(l.peek()) {
		suffixStart := l.pos

		for unicode.IsLetter(l.peek()) {
			l.advance()
		}

		suffix := l.input[suffixStart:l.pos]

		switch {
		case durationUnits[suffix]:
			tok.Type = TokenDuration

			for isDigit(l.peek()) {
				l.digits()

				unitStart := l.pos
				for unicode.IsLetter(l.peek()) {
					l.advance()
				}

				if !durationUnits[l.input[unitStart:l.pos]] {
					tok.Type = TokenIdent

					break
				}
			}
		case suffix == "f" || suffix == "dec":
		default:
			tok.Type = TokenIdent
		}

		if isIdentPart(l.peek()) {
			tok.Type = TokenIdent
		}

		for isIdentPart(l.peek()) {
			l.advance()
		}
	}

	tok.Literal = l.input[tok.Pos:l.pos]
}

func (l *Lexer) digits() {
	for isDigit(l.peek()) || (l.peek() == '_' && isDigit(l.peekAt(1))) {
		l.advance()
	}
}

func (l *Lexer) scanIdent(tok Token) (Token, error) {
	for {
		for isIdentPart(l.peek()) {
			l.advance()
		}

		if l.hasPrefix("::") && isIdentStart(l.peekAt(2)) {
			l.advance()
			l.advance()

			continue
		}

		break
	}

	word := l.input[tok.Pos:l.pos]

	if q := l.peek(); (q == '"' || q == '\'') && len(word) == 1 {
		switch word {
		case "s":
			return l.scanString(tok, TokenString)
		case "d":
			return l.scanString(tok, TokenDatetime)
		case "u":
			return l.scanString(tok, TokenUUID)
		case "r":
			return l.scanString(tok, TokenRecord)
		}
	}

	tok.Type = TokenIdent
	tok.Literal = word
	tok.End = l.pos

	return tok, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
