package surql

import (
	"strconv"
	"strings"
)

// Parser is a recursive descent parser over the tokens of one statement.
type Parser struct {
	src    string
	tokens []Token
	pos    int
}

// Parse parses src into its top-level statements. Statements are split on
// semicolons outside of brackets; DEFINE TABLE, DEFINE FIELD and DEFINE EVENT
// are modeled in detail and everything else is kept verbatim.
func Parse(src string) ([]Statement, error) {
	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}

	spans, err := splitStatements(tokens)
	if err != nil {
		return nil, err
	}

	stmts := make([]Statement, 0, len(spans))

	for _, span := range spans {
		p := &Parser{src: src, tokens: span}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

var closers = map[TokenType]TokenType{
	TokenLParen:   TokenRParen,
	TokenLBracket: TokenRBracket,
	TokenLBrace:   TokenRBrace,
}

// splitStatements checks bracket balance and cuts the token stream at
// top-level semicolons. Every span is terminated by its own TokenEOF.
func splitStatements(tokens []Token) ([][]Token, error) {
	var (
		spans [][]Token
		open  []Token
		cur   []Token
	)

	flush := func(at Token) {
		if len(cur) == 0 {
			return
		}

		cur = append(cur, Token{Type: TokenEOF, Pos: at.Pos, End: at.Pos, Line: at.Line, Col: at.Col})
		spans = append(spans, cur)
		cur = nil
	}

	for _, tok := range tokens {
		switch tok.Type {
		case TokenEOF:
			if len(open) > 0 {
				return nil, newParseErrorf(open[len(open)-1], "unclosed %s", open[len(open)-1].Type)
			}

			flush(tok)

			return spans, nil
		case TokenLParen, TokenLBracket, TokenLBrace:
			open = append(open, tok)
		case TokenRParen, TokenRBracket, TokenRBrace:
			if len(open) == 0 || closers[open[len(open)-1].Type] != tok.Type {
				return nil, newParseErrorf(tok, "unexpected %s", tok.Type)
			}

			open = open[:len(open)-1]
		case TokenSemicolon:
			if len(open) == 0 {
				flush(tok)

				continue
			}
		}

		cur = append(cur, tok)
	}

	return spans, nil
}

func (p *Parser) peek() Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos+offset]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Type != TokenEOF {
		p.pos++
	}

	return tok
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == TokenEOF
}

func (p *Parser) check(t TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) checkOperator(op string) bool {
	tok := p.peek()

	return tok.Type == TokenOperator && tok.Literal == op
}

func (p *Parser) expect(t TokenType) (Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}

	tok := p.peek()

	return tok, newParseErrorf(tok, "expected %s, got %s", t, describe(tok))
}

func (p *Parser) expectKeyword(kw string) error {
	tok := p.peek()
	if !tok.isKeyword(kw) {
		return newParseErrorf(tok, "expected %s, got %s", kw, describe(tok))
	}

	p.advance()

	return nil
}

// rawFrom returns the source text from byte offset start to the end of the
// last consumed token.
func (p *Parser) rawFrom(start int) string {
	if p.pos == 0 {
		return ""
	}

	return strings.TrimSpace(p.src[start:p.tokens[p.pos-1].End])
}

// skipToEnd consumes the rest of the statement.
func (p *Parser) skipToEnd() {
	p.pos = len(p.tokens) - 1
}

// skipBalanced consumes tokens up to and including the closer matching an
// opener that was just consumed.
func (p *Parser) skipBalanced() {
	depth := 1
	for depth > 0 && !p.atEnd() {
		switch p.advance().Type {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			depth--
		}
	}
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return tok.Type.String()
	case TokenString, TokenDatetime, TokenUUID, TokenRecord:
		return tok.Type.String() + " " + strconv.Quote(tok.Literal)
	}

	if tok.Literal != "" {
		return "'" + tok.Literal + "'"
	}

	return tok.Type.String()
}

func (p *Parser) parseStatement() (Statement, error) {
	first := p.peek()

	if first.isKeyword("DEFINE") {
		return p.parseDefine()
	}

	p.skipToEnd()

	return &RawStatement{
		TokenPos: first.Pos,
		Keyword:  strings.ToUpper(first.Literal),
		Raw:      p.rawFrom(first.Pos),
	}, nil
}

func (p *Parser) parseDefine() (Statement, error) {
	start := p.advance()

	kind := p.advance()
	if kind.Type != TokenIdent {
		return nil, newParseErrorf(kind, "expected definition kind after DEFINE, got %s", describe(kind))
	}

	switch strings.ToUpper(kind.Literal) {
	case "TABLE":
		return p.parseDefineTable(start)
	case "FIELD":
		return p.parseDefineField(start)
	case "EVENT":
		return p.parseDefineEvent(start)
	}

	p.skipToEnd()

	return &DefineStatement{
		TokenPos: start.Pos,
		Kind:     strings.ToUpper(kind.Literal),
		Raw:      p.rawFrom(start.Pos),
	}, nil
}

func (p *Parser) skipDefineModifiers() error {
	if p.peek().isKeyword("OVERWRITE") {
		p.advance()

		return nil
	}

	if p.peek().isKeyword("IF") {
		p.advance()

		if err := p.expectKeyword("NOT"); err != nil {
			return err
		}

		return p.expectKeyword("EXISTS")
	}

	return nil
}

func (p *Parser) parseName(what string) (string, error) {
	tok := p.peek()
	if tok.Type != TokenIdent && tok.Type != TokenString {
		return "", newParseErrorf(tok, "expected %s name, got %s", what, describe(tok))
	}

	p.advance()

	return tok.Literal, nil
}

func (p *Parser) parseDefineTable(start Token) (*DefineTableStatement, error) {
	if err := p.skipDefineModifiers(); err != nil {
		return nil, err
	}

	name, err := p.parseName("table")
	if err != nil {
		return nil, err
	}

	stmt := &DefineTableStatement{TokenPos: start.Pos, Name: name}

	for !p.atEnd() {
		tok := p.advance()

		switch {
		case tok.isKeyword("SCHEMAFULL"):
			stmt.Schemafull = true
		case tok.isKeyword("DROP"):
			stmt.Drop = true
		case tok.isKeyword("AS"), tok.isKeyword("PERMISSIONS"), tok.isKeyword("COMMENT"):
			p.skipToEnd()
		}
	}

	return stmt, nil
}

func (p *Parser) parseDefineField(start Token) (*DefineFieldStatement, error) {
	if err := p.skipDefineModifiers(); err != nil {
		return nil, err
	}

	first := p.peek()
	count := 0

	for !p.peek().isKeyword("ON") {
		if p.atEnd() {
			return nil, newParseErrorf(p.peek(), "expected ON in DEFINE FIELD, got %s", describe(p.peek()))
		}

		p.advance()
		count++
	}

	if count == 0 {
		return nil, newParseErrorf(first, "expected field name, got %s", describe(first))
	}

	name := first.Literal
	if count > 1 {
		name = p.rawFrom(first.Pos)
	}

	p.advance()

	if p.peek().isKeyword("TABLE") {
		p.advance()
	}

	table, err := p.parseName("table")
	if err != nil {
		return nil, err
	}

	stmt := &DefineFieldStatement{TokenPos: start.Pos, Name: name, Table: table}

	for !p.atEnd() {
		tok := p.peek()

		switch {
		case tok.isKeyword("FLEXIBLE"):
			p.advance()
			stmt.Flexible = true
		case tok.isKeyword("READONLY"):
			p.advance()
			stmt.Readonly = true
		case tok.isKeyword("TYPE"):
			p.advance()

			if stmt.Kind, err = p.parseKind(); err != nil {
				return nil, err
			}
		case tok.isKeyword("DEFAULT"):
			p.advance()

			if p.peek().isKeyword("ALWAYS") {
				p.advance()
			}

			if stmt.Default, err = p.parseValue(); err != nil {
				return nil, err
			}
		case tok.isKeyword("VALUE"):
			p.advance()

			if stmt.Value, err = p.parseValue(); err != nil {
				return nil, err
			}
		case tok.isKeyword("ASSERT"):
			p.advance()

			if stmt.Assert, err = p.parseValue(); err != nil {
				return nil, err
			}
		case tok.isKeyword("COMMENT"):
			p.advance()
			p.advance()
		default:
			// PERMISSIONS, REFERENCE and anything else carries no structure we use.
			p.skipToEnd()
		}
	}

	return stmt, nil
}

func (p *Parser) parseDefineEvent(start Token) (*DefineEventStatement, error) {
	if err := p.skipDefineModifiers(); err != nil {
		return nil, err
	}

	name, err := p.parseName("event")
	if err != nil {
		return nil, err
	}

	if err := p.expectKeyword("ON"); err != nil {
		return nil, err
	}

	if p.peek().isKeyword("TABLE") {
		p.advance()
	}

	table, err := p.parseName("table")
	if err != nil {
		return nil, err
	}

	stmt := &DefineEventStatement{TokenPos: start.Pos, Name: name, Table: table}

	for !p.atEnd() {
		tok := p.peek()

		switch {
		case tok.isKeyword("WHEN"):
			p.advance()

			if stmt.When, err = p.parseValue(); err != nil {
				return nil, err
			}
		case tok.isKeyword("THEN"):
			p.advance()

			for {
				v, err := p.parseValue()
				if err != nil {
					return nil, err
				}

				stmt.Then = append(stmt.Then, v)

				if !p.check(TokenComma) {
					break
				}

				p.advance()
			}
		case tok.isKeyword("COMMENT"):
			p.advance()
			p.advance()
		default:
			p.skipToEnd()
		}
	}

	return stmt, nil
}

// parseKind parses a type expression, including alternations.
func (p *Parser) parseKind() (*Kind, error) {
	first, err := p.parseSingleKind()
	if err != nil {
		return nil, err
	}

	if !p.checkOperator("|") {
		return first, nil
	}

	either := &Kind{Name: KindEither, Args: []*Kind{first}}

	for p.checkOperator("|") {
		p.advance()

		k, err := p.parseSingleKind()
		if err != nil {
			return nil, err
		}

		either.Args = append(either.Args, k)
	}

	return either, nil
}

func (p *Parser) parseSingleKind() (*Kind, error) {
	tok := p.advance()

	switch tok.Type {
	case TokenIdent:
	case TokenString:
		return &Kind{Name: KindLiteral, Literal: strconv.Quote(tok.Literal)}, nil
	case TokenNumber, TokenDuration:
		return &Kind{Name: KindLiteral, Literal: tok.Literal}, nil
	case TokenLBrace, TokenLBracket:
		p.skipBalanced()

		return &Kind{Name: KindLiteral, Literal: p.rawFrom(tok.Pos)}, nil
	default:
		return nil, newParseErrorf(tok, "expected type, got %s", describe(tok))
	}

	k := &Kind{Name: strings.ToLower(tok.Literal)}
	if !p.check(TokenLt) {
		return k, nil
	}

	p.advance()

	for {
		arg, err := p.parseKind()
		if err != nil {
			return nil, err
		}

		if k.Name == "record" && arg.Name == KindEither {
			k.Args = append(k.Args, arg.Args...)
		} else {
			k.Args = append(k.Args, arg)
		}

		if !p.check(TokenComma) {
			break
		}

		p.advance()
	}

	if _, err := p.expect(TokenGt); err != nil {
		return nil, err
	}

	return k, nil
}
