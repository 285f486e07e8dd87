package surql

import "strings"

var operatorPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"??": 3, "?:": 3,
	"=": 4, "==": 4, "!=": 4, "*=": 4, "?=": 4, "~": 4, "!~": 4, "?~": 4, "*~": 4, "@@": 4,
	"<=": 6, ">=": 6,
	"+": 7, "-": 7,
	"*": 8, "/": 8, "%": 8,
	"**": 9,
}

// parseValue parses a full expression.
func (p *Parser) parseValue() (Value, error) {
	return p.parseExpr(1)
}

func (p *Parser) parseExpr(minPrec int) (Value, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op, prec, width := p.binaryOperator()
		if prec == 0 || prec < minPrec {
			return left, nil
		}

		p.pos += width

		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{TokenPos: left.Pos(), Left: left, Op: op, Right: right}
	}
}

// binaryOperator reports the operator at the current position, its
// precedence and how many tokens it spans. A zero precedence means none.
func (p *Parser) binaryOperator() (string, int, int) {
	tok := p.peek()

	switch tok.Type {
	case TokenLt:
		return "<", 6, 1
	case TokenGt:
		return ">", 6, 1
	case TokenOperator:
		if prec, ok := operatorPrecedence[tok.Literal]; ok {
			return tok.Literal, prec, 1
		}
	case TokenIdent:
		word := strings.ToUpper(tok.Literal)

		switch word {
		case "OR":
			return word, 1, 1
		case "AND":
			return word, 2, 1
		case "IS":
			if p.peekAt(1).isKeyword("NOT") {
				return "IS NOT", 4, 2
			}

			return word, 4, 1
		case "NOT":
			next := p.peekAt(1)
			if next.isKeyword("IN") || next.isKeyword("INSIDE") {
				return "NOT " + strings.ToUpper(next.Literal), 5, 2
			}

			return "", 0, 0
		}

		if keywordOperators[word] {
			return word, 5, 1
		}
	}

	return "", 0, 0
}

func (p *Parser) parseUnary() (Value, error) {
	tok := p.peek()

	switch {
	case tok.Type == TokenOperator && (tok.Literal == "-" || tok.Literal == "+"):
		if next := p.peekAt(1); next.Type == TokenNumber && next.Pos == tok.End {
			p.advance()
			p.advance()

			return &Literal{TokenPos: tok.Pos, Kind: LiteralNumber, Raw: p.rawFrom(tok.Pos)}, nil
		}

		fallthrough
	case tok.Type == TokenOperator && tok.Literal == "!":
		p.advance()

		if _, err := p.parseUnary(); err != nil {
			return nil, err
		}

		return &Other{TokenPos: tok.Pos, Kind: "unary", Raw: p.rawFrom(tok.Pos)}, nil
	case tok.Type == TokenLt:
		p.advance()

		kind, err := p.parseKind()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenGt); err != nil {
			return nil, err
		}

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &Function{TokenPos: tok.Pos, Kind: FunctionCast, Name: kind.String(), Args: []Value{operand}}, nil
	}

	v, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	return p.parsePostfix(v)
}

// parsePostfix folds field access, indexing and graph traversal into an idiom.
func (p *Parser) parsePostfix(v Value) (Value, error) {
	extended := false

	for {
		tok := p.peek()

		switch {
		case tok.Type == TokenDot:
			p.advance()

			next := p.advance()

			switch {
			case next.Type == TokenIdent:
				if p.check(TokenLParen) {
					p.advance()
					p.skipBalanced()
				}
			case next.Type == TokenOperator && next.Literal == "*":
			case next.Type == TokenLBrace, next.Type == TokenLBracket:
				p.skipBalanced()
			default:
				return nil, newParseErrorf(next, "unexpected %s after '.'", describe(next))
			}
		case tok.Type == TokenLBracket:
			p.advance()
			p.skipBalanced()
		case tok.Type == TokenOperator && (tok.Literal == "->" || tok.Literal == "<-" || tok.Literal == "<->"):
			p.advance()

			next := p.advance()

			switch next.Type {
			case TokenIdent:
			case TokenLParen, TokenLBracket:
				p.skipBalanced()
			case TokenOperator:
				if next.Literal != "?" {
					return nil, newParseErrorf(next, "unexpected %s in graph traversal", describe(next))
				}
			default:
				return nil, newParseErrorf(next, "unexpected %s in graph traversal", describe(next))
			}
		default:
			if !extended {
				return v, nil
			}

			return &Other{TokenPos: v.Pos(), Kind: "idiom", Raw: p.rawFrom(v.Pos())}, nil
		}

		extended = true
	}
}

func (p *Parser) parsePrimary() (Value, error) {
	tok := p.peek()

	literal := func(kind LiteralKind) (Value, error) {
		p.advance()

		return &Literal{TokenPos: tok.Pos, Kind: kind, Raw: tok.Literal}, nil
	}

	switch tok.Type {
	case TokenNumber:
		return literal(LiteralNumber)
	case TokenDuration:
		return literal(LiteralDuration)
	case TokenString:
		return literal(LiteralString)
	case TokenDatetime:
		return literal(LiteralDatetime)
	case TokenUUID:
		return literal(LiteralUUID)
	case TokenRecord:
		return literal(LiteralRecord)
	case TokenParam:
		p.advance()

		return &Param{TokenPos: tok.Pos, Name: tok.Literal}, nil
	case TokenLBracket:
		return p.parseArray()
	case TokenLBrace:
		return p.parseObjectOrBlock()
	case TokenLParen:
		return p.parseParen()
	case TokenIdent:
		return p.parseIdentValue()
	}

	return nil, newParseErrorf(tok, "unexpected %s in expression", describe(tok))
}

func (p *Parser) parseArray() (Value, error) {
	start := p.advance()
	arr := &Literal{TokenPos: start.Pos, Kind: LiteralArray}

	for !p.check(TokenRBracket) {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		arr.Elems = append(arr.Elems, v)

		if !p.check(TokenComma) {
			break
		}

		p.advance()
	}

	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}

	arr.Raw = p.rawFrom(start.Pos)

	return arr, nil
}

func (p *Parser) parseObjectOrBlock() (Value, error) {
	start := p.peek()
	key := p.peekAt(1)

	isObject := key.Type == TokenRBrace ||
		((key.Type == TokenIdent || key.Type == TokenString || key.Type == TokenNumber) && p.peekAt(2).Type == TokenColon)

	p.advance()

	if !isObject {
		p.skipBalanced()

		return &Other{TokenPos: start.Pos, Kind: "block", Raw: p.rawFrom(start.Pos)}, nil
	}

	obj := &Literal{TokenPos: start.Pos, Kind: LiteralObject}

	for !p.check(TokenRBrace) {
		key := p.advance()
		if key.Type != TokenIdent && key.Type != TokenString && key.Type != TokenNumber {
			return nil, newParseErrorf(key, "expected object key, got %s", describe(key))
		}

		if _, err := p.expect(TokenColon); err != nil {
			return nil, err
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		obj.Elems = append(obj.Elems, v)

		if !p.check(TokenComma) {
			break
		}

		p.advance()
	}

	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}

	obj.Raw = p.rawFrom(start.Pos)

	return obj, nil
}

func (p *Parser) parseParen() (Value, error) {
	start := p.advance()

	if p.looksLikeStatement() {
		p.skipBalanced()

		return &Other{TokenPos: start.Pos, Kind: "subquery", Raw: p.rawFrom(start.Pos)}, nil
	}

	if _, err := p.parseValue(); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	return &Other{TokenPos: start.Pos, Kind: "subquery", Raw: p.rawFrom(start.Pos)}, nil
}

// looksLikeStatement reports whether the current identifier starts a
// statement rather than naming a field.
func (p *Parser) looksLikeStatement() bool {
	tok := p.peek()
	if tok.Type != TokenIdent || !statementKeywords[strings.ToUpper(tok.Literal)] {
		return false
	}

	next := p.peekAt(1)

	switch next.Type {
	case TokenIdent, TokenParam, TokenString, TokenNumber, TokenDuration, TokenLBrace, TokenRecord:
		return true
	case TokenOperator:
		return next.Literal == "*"
	case TokenEOF, TokenRParen, TokenRBrace:
		return tok.isKeyword("BREAK") || tok.isKeyword("CONTINUE")
	}

	return false
}

// skipStatement consumes an embedded statement up to an unmatched closer.
func (p *Parser) skipStatement() {
	depth := 0

	for !p.atEnd() {
		switch p.peek().Type {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth == 0 {
				return
			}

			depth--
		}

		p.advance()
	}
}

func (p *Parser) parseCallArgs() ([]Value, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	var args []Value

	for !p.check(TokenRParen) {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		args = append(args, v)

		if !p.check(TokenComma) {
			break
		}

		p.advance()
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *Parser) parseIdentValue() (Value, error) {
	tok := p.peek()
	word := strings.ToUpper(tok.Literal)

	switch word {
	case "NONE":
		p.advance()

		return &Literal{TokenPos: tok.Pos, Kind: LiteralNone, Raw: tok.Literal}, nil
	case "NULL":
		p.advance()

		return &Literal{TokenPos: tok.Pos, Kind: LiteralNull, Raw: tok.Literal}, nil
	case "TRUE", "FALSE":
		p.advance()

		return &Literal{TokenPos: tok.Pos, Kind: LiteralBool, Raw: tok.Literal}, nil
	case "IF":
		return p.parseIf()
	}

	if p.looksLikeStatement() {
		p.skipStatement()

		return &Other{TokenPos: tok.Pos, Kind: "statement", Raw: p.rawFrom(tok.Pos)}, nil
	}

	next := p.peekAt(1)

	switch {
	case word == "FUNCTION" && next.Type == TokenLParen:
		p.advance()

		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenLBrace); err != nil {
			return nil, err
		}

		p.skipBalanced()

		return &Function{TokenPos: tok.Pos, Kind: FunctionScript, Name: "function", Args: args}, nil
	case next.Type == TokenLParen:
		p.advance()

		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}

		kind := FunctionNormal
		if strings.HasPrefix(strings.ToLower(tok.Literal), "fn::") {
			kind = FunctionCustom
		}

		return &Function{TokenPos: tok.Pos, Kind: kind, Name: tok.Literal, Args: args}, nil
	case next.Type == TokenColon:
		p.advance()
		p.advance()

		id := p.advance()

		switch id.Type {
		case TokenIdent, TokenNumber, TokenString:
		case TokenLBrace, TokenLBracket, TokenLParen:
			p.skipBalanced()
		default:
			return nil, newParseErrorf(id, "expected record id, got %s", describe(id))
		}

		return &Literal{TokenPos: tok.Pos, Kind: LiteralRecord, Raw: p.rawFrom(tok.Pos)}, nil
	case strings.Contains(tok.Literal, "::"):
		p.advance()

		return &Literal{TokenPos: tok.Pos, Kind: LiteralConstant, Raw: tok.Literal}, nil
	}

	p.advance()

	return &Other{TokenPos: tok.Pos, Kind: "idiom", Raw: tok.Literal}, nil
}

// parseIf handles both IF cond THEN a [ELSE IF ...] [ELSE b] END and
// IF cond { ... } [ELSE IF cond { ... }] [ELSE { ... }].
func (p *Parser) parseIf() (Value, error) {
	start := p.advance()

	if _, err := p.parseValue(); err != nil {
		return nil, err
	}

	result := func() (Value, error) {
		return &Other{TokenPos: start.Pos, Kind: "if", Raw: p.rawFrom(start.Pos)}, nil
	}

	if p.check(TokenLBrace) {
		p.advance()
		p.skipBalanced()

		for p.peek().isKeyword("ELSE") {
			p.advance()

			if p.peek().isKeyword("IF") {
				p.advance()

				if _, err := p.parseValue(); err != nil {
					return nil, err
				}
			}

			if _, err := p.expect(TokenLBrace); err != nil {
				return nil, err
			}

			p.skipBalanced()
		}

		return result()
	}

	if err := p.expectKeyword("THEN"); err != nil {
		return nil, err
	}

	if _, err := p.parseValue(); err != nil {
		return nil, err
	}

	for {
		switch {
		case p.peek().isKeyword("END"):
			p.advance()

			return result()
		case p.peek().isKeyword("ELSE"):
			p.advance()

			if p.peek().isKeyword("IF") {
				p.advance()

				if _, err := p.parseValue(); err != nil {
					return nil, err
				}

				if err := p.expectKeyword("THEN"); err != nil {
					return nil, err
				}
			}

			if _, err := p.parseValue(); err != nil {
				return nil, err
			}
		default:
			return nil, newParseErrorf(p.peek(), "expected ELSE or END, got %s", describe(p.peek()))
		}
	}
}
