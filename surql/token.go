package surql

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenParam
	TokenString
	TokenDatetime
	TokenUUID
	TokenRecord
	TokenNumber
	TokenDuration
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenSemicolon
	TokenColon
	TokenDot
	TokenLt
	TokenGt
	TokenOperator
)

var tokenNames = map[TokenType]string{
	TokenEOF:       "end of input",
	TokenIdent:     "identifier",
	TokenParam:     "parameter",
	TokenString:    "string",
	TokenDatetime:  "datetime",
	TokenUUID:      "uuid",
	TokenRecord:    "record id",
	TokenNumber:    "number",
	TokenDuration:  "duration",
	TokenLParen:    "'('",
	TokenRParen:    "')'",
	TokenLBracket:  "'['",
	TokenRBracket:  "']'",
	TokenLBrace:    "'{'",
	TokenRBrace:    "'}'",
	TokenComma:     "','",
	TokenSemicolon: "';'",
	TokenColon:     "':'",
	TokenDot:       "'.'",
	TokenLt:        "'<'",
	TokenGt:        "'>'",
	TokenOperator:  "operator",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexeme. Pos and End are byte offsets into the source.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
	End     int
	Line    int
	Col     int
}

// isKeyword reports whether tok is an identifier spelling kw, ignoring case.
func (tok Token) isKeyword(kw string) bool {
	return tok.Type == TokenIdent && equalFold(tok.Literal, kw)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}

	return true
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}

	return c
}

// multiCharOperators is ordered longest first for maximal munch.
var multiCharOperators = []string{
	"<->", "+?=", "...",
	"->", "<-", "==", "!=", "*=", "?=", "<=", ">=", "&&", "||", "??", "?:",
	"+=", "-=", "..", "!~", "?~", "*~", "**", "@@",
}

const singleCharOperators = "=!~+-*/?@%&|^"

// durationUnits are the suffixes that turn a number into a duration.
var durationUnits = map[string]bool{
	"ns": true, "us": true, "µs": true, "ms": true,
	"s": true, "m": true, "h": true, "d": true, "w": true, "y": true,
}

// statementKeywords start a statement that may appear in value position.
var statementKeywords = map[string]bool{
	"SELECT": true, "CREATE": true, "UPDATE": true, "UPSERT": true,
	"DELETE": true, "RELATE": true, "INSERT": true, "DEFINE": true,
	"REMOVE": true, "LET": true, "RETURN": true, "THROW": true,
	"FOR": true, "BREAK": true, "CONTINUE": true, "INFO": true,
	"LIVE": true, "KILL": true, "SLEEP": true, "USE": true,
	"BEGIN": true, "COMMIT": true, "CANCEL": true, "ALTER": true,
	"REBUILD": true, "SHOW": true, "OPTION": true,
}

// keywordOperators are binary operators spelled as words.
var keywordOperators = map[string]bool{
	"AND": true, "OR": true, "IS": true, "CONTAINS": true, "CONTAINSNOT": true,
	"CONTAINSALL": true, "CONTAINSANY": true, "CONTAINSNONE": true,
	"INSIDE": true, "NOTINSIDE": true, "ALLINSIDE": true, "ANYINSIDE": true,
	"NONEINSIDE": true, "OUTSIDE": true, "INTERSECTS": true, "IN": true,
	"NOT": true,
}
