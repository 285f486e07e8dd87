package surql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalbasit/surqlgen/surql"
)

func tokenTypes(tokens []surql.Token) []surql.TokenType {
	types := make([]surql.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}

	return types
}

func TestLexerTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		types    []surql.TokenType
		literals []string
	}{
		{
			name:     "param and operator",
			input:    "$value != NONE",
			types:    []surql.TokenType{surql.TokenParam, surql.TokenOperator, surql.TokenIdent, surql.TokenEOF},
			literals: []string{"value", "!=", "NONE", ""},
		},
		{
			name:     "comments are skipped",
			input:    "-- a\n// b\n# c\n/* d\ne */ x",
			types:    []surql.TokenType{surql.TokenIdent, surql.TokenEOF},
			literals: []string{"x", ""},
		},
		{
			name:     "prefixed strings",
			input:    `s"a" d"2024-01-01" u'0190' r"post:1"`,
			types:    []surql.TokenType{surql.TokenString, surql.TokenDatetime, surql.TokenUUID, surql.TokenRecord, surql.TokenEOF},
			literals: []string{"a", "2024-01-01", "0190", "post:1", ""},
		},
		{
			name:     "numbers and durations",
			input:    "42 3.14 1e3 1h30m 5ms",
			types:    []surql.TokenType{surql.TokenNumber, surql.TokenNumber, surql.TokenNumber, surql.TokenDuration, surql.TokenDuration, surql.TokenEOF},
			literals: []string{"42", "3.14", "1e3", "1h30m", "5ms", ""},
		},
		{
			name:     "namespaced identifiers",
			input:    "string::lowercase fn::greet",
			types:    []surql.TokenType{surql.TokenIdent, surql.TokenIdent, surql.TokenEOF},
			literals: []string{"string::lowercase", "fn::greet", ""},
		},
		{
			name:     "quoted identifiers",
			input:    "`first name` ⟨last⟩",
			types:    []surql.TokenType{surql.TokenIdent, surql.TokenIdent, surql.TokenEOF},
			literals: []string{"first name", "last", ""},
		},
		{
			name:  "maximal munch",
			input: "a->b<->c<=d",
			types: []surql.TokenType{
				surql.TokenIdent, surql.TokenOperator, surql.TokenIdent, surql.TokenOperator,
				surql.TokenIdent, surql.TokenOperator, surql.TokenIdent, surql.TokenEOF,
			},
			literals: []string{"a", "->", "b", "<->", "c", "<=", "d", ""},
		},
		{
			name:     "kind brackets",
			input:    "option<record<user>>",
			types:    []surql.TokenType{surql.TokenIdent, surql.TokenLt, surql.TokenIdent, surql.TokenLt, surql.TokenIdent, surql.TokenGt, surql.TokenGt, surql.TokenEOF},
			literals: []string{"option", "<", "record", "<", "user", ">", ">", ""},
		},
		{
			name:     "string escapes",
			input:    `"a\"b\n"`,
			types:    []surql.TokenType{surql.TokenString, surql.TokenEOF},
			literals: []string{"a\"b\n", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, err := surql.NewLexer(tt.input).Tokenize()
			require.NoError(t, err)
			assert.Equal(t, tt.types, tokenTypes(tokens))

			literals := make([]string, 0, len(tokens))
			for _, tok := range tokens {
				literals = append(literals, tok.Literal)
			}

			assert.Equal(t, tt.literals, literals)
		})
	}
}

func TestLexerPositions(t *testing.T) {
	t.Parallel()

	tokens, err := surql.NewLexer("DEFINE\n  TABLE post").Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Col)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[1].Col)
	assert.Equal(t, 9, tokens[1].Pos)
	assert.Equal(t, 14, tokens[1].End)
}

func TestLexerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		message string
		line    int
		col     int
	}{
		{name: "unterminated string", input: "x = 'abc", message: "unterminated string", line: 1, col: 5},
		{name: "unterminated comment", input: "\n/* abc", message: "unterminated block comment", line: 2, col: 1},
		{name: "empty param", input: "$ x", message: "expected parameter name after '$'", line: 1, col: 1},
		{name: "unexpected character", input: "a \\ b", message: `unexpected character '\\'`, line: 1, col: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := surql.NewLexer(tt.input).Tokenize()
			require.Error(t, err)

			var perr *surql.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.message, perr.Message)
			assert.Equal(t, tt.line, perr.Line)
			assert.Equal(t, tt.col, perr.Col)
		})
	}
}
