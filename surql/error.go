package surql

import "fmt"

// ParseError reports malformed SurrealQL with the position it was found at.
type ParseError struct {
	Message string
	Line    int
	Col     int
	Pos     int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d col %d: %s", e.Line, e.Col, e.Message)
}

func newParseErrorf(tok Token, format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Col:     tok.Col,
		Pos:     tok.Pos,
	}
}
