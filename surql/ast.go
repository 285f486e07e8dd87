package surql

import "strings"

// Node is implemented by every statement and value.
type Node interface {
	Pos() int
}

// Statement is a top-level SurrealQL statement.
type Statement interface {
	Node
	stmtNode()
}

// DefineTableStatement is DEFINE TABLE <name> [...].
type DefineTableStatement struct {
	TokenPos   int
	Name       string
	Schemafull bool
	Drop       bool
}

func (s *DefineTableStatement) Pos() int { return s.TokenPos }
func (s *DefineTableStatement) stmtNode() {}

// DefineFieldStatement is DEFINE FIELD <name> ON [TABLE] <table> [...].
// Kind is nil without a TYPE clause and Value is nil without a VALUE clause.
type DefineFieldStatement struct {
	TokenPos int
	Name     string
	Table    string
	Kind     *Kind
	Value    Value
	Default  Value
	Assert   Value
	Flexible bool
	Readonly bool
}

func (s *DefineFieldStatement) Pos() int { return s.TokenPos }
func (s *DefineFieldStatement) stmtNode() {}

// DefineEventStatement is DEFINE EVENT <name> ON [TABLE] <table> [WHEN ...] THEN ....
type DefineEventStatement struct {
	TokenPos int
	Name     string
	Table    string
	When     Value
	Then     []Value
}

func (s *DefineEventStatement) Pos() int { return s.TokenPos }
func (s *DefineEventStatement) stmtNode() {}

// DefineStatement is any other DEFINE variant (INDEX, FUNCTION, PARAM, ...).
type DefineStatement struct {
	TokenPos int
	Kind     string
	Raw      string
}

func (s *DefineStatement) Pos() int { return s.TokenPos }
func (s *DefineStatement) stmtNode() {}

// RawStatement keeps a statement the parser does not model.
type RawStatement struct {
	TokenPos int
	Keyword  string
	Raw      string
}

func (s *RawStatement) Pos() int { return s.TokenPos }
func (s *RawStatement) stmtNode() {}

// Kind is a type expression such as string, option<int> or record<user | post>.
type Kind struct {
	Name    string
	Args    []*Kind
	Literal string
}

// KindEither names the alternation of several kinds, for example string | int.
const KindEither = "either"

// KindLiteral names a literal kind, for example "draft" | "published".
const KindLiteral = "literal"

func (k *Kind) String() string {
	if k == nil {
		return ""
	}

	switch k.Name {
	case KindLiteral:
		return k.Literal
	case KindEither:
		parts := make([]string, 0, len(k.Args))
		for _, a := range k.Args {
			parts = append(parts, a.String())
		}

		return strings.Join(parts, " | ")
	}

	if len(k.Args) == 0 {
		return k.Name
	}

	args := make([]string, 0, len(k.Args))
	for _, a := range k.Args {
		args = append(args, a.String())
	}

	sep := ", "
	if k.Name == "record" {
		sep = " | "
	}

	return k.Name + "<" + strings.Join(args, sep) + ">"
}

// Value is a SurrealQL expression.
type Value interface {
	Node
	valueNode()
}

// LiteralKind identifies the variant of a literal value.
type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralNull
	LiteralBool
	LiteralNumber
	LiteralString
	LiteralDuration
	LiteralDatetime
	LiteralUUID
	LiteralArray
	LiteralObject
	LiteralGeometry
	LiteralBytes
	LiteralRecord
	LiteralConstant
)

// Literal is a constant value. Arrays and objects keep their parsed elements.
type Literal struct {
	TokenPos int
	Kind     LiteralKind
	Raw      string
	Elems    []Value
}

func (v *Literal) Pos() int   { return v.TokenPos }
func (v *Literal) valueNode() {}

// Param is a $name reference.
type Param struct {
	TokenPos int
	Name     string
}

func (v *Param) Pos() int   { return v.TokenPos }
func (v *Param) valueNode() {}

// FunctionKind distinguishes the call forms SurrealQL supports.
type FunctionKind int

const (
	// FunctionNormal is a builtin such as string::lowercase(...).
	FunctionNormal FunctionKind = iota
	// FunctionCustom is a user function fn::name(...).
	FunctionCustom
	// FunctionCast is <kind> operand.
	FunctionCast
	// FunctionScript is function(...) { ... }.
	FunctionScript
)

// Function is a call, cast or embedded script.
type Function struct {
	TokenPos int
	Kind     FunctionKind
	Name     string
	Args     []Value
}

func (v *Function) Pos() int   { return v.TokenPos }
func (v *Function) valueNode() {}

// BinaryExpr is left <op> right.
type BinaryExpr struct {
	TokenPos int
	Left     Value
	Op       string
	Right    Value
}

func (v *BinaryExpr) Pos() int   { return v.TokenPos }
func (v *BinaryExpr) valueNode() {}

// Other covers every expression shape the parser does not model in detail:
// idioms, subqueries, blocks, unary expressions, IF expressions and embedded
// statements. Kind is a short description such as "idiom" or "subquery".
type Other struct {
	TokenPos int
	Kind     string
	Raw      string
}

func (v *Other) Pos() int   { return v.TokenPos }
func (v *Other) valueNode() {}
