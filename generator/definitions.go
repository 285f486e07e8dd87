package generator

import "github.com/kalbasit/surqlgen/surql"

// DefineTables returns the DEFINE TABLE statements in order.
func DefineTables(stmts []surql.Statement) []*surql.DefineTableStatement {
	var out []*surql.DefineTableStatement

	for _, stmt := range stmts {
		if t, ok := stmt.(*surql.DefineTableStatement); ok {
			out = append(out, t)
		}
	}

	return out
}

// DefineFields returns the DEFINE FIELD statements in order.
func DefineFields(stmts []surql.Statement) []*surql.DefineFieldStatement {
	var out []*surql.DefineFieldStatement

	for _, stmt := range stmts {
		if f, ok := stmt.(*surql.DefineFieldStatement); ok {
			out = append(out, f)
		}
	}

	return out
}

// DefineEvents returns the DEFINE EVENT statements in order.
func DefineEvents(stmts []surql.Statement) []*surql.DefineEventStatement {
	var out []*surql.DefineEventStatement

	for _, stmt := range stmts {
		if e, ok := stmt.(*surql.DefineEventStatement); ok {
			out = append(out, e)
		}
	}

	return out
}

// fieldsOf keeps the fields defined on table.
func fieldsOf(fields []*surql.DefineFieldStatement, table string) []*surql.DefineFieldStatement {
	var out []*surql.DefineFieldStatement

	for _, f := range fields {
		if f.Table == table {
			out = append(out, f)
		}
	}

	return out
}
