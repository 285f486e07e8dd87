package generator

import "github.com/kalbasit/surqlgen/surql"

// IsValueParamUsed reports whether a field's VALUE clause depends on $value.
// A missing clause and any shape not known to be constant count as used.
func IsValueParamUsed(v surql.Value) bool {
	switch v := v.(type) {
	case nil:
		return true
	case *surql.Literal:
		return false
	case *surql.Param:
		return v.Name == "value"
	case *surql.Function:
		for _, arg := range v.Args {
			if IsValueParamUsed(arg) {
				return true
			}
		}

		return false
	case *surql.BinaryExpr:
		return IsValueParamUsed(v.Left) || IsValueParamUsed(v.Right)
	default:
		return true
	}
}
