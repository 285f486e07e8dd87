package generator

import (
	"strings"

	"github.com/kalbasit/surqlgen/surql"
)

// MapKind maps a field kind to the Go type used in generated structs. Kinds
// other than string and record fall back to string.
func MapKind(kind *surql.Kind) string {
	if kind == nil {
		return typeString
	}

	switch kind.Name {
	case "string":
		return typeString
	case "record":
		return typeRecordID
	default:
		return typeString
	}
}

// ParamType maps an annotation type to the Go type of a function parameter.
// Unknown types are used verbatim so a Go type may be written directly.
func ParamType(annotation string) string {
	if inner, ok := genericArg(annotation, "option"); ok {
		return "*" + ParamType(inner)
	}

	if inner, ok := genericArg(annotation, "array", "vec", "set"); ok {
		return "[]" + ParamType(inner)
	}

	switch strings.ToLower(annotation) {
	case "string", "str", "&str":
		return typeString
	case "int", "i64", "number":
		return typeInt64
	case "float", "f64", "decimal":
		return typeFloat64
	case "bool":
		return typeBool
	case "datetime":
		return typeTime
	case "duration":
		return typeDuration
	case "record", "thing", "recordid":
		return typeRecordID
	case "any", "object":
		return typeAny
	}

	return annotation
}

// genericArg returns T for annotations of the form name<T>, ignoring case.
func genericArg(annotation string, names ...string) (string, bool) {
	open := strings.IndexByte(annotation, '<')
	if open < 0 || !strings.HasSuffix(annotation, ">") {
		return "", false
	}

	head := strings.ToLower(annotation[:open])
	for _, name := range names {
		if head == name {
			return annotation[open+1 : len(annotation)-1], true
		}
	}

	return "", false
}
