package generator

// This file exports internal functions for use in tests and by external callers.

// ToSnakeCase converts a CamelCase or kebab-case string to snake_case.
func ToSnakeCase(s string) string { return toSnakeCase(s) }

// ToPascalCase converts a snake_case string to PascalCase.
func ToPascalCase(s string) string { return toPascalCase(s) }

// ToCamelCase converts a snake_case string to camelCase.
func ToCamelCase(s string) string { return toCamelCase(s) }

// ParamName converts a SurrealQL parameter name to a Go parameter name.
func ParamName(name string) string { return paramName(name) }

// JoinParamsSignature joins parameters into a function signature string.
func JoinParamsSignature(params []Param) string { return joinParamsSignature(params) }

// ModuleFileName returns the file stem used for a generated module.
func ModuleFileName(name string) string { return moduleFileName(name) }

// GoString renders a string as a Go string literal.
func GoString(s string) string { return goString(s) }

// Flatten flattens strings, string slices and query variables into strings.
func Flatten(values ...any) []string { return flatten(values...) }

// QueryParams returns the function parameters and the bound parameters of a
// query's annotations.
func QueryParams(source string, vars []QueryVariable) ([]Param, []Param) {
	return queryParams(source, vars)
}

// FormatSource formats Go source the way generated files are formatted.
func FormatSource(filename string, content []byte) ([]byte, error) {
	return formatSource(filename, content)
}
