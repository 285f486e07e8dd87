package generator

import (
	"regexp"
	"strings"
)

// annotationRe matches "// $name: Type" and "# $name: Type" comment lines.
var annotationRe = regexp.MustCompile(`^\s*(?:/{2,}|#+)\s*\$(\w+)\s*:\s*(\S+)\s*$`)

// ExtractQueryVariables returns the parameters declared by comment annotations
// in file order. Duplicates are kept.
func ExtractQueryVariables(text string) []QueryVariable {
	var vars []QueryVariable

	for _, line := range strings.Split(text, "\n") {
		m := annotationRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}

		vars = append(vars, QueryVariable{Name: m[1], Type: m[2]})
	}

	return vars
}
