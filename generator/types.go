package generator

import "sort"

// QueryVariable is a parameter declared by a comment annotation such as
// "// $post_id: String".
type QueryVariable struct {
	Name string
	Type string
}

// StructField is a field of a generated record struct after type mapping.
type StructField struct {
	Name    string
	TypeStr string
}

// Param is a parameter of a generated function.
type Param struct {
	Name    string // Go identifier
	Type    string // Go type
	VarName string // name of the SurrealQL parameter it binds, if any
}

// Module is the formatted Go source of one generated file.
type Module struct {
	Name    string
	Path    string
	Content []byte
}

// CategoryResult is what one category generator produced in a pass.
type CategoryResult struct {
	Category Category
	Modules  map[string]Module
}

// IsEmpty reports whether the category produced no modules.
func (r CategoryResult) IsEmpty() bool {
	return len(r.Modules) == 0
}

// Names returns the module names in sorted order.
func (r CategoryResult) Names() []string {
	names := make([]string, 0, len(r.Modules))
	for name := range r.Modules {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Report summarizes a generation pass.
type Report struct {
	Results []CategoryResult
	// Written lists every file written, relative to the project root.
	Written []string
	// Removed lists the stale generated files deleted by the pass.
	Removed []string
	// TopLevelIndex is false when every category was empty and the top-level
	// index was left as it was.
	TopLevelIndex bool
}

// NonEmpty returns the non-empty categories in top-level index order.
func (r *Report) NonEmpty() []Category {
	present := make(map[Category]bool, len(r.Results))
	for _, res := range r.Results {
		if !res.IsEmpty() {
			present[res.Category] = true
		}
	}

	categories := make([]Category, 0, len(present))

	for _, c := range indexOrder {
		if present[c] {
			categories = append(categories, c)
		}
	}

	return categories
}

// Result returns the result of a category, or an empty result.
func (r *Report) Result(c Category) CategoryResult {
	for _, res := range r.Results {
		if res.Category == c {
			return res
		}
	}

	return CategoryResult{Category: c}
}
