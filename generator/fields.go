package generator

import "github.com/kalbasit/surqlgen/surql"

// ExtractStructFields merges field definitions into a struct field list keyed
// by name. The synthetic id field comes first when withID is set; later
// definitions of a name overwrite its type but keep its position.
func ExtractStructFields(fields []*surql.DefineFieldStatement, withID bool) []StructField {
	var out []StructField

	index := make(map[string]int)

	set := func(name, typ string) {
		if i, ok := index[name]; ok {
			out[i].TypeStr = typ

			return
		}

		index[name] = len(out)
		out = append(out, StructField{Name: name, TypeStr: typ})
	}

	if withID {
		set(idField, typeRecordID)
	}

	for _, f := range fields {
		set(f.Name, MapKind(f.Kind))
	}

	return out
}
