package generator

const (
	typeString   = "string"
	typeRecordID = "models.RecordID"
	typeInt64    = "int64"
	typeFloat64  = "float64"
	typeBool     = "bool"
	typeTime     = "time.Time"
	typeDuration = "time.Duration"
	typeAny      = "any"

	// idField is the synthetic record identifier every CRUD struct carries.
	idField = "id"

	generatedHeader = "// Code generated by surqlgen. DO NOT EDIT."

	// indexFileName holds the per-category package documentation and module list.
	indexFileName = "doc.go"

	goExt = ".go"
)

// Category is one of the four generation pipelines.
type Category string

const (
	CategoryCRUD      Category = "crud"
	CategoryEvents    Category = "events"
	CategoryMutations Category = "mutations"
	CategoryQueries   Category = "queries"
)

// generationOrder is the order the categories are generated in.
var generationOrder = []Category{CategoryQueries, CategoryMutations, CategoryCRUD, CategoryEvents}

// indexOrder is the order non-empty categories appear in the top-level index.
var indexOrder = []Category{CategoryCRUD, CategoryEvents, CategoryMutations, CategoryQueries}
