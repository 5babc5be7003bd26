package libdiff

// Categories carried on records, one fixed string per record kind.
const (
	CategoryExtra    = "extra in new.xml"
	CategoryMissing  = "missing in new.xml while present in old.xml"
	CategoryMismatch = "mismatching in old.xml and new.xml"
)

// Mismatch subtypes.
const (
	SubTag       = "tag"
	SubText      = "text"
	SubAttribute = "attribute"
)
