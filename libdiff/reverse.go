package libdiff

// Reverse returns the records as they would read had the two inputs
// been compared in the opposite order: old and new values swap, a
// missing node becomes an extra one and vice versa.  Reversing twice
// yields the original list.
func Reverse(records []Record) []Record {
	res := make([]Record, len(records))
	for i := range records {
		rec := records[i]
		rec.Old, rec.New = rec.New, rec.Old
		switch rec.Kind {
		case MissingNode:
			rec.Kind = ExtraNode
			rec.Category = CategoryExtra
		case ExtraNode:
			rec.Kind = MissingNode
			rec.Category = CategoryMissing
		}
		res[i] = rec
	}
	return res
}
