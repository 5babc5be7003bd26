package libdiff

// Config is the comparison configuration, threaded explicitly through
// the engine rather than held as package state.  [DefaultConfig]
// matches the mapping model documents Xcode regenerates; any field may
// be overridden for other document families.
type Config struct {
	// IgnoredAttrs are attribute names never compared: regeneration
	// artifacts such as embedded model blobs and volatile ids.
	IgnoredAttrs map[string]bool
	// IgnoredFields are names of <attribute name=...> leaf children
	// excluded from child matching on both sides.
	IgnoredFields map[string]bool
	// VolatileField names the counter field whose text content is
	// never compared.
	VolatileField string
	// PlistDictMarker is the path fragment indicating a property-list
	// dictionary context, where key children compare as an unordered
	// collection.
	PlistDictMarker string
}

func DefaultConfig() Config {
	return Config{
		IgnoredAttrs: map[string]bool{
			"sourcemodeldata":      true,
			"destinationmodeldata": true,
			"id":                   true,
			"idrefs":               true,
			"mappingnumber":        true,
		},
		IgnoredFields: map[string]bool{
			"sourcemodeldata":      true,
			"destinationmodeldata": true,
			"mappingnumber":        true,
		},
		VolatileField:   "mappingnumber",
		PlistDictMarker: ".plist.dict",
	}
}
