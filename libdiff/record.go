// Package libdiff defines the records a comparison produces and the
// helpers that operate on record lists.
package libdiff

// Record is one observed difference.  Records are produced by the
// engine in encounter order and never mutated afterwards; presentation
// order is the reporter's concern.
type Record struct {
	Kind     Kind   `yaml:"kind"`
	Category string `yaml:"category"`
	Path     string `yaml:"path"`
	// Sub narrows a Mismatch to its aspect: tag, text or attribute.
	Sub   string `yaml:"sub,omitempty"`
	Old   string `yaml:"old,omitempty"`
	New   string `yaml:"new,omitempty"`
	Value string `yaml:"value,omitempty"`
}

func MakeMismatch(path, sub, old, new string) Record {
	return Record{
		Kind:     Mismatch,
		Category: CategoryMismatch,
		Path:     path,
		Sub:      sub,
		Old:      old,
		New:      new,
	}
}

func MakeMissing(path, old, value string) Record {
	return Record{
		Kind:     MissingNode,
		Category: CategoryMissing,
		Path:     path,
		Old:      old,
		Value:    value,
	}
}

func MakeExtra(path, new, value string) Record {
	return Record{
		Kind:     ExtraNode,
		Category: CategoryExtra,
		Path:     path,
		New:      new,
		Value:    value,
	}
}
