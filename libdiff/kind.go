package libdiff

import "fmt"

// Kind classifies a record: a value present on both sides that
// differs, a node present only in the old document, or a node present
// only in the new one.
type Kind int

const (
	Mismatch Kind = iota
	MissingNode
	ExtraNode
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		Mismatch:    "mismatch",
		MissingNode: "missing node",
		ExtraNode:   "extra node",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"mismatch":     Mismatch,
		"missing node": MissingNode,
		"extra node":   ExtraNode,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{Mismatch, MissingNode, ExtraNode}
}
