package xcmapdiff

import (
	"fmt"

	"github.com/sidestore/xcmapdiff/ir"
)

// Describe renders a node as a short human-readable description for
// missing/extra records.  Entity mapping objects show their
// destination and mapping type, other objects their identity key, and
// plain elements their tag with any leaf text.
func Describe(node *ir.Node) string {
	if node.Tag == objectTag {
		if node.Get("type") == TypeEntityMapping {
			return fmt.Sprintf("{ destination name: %s, mappingTypename: %s }",
				node.FieldText("destinationname"),
				node.FieldText("mappingtypename"))
		}
		return "[" + DeriveKey(node).Format() + "]"
	}
	if text := node.TrimmedText(); text != "" {
		return fmt.Sprintf("%s: '%s'", node.Tag, text)
	}
	return node.Tag
}
