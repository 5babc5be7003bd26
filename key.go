package xcmapdiff

import (
	"fmt"

	"github.com/sidestore/xcmapdiff/ir"
)

// Object type values with dedicated identity derivation.
const (
	TypeEntityMapping       = "XDDEVENTITYMAPPING"
	TypeAttributeMapping    = "XDDEVATTRIBUTEMAPPING"
	TypeRelationshipMapping = "XDDEVRELATIONSHIPMAPPING"
	TypeMappingModel        = "XDDEVMAPPINGMODEL"
)

type KeyKind int

const (
	// GenericKey groups unrecognized object kinds by tag alone.
	GenericKey KeyKind = iota
	EntityMappingKey
	PropertyMappingKey
	MappingModelKey
)

// Key is the content-derived identity of a repeated node.  Two nodes
// with equal keys are matched with each other regardless of their
// position in the sibling list.  Which fields are populated depends on
// Kind; the rest stay empty.
type Key struct {
	Kind KeyKind
	Type string

	SourceName      string
	DestinationName string
	MappingType     string

	Name string

	ModelPath string

	Tag string
}

// DeriveKey computes the identity key of node.  It is a pure function
// of the node's content: absent sub-fields degrade to empty strings
// and never fail the derivation.
func DeriveKey(node *ir.Node) Key {
	typ := node.Get("type")
	switch typ {
	case TypeEntityMapping:
		return Key{
			Kind:            EntityMappingKey,
			Type:            typ,
			SourceName:      node.FieldText("sourcename"),
			DestinationName: node.FieldText("destinationname"),
			MappingType:     node.FieldText("mappingtypename"),
		}
	case TypeAttributeMapping, TypeRelationshipMapping:
		return Key{
			Kind: PropertyMappingKey,
			Type: typ,
			Name: node.FieldText("name"),
		}
	case TypeMappingModel:
		return Key{
			Kind:      MappingModelKey,
			Type:      typ,
			ModelPath: node.FieldText("sourcemodelpath"),
		}
	default:
		return Key{Kind: GenericKey, Tag: node.Tag}
	}
}

// Format renders the key as the human-readable description used in
// key-based path segments.
func (k Key) Format() string {
	switch k.Kind {
	case EntityMappingKey:
		return fmt.Sprintf("destination name: %s, mappingTypename: %s",
			k.DestinationName, k.MappingType)
	case PropertyMappingKey:
		return "name: " + k.Name
	case MappingModelKey:
		return "sourcemodelpath: " + k.ModelPath
	default:
		return "(" + k.Tag + ")"
	}
}
