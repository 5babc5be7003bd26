// Package ir defines the element tree the diff engine operates on.
//
// A Node is an immutable view of one XML element: its tag name, its
// attributes, its text content and its ordered children.  The engine
// never mutates the trees it is handed.
package ir

import (
	"maps"
	"slices"
	"strings"
)

type Node struct {
	Tag      string
	Attr     map[string]string
	Text     string
	Children []*Node
}

// Elem builds a childless node with the given tag.
func Elem(tag string) *Node {
	return &Node{Tag: tag}
}

func (n *Node) WithAttr(name, value string) *Node {
	if n.Attr == nil {
		n.Attr = map[string]string{}
	}
	n.Attr[name] = value
	return n
}

func (n *Node) WithText(text string) *Node {
	n.Text = text
	return n
}

func (n *Node) WithChildren(kids ...*Node) *Node {
	n.Children = append(n.Children, kids...)
	return n
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Tag = n.Tag
	dst.Text = n.Text
	if n.Attr != nil {
		dst.Attr = maps.Clone(n.Attr)
	}
	dst.Children = make([]*Node, len(n.Children))
	for i, kid := range n.Children {
		dstKid := &Node{}
		kid.CloneTo(dstKid)
		dst.Children[i] = dstKid
	}
	return dst
}

// Get returns the value of the named attribute, or "" when absent.
func (n *Node) Get(name string) string {
	return n.Attr[name]
}

// Has reports whether the named attribute is present.
func (n *Node) Has(name string) bool {
	_, ok := n.Attr[name]
	return ok
}

// AttrNames returns the attribute names in sorted order.
func (n *Node) AttrNames() []string {
	res := slices.Sorted(maps.Keys(n.Attr))
	return res
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// TrimmedText returns the node's text content with surrounding
// whitespace removed.
func (n *Node) TrimmedText() string {
	return strings.TrimSpace(n.Text)
}

// LeafText returns the trimmed text of a childless node, and ""
// for any node with children.
func (n *Node) LeafText() string {
	if !n.IsLeaf() {
		return ""
	}
	return n.TrimmedText()
}

// FieldText returns the trimmed text of the child
// <attribute name="<name>"> element, or "" when no such child exists.
// Mapping model documents store an object's named fields this way.
func (n *Node) FieldText(name string) string {
	for _, kid := range n.Children {
		if kid.Tag != "attribute" {
			continue
		}
		if kid.Get("name") != name {
			continue
		}
		return kid.TrimmedText()
	}
	return ""
}
