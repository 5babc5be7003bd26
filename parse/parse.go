// Package parse materializes mapping model XML documents as ir trees.
package parse

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sidestore/xcmapdiff/ir"
)

// Parse reads one XML document and returns its root element.  Any
// malformed input fails with an error wrapping [ErrParse]; a valid
// document always yields a fully materialized tree.
func Parse(data []byte) (*ir.Node, error) {
	return ParseReader(bytes.NewReader(data))
}

func ParseReader(r io.Reader) (*ir.Node, error) {
	dec := xml.NewDecoder(r)
	var root *ir.Node
	var stack []*ir.Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := ir.Elem(t.Name.Local)
			for _, attr := range t.Attr {
				node.WithAttr(attr.Name.Local, attr.Value)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrParse)
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			// only text preceding the first child element counts,
			// mirroring how ElementTree exposes .text
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	return root, nil
}

// ParseFile parses the document at path.  A path naming an
// .xcmappingmodel bundle directory resolves to the xcmapping.xml
// document inside it.
func ParseFile(path string) (*ir.Node, error) {
	resolved, err := resolveBundle(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(resolved)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	node, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", resolved, err)
	}
	return node, nil
}

func resolveBundle(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		return path, nil
	}
	inner := filepath.Join(path, "xcmapping.xml")
	if _, err := os.Stat(inner); err != nil {
		return "", fmt.Errorf("no xcmapping.xml in bundle %q: %w", path, err)
	}
	return inner, nil
}
