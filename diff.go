// Package xcmapdiff compares two versions of a Core Data mapping
// model document and reports every semantically meaningful difference,
// ignoring regeneration artifacts such as volatile identifiers,
// embedded model blobs and mapping counters.
package xcmapdiff

import (
	"slices"

	"github.com/sidestore/xcmapdiff/debug"
	"github.com/sidestore/xcmapdiff/ir"
	"github.com/sidestore/xcmapdiff/libdiff"
)

// Element tags with dedicated matching strategies.
const (
	objectTag    = "object"
	keyTag       = "key"
	attributeTag = "attribute"
)

type Option func(*libdiff.Config)

// WithConfig replaces the whole comparison configuration.
func WithConfig(cfg libdiff.Config) Option {
	return func(c *libdiff.Config) { *c = cfg }
}

// IgnoreAttrs adds attribute names to the ignored set.
func IgnoreAttrs(names ...string) Option {
	return func(c *libdiff.Config) {
		for _, name := range names {
			c.IgnoredAttrs[name] = true
		}
	}
}

// IgnoreFields adds leaf field names to the ignored set.
func IgnoreFields(names ...string) Option {
	return func(c *libdiff.Config) {
		for _, name := range names {
			c.IgnoredFields[name] = true
		}
	}
}

// Diff recursively compares old and new and returns the differences
// in encounter order.  Either side may be nil.  The inputs are never
// mutated and the comparison never fails: a well-formed pair of trees
// always produces a (possibly empty) record list.
func Diff(old, new *ir.Node, opts ...Option) []libdiff.Record {
	cfg := libdiff.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	var path string
	switch {
	case old != nil:
		path = old.Tag
	case new != nil:
		path = new.Tag
	default:
		return nil
	}
	d := &differ{cfg: cfg}
	recs := d.diffNodes(old, new, path)
	if debug.Diff() {
		debug.Logf("diff at %q produced %d records\n", path, len(recs))
	}
	return recs
}

type differ struct {
	cfg libdiff.Config
}

func (d *differ) diffNodes(old, new *ir.Node, path string) []libdiff.Record {
	if old == nil && new == nil {
		return nil
	}
	if old == nil {
		return []libdiff.Record{
			libdiff.MakeExtra(path, Describe(new), new.LeafText()),
		}
	}
	if new == nil {
		return []libdiff.Record{
			libdiff.MakeMissing(path, Describe(old), old.LeafText()),
		}
	}
	if old.Tag != new.Tag {
		// deeper comparison is meaningless across different tags
		return []libdiff.Record{
			libdiff.MakeMismatch(path+" tag", libdiff.SubTag, old.Tag, new.Tag),
		}
	}
	var recs []libdiff.Record
	recs = append(recs, d.diffText(old, new, path)...)
	recs = append(recs, d.diffAttrs(old, new, path)...)
	recs = append(recs, d.diffChildren(old.Children, new.Children, path)...)
	return recs
}

func (d *differ) diffText(old, new *ir.Node, path string) []libdiff.Record {
	if old.Tag == attributeTag && old.Get("name") == d.cfg.VolatileField {
		return nil
	}
	oldText := old.TrimmedText()
	newText := new.TrimmedText()
	if oldText == newText {
		return nil
	}
	return []libdiff.Record{
		libdiff.MakeMismatch(path+" text", libdiff.SubText, oldText, newText),
	}
}

func (d *differ) diffAttrs(old, new *ir.Node, path string) []libdiff.Record {
	var recs []libdiff.Record
	for _, name := range unionAttrNames(old, new) {
		if d.cfg.IgnoredAttrs[name] {
			continue
		}
		if old.Get(name) == new.Get(name) && old.Has(name) == new.Has(name) {
			continue
		}
		recs = append(recs, libdiff.MakeMismatch(
			path+" attribute '"+name+"'", libdiff.SubAttribute,
			old.Get(name), new.Get(name)))
	}
	return recs
}

// unionAttrNames returns the names present on either node, sorted so
// that record order is stable.
func unionAttrNames(old, new *ir.Node) []string {
	seen := make(map[string]bool, len(old.Attr))
	names := old.AttrNames()
	for _, name := range names {
		seen[name] = true
	}
	for _, name := range new.AttrNames() {
		if !seen[name] {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
