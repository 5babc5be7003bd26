package xcmapdiff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sidestore/xcmapdiff/debug"
	"github.com/sidestore/xcmapdiff/ir"
	"github.com/sidestore/xcmapdiff/libdiff"
)

// diffChildren pairs up the children of two matched nodes.  Children
// are grouped by tag and each group is compared with the strategy the
// tag calls for: property-list dictionary keys as an unordered
// collection, objects by derived key, everything else positionally.
func (d *differ) diffChildren(oldKids, newKids []*ir.Node, path string) []libdiff.Record {
	oldKids = d.keepKids(oldKids)
	newKids = d.keepKids(newKids)

	oldGroups, oldTags := groupByTag(oldKids)
	newGroups, newTags := groupByTag(newKids)

	var recs []libdiff.Record
	for _, tag := range unionOrdered(oldTags, newTags) {
		oldList := oldGroups[tag]
		newList := newGroups[tag]
		switch {
		case tag == keyTag && strings.Contains(path, d.cfg.PlistDictMarker):
			recs = append(recs, d.diffPlistKeys(oldList, newList, path, tag)...)
		case tag == objectTag:
			recs = append(recs, d.diffObjects(oldList, newList, path)...)
		default:
			recs = append(recs, d.diffPositional(oldList, newList, path, tag)...)
		}
	}
	return recs
}

// keepKids drops leaf markers whose field name is configured away.
func (d *differ) keepKids(kids []*ir.Node) []*ir.Node {
	res := make([]*ir.Node, 0, len(kids))
	for _, kid := range kids {
		if kid.Tag == attributeTag && d.cfg.IgnoredFields[kid.Get("name")] {
			continue
		}
		res = append(res, kid)
	}
	return res
}

func groupByTag(kids []*ir.Node) (map[string][]*ir.Node, []string) {
	groups := map[string][]*ir.Node{}
	var order []string
	for _, kid := range kids {
		if _, ok := groups[kid.Tag]; !ok {
			order = append(order, kid.Tag)
		}
		groups[kid.Tag] = append(groups[kid.Tag], kid)
	}
	return groups, order
}

func unionOrdered(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	res := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		seen[s] = true
		res = append(res, s)
	}
	for _, s := range b {
		if !seen[s] {
			res = append(res, s)
		}
	}
	return res
}

type indexedValue struct {
	value string
	index int
}

// diffPlistKeys compares dictionary key elements as a multiset of
// trimmed text values.  Losing exactly one value while gaining exactly
// one is reported as a single rename rather than a missing/extra pair;
// the original intent of more than one simultaneous change is
// ambiguous, so anything else falls back to per-value records.
func (d *differ) diffPlistKeys(oldList, newList []*ir.Node, path, tag string) []libdiff.Record {
	oldKeys := trimmedTexts(oldList)
	newKeys := trimmedTexts(newList)

	missing := subtractCounts(oldKeys, newKeys)
	extra := subtractCounts(newKeys, oldKeys)
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	if len(missing) == 1 && len(extra) == 1 {
		subpath := fmt.Sprintf("%s.%s[%d]", path, tag, missing[0].index)
		return []libdiff.Record{
			libdiff.MakeMismatch(subpath+" text", libdiff.SubText,
				missing[0].value, extra[0].value),
		}
	}

	var recs []libdiff.Record
	for _, k := range missing {
		subpath := fmt.Sprintf("%s.%s[%d]", path, tag, k.index)
		recs = append(recs, libdiff.MakeMissing(subpath+" text", k.value, k.value))
	}
	for _, k := range extra {
		subpath := fmt.Sprintf("%s.%s[%d]", path, tag, k.index)
		recs = append(recs, libdiff.MakeExtra(subpath+" text", k.value, k.value))
	}
	return recs
}

func trimmedTexts(kids []*ir.Node) []string {
	res := make([]string, len(kids))
	for i, kid := range kids {
		res[i] = kid.TrimmedText()
	}
	return res
}

// subtractCounts returns the values of a left over after consuming one
// occurrence from b per match, each with its index in a.
func subtractCounts(a, b []string) []indexedValue {
	counts := make(map[string]int, len(b))
	for _, v := range b {
		counts[v]++
	}
	var res []indexedValue
	for i, v := range a {
		if counts[v] > 0 {
			counts[v]--
			continue
		}
		res = append(res, indexedValue{value: v, index: i})
	}
	return res
}

// diffObjects matches object elements by their derived identity key,
// independent of order.  A key on one side only yields a missing or
// extra record; a shared key recurses into the pair.
func (d *differ) diffObjects(oldList, newList []*ir.Node, path string) []libdiff.Record {
	oldMap, oldOrder := keyNodes(oldList)
	newMap, newOrder := keyNodes(newList)

	var recs []libdiff.Record
	for _, key := range unionKeys(oldOrder, newOrder) {
		if debug.Keys() {
			debug.Logf("object key at %s: %s\n", path, key.Format())
		}
		subpath := path + ".object[" + key.Format() + "]"
		oldNode := oldMap[key]
		newNode := newMap[key]
		switch {
		case oldNode == nil:
			recs = append(recs, libdiff.MakeExtra(subpath, Describe(newNode), ""))
		case newNode == nil:
			recs = append(recs, libdiff.MakeMissing(subpath, Describe(oldNode), ""))
		default:
			recs = append(recs, d.diffNodes(oldNode, newNode, subpath)...)
		}
	}
	return recs
}

// keyNodes maps each child by its derived key.  On duplicate keys the
// last occurrence wins while the key keeps its first position.
func keyNodes(kids []*ir.Node) (map[Key]*ir.Node, []Key) {
	res := make(map[Key]*ir.Node, len(kids))
	var order []Key
	for _, kid := range kids {
		key := DeriveKey(kid)
		if _, ok := res[key]; !ok {
			order = append(order, key)
		}
		res[key] = kid
	}
	return res, order
}

func unionKeys(a, b []Key) []Key {
	seen := make(map[Key]bool, len(a))
	res := make([]Key, 0, len(a)+len(b))
	for _, k := range a {
		seen[k] = true
		res = append(res, k)
	}
	for _, k := range b {
		if !seen[k] {
			res = append(res, k)
		}
	}
	return res
}

// diffPositional pairs children index by index, treating out-of-range
// positions as absent.  The index is omitted from the path when the
// group has a single member.
func (d *differ) diffPositional(oldList, newList []*ir.Node, path, tag string) []libdiff.Record {
	maxLen := max(len(oldList), len(newList))
	var recs []libdiff.Record
	for i := 0; i < maxLen; i++ {
		subpath := path + "." + tag
		if maxLen > 1 {
			subpath += "[" + strconv.Itoa(i) + "]"
		}
		var oldKid, newKid *ir.Node
		if i < len(oldList) {
			oldKid = oldList[i]
		}
		if i < len(newList) {
			newKid = newList[i]
		}
		recs = append(recs, d.diffNodes(oldKid, newKid, subpath)...)
	}
	return recs
}
